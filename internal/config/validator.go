package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// MaxDurationMs bounds every configurable duration
const MaxDurationMs = 60000

// MaxHistoryLines bounds tui.history_lines
const MaxHistoryLines = 100

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "loading.show_after_ms")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateLoading()...)
	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validateTUI()...)

	return errors
}

func (c *Config) validateLoading() []ValidationError {
	var errors []ValidationError

	fields := []struct {
		name  string
		value int
	}{
		{"loading.show_after_ms", c.Loading.ShowAfterMs},
		{"loading.min_display_ms", c.Loading.MinDisplayMs},
	}
	for _, f := range fields {
		if f.value < 0 {
			errors = append(errors, ValidationError{
				Field:   f.name,
				Value:   f.value,
				Message: "must be non-negative",
			})
		} else if f.value > MaxDurationMs {
			errors = append(errors, ValidationError{
				Field:   f.name,
				Value:   f.value,
				Message: fmt.Sprintf("must be at most %d", MaxDurationMs),
			})
		}
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}

func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	if c.TUI.Accent != "" && !hexColorRegex.MatchString(c.TUI.Accent) {
		errors = append(errors, ValidationError{
			Field:   "tui.accent",
			Value:   c.TUI.Accent,
			Message: "must be a hex color like #A78BFA or #FFF",
		})
	}

	if c.TUI.HistoryLines < 0 || c.TUI.HistoryLines > MaxHistoryLines {
		errors = append(errors, ValidationError{
			Field:   "tui.history_lines",
			Value:   c.TUI.HistoryLines,
			Message: fmt.Sprintf("must be between 0 and %d", MaxHistoryLines),
		})
	}

	return errors
}
