// Package util provides small text helpers shared by the terminal screens.
package util

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const ellipsis = "..."

// TruncateString truncates a string to maxLen runes, adding "..." if truncated.
// It does not understand ANSI escape codes; use FitLine for styled text.
func TruncateString(s string, maxLen int) string {
	if maxLen <= len(ellipsis) {
		return ellipsis
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-len(ellipsis)]) + ellipsis
}

// FitLine truncates a possibly styled line to width visual columns, keeping
// escape sequences intact. A width of zero or less means no limit.
func FitLine(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	if width <= len(ellipsis) {
		return ellipsis
	}
	return ansi.Truncate(s, width, ellipsis)
}

// FitLines applies FitLine to every line of a block.
func FitLines(block string, width int) string {
	if width <= 0 {
		return block
	}
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = FitLine(line, width)
	}
	return strings.Join(lines, "\n")
}
