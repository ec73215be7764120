package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the complete loadcoord configuration
type Config struct {
	Loading LoadingConfig `mapstructure:"loading" yaml:"loading"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	TUI     TUIConfig     `mapstructure:"tui" yaml:"tui"`
}

// LoadingConfig controls the default timing of loading coordinators
type LoadingConfig struct {
	// ShowAfterMs is how long work must be in flight before the busy
	// signal appears, in milliseconds (default: 400, 0 = immediately)
	ShowAfterMs int `mapstructure:"show_after_ms" yaml:"show_after_ms"`
	// MinDisplayMs is the minimum time a shown busy signal stays on,
	// in milliseconds (default: 300, 0 = hide as soon as work ends)
	MinDisplayMs int `mapstructure:"min_display_ms" yaml:"min_display_ms"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled turns on file logging (default: false)
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Level is the minimum level written: debug, info, warn, error (default: "info")
	Level string `mapstructure:"level" yaml:"level"`
	// Dir is where debug.log is written (default: "" = <config dir>/logs)
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// TUIConfig controls the demo screen
type TUIConfig struct {
	// Accent is the spinner color as #RRGGBB or #RGB (default: "#A78BFA")
	Accent string `mapstructure:"accent" yaml:"accent"`
	// HistoryLines is how many finished operations the screen lists (default: 8)
	HistoryLines int `mapstructure:"history_lines" yaml:"history_lines"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Loading: LoadingConfig{
			ShowAfterMs:  400,
			MinDisplayMs: 300,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
			Dir:     "",
		},
		TUI: TUIConfig{
			Accent:       "#A78BFA",
			HistoryLines: 8,
		},
	}
}

// ShowAfter returns the show-after delay as a time.Duration
func (c *LoadingConfig) ShowAfter() time.Duration {
	return time.Duration(c.ShowAfterMs) * time.Millisecond
}

// MinDisplayTime returns the minimum display time as a time.Duration
func (c *LoadingConfig) MinDisplayTime() time.Duration {
	return time.Duration(c.MinDisplayMs) * time.Millisecond
}

// ResolveDir returns the log directory, defaulting to <config dir>/logs
func (c *LoggingConfig) ResolveDir() string {
	if c.Dir != "" {
		return c.Dir
	}
	return filepath.Join(ConfigDir(), "logs")
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("loading.show_after_ms", defaults.Loading.ShowAfterMs)
	viper.SetDefault("loading.min_display_ms", defaults.Loading.MinDisplayMs)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)

	viper.SetDefault("tui.accent", defaults.TUI.Accent)
	viper.SetDefault("tui.history_lines", defaults.TUI.HistoryLines)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults when the
// loaded values are invalid
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// YAML renders the configuration as a YAML document
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return out, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "loadcoord")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".loadcoord"
	}
	return filepath.Join(home, ".config", "loadcoord")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
