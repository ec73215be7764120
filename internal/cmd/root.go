package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/Iron-Ham/loadcoord/internal/config"
	"github.com/Iron-Ham/loadcoord/internal/loading"
	"github.com/Iron-Ham/loadcoord/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "loadcoord",
	Short: "Debounced loading-indicator coordinator",
	Long: `loadcoord coordinates a single "busy" signal across any number of
concurrent operations. The signal only turns on once work has been in
flight for a show delay, and once on it stays on for a minimum display
time, so short operations never flash a spinner.

Use 'loadcoord demo' to watch the signal in a terminal UI and
'loadcoord simulate' to replay the built-in timing scenarios.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/loadcoord/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("LOADCOORD")
	// Replace dots with underscores for nested keys in env vars
	// e.g., LOADCOORD_LOADING_SHOW_AFTER_MS for loading.show_after_ms
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// loadConfig returns the validated configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// createLogger creates a logger if logging is enabled in config.
// Returns a NopLogger if logging is disabled or if creation fails.
func createLogger(cfg *config.Config) *logging.Logger {
	if !cfg.Logging.Enabled {
		return logging.NopLogger()
	}

	logger, err := logging.NewLogger(cfg.Logging.ResolveDir(), cfg.Logging.Level)
	if err != nil {
		// Log creation failure shouldn't prevent the application from starting
		fmt.Fprintf(os.Stderr, "Warning: failed to create logger: %v\n", err)
		return logging.NopLogger()
	}
	return logger
}

// timingFromConfig converts the loading section into coordinator timing.
func timingFromConfig(cfg *config.Config) loading.Timing {
	return loading.Timing{
		ShowAfter:      cfg.Loading.ShowAfter(),
		MinDisplayTime: cfg.Loading.MinDisplayTime(),
	}
}
