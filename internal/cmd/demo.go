package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/Iron-Ham/loadcoord/internal/config"
	"github.com/Iron-Ham/loadcoord/internal/event"
	"github.com/Iron-Ham/loadcoord/internal/loading"
	"github.com/Iron-Ham/loadcoord/internal/tui"
	"github.com/Iron-Ham/loadcoord/internal/tui/styles"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Watch the loading signal in a terminal UI",
	Long: `Open an interactive screen bound to a live coordinator.

Keys start simulated operations:
  f  fast operation (100ms, never shows the spinner)
  s  slow operation (1s)
  d  operation straddling the show delay (450ms)
  e  failing operation (50ms)
  b  parallel burst of short operations

When a config file is in use, edits to it are applied while the demo runs.`,
	RunE: runDemo,
}

var (
	demoShowAfter  time.Duration
	demoMinDisplay time.Duration
)

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().DurationVar(&demoShowAfter, "show-after", 0, "override loading.show_after_ms for this run")
	demoCmd.Flags().DurationVar(&demoMinDisplay, "min-display", 0, "override loading.min_display_ms for this run")
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	timing, err := demoTiming(cmd, cfg)
	if err != nil {
		return err
	}

	logger := createLogger(cfg)
	defer func() { _ = logger.Close() }()

	styles.SetAccent(cfg.TUI.Accent)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	bus := event.NewBus(logger)
	coord := loading.New(ctx,
		loading.WithName("demo"),
		loading.WithTiming(timing),
		loading.WithLogger(logger),
		loading.WithBus(bus),
	)

	app := tui.New(ctx, coord, tui.Options{
		Bus:          bus,
		Logger:       logger,
		HistoryLines: cfg.TUI.HistoryLines,
	})

	if viper.ConfigFileUsed() != "" {
		config.Watch(logger, reloadDemo(coord, bus, app))
	}

	logger.Info("demo started", "show_after_ms", timing.ShowAfter.Milliseconds(), "min_display_ms", timing.MinDisplayTime.Milliseconds())
	return app.Run(ctx)
}

// demoTiming applies the command-line overrides on top of the configured timing.
func demoTiming(cmd *cobra.Command, cfg *config.Config) (loading.Timing, error) {
	timing := timingFromConfig(cfg)
	if cmd.Flags().Changed("show-after") {
		if demoShowAfter < 0 {
			return loading.Timing{}, fmt.Errorf("--show-after must be non-negative, got %v", demoShowAfter)
		}
		timing.ShowAfter = demoShowAfter
	}
	if cmd.Flags().Changed("min-display") {
		if demoMinDisplay < 0 {
			return loading.Timing{}, fmt.Errorf("--min-display must be non-negative, got %v", demoMinDisplay)
		}
		timing.MinDisplayTime = demoMinDisplay
	}
	return timing, nil
}

// screen is the part of the TUI a config reload talks to.
type screen interface {
	Reload(path string, historyLines int)
}

// reloadDemo applies a reloaded config to the running demo. Timing changes
// take effect from the next show cycle.
func reloadDemo(coord *loading.Coordinator, bus *event.Bus, s screen) func(string, *config.Config) {
	return func(path string, cfg *config.Config) {
		coord.SetTiming(timingFromConfig(cfg))
		styles.SetAccent(cfg.TUI.Accent)
		bus.Publish(event.NewConfigReloadedEvent(path))
		s.Reload(path, cfg.TUI.HistoryLines)
	}
}
