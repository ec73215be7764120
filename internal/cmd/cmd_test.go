package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/synctest"
	"time"

	"github.com/Iron-Ham/loadcoord/internal/config"
	"github.com/Iron-Ham/loadcoord/internal/event"
	"github.com/Iron-Ham/loadcoord/internal/loading"
	"github.com/Iron-Ham/loadcoord/internal/simulate"
	"github.com/Iron-Ham/loadcoord/internal/testutil"
	"github.com/Iron-Ham/loadcoord/internal/tui/styles"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// executeCommand runs a cobra command with args and returns captured output
func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err = root.Execute()
	return buf.String(), err
}

// setupTestEnvironment isolates config and restores flag state afterwards.
// It returns the temporary XDG_CONFIG_HOME.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()

	dir := testutil.IsolateConfig(t)
	// viper.Reset drops flag bindings
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	t.Cleanup(func() {
		_ = rootCmd.PersistentFlags().Set("config", "")
		simulateScale = 1
		simulateTolerance = 50 * time.Millisecond
		simulateList = false
		logsTail = 50
		logsFollow = false
		logsLevel = ""
		logsSince = ""
		logsGrep = ""
		logsOp = ""
	})
	return dir
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "loadcoord" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "loadcoord")
	}

	expectedCmds := []string{"demo", "simulate", "config", "logs"}
	cmdMap := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		cmdMap[cmd.Name()] = true
	}

	for _, expected := range expectedCmds {
		if !cmdMap[expected] {
			t.Errorf("expected subcommand %q not found", expected)
		}
	}
}

func TestSimulateCommand(t *testing.T) {
	setupTestEnvironment(t)

	synctest.Test(t, func(t *testing.T) {
		output, err := executeCommand(rootCmd, "simulate", "--scale", "1", "--tolerance", "0s")
		if err != nil {
			t.Fatalf("simulate failed: %v\n%s", err, output)
		}

		for _, name := range simulate.Names() {
			if !strings.Contains(output, name) {
				t.Errorf("expected output to mention scenario %q", name)
			}
		}
		if strings.Contains(output, "mismatch") {
			t.Errorf("expected every scenario to match, got:\n%s", output)
		}
		if !strings.Contains(output, "timeline: [show@400ms hide@1s]") {
			t.Errorf("expected the slow timeline in output, got:\n%s", output)
		}
	})
}

func TestSimulateCommandScaled(t *testing.T) {
	setupTestEnvironment(t)

	synctest.Test(t, func(t *testing.T) {
		output, err := executeCommand(rootCmd, "simulate", "slow", "--scale", "0.5", "--tolerance", "0s")
		if err != nil {
			t.Fatalf("simulate failed: %v\n%s", err, output)
		}
		if !strings.Contains(output, "timeline: [show@200ms hide@500ms]") {
			t.Errorf("expected scaled slow timeline, got:\n%s", output)
		}
	})
}

func TestSimulateCommandErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "unknown scenario",
			args:    []string{"simulate", "nope"},
			wantErr: `unknown scenario "nope"`,
		},
		{
			name:    "zero scale",
			args:    []string{"simulate", "--scale", "0"},
			wantErr: "--scale must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestEnvironment(t)

			_, err := executeCommand(rootCmd, tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestSimulateList(t *testing.T) {
	setupTestEnvironment(t)

	output, err := executeCommand(rootCmd, "simulate", "--list")
	if err != nil {
		t.Fatalf("simulate --list failed: %v", err)
	}
	for _, s := range simulate.Scenarios() {
		if !strings.Contains(output, s.Name) || !strings.Contains(output, s.Description) {
			t.Errorf("expected listing of %q, got:\n%s", s.Name, output)
		}
	}
}

func TestConfigInitAndShow(t *testing.T) {
	xdg := setupTestEnvironment(t)

	output, err := executeCommand(rootCmd, "config", "init")
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	configFile := filepath.Join(xdg, "loadcoord", "config.yaml")
	if !strings.Contains(output, configFile) {
		t.Errorf("expected output to name %s, got:\n%s", configFile, output)
	}
	data, err := os.ReadFile(configFile)
	if err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if !strings.Contains(string(data), "show_after_ms: 400") {
		t.Errorf("expected default timing in config file, got:\n%s", data)
	}

	if _, err := executeCommand(rootCmd, "config", "init"); err == nil {
		t.Error("expected second init to fail")
	}

	output, err = executeCommand(rootCmd, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	for _, want := range []string{"# Config file: " + configFile, "min_display_ms: 300", "history_lines: 8"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected config show output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestConfigShowWithFlag(t *testing.T) {
	setupTestEnvironment(t)

	path := filepath.Join(t.TempDir(), "custom.yaml")
	testutil.WriteFile(t, path, "loading:\n  show_after_ms: 120\n")

	output, err := executeCommand(rootCmd, "config", "show", "--config", path)
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(output, "show_after_ms: 120") {
		t.Errorf("expected overridden value, got:\n%s", output)
	}
	if !strings.Contains(output, "min_display_ms: 300") {
		t.Errorf("expected default for unset key, got:\n%s", output)
	}
}

func TestConfigPath(t *testing.T) {
	xdg := setupTestEnvironment(t)

	output, err := executeCommand(rootCmd, "config", "path")
	if err != nil {
		t.Fatalf("config path failed: %v", err)
	}
	want := "Default path: " + filepath.Join(xdg, "loadcoord", "config.yaml")
	if !strings.Contains(output, want) {
		t.Errorf("expected %q in output, got:\n%s", want, output)
	}
}

func TestDemoTiming(t *testing.T) {
	t.Cleanup(func() {
		demoShowAfter = 0
		demoMinDisplay = 0
	})
	newCmd := func() *cobra.Command {
		c := &cobra.Command{}
		c.Flags().DurationVar(&demoShowAfter, "show-after", 0, "")
		c.Flags().DurationVar(&demoMinDisplay, "min-display", 0, "")
		return c
	}
	cfg := config.Default()

	t.Run("config only", func(t *testing.T) {
		got, err := demoTiming(newCmd(), cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != loading.DefaultTiming() {
			t.Errorf("timing = %+v, want %+v", got, loading.DefaultTiming())
		}
	})

	t.Run("flag overrides", func(t *testing.T) {
		c := newCmd()
		_ = c.Flags().Set("show-after", "0s")
		got, err := demoTiming(c, cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := loading.Timing{ShowAfter: 0, MinDisplayTime: 300 * time.Millisecond}
		if got != want {
			t.Errorf("timing = %+v, want %+v", got, want)
		}
	})

	t.Run("negative rejected", func(t *testing.T) {
		c := newCmd()
		_ = c.Flags().Set("min-display", "-1s")
		if _, err := demoTiming(c, cfg); err == nil {
			t.Error("expected negative override to be rejected")
		}
	})
}

type fakeScreen struct {
	path  string
	lines int
}

func (f *fakeScreen) Reload(path string, historyLines int) {
	f.path = path
	f.lines = historyLines
}

func TestReloadDemo(t *testing.T) {
	t.Cleanup(func() { styles.SetAccent("") })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	coord := loading.New(ctx)
	bus := event.NewBus(nil)
	var reloaded []string
	bus.Subscribe(event.TypeConfigReloaded, func(e event.Event) {
		reloaded = append(reloaded, e.(event.ConfigReloadedEvent).Path)
	})
	screen := &fakeScreen{}

	cfg := config.Default()
	cfg.Loading.ShowAfterMs = 100
	cfg.Loading.MinDisplayMs = 50
	cfg.TUI.Accent = "#22C55E"
	cfg.TUI.HistoryLines = 3

	reloadDemo(coord, bus, screen)("/tmp/config.yaml", cfg)

	want := loading.Timing{ShowAfter: 100 * time.Millisecond, MinDisplayTime: 50 * time.Millisecond}
	if got := coord.Timing(); got != want {
		t.Errorf("coordinator timing = %+v, want %+v", got, want)
	}
	if len(reloaded) != 1 || reloaded[0] != "/tmp/config.yaml" {
		t.Errorf("expected one config.reloaded event, got %v", reloaded)
	}
	if screen.path != "/tmp/config.yaml" || screen.lines != 3 {
		t.Errorf("screen reload = (%q, %d), want (/tmp/config.yaml, 3)", screen.path, screen.lines)
	}
	if string(styles.PrimaryColor) != "#22C55E" {
		t.Errorf("accent = %q, want #22C55E", styles.PrimaryColor)
	}
}
