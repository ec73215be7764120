package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestIsolateConfig(t *testing.T) {
	viper.Set("loading.show_after_ms", 123)

	dir := IsolateConfig(t)
	if got := os.Getenv("XDG_CONFIG_HOME"); got != dir {
		t.Errorf("XDG_CONFIG_HOME = %q, want %q", got, dir)
	}
	if viper.IsSet("loading.show_after_ms") {
		t.Error("expected viper state to be reset")
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")
	WriteFile(t, path, "tui:\n  history_lines: 3\n")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read back file: %v", err)
	}
	if string(data) != "tui:\n  history_lines: 3\n" {
		t.Errorf("unexpected content %q", data)
	}
}
