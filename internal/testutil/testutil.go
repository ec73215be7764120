// Package testutil provides testing utilities for loadcoord tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

// ResetViper clears viper's global state now and again when the test ends.
func ResetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

// IsolateConfig points XDG_CONFIG_HOME at a temporary directory and resets
// viper, so a test never reads or writes the user's real config. It returns
// the temporary XDG_CONFIG_HOME.
func IsolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	ResetViper(t)
	return dir
}

// WriteFile writes content to path, creating parent directories as needed.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
