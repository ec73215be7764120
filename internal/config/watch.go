package config

import (
	"github.com/Iron-Ham/loadcoord/internal/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// IsReloadEvent reports whether a file event should trigger a reload.
// Editors emit chmod and rename noise around a save; only writes and
// creates carry new content.
func IsReloadEvent(e fsnotify.Event) bool {
	return e.Op&(fsnotify.Write|fsnotify.Create) != 0
}

// Watch re-reads the config file whenever it changes and passes every
// valid result to onChange. Invalid edits are logged and ignored, so the
// previous configuration stays in effect.
func Watch(logger *logging.Logger, onChange func(path string, cfg *Config)) {
	viper.OnConfigChange(reloadHandler(logger, onChange))
	viper.WatchConfig()
}

func reloadHandler(logger *logging.Logger, onChange func(string, *Config)) func(fsnotify.Event) {
	return func(e fsnotify.Event) {
		if !IsReloadEvent(e) {
			return
		}

		cfg, err := Load()
		if err != nil {
			logger.Warn("config reload rejected", "path", e.Name, "error", err.Error())
			return
		}

		logger.Info("config reloaded", "path", e.Name)
		onChange(e.Name, cfg)
	}
}
