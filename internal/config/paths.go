package config

import (
	"os"
	"path/filepath"
)

// DefaultConfigPath returns the default settings file location:
// <user config dir>/modshift/config.toml.
func DefaultConfigPath() string {
	return filepath.Join(configDirectory(), "config.toml")
}

// LogDirectory returns the directory for log files:
// <user config dir>/modshift/logs.
func LogDirectory() string {
	return filepath.Join(configDirectory(), "logs")
}

// EnsureLogDirectory creates the log directory if it doesn't exist.
// Uses 0700 permissions to restrict log access to the owner.
func EnsureLogDirectory() error {
	return os.MkdirAll(LogDirectory(), 0700)
}

func configDirectory() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "modshift")
		}
		return filepath.Join(homeDir, ".config", "modshift")
	}
	return filepath.Join(configDir, "modshift")
}
