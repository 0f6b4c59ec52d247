// Package config provides configuration management for ModShift.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application settings persisted between runs.
type Config struct {
	// Notifications enables desktop notifications when a migration finishes.
	Notifications bool `toml:"notifications"`

	// Debug enables debug logging.
	Debug bool `toml:"debug"`

	// LastSource is the source instance path from the previous run,
	// pre-filled in the GUI.
	LastSource string `toml:"last_source"`

	// LastDestination is the destination instance path from the previous run.
	LastDestination string `toml:"last_destination"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Notifications: true,
	}
}

// Load reads the configuration from the given TOML file. A missing file
// yields the defaults; a malformed file is an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to the given TOML file, creating the
// parent directory if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}
