package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if !cfg.Notifications {
		t.Error("Expected Notifications to be true by default")
	}
	if cfg.Debug {
		t.Error("Expected Debug to be false by default")
	}
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if !cfg.Notifications {
		t.Error("Expected defaults for missing file")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := &Config{
		Notifications:   false,
		Debug:           true,
		LastSource:      "/mods/vortex",
		LastDestination: "/mods/mo2",
	}
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Notifications != cfg.Notifications ||
		loaded.Debug != cfg.Debug ||
		loaded.LastSource != cfg.LastSource ||
		loaded.LastDestination != cfg.LastDestination {
		t.Errorf("round trip mismatch: %+v != %+v", loaded, cfg)
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("notifications = [broken"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected parse error for malformed TOML")
	}
	if !strings.Contains(err.Error(), "failed to parse config") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	if !strings.HasSuffix(path, filepath.Join("modshift", "config.toml")) {
		t.Errorf("unexpected config path: %s", path)
	}
}
