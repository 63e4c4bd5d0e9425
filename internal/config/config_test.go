package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got '%s'", cfg.Logging.Level)
	}

	if cfg.Trace.Enabled {
		t.Error("expected trace recording to be disabled by default")
	}

	if cfg.Catalog == "" {
		t.Error("expected a default catalog path")
	}

	if cfg.Trace.Path == "" {
		t.Error("expected a default trace database path")
	}
}

func TestLoadFromPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, ".synapse", "config.yaml")

	// Load config (should create default)
	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify the file was created with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("config file was not created")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got '%s'", cfg.Logging.Level)
	}
}

func TestLoadFromPath_ExistingFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	content := []byte("catalog: /srv/world.yaml\nlogging:\n  level: debug\ntrace:\n  enabled: true\n  path: /srv/traces.db\n")
	if err := os.WriteFile(configPath, content, 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Catalog != "/srv/world.yaml" {
		t.Errorf("expected catalog '/srv/world.yaml', got '%s'", cfg.Catalog)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got '%s'", cfg.Logging.Level)
	}
	if !cfg.Trace.Enabled {
		t.Error("expected trace recording enabled")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}

	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid log level")
	}

	cfg = Default()
	cfg.Trace.Enabled = true
	cfg.Trace.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for enabled trace with empty path")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	expanded := expandPath("~/.synapse/catalog.yaml")
	if expanded != filepath.Join(home, ".synapse", "catalog.yaml") {
		t.Errorf("unexpected expansion: %s", expanded)
	}

	absolute := expandPath("/etc/synapse.yaml")
	if absolute != "/etc/synapse.yaml" {
		t.Errorf("absolute path should be unchanged, got %s", absolute)
	}
}
