// Package config loads synapse CLI configuration. Configuration lives in
// ~/.synapse/config.yaml and individual values can be overridden through
// SYNAPSE_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all synapse CLI configuration.
type Config struct {
	// Catalog is the path to the YAML capability catalog the CLI resolves
	// against.
	Catalog string `mapstructure:"catalog" yaml:"catalog"`

	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Trace   TraceConfig   `mapstructure:"trace" yaml:"trace"`
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	// Level is one of: debug, info, warn, error.
	Level string `mapstructure:"level" yaml:"level"`
}

// TraceConfig controls persistence of resolution traces.
type TraceConfig struct {
	// Enabled turns on recording of every CLI resolution into the trace
	// database.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Path is the SQLite database file for recorded traces.
	Path string `mapstructure:"path" yaml:"path"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Catalog: "~/.synapse/catalog.yaml",
		Logging: LoggingConfig{
			Level: "info",
		},
		Trace: TraceConfig{
			Enabled: false,
			Path:    "~/.synapse/traces.db",
		},
	}
}

// Load reads configuration from ~/.synapse/config.yaml, creating the file
// with defaults when it does not exist, and merges environment overrides.
func Load() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	configPath := filepath.Join(homeDir, ".synapse", "config.yaml")
	return LoadFromPath(configPath)
}

// LoadFromPath reads configuration from a specific file path and merges
// environment overrides. A missing file is created with default values.
func LoadFromPath(path string) (*Config, error) {
	path = expandPath(path)

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := writeConfigFile(path, Default()); err != nil {
			return nil, fmt.Errorf("failed to write default config: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Example: SYNAPSE_TRACE_ENABLED=true
	v.SetEnvPrefix("SYNAPSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Catalog = expandPath(cfg.Catalog)
	cfg.Trace.Path = expandPath(cfg.Trace.Path)

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	return &cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level '%s', must be one of: debug, info, warn, error", c.Logging.Level)
	}

	if c.Trace.Enabled && c.Trace.Path == "" {
		return fmt.Errorf("trace.path cannot be empty when trace recording is enabled")
	}

	return nil
}

// writeConfigFile writes a Config struct to a YAML file.
func writeConfigFile(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// expandPath expands ~ to the user's home directory in a path string.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[1:])
	}
	return path
}
