// Package config provides configuration types, defaults, and persistence
// for rolo.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/rolo/internal/log"
	"github.com/zjrosen/rolo/internal/tracing"
)

// Config holds all configuration options for rolo.
type Config struct {
	// Path is the database file. Empty means ~/.rolo/rolo.db.
	Path string `mapstructure:"path"`

	// DefaultBook is the book used when a command gets no --book flag.
	DefaultBook string `mapstructure:"default_book"`

	// Output selects the default rendering: "json" or "table".
	Output string `mapstructure:"output"`

	// AutoRefresh reloads the browse view when the database file changes.
	AutoRefresh         bool          `mapstructure:"auto_refresh"`
	AutoRefreshDebounce time.Duration `mapstructure:"auto_refresh_debounce"`

	Tracing tracing.Config `mapstructure:"tracing"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Path:                "",
		DefaultBook:         "personal",
		Output:              "json",
		AutoRefresh:         true,
		AutoRefreshDebounce: time.Second,
		Tracing:             tracing.DefaultConfig(),
	}
}

// Validate checks for values that no code path accepts.
func Validate(cfg Config) error {
	switch cfg.Output {
	case "json", "table":
	default:
		return fmt.Errorf("output must be \"json\" or \"table\", got %q", cfg.Output)
	}
	switch cfg.Tracing.Exporter {
	case "", "none", "file", "stdout", "otlp":
	default:
		return fmt.Errorf("tracing.exporter must be one of none, file, stdout, otlp, got %q", cfg.Tracing.Exporter)
	}
	return nil
}

// DefaultDBPath returns ~/.rolo/rolo.db, falling back to a relative path
// when the home directory cannot be resolved.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".rolo", "rolo.db")
	}
	return filepath.Join(home, ".rolo", "rolo.db")
}

// DefaultConfigTemplate returns the commented YAML written on first run.
func DefaultConfigTemplate() string {
	return `# rolo configuration

# Database file. Defaults to ~/.rolo/rolo.db when unset.
# path: /home/me/.rolo/rolo.db

# Book used when a command gets no --book flag.
default_book: personal

# Default output rendering: json or table
output: json

# Reload the browse view when the database file changes on disk.
auto_refresh: true
auto_refresh_debounce: 1s

# Tracing configuration
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/rolo/traces/traces.jsonl  # Output file for file exporter
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
