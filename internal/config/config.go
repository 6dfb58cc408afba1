// Package config loads the YAML configuration of the srcmap command.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when no --config is given.
const DefaultFile = ".srcmap.yaml"

// Config is read once at start-up and not changed afterwards.
// Unknown keys are rejected.
type Config struct {
	// CompiledURL overrides the compiled artifact URL of every loaded map.
	CompiledURL string `yaml:"compiled_url"`
	NoColor     bool   `yaml:"no_color"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// HistoryFile keeps REPL history; empty disables it.
	HistoryFile    string `yaml:"history_file"`
	MaxSuggestions int    `yaml:"max_suggestions"`
}

// Defaults returns the configuration used when no file is present.
func Defaults() Config {
	return Config{
		LogLevel:       "warn",
		HistoryFile:    ".srcmap_history",
		MaxSuggestions: 3,
	}
}

// Parse decodes YAML data on top of Defaults.
func Parse(data []byte) (Config, error) {
	cfg := Defaults()

	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Load reads the config file at path. With an empty path DefaultFile is
// tried and a missing default file is not an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Defaults(), nil
		}

		return Defaults(), fmt.Errorf("failed to read config %s: %w", path, err)
	}

	return Parse(data)
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}

	if c.MaxSuggestions < 0 {
		return fmt.Errorf("max_suggestions must be >= 0, got %d", c.MaxSuggestions)
	}

	return nil
}

// ParseLevel converts a level name into a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("unknown log level %q", s)
	}
}
