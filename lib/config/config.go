// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/bureau-select/lib/tui"
)

// EnvironmentVariable names the config file when --config is not given.
const EnvironmentVariable = "BUREAU_SELECT_CONFIG"

// Config is the viewer configuration.
type Config struct {
	// Definition is the form definition file (.yaml, .yml, .json,
	// .jsonc). Empty shows the built-in demo form.
	Definition string `yaml:"definition"`

	// State configures selection persistence between runs.
	State StateConfig `yaml:"state"`

	// Log configures the diagnostic log.
	Log LogConfig `yaml:"log"`

	// BoxWidth is the width of every select box in columns.
	// Default: 40
	BoxWidth int `yaml:"box_width"`

	// Theme overrides individual colors of the built-in theme.
	Theme tui.ThemeOverrides `yaml:"theme"`
}

// StateConfig configures the state file.
type StateConfig struct {
	// Path is the CBOR state file.
	// Default: ${HOME}/.local/state/bureau-select/state.cbor
	Path string `yaml:"path"`

	// Disabled turns persistence off: nothing is restored or saved.
	Disabled bool `yaml:"disabled"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info
	Level string `yaml:"level"`

	// Output is a file that receives every record as JSON, in addition
	// to the status bar. Empty disables the file.
	Output string `yaml:"output"`
}

// Default returns the configuration used when no file is given, and
// the base that a file is merged into.
func Default() *Config {
	homeDirectory, _ := os.UserHomeDir()

	return &Config{
		State: StateConfig{
			Path: filepath.Join(homeDirectory, ".local", "state", "bureau-select", "state.cbor"),
		},
		Log: LogConfig{
			Level: "info",
		},
		BoxWidth: tui.DefaultBoxWidth,
	}
}

// Load loads the file named by BUREAU_SELECT_CONFIG. Unlike a service,
// the viewer runs fine unconfigured, so an unset variable yields
// Default rather than an error.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, merged over
// Default. Unknown keys are errors. ${VAR} and ${VAR:-default} are
// expanded in path fields after loading.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.expandVariables(filepath.Dir(path))

	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in path
// fields. ${CONFIG_DIR} is the directory holding the config file, so a
// config can name a definition next to it.
func (c *Config) expandVariables(configDirectory string) {
	vars := map[string]string{
		"CONFIG_DIR": configDirectory,
		"HOME":       os.Getenv("HOME"),
	}

	c.Definition = expandVars(c.Definition, vars)
	c.State.Path = expandVars(c.State.Path, vars)
	c.Log.Output = expandVars(c.Log.Output, vars)
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

var logLevels = []string{"debug", "info", "warn", "error"}

// SlogLevel returns Log.Level as a slog level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level must be one of: %v", logLevels)
	}
	return level, nil
}

// ResolvedTheme returns the built-in theme with the configured overrides
// applied.
func (c *Config) ResolvedTheme() (tui.Theme, error) {
	return c.Theme.Apply(tui.DefaultTheme)
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(logLevels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of: %v", logLevels))
	}

	if !c.State.Disabled && c.State.Path == "" {
		errs = append(errs, fmt.Errorf("state.path is required unless state.disabled is set"))
	}

	if c.BoxWidth < MinBoxWidth {
		errs = append(errs, fmt.Errorf("box_width must be at least %d, got %d", MinBoxWidth, c.BoxWidth))
	}

	if _, err := c.ResolvedTheme(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// MinBoxWidth is the narrowest box that still shows a few characters
// of each label.
const MinBoxWidth = 20
