// Package config provides configuration and version information
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Version info - set via ldflags during build
var (
	Version   = "0.1.0"
	BuildTime = ""
)

// Surfaces a picker can draw on.
const (
	SurfaceANSI  = "ansi"
	SurfaceTcell = "tcell"
)

// Config represents the pick configuration.
type Config struct {
	Surface string        `yaml:"surface"` // ansi or tcell
	Colors  bool          `yaml:"colors"`
	Hidden  bool          `yaml:"hidden"` // list dot-entries in the file picker
	Prompts PromptsConfig `yaml:"prompts"`
	Log     LogConfig     `yaml:"log"`

	// Geometry overrides for the ANSI surface, from the environment only.
	Width  int `yaml:"-"`
	Height int `yaml:"-"`
}

// PromptsConfig holds the default prompt of each picker.
type PromptsConfig struct {
	File   string `yaml:"file"`
	Object string `yaml:"object"`
}

// LogConfig holds logging settings. Logs never go to the terminal.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // empty discards logs
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Surface: SurfaceANSI,
		Colors:  true,
		Hidden:  true,
		Prompts: PromptsConfig{
			File:   "File: ",
			Object: "Select: ",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from PICK_CONFIG or the default path.
func Load() (*Config, error) {
	if path := os.Getenv("PICK_CONFIG"); path != "" {
		return LoadFromFile(ExpandPath(path))
	}
	return LoadFromFile(DefaultPaths().ConfigFile())
}

// LoadFromFile loads configuration from path. A missing file yields the
// defaults. Environment overrides are applied last.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnvOverrides applies environment variable overrides to the config.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("PICK_SURFACE"); v != "" {
		c.Surface = strings.ToLower(v)
	}
	if v := os.Getenv("PICK_LOG_LEVEL"); v != "" && isValidLogLevel(v) {
		c.Log.Level = v
	}
	if v := os.Getenv("PICK_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("PICK_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil && b {
			c.Log.Level = "debug"
		}
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		c.Colors = false
	}
	if v, err := strconv.Atoi(os.Getenv("PICK_WIDTH")); err == nil && v > 0 {
		c.Width = v
	}
	if v, err := strconv.Atoi(os.Getenv("PICK_HEIGHT")); err == nil && v > 0 {
		c.Height = v
	}
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	switch c.Surface {
	case SurfaceANSI, SurfaceTcell:
	default:
		return fmt.Errorf("surface must be %q or %q, got %q", SurfaceANSI, SurfaceTcell, c.Surface)
	}
	if !isValidLogLevel(c.Log.Level) {
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	return nil
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

// ExpandPath expands ~ and returns absolute path
func ExpandPath(path string) string {
	if path == "" {
		return path
	}
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else if strings.HasPrefix(path, "~/") {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
