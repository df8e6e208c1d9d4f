package config

import (
	"os"
	"path/filepath"
)

// Paths holds the locations pick reads from.
type Paths struct {
	// ConfigDir is the directory for configuration files (~/.config/pick)
	ConfigDir string
}

// DefaultPaths returns the default paths under the user configuration
// directory.
func DefaultPaths() *Paths {
	base, err := os.UserConfigDir()
	if err != nil {
		base = filepath.Join(ExpandPath("~"), ".config")
	}
	return &Paths{ConfigDir: filepath.Join(base, "pick")}
}

// ConfigFile returns the path of the YAML config file.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, "config.yaml")
}
