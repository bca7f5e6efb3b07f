package config

import (
	"os"
	"path/filepath"
)

const (
	defaultConfigDirName = "repogen"
	defaultConfigFile    = "config.yaml"
)

// DefaultConfigPath resolves the user-scoped config file location. The
// REPOGEN_CONFIG environment variable takes precedence; otherwise the file
// lives under the platform config dir, falling back to ~/.repogen.
func DefaultConfigPath() string {
	if env := os.Getenv("REPOGEN_CONFIG"); env != "" {
		return env
	}
	base, err := os.UserConfigDir()
	if err == nil {
		return filepath.Join(base, defaultConfigDirName, defaultConfigFile)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "."+defaultConfigDirName, defaultConfigFile)
}
