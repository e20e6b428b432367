// ABOUTME: XDG Base Directory specification helpers
// ABOUTME: Resolves the kaomoji config directory with a HOME fallback
package config

import (
	"os"
	"path/filepath"
)

// AppName is the directory name used under the XDG config home.
const AppName = "kaomoji"

// GetConfigHome returns XDG_CONFIG_HOME or fallback to ~/.config
func GetConfigHome() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg
	}
	return filepath.Join(homeDir(), ".config")
}

// DefaultPath returns the user config file location.
func DefaultPath() string {
	return filepath.Join(GetConfigHome(), AppName, "config.toml")
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	home, _ := os.UserHomeDir()
	return home
}
