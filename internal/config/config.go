// ABOUTME: Layered configuration: built-in defaults, user TOML file, overrides
// ABOUTME: Resolved once per invocation into a Config value
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// EnvDatabase overrides the database file when set.
const EnvDatabase = "KAOMOJI_DB"

// DefaultDatabaseFilename is used when nothing else names a database.
const DefaultDatabaseFilename = "./emoticons.tsv"

// Config is the resolved configuration for one invocation.
type Config struct {
	DatabaseFilename string `toml:"database_filename"`
	Backup           bool   `toml:"backup"`
	LogLevel         string `toml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DatabaseFilename: DefaultDatabaseFilename,
		Backup:           true,
		LogLevel:         "warn",
	}
}

// Load decodes the TOML file at path over the defaults. A missing file
// yields the defaults unless required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if required {
				return Config{}, fmt.Errorf("config file %s: %w", path, err)
			}
			return Default(), nil
		}
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as TOML, creating the parent directory.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil { //nolint:gosec // Standard directory permissions for user config
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return f.Close()
}

// Overrides holds command-line values that take precedence over the config
// file. Zero fields are ignored.
type Overrides struct {
	DatabaseFilename string
	NoBackup         bool
	LogLevel         string
}

// Apply layers the environment and then o on top of c.
func (c Config) Apply(o Overrides) Config {
	if env := os.Getenv(EnvDatabase); env != "" {
		c.DatabaseFilename = env
	}
	if o.DatabaseFilename != "" {
		c.DatabaseFilename = o.DatabaseFilename
	}
	if o.NoBackup {
		c.Backup = false
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	return c
}

// Resolve loads the file at path and applies the overrides.
func Resolve(path string, required bool, o Overrides) (Config, error) {
	cfg, err := Load(path, required)
	if err != nil {
		return Config{}, err
	}
	return cfg.Apply(o), nil
}
