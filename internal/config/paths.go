package config

import (
	"os"
	"path/filepath"
)

// AppName names the configuration and cache directories.
const AppName = "ghstats"

// DefaultPath returns $XDG_CONFIG_HOME/ghstats/config.toml, falling back to
// ~/.config/ghstats/config.toml.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.toml")
	}
	return filepath.Join(home, ".config", AppName, "config.toml")
}

// CacheDir returns the file cache directory: cache.dir when set, else
// $XDG_CACHE_HOME/ghstats or ~/.cache/ghstats.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
