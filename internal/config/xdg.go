// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

const appName = "beesolve"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultWordListPath returns the default plain-text dictionary path.
func DefaultWordListPath() string {
	return filepath.Join(DefaultWordListDir(), "words.txt")
}

// DefaultWordListDir returns the directory holding the word list and its attribution.
func DefaultWordListDir() string {
	return filepath.Join(XDGConfigHome(), appName)
}

// DefaultDBPath returns the default path for the SQLite word store.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), appName, "words.db")
}

// DefaultWordfreqCacheDir returns the cache directory for wordfreq wheels.
func DefaultWordfreqCacheDir() string {
	return filepath.Join(XDGDataHome(), appName, "wordfreq")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}
