package config

import (
	"os"
	"path/filepath"
)

// DataDir returns the directory holding the database, socket and logs.
// SPROUT_HOME overrides the default ~/.sprout.
func DataDir() (string, error) {
	if dir := os.Getenv("SPROUT_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".sprout"), nil
}

// DefaultSocketPath is where the daemon listens unless configured otherwise.
func DefaultSocketPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sprout.sock"), nil
}

// DefaultDatabasePath is the SQLite file used unless configured otherwise.
func DefaultDatabasePath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sprout.db"), nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "sprout", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "sprout", "config.yaml"), nil
}
