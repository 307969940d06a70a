package config

import (
	"os"
	"path/filepath"
)

// TuduPath returns the root directory for tudu data. It uses $TUDU_PATH
// if set, otherwise defaults to ~/.tudu.
func TuduPath() string {
	if v := os.Getenv("TUDU_PATH"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".tudu")
	}
	return filepath.Join(home, ".tudu")
}

// ConfigPath returns the path to the tudu config file.
func ConfigPath() string {
	return filepath.Join(TuduPath(), "config.yaml")
}

// DBPath returns the default path to the task database.
func DBPath() string {
	return filepath.Join(TuduPath(), "tasks.db")
}
