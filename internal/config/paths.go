// Package config handles settings persistence, path management, and
// diagnostic logging for streakbadge.
package config

import (
	"os"
	"path/filepath"
)

const (
	// GlobalDirName is the name of the global streakbadge directory.
	GlobalDirName = ".streakbadge"

	// LogsDirName is the name of the diagnostic logs directory.
	LogsDirName = "logs"
)

// File names
const (
	SettingsFileName  = "settings.json"
	TemplatesFileName = "templates.yaml"
)

// GlobalDir returns the path to the global streakbadge directory (~/.streakbadge/).
func GlobalDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, GlobalDirName), nil
}

// SettingsFile returns the path to the settings.json file.
func SettingsFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SettingsFileName), nil
}

// TemplatesFile returns the path to the optional templates.yaml override file.
func TemplatesFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, TemplatesFileName), nil
}

// LogsDir returns the path to the diagnostic logs directory.
func LogsDir() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, LogsDirName), nil
}

// EnsureGlobalDir creates the global streakbadge directory if it doesn't exist.
func EnsureGlobalDir() error {
	dir, err := GlobalDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
