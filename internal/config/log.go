package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

var diagnosticLog *os.File

// EnableDiagnosticLog routes log output to a fresh per-session file under
// ~/.streakbadge/logs and returns its path.
func EnableDiagnosticLog() (string, error) {
	dir, err := LogsDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create logs directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("session-%s.log", uuid.New().String()))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create log file: %w", err)
	}

	if diagnosticLog != nil {
		diagnosticLog.Close()
	}
	diagnosticLog = f
	log.SetOutput(f)
	log.Printf("diagnostic logging enabled")
	return path, nil
}

// DisableDiagnosticLog discards log output and closes the session file.
func DisableDiagnosticLog() {
	log.SetOutput(io.Discard)
	if diagnosticLog != nil {
		diagnosticLog.Close()
		diagnosticLog = nil
	}
}
