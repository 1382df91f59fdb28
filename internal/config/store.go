package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/streakbadge-io/streakbadge/internal/models"
)

// ErrStorage marks settings-file errors the caller may want to detect.
// Storage failures are never fatal to the widget.
var ErrStorage = errors.New("settings storage")

// Store owns the persisted Settings record. All reads and writes of the
// backing file go through it; other components only hold read copies.
type Store struct {
	path string

	mu       sync.Mutex
	lastGood *models.Settings
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultStore creates a store backed by ~/.streakbadge/settings.json.
func DefaultStore() (*Store, error) {
	path, err := SettingsFile()
	if err != nil {
		return nil, err
	}
	return NewStore(path), nil
}

// Path returns the settings file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the settings. A missing file yields defaults; a malformed field
// resets only that field to its default; a save earlier in the process
// lifetime is returned from cache without touching the disk.
func (s *Store) Load() *models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastGood != nil {
		cp := *s.lastGood
		return &cp
	}

	return s.readLocked()
}

// Reload reads the settings from disk, bypassing the last-known-good cache.
// Used when the file changed underneath the process.
func (s *Store) Reload() *models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked()
}

func (s *Store) readLocked() *models.Settings {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("settings: unreadable %s, using defaults: %v", s.path, err)
		}
		return models.NewSettings()
	}

	st := decodeSettings(data)
	cp := *st
	s.lastGood = &cp
	return st
}

// Save writes the settings atomically: serialize to a temporary sibling,
// sync it, then rename over the canonical file. If the rename fails the
// write degrades to a direct overwrite. A successful save updates the
// in-process cache so it is visible to readers before the next disk read.
func (s *Store) Save(st *models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: create directory %s: %v", ErrStorage, dir, err)
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal settings: %v", ErrStorage, err)
	}

	tmp, err := os.CreateTemp(dir, SettingsFileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", ErrStorage, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: write temp file: %v", ErrStorage, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: sync temp file: %v", ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: close temp file: %v", ErrStorage, err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		// Degraded path: some filesystems refuse the rename. The direct
		// overwrite loses atomicity but keeps the settings current.
		log.Printf("settings: atomic rename failed, falling back to direct write: %v", err)
		os.Remove(tmpPath)
		if err := os.WriteFile(s.path, data, 0644); err != nil {
			return fmt.Errorf("%w: write %s: %v", ErrStorage, s.path, err)
		}
	}

	cp := *st
	s.lastGood = &cp
	return nil
}

// decodeSettings parses a settings file tolerantly: unknown fields are
// ignored, and any field that fails to parse keeps its default while the
// rest of the record loads normally.
func decodeSettings(data []byte) *models.Settings {
	st := models.NewSettings()

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Printf("settings: malformed file, using defaults: %v", err)
		return st
	}

	decodeField(raw, "position", &st.Position)
	decodeField(raw, "scale", &st.ScalePercent)
	decodeField(raw, "use_alternative_template", &st.UseAlternateTemplate)
	decodeField(raw, "always_on_top", &st.AlwaysOnTop)
	decodeField(raw, "credentials", &st.Credentials)
	decodeField(raw, "logging_enabled", &st.LoggingEnabled)
	decodeField(raw, "autostart", &st.Autostart)

	st.ScalePercent = models.ClampScale(st.ScalePercent)
	return st
}

// decodeField unmarshals a single field, leaving *dst untouched on failure.
func decodeField[T any](raw map[string]json.RawMessage, key string, dst *T) {
	v, ok := raw[key]
	if !ok {
		return
	}
	tmp := *dst
	if err := json.Unmarshal(v, &tmp); err != nil {
		log.Printf("settings: invalid field %q, keeping default: %v", key, err)
		return
	}
	*dst = tmp
}
