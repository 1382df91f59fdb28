// Package autostart toggles launch-on-login registration. The widget only
// flips a boolean through this interface; the mechanics belong to the OS.
package autostart

import (
	"fmt"
	"os"
	"path/filepath"
)

// Registry registers or unregisters the widget for launch on login.
type Registry interface {
	IsEnabled() (bool, error)
	Enable() error
	Disable() error
}

const desktopEntryName = "streakbadge.desktop"

const desktopEntryFormat = `[Desktop Entry]
Type=Application
Name=Streakbadge
Comment=osu! daily streak overlay
Exec=%s run --tray
Terminal=false
X-GNOME-Autostart-enabled=true
`

// XDGRegistry implements Registry with a freedesktop autostart entry under
// ~/.config/autostart.
type XDGRegistry struct {
	dir      string
	execPath string
}

// NewXDG creates a registry for the current executable.
func NewXDG() (*XDGRegistry, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	execPath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("resolve executable: %w", err)
	}
	return &XDGRegistry{
		dir:      filepath.Join(configDir, "autostart"),
		execPath: execPath,
	}, nil
}

// NewXDGAt creates a registry rooted at an explicit directory. Used by tests.
func NewXDGAt(dir, execPath string) *XDGRegistry {
	return &XDGRegistry{dir: dir, execPath: execPath}
}

func (r *XDGRegistry) entryPath() string {
	return filepath.Join(r.dir, desktopEntryName)
}

// IsEnabled reports whether the autostart entry exists.
func (r *XDGRegistry) IsEnabled() (bool, error) {
	_, err := os.Stat(r.entryPath())
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Enable writes the autostart entry.
func (r *XDGRegistry) Enable() error {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return fmt.Errorf("create autostart dir: %w", err)
	}
	entry := fmt.Sprintf(desktopEntryFormat, r.execPath)
	if err := os.WriteFile(r.entryPath(), []byte(entry), 0644); err != nil {
		return fmt.Errorf("write autostart entry: %w", err)
	}
	return nil
}

// Disable removes the autostart entry if present.
func (r *XDGRegistry) Disable() error {
	err := os.Remove(r.entryPath())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove autostart entry: %w", err)
	}
	return nil
}
