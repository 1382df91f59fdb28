// Package tray implements the system tray icon and menu for the widget.
package tray

import "github.com/streakbadge-io/streakbadge/internal/widget"

// Controller is the widget surface the tray drives.
type Controller interface {
	Snapshot() widget.State
	Post(widget.Event)
	RequestExit()
}
