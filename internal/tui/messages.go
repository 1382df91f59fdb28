package tui

import "github.com/streakbadge-io/streakbadge/internal/widget"

// StateChangedMsg carries a fresh widget state snapshot.
type StateChangedMsg struct {
	State widget.State
}

// ContentMsg carries the rendered badge markup.
type ContentMsg struct {
	Markup string
}

// SizeMsg carries an intermediate window size during a scale transition.
type SizeMsg struct {
	Width, Height int
}

// MoveMsg carries a window position change.
type MoveMsg struct {
	X, Y int
}

// WidgetClosedMsg signals the coordinator has shut down.
type WidgetClosedMsg struct{}
