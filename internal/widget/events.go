package widget

import (
	"time"

	"github.com/streakbadge-io/streakbadge/internal/models"
)

// Event is a message processed by the coordinator's event loop. Events are
// handled strictly in arrival order; each mutating event finishes with a
// settings save before the next event is processed.
type Event interface{}

// DragMoveEvent moves the window by a pointer delta. Slow steps are
// edge-snapped; fast flicks are not.
type DragMoveEvent struct {
	DX, DY int
}

// NudgeEvent moves the window a fixed step in the given direction
// (each axis -1, 0, or 1). Nudges are never clamped to a screen.
type NudgeEvent struct {
	DX, DY int
}

// SetScaleEvent requests a new scale percentage. Values outside
// [100, 500] are clamped.
type SetScaleEvent struct {
	Percent int
}

// SetCredentialsEvent replaces the provider credentials.
type SetCredentialsEvent struct {
	Credentials models.Credentials
}

// ToggleTemplateEvent flips the alternate-template preference.
type ToggleTemplateEvent struct{}

// ToggleAlwaysOnTopEvent flips window stacking.
type ToggleAlwaysOnTopEvent struct{}

// ToggleLoggingEvent flips diagnostic logging.
type ToggleLoggingEvent struct{}

// ToggleAutostartEvent flips launch-on-login registration.
type ToggleAutostartEvent struct{}

// RefreshEvent requests an immediate status poll.
type RefreshEvent struct{}

// KeyPressEvent feeds a raw key for the debug-border sequence.
type KeyPressEvent struct {
	Key string
}

// ExitEvent flushes settings and shuts the widget down.
type ExitEvent struct{}

// statusEvent delivers a completed poll.
type statusEvent struct {
	Sample models.StatusSample
}

// animTickEvent advances the scale animation.
type animTickEvent struct {
	At time.Time
}

// reloadEvent re-reads settings after the file changed on disk.
type reloadEvent struct{}
