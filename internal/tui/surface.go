package tui

import "github.com/streakbadge-io/streakbadge/internal/widget"

// Controller is the widget surface the preview drives.
type Controller interface {
	Snapshot() widget.State
	Post(widget.Event)
}

// Surface adapts the preview into a widget render surface. All calls turn
// into messages on the program's event loop, so they are safe from the
// coordinator goroutine.
type Surface struct {
	ref *ProgramRef
}

// NewSurface creates a surface sending through the given program reference.
func NewSurface(ref *ProgramRef) *Surface {
	return &Surface{ref: ref}
}

// SetFixedSize forwards the window size, including animation frames.
func (s *Surface) SetFixedSize(width, height int) {
	s.ref.Send(SizeMsg{Width: width, Height: height})
}

// SetZoom is a no-op; terminals have no content zoom.
func (s *Surface) SetZoom(float64) {}

// SetContent forwards the rendered markup.
func (s *Surface) SetContent(markup string) {
	s.ref.Send(ContentMsg{Markup: markup})
}

// Move forwards the window position.
func (s *Surface) Move(x, y int) {
	s.ref.Send(MoveMsg{X: x, Y: y})
}

// SetAlwaysOnTop is a no-op; stacking is shown from the state snapshot.
func (s *Surface) SetAlwaysOnTop(bool) {}

// Close tells the preview the widget is gone.
func (s *Surface) Close() {
	s.ref.Send(WidgetClosedMsg{})
}
