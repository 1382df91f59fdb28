// Package widget implements the state and presentation coordinator: the
// single owner of the settings mirror, window geometry, and the last status
// sample. Everything with a platform dependency sits behind the interfaces
// in this file.
package widget

import (
	"log"

	"github.com/streakbadge-io/streakbadge/internal/geometry"
)

// Surface is the window/graphics layer the coordinator draws into. It
// reports nothing back except being ready to display.
type Surface interface {
	SetFixedSize(width, height int)
	SetZoom(factor float64)
	SetContent(markup string)
	Move(x, y int)
	SetAlwaysOnTop(onTop bool)
	Close()
}

// Topology reports the current screen layout. Read-only; owned by the
// windowing environment.
type Topology interface {
	Screens() []geometry.Rect
	Primary() geometry.Rect
}

// StaticTopology is a fixed screen layout, used when the real topology is
// supplied by configuration rather than queried from a window system.
type StaticTopology struct {
	Rects []geometry.Rect
}

// SingleScreen returns a topology with one screen of the given size at the
// origin.
func SingleScreen(width, height int) StaticTopology {
	return StaticTopology{Rects: []geometry.Rect{{Width: width, Height: height}}}
}

// Screens returns all screens.
func (t StaticTopology) Screens() []geometry.Rect { return t.Rects }

// Primary returns the first screen.
func (t StaticTopology) Primary() geometry.Rect {
	if len(t.Rects) == 0 {
		return geometry.Rect{Width: 1920, Height: 1080}
	}
	return t.Rects[0]
}

// LogSurface is a render surface that only logs. It stands in for the real
// window chrome in tray mode and during development.
type LogSurface struct{}

// SetFixedSize logs the new window size.
func (LogSurface) SetFixedSize(width, height int) {
	log.Printf("surface: size %dx%d", width, height)
}

// SetZoom logs the new content zoom.
func (LogSurface) SetZoom(factor float64) {
	log.Printf("surface: zoom %.2f", factor)
}

// SetContent logs that content was replaced.
func (LogSurface) SetContent(markup string) {
	log.Printf("surface: content %d bytes", len(markup))
}

// Move logs the new window position.
func (LogSurface) Move(x, y int) {
	log.Printf("surface: move to %d,%d", x, y)
}

// SetAlwaysOnTop logs the stacking change.
func (LogSurface) SetAlwaysOnTop(onTop bool) {
	log.Printf("surface: always-on-top %v", onTop)
}

// Close logs the release.
func (LogSurface) Close() {
	log.Printf("surface: closed")
}
