// Package geometry computes badge window geometry: integer scaling, screen
// containment, centering, and edge snapping. All functions are pure; the
// coordinator owns the state they operate on.
package geometry

import "math"

// Base badge dimensions at 100% scale, in pixels.
const (
	BaseWidth  = 150
	BaseHeight = 57
)

const (
	// SnapThreshold is the distance in pixels within which a dragged edge
	// clamps to a screen edge.
	SnapThreshold = 10

	// SlowDragMax is the largest per-step displacement that still counts as
	// a slow drag. Faster drags skip snapping so flicks don't jitter.
	SlowDragMax = 5

	// NudgeStep is the arrow-key nudge distance in pixels.
	NudgeStep = 2
)

// Point is a location in virtual desktop coordinates.
type Point struct {
	X, Y int
}

// Rect is an axis-aligned rectangle. It doubles as the window geometry
// snapshot (top-left corner plus size) and as a screen bound.
type Rect struct {
	X, Y, Width, Height int
}

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Contains reports whether p lies within r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// ContainsRect reports whether o lies fully within r.
func (r Rect) ContainsRect(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// ComputeSize scales the base dimensions by scalePercent, rounding to the
// nearest integer. ComputeSize(100, w, h) == (w, h).
func ComputeSize(scalePercent, baseWidth, baseHeight int) (int, int) {
	w := int(math.Round(float64(baseWidth) * float64(scalePercent) / 100))
	h := int(math.Round(float64(baseHeight) * float64(scalePercent) / 100))
	return w, h
}

// ValidatePosition reports whether a window of the given size placed at
// candidate lies fully within at least one screen.
func ValidatePosition(candidate Point, screens []Rect, width, height int) bool {
	window := Rect{X: candidate.X, Y: candidate.Y, Width: width, Height: height}
	for _, s := range screens {
		if s.ContainsRect(window) {
			return true
		}
	}
	return false
}

// Center returns the position that centers a window of the given size on the
// screen.
func Center(screen Rect, width, height int) Point {
	return Point{
		X: screen.X + (screen.Width-width)/2,
		Y: screen.Y + (screen.Height-height)/2,
	}
}

// ApplySnap clamps each axis independently: if a window edge lies within
// threshold pixels of the matching screen edge, the edge snaps exactly to
// the boundary; otherwise the axis is left unchanged. Idempotent.
func ApplySnap(pos Point, screen Rect, width, height, threshold int) Point {
	out := pos

	if abs(pos.X-screen.X) <= threshold {
		out.X = screen.X
	} else if abs(pos.X+width-screen.Right()) <= threshold {
		out.X = screen.Right() - width
	}

	if abs(pos.Y-screen.Y) <= threshold {
		out.Y = screen.Y
	} else if abs(pos.Y+height-screen.Bottom()) <= threshold {
		out.Y = screen.Bottom() - height
	}

	return out
}

// IsSlowDrag reports whether a single drag step is slow enough for snapping.
func IsSlowDrag(dx, dy int) bool {
	return abs(dx) <= SlowDragMax && abs(dy) <= SlowDragMax
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
