package geometry

import (
	"math"
	"time"
)

// DefaultTransitionDuration is how long a scale transition animates.
const DefaultTransitionDuration = 100 * time.Millisecond

// AnimState is the animator's state machine: Idle → Animating → Idle.
type AnimState int

// Animator states.
const (
	AnimIdle AnimState = iota
	AnimAnimating
)

// Animator interpolates the window's outer box during a scale transition.
// A new Start while animating replaces the in-flight transition; transitions
// are never queued. The animator is driven from the coordinator goroutine
// and holds no locks.
type Animator struct {
	state     AnimState
	from      Rect
	to        Rect
	startedAt time.Time
	duration  time.Duration
}

// State returns the current animator state.
func (a *Animator) State() AnimState { return a.state }

// Active reports whether a transition is in flight.
func (a *Animator) Active() bool { return a.state == AnimAnimating }

// Start begins a transition from the given rect to the target. If a
// transition is already running it is canceled and the new one starts from
// whatever rect the caller passed (normally Current of the old one).
func (a *Animator) Start(from, to Rect, duration time.Duration, now time.Time) {
	a.state = AnimAnimating
	a.from = from
	a.to = to
	a.startedAt = now
	a.duration = duration
}

// Cancel aborts any in-flight transition without committing a geometry.
func (a *Animator) Cancel() {
	a.state = AnimIdle
}

// Target returns the destination rect of the current or last transition.
func (a *Animator) Target() Rect { return a.to }

// Current returns the interpolated rect at the given instant without
// advancing the state machine.
func (a *Animator) Current(now time.Time) Rect {
	if a.state != AnimAnimating {
		return a.to
	}
	return a.at(now)
}

// Step advances the animation and reports whether it completed. On
// completion the animator returns the exact target rect and goes Idle.
func (a *Animator) Step(now time.Time) (Rect, bool) {
	if a.state != AnimAnimating {
		return a.to, true
	}
	if now.Sub(a.startedAt) >= a.duration {
		a.state = AnimIdle
		return a.to, true
	}
	return a.at(now), false
}

func (a *Animator) at(now time.Time) Rect {
	t := float64(now.Sub(a.startedAt)) / float64(a.duration)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	e := easeInOutQuad(t)
	return Rect{
		X:      lerp(a.from.X, a.to.X, e),
		Y:      lerp(a.from.Y, a.to.Y, e),
		Width:  lerp(a.from.Width, a.to.Width, e),
		Height: lerp(a.from.Height, a.to.Height, e),
	}
}

// easeInOutQuad matches the original transition curve: quadratic in, then
// quadratic out.
func easeInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}

func lerp(from, to int, t float64) int {
	return from + int(math.Round(float64(to-from)*t))
}
