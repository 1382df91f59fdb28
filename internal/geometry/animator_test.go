package geometry

import (
	"testing"
	"time"
)

var animStart = time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)

func TestAnimatorCompletes(t *testing.T) {
	var a Animator
	from := Rect{X: 100, Y: 100, Width: 150, Height: 57}
	to := Rect{X: 100, Y: 100, Width: 300, Height: 114}

	a.Start(from, to, DefaultTransitionDuration, animStart)
	if !a.Active() {
		t.Fatal("animator should be active after Start")
	}

	// Mid-flight: strictly between the endpoints, top-left anchored.
	mid, done := a.Step(animStart.Add(50 * time.Millisecond))
	if done {
		t.Fatal("animation finished early")
	}
	if mid.X != 100 || mid.Y != 100 {
		t.Errorf("top-left moved during scale transition: %+v", mid)
	}
	if mid.Width <= from.Width || mid.Width >= to.Width {
		t.Errorf("mid width %d not between %d and %d", mid.Width, from.Width, to.Width)
	}

	final, done := a.Step(animStart.Add(DefaultTransitionDuration))
	if !done {
		t.Fatal("animation should complete at duration")
	}
	if final != to {
		t.Errorf("final rect = %+v, want exact target %+v", final, to)
	}
	if a.Active() {
		t.Error("animator should be idle after completion")
	}
}

func TestAnimatorRestartFromInterpolated(t *testing.T) {
	var a Animator
	from := Rect{X: 0, Y: 0, Width: 150, Height: 57}
	first := Rect{X: 0, Y: 0, Width: 750, Height: 285}
	second := Rect{X: 0, Y: 0, Width: 300, Height: 114}

	a.Start(from, first, DefaultTransitionDuration, animStart)

	// A second request mid-flight restarts from the interpolated rect.
	now := animStart.Add(50 * time.Millisecond)
	current := a.Current(now)
	a.Start(current, second, DefaultTransitionDuration, now)

	if a.Target() != second {
		t.Errorf("Target = %+v, want %+v", a.Target(), second)
	}

	final, done := a.Step(now.Add(DefaultTransitionDuration))
	if !done || final != second {
		t.Errorf("restarted animation ended at %+v (done=%v), want %+v", final, done, second)
	}
}

func TestAnimatorCancel(t *testing.T) {
	var a Animator
	a.Start(Rect{Width: 150, Height: 57}, Rect{Width: 300, Height: 114}, DefaultTransitionDuration, animStart)
	a.Cancel()
	if a.Active() {
		t.Error("animator should be idle after Cancel")
	}
}

func TestEaseInOutQuadEndpoints(t *testing.T) {
	if easeInOutQuad(0) != 0 {
		t.Errorf("ease(0) = %v", easeInOutQuad(0))
	}
	if easeInOutQuad(1) != 1 {
		t.Errorf("ease(1) = %v", easeInOutQuad(1))
	}
	if easeInOutQuad(0.5) != 0.5 {
		t.Errorf("ease(0.5) = %v", easeInOutQuad(0.5))
	}
	// Slow start: first quarter covers less than a quarter of the distance.
	if easeInOutQuad(0.25) >= 0.25 {
		t.Errorf("ease(0.25) = %v, want < 0.25", easeInOutQuad(0.25))
	}
}

func TestStepWhenIdleReturnsTarget(t *testing.T) {
	var a Animator
	a.Start(Rect{Width: 150, Height: 57}, Rect{Width: 300, Height: 114}, DefaultTransitionDuration, animStart)
	a.Step(animStart.Add(DefaultTransitionDuration))

	r, done := a.Step(animStart.Add(2 * DefaultTransitionDuration))
	if !done || r != (Rect{Width: 300, Height: 114}) {
		t.Errorf("Step after completion = %+v (done=%v)", r, done)
	}
}
