package widget

import (
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/streakbadge-io/streakbadge/internal/config"
	"github.com/streakbadge-io/streakbadge/internal/geometry"
	"github.com/streakbadge-io/streakbadge/internal/models"
	"github.com/streakbadge-io/streakbadge/internal/render"
)

var testClock = time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)

type fakeSurface struct {
	mu       sync.Mutex
	moves    []geometry.Point
	sizes    [][2]int
	zooms    []float64
	contents []string
	closed   bool
}

func (f *fakeSurface) SetFixedSize(w, h int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sizes = append(f.sizes, [2]int{w, h})
}

func (f *fakeSurface) SetZoom(factor float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.zooms = append(f.zooms, factor)
}

func (f *fakeSurface) SetContent(markup string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contents = append(f.contents, markup)
}

func (f *fakeSurface) Move(x, y int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.moves = append(f.moves, geometry.Point{X: x, Y: y})
}

func (f *fakeSurface) SetAlwaysOnTop(bool) {}

func (f *fakeSurface) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func (f *fakeSurface) lastContent() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.contents) == 0 {
		return ""
	}
	return f.contents[len(f.contents)-1]
}

func (f *fakeSurface) lastSize() [2]int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sizes) == 0 {
		return [2]int{}
	}
	return f.sizes[len(f.sizes)-1]
}

type fakeRefresher struct {
	mu        sync.Mutex
	refreshes int
	creds     []models.Credentials
}

func (f *fakeRefresher) Refresh() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshes++
}

func (f *fakeRefresher) SetCredentials(c models.Credentials) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creds = append(f.creds, c)
}

type fakeAutostart struct {
	enabled bool
	err     error
}

func (f *fakeAutostart) Enable() error {
	if f.err == nil {
		f.enabled = true
	}
	return f.err
}

func (f *fakeAutostart) Disable() error {
	if f.err == nil {
		f.enabled = false
	}
	return f.err
}

type testRig struct {
	c       *Coordinator
	surface *fakeSurface
	store   *config.Store
	poller  *fakeRefresher
	auto    *fakeAutostart
}

func newRig(t *testing.T, st *models.Settings, screens ...geometry.Rect) *testRig {
	t.Helper()

	store := config.NewStore(filepath.Join(t.TempDir(), "settings.json"))
	if st != nil {
		if err := store.Save(st); err != nil {
			t.Fatal(err)
		}
	}
	if len(screens) == 0 {
		screens = []geometry.Rect{{Width: 1920, Height: 1080}}
	}

	rig := &testRig{
		surface: &fakeSurface{},
		store:   store,
		poller:  &fakeRefresher{},
		auto:    &fakeAutostart{},
	}
	rig.c = New(Config{
		Store:             store,
		Surface:           rig.surface,
		Topology:          StaticTopology{Rects: screens},
		Templates:         render.Builtin(),
		Poller:            rig.poller,
		Autostart:         rig.auto,
		Now:               func() time.Time { return testClock },
		DisableAnimTicker: true,
	})
	rig.c.Start()
	return rig
}

// finish shuts the coordinator down and waits for the loop to drain, so all
// previously posted events are fully applied.
func (r *testRig) finish(t *testing.T) State {
	t.Helper()
	r.c.RequestExit()
	select {
	case <-r.c.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("coordinator did not exit")
	}
	return r.c.Snapshot()
}

func TestStartupValidPositionKept(t *testing.T) {
	st := models.NewSettings()
	st.Position = models.Position{X: 300, Y: 200}
	rig := newRig(t, st)

	snap := rig.finish(t)
	if snap.Geometry.X != 300 || snap.Geometry.Y != 200 {
		t.Errorf("geometry = %+v, want position kept", snap.Geometry)
	}
	if snap.Geometry.Width != geometry.BaseWidth || snap.Geometry.Height != geometry.BaseHeight {
		t.Errorf("size = %dx%d, want base size", snap.Geometry.Width, snap.Geometry.Height)
	}
}

func TestStartupOffscreenPositionCentered(t *testing.T) {
	st := models.NewSettings()
	st.Position = models.Position{X: 5000, Y: 5000}
	rig := newRig(t, st)

	snap := rig.finish(t)
	want := geometry.Center(geometry.Rect{Width: 1920, Height: 1080}, geometry.BaseWidth, geometry.BaseHeight)
	if snap.Geometry.X != want.X || snap.Geometry.Y != want.Y {
		t.Errorf("geometry = %+v, want centered at %+v", snap.Geometry, want)
	}
	if snap.Settings.Position != (models.Position{X: want.X, Y: want.Y}) {
		t.Errorf("settings position = %+v, want fallback recorded", snap.Settings.Position)
	}
}

func TestSlowDragSnapsToEdge(t *testing.T) {
	st := models.NewSettings()
	st.Position = models.Position{X: 12, Y: 300}
	rig := newRig(t, st)

	rig.c.Post(DragMoveEvent{DX: -5, DY: 0})
	snap := rig.finish(t)

	if snap.Geometry.X != 0 || snap.Geometry.Y != 300 {
		t.Errorf("geometry = %+v, want snapped to left edge", snap.Geometry)
	}
	// The snapped position is persisted eagerly.
	if got := config.NewStore(rig.store.Path()).Load().Position; got != (models.Position{X: 0, Y: 300}) {
		t.Errorf("persisted position = %+v, want {0 300}", got)
	}
}

func TestFastDragDoesNotSnap(t *testing.T) {
	st := models.NewSettings()
	st.Position = models.Position{X: 30, Y: 300}
	rig := newRig(t, st)

	rig.c.Post(DragMoveEvent{DX: -22, DY: 0})
	snap := rig.finish(t)

	if snap.Geometry.X != 8 {
		t.Errorf("geometry.X = %d, want 8 (fast drags skip snapping)", snap.Geometry.X)
	}
}

func TestNudgeMovesFixedStepWithoutClamp(t *testing.T) {
	st := models.NewSettings()
	st.Position = models.Position{X: 0, Y: 0}
	rig := newRig(t, st)

	rig.c.Post(NudgeEvent{DX: -1, DY: 0})
	rig.c.Post(NudgeEvent{DX: -1, DY: 0})
	snap := rig.finish(t)

	if snap.Geometry.X != -4 {
		t.Errorf("geometry.X = %d, want -4 (nudges are unclamped)", snap.Geometry.X)
	}
	if got := config.NewStore(rig.store.Path()).Load().Position.X; got != -4 {
		t.Errorf("persisted X = %d, want -4", got)
	}
}

func TestScaleClampBoundaries(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{99, 100},
		{501, 500},
	}
	for _, tt := range tests {
		rig := newRig(t, nil)
		rig.c.Post(SetScaleEvent{Percent: tt.in})
		snap := rig.finish(t)
		if snap.Settings.ScalePercent != tt.want {
			t.Errorf("scale %d clamped to %d, want %d", tt.in, snap.Settings.ScalePercent, tt.want)
		}
	}
}

func TestScaleTransitionCommitsFinalGeometry(t *testing.T) {
	rig := newRig(t, nil)

	rig.c.Post(SetScaleEvent{Percent: 200})
	rig.c.Post(animTickEvent{At: testClock.Add(50 * time.Millisecond)})
	rig.c.Post(animTickEvent{At: testClock.Add(geometry.DefaultTransitionDuration)})
	snap := rig.finish(t)

	if snap.Geometry.Width != 300 || snap.Geometry.Height != 114 {
		t.Errorf("committed geometry = %+v, want 300x114", snap.Geometry)
	}
	// Top-left is the anchor; it must not move on a pure scale change.
	if snap.Geometry.X != 100 || snap.Geometry.Y != 100 {
		t.Errorf("anchor moved: %+v", snap.Geometry)
	}
	// Zoom is applied immediately, not at animation end.
	rig.surface.mu.Lock()
	zooms := append([]float64(nil), rig.surface.zooms...)
	rig.surface.mu.Unlock()
	if zooms[len(zooms)-1] != 2.0 {
		t.Errorf("zooms = %v, want trailing 2.0", zooms)
	}
}

func TestRapidScaleRequestsCommitOnlySecondTarget(t *testing.T) {
	rig := newRig(t, nil)

	rig.c.Post(SetScaleEvent{Percent: 300})
	rig.c.Post(SetScaleEvent{Percent: 150})
	rig.c.Post(animTickEvent{At: testClock.Add(geometry.DefaultTransitionDuration)})
	snap := rig.finish(t)

	if snap.Settings.ScalePercent != 150 {
		t.Errorf("scale = %d, want 150", snap.Settings.ScalePercent)
	}
	if snap.Geometry.Width != 225 || snap.Geometry.Height != 86 {
		t.Errorf("geometry = %+v, want the second target 225x86", snap.Geometry)
	}
	if got := rig.surface.lastSize(); got != [2]int{225, 86} {
		t.Errorf("surface size = %v, want [225 86]", got)
	}
	if got := config.NewStore(rig.store.Path()).Load().ScalePercent; got != 150 {
		t.Errorf("persisted scale = %d, want 150", got)
	}
}

func TestStatusSampleSelectsAlternateTemplate(t *testing.T) {
	rig := newRig(t, nil)

	rig.c.StatusUpdate(models.StatusSample{
		Streak:    1,
		SampledAt: time.Date(2024, time.July, 25, 10, 0, 0, 0, time.UTC),
		Available: true,
	})
	rig.finish(t)

	if got := rig.surface.lastContent(); !strings.Contains(got, "badge-alt") {
		t.Errorf("content = %q, want alternate badge", got)
	}
}

func TestUnavailableSampleRendersDefault(t *testing.T) {
	rig := newRig(t, nil)

	rig.c.StatusUpdate(models.StatusSample{SampledAt: testClock})
	rig.finish(t)

	if got := rig.surface.lastContent(); strings.Contains(got, "badge-alt") {
		t.Errorf("content = %q, want default badge for unavailable sample", got)
	}
}

func TestTemplateToggleForcesAlternateAndPersists(t *testing.T) {
	rig := newRig(t, nil)

	rig.c.Post(ToggleTemplateEvent{})
	rig.finish(t)

	if got := rig.surface.lastContent(); !strings.Contains(got, "badge-alt") {
		t.Errorf("content = %q, want alternate badge after toggle", got)
	}
	if !config.NewStore(rig.store.Path()).Load().UseAlternateTemplate {
		t.Error("template preference not persisted")
	}
}

func TestCredentialUpdateFlowsToPoller(t *testing.T) {
	rig := newRig(t, nil)

	creds := models.Credentials{ClientID: "id", ClientSecret: "sec", Username: "player"}
	rig.c.Post(SetCredentialsEvent{Credentials: creds})
	rig.finish(t)

	rig.poller.mu.Lock()
	defer rig.poller.mu.Unlock()
	if len(rig.poller.creds) != 1 || rig.poller.creds[0] != creds {
		t.Errorf("poller credentials = %v, want one update %v", rig.poller.creds, creds)
	}
	if got := config.NewStore(rig.store.Path()).Load().Credentials; got != creds {
		t.Errorf("persisted credentials = %+v", got)
	}
}

func TestManualRefreshForwarded(t *testing.T) {
	rig := newRig(t, nil)

	rig.c.Post(RefreshEvent{})
	rig.finish(t)

	rig.poller.mu.Lock()
	defer rig.poller.mu.Unlock()
	if rig.poller.refreshes < 1 {
		t.Error("manual refresh not forwarded to the poller")
	}
}

func TestAutostartToggle(t *testing.T) {
	rig := newRig(t, nil)

	rig.c.Post(ToggleAutostartEvent{})
	snap := rig.finish(t)

	if !snap.Settings.Autostart || !rig.auto.enabled {
		t.Errorf("autostart = %v (registry %v), want enabled", snap.Settings.Autostart, rig.auto.enabled)
	}
}

func TestDebugKeySequenceTogglesBorder(t *testing.T) {
	rig := newRig(t, nil)

	for _, k := range []string{"7", "2", "7"} {
		rig.c.Post(KeyPressEvent{Key: k})
	}
	snap := rig.finish(t)

	if !snap.DebugBorder {
		t.Error("debug border not toggled by 7-2-7")
	}
	if got := rig.surface.lastContent(); !strings.Contains(got, "badge-debug") {
		t.Errorf("content = %q, want debug class", got)
	}
}

func TestWrongKeySequenceIgnored(t *testing.T) {
	rig := newRig(t, nil)

	for _, k := range []string{"7", "7", "2"} {
		rig.c.Post(KeyPressEvent{Key: k})
	}
	snap := rig.finish(t)

	if snap.DebugBorder {
		t.Error("debug border toggled by the wrong sequence")
	}
}

func TestExitFlushesAndClosesSurface(t *testing.T) {
	st := models.NewSettings()
	st.Position = models.Position{X: 250, Y: 250}
	rig := newRig(t, st)

	rig.c.Post(NudgeEvent{DX: 1, DY: 1})
	rig.finish(t)

	rig.surface.mu.Lock()
	closed := rig.surface.closed
	rig.surface.mu.Unlock()
	if !closed {
		t.Error("surface not closed on exit")
	}
	if got := config.NewStore(rig.store.Path()).Load().Position; got != (models.Position{X: 252, Y: 252}) {
		t.Errorf("flushed position = %+v, want {252 252}", got)
	}
}

func TestReloadAppliesExternalEdit(t *testing.T) {
	rig := newRig(t, nil)

	// Simulate an external edit through a second store handle.
	edited := models.NewSettings()
	edited.Position = models.Position{X: 400, Y: 400}
	edited.ScalePercent = 200
	if err := config.NewStore(rig.store.Path()).Save(edited); err != nil {
		t.Fatal(err)
	}

	rig.c.RequestReload()
	snap := rig.finish(t)

	if snap.Settings.ScalePercent != 200 {
		t.Errorf("scale = %d, want reloaded 200", snap.Settings.ScalePercent)
	}
	if snap.Geometry.Width != 300 || snap.Geometry.X != 400 {
		t.Errorf("geometry = %+v, want reloaded 300 wide at x=400", snap.Geometry)
	}
}
