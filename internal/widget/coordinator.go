package widget

import (
	"log"
	"sync"
	"time"

	"github.com/streakbadge-io/streakbadge/internal/config"
	"github.com/streakbadge-io/streakbadge/internal/geometry"
	"github.com/streakbadge-io/streakbadge/internal/models"
	"github.com/streakbadge-io/streakbadge/internal/render"
)

const (
	// frameInterval is how often the animation ticker fires.
	frameInterval = 10 * time.Millisecond

	// initialPollDelay is how long after becoming visible the first poll runs.
	initialPollDelay = time.Second

	// debugSequence toggles the debug border when typed.
	debugSequence = "727"
)

// Refresher is the poller surface the coordinator drives.
type Refresher interface {
	Refresh()
	SetCredentials(models.Credentials)
}

// Autostarter mirrors autostart.Registry without importing it.
type Autostarter interface {
	Enable() error
	Disable() error
}

// State is the complete widget state. It is owned by the coordinator's event
// loop; everyone else sees copies.
type State struct {
	Settings    models.Settings
	Geometry    geometry.Rect
	Sample      models.StatusSample
	DebugBorder bool
}

// Mode returns the presentation mode currently in effect: the manual
// template preference forces the alternate template, otherwise the last
// sample decides. Unavailable samples always present as default.
func (s State) Mode() models.PresentationMode {
	if s.Settings.UseAlternateTemplate {
		return models.ModeAlternate
	}
	if !s.Sample.Available {
		return models.ModeDefault
	}
	return s.Sample.Mode()
}

// Config wires the coordinator's collaborators. Store, Surface, Topology and
// Templates are required; the rest are optional.
type Config struct {
	Store     *config.Store
	Surface   Surface
	Topology  Topology
	Templates *render.Templates
	Poller    Refresher
	Autostart Autostarter

	// OnStateChange is invoked on the event-loop goroutine after every
	// processed event, with a copy of the new state.
	OnStateChange func(State)

	// Now overrides the clock. Nil means time.Now.
	Now func() time.Time

	// DisableAnimTicker stops the coordinator from running its own frame
	// ticker; animation ticks must then be injected as events.
	DisableAnimTicker bool
}

// Coordinator runs the widget's single event loop.
type Coordinator struct {
	cfg  Config
	now  func() time.Time
	anim geometry.Animator

	events chan Event
	done   chan struct{}

	state State

	animStop chan struct{}
	keySeq   string

	snapMu   sync.Mutex
	snapshot State
}

// New creates a coordinator. Call Start to load state and begin processing.
func New(cfg Config) *Coordinator {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Coordinator{
		cfg:    cfg,
		now:    now,
		events: make(chan Event, 64),
		done:   make(chan struct{}),
	}
}

// Start loads settings, reconciles the startup geometry against the screen
// topology, primes the render surface, and launches the event loop. The
// first poll is scheduled shortly after the widget becomes visible.
func (c *Coordinator) Start() {
	st := c.cfg.Store.Load()

	width, height := geometry.ComputeSize(st.ScalePercent, geometry.BaseWidth, geometry.BaseHeight)
	pos := geometry.Point{X: st.Position.X, Y: st.Position.Y}
	if !geometry.ValidatePosition(pos, c.cfg.Topology.Screens(), width, height) {
		pos = geometry.Center(c.cfg.Topology.Primary(), width, height)
		st.Position = models.Position{X: pos.X, Y: pos.Y}
	}

	c.state = State{
		Settings: *st,
		Geometry: geometry.Rect{X: pos.X, Y: pos.Y, Width: width, Height: height},
	}

	if st.LoggingEnabled {
		if path, err := config.EnableDiagnosticLog(); err != nil {
			log.Printf("widget: diagnostic log unavailable: %v", err)
		} else {
			log.Printf("widget: logging to %s", path)
		}
	}

	surface := c.cfg.Surface
	surface.SetAlwaysOnTop(st.AlwaysOnTop)
	surface.Move(pos.X, pos.Y)
	surface.SetFixedSize(width, height)
	surface.SetZoom(float64(st.ScalePercent) / 100)
	c.rerender()
	c.publish()

	if c.cfg.Poller != nil {
		time.AfterFunc(initialPollDelay, c.cfg.Poller.Refresh)
	}

	go c.run()
}

// Done is closed when the widget has exited.
func (c *Coordinator) Done() <-chan struct{} {
	return c.done
}

// Snapshot returns a copy of the current state.
func (c *Coordinator) Snapshot() State {
	c.snapMu.Lock()
	defer c.snapMu.Unlock()
	return c.snapshot
}

// Post delivers an event to the loop. Events posted after exit are dropped.
func (c *Coordinator) Post(ev Event) {
	select {
	case <-c.done:
	case c.events <- ev:
	}
}

// StatusUpdate delivers a completed poll sample. Called by the poller.
func (c *Coordinator) StatusUpdate(sample models.StatusSample) {
	c.Post(statusEvent{Sample: sample})
}

// RequestReload asks the loop to re-read settings from disk. Called by the
// file watcher.
func (c *Coordinator) RequestReload() {
	c.Post(reloadEvent{})
}

// RequestExit asks the loop to flush and shut down.
func (c *Coordinator) RequestExit() {
	c.Post(ExitEvent{})
}

func (c *Coordinator) run() {
	for ev := range c.events {
		if !c.handle(ev) {
			return
		}
		c.publish()
	}
}

// handle processes one event. It returns false only on exit.
func (c *Coordinator) handle(ev Event) bool {
	switch ev := ev.(type) {
	case DragMoveEvent:
		c.handleDrag(ev)
	case NudgeEvent:
		c.handleNudge(ev)
	case SetScaleEvent:
		c.handleSetScale(ev)
	case SetCredentialsEvent:
		c.handleSetCredentials(ev)
	case ToggleTemplateEvent:
		c.state.Settings.UseAlternateTemplate = !c.state.Settings.UseAlternateTemplate
		c.rerender()
		c.persist()
	case ToggleAlwaysOnTopEvent:
		c.state.Settings.AlwaysOnTop = !c.state.Settings.AlwaysOnTop
		c.cfg.Surface.SetAlwaysOnTop(c.state.Settings.AlwaysOnTop)
		c.persist()
	case ToggleLoggingEvent:
		c.handleToggleLogging()
	case ToggleAutostartEvent:
		c.handleToggleAutostart()
	case RefreshEvent:
		if c.cfg.Poller != nil {
			c.cfg.Poller.Refresh()
		}
	case KeyPressEvent:
		c.handleKey(ev)
	case statusEvent:
		c.state.Sample = ev.Sample
		c.rerender()
	case animTickEvent:
		c.handleAnimTick(ev)
	case reloadEvent:
		c.handleReload()
	case ExitEvent:
		c.persist()
		c.stopAnimTicker()
		c.cfg.Surface.Close()
		c.publish()
		close(c.done)
		return false
	}
	return true
}

func (c *Coordinator) handleDrag(ev DragMoveEvent) {
	pos := geometry.Point{X: c.state.Geometry.X + ev.DX, Y: c.state.Geometry.Y + ev.DY}

	if geometry.IsSlowDrag(ev.DX, ev.DY) {
		screen := c.screenFor(pos)
		pos = geometry.ApplySnap(pos, screen, c.state.Geometry.Width, c.state.Geometry.Height, geometry.SnapThreshold)
	}

	c.moveTo(pos)
	c.persist()
}

func (c *Coordinator) handleNudge(ev NudgeEvent) {
	pos := geometry.Point{
		X: c.state.Geometry.X + ev.DX*geometry.NudgeStep,
		Y: c.state.Geometry.Y + ev.DY*geometry.NudgeStep,
	}
	c.moveTo(pos)
	c.persist()
}

func (c *Coordinator) handleSetScale(ev SetScaleEvent) {
	pct := models.ClampScale(ev.Percent)
	c.state.Settings.ScalePercent = pct

	width, height := geometry.ComputeSize(pct, geometry.BaseWidth, geometry.BaseHeight)
	target := geometry.Rect{X: c.state.Geometry.X, Y: c.state.Geometry.Y, Width: width, Height: height}

	now := c.now()
	from := c.state.Geometry
	if c.anim.Active() {
		// A newer request cancels the in-flight transition and starts from
		// the interpolated geometry.
		from = c.anim.Current(now)
	}

	// Content tracks the final scale immediately; only the outer box animates.
	c.cfg.Surface.SetZoom(float64(pct) / 100)
	c.anim.Start(from, target, geometry.DefaultTransitionDuration, now)
	c.startAnimTicker()
	c.persist()
}

func (c *Coordinator) handleAnimTick(ev animTickEvent) {
	if !c.anim.Active() {
		return
	}
	rect, done := c.anim.Step(ev.At)
	c.cfg.Surface.SetFixedSize(rect.Width, rect.Height)
	if done {
		c.stopAnimTicker()
		c.state.Geometry = rect
		c.persist()
	}
}

func (c *Coordinator) handleSetCredentials(ev SetCredentialsEvent) {
	c.state.Settings.Credentials = ev.Credentials
	c.rerender()
	c.persist()
	if c.cfg.Poller != nil {
		// The poller decides whether the update warrants an immediate poll.
		c.cfg.Poller.SetCredentials(ev.Credentials)
	}
}

func (c *Coordinator) handleToggleLogging() {
	c.state.Settings.LoggingEnabled = !c.state.Settings.LoggingEnabled
	if c.state.Settings.LoggingEnabled {
		if path, err := config.EnableDiagnosticLog(); err != nil {
			log.Printf("widget: diagnostic log unavailable: %v", err)
		} else {
			log.Printf("widget: logging to %s", path)
		}
	} else {
		config.DisableDiagnosticLog()
	}
	c.persist()
}

func (c *Coordinator) handleToggleAutostart() {
	desired := !c.state.Settings.Autostart
	if c.cfg.Autostart != nil {
		var err error
		if desired {
			err = c.cfg.Autostart.Enable()
		} else {
			err = c.cfg.Autostart.Disable()
		}
		if err != nil {
			log.Printf("widget: autostart toggle failed: %v", err)
			return
		}
	}
	c.state.Settings.Autostart = desired
	c.persist()
}

func (c *Coordinator) handleKey(ev KeyPressEvent) {
	c.keySeq += ev.Key
	if len(c.keySeq) > len(debugSequence) {
		c.keySeq = c.keySeq[len(c.keySeq)-len(debugSequence):]
	}
	if c.keySeq == debugSequence {
		c.state.DebugBorder = !c.state.DebugBorder
		c.keySeq = ""
		log.Printf("widget: debug border %v", c.state.DebugBorder)
		c.rerender()
	}
}

func (c *Coordinator) handleReload() {
	st := c.cfg.Store.Reload()
	if *st == c.state.Settings {
		return
	}
	log.Printf("widget: settings changed on disk, reloading")

	c.anim.Cancel()
	c.stopAnimTicker()

	width, height := geometry.ComputeSize(st.ScalePercent, geometry.BaseWidth, geometry.BaseHeight)
	pos := geometry.Point{X: st.Position.X, Y: st.Position.Y}
	if !geometry.ValidatePosition(pos, c.cfg.Topology.Screens(), width, height) {
		pos = geometry.Center(c.cfg.Topology.Primary(), width, height)
		st.Position = models.Position{X: pos.X, Y: pos.Y}
	}

	c.state.Settings = *st
	c.state.Geometry = geometry.Rect{X: pos.X, Y: pos.Y, Width: width, Height: height}

	surface := c.cfg.Surface
	surface.SetAlwaysOnTop(st.AlwaysOnTop)
	surface.Move(pos.X, pos.Y)
	surface.SetFixedSize(width, height)
	surface.SetZoom(float64(st.ScalePercent) / 100)
	c.rerender()

	if c.cfg.Poller != nil {
		c.cfg.Poller.SetCredentials(st.Credentials)
	}
}

// moveTo applies a new top-left position to state and surface.
func (c *Coordinator) moveTo(pos geometry.Point) {
	c.state.Geometry.X = pos.X
	c.state.Geometry.Y = pos.Y
	c.state.Settings.Position = models.Position{X: pos.X, Y: pos.Y}
	c.cfg.Surface.Move(pos.X, pos.Y)
}

// screenFor picks the screen containing the window center, falling back to
// the primary screen.
func (c *Coordinator) screenFor(pos geometry.Point) geometry.Rect {
	center := geometry.Point{
		X: pos.X + c.state.Geometry.Width/2,
		Y: pos.Y + c.state.Geometry.Height/2,
	}
	for _, s := range c.cfg.Topology.Screens() {
		if s.Contains(center) {
			return s
		}
	}
	return c.cfg.Topology.Primary()
}

func (c *Coordinator) rerender() {
	updatedAt := ""
	if !c.state.Sample.SampledAt.IsZero() {
		updatedAt = c.state.Sample.SampledAt.Format("2006-01-02 15:04:05")
	}
	markup, err := c.cfg.Templates.Render(c.state.Mode(), render.Data{
		Streak:      c.state.Sample.Streak,
		Username:    c.state.Settings.Credentials.Username,
		UpdatedAt:   updatedAt,
		Available:   c.state.Sample.Available,
		DebugBorder: c.state.DebugBorder,
	})
	if err != nil {
		log.Printf("widget: render failed: %v", err)
		return
	}
	c.cfg.Surface.SetContent(markup)
}

// persist writes the full settings snapshot. Storage failures are logged and
// never surfaced as user-facing errors.
func (c *Coordinator) persist() {
	st := c.state.Settings
	if err := c.cfg.Store.Save(&st); err != nil {
		log.Printf("widget: settings save failed: %v", err)
	}
}

func (c *Coordinator) publish() {
	snap := c.state
	c.snapMu.Lock()
	c.snapshot = snap
	c.snapMu.Unlock()
	if c.cfg.OnStateChange != nil {
		c.cfg.OnStateChange(snap)
	}
}

func (c *Coordinator) startAnimTicker() {
	if c.cfg.DisableAnimTicker || c.animStop != nil {
		return
	}
	stop := make(chan struct{})
	c.animStop = stop
	go func() {
		ticker := time.NewTicker(frameInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case now := <-ticker.C:
				c.Post(animTickEvent{At: now})
			}
		}
	}()
}

func (c *Coordinator) stopAnimTicker() {
	if c.animStop != nil {
		close(c.animStop)
		c.animStop = nil
	}
}
