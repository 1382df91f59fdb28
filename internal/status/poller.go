package status

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/streakbadge-io/streakbadge/internal/models"
)

// DefaultInterval is the periodic poll interval.
const DefaultInterval = 5 * time.Minute

const pollTimeout = 30 * time.Second

// pollState is the poller's state machine: Idle → Polling → Idle. Ticks and
// manual triggers that arrive while Polling are dropped, never queued.
type pollState int

const (
	stateIdle pollState = iota
	statePolling
)

// Poller drives the periodic status poll. All state lives on a single loop
// goroutine; the fetch itself runs in a child goroutine and delivers its
// result back over a channel, so at most one poll is ever in flight.
type Poller struct {
	provider Provider
	interval time.Duration
	notify   func(models.StatusSample)
	now      func() time.Time

	trigger  chan struct{}
	credsCh  chan models.Credentials
	done     chan struct{}
	stopOnce sync.Once

	initial models.Credentials
}

// NewPoller creates a poller. notify is called on the poller's goroutine
// after every completed poll, successful or degraded.
func NewPoller(provider Provider, interval time.Duration, creds models.Credentials, notify func(models.StatusSample)) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		provider: provider,
		interval: interval,
		notify:   notify,
		now:      time.Now,
		trigger:  make(chan struct{}, 1),
		credsCh:  make(chan models.Credentials, 1),
		done:     make(chan struct{}),
		initial:  creds,
	}
}

// Start launches the poll loop.
func (p *Poller) Start() {
	go p.loop()
}

// Stop terminates the poll loop. Safe to call more than once.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.done) })
}

// Refresh requests an immediate poll outside the periodic timer. The
// periodic timer is not reset; a request while a poll is in flight is
// dropped.
func (p *Poller) Refresh() {
	select {
	case p.trigger <- struct{}{}:
	default:
	}
}

// SetCredentials hands updated credentials to the poll loop. An immediate
// poll fires only if the update leaves all three fields non-empty.
func (p *Poller) SetCredentials(creds models.Credentials) {
	// Keep only the most recent update if the loop hasn't drained yet.
	for {
		select {
		case p.credsCh <- creds:
			return
		case <-p.credsCh:
		}
	}
}

func (p *Poller) loop() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	state := stateIdle
	creds := p.initial
	var results chan models.StatusSample

	begin := func() {
		state = statePolling
		results = p.begin(creds)
	}

	for {
		select {
		case <-p.done:
			return

		case c := <-p.credsCh:
			changed := c != creds
			creds = c
			if changed && creds.Complete() && state == stateIdle {
				begin()
			}

		case <-ticker.C:
			if state == statePolling {
				continue // tick dropped while a poll is in flight
			}
			begin()

		case <-p.trigger:
			if state == statePolling {
				continue
			}
			begin()

		case sample := <-results:
			state = stateIdle
			results = nil
			p.notify(sample)
		}
	}
}

func (p *Poller) begin(creds models.Credentials) chan models.StatusSample {
	ch := make(chan models.StatusSample, 1)
	go func() {
		ch <- p.pollOnce(creds)
	}()
	return ch
}

// pollOnce performs a single poll. Incomplete credentials fail fast with no
// network attempt; any provider error degrades to an unavailable sample.
func (p *Poller) pollOnce(creds models.Credentials) models.StatusSample {
	sampledAt := p.now()

	if !creds.Complete() {
		return models.StatusSample{SampledAt: sampledAt}
	}

	ctx, cancel := context.WithTimeout(context.Background(), pollTimeout)
	defer cancel()

	streak, err := p.provider.FetchStreak(ctx, creds)
	if err != nil {
		log.Printf("status: poll failed: %v", err)
		return models.StatusSample{SampledAt: sampledAt}
	}

	return models.StatusSample{Streak: streak, SampledAt: sampledAt, Available: true}
}
