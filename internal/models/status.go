package models

import "time"

// streakEpoch is the reference instant the daily-challenge day count is
// measured from. The comparison against the reported streak depends on the
// remote service's own epoch; treat this as a fixed policy, not something to
// re-derive.
var streakEpoch = time.Date(2024, time.July, 24, 0, 0, 0, 0, time.UTC)

// PresentationMode selects which badge template is shown.
type PresentationMode int

// Presentation modes.
const (
	ModeDefault PresentationMode = iota
	ModeAlternate
)

func (m PresentationMode) String() string {
	if m == ModeAlternate {
		return "alternate"
	}
	return "default"
}

// StatusSample is the outcome of one poll. A new sample supersedes the prior
// one in full; no history is kept. Failed or unconfigured polls degrade to a
// sample with Streak 0 and Available false.
type StatusSample struct {
	Streak    int
	SampledAt time.Time
	Available bool
}

// Mode derives the presentation mode for the sample: alternate when the
// reported streak exactly matches the number of whole days since the epoch.
func (s StatusSample) Mode() PresentationMode {
	days := int(s.SampledAt.UTC().Sub(streakEpoch) / (24 * time.Hour))
	if days-s.Streak == 0 {
		return ModeAlternate
	}
	return ModeDefault
}
