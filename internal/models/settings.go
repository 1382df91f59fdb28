// Package models defines the persisted and derived data types shared across streakbadge.
package models

// Scale bounds for the badge, in percent of the base dimensions.
const (
	MinScalePercent = 100
	MaxScalePercent = 500
)

// Position is a window top-left corner in virtual desktop coordinates.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Credentials identify the osu! API client and the subject whose streak is
// shown. Partial sets are persisted but never sent to the provider.
type Credentials struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Username     string `json:"username"`
}

// Complete reports whether every credential field is non-empty. This is the
// single gating predicate used by the poller and the coordinator.
func (c Credentials) Complete() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.Username != ""
}

// Settings represents the persisted widget configuration.
// This corresponds to ~/.streakbadge/settings.json.
type Settings struct {
	Position             Position    `json:"position"`
	ScalePercent         int         `json:"scale"`
	UseAlternateTemplate bool        `json:"use_alternative_template"`
	AlwaysOnTop          bool        `json:"always_on_top"`
	Credentials          Credentials `json:"credentials"`
	LoggingEnabled       bool        `json:"logging_enabled"`
	Autostart            bool        `json:"autostart"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Position:     Position{X: 100, Y: 100},
		ScalePercent: MinScalePercent,
		AlwaysOnTop:  true,
	}
}

// ClampScale clamps a scale percentage into [MinScalePercent, MaxScalePercent].
func ClampScale(pct int) int {
	if pct < MinScalePercent {
		return MinScalePercent
	}
	if pct > MaxScalePercent {
		return MaxScalePercent
	}
	return pct
}
