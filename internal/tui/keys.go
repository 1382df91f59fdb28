package tui

import "github.com/charmbracelet/bubbles/key"

// GlobalKeys are always active.
type GlobalKeys struct {
	Quit    key.Binding
	Refresh key.Binding
	Markup  key.Binding
}

var globalKeys = GlobalKeys{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+q"),
		key.WithHelp("q", "quit"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Markup: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "markup"),
	),
}

// MoveKeys move the badge window.
type MoveKeys struct {
	NudgeUp    key.Binding
	NudgeDown  key.Binding
	NudgeLeft  key.Binding
	NudgeRight key.Binding

	SlowUp    key.Binding
	SlowDown  key.Binding
	SlowLeft  key.Binding
	SlowRight key.Binding

	FastUp    key.Binding
	FastDown  key.Binding
	FastLeft  key.Binding
	FastRight key.Binding
}

var moveKeys = MoveKeys{
	NudgeUp: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("arrows", "nudge"),
	),
	NudgeDown: key.NewBinding(
		key.WithKeys("down"),
	),
	NudgeLeft: key.NewBinding(
		key.WithKeys("left"),
	),
	NudgeRight: key.NewBinding(
		key.WithKeys("right"),
	),
	SlowUp: key.NewBinding(
		key.WithKeys("k"),
		key.WithHelp("h/j/k/l", "drag"),
	),
	SlowDown: key.NewBinding(
		key.WithKeys("j"),
	),
	SlowLeft: key.NewBinding(
		key.WithKeys("h"),
	),
	SlowRight: key.NewBinding(
		key.WithKeys("l"),
	),
	FastUp: key.NewBinding(
		key.WithKeys("K"),
		key.WithHelp("H/J/K/L", "fling"),
	),
	FastDown: key.NewBinding(
		key.WithKeys("J"),
	),
	FastLeft: key.NewBinding(
		key.WithKeys("H"),
	),
	FastRight: key.NewBinding(
		key.WithKeys("L"),
	),
}

// ToggleKeys flip widget preferences.
type ToggleKeys struct {
	Template  key.Binding
	OnTop     key.Binding
	Logging   key.Binding
	Autostart key.Binding
}

var toggleKeys = ToggleKeys{
	Template: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "template"),
	),
	OnTop: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "on top"),
	),
	Logging: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "logging"),
	),
	Autostart: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "autostart"),
	),
}

// InputKeys open the inline editors.
type InputKeys struct {
	Scale       key.Binding
	Credentials key.Binding
}

var inputKeys = InputKeys{
	Scale: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "scale"),
	),
	Credentials: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "credentials"),
	),
}

// OverlayKeys are active while an inline editor is open.
type OverlayKeys struct {
	Save   key.Binding
	Cancel key.Binding
	Next   key.Binding
}

var overlayKeys = OverlayKeys{
	Save: key.NewBinding(
		key.WithKeys("enter", "ctrl+s"),
		key.WithHelp("Enter", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "next field"),
	),
}
