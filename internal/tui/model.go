package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/streakbadge-io/streakbadge/internal/models"
	"github.com/streakbadge-io/streakbadge/internal/widget"
)

// Drag step sizes in desktop pixels. The slow step stays under the snap
// cutoff so edge snapping engages; the fast step models a flick.
const (
	slowDragStep = 3
	fastDragStep = 20
)

// Overlay identifiers.
const (
	overlayNone = iota
	overlayScale
	overlayCreds
	overlayMarkup
)

// Credential field indexes.
const (
	credClientID = iota
	credClientSecret
	credUsername
	credFieldCount
)

// Model is the preview's bubbletea model.
type Model struct {
	ctrl Controller

	state   widget.State
	markup  string
	liveW   int
	liveH   int
	closing bool

	width  int
	height int

	activeOverlay int
	overlayErr    string

	scaleInput  textinput.Model
	credsInputs [credFieldCount]textinput.Model
	credsFocus  int

	markupView  viewport.Model
	markupReady bool
}

// NewModel creates the preview model seeded from the current widget state.
func NewModel(ctrl Controller) *Model {
	scale := textinput.New()
	scale.CharLimit = 3
	scale.Width = 6
	scale.Prompt = ""

	var creds [credFieldCount]textinput.Model
	for i := range creds {
		ti := textinput.New()
		ti.CharLimit = 100
		ti.Width = 40
		ti.Prompt = ""
		creds[i] = ti
	}
	creds[credClientSecret].EchoMode = textinput.EchoPassword

	st := ctrl.Snapshot()
	return &Model{
		ctrl:        ctrl,
		state:       st,
		liveW:       st.Geometry.Width,
		liveH:       st.Geometry.Height,
		scaleInput:  scale,
		credsInputs: creds,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.markupReady {
			m.markupView = viewport.New(msg.Width-4, msg.Height-6)
			m.markupReady = true
		} else {
			m.markupView.Width = msg.Width - 4
			m.markupView.Height = msg.Height - 6
		}
		m.markupView.SetContent(m.markup)
		return m, nil

	case StateChangedMsg:
		m.state = msg.State
		m.liveW = msg.State.Geometry.Width
		m.liveH = msg.State.Geometry.Height
		return m, nil

	case ContentMsg:
		m.markup = msg.Markup
		if m.markupReady {
			m.markupView.SetContent(m.markup)
		}
		return m, nil

	case SizeMsg:
		m.liveW = msg.Width
		m.liveH = msg.Height
		return m, nil

	case MoveMsg:
		m.state.Geometry.X = msg.X
		m.state.Geometry.Y = msg.Y
		return m, nil

	case WidgetClosedMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.activeOverlay {
	case overlayScale:
		return m.handleScaleOverlayKey(msg)
	case overlayCreds:
		return m.handleCredsOverlayKey(msg)
	case overlayMarkup:
		if key.Matches(msg, overlayKeys.Cancel) || key.Matches(msg, globalKeys.Markup) {
			m.activeOverlay = overlayNone
			return m, nil
		}
		var cmd tea.Cmd
		m.markupView, cmd = m.markupView.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, globalKeys.Quit):
		if m.closing {
			// Second press forces the exit even if the widget hangs.
			return m, tea.Quit
		}
		m.closing = true
		m.ctrl.Post(widget.ExitEvent{})
		return m, nil

	case key.Matches(msg, globalKeys.Refresh):
		m.ctrl.Post(widget.RefreshEvent{})
		return m, nil

	case key.Matches(msg, globalKeys.Markup):
		m.activeOverlay = overlayMarkup
		if m.markupReady {
			m.markupView.SetContent(m.markup)
			m.markupView.GotoTop()
		}
		return m, nil

	case key.Matches(msg, moveKeys.NudgeUp):
		m.ctrl.Post(widget.NudgeEvent{DY: -1})
	case key.Matches(msg, moveKeys.NudgeDown):
		m.ctrl.Post(widget.NudgeEvent{DY: 1})
	case key.Matches(msg, moveKeys.NudgeLeft):
		m.ctrl.Post(widget.NudgeEvent{DX: -1})
	case key.Matches(msg, moveKeys.NudgeRight):
		m.ctrl.Post(widget.NudgeEvent{DX: 1})

	case key.Matches(msg, moveKeys.SlowUp):
		m.ctrl.Post(widget.DragMoveEvent{DY: -slowDragStep})
	case key.Matches(msg, moveKeys.SlowDown):
		m.ctrl.Post(widget.DragMoveEvent{DY: slowDragStep})
	case key.Matches(msg, moveKeys.SlowLeft):
		m.ctrl.Post(widget.DragMoveEvent{DX: -slowDragStep})
	case key.Matches(msg, moveKeys.SlowRight):
		m.ctrl.Post(widget.DragMoveEvent{DX: slowDragStep})

	case key.Matches(msg, moveKeys.FastUp):
		m.ctrl.Post(widget.DragMoveEvent{DY: -fastDragStep})
	case key.Matches(msg, moveKeys.FastDown):
		m.ctrl.Post(widget.DragMoveEvent{DY: fastDragStep})
	case key.Matches(msg, moveKeys.FastLeft):
		m.ctrl.Post(widget.DragMoveEvent{DX: -fastDragStep})
	case key.Matches(msg, moveKeys.FastRight):
		m.ctrl.Post(widget.DragMoveEvent{DX: fastDragStep})

	case key.Matches(msg, toggleKeys.Template):
		m.ctrl.Post(widget.ToggleTemplateEvent{})
	case key.Matches(msg, toggleKeys.OnTop):
		m.ctrl.Post(widget.ToggleAlwaysOnTopEvent{})
	case key.Matches(msg, toggleKeys.Logging):
		m.ctrl.Post(widget.ToggleLoggingEvent{})
	case key.Matches(msg, toggleKeys.Autostart):
		m.ctrl.Post(widget.ToggleAutostartEvent{})

	case key.Matches(msg, inputKeys.Scale):
		m.activeOverlay = overlayScale
		m.overlayErr = ""
		m.scaleInput.SetValue(strconv.Itoa(m.state.Settings.ScalePercent))
		m.scaleInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, inputKeys.Credentials):
		m.activeOverlay = overlayCreds
		m.overlayErr = ""
		m.credsInputs[credClientID].SetValue(m.state.Settings.Credentials.ClientID)
		m.credsInputs[credClientSecret].SetValue(m.state.Settings.Credentials.ClientSecret)
		m.credsInputs[credUsername].SetValue(m.state.Settings.Credentials.Username)
		m.credsFocus = credClientID
		m.focusCredsField()
		return m, textinput.Blink

	default:
		// Bare digits feed the hidden debug-border sequence.
		s := msg.String()
		if len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
			m.ctrl.Post(widget.KeyPressEvent{Key: s})
		}
	}

	return m, nil
}

func (m *Model) handleScaleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, overlayKeys.Save):
		pct, err := strconv.Atoi(strings.TrimSpace(m.scaleInput.Value()))
		if err != nil {
			m.overlayErr = "scale must be a number"
			return m, nil
		}
		m.ctrl.Post(widget.SetScaleEvent{Percent: pct})
		m.activeOverlay = overlayNone
		m.scaleInput.Blur()
		return m, nil

	case key.Matches(msg, overlayKeys.Cancel):
		m.activeOverlay = overlayNone
		m.scaleInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.scaleInput, cmd = m.scaleInput.Update(msg)
	return m, cmd
}

func (m *Model) handleCredsOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, overlayKeys.Save):
		m.ctrl.Post(widget.SetCredentialsEvent{Credentials: models.Credentials{
			ClientID:     strings.TrimSpace(m.credsInputs[credClientID].Value()),
			ClientSecret: strings.TrimSpace(m.credsInputs[credClientSecret].Value()),
			Username:     strings.TrimSpace(m.credsInputs[credUsername].Value()),
		}})
		m.activeOverlay = overlayNone
		m.blurCredsFields()
		return m, nil

	case key.Matches(msg, overlayKeys.Cancel):
		m.activeOverlay = overlayNone
		m.blurCredsFields()
		return m, nil

	case key.Matches(msg, overlayKeys.Next):
		m.credsFocus = (m.credsFocus + 1) % credFieldCount
		m.focusCredsField()
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.credsInputs[m.credsFocus], cmd = m.credsInputs[m.credsFocus].Update(msg)
	return m, cmd
}

func (m *Model) focusCredsField() {
	for i := range m.credsInputs {
		if i == m.credsFocus {
			m.credsInputs[i].Focus()
		} else {
			m.credsInputs[i].Blur()
		}
	}
}

func (m *Model) blurCredsFields() {
	for i := range m.credsInputs {
		m.credsInputs[i].Blur()
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.activeOverlay == overlayMarkup {
		return m.renderMarkupView()
	}

	header := headerStyle.Render("StreakBadge") + hintStyle.Render("  desktop badge preview")

	var sections []string
	sections = append(sections, header, "")
	sections = append(sections, m.renderBadge(), "")
	sections = append(sections, m.renderInfo())

	switch m.activeOverlay {
	case overlayScale:
		sections = append(sections, "", m.renderScaleOverlay())
	case overlayCreds:
		sections = append(sections, "", m.renderCredsOverlay())
	}

	body := strings.Join(sections, "\n")

	gap := m.height - lipgloss.Height(body) - 1
	if gap < 0 {
		gap = 0
	}
	return body + strings.Repeat("\n", gap+1) + m.renderStatusBar()
}

// renderBadge draws a rough terminal rendition of the badge window. The box
// width tracks the live window width so scale transitions are visible.
func (m *Model) renderBadge() string {
	cols := m.liveW / 5
	if cols < 16 {
		cols = 16
	}
	if cols > m.width-4 && m.width > 20 {
		cols = m.width - 4
	}

	streak := "—"
	style := streakUnavailableStyle
	if m.state.Sample.Available {
		streak = strconv.Itoa(m.state.Sample.Streak)
		style = streakStyle
	}

	lines := []string{
		style.Render("🔥 " + streak),
		badgeCaptionStyle.Render("daily streak"),
	}
	if m.state.Settings.Credentials.Username != "" {
		lines = append(lines, badgeCaptionStyle.Render(m.state.Settings.Credentials.Username))
	}
	for i, line := range lines {
		if lipgloss.Width(line) > cols {
			lines[i] = ansi.Truncate(line, cols, "…")
		}
	}

	box := badgeBoxStyle
	if m.state.Mode() == models.ModeAlternate {
		box = badgeAltBoxStyle
	}
	if m.state.DebugBorder {
		box = badgeDebugBoxStyle
	}

	return box.Width(cols).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderInfo() string {
	st := m.state

	updated := "never"
	if !st.Sample.SampledAt.IsZero() {
		updated = st.Sample.SampledAt.Format("15:04:05")
	}

	rows := []struct {
		label string
		value string
	}{
		{"Position", fmt.Sprintf("%d, %d", st.Geometry.X, st.Geometry.Y)},
		{"Size", fmt.Sprintf("%d x %d", m.liveW, m.liveH)},
		{"Scale", fmt.Sprintf("%d%%", st.Settings.ScalePercent)},
		{"Template", st.Mode().String()},
		{"Updated", updated},
	}

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(infoLabelStyle.Render(r.label + ":"))
		b.WriteString(" ")
		b.WriteString(infoValueStyle.Render(r.value))
		b.WriteString("\n")
	}

	b.WriteString(infoLabelStyle.Render("Toggles:"))
	b.WriteString(" ")
	b.WriteString(renderToggle("alt", st.Settings.UseAlternateTemplate))
	b.WriteString("  ")
	b.WriteString(renderToggle("on-top", st.Settings.AlwaysOnTop))
	b.WriteString("  ")
	b.WriteString(renderToggle("logging", st.Settings.LoggingEnabled))
	b.WriteString("  ")
	b.WriteString(renderToggle("autostart", st.Settings.Autostart))

	return b.String()
}

func renderToggle(name string, on bool) string {
	if on {
		return toggleOnStyle.Render(name)
	}
	return toggleOffStyle.Render(name)
}

func (m *Model) renderScaleOverlay() string {
	body := overlayTitleStyle.Render("Scale (100-500%)") + "\n" +
		overlayLabelStyle.Render("Percent:") + " " + m.scaleInput.View()
	if m.overlayErr != "" {
		body += "\n" + overlayErrStyle.Render(m.overlayErr)
	}
	return overlayStyle.Render(body)
}

func (m *Model) renderCredsOverlay() string {
	labels := [credFieldCount]string{"Client ID", "Client Secret", "Username"}
	var lines []string
	lines = append(lines, overlayTitleStyle.Render("osu! API credentials"))
	for i := range m.credsInputs {
		lines = append(lines, overlayLabelStyle.Render(labels[i]+":")+" "+m.credsInputs[i].View())
	}
	return overlayStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderMarkupView() string {
	header := headerStyle.Render("Badge markup") + hintStyle.Render("  (m or Esc to close)")
	if !m.markupReady {
		return header
	}
	return header + "\n" + m.markupView.View()
}

func (m *Model) renderStatusBar() string {
	var hints string
	switch m.activeOverlay {
	case overlayScale:
		hints = keyHint("Enter", "apply") + "  " + keyHint("Esc", "cancel")
	case overlayCreds:
		hints = keyHint("Enter", "save") + "  " + keyHint("Tab", "next field") + "  " + keyHint("Esc", "cancel")
	default:
		hints = keyHint("q", "quit") + "  " + keyHint("arrows", "nudge") + "  " +
			keyHint("h/j/k/l", "drag") + "  " + keyHint("s", "scale") + "  " +
			keyHint("c", "credentials") + "  " + keyHint("t", "template") + "  " +
			keyHint("r", "refresh") + "  " + keyHint("m", "markup")
	}

	left := " " + hints
	if lipgloss.Width(left) > m.width {
		left = ansi.Truncate(left, m.width, "")
	}
	return statusBarStyle.Width(m.width).Render(left)
}

func keyHint(k, desc string) string {
	return keyStyle.Render(k) + " " + hintStyle.Render(desc)
}
