// Package tui implements the terminal preview of the badge widget. It
// doubles as the development surface: the coordinator renders into it the
// same way it renders into a real window.
package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// ProgramRef is a shared reference to the tea.Program for goroutine sends.
// It's set after tea.NewProgram but before p.Run().
type ProgramRef struct {
	mu sync.Mutex
	p  *tea.Program
}

// NewRef creates an empty program reference.
func NewRef() *ProgramRef {
	return &ProgramRef{}
}

// Set stores the program.
func (r *ProgramRef) Set(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = p
}

// Send forwards a message to the program, if one is set.
func (r *ProgramRef) Send(msg tea.Msg) {
	r.mu.Lock()
	p := r.p
	r.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// Clear nils out the program reference, preventing post-exit sends.
func (r *ProgramRef) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = nil
}

// Run launches the preview and blocks until it exits. The ref must be the
// same one the widget surface sends through.
func Run(ctrl Controller, ref *ProgramRef) error {
	model := NewModel(ctrl)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	ref.Set(p)
	defer ref.Clear()

	_, err := p.Run()
	return err
}
