package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lums/lums-timer/internal/display"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) { // nolint:ireturn
	switch x := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = x.Width, x.Height
		m.presenter.Resize(display.ScaleSizes(terminalReference, m.width, m.scaling))
		return m, nil

	case frameMsg:
		m.now = time.Time(x)
		return m, m.tickFrame()

	case tea.KeyMsg:
		return m.handleKey(x)
	}

	return m, nil
}

// handleKey quits or applies the agenda command bound to the key.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}
	cmd, ok := m.keys.command(msg)
	if !ok {
		return m, nil
	}
	m.now = m.clock()
	m.machine.Apply(cmd, m.now)
	return m, nil
}
