package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lums/lums-timer/internal/agenda"
)

// keyMap defines the operator key bindings.
type keyMap struct {
	Next     key.Binding
	Back     key.Binding
	Announce key.Binding
	Swap     key.Binding
	Delete   key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("right", "enter"),
			key.WithHelp("→/enter", "start countdown or next stage"),
		),
		Back: key.NewBinding(
			key.WithKeys("left", "backspace"),
			key.WithHelp("←/backspace", "stop countdown or previous stage"),
		),
		Announce: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "insert announcement after current"),
		),
		Swap: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "swap with next"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete next"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// command maps a key press to an agenda command.
func (k keyMap) command(msg tea.KeyMsg) (agenda.Command, bool) {
	switch {
	case key.Matches(msg, k.Next):
		return agenda.Next, true
	case key.Matches(msg, k.Back):
		return agenda.Back, true
	case key.Matches(msg, k.Announce):
		return agenda.InsertAnnouncement, true
	case key.Matches(msg, k.Swap):
		return agenda.SwapWithNext, true
	case key.Matches(msg, k.Delete):
		return agenda.DeleteNext, true
	}
	return 0, false
}
