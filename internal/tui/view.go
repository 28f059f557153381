package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting || m.width <= 0 || m.height <= 0 {
		return ""
	}

	frame := m.presenter.Frame(m.machine.Snapshot(), m.now)
	sizes := m.presenter.Sizes()
	c := newCanvas(m.width, m.height)

	digits := lipgloss.NewStyle().Foreground(bandColor(frame.Countdown.Band)).
		Render(m.digits.Render(frame.Countdown.Text, frame.Countdown.Size))
	digitsBottom := m.height/4 + 350*m.height/1080
	c.place(digitsBottom-lipgloss.Height(digits), (m.width-lipgloss.Width(digits))/2, digits)

	title := lipgloss.NewStyle().Foreground(colorTitle).Bold(true).
		Render(m.title.Render(frame.Title.Text, frame.Title.Size))
	c.place(2*m.height/3-lipgloss.Height(title)/2, (m.width-lipgloss.Width(title))/2, title)

	if frame.Next != nil {
		next := lipgloss.NewStyle().Foreground(colorNext).
			Render(m.next.Render(frame.Next.Text, frame.Next.Size))
		row := m.height - lipgloss.Height(next) - nextBottomPadding
		c.place(row, m.width-lipgloss.Width(next)-sizes.Margin, next)
	}

	return c.String()
}

// canvas is a fixed grid of terminal rows that blocks are dropped onto.
type canvas struct {
	width int
	rows  []string
}

func newCanvas(width, height int) *canvas {
	return &canvas{width: width, rows: make([]string, height)}
}

// place writes block starting at row/col. Rows outside the canvas are dropped
// and a later block replaces any earlier one on the same row.
func (c *canvas) place(row, col int, block string) {
	if col < 0 {
		col = 0
	}
	if row < 0 {
		row = 0
	}
	pad := strings.Repeat(" ", col)
	for i, line := range strings.Split(block, "\n") {
		r := row + i
		if r >= len(c.rows) {
			return
		}
		c.rows[r] = pad + line
	}
}

func (c *canvas) String() string {
	out := make([]string, len(c.rows))
	for i, row := range c.rows {
		out[i] = ansi.Truncate(row, c.width, "")
	}
	return strings.Join(out, "\n")
}
