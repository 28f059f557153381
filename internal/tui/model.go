package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lums/lums-timer/internal/agenda"
	"github.com/lums/lums-timer/internal/config"
	"github.com/lums/lums-timer/internal/display"
	"github.com/lums/lums-timer/internal/layout"
	"github.com/lums/lums-timer/internal/urgency"
)

// Model is the root Bubble Tea model of the kiosk. Bubble Tea delivers
// messages one at a time, so Update is the only writer of the machine and
// View always renders a snapshot taken at the start of the frame.
type Model struct {
	machine   *agenda.Machine
	presenter *display.Presenter
	digits    blockFace
	title     trackedFace
	next      trackedFace
	scaling   int
	keys      keyMap

	clock func() time.Time
	now   time.Time

	width    int
	height   int
	quitting bool
}

// Option customises a Model.
type Option func(*Model)

// WithClock replaces time.Now, mainly for tests.
func WithClock(clock func() time.Time) Option {
	return func(m *Model) { m.clock = clock }
}

// NewModel constructs a Model for a decoded agenda.
func NewModel(a *config.Agenda, opts ...Option) Model {
	m := Model{
		machine: agenda.NewMachine(a.Stages, a.Config.Announcement()),
		digits:  blockFace{unit: digitsUnit},
		title:   trackedFace{unit: titleUnit},
		next:    trackedFace{unit: nextUnit},
		scaling: a.Config.Scaling,
		keys:    newKeyMap(),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.now = m.clock()

	fitter := layout.NewFitter(map[layout.Slot]layout.Face{
		layout.SlotDigits: m.digits,
		layout.SlotTitle:  m.title,
		layout.SlotNext:   m.next,
	})
	m.presenter = display.NewPresenter(
		urgency.NewPolicy(a.Config.YellowWarningTime),
		fitter,
		display.ScaleSizes(terminalReference, 0, m.scaling),
	)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.tickFrame()
}

// tickFrame schedules the next frame.
func (m Model) tickFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}
