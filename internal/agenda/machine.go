package agenda

import (
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultAnnouncement is inserted when no announcement text is configured.
const DefaultAnnouncement = "Announcement"

// Phase tells whether the current stage's countdown is running.
type Phase int

const (
	Waiting Phase = iota
	Counting
)

func (p Phase) String() string {
	switch p {
	case Waiting:
		return "waiting"
	case Counting:
		return "counting"
	default:
		return "unknown"
	}
}

// Command is an operator action on the agenda.
type Command int

const (
	Next Command = iota
	Back
	InsertAnnouncement
	SwapWithNext
	DeleteNext
)

func (c Command) String() string {
	switch c {
	case Next:
		return "next"
	case Back:
		return "back"
	case InsertAnnouncement:
		return "insert-announcement"
	case SwapWithNext:
		return "swap-with-next"
	case DeleteNext:
		return "delete-next"
	default:
		return "unknown"
	}
}

// Snapshot is a consistent, read-only view of the machine taken at frame start.
type Snapshot struct {
	Cursor  int
	Phase   Phase
	Anchor  time.Time
	Current Stage
	Next    Stage
	Len     int
}

// Machine owns the stage list, cursor, phase and countdown anchor.
// It is not safe for concurrent use; callers serialize Apply and Snapshot.
type Machine struct {
	stages       *StageList
	cursor       int
	phase        Phase
	anchor       time.Time
	announcement string
}

// NewMachine builds a machine over stages. An empty announcement falls back to
// DefaultAnnouncement.
func NewMachine(stages []Stage, announcement string) *Machine {
	if announcement == "" {
		announcement = DefaultAnnouncement
	}
	return &Machine{
		stages:       NewStageList(stages),
		phase:        Waiting,
		announcement: announcement,
	}
}

// Cursor returns the index of the current stage.
func (m *Machine) Cursor() int { return m.cursor }

// Phase returns the current phase.
func (m *Machine) Phase() Phase { return m.phase }

// Anchor returns the instant the running countdown started. It is the zero
// time while Waiting.
func (m *Machine) Anchor() time.Time { return m.anchor }

// Current returns the stage under the cursor.
func (m *Machine) Current() Stage { return m.stages.At(m.cursor) }

// Stages returns a copy of the full list, padding included.
func (m *Machine) Stages() []Stage { return m.stages.Stages() }

// TrailingBlanks reports how many blank entries end the list.
func (m *Machine) TrailingBlanks() int { return m.stages.TrailingBlanks() }

// Snapshot captures the state needed to render one frame.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		Cursor:  m.cursor,
		Phase:   m.phase,
		Anchor:  m.anchor,
		Current: m.stages.At(m.cursor),
		Next:    m.stages.At(m.cursor + 1),
		Len:     m.stages.Len(),
	}
}

// Apply performs cmd at time now. Every command is total.
func (m *Machine) Apply(cmd Command, now time.Time) {
	switch cmd {
	case Next:
		m.next(now)
	case Back:
		m.back(now)
	case InsertAnnouncement:
		m.stages.insert(m.cursor+1, Stage{Name: m.announcement})
	case SwapWithNext:
		m.stages.swap(m.cursor, m.cursor+1)
		// The countdown keeps its anchor unless the swapped-in stage is untimed.
		if m.phase == Counting && m.Current().Duration == 0 {
			m.wait()
		}
	case DeleteNext:
		m.stages.removeAt(m.cursor + 1)
	}
	m.stages.pad(m.cursor)

	logrus.WithFields(logrus.Fields{
		"command": cmd.String(),
		"cursor":  m.cursor,
		"phase":   m.phase.String(),
		"stage":   m.Current().Name,
	}).Debug("agenda transition")
}

func (m *Machine) next(now time.Time) {
	if m.phase == Waiting && m.Current().Duration > 0 {
		m.count(now)
		return
	}
	m.wait()
	if m.cursor < m.stages.Len()-1 {
		m.cursor++
	}
}

func (m *Machine) back(now time.Time) {
	if m.phase == Counting {
		m.wait()
		return
	}
	if m.cursor == 0 {
		return
	}
	m.cursor--
	if m.Current().Duration > 0 {
		m.count(now)
	}
}

func (m *Machine) count(now time.Time) {
	m.phase = Counting
	m.anchor = now
}

func (m *Machine) wait() {
	m.phase = Waiting
	m.anchor = time.Time{}
}
