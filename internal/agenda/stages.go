package agenda

// TailPadding is the number of blank stages kept after the last authored stage
// and after the cursor, so lookahead never runs off the end of the list.
const TailPadding = 5

// Stage is one agenda item. A zero Duration marks a static slide that shows the
// wall clock instead of a countdown.
type Stage struct {
	Name     string `json:"name" yaml:"name"`
	Duration int    `json:"duration" yaml:"duration" validate:"gte=0"`
}

// IsBlank reports whether s looks like a padding entry.
func (s Stage) IsBlank() bool {
	return s.Name == "" && s.Duration == 0
}

// StageList is an ordered, mutable sequence of stages with a padded tail.
type StageList struct {
	stages []Stage
}

// NewStageList copies stages and pads the result.
func NewStageList(stages []Stage) *StageList {
	l := &StageList{stages: make([]Stage, len(stages), len(stages)+TailPadding)}
	copy(l.stages, stages)
	l.pad(0)
	return l
}

// Len returns the number of entries, padding included.
func (l *StageList) Len() int { return len(l.stages) }

// At returns the stage at i, or a blank stage when i is out of range.
func (l *StageList) At(i int) Stage {
	if i < 0 || i >= len(l.stages) {
		return Stage{}
	}
	return l.stages[i]
}

// Stages returns a copy of all entries.
func (l *StageList) Stages() []Stage {
	out := make([]Stage, len(l.stages))
	copy(out, l.stages)
	return out
}

// TrailingBlanks counts blank entries at the end of the list.
func (l *StageList) TrailingBlanks() int {
	n := 0
	for i := len(l.stages) - 1; i >= 0 && l.stages[i].IsBlank(); i-- {
		n++
	}
	return n
}

func (l *StageList) insert(i int, s Stage) {
	if i > len(l.stages) {
		i = len(l.stages)
	}
	l.stages = append(l.stages, Stage{})
	copy(l.stages[i+1:], l.stages[i:])
	l.stages[i] = s
}

func (l *StageList) removeAt(i int) {
	if i < 0 || i >= len(l.stages) {
		return
	}
	l.stages = append(l.stages[:i], l.stages[i+1:]...)
}

func (l *StageList) swap(i, j int) {
	if i < 0 || j < 0 || i >= len(l.stages) || j >= len(l.stages) {
		return
	}
	l.stages[i], l.stages[j] = l.stages[j], l.stages[i]
}

// pad normalises the tail to exactly the blanks needed for TailPadding after
// the last authored stage and TailPadding entries after cursor. Surplus blanks
// are trimmed.
func (l *StageList) pad(cursor int) {
	authored := len(l.stages) - l.TrailingBlanks()
	want := max(authored+TailPadding, cursor+1+TailPadding)
	l.stages = l.stages[:authored]
	for len(l.stages) < want {
		l.stages = append(l.stages, Stage{})
	}
}
