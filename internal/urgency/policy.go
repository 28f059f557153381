// Package urgency maps the time left on a countdown to a colour band.
package urgency

import "strconv"

// DefaultWarningSeconds applies to durations without a configured threshold.
const DefaultWarningSeconds = 120

// Band is the urgency class of the countdown display.
type Band int

const (
	// Neutral is used for the wall clock shown on untimed stages.
	Neutral Band = iota
	Safe
	Warning
	Critical
)

func (b Band) String() string {
	switch b {
	case Neutral:
		return "neutral"
	case Safe:
		return "safe"
	case Warning:
		return "warning"
	case Critical:
		return "critical"
	default:
		return "unknown"
	}
}

// Policy holds warning thresholds keyed by stage duration in seconds, written
// as a decimal string the way agenda files spell them.
type Policy struct {
	thresholds map[string]int
}

// NewPolicy copies thresholds. A nil map is fine.
func NewPolicy(thresholds map[string]int) Policy {
	p := Policy{thresholds: make(map[string]int, len(thresholds))}
	for k, v := range thresholds {
		p.thresholds[k] = v
	}
	return p
}

// Threshold returns the warning threshold for a stage of duration seconds.
func (p Policy) Threshold(duration int) int {
	if v, ok := p.thresholds[strconv.Itoa(duration)]; ok {
		return v
	}
	return DefaultWarningSeconds
}

// Evaluate classifies remaining seconds of a running countdown of duration
// seconds.
func (p Policy) Evaluate(remaining, duration int) Band {
	switch {
	case duration == 0:
		return Neutral
	case remaining <= 0:
		return Critical
	case remaining >= p.Threshold(duration):
		return Safe
	default:
		return Warning
	}
}
