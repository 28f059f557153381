// Package display derives what the kiosk shows for one frame from a snapshot
// of the agenda and the current time.
package display

import (
	"strings"
	"time"

	"github.com/lums/lums-timer/internal/agenda"
	"github.com/lums/lums-timer/internal/clock"
	"github.com/lums/lums-timer/internal/layout"
	"github.com/lums/lums-timer/internal/urgency"
)

// NextPrefix precedes the name of the upcoming stage.
const NextPrefix = "Next: "

// Countdown is the large digits block.
type Countdown struct {
	Text  string
	Band  urgency.Band
	Size  int
	Width int
}

// Line is a single line of fitted text.
type Line struct {
	Text  string
	Size  int
	Width int
}

// Frame holds the three render items. Next is nil when the upcoming stage has
// no name.
type Frame struct {
	Countdown Countdown
	Title     Line
	Next      *Line
}

// Presenter turns agenda snapshots into frames.
type Presenter struct {
	policy urgency.Policy
	fitter *layout.Fitter
	sizes  Sizes
}

// NewPresenter wires a policy and fitter for the given sizes.
func NewPresenter(policy urgency.Policy, fitter *layout.Fitter, sizes Sizes) *Presenter {
	return &Presenter{policy: policy, fitter: fitter, sizes: sizes}
}

// Resize switches to new sizes. Cached measurements stay valid.
func (p *Presenter) Resize(sizes Sizes) { p.sizes = sizes }

// Sizes returns the sizes in use.
func (p *Presenter) Sizes() Sizes { return p.sizes }

// Frame computes the frame for snap at now.
func (p *Presenter) Frame(snap agenda.Snapshot, now time.Time) Frame {
	text, band := p.countdown(snap, now)
	digits := p.fitter.Fit(layout.SlotDigits, text, p.sizes.Digits, p.sizes.Available)
	title := p.fitter.Fit(layout.SlotTitle, snap.Current.Name, p.sizes.Title, p.sizes.Available)

	f := Frame{
		Countdown: Countdown{Text: text, Band: band, Size: digits.Size, Width: digits.Width},
		Title:     Line{Text: snap.Current.Name, Size: title.Size, Width: title.Width},
	}
	if strings.TrimSpace(snap.Next.Name) != "" {
		nextText := NextPrefix + snap.Next.Name
		next := p.fitter.Fit(layout.SlotNext, nextText, p.sizes.Next, p.sizes.Available)
		f.Next = &Line{Text: nextText, Size: next.Size, Width: next.Width}
	}
	return f
}

func (p *Presenter) countdown(snap agenda.Snapshot, now time.Time) (string, urgency.Band) {
	duration := snap.Current.Duration
	switch {
	case duration == 0:
		return clock.FormatWallClock(now), urgency.Neutral
	case snap.Phase == agenda.Waiting:
		return clock.FormatDuration(duration), urgency.Safe
	default:
		remaining := clock.Remaining(snap.Anchor, duration, now)
		return clock.FormatDuration(remaining), p.policy.Evaluate(remaining, duration)
	}
}
