// Package layout sizes text so it fits the width available on the display.
package layout

import "github.com/sirupsen/logrus"

// Slot names a logical font used on the display.
type Slot int

const (
	SlotDigits Slot = iota
	SlotTitle
	SlotNext
)

func (s Slot) String() string {
	switch s {
	case SlotDigits:
		return "digits"
	case SlotTitle:
		return "title"
	case SlotNext:
		return "next"
	default:
		return "unknown"
	}
}

// Face measures rendered text. Width units are whatever the renderer draws in
// (pixels, terminal cells) and must match the available width passed to Fit.
type Face interface {
	Measure(text string, size int) int
}

// FaceFunc adapts a function to Face.
type FaceFunc func(text string, size int) int

func (f FaceFunc) Measure(text string, size int) int { return f(text, size) }

// Fitted is the outcome of Fit.
type Fitted struct {
	Size  int
	Width int
}

type measureKey struct {
	slot Slot
	text string
	size int
}

// Fitter shrinks text proportionally to an available width and memoizes every
// measurement it takes. Entries are never evicted. Not safe for concurrent use.
type Fitter struct {
	faces map[Slot]Face
	cache map[measureKey]int
}

// NewFitter returns a Fitter measuring each slot with its face.
func NewFitter(faces map[Slot]Face) *Fitter {
	f := &Fitter{
		faces: make(map[Slot]Face, len(faces)),
		cache: make(map[measureKey]int),
	}
	for slot, face := range faces {
		f.faces[slot] = face
	}
	return f
}

// Measure returns the width of text at size in slot, from cache when possible.
// A slot without a face measures as zero.
func (f *Fitter) Measure(slot Slot, text string, size int) int {
	key := measureKey{slot: slot, text: text, size: size}
	if w, ok := f.cache[key]; ok {
		return w
	}
	face, ok := f.faces[slot]
	if !ok {
		logrus.Debugf("no face registered for slot %s", slot)
		return 0
	}
	w := face.Measure(text, size)
	f.cache[key] = w
	return w
}

// Fit measures text at size and, when it is wider than available, rescales the
// size once by available/width and measures again. A small residual overflow
// after the single rescale is accepted. The size never drops below 1.
func (f *Fitter) Fit(slot Slot, text string, size, available int) Fitted {
	available = max(available, 0)
	width := f.Measure(slot, text, size)
	if width <= available {
		return Fitted{Size: size, Width: width}
	}
	size = size * available / width
	if size < 1 {
		size = 1
	}
	return Fitted{Size: size, Width: f.Measure(slot, text, size)}
}

// CacheLen reports how many measurements are cached.
func (f *Fitter) CacheLen() int { return len(f.cache) }
