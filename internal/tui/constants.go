package tui

import (
	"time"

	"github.com/lums/lums-timer/internal/display"
)

// Package-level constants to avoid magic numbers and improve readability.
const (
	framesPerSecond = 20
	frameInterval   = time.Second / framesPerSecond

	// Sizes at which the faces step up one scale. A 192 column terminal is
	// the reference, so title text there is tracked by 3 cells and digits
	// are drawn 4 cells per glyph pixel.
	digitsUnit = 150
	titleUnit  = 60
	nextUnit   = 65

	// nextBottomPadding keeps the "next" line off the last terminal row.
	nextBottomPadding = 1
)

// terminalReference scales the pixel reference to terminal columns.
//
//nolint:gochecknoglobals // immutable reference table.
var terminalReference = display.Reference{Width: 192, Title: 180, Next: 130, Digits: 600, Margin: 5}
