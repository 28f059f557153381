package tui

import "time"

// Message types for Bubble Tea update loop.

// frameMsg fires every frame with the time it was produced.
type frameMsg time.Time
