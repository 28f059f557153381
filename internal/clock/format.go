// Package clock turns stage durations, running countdowns and the wall clock
// into the text shown on the kiosk.
package clock

import (
	"fmt"
	"math"
	"time"
)

// FormatDuration renders seconds as "MM:SS" with the minutes right-aligned in
// a two character field and the seconds zero-padded.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%2d:%02d", seconds/60, seconds%60)
}

// Remaining returns the whole seconds left of a countdown of duration seconds
// started at anchor. Halves round to even and the result never drops below 0.
func Remaining(anchor time.Time, duration int, now time.Time) int {
	left := math.RoundToEven(float64(duration) - now.Sub(anchor).Seconds())
	if left <= 0 {
		return 0
	}
	return int(left)
}

// FormatRemaining formats Remaining with FormatDuration.
func FormatRemaining(anchor time.Time, duration int, now time.Time) string {
	return FormatDuration(Remaining(anchor, duration, now))
}

// FormatWallClock renders now as 24-hour "HH:MM" in local time.
func FormatWallClock(now time.Time) string {
	return now.Local().Format("15:04")
}
