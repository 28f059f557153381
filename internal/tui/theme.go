package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lums/lums-timer/internal/urgency"
)

//nolint:gochecknoglobals // palette shared by the view.
var (
	colorSafe     = lipgloss.Color("#009600")
	colorWarning  = lipgloss.Color("#BEA000")
	colorCritical = lipgloss.Color("#FF0000")
	colorNeutral  = lipgloss.Color("#B1B1B1")
	colorTitle    = lipgloss.Color("#FFFFFF")
	colorNext     = lipgloss.Color("#B4B4B4")
)

func bandColor(b urgency.Band) lipgloss.Color {
	switch b {
	case urgency.Safe:
		return colorSafe
	case urgency.Warning:
		return colorWarning
	case urgency.Critical:
		return colorCritical
	default:
		return colorNeutral
	}
}

// applyColorProfilePreference picks the Lip Gloss colour profile for the
// kiosk. NO_COLOR is honoured; otherwise the terminal's capabilities win, with
// COLORTERM and TERM trusted over an under-reporting detector.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	switch {
	case strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit"):
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	case strings.Contains(term, "256color"):
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}
	lipgloss.SetColorProfile(profile)
}
