package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	glyphRows = 5
	blockCell = "█"
)

// glyphs is a 5 row block font for the countdown. A space is as wide as a
// digit so right-aligned minutes keep the colon in place.
//
//nolint:gochecknoglobals // immutable font table.
var glyphs = map[rune][glyphRows]string{
	'0': {"###", "# #", "# #", "# #", "###"},
	'1': {"## ", " # ", " # ", " # ", "###"},
	'2': {"###", "  #", "###", "#  ", "###"},
	'3': {"###", "  #", "###", "  #", "###"},
	'4': {"# #", "# #", "###", "  #", "  #"},
	'5': {"###", "#  ", "###", "  #", "###"},
	'6': {"###", "#  ", "###", "# #", "###"},
	'7': {"###", "  #", "  #", "  #", "  #"},
	'8': {"###", "# #", "###", "# #", "###"},
	'9': {"###", "# #", "###", "  #", "###"},
	':': {" ", "#", " ", "#", " "},
	' ': {"   ", "   ", "   ", "   ", "   "},
}

// faceScale converts a size into a whole number of terminal cells.
func faceScale(size, unit int) int {
	if unit <= 0 {
		return 1
	}
	if s := size / unit; s > 1 {
		return s
	}
	return 1
}

// blockFace draws text with the block font, each font pixel becoming
// scale×ceil(scale/2) cells since terminal cells are about twice as tall as
// they are wide.
type blockFace struct {
	unit int
}

func (f blockFace) Render(text string, size int) string {
	sx := faceScale(size, f.unit)
	sy := (sx + 1) / 2
	gap := strings.Repeat(" ", sx)

	var rows [glyphRows]strings.Builder
	for i, r := range []rune(text) {
		g, ok := glyphs[r]
		if !ok {
			g = glyphs[' ']
		}
		for row := 0; row < glyphRows; row++ {
			if i > 0 {
				rows[row].WriteString(gap)
			}
			for _, c := range g[row] {
				cell := " "
				if c == '#' {
					cell = blockCell
				}
				rows[row].WriteString(strings.Repeat(cell, sx))
			}
		}
	}

	lines := make([]string, 0, glyphRows*sy)
	for row := 0; row < glyphRows; row++ {
		line := rows[row].String()
		for j := 0; j < sy; j++ {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func (f blockFace) Measure(text string, size int) int {
	return lipgloss.Width(f.Render(text, size))
}

// trackedFace draws a single line of text, spacing letters further apart as
// the size grows.
type trackedFace struct {
	unit int
}

func (f trackedFace) Render(text string, size int) string {
	s := faceScale(size, f.unit)
	if s == 1 || text == "" {
		return text
	}
	return strings.Join(strings.Split(text, ""), strings.Repeat(" ", s-1))
}

func (f trackedFace) Measure(text string, size int) int {
	return lipgloss.Width(f.Render(text, size))
}
