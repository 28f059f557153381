package display

// Reference describes the display the base sizes were designed for.
type Reference struct {
	Width  int
	Title  int
	Next   int
	Digits int
	Margin int
}

// PixelReference is a 1920 pixel wide screen.
var PixelReference = Reference{Width: 1920, Title: 180, Next: 130, Digits: 600, Margin: 50} //nolint:gochecknoglobals // immutable reference table.

// Sizes are the starting sizes and margins for one display width.
type Sizes struct {
	Title     int
	Next      int
	Digits    int
	Margin    int
	Available int
}

// ScaleSizes scales ref to displayWidth and a scaling percentage. Font sizes
// follow scaling; the margin only follows the display width.
func ScaleSizes(ref Reference, displayWidth, scaling int) Sizes {
	if ref.Width <= 0 {
		ref = PixelReference
	}
	scale := func(base int) int {
		return base * displayWidth * scaling / 100 / ref.Width
	}
	margin := ref.Margin * displayWidth / ref.Width
	available := displayWidth - 2*margin
	if available < 0 {
		available = 0
	}
	return Sizes{
		Title:     scale(ref.Title),
		Next:      scale(ref.Next),
		Digits:    scale(ref.Digits),
		Margin:    margin,
		Available: available,
	}
}
