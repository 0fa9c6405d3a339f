package text

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// unknownStr is the string returned for unknown enum values.
const unknownStr = "Unknown"

// SubpixelMode controls horizontal sub-pixel glyph positioning.
// Each division of a pixel gets its own cache entry per glyph.
type SubpixelMode int

const (
	// SubpixelNone snaps glyphs to whole pixels.
	SubpixelNone SubpixelMode = 0

	// Subpixel4 uses 4 positions (0.0, 0.25, 0.5, 0.75).
	Subpixel4 SubpixelMode = 4

	// Subpixel10 uses 10 positions (0.0, 0.1, ..., 0.9).
	Subpixel10 SubpixelMode = 10
)

// String returns the string representation of the subpixel mode.
func (m SubpixelMode) String() string {
	switch m {
	case SubpixelNone:
		return "None"
	case Subpixel4:
		return "Subpixel4"
	case Subpixel10:
		return "Subpixel10"
	default:
		return unknownStr
	}
}

// Divisions returns the number of sub-pixel positions.
// Returns 1 for SubpixelNone.
func (m SubpixelMode) Divisions() int {
	if m <= 0 {
		return 1
	}
	return int(m)
}

// Quantize splits a pixel coordinate into its integer part and the
// fractional part rounded down to the nearest division, in 26.6 format.
func (m SubpixelMode) Quantize(x float64) (int, fixed.Int26_6) {
	fl := math.Floor(x)
	d := m.Divisions()
	if d == 1 {
		return int(fl), 0
	}
	b := min(int((x-fl)*float64(d)), d-1)
	return int(fl), fixed.Int26_6(math.Round(float64(b) * 64 / float64(d)))
}
