package text

import (
	"iter"
	"math"

	"golang.org/x/image/math/fixed"
)

// LayoutGlyph is one shaped glyph with an absolute pen position.
type LayoutGlyph struct {
	// Font is the font the glyph was shaped with.
	Font FontID

	// GID is the glyph index within the font.
	GID GlyphID

	// Size is the font size in pixels per em.
	Size fixed.Int26_6

	// X, Y are the absolute pen position in pixels. Y is on the baseline.
	X, Y float64

	// Advance is the horizontal advance in pixels.
	Advance float64
}

// LayoutRun is one laid-out line of text, glyphs in visual order.
type LayoutRun struct {
	// LineTop is the top of the line box in pixels.
	LineTop float64

	// LineHeight is the height of the line box in pixels.
	LineHeight float64

	// Baseline is the absolute y of the baseline in pixels.
	Baseline float64

	// Width is the total advance of the line in pixels.
	Width float64

	// Glyphs are the positioned glyphs of the line.
	Glyphs []LayoutGlyph
}

// ShapedText is the result of shaping: one or more layout runs with
// absolute pixel positions. It is read-only once produced.
type ShapedText struct {
	Runs []LayoutRun
}

// Len returns the total number of glyphs.
func (st *ShapedText) Len() int {
	if st == nil {
		return 0
	}
	n := 0
	for i := range st.Runs {
		n += len(st.Runs[i].Glyphs)
	}
	return n
}

// Placements returns the glyphs as placements in run order, then glyph
// order. Each pen x is split into an integer pixel and a sub-pixel bucket
// according to mode; pen y is rounded to the nearest pixel.
//
// The sequence is finite and can be ranged over any number of times.
func (st *ShapedText) Placements(mode SubpixelMode) iter.Seq[GlyphPlacement] {
	return func(yield func(GlyphPlacement) bool) {
		if st == nil {
			return
		}
		for ri := range st.Runs {
			for _, g := range st.Runs[ri].Glyphs {
				x, off := mode.Quantize(g.X)
				p := GlyphPlacement{
					Key: GlyphKey{
						Font:    g.Font,
						GID:     g.GID,
						Size:    g.Size,
						OffsetX: off,
					},
					X:       x,
					Y:       int(math.Round(g.Y)),
					Advance: g.Advance,
				}
				if !yield(p) {
					return
				}
			}
		}
	}
}
