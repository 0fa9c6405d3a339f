package text

import (
	"fmt"

	"golang.org/x/image/math/fixed"
)

// GlyphID is a unique identifier for a glyph within a font.
// The glyph ID is assigned by the font file and is font-specific.
type GlyphID uint32

// FontID identifies a font registered in a FontSystem.
type FontID uint32

// GlyphKey uniquely identifies one rasterized glyph.
// Two keys are equal iff all fields are equal, so GlyphKey can be used
// directly as a map key.
type GlyphKey struct {
	// Font is the font the glyph belongs to.
	Font FontID

	// GID is the glyph index within the font.
	GID GlyphID

	// Size is the rendered size in pixels per em.
	Size fixed.Int26_6

	// OffsetX is the quantized horizontal sub-pixel offset in [0, 1) pixel.
	// Zero when sub-pixel positioning is disabled.
	OffsetX fixed.Int26_6
}

// String returns a compact description of the key for logging.
func (k GlyphKey) String() string {
	return fmt.Sprintf("font=%d gid=%d size=%v off=%v", k.Font, k.GID, k.Size, k.OffsetX)
}

// GlyphPlacement is one glyph positioned in framebuffer pixel space.
// Placements are produced per redraw and never stored.
type GlyphPlacement struct {
	// Key selects the bitmap to draw.
	Key GlyphKey

	// X, Y are the integer pen position the bitmap origin is relative to.
	X, Y int

	// Advance is the horizontal advance of the glyph in pixels.
	Advance float64
}
