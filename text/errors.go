package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrMissingGlyph is returned by a Rasterizer that has no outline for a glyph.
	ErrMissingGlyph = errors.New("text: missing glyph outline")

	// ErrUnknownFont is returned for a FontID that was never registered.
	ErrUnknownFont = errors.New("text: unknown font")
)
