package text

import "image"

// CoverageBitmap is a rasterized glyph: one 8-bit coverage value per pixel
// plus the offset of its top-left pixel from the pen position.
//
// A bitmap is immutable once it has been stored in a GlyphRasterCache and is
// shared read-only by every composite of the same glyph.
type CoverageBitmap struct {
	// Left, Top locate the top-left pixel relative to the pen position.
	// Top is negative for ink above the baseline.
	Left, Top int

	// Width, Height are the bitmap dimensions in pixels.
	Width, Height int

	// Coverage holds Width*Height values in row-major order.
	Coverage []uint8
}

// emptyBitmap is returned for glyphs that cannot be rasterized.
var emptyBitmap = &CoverageBitmap{}

// EmptyBitmap returns the shared zero-area bitmap.
func EmptyBitmap() *CoverageBitmap {
	return emptyBitmap
}

// Empty reports whether the bitmap covers no pixels.
func (b *CoverageBitmap) Empty() bool {
	return b == nil || b.Width <= 0 || b.Height <= 0
}

// At returns the coverage at (x, y) in bitmap space, or 0 when out of range.
func (b *CoverageBitmap) At(x, y int) uint8 {
	if b.Empty() || x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return 0
	}
	return b.Coverage[y*b.Width+x]
}

// Bounds returns the pixel rectangle covered by the bitmap relative to the
// pen position.
func (b *CoverageBitmap) Bounds() image.Rectangle {
	if b.Empty() {
		return image.Rectangle{}
	}
	return image.Rect(b.Left, b.Top, b.Left+b.Width, b.Top+b.Height)
}

// NewCoverageBitmap wraps an alpha mask. The mask's Min corner becomes the
// bitmap offset. The pixel data is copied when the mask stride differs from
// its width.
func NewCoverageBitmap(mask *image.Alpha) *CoverageBitmap {
	if mask == nil {
		return emptyBitmap
	}
	r := mask.Bounds()
	w, h := r.Dx(), r.Dy()
	if w <= 0 || h <= 0 {
		return emptyBitmap
	}

	pix := mask.Pix
	if mask.Stride != w || len(pix) != w*h {
		pix = make([]uint8, w*h)
		for y := 0; y < h; y++ {
			src := mask.PixOffset(r.Min.X, r.Min.Y+y)
			copy(pix[y*w:(y+1)*w], mask.Pix[src:src+w])
		}
	}

	return &CoverageBitmap{
		Left:     r.Min.X,
		Top:      r.Min.Y,
		Width:    w,
		Height:   h,
		Coverage: pix,
	}
}
