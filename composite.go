package glyphwin

import "github.com/gogpu/glyphwin/text"

// BlendMode selects how coverage turns into a pixel value.
type BlendMode int

const (
	// BlendGrayscale writes the coverage replicated into all three channels,
	// ignoring the requested color.
	BlendGrayscale BlendMode = iota

	// BlendTinted writes the requested color scaled by coverage.
	BlendTinted
)

// String returns the string representation of the blend mode.
func (m BlendMode) String() string {
	switch m {
	case BlendGrayscale:
		return "Grayscale"
	case BlendTinted:
		return "Tinted"
	default:
		return "Unknown"
	}
}

// Compositor writes coverage bitmaps into a framebuffer.
//
// Writes are last-write-wins: the pixel value depends only on the glyph's
// coverage (and color in BlendTinted), never on what the framebuffer held
// before. Every covered source pixel is written, zero coverage included.
// Destination pixels outside the framebuffer are skipped silently.
type Compositor struct {
	Mode BlendMode
}

// Blend draws bm with its origin at (x, y) and returns the number of pixels
// written.
func (c Compositor) Blend(fb *Framebuffer, bm *text.CoverageBitmap, x, y int, col Color) int {
	if fb == nil || bm.Empty() {
		return 0
	}

	// Clip the bitmap rectangle against the framebuffer once.
	ox, oy := x+bm.Left, y+bm.Top
	i0, j0 := max(0, -ox), max(0, -oy)
	i1, j1 := min(bm.Width, fb.width-ox), min(bm.Height, fb.height-oy)
	if i0 >= i1 || j0 >= j1 {
		return 0
	}

	written := 0
	for j := j0; j < j1; j++ {
		src := bm.Coverage[j*bm.Width : (j+1)*bm.Width]
		row := (oy+j)*fb.width + ox
		for i := i0; i < i1; i++ {
			fb.pix[row+i] = c.pixel(src[i], col)
			written++
		}
	}
	return written
}

// pixel returns the packed value for one covered pixel.
func (c Compositor) pixel(cov uint8, col Color) uint32 {
	if c.Mode == BlendTinted {
		return col.Scale(cov).Packed()
	}
	v := uint32(cov)
	return v<<16 | v<<8 | v
}
