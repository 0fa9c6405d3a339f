package glyphwin

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
)

// Framebuffer is a fixed-size grid of packed 0x00RRGGBB pixels.
//
// The pixel slice always holds exactly Width()*Height() values; a
// Framebuffer is never resized after construction.
type Framebuffer struct {
	width  int
	height int
	pix    []uint32
}

// NewFramebuffer creates a black framebuffer with the given dimensions.
func NewFramebuffer(width, height int) (*Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return &Framebuffer{
		width:  width,
		height: height,
		pix:    make([]uint32, width*height),
	}, nil
}

// Width returns the width of the framebuffer.
func (f *Framebuffer) Width() int {
	return f.width
}

// Height returns the height of the framebuffer.
func (f *Framebuffer) Height() int {
	return f.height
}

// Pix returns the pixel slice, row-major. The slice is borrowed: writes go
// straight to the framebuffer.
func (f *Framebuffer) Pix() []uint32 {
	return f.pix
}

// Contains reports whether (x, y) is inside the framebuffer.
func (f *Framebuffer) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < f.width && y < f.height
}

// Pixel returns the packed value at (x, y), or 0 when out of bounds.
func (f *Framebuffer) Pixel(x, y int) uint32 {
	if !f.Contains(x, y) {
		return 0
	}
	return f.pix[y*f.width+x]
}

// SetPixel sets the packed value at (x, y). Out-of-bounds writes are ignored.
func (f *Framebuffer) SetPixel(x, y int, v uint32) {
	if !f.Contains(x, y) {
		return
	}
	f.pix[y*f.width+x] = v
}

// Clear fills the entire framebuffer with a color.
func (f *Framebuffer) Clear(c Color) {
	v := c.Packed()
	for i := range f.pix {
		f.pix[i] = v
	}
}

// ColorModel implements image.Image.
func (f *Framebuffer) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image.
func (f *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.width, f.height)
}

// At implements image.Image.
func (f *Framebuffer) At(x, y int) color.Color {
	c := Unpack(f.Pixel(x, y))
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// ToImage converts the framebuffer to an image.RGBA.
func (f *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(f.Bounds())
	for i, v := range f.pix {
		o := i * 4
		img.Pix[o+0] = uint8(v >> 16)
		img.Pix[o+1] = uint8(v >> 8)
		img.Pix[o+2] = uint8(v)
		img.Pix[o+3] = 0xff
	}
	return img
}

// EncodePNG writes the framebuffer to w as PNG.
func (f *Framebuffer) EncodePNG(w io.Writer) error {
	return png.Encode(w, f.ToImage())
}
