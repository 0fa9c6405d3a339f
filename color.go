package glyphwin

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an opaque RGB color with 8 bits per channel.
// It implements color.Color.
type Color struct {
	R, G, B uint8
}

// Common colors.
var (
	Black = Color{}
	White = Color{R: 0xff, G: 0xff, B: 0xff}
)

// RGB creates a color from 8-bit components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Gray returns the color with all three channels set to v.
func Gray(v uint8) Color {
	return Color{R: v, G: v, B: v}
}

// ParseColor parses a CSS-style hex color ("#rgb" or "#rrggbb").
func ParseColor(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("glyphwin: invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// Packed returns the color as 0x00RRGGBB.
func (c Color) Packed() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Unpack converts a 0x00RRGGBB pixel to a Color. The top byte is ignored.
func Unpack(v uint32) Color {
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// Scale returns the color with every channel multiplied by cov/255.
func (c Color) Scale(cov uint8) Color {
	return Color{
		R: mul255(c.R, cov),
		G: mul255(c.G, cov),
		B: mul255(c.B, cov),
	}
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	return r, g, b, 0xffff
}

// mul255 returns a*b/255 rounded to nearest.
func mul255(a, b uint8) uint8 {
	t := uint32(a)*uint32(b) + 128
	return uint8((t + t>>8) >> 8)
}
