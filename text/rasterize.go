package text

import (
	"fmt"
	"image"
	"math"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// OutlineRasterizer renders glyph outlines from a FontSystem into coverage
// bitmaps using golang.org/x/image/vector.
//
// Bitmaps are placed so that the pen position (on the baseline at the left
// edge, shifted right by the key's OffsetX) is the bitmap's origin.
// Outlines are rendered unhinted.
type OutlineRasterizer struct {
	fonts *FontSystem
}

// NewOutlineRasterizer creates a rasterizer reading outlines from fonts.
func NewOutlineRasterizer(fonts *FontSystem) *OutlineRasterizer {
	return &OutlineRasterizer{fonts: fonts}
}

// Rasterize implements Rasterizer.
//
// Returns ErrMissingGlyph for glyphs without outline data (including
// bitmap-only and SVG glyphs) and ErrUnknownFont for unregistered fonts.
// Glyphs with an empty outline, such as spaces, yield an empty bitmap.
func (r *OutlineRasterizer) Rasterize(key GlyphKey) (*CoverageBitmap, error) {
	face, err := r.fonts.Face(key.Font)
	if err != nil {
		return nil, err
	}

	outline, ok := face.GlyphData(font.GID(key.GID)).(font.GlyphOutline)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingGlyph, key)
	}
	if len(outline.Segments) == 0 || face.Upem() == 0 {
		return emptyBitmap, nil
	}

	scale := fixedToFloat32(key.Size) / float32(face.Upem())
	dx := fixedToFloat32(key.OffsetX)

	// Font units are y-up; pixel space is y-down.
	minX, minY := float32(math.MaxFloat32), float32(math.MaxFloat32)
	maxX, maxY := -minX, -minY
	for _, s := range outline.Segments {
		for _, p := range s.Args[:argCount(s.Op)] {
			x, y := p.X*scale+dx, -p.Y*scale
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}

	x0 := int(math.Floor(float64(minX)))
	y0 := int(math.Floor(float64(minY)))
	w := int(math.Ceil(float64(maxX))) - x0
	h := int(math.Ceil(float64(maxY))) - y0
	if w <= 0 || h <= 0 {
		return emptyBitmap, nil
	}

	tx := func(p opentype.SegmentPoint) (float32, float32) {
		return p.X*scale + dx - float32(x0), -p.Y*scale - float32(y0)
	}

	z := vector.NewRasterizer(w, h)
	open := false
	for _, s := range outline.Segments {
		switch s.Op {
		case opentype.SegmentOpMoveTo:
			if open {
				z.ClosePath()
			}
			z.MoveTo(tx(s.Args[0]))
			open = true
		case opentype.SegmentOpLineTo:
			z.LineTo(tx(s.Args[0]))
		case opentype.SegmentOpQuadTo:
			bx, by := tx(s.Args[0])
			cx, cy := tx(s.Args[1])
			z.QuadTo(bx, by, cx, cy)
		case opentype.SegmentOpCubeTo:
			bx, by := tx(s.Args[0])
			cx, cy := tx(s.Args[1])
			ex, ey := tx(s.Args[2])
			z.CubeTo(bx, by, cx, cy, ex, ey)
		}
	}
	if open {
		z.ClosePath()
	}

	// The mask's Min corner is the bitmap offset from the pen position.
	mask := image.NewAlpha(image.Rect(x0, y0, x0+w, y0+h))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	return NewCoverageBitmap(mask), nil
}

// argCount returns how many of a segment's points are used by op.
func argCount(op opentype.SegmentOp) int {
	switch op {
	case opentype.SegmentOpQuadTo:
		return 2
	case opentype.SegmentOpCubeTo:
		return 3
	default:
		return 1
	}
}

// fixedToFloat32 converts a 26.6 fixed-point value to float32.
func fixedToFloat32(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

// fixedToFloat converts a 26.6 fixed-point value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// floatToFixed converts a float64 pixel value to 26.6 fixed point.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
