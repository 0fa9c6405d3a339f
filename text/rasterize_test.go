package text

import (
	"errors"
	"image"
	"slices"
	"testing"
)

func glyphKey(t *testing.T, fs *FontSystem, r rune, size float64) GlyphKey {
	t.Helper()
	gid, ok := fs.Primary().NominalGlyph(r)
	if !ok {
		t.Fatalf("no glyph for %q", r)
	}
	return GlyphKey{Font: 1, GID: GlyphID(gid), Size: floatToFixed(size)}
}

func TestOutlineRasterizer_Letter(t *testing.T) {
	fs := newTestFonts(t)
	r := NewOutlineRasterizer(fs)

	bm, err := r.Rasterize(glyphKey(t, fs, 'A', 24))
	if err != nil {
		t.Fatalf("Rasterize('A') error = %v", err)
	}
	if bm.Empty() {
		t.Fatal("Rasterize('A') returned an empty bitmap")
	}
	if len(bm.Coverage) != bm.Width*bm.Height {
		t.Errorf("len(Coverage) = %d, want %d", len(bm.Coverage), bm.Width*bm.Height)
	}

	// Cap height of Go Regular at 24px is about 17px, all above the baseline.
	if bm.Height < 14 || bm.Height > 20 {
		t.Errorf("Height = %d, want about 17", bm.Height)
	}
	if bm.Top >= 0 || bm.Top+bm.Height > 1 {
		t.Errorf("Top = %d, Height = %d; want ink above the baseline", bm.Top, bm.Height)
	}
	if slices.Max(bm.Coverage) < 0xf0 {
		t.Errorf("max coverage = %d, want solid interior", slices.Max(bm.Coverage))
	}
}

func TestOutlineRasterizer_TightBounds(t *testing.T) {
	fs := newTestFonts(t)
	bm, err := NewOutlineRasterizer(fs).Rasterize(glyphKey(t, fs, 'H', 24))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := bm.Bounds(), image.Rect(bm.Left, bm.Top, bm.Left+bm.Width, bm.Top+bm.Height); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}

	// Ink touches every edge of a bitmap sized to the outline.
	rowInk := func(y int) bool {
		for x := range bm.Width {
			if bm.At(x, y) > 0 {
				return true
			}
		}
		return false
	}
	colInk := func(x int) bool {
		for y := range bm.Height {
			if bm.At(x, y) > 0 {
				return true
			}
		}
		return false
	}
	if !rowInk(0) || !rowInk(bm.Height-1) || !colInk(0) || !colInk(bm.Width-1) {
		t.Errorf("ink does not reach all edges of the %dx%d bitmap", bm.Width, bm.Height)
	}
}

func TestOutlineRasterizer_Scales(t *testing.T) {
	fs := newTestFonts(t)
	r := NewOutlineRasterizer(fs)

	small, err := r.Rasterize(glyphKey(t, fs, 'H', 12))
	if err != nil {
		t.Fatal(err)
	}
	large, err := r.Rasterize(glyphKey(t, fs, 'H', 48))
	if err != nil {
		t.Fatal(err)
	}
	if large.Height < 3*small.Height {
		t.Errorf("48px height %d not about 4x 12px height %d", large.Height, small.Height)
	}
}

func TestOutlineRasterizer_SubpixelOffset(t *testing.T) {
	fs := newTestFonts(t)
	r := NewOutlineRasterizer(fs)

	key := glyphKey(t, fs, 'l', 24)
	base, err := r.Rasterize(key)
	if err != nil {
		t.Fatal(err)
	}
	key.OffsetX = 32
	shifted, err := r.Rasterize(key)
	if err != nil {
		t.Fatal(err)
	}
	if slices.Equal(base.Coverage, shifted.Coverage) && base.Left == shifted.Left {
		t.Error("half-pixel offset produced an identical bitmap")
	}
}

func TestOutlineRasterizer_Space(t *testing.T) {
	fs := newTestFonts(t)
	bm, err := NewOutlineRasterizer(fs).Rasterize(glyphKey(t, fs, ' ', 24))
	if err != nil {
		t.Fatalf("Rasterize(' ') error = %v", err)
	}
	if !bm.Empty() {
		t.Errorf("Rasterize(' ') = %dx%d, want empty", bm.Width, bm.Height)
	}
}

func TestOutlineRasterizer_UnknownFont(t *testing.T) {
	fs := newTestFonts(t)
	_, err := NewOutlineRasterizer(fs).Rasterize(GlyphKey{Font: 7, GID: 1, Size: 24 << 6})
	if !errors.Is(err, ErrUnknownFont) {
		t.Errorf("Rasterize() error = %v, want ErrUnknownFont", err)
	}
}

func TestOutlineRasterizer_ThroughCache(t *testing.T) {
	fs := newTestFonts(t)
	c := NewGlyphRasterCache(NewOutlineRasterizer(fs))

	key := glyphKey(t, fs, 'g', 24)
	bm := c.GetOrRasterize(key)
	if bm.Empty() {
		t.Fatal("cached 'g' is empty")
	}
	if bm.Top+bm.Height <= 0 {
		t.Error("'g' has no descender below the baseline")
	}
	if c.GetOrRasterize(key) != bm || c.Stats().Rasterizations != 1 {
		t.Error("second lookup rasterized again")
	}
	if c.GetOrRasterize(GlyphKey{Font: 9}).Empty() != true {
		t.Error("unknown font did not yield an empty bitmap")
	}
}

func BenchmarkOutlineRasterizer(b *testing.B) {
	fs, err := NewFontSystem(WithDefaultFont())
	if err != nil {
		b.Fatal(err)
	}
	gid, _ := fs.Primary().NominalGlyph('W')
	r := NewOutlineRasterizer(fs)
	key := GlyphKey{Font: 1, GID: GlyphID(gid), Size: 24 << 6}

	b.ReportAllocs()
	for b.Loop() {
		_, _ = r.Rasterize(key)
	}
}
