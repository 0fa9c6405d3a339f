package text

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewCoverageBitmap(t *testing.T) {
	mask := image.NewAlpha(image.Rect(-2, -3, 2, 1))
	mask.SetAlpha(-2, -3, color.Alpha{A: 10})
	mask.SetAlpha(1, 0, color.Alpha{A: 200})

	bm := NewCoverageBitmap(mask)
	if bm.Left != -2 || bm.Top != -3 || bm.Width != 4 || bm.Height != 4 {
		t.Fatalf("NewCoverageBitmap() = %+v", bm)
	}
	if bm.At(0, 0) != 10 || bm.At(3, 3) != 200 {
		t.Errorf("At() = %d, %d; want 10, 200", bm.At(0, 0), bm.At(3, 3))
	}
	if got, want := bm.Bounds(), image.Rect(-2, -3, 2, 1); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
}

func TestNewCoverageBitmap_SubImage(t *testing.T) {
	full := image.NewAlpha(image.Rect(0, 0, 4, 4))
	for i := range full.Pix {
		full.Pix[i] = uint8(i)
	}
	sub, ok := full.SubImage(image.Rect(1, 1, 3, 3)).(*image.Alpha)
	if !ok {
		t.Fatal("SubImage is not *image.Alpha")
	}

	bm := NewCoverageBitmap(sub)
	want := []uint8{5, 6, 9, 10}
	if diff := cmp.Diff(want, bm.Coverage); diff != "" {
		t.Errorf("Coverage mismatch (-want +got):\n%s", diff)
	}
	if bm.Left != 1 || bm.Top != 1 {
		t.Errorf("origin = (%d, %d), want (1, 1)", bm.Left, bm.Top)
	}
}

func TestCoverageBitmap_Empty(t *testing.T) {
	var nilBitmap *CoverageBitmap
	tests := []struct {
		name string
		bm   *CoverageBitmap
		want bool
	}{
		{"nil", nilBitmap, true},
		{"shared empty", EmptyBitmap(), true},
		{"zero height", &CoverageBitmap{Width: 3}, true},
		{"one pixel", &CoverageBitmap{Width: 1, Height: 1, Coverage: []uint8{0}}, false},
		{"from nil mask", NewCoverageBitmap(nil), true},
		{"from empty mask", NewCoverageBitmap(image.NewAlpha(image.Rectangle{})), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.bm.Empty(); got != tt.want {
				t.Errorf("Empty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCoverageBitmap_AtOutOfRange(t *testing.T) {
	bm := &CoverageBitmap{Width: 2, Height: 1, Coverage: []uint8{1, 2}}
	for _, p := range [][2]int{{-1, 0}, {2, 0}, {0, 1}, {0, -1}} {
		if got := bm.At(p[0], p[1]); got != 0 {
			t.Errorf("At(%d, %d) = %d, want 0", p[0], p[1], got)
		}
	}
	if EmptyBitmap().At(0, 0) != 0 {
		t.Error("EmptyBitmap().At(0, 0) != 0")
	}
}

func TestGlyphKey_Comparable(t *testing.T) {
	a := GlyphKey{Font: 1, GID: 2, Size: 3, OffsetX: 4}
	b := a
	m := map[GlyphKey]int{a: 1}
	if m[b] != 1 {
		t.Error("equal keys do not share a map slot")
	}
	b.OffsetX = 5
	if _, ok := m[b]; ok {
		t.Error("keys differing in OffsetX share a map slot")
	}
	if a.String() == "" {
		t.Error("String() is empty")
	}
}
