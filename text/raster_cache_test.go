package text

import (
	"errors"
	"testing"
)

// fakeRasterizer returns a fresh 1x1 bitmap per call and counts calls per key.
type fakeRasterizer struct {
	calls map[GlyphKey]int
	fail  map[GlyphID]error
}

func newFakeRasterizer() *fakeRasterizer {
	return &fakeRasterizer{calls: make(map[GlyphKey]int), fail: make(map[GlyphID]error)}
}

func (f *fakeRasterizer) Rasterize(key GlyphKey) (*CoverageBitmap, error) {
	f.calls[key]++
	if err := f.fail[key.GID]; err != nil {
		return nil, err
	}
	return &CoverageBitmap{Width: 1, Height: 1, Coverage: []uint8{uint8(key.GID)}}, nil
}

func (f *fakeRasterizer) total() int {
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func testKey(gid GlyphID) GlyphKey {
	return GlyphKey{Font: 1, GID: gid, Size: 24 << 6}
}

func TestGlyphRasterCache_Idempotent(t *testing.T) {
	ras := newFakeRasterizer()
	c := NewGlyphRasterCache(ras)
	key := testKey(36)

	first := c.GetOrRasterize(key)
	for range 100 {
		if got := c.GetOrRasterize(key); got != first {
			t.Fatal("GetOrRasterize returned a different bitmap for the same key")
		}
	}

	if ras.calls[key] != 1 {
		t.Errorf("rasterizer called %d times, want 1", ras.calls[key])
	}
	s := c.Stats()
	if s.Hits != 100 || s.Misses != 1 || s.Rasterizations != 1 {
		t.Errorf("Stats() = %+v", s)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestGlyphRasterCache_DistinctKeys(t *testing.T) {
	ras := newFakeRasterizer()
	c := NewGlyphRasterCache(ras)

	keys := []GlyphKey{
		testKey(1),
		{Font: 1, GID: 1, Size: 12 << 6},
		{Font: 2, GID: 1, Size: 24 << 6},
		{Font: 1, GID: 1, Size: 24 << 6, OffsetX: 16},
	}
	for _, k := range keys {
		c.GetOrRasterize(k)
		c.GetOrRasterize(k)
	}

	if c.Len() != len(keys) {
		t.Errorf("Len() = %d, want %d", c.Len(), len(keys))
	}
	if ras.total() != len(keys) {
		t.Errorf("rasterizer called %d times, want %d", ras.total(), len(keys))
	}
	for _, k := range keys {
		if !c.Contains(k) {
			t.Errorf("Contains(%v) = false", k)
		}
	}
}

func TestGlyphRasterCache_MissingGlyph(t *testing.T) {
	tests := []struct {
		name string
		ras  Rasterizer
	}{
		{"error", RasterizerFunc(func(key GlyphKey) (*CoverageBitmap, error) {
			return nil, ErrMissingGlyph
		})},
		{"other error", RasterizerFunc(func(key GlyphKey) (*CoverageBitmap, error) {
			return nil, errors.New("corrupt outline")
		})},
		{"nil bitmap", RasterizerFunc(func(key GlyphKey) (*CoverageBitmap, error) {
			return nil, nil
		})},
		{"nil rasterizer", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewGlyphRasterCache(tt.ras)
			bm := c.GetOrRasterize(testKey(5))
			if bm == nil || !bm.Empty() {
				t.Fatalf("GetOrRasterize() = %+v, want empty bitmap", bm)
			}
			c.GetOrRasterize(testKey(5))
			s := c.Stats()
			if s.Failures != 1 || s.Rasterizations != 1 || s.Hits != 1 {
				t.Errorf("Stats() = %+v, want one cached failure", s)
			}
		})
	}
}

func TestGlyphRasterCache_Eviction(t *testing.T) {
	ras := newFakeRasterizer()
	c := NewGlyphRasterCache(ras, WithMaxEntries(2))

	a, b, d := testKey(1), testKey(2), testKey(3)
	c.GetOrRasterize(a)
	c.GetOrRasterize(b)
	c.GetOrRasterize(a) // b is now least recently used
	c.GetOrRasterize(d)

	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if !c.Contains(a) || c.Contains(b) || !c.Contains(d) {
		t.Errorf("Contains(a, b, d) = %v, %v, %v; want true, false, true",
			c.Contains(a), c.Contains(b), c.Contains(d))
	}
	if c.Stats().Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", c.Stats().Evictions)
	}

	// An evicted key is rasterized again.
	c.GetOrRasterize(b)
	if ras.calls[b] != 2 {
		t.Errorf("rasterizer called %d times for evicted key, want 2", ras.calls[b])
	}
}

func TestGlyphRasterCache_Unbounded(t *testing.T) {
	for _, n := range []int{0, -1} {
		c := NewGlyphRasterCache(newFakeRasterizer(), WithMaxEntries(n))
		for gid := range GlyphID(500) {
			c.GetOrRasterize(testKey(gid))
		}
		if c.Len() != 500 || c.Stats().Evictions != 0 {
			t.Errorf("WithMaxEntries(%d): Len() = %d, Evictions = %d", n, c.Len(), c.Stats().Evictions)
		}
	}
}

func TestGlyphRasterCache_Clear(t *testing.T) {
	ras := newFakeRasterizer()
	c := NewGlyphRasterCache(ras)
	c.GetOrRasterize(testKey(1))
	c.GetOrRasterize(testKey(1))
	c.Clear()

	if c.Len() != 0 || c.Contains(testKey(1)) {
		t.Error("Clear() left entries behind")
	}
	if c.Stats().Hits != 1 {
		t.Errorf("Clear() reset stats: %+v", c.Stats())
	}
	c.GetOrRasterize(testKey(1))
	if ras.calls[testKey(1)] != 2 {
		t.Errorf("rasterizer called %d times after Clear, want 2", ras.calls[testKey(1)])
	}
}

func TestGlyphRasterCache_HitRate(t *testing.T) {
	c := NewGlyphRasterCache(newFakeRasterizer())
	if c.HitRate() != 0 {
		t.Errorf("HitRate() on empty cache = %v", c.HitRate())
	}
	for range 4 {
		c.GetOrRasterize(testKey(9))
	}
	if got := c.HitRate(); got != 75 {
		t.Errorf("HitRate() = %v, want 75", got)
	}
}

func BenchmarkGlyphRasterCache_Hit(b *testing.B) {
	c := NewGlyphRasterCache(newFakeRasterizer())
	key := testKey(1)
	c.GetOrRasterize(key)

	b.ReportAllocs()
	for b.Loop() {
		_ = c.GetOrRasterize(key)
	}
}
