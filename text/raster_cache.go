package text

import (
	"github.com/gogpu/glyphwin/internal/logging"
)

// Rasterizer turns a glyph into a coverage bitmap.
// Implementations return ErrMissingGlyph (or any other error) when the glyph
// has no drawable outline.
type Rasterizer interface {
	Rasterize(key GlyphKey) (*CoverageBitmap, error)
}

// RasterizerFunc adapts a function to the Rasterizer interface.
type RasterizerFunc func(key GlyphKey) (*CoverageBitmap, error)

// Rasterize implements Rasterizer.
func (f RasterizerFunc) Rasterize(key GlyphKey) (*CoverageBitmap, error) {
	return f(key)
}

// CacheOption configures a GlyphRasterCache.
type CacheOption func(*cacheConfig)

type cacheConfig struct {
	maxEntries int
}

// WithMaxEntries bounds the cache to n bitmaps with least-recently-used
// eviction. n <= 0 (the default) keeps every bitmap for the cache lifetime.
func WithMaxEntries(n int) CacheOption {
	return func(c *cacheConfig) {
		c.maxEntries = n
	}
}

// CacheStats holds cache statistics.
type CacheStats struct {
	Hits           uint64
	Misses         uint64
	Rasterizations uint64
	Failures       uint64
	Evictions      uint64
}

// rasterEntry is an internal cache entry, linked in LRU order.
type rasterEntry struct {
	key    GlyphKey
	bitmap *CoverageBitmap
	prev   *rasterEntry
	next   *rasterEntry
}

// GlyphRasterCache owns the rasterized bitmaps of every glyph drawn so far.
//
// Each distinct GlyphKey is rasterized at most once while the cache is
// unbounded. A glyph the rasterizer cannot produce is stored as an empty
// bitmap, so a missing glyph never aborts rendering and is never retried.
//
// GlyphRasterCache is not safe for concurrent use.
type GlyphRasterCache struct {
	rasterizer Rasterizer
	config     cacheConfig

	entries map[GlyphKey]*rasterEntry

	// head is the most recently used entry, tail the least.
	head *rasterEntry
	tail *rasterEntry

	stats CacheStats
}

// NewGlyphRasterCache creates a cache backed by r.
func NewGlyphRasterCache(r Rasterizer, opts ...CacheOption) *GlyphRasterCache {
	var config cacheConfig
	for _, opt := range opts {
		opt(&config)
	}
	return &GlyphRasterCache{
		rasterizer: r,
		config:     config,
		entries:    make(map[GlyphKey]*rasterEntry),
	}
}

// GetOrRasterize returns the bitmap for key, rasterizing it on first use.
// The result is never nil.
func (c *GlyphRasterCache) GetOrRasterize(key GlyphKey) *CoverageBitmap {
	if entry, ok := c.entries[key]; ok {
		c.stats.Hits++
		c.moveToFront(entry)
		return entry.bitmap
	}

	c.stats.Misses++
	bm := c.rasterize(key)

	entry := &rasterEntry{key: key, bitmap: bm}
	c.entries[key] = entry
	c.addToFront(entry)

	if c.config.maxEntries > 0 {
		for len(c.entries) > c.config.maxEntries && c.tail != nil {
			c.removeTail()
			c.stats.Evictions++
		}
	}
	return bm
}

// rasterize calls the rasterizer once and maps failures to the empty bitmap.
func (c *GlyphRasterCache) rasterize(key GlyphKey) *CoverageBitmap {
	c.stats.Rasterizations++
	if c.rasterizer == nil {
		c.stats.Failures++
		return emptyBitmap
	}

	bm, err := c.rasterizer.Rasterize(key)
	if err != nil || bm == nil {
		c.stats.Failures++
		logging.Logger().Debug("text: glyph rasterization failed",
			"key", key.String(), "err", err)
		return emptyBitmap
	}
	return bm
}

// Contains reports whether key has a cached bitmap, without touching LRU order.
func (c *GlyphRasterCache) Contains(key GlyphKey) bool {
	_, ok := c.entries[key]
	return ok
}

// Len returns the number of cached bitmaps.
func (c *GlyphRasterCache) Len() int {
	return len(c.entries)
}

// Stats returns a snapshot of the cache statistics.
func (c *GlyphRasterCache) Stats() CacheStats {
	return c.stats
}

// HitRate returns the cache hit rate as a percentage.
// Returns 0 if there are no accesses.
func (c *GlyphRasterCache) HitRate() float64 {
	total := c.stats.Hits + c.stats.Misses
	if total == 0 {
		return 0
	}
	return float64(c.stats.Hits) / float64(total) * 100
}

// Clear drops every cached bitmap. Statistics are kept.
func (c *GlyphRasterCache) Clear() {
	c.entries = make(map[GlyphKey]*rasterEntry)
	c.head = nil
	c.tail = nil
}

// addToFront adds an entry to the front of the LRU list.
func (c *GlyphRasterCache) addToFront(entry *rasterEntry) {
	entry.prev = nil
	entry.next = c.head
	if c.head != nil {
		c.head.prev = entry
	}
	c.head = entry
	if c.tail == nil {
		c.tail = entry
	}
}

// moveToFront moves an entry to the front of the LRU list.
func (c *GlyphRasterCache) moveToFront(entry *rasterEntry) {
	if entry == c.head {
		return
	}
	c.unlink(entry)
	c.addToFront(entry)
}

// unlink removes an entry from the LRU list (does not delete from map).
func (c *GlyphRasterCache) unlink(entry *rasterEntry) {
	if entry.prev != nil {
		entry.prev.next = entry.next
	} else {
		c.head = entry.next
	}
	if entry.next != nil {
		entry.next.prev = entry.prev
	} else {
		c.tail = entry.prev
	}
	entry.prev = nil
	entry.next = nil
}

// removeTail evicts the least recently used entry.
func (c *GlyphRasterCache) removeTail() {
	entry := c.tail
	delete(c.entries, entry.key)
	c.unlink(entry)
}
