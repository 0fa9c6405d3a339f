package glyphwin

import (
	"github.com/gogpu/glyphwin/internal/logging"
	"github.com/gogpu/glyphwin/text"
)

// RenderStats describes one render pass.
type RenderStats struct {
	// Glyphs is the number of placements processed.
	Glyphs int

	// Pixels is the number of framebuffer pixels written by glyphs.
	Pixels int
}

// Renderer draws shaped text into a framebuffer, one full redraw per call.
//
// Glyphs are drawn in placement order. Where glyphs overlap, the glyph drawn
// last determines the pixel; coverage is not accumulated.
type Renderer struct {
	cache      *text.GlyphRasterCache
	compositor Compositor
	opts       rendererOptions
}

// NewRenderer creates a renderer that looks glyphs up in cache.
func NewRenderer(cache *text.GlyphRasterCache, opts ...RendererOption) *Renderer {
	o := defaultRendererOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Renderer{
		cache:      cache,
		compositor: Compositor{Mode: o.mode},
		opts:       o,
	}
}

// Cache returns the glyph cache used by the renderer.
func (r *Renderer) Cache() *text.GlyphRasterCache {
	return r.cache
}

// Render clears fb to the background color and composites every glyph of st
// in color c.
func (r *Renderer) Render(fb *Framebuffer, st *text.ShapedText, c Color) RenderStats {
	var stats RenderStats
	fb.Clear(r.opts.background)

	before := r.cache.Stats().Rasterizations
	for p := range st.Placements(r.opts.subpixel) {
		bm := r.cache.GetOrRasterize(p.Key)
		stats.Pixels += r.compositor.Blend(fb, bm, p.X, p.Y, c)
		stats.Glyphs++
	}

	logging.Logger().Debug("glyphwin: frame rendered",
		"glyphs", stats.Glyphs,
		"pixels", stats.Pixels,
		"rasterized", r.cache.Stats().Rasterizations-before)
	return stats
}
