// Package text turns strings into positioned glyphs and glyphs into
// coverage bitmaps.
//
// The pipeline follows a separation of concerns:
//
//   - FontSystem: process-wide font context, shared by shaper and rasterizer
//   - Shaper: string + metrics + box -> ShapedText (GoTextShaper uses go-text/typesetting)
//   - ShapedText.Placements: lazy sequence of GlyphPlacement, one per glyph
//   - Rasterizer: GlyphKey -> CoverageBitmap (OutlineRasterizer uses golang.org/x/image/vector)
//   - GlyphRasterCache: rasterizes each GlyphKey at most once
//
// # Example usage
//
//	fonts, err := text.NewFontSystem(text.WithDefaultFont())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	shaper := text.NewGoTextShaper(fonts)
//	cache := text.NewGlyphRasterCache(text.NewOutlineRasterizer(fonts))
//
//	st := shaper.Shape("Hello", text.Metrics{FontSize: 24, LineHeight: 40}, text.Size{Width: 180, Height: 125})
//	for p := range st.Placements(text.Subpixel4) {
//	    bm := cache.GetOrRasterize(p.Key)
//	    // composite bm at (p.X, p.Y)
//	}
//
// None of the types in this package are safe for concurrent use.
package text
