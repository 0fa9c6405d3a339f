// Package glyphwin displays shaped text in a live-updating raster window.
//
// The pipeline turns a shaped string into a packed-RGB framebuffer and keeps
// presenting that framebuffer to a display sink at a fixed maximum rate:
//
//	shaped glyphs -> Renderer -> glyph cache -> Compositor -> Framebuffer -> Loop -> display.Sink
//
// Shaping, fonts and glyph rasterization live in package text; display sinks
// live in package display.
//
// # Quick Start
//
//	fonts, err := text.NewFontSystem(text.WithDefaultFont())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	st := text.NewGoTextShaper(fonts).Shape("Hello", text.Metrics{FontSize: 24, LineHeight: 40}, text.Size{Width: 180, Height: 125})
//
//	fb, _ := glyphwin.NewFramebuffer(640, 360)
//	r := glyphwin.NewRenderer(text.NewGlyphRasterCache(text.NewOutlineRasterizer(fonts)))
//	r.Render(fb, st, glyphwin.White)
//
//	sink, err := display.OpenBest(display.Options{Width: 640, Height: 360})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sink.Close()
//
//	loop, _ := glyphwin.NewLoop(sink, fb)
//	if err := loop.Run(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//
// # Threading
//
// Rendering is single-threaded: the framebuffer, the glyph cache and the
// loop belong to one goroutine. Only SetLogger/Logger may be called
// concurrently.
package glyphwin
