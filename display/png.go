// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package display

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/gogpu/glyphwin/internal/logging"
)

// PNG is a headless Sink. It keeps the last presented frame and writes it as
// a PNG file when closed. With Options.MaxFrames set, the sink reports itself
// closed after that many presents, which ends a presentation loop.
type PNG struct {
	path      string
	maxFrames int

	frames int
	last   *image.RGBA
	open   bool
	closed bool
}

// NewPNG creates a PNG sink writing to opts.Output. An empty Output keeps
// frames in memory only.
func NewPNG(opts Options) *PNG {
	return &PNG{
		path:      opts.Output,
		maxFrames: opts.MaxFrames,
		open:      true,
	}
}

// Present implements Sink.
func (p *PNG) Present(pix []uint32, width, height int) error {
	if p.closed {
		return ErrClosed
	}
	if err := checkBuffer(pix, width, height); err != nil {
		return err
	}

	if p.last == nil || p.last.Rect.Dx() != width || p.last.Rect.Dy() != height {
		p.last = image.NewRGBA(image.Rect(0, 0, width, height))
	}
	for i, v := range pix[:width*height] {
		o := i * 4
		p.last.Pix[o+0] = uint8(v >> 16)
		p.last.Pix[o+1] = uint8(v >> 8)
		p.last.Pix[o+2] = uint8(v)
		p.last.Pix[o+3] = 0xff
	}

	p.frames++
	if p.maxFrames > 0 && p.frames >= p.maxFrames {
		p.open = false
	}
	return nil
}

// IsOpen implements Sink.
func (p *PNG) IsOpen() bool {
	return p.open && !p.closed
}

// IsKeyDown implements Sink. A PNG sink has no keyboard.
func (p *PNG) IsKeyDown(Key) bool {
	return false
}

// Frames returns the number of frames presented so far.
func (p *PNG) Frames() int {
	return p.frames
}

// Image returns the last presented frame, or nil before the first present.
func (p *PNG) Image() *image.RGBA {
	return p.last
}

// WriteTo encodes the last presented frame as PNG.
func (p *PNG) WriteTo(w io.Writer) (int64, error) {
	if p.last == nil {
		return 0, fmt.Errorf("display: no frame presented")
	}
	cw := &countWriter{w: w}
	err := png.Encode(cw, p.last)
	return cw.n, err
}

// Close implements Sink. It writes the last frame to the output path.
func (p *PNG) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	p.open = false

	if p.path == "" || p.last == nil {
		return nil
	}

	f, err := os.Create(p.path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return fmt.Errorf("display: %w", err)
	}
	if _, err := p.WriteTo(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("display: encode %s: %w", p.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	logging.Logger().Info("display: frame written", "path", p.path, "frames", p.frames)
	return nil
}

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}
