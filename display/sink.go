// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package display

import (
	"errors"
	"fmt"
)

// Sentinel errors for display package.
var (
	// ErrInit is returned when a sink cannot be created (e.g., no terminal).
	ErrInit = errors.New("display: sink initialization failed")

	// ErrUnknownSink is returned for a sink name that was never registered.
	ErrUnknownSink = errors.New("display: unknown sink")

	// ErrNoSinkAvailable is returned when no registered sink is available.
	ErrNoSinkAvailable = errors.New("display: no sink available")

	// ErrClosed is returned when presenting to a closed sink.
	ErrClosed = errors.New("display: sink closed")
)

// BufferSizeError is returned when a presented buffer is smaller than its
// declared dimensions.
type BufferSizeError struct {
	Len, Width, Height int
}

func (e *BufferSizeError) Error() string {
	return fmt.Sprintf("display: buffer of %d pixels too small for %dx%d", e.Len, e.Width, e.Height)
}

// Key identifies a key the presentation loop can query.
type Key int

const (
	// KeyUnknown matches no key.
	KeyUnknown Key = iota
	// KeyEscape is the Escape key.
	KeyEscape
	// KeyEnter is the Enter/Return key.
	KeyEnter
	// KeySpace is the space bar.
	KeySpace
	// KeyQ is the letter q.
	KeyQ
)

// String returns the string representation of the key.
func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "Escape"
	case KeyEnter:
		return "Enter"
	case KeySpace:
		return "Space"
	case KeyQ:
		return "Q"
	default:
		return "Unknown"
	}
}

// Sink is the display surface a framebuffer is presented to.
//
// A sink is driven by a single goroutine: the presentation loop calls
// IsOpen and IsKeyDown to observe exit requests, then Present once per tick.
type Sink interface {
	// Present shows pix, a row-major buffer of packed 0x00RRGGBB pixels of
	// the given dimensions. It may block.
	Present(pix []uint32, width, height int) error

	// IsOpen reports whether the sink is still open. It turns false when
	// the user closes it.
	IsOpen() bool

	// IsKeyDown reports whether k was pressed since the last Present.
	IsKeyDown(k Key) bool

	// Close releases the sink. Calling Close more than once is allowed.
	Close() error
}

// Options configures sink creation.
type Options struct {
	// Title is shown where the sink supports it.
	Title string

	// Width, Height are the framebuffer dimensions that will be presented.
	Width, Height int

	// Output is the file path for sinks that write images.
	Output string

	// MaxFrames closes image sinks after this many presents (0 = never).
	MaxFrames int
}

// checkBuffer validates a presented buffer against its dimensions.
func checkBuffer(pix []uint32, width, height int) error {
	if width < 0 || height < 0 || len(pix) < width*height {
		return &BufferSizeError{Len: len(pix), Width: width, Height: height}
	}
	return nil
}
