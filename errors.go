package glyphwin

import (
	"errors"
	"fmt"
)

// Sentinel errors for glyphwin package.
var (
	// ErrInvalidSize is returned for a framebuffer with a non-positive dimension.
	ErrInvalidSize = errors.New("glyphwin: invalid framebuffer size")

	// ErrLoopExited is returned when Run is called on a loop that already exited.
	ErrLoopExited = errors.New("glyphwin: loop already exited")

	// ErrNoSink is returned when a loop is created without a display sink.
	ErrNoSink = errors.New("glyphwin: nil display sink")
)

// PresentError is returned by Loop.Run when the display sink fails to
// present a frame. Present failures end the loop.
type PresentError struct {
	Frame uint64
	Err   error
}

func (e *PresentError) Error() string {
	return fmt.Sprintf("glyphwin: present frame %d: %v", e.Frame, e.Err)
}

func (e *PresentError) Unwrap() error {
	return e.Err
}
