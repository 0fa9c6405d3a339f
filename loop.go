package glyphwin

import (
	"context"
	"time"

	"github.com/gogpu/glyphwin/display"
	"github.com/gogpu/glyphwin/internal/logging"
)

// DefaultFrameInterval caps presentation at roughly 60 frames per second.
const DefaultFrameInterval = 16600 * time.Microsecond

// LoopState is the state of a presentation loop.
type LoopState int

const (
	// LoopRunning is the state while no exit has been requested.
	LoopRunning LoopState = iota

	// LoopExiting is the terminal state.
	LoopExiting
)

// String returns the string representation of the state.
func (s LoopState) String() string {
	switch s {
	case LoopRunning:
		return "Running"
	case LoopExiting:
		return "Exiting"
	default:
		return "Unknown"
	}
}

// Loop presents a framebuffer to a display sink at a fixed maximum rate until
// the sink is closed, the exit key is pressed or the context is done.
//
// Each tick checks for exit, presents the framebuffer, then sleeps until the
// next tick boundary. Boundaries are start + n*interval on the monotonic
// clock; a tick that overruns restarts the schedule from the current time
// instead of catching up.
//
// The Loop owns its framebuffer. It is not safe for concurrent use.
type Loop struct {
	sink   display.Sink
	fb     *Framebuffer
	opts   loopOptions
	state  LoopState
	frames uint64
}

// NewLoop creates a loop presenting fb to sink.
func NewLoop(sink display.Sink, fb *Framebuffer, opts ...LoopOption) (*Loop, error) {
	if sink == nil {
		return nil, ErrNoSink
	}
	if fb == nil {
		return nil, ErrInvalidSize
	}
	o := defaultLoopOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Loop{sink: sink, fb: fb, opts: o}, nil
}

// State returns the current loop state.
func (l *Loop) State() LoopState {
	return l.state
}

// Frames returns the number of frames presented.
func (l *Loop) Frames() uint64 {
	return l.frames
}

// Framebuffer returns the framebuffer owned by the loop.
func (l *Loop) Framebuffer() *Framebuffer {
	return l.fb
}

// Interval returns the frame interval.
func (l *Loop) Interval() time.Duration {
	return l.opts.interval
}

// Run drives the loop until exit. It returns nil on a normal exit and a
// *PresentError when the sink fails to present a frame.
func (l *Loop) Run(ctx context.Context) error {
	if l.state == LoopExiting {
		return ErrLoopExited
	}

	log := logging.Logger()
	log.Info("glyphwin: presentation loop started",
		"width", l.fb.Width(), "height", l.fb.Height(), "interval", l.opts.interval)

	start := time.Now()
	next := start
	for {
		if reason := l.exitReason(ctx); reason != "" {
			l.state = LoopExiting
			log.Info("glyphwin: presentation loop exiting",
				"reason", reason, "frames", l.frames, "elapsed", time.Since(start))
			return nil
		}

		if l.opts.redraw != nil {
			l.opts.redraw(l.fb)
		}

		if err := l.sink.Present(l.fb.Pix(), l.fb.Width(), l.fb.Height()); err != nil {
			l.state = LoopExiting
			return &PresentError{Frame: l.frames, Err: err}
		}
		l.frames++

		next = next.Add(l.opts.interval)
		if d := time.Until(next); d > 0 {
			sleep(ctx, d)
		} else {
			log.Debug("glyphwin: frame overran interval", "frame", l.frames, "late", -d)
			next = time.Now()
		}
	}
}

// exitReason returns why the loop should stop, or "" to keep running.
func (l *Loop) exitReason(ctx context.Context) string {
	switch {
	case ctx.Err() != nil:
		return "context"
	case !l.sink.IsOpen():
		return "closed"
	case l.opts.exitKey != display.KeyUnknown && l.sink.IsKeyDown(l.opts.exitKey):
		return "key"
	}
	return ""
}

// sleep blocks for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
