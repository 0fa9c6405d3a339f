package glyphwin

import (
	"time"

	"github.com/gogpu/glyphwin/display"
	"github.com/gogpu/glyphwin/text"
)

// RendererOption configures a Renderer during creation.
type RendererOption func(*rendererOptions)

type rendererOptions struct {
	background Color
	mode       BlendMode
	subpixel   text.SubpixelMode
}

func defaultRendererOptions() rendererOptions {
	return rendererOptions{
		background: Black,
		mode:       BlendGrayscale,
		subpixel:   text.Subpixel4,
	}
}

// WithBackground sets the color the framebuffer is cleared to before each
// render. Default: Black.
func WithBackground(c Color) RendererOption {
	return func(o *rendererOptions) {
		o.background = c
	}
}

// WithBlendMode sets how coverage is written. Default: BlendGrayscale.
func WithBlendMode(m BlendMode) RendererOption {
	return func(o *rendererOptions) {
		o.mode = m
	}
}

// WithSubpixel sets horizontal sub-pixel positioning. Default: text.Subpixel4.
func WithSubpixel(m text.SubpixelMode) RendererOption {
	return func(o *rendererOptions) {
		o.subpixel = m
	}
}

// LoopOption configures a Loop during creation.
type LoopOption func(*loopOptions)

type loopOptions struct {
	interval time.Duration
	exitKey  display.Key
	redraw   func(fb *Framebuffer)
}

func defaultLoopOptions() loopOptions {
	return loopOptions{
		interval: DefaultFrameInterval,
		exitKey:  display.KeyEscape,
	}
}

// WithFrameInterval sets the minimum time between presents.
// Non-positive values keep the default.
func WithFrameInterval(d time.Duration) LoopOption {
	return func(o *loopOptions) {
		if d > 0 {
			o.interval = d
		}
	}
}

// WithExitKey sets the key that ends the loop. Default: display.KeyEscape.
// display.KeyUnknown disables the exit key.
func WithExitKey(k display.Key) LoopOption {
	return func(o *loopOptions) {
		o.exitKey = k
	}
}

// WithRedraw installs a function called on every tick before the frame is
// presented. Without it the framebuffer is presented as rendered before Run.
func WithRedraw(fn func(fb *Framebuffer)) LoopOption {
	return func(o *loopOptions) {
		o.redraw = fn
	}
}
