// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package display

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/glyphwin/internal/logging"
)

// upperHalfBlock draws the top pixel in the foreground color and the bottom
// pixel in the background color of a cell.
const upperHalfBlock = '▀'

// Terminal is a Sink that draws the framebuffer into a terminal with tcell.
//
// Each cell shows two pixels stacked vertically. The framebuffer is scaled
// down (box filtered in linear light) to fit the terminal while keeping its
// aspect ratio, and centred.
//
// Escape, Enter, space and q are reported through IsKeyDown; a key counts as
// down from the moment it is pressed until the next Present. Ctrl-C closes
// the sink.
type Terminal struct {
	screen tcell.Screen
	title  string

	events chan tcell.Event
	quit   chan struct{}

	open   bool
	closed bool
	keys   map[Key]bool
}

// NewTerminal opens a terminal sink on the controlling terminal.
func NewTerminal(opts Options) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("%w: terminal: %w", ErrInit, err)
	}
	return NewTerminalWithScreen(screen, opts)
}

// NewTerminalWithScreen opens a terminal sink on screen, which must not be
// initialized yet. Tests pass a tcell.SimulationScreen.
func NewTerminalWithScreen(screen tcell.Screen, opts Options) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("%w: terminal: %w", ErrInit, err)
	}
	screen.HideCursor()

	t := &Terminal{
		screen: screen,
		title:  opts.Title,
		events: make(chan tcell.Event, 64),
		quit:   make(chan struct{}),
		open:   true,
		keys:   make(map[Key]bool),
	}
	go t.pump()

	logging.Logger().Info("display: terminal sink opened", "title", opts.Title)
	return t, nil
}

// pump forwards tcell events to the loop goroutine until the sink closes.
func (t *Terminal) pump() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-t.quit:
			return
		}
	}
}

// poll drains pending events without blocking.
func (t *Terminal) poll() {
	for {
		select {
		case ev := <-t.events:
			t.handle(ev)
		default:
			return
		}
	}
}

func (t *Terminal) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape:
			t.keys[KeyEscape] = true
		case tcell.KeyEnter:
			t.keys[KeyEnter] = true
		case tcell.KeyCtrlC:
			t.open = false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				t.keys[KeyQ] = true
			case ' ':
				t.keys[KeySpace] = true
			}
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
}

// IsOpen implements Sink.
func (t *Terminal) IsOpen() bool {
	t.poll()
	return t.open && !t.closed
}

// IsKeyDown implements Sink.
func (t *Terminal) IsKeyDown(k Key) bool {
	t.poll()
	return t.keys[k]
}

// Present implements Sink.
func (t *Terminal) Present(pix []uint32, width, height int) error {
	if t.closed {
		return ErrClosed
	}
	if err := checkBuffer(pix, width, height); err != nil {
		return err
	}
	clear(t.keys)

	t.screen.Clear()
	cols, rows := t.screen.Size()
	t.draw(pix, width, height, cols, rows)
	if t.title != "" && rows > 0 {
		t.drawTitle(cols, rows)
	}
	t.screen.Show()
	return nil
}

// draw box-filters the buffer into a cols x 2*rows pixel grid.
func (t *Terminal) draw(pix []uint32, width, height, cols, rows int) {
	if width == 0 || height == 0 || cols <= 0 || rows <= 0 {
		return
	}

	// Reserve the last row for the title.
	avail := rows
	if t.title != "" && rows > 1 {
		avail--
	}

	scale := min(float64(cols)/float64(width), float64(2*avail)/float64(height))
	tw := max(1, int(float64(width)*scale))
	th := max(2, int(float64(height)*scale)&^1)
	offX := (cols - tw) / 2
	offY := (avail - th/2) / 2

	for cy := 0; cy < th/2; cy++ {
		for cx := 0; cx < tw; cx++ {
			top := boxSample(pix, width, height, cx, 2*cy, tw, th)
			bottom := boxSample(pix, width, height, cx, 2*cy+1, tw, th)
			style := tcell.StyleDefault.Foreground(toTcell(top)).Background(toTcell(bottom))
			t.screen.SetContent(offX+cx, offY+cy, upperHalfBlock, nil, style)
		}
	}
}

func (t *Terminal) drawTitle(cols, rows int) {
	style := tcell.StyleDefault.Dim(true)
	x := 0
	for _, r := range t.title {
		if x >= cols {
			break
		}
		t.screen.SetContent(x, rows-1, r, nil, style)
		x++
	}
}

// Close implements Sink.
func (t *Terminal) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	t.open = false
	close(t.quit)
	t.screen.Fini()
	return nil
}

// linear maps an 8-bit sRGB channel to linear light.
var linear = func() (tab [256]float64) {
	for i := range tab {
		v := float64(i) / 255
		tab[i], _, _ = colorful.Color{R: v, G: v, B: v}.LinearRgb()
	}
	return tab
}()

// boxSample averages the source pixels covered by target pixel (tx, ty) of a
// tw x th grid, in linear light.
func boxSample(pix []uint32, width, height, tx, ty, tw, th int) colorful.Color {
	x0, x1 := tx*width/tw, max((tx+1)*width/tw, tx*width/tw+1)
	y0, y1 := ty*height/th, max((ty+1)*height/th, ty*height/th+1)
	x1, y1 = min(x1, width), min(y1, height)

	var r, g, b float64
	n := 0
	for y := y0; y < y1; y++ {
		for _, v := range pix[y*width+x0 : y*width+x1] {
			r += linear[uint8(v>>16)]
			g += linear[uint8(v>>8)]
			b += linear[uint8(v)]
			n++
		}
	}
	if n == 0 {
		return colorful.Color{}
	}
	fn := float64(n)
	return colorful.LinearRgb(r/fn, g/fn, b/fn)
}

// toTcell converts a color to a tcell RGB color.
func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
