// Package config holds the startup configuration of the glyphwin command.
//
// Every field defaults to the reference scene; a TOML file overrides only
// the keys it sets.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/glyphwin"
	"github.com/gogpu/glyphwin/text"
)

// ErrInvalid is returned by Validate for out-of-range values.
var ErrInvalid = errors.New("config: invalid value")

// Config is the startup configuration.
type Config struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`

	Text       string  `toml:"text"`
	FontSize   float64 `toml:"font_size"`
	LineHeight float64 `toml:"line_height"`
	BoxWidth   float64 `toml:"box_width"`
	BoxHeight  float64 `toml:"box_height"`

	Color      string `toml:"color"`
	Background string `toml:"background"`
	Blend      string `toml:"blend"`
	Subpixel   int    `toml:"subpixel"`

	FontFiles   []string `toml:"font_files"`
	SystemFonts bool     `toml:"system_fonts"`

	// IntervalMS is the minimum time between presents in milliseconds.
	IntervalMS float64 `toml:"interval_ms"`

	Sink      string `toml:"sink"`
	Output    string `toml:"output"`
	MaxFrames int    `toml:"max_frames"`
}

// Default returns the reference configuration.
func Default() Config {
	return Config{
		Title:      "Fractal - ESC to exit",
		Width:      640,
		Height:     360,
		Text:       "Some text 1234 abcdef 伯母さん\n",
		FontSize:   24,
		LineHeight: 40,
		BoxWidth:   180,
		BoxHeight:  125,
		Color:      "#ffffff",
		Background: "#000000",
		Blend:      "grayscale",
		Subpixel:   int(text.Subpixel4),
		IntervalMS: 16.6,
		Output:     "glyphwin.png",
	}
}

// Load reads a TOML file on top of the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	// #nosec G304 -- config path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML from r on top of the defaults. Unknown keys are errors.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field and reports the first problem.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Width, c.Height)
	case c.FontSize <= 0:
		return fmt.Errorf("%w: font_size %v", ErrInvalid, c.FontSize)
	case c.LineHeight < 0:
		return fmt.Errorf("%w: line_height %v", ErrInvalid, c.LineHeight)
	case c.BoxWidth < 0 || c.BoxHeight < 0:
		return fmt.Errorf("%w: box %vx%v", ErrInvalid, c.BoxWidth, c.BoxHeight)
	case c.IntervalMS < 0:
		return fmt.Errorf("%w: interval_ms %v", ErrInvalid, c.IntervalMS)
	case c.MaxFrames < 0:
		return fmt.Errorf("%w: max_frames %d", ErrInvalid, c.MaxFrames)
	}
	if _, _, err := c.Colors(); err != nil {
		return err
	}
	if _, err := c.BlendMode(); err != nil {
		return err
	}
	if _, err := c.SubpixelMode(); err != nil {
		return err
	}
	return nil
}

// Colors returns the parsed text and background colors.
func (c Config) Colors() (fg, bg glyphwin.Color, err error) {
	if fg, err = glyphwin.ParseColor(c.Color); err != nil {
		return fg, bg, fmt.Errorf("%w: color: %w", ErrInvalid, err)
	}
	if bg, err = glyphwin.ParseColor(c.Background); err != nil {
		return fg, bg, fmt.Errorf("%w: background: %w", ErrInvalid, err)
	}
	return fg, bg, nil
}

// BlendMode returns the compositor mode named by Blend.
func (c Config) BlendMode() (glyphwin.BlendMode, error) {
	switch strings.ToLower(c.Blend) {
	case "", "grayscale":
		return glyphwin.BlendGrayscale, nil
	case "tinted":
		return glyphwin.BlendTinted, nil
	}
	return 0, fmt.Errorf("%w: blend %q", ErrInvalid, c.Blend)
}

// SubpixelMode returns the sub-pixel positioning mode.
func (c Config) SubpixelMode() (text.SubpixelMode, error) {
	switch m := text.SubpixelMode(c.Subpixel); m {
	case text.SubpixelNone, text.Subpixel4, text.Subpixel10:
		return m, nil
	}
	return 0, fmt.Errorf("%w: subpixel %d", ErrInvalid, c.Subpixel)
}

// Interval returns the frame interval.
func (c Config) Interval() time.Duration {
	return time.Duration(c.IntervalMS * float64(time.Millisecond))
}

// Metrics returns the shaping metrics.
func (c Config) Metrics() text.Metrics {
	return text.Metrics{FontSize: c.FontSize, LineHeight: c.LineHeight}
}

// Box returns the layout box.
func (c Config) Box() text.Size {
	return text.Size{Width: c.BoxWidth, Height: c.BoxHeight}
}
