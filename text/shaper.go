package text

import (
	"math"
	"strings"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"
)

// Metrics indicate the font size and line height used for shaping, in pixels.
type Metrics struct {
	FontSize   float64
	LineHeight float64
}

// lineHeight returns LineHeight, or 1.2 times the font size when unset.
func (m Metrics) lineHeight() float64 {
	if m.LineHeight > 0 {
		return m.LineHeight
	}
	return m.FontSize * 1.2
}

// Size is a layout box size in pixels. A zero Width disables wrapping and a
// zero Height keeps every line.
type Size struct {
	Width, Height float64
}

// Shaper converts a UTF-8 string into laid-out glyph runs with absolute
// pixel positions. Implementations are pure functions of their inputs.
type Shaper interface {
	Shape(s string, m Metrics, box Size) *ShapedText
}

// Direction specifies the base paragraph direction.
type Direction int

const (
	// DirectionLTR is left-to-right text (English, French, etc.)
	DirectionLTR Direction = iota
	// DirectionRTL is right-to-left text (Arabic, Hebrew)
	DirectionRTL
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionLTR:
		return "LTR"
	case DirectionRTL:
		return "RTL"
	default:
		return unknownStr
	}
}

// ShaperOption configures a GoTextShaper.
type ShaperOption func(*shaperConfig)

type shaperConfig struct {
	direction Direction
	language  string
}

// WithDirection sets the base paragraph direction.
func WithDirection(d Direction) ShaperOption {
	return func(c *shaperConfig) {
		c.direction = d
	}
}

// WithLanguage sets the language tag used for shaping (e.g., "en", "ja", "ar").
func WithLanguage(lang string) ShaperOption {
	return func(c *shaperConfig) {
		c.language = lang
	}
}

// GoTextShaper shapes and wraps text with go-text/typesetting.
//
// Text is normalized to NFC and split into paragraphs at line endings. Each
// paragraph is segmented by script, bidi level and font (faces come from the
// FontSystem), shaped with HarfBuzz and wrapped to the box width. Lines are
// stacked LineHeight apart from the top of the box with the baseline centred
// in the line; lines starting at or below the box height are dropped.
//
// GoTextShaper is not safe for concurrent use.
type GoTextShaper struct {
	fonts     *FontSystem
	config    shaperConfig
	shaper    shaping.HarfbuzzShaper
	wrapper   shaping.LineWrapper
	segmenter shaping.Segmenter
}

// NewGoTextShaper creates a shaper using the fonts of fs.
func NewGoTextShaper(fs *FontSystem, opts ...ShaperOption) *GoTextShaper {
	config := shaperConfig{direction: DirectionLTR, language: "en"}
	for _, opt := range opts {
		opt(&config)
	}
	return &GoTextShaper{fonts: fs, config: config}
}

// newlines maps Windows and classic Mac line endings to '\n'.
var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Shape implements Shaper.
func (s *GoTextShaper) Shape(str string, m Metrics, box Size) *ShapedText {
	st := &ShapedText{}
	if str == "" || s.fonts == nil || s.fonts.Primary() == nil {
		return st
	}

	size := floatToFixed(m.FontSize)
	lh := m.lineHeight()
	top := 0.0

	for _, para := range strings.Split(newlines.Replace(norm.NFC.String(str)), "\n") {
		runes := []rune(para)
		lines := s.wrap(runes, size, box.Width)
		if len(lines) == 0 {
			// An empty paragraph still occupies a line.
			lines = []shaping.Line{nil}
		}
		for _, line := range lines {
			if box.Height > 0 && top >= box.Height {
				return st
			}
			st.Runs = append(st.Runs, s.layoutLine(line, top, lh))
			top += lh
		}
	}
	return st
}

// wrap shapes one paragraph and breaks it into lines no wider than width.
// The returned lines are only valid until the next call.
func (s *GoTextShaper) wrap(runes []rune, size fixed.Int26_6, width float64) []shaping.Line {
	if len(runes) == 0 {
		return nil
	}

	dir := mapDirection(s.config.direction)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      s.fonts.Primary(),
		Size:      size,
		Script:    detectScript(runes),
		Language:  language.NewLanguage(s.config.language),
	}

	inputs := s.segmenter.Split(input, s.fonts)
	outs := make([]shaping.Output, 0, len(inputs))
	for _, in := range inputs {
		if in.Face == nil {
			continue
		}
		outs = append(outs, s.shaper.Shape(in))
	}
	if len(outs) == 0 {
		return nil
	}

	maxWidth := math.MaxInt32
	if width > 0 {
		maxWidth = int(width)
	}
	cfg := shaping.WrapConfig{
		Direction:   dir,
		BreakPolicy: shaping.WhenNecessary,
	}
	lines, _ := s.wrapper.WrapParagraph(cfg, maxWidth, runes, shaping.NewSliceIterator(outs))
	return lines
}

// layoutLine positions the glyphs of one wrapped line.
func (s *GoTextShaper) layoutLine(line shaping.Line, top, lh float64) LayoutRun {
	var ascent, descent fixed.Int26_6
	for i := range line {
		b := line[i].LineBounds
		ascent = max(ascent, b.Ascent)
		descent = max(descent, abs26(b.Descent))
	}

	baseline := top + (lh-fixedToFloat(ascent+descent))/2 + fixedToFloat(ascent)
	run := LayoutRun{
		LineTop:    top,
		LineHeight: lh,
		Baseline:   baseline,
	}

	x := 0.0
	for i := range line {
		out := &line[i]
		id := s.fonts.ID(out.Face)
		for _, g := range out.Glyphs {
			adv := fixedToFloat(g.Advance)
			run.Glyphs = append(run.Glyphs, LayoutGlyph{
				Font:    id,
				GID:     GlyphID(g.GlyphID),
				Size:    out.Size,
				X:       x + fixedToFloat(g.XOffset),
				Y:       baseline - fixedToFloat(g.YOffset),
				Advance: adv,
			})
			x += adv
		}
	}
	run.Width = x
	return run
}

// mapDirection converts our text.Direction to go-text's di.Direction.
func mapDirection(d Direction) di.Direction {
	if d == DirectionRTL {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

// detectScript returns the script of the first non-space rune. The segmenter
// refines it per run.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func abs26(v fixed.Int26_6) fixed.Int26_6 {
	if v < 0 {
		return -v
	}
	return v
}
