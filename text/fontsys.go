package text

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/fontscan"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/glyphwin/internal/logging"
)

// FontSystem is the process-wide font context: every font the shaper and the
// rasterizer can use, each under a stable FontID.
//
// Create one per application and pass it explicitly to the components that
// need it. FontSystem implements shaping.Fontmap, so it can resolve a face
// for any rune during segmentation.
//
// FontSystem is not safe for concurrent use.
type FontSystem struct {
	// faces is indexed by FontID-1.
	faces []*font.Face
	ids   map[*font.Face]FontID

	// explicit holds the faces added with AddFont in order; only those are
	// searched before falling back to system fonts.
	explicit []*font.Face

	system *fontscan.FontMap
}

// FontSystemOption configures FontSystem creation.
type FontSystemOption func(*fontSystemConfig)

type fontSystemConfig struct {
	defaultFont  bool
	systemFonts  bool
	fontCacheDir string
	fontFiles    []string
}

// WithDefaultFont registers Go Regular as a font.
func WithDefaultFont() FontSystemOption {
	return func(c *fontSystemConfig) {
		c.defaultFont = true
	}
}

// WithFontFile registers the TTF/OTF file at path.
func WithFontFile(path string) FontSystemOption {
	return func(c *fontSystemConfig) {
		c.fontFiles = append(c.fontFiles, path)
	}
}

// WithSystemFonts enables fallback to installed system fonts for runes that
// no registered font covers. The font index is cached under cacheDir; an
// empty cacheDir uses os.UserCacheDir.
func WithSystemFonts(cacheDir string) FontSystemOption {
	return func(c *fontSystemConfig) {
		c.systemFonts = true
		c.fontCacheDir = cacheDir
	}
}

// NewFontSystem creates a font system. Font files are registered in the
// order given, ahead of the default font when WithDefaultFont is used.
// Failing to index system fonts is logged and not fatal.
func NewFontSystem(opts ...FontSystemOption) (*FontSystem, error) {
	var config fontSystemConfig
	for _, opt := range opts {
		opt(&config)
	}

	fs := &FontSystem{ids: make(map[*font.Face]FontID)}

	for _, path := range config.fontFiles {
		if _, err := fs.AddFontFile(path); err != nil {
			return nil, err
		}
	}
	if config.defaultFont {
		if _, err := fs.AddFont(goregular.TTF); err != nil {
			return nil, err
		}
	}

	if config.systemFonts {
		dir := config.fontCacheDir
		if dir == "" {
			d, err := os.UserCacheDir()
			if err != nil {
				logging.Logger().Warn("text: no user cache dir for font index", "err", err)
			}
			dir = d
		}
		fm := fontscan.NewFontMap(nil)
		if err := fm.UseSystemFonts(dir); err != nil {
			logging.Logger().Warn("text: loading system fonts failed", "err", err)
		} else {
			fm.SetQuery(fontscan.Query{Families: []string{"sans-serif"}})
			fs.system = fm
		}
	}

	return fs, nil
}

// AddFont parses font data (TTF or OTF) and registers it.
// The first font added becomes the primary font.
func (fs *FontSystem) AddFont(data []byte) (FontID, error) {
	if len(data) == 0 {
		return 0, ErrEmptyFontData
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("text: failed to parse font: %w", err)
	}
	id := fs.register(face)
	fs.explicit = append(fs.explicit, face)
	return id, nil
}

// AddFontFile loads and registers a font file.
func (fs *FontSystem) AddFontFile(path string) (FontID, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("text: failed to read font file: %w", err)
	}
	return fs.AddFont(data)
}

// register assigns the next FontID to face, or returns its existing one.
func (fs *FontSystem) register(face *font.Face) FontID {
	if id, ok := fs.ids[face]; ok {
		return id
	}
	fs.faces = append(fs.faces, face)
	id := FontID(len(fs.faces)) //nolint:gosec // font count is small
	fs.ids[face] = id
	return id
}

// Face returns the face registered under id.
func (fs *FontSystem) Face(id FontID) (*font.Face, error) {
	if id == 0 || int(id) > len(fs.faces) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFont, id)
	}
	return fs.faces[id-1], nil
}

// ID returns the FontID for face, registering faces that were resolved from
// system fonts on first sight.
func (fs *FontSystem) ID(face *font.Face) FontID {
	if face == nil {
		return 0
	}
	return fs.register(face)
}

// Primary returns the first font added with AddFont, or nil.
func (fs *FontSystem) Primary() *font.Face {
	if len(fs.explicit) == 0 {
		return nil
	}
	return fs.explicit[0]
}

// Len returns the number of registered faces.
func (fs *FontSystem) Len() int {
	return len(fs.faces)
}

// ResolveFace implements shaping.Fontmap. It picks the first explicitly
// added font with a glyph for r, then a system font, then the primary font.
func (fs *FontSystem) ResolveFace(r rune) *font.Face {
	for _, face := range fs.explicit {
		if _, ok := face.NominalGlyph(r); ok {
			return face
		}
	}
	if fs.system != nil {
		if face := fs.system.ResolveFace(r); face != nil {
			fs.register(face)
			return face
		}
	}
	return fs.Primary()
}
