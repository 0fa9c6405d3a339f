package text

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

func newTestFonts(t testing.TB) *FontSystem {
	t.Helper()
	fs, err := NewFontSystem(WithDefaultFont())
	if err != nil {
		t.Fatalf("NewFontSystem() error = %v", err)
	}
	return fs
}

func TestFontSystem_Default(t *testing.T) {
	fs := newTestFonts(t)

	if fs.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", fs.Len())
	}
	face, err := fs.Face(1)
	if err != nil {
		t.Fatalf("Face(1) error = %v", err)
	}
	if face != fs.Primary() {
		t.Error("Face(1) is not the primary face")
	}
	if fs.ID(face) != 1 {
		t.Errorf("ID(primary) = %d, want 1", fs.ID(face))
	}
	if fs.ID(nil) != 0 {
		t.Error("ID(nil) != 0")
	}
}

func TestFontSystem_Empty(t *testing.T) {
	fs, err := NewFontSystem()
	if err != nil {
		t.Fatal(err)
	}
	if fs.Primary() != nil || fs.Len() != 0 {
		t.Error("font system without options should be empty")
	}
	if fs.ResolveFace('a') != nil {
		t.Error("ResolveFace on empty font system should be nil")
	}
}

func TestFontSystem_FaceUnknown(t *testing.T) {
	fs := newTestFonts(t)
	for _, id := range []FontID{0, 2, 100} {
		if _, err := fs.Face(id); !errors.Is(err, ErrUnknownFont) {
			t.Errorf("Face(%d) error = %v, want ErrUnknownFont", id, err)
		}
	}
}

func TestFontSystem_AddFont(t *testing.T) {
	fs := newTestFonts(t)

	if _, err := fs.AddFont(nil); !errors.Is(err, ErrEmptyFontData) {
		t.Errorf("AddFont(nil) error = %v, want ErrEmptyFontData", err)
	}
	if _, err := fs.AddFont([]byte("not a font")); err == nil {
		t.Error("AddFont(garbage) should fail")
	}

	id, err := fs.AddFont(gobold.TTF)
	if err != nil {
		t.Fatal(err)
	}
	if id != 2 || fs.Len() != 2 {
		t.Errorf("AddFont() = %d, Len() = %d; want 2, 2", id, fs.Len())
	}

	// The first font stays primary and wins resolution.
	if fs.ResolveFace('A') != fs.Primary() {
		t.Error("ResolveFace('A') is not the primary face")
	}
}

func TestFontSystem_FontFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o600); err != nil {
		t.Fatal(err)
	}

	fs, err := NewFontSystem(WithDefaultFont(), WithFontFile(path))
	if err != nil {
		t.Fatal(err)
	}
	if fs.Len() != 2 {
		t.Errorf("Len() = %d, want 2", fs.Len())
	}

	if _, err := NewFontSystem(WithFontFile(filepath.Join(t.TempDir(), "missing.ttf"))); err == nil {
		t.Error("NewFontSystem with missing font file should fail")
	}
}

func TestFontSystem_ResolveFaceFallback(t *testing.T) {
	fs := newTestFonts(t)

	// Go Regular has no CJK glyphs; without system fonts the primary face
	// is used and the glyph shapes to .notdef.
	if fs.ResolveFace('伯') != fs.Primary() {
		t.Error("ResolveFace('伯') did not fall back to the primary face")
	}
}
