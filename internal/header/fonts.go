package header

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

type FontSpec struct {
	// Pixel size, rendered at 72 DPI so points and pixels match
	Size float64
	Bold bool
}

var (
	LargeBold    = FontSpec{Size: 30, Bold: true}
	SmallRegular = FontSpec{Size: 15}
)

// TextRenderer measures and draws single lines of text.
type TextRenderer interface {
	// Width of text in whole pixels when drawn with f
	Measure(text string, f FontSpec) int
	// Draws text in black with its left edge at x and its baseline at y
	Draw(dst draw.Image, text string, f FontSpec, x, y int)
}

// GoFontRenderer renders text with the Go font family. Text in a FontSpec
// that can't be rendered, such as a non-positive size, measures zero and
// draws nothing.
type GoFontRenderer struct {
	regular, bold *opentype.Font

	mu    sync.Mutex
	faces map[FontSpec]font.Face
}

// Parses the Go fonts and builds the faces the header uses.
func NewGoFontRenderer() (*GoFontRenderer, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("Couldn't parse regular font:\n%w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("Couldn't parse bold font:\n%w", err)
	}

	r := &GoFontRenderer{
		regular: regular,
		bold:    bold,
		faces:   map[FontSpec]font.Face{},
	}
	for _, f := range []FontSpec{LargeBold, SmallRegular} {
		if _, err := r.face(f); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *GoFontRenderer) face(f FontSpec) (font.Face, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if face, ok := r.faces[f]; ok {
		return face, nil
	}
	if f.Size <= 0 {
		return nil, fmt.Errorf("Invalid font size %v", f.Size)
	}

	parsed := r.regular
	if f.Bold {
		parsed = r.bold
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    f.Size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("Couldn't create font face for %+v:\n%w", f, err)
	}
	r.faces[f] = face
	return face, nil
}

func (r *GoFontRenderer) Measure(text string, f FontSpec) int {
	face, err := r.face(f)
	if err != nil {
		slog.Error("Couldn't measure text", "font", f, "error", err)
		return 0
	}
	return font.MeasureString(face, text).Ceil()
}

func (r *GoFontRenderer) Draw(dst draw.Image, text string, f FontSpec, x, y int) {
	face, err := r.face(f)
	if err != nil {
		slog.Error("Couldn't draw text", "font", f, "error", err)
		return
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.Black),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
