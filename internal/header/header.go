// Package header draws the branded header printed at the top of each receipt
// copy: the logo on the left with two lines of text beside it.
package header

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"

	"github.com/disintegration/imaging"
	"github.com/makeworld-the-better-one/dither/v2"
	"golang.org/x/image/draw"
)

const (
	LogoWidth  = 100
	LogoHeight = 60
	// The header is never shorter than this, whatever the logo height
	MinHeight = 70
	// Gap between the logo and the text
	Spacing = 4

	Line1Baseline = 30
	Line2Baseline = 52
)

type Composer struct {
	Renderer TextRenderer
	// Floyd-Steinberg dither the scaled logo instead of leaving it to the
	// printer's hard threshold. Helps photographic logos.
	DitherLogo bool
}

// Scales logo to LogoWidth x LogoHeight and draws it on a white canvas,
// vertically centred, with line1 (large bold) and line2 (small regular)
// to its right.
func (c *Composer) Compose(logo image.Image, line1, line2 string) *image.NRGBA {
	scaled := c.scaleLogo(logo)

	textWidth := max(
		c.Renderer.Measure(line1, LargeBold),
		c.Renderer.Measure(line2, SmallRegular),
	)
	logoWidth, logoHeight := scaled.Bounds().Dx(), scaled.Bounds().Dy()
	width := logoWidth + Spacing + textWidth
	height := max(logoHeight, MinHeight)

	canvas := imaging.New(width, height, color.White)
	canvas = imaging.Overlay(canvas, scaled, image.Pt(0, (height-logoHeight)/2), 1.0)

	textX := logoWidth + Spacing
	c.Renderer.Draw(canvas, line1, LargeBold, textX, Line1Baseline)
	c.Renderer.Draw(canvas, line2, SmallRegular, textX, Line2Baseline)

	return canvas
}

func (c *Composer) scaleLogo(logo image.Image) image.Image {
	scaled := imaging.Resize(logo, LogoWidth, LogoHeight, imaging.Linear)
	if !c.DitherLogo {
		return scaled
	}

	flattened := imaging.New(LogoWidth, LogoHeight, color.White)
	flattened = imaging.Overlay(flattened, scaled, image.Pt(0, 0), 1.0)

	ditherer := dither.NewDitherer([]color.Color{color.Black, color.White})
	ditherer.Matrix = dither.FloydSteinberg
	ditherer.Serpentine = true
	return ditherer.DitherPaletted(flattened)
}

// Decodes a PNG or JPEG logo and flattens any transparency onto white. No
// data gives a blank logo so the header still has its text.
func LoadLogo(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return imaging.New(LogoWidth, LogoHeight, color.White), nil
	}

	decoded, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("Couldn't decode logo:\n%w", err)
	}

	bounds := decoded.Bounds()
	logo := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(logo, logo.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(logo, logo.Bounds(), decoded, bounds.Min, draw.Over)

	slog.Debug("Loaded logo", "format", format, "width", bounds.Dx(), "height", bounds.Dy())
	return logo, nil
}
