package bitmap

import (
	"image"
	"image/color"
)

// Pixels with an average channel value below this are printed as ink
const InkThreshold = 128

// ImageBitmap classifies the pixels of an arbitrary image as ink or blank.
// The luminance of a pixel is the unweighted mean of its 8-bit red, green and
// blue channels; alpha is ignored, so images should be flattened onto a
// background before being printed.
type ImageBitmap struct {
	image image.Image
}

func FromImage(i image.Image) *ImageBitmap {
	return &ImageBitmap{image: i}
}

func (b *ImageBitmap) Width() int {
	return b.image.Bounds().Dx()
}

func (b *ImageBitmap) Height() int {
	return b.image.Bounds().Dy()
}

func (b *ImageBitmap) GetBit(x int, y int) byte {
	origin := b.image.Bounds().Min
	if IsInk(b.image.At(origin.X+x, origin.Y+y)) {
		return 1
	}
	return 0
}

// Reports whether a colour is dark enough to be printed
func IsInk(c color.Color) bool {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	luminance := (int(n.R) + int(n.G) + int(n.B)) / 3
	return luminance < InkThreshold
}
