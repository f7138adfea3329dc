// This package defines an interface for a simple bitmap structure that has a
// width, height, and can get bits from the bitmap by (x,y) coordinate.
// It also defines a simple implementation PixelBitmap that stores each pixel
// in a byte in a 2D array format, which is used to test the PackedBitmap impl,
// an ImageBitmap that thresholds any image.Image into ink and blank pixels,
// and the PackedBitmap structure which is the 1 bit per pixel format that an
// ESC/POS printer consumes inside a raster command.
package bitmap

import (
	"fmt"
)

type Bitmap interface {
	Width() int
	Height() int
	// Returns 1 if the pixel at (x, y) should be printed as ink, 0 otherwise
	GetBit(x int, y int) byte
}

type PixelBitmap struct {
	pixels        [][]byte
	width, height int
}

func NewPixelBitmap(pixels [][]byte) *PixelBitmap {
	width := 0
	if len(pixels) > 0 {
		width = len(pixels[0])
	}
	return &PixelBitmap{pixels: pixels, width: width, height: len(pixels)}
}

func (b *PixelBitmap) Width() int {
	return b.width
}

func (b *PixelBitmap) Height() int {
	return b.height
}

func (b *PixelBitmap) GetBit(x int, y int) byte {
	return b.pixels[y][x]
}

func (b *PixelBitmap) String() string {
	return fmt.Sprintf("PixelBitmap(%d,%d)", b.width, b.height)
}
