// This file implements methods to pack bitmap pixel data into
// the bit structure accepted by ESC/POS raster commands.

package bitmap

import "fmt"

// a bitmap packed in memory, 1 bit per pixel, with every row padded to a
// whole number of bytes
type PackedBitmap struct {
	data                  []byte
	width, height, stride int
}

const bitsPerWord = 8

// Number of bytes needed to hold one row of a bitmap of the given width
func StrideForWidth(width int) int {
	return (width + bitsPerWord - 1) / bitsPerWord
}

func (b *PackedBitmap) Width() int {
	return b.width
}

func (b *PackedBitmap) Height() int {
	return b.height
}

// Number of bytes per row
func (b *PackedBitmap) Stride() int {
	return b.stride
}

func (b *PackedBitmap) Data() []byte {
	return b.data
}

// Gets a single bit from the bitmap at the (x, y) coordinate, returns either 0 or 1.
// Pixels are left-aligned within their byte: the leftmost pixel is the most
// significant bit, so a row whose width isn't a multiple of 8 leaves the low
// bits of its final byte unused.
func (b *PackedBitmap) GetBit(x int, y int) byte {
	index := (y * b.stride) + (x / bitsPerWord)
	return (b.data[index] >> (bitsPerWord - 1 - x%bitsPerWord)) & 1
}

func (b *PackedBitmap) String() string {
	return fmt.Sprintf("PackedBitmap(%d,%d)", b.width, b.height)
}

// Take data from any Bitmap implementation and pack it into rows of bytes
func PackBitmap(b Bitmap) *PackedBitmap {
	width, height, stride := b.Width(), b.Height(), StrideForWidth(b.Width())
	data := make([]byte, stride*height)

	for y := range height {
		row := data[y*stride : (y+1)*stride]
		for x := range width {
			if b.GetBit(x, y)&1 == 1 {
				row[x/bitsPerWord] |= 0x80 >> (x % bitsPerWord)
			}
		}
	}

	return &PackedBitmap{data, width, height, stride}
}
