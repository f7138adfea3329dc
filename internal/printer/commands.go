// This file implements the Epson ESC/POS command byte sequences used to print
// a receipt: text alignment, font size and the GS v 0 raster bitmap command.
package printer

import (
	"encoding/binary"
	"fmt"
	"image"

	"sandreceipt/internal/bitmap"
)

// Control characters
const (
	Esc = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Type alias for the alignment of text and bitmaps that follow
type Justify byte

const (
	Left   Justify = 0x00
	Centre Justify = 0x01
	Right  Justify = 0x02
)

// Type alias for the ESC ! print mode byte
type FontMode byte

const (
	FontNormal       FontMode = 0x00
	FontDoubleHeight FontMode = 0x20
)

// Length of the GS v 0 header preceding the bitmap data
const RasterHeaderSize = 8

// Largest value that fits the 16-bit width and height fields of GS v 0
const maxRasterDimension = 0xFFFF

// Sets the alignment of everything printed after it
func SetJustify(justify Justify) []byte {
	return []byte{Esc, 0x61, byte(justify)}
}

// Selects the print mode for text printed after it
func SetFont(mode FontMode) []byte {
	return []byte{Esc, 0x21, byte(mode)}
}

// Returns n line feeds
func NewLines(n int) []byte {
	d := make([]byte, n)
	for i := range d {
		d[i] = LF
	}
	return d
}

// Prepares the printer to print bitmap data specified by the width and height passed in.
// widthBytes specifies the width of the bitmap data in bytes, with 8 pixels packed into 1 byte.
// heightBits specifies the height of the bitmap data in rows.
// After this command is written, (widthBytes * heightBits) bytes of data must then be written
func printBitmapHeader(widthBytes uint16, heightBits uint16) []byte {
	header := []byte{GS, 0x76, 0x30, 0x00}
	header = binary.LittleEndian.AppendUint16(header, widthBytes)
	return binary.LittleEndian.AppendUint16(header, heightBits)
}

// Returns a single GS v 0 command printing the packed bitmap in normal mode
func PrintBitmap(b *bitmap.PackedBitmap) ([]byte, error) {
	if b.Stride() > maxRasterDimension || b.Height() > maxRasterDimension {
		return nil, fmt.Errorf("%w: bitmap too large for a raster command: %s", ErrEncode, b)
	}

	d := make([]byte, 0, RasterHeaderSize+len(b.Data()))
	d = append(d, printBitmapHeader(uint16(b.Stride()), uint16(b.Height()))...)
	return append(d, b.Data()...), nil
}

// Thresholds an image to 1 bit per pixel and wraps it in a raster command.
func EncodeRaster(i image.Image) ([]byte, error) {
	return PrintBitmap(bitmap.PackBitmap(bitmap.FromImage(i)))
}
