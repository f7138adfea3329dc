// Package qr rasterises QR symbols so they can be printed as ordinary bitmaps
// rather than through a printer's native QR command.
package qr

import (
	"fmt"
	"image"
	"image/color"

	"github.com/skip2/go-qrcode"

	"sandreceipt/internal/printer"
)

// Side of the square QR image printed on a receipt, in pixels
const Size = 200

// Encodes payload at the lowest recovery level, letting the encoder pick the
// smallest version that fits, and renders it as a size x size image including
// the quiet zone. Dark modules are pure black, light modules pure white.
// Fails with printer.ErrEncode if the payload is empty, too long for any QR
// version, or needs more than size pixels.
func Render(payload string, size int) (image.Image, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: QR size must be positive, got %d", printer.ErrEncode, size)
	}

	q, err := qrcode.New(payload, qrcode.Low)
	if err != nil {
		return nil, fmt.Errorf("%w: couldn't encode QR payload of %d bytes:\n%w", printer.ErrEncode, len(payload), err)
	}
	q.ForegroundColor = color.Black
	q.BackgroundColor = color.White

	// the encoder grows the image rather than drop modules if size is too small
	img := q.Image(size)
	if img.Bounds().Dx() != size || img.Bounds().Dy() != size {
		return nil, fmt.Errorf("%w: QR version %d needs at least %d pixels, got %d",
			printer.ErrEncode, q.VersionNumber, img.Bounds().Dx(), size)
	}

	return img, nil
}
