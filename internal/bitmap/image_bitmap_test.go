package bitmap

import (
	"image"
	"image/color"
	"math/rand/v2"
	"testing"
)

func TestIsInk(t *testing.T) {
	tests := []struct {
		c    color.Color
		want bool
	}{
		{color.Black, true},
		{color.White, false},
		{color.RGBA{127, 127, 127, 255}, true},
		{color.RGBA{128, 128, 128, 255}, false},
		// (255+128+0)/3 = 127
		{color.RGBA{255, 128, 0, 255}, true},
		// (255+130+0)/3 = 128
		{color.RGBA{255, 130, 0, 255}, false},
		{color.Gray{100}, true},
	}

	for _, tt := range tests {
		if got := IsInk(tt.c); got != tt.want {
			t.Errorf("IsInk(%v) = %v, want %v", tt.c, got, tt.want)
		}
	}
}

func TestImageBitmapRoundTrip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 37, 11))
	for y := range 11 {
		for x := range 37 {
			img.Set(x, y, color.RGBA{uint8(rand.IntN(256)), uint8(rand.IntN(256)), uint8(rand.IntN(256)), 255})
		}
	}

	packed := PackBitmap(FromImage(img))
	for y := range 11 {
		for x := range 37 {
			bit := (packed.Data()[y*packed.Stride()+x/8] >> (7 - x%8)) & 1
			if (bit == 1) != IsInk(img.At(x, y)) {
				t.Errorf("Pixel (%v, %v) classified differently after packing", x, y)
			}
		}
	}
}

func TestImageBitmapHonoursBoundsOrigin(t *testing.T) {
	img := image.NewGray(image.Rect(5, 5, 7, 6))
	img.Set(5, 5, color.Black)
	img.Set(6, 5, color.White)

	b := FromImage(img)
	if b.Width() != 2 || b.Height() != 1 {
		t.Fatalf("Unexpected size %vx%v", b.Width(), b.Height())
	}
	if b.GetBit(0, 0) != 1 || b.GetBit(1, 0) != 0 {
		t.Errorf("Bits = %v %v, want 1 0", b.GetBit(0, 0), b.GetBit(1, 0))
	}
}
