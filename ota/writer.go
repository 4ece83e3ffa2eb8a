package ota

import (
	"errors"
	"image"
	"image/color"
	"io"

	"github.com/bodgit/oplogo/bitmap"
)

// Bits returns the pixels of m as a row-major sequence, set meaning black.
// Images that aren't already two colors are converted first.
func Bits(m image.Image) bitmap.Bits {
	pm := bilevel(m)
	b := make(bitmap.Bits, 0, len(pm.Pix))
	for y := pm.Rect.Min.Y; y < pm.Rect.Max.Y; y++ {
		for x := pm.Rect.Min.X; x < pm.Rect.Max.X; x++ {
			b = append(b, pm.ColorIndexAt(x, y) == 1)
		}
	}
	return b
}

// Return m as an image using Palette
func bilevel(m image.Image) *image.Paletted {
	b := m.Bounds()

	cp, _ := m.ColorModel().(color.Palette)
	if cp == nil || len(cp) > len(Palette) {
		return Convert(m, b.Size())
	}

	pm := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), Palette)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if isInk(m.At(x, y)) {
				pm.SetColorIndex(x-b.Min.X, y-b.Min.Y, 1)
			}
		}
	}
	return pm
}

// Encode writes the Image m to w in OTA bitmap format.
func Encode(w io.Writer, m image.Image) error {
	b := m.Bounds()
	h := Header{Width: b.Dx(), Height: b.Dy(), Depth: depth}
	if err := h.validate(); err != nil {
		return errors.New("ota: image is wrong size")
	}

	p, err := bitmap.BitsToBytes(bitmap.Pad(Bits(m), 8))
	if err != nil {
		return err
	}

	if _, err := w.Write(h.Bytes()); err != nil {
		return err
	}
	if _, err := w.Write(p); err != nil {
		return err
	}

	return nil
}
