package oplogo

import (
	"image"
	"image/color"

	"github.com/bodgit/oplogo/ota"
)

// Make sure a Logo can be handed straight to image encoders, including
// ota.Encode which then encodes it without any conversion.
var _ image.PalettedImage = &Logo{}

// ColorModel implements image.Image.
func (l *Logo) ColorModel() color.Model {
	return ota.Palette
}

// Bounds implements image.Image.
func (l *Logo) Bounds() image.Rectangle {
	return image.Rect(0, 0, Width, Height)
}

// At implements image.Image.
func (l *Logo) At(x, y int) color.Color {
	return ota.Palette[l.ColorIndexAt(x, y)]
}

// ColorIndexAt implements image.PalettedImage.
func (l *Logo) ColorIndexAt(x, y int) uint8 {
	if v, err := l.Pixel(x, y); err == nil && v {
		return 1
	}
	return 0
}

// Raster returns the logo as an RGBA image. Set pixels are opaque black and
// clear pixels are transparent black.
func (l *Logo) Raster() *image.RGBA {
	m := image.NewRGBA(l.Bounds())
	l.lazyInit()
	for i, v := range l.bits {
		if v {
			m.Pix[4*i+3] = 0xff
		}
	}
	return m
}
