package ota

import (
	"image"
	"image/color"

	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/draw"
)

const minContrast = 0x2000

// Luma of an opaque color, 0-0xffff, as color.GrayModel computes it
func luma(c color.Color) (uint32, bool) {
	r, g, b, a := c.RGBA()
	if a < 0x8000 {
		return 0, false
	}
	// Undo the alpha premultiplication
	r, g, b = r*0xffff/a, g*0xffff/a, b*0xffff/a
	return (19595*r + 38470*g + 7471*b + 1<<15) >> 16, true
}

// A color is ink if it is mostly opaque and darker than mid-gray
func isInk(c color.Color) bool {
	y, ok := luma(c)
	return ok && y < 0x8000
}

// Decide which entries of a quantized palette become black. With two colors
// far enough apart the darker one wins, otherwise each color stands on its
// own.
func inkIndices(p color.Palette) []bool {
	ink := make([]bool, len(p))
	if len(p) == 2 {
		y0, ok0 := luma(p[0])
		y1, ok1 := luma(p[1])
		if ok0 && ok1 && (y0 > y1+minContrast || y1 > y0+minContrast) {
			ink[0], ink[1] = y0 < y1, y1 < y0
			return ink
		}
	}
	for i, c := range p {
		ink[i] = isInk(c)
	}
	return ink
}

// Convert scales m to the given size and reduces it to the two colors of
// Palette.
func Convert(m image.Image, size image.Point) *image.Paletted {
	b := m.Bounds()
	r := image.Rectangle{Max: size}

	// Flatten onto white so transparent areas stay clear
	src := image.NewRGBA(r)
	draw.Draw(src, r, image.White, image.Point{}, draw.Src)
	if b.Size() == size {
		draw.Draw(src, r, m, b.Min, draw.Over)
	} else {
		draw.ApproxBiLinear.Scale(src, r, m, b, draw.Over, nil)
	}

	out := image.NewPaletted(r, Palette)

	q := quantize.MedianCutQuantizer{}
	p := q.Quantize(make(color.Palette, 0, len(Palette)), src)
	if len(p) == 0 {
		return out
	}

	tmp := image.NewPaletted(r, p)
	draw.Draw(tmp, r, src, image.Point{}, draw.Src)

	ink := inkIndices(p)
	for i, c := range tmp.Pix {
		if ink[c] {
			out.Pix[i] = 1
		}
	}

	return out
}
