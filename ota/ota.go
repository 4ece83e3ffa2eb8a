/*
Package ota implements a Smart Messaging OTA bitmap decoder and encoder.

An OTA bitmap starts with a four byte header: an info field which must be
zero, the width and height in pixels and the color depth which must be one.
The pixels follow, one bit per pixel in row-major order, most significant bit
first, padded with zero bits to a whole number of bytes. A set bit is a black
pixel, a clear bit is transparent.

Operator logos are always 72 by 14 pixels so the encoded form is 130 bytes,
four of header followed by 126 of pixel data.
*/
package ota

import (
	"fmt"
	"image/color"
)

const (
	// HeaderLen is the size of the header in bytes.
	HeaderLen = 4

	maxDimension = 0xff
	infoField    = 0x00
	depth        = 1
)

// Palette is the color model of decoded images. Index 0 is transparent and
// index 1 is black.
var Palette = color.Palette{
	color.RGBA{0x00, 0x00, 0x00, 0x00},
	color.RGBA{0x00, 0x00, 0x00, 0xff},
}

// LogoHeader is the header of an operator logo.
var LogoHeader = Header{Width: 72, Height: 14, Depth: depth}

// A FormatError reports that the input is not a valid OTA bitmap.
type FormatError string

func (e FormatError) Error() string { return "ota: invalid format: " + string(e) }

// Header describes an OTA bitmap.
type Header struct {
	Width  int
	Height int
	Depth  int
}

// ParseHeader decodes the first HeaderLen bytes of b.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderLen {
		return Header{}, FormatError("short header")
	}
	if b[0] != infoField {
		return Header{}, FormatError(fmt.Sprintf("unsupported info field %#02x", b[0]))
	}

	h := Header{
		Width:  int(b[1]),
		Height: int(b[2]),
		Depth:  int(b[3]),
	}
	if err := h.validate(); err != nil {
		return Header{}, err
	}
	return h, nil
}

func (h Header) validate() error {
	switch {
	case h.Depth != depth:
		return FormatError(fmt.Sprintf("unsupported depth %d", h.Depth))
	case h.Width < 1 || h.Width > maxDimension, h.Height < 1 || h.Height > maxDimension:
		return FormatError(fmt.Sprintf("unsupported size %dx%d", h.Width, h.Height))
	}
	return nil
}

// Bytes returns the encoded header.
func (h Header) Bytes() []byte {
	return []byte{infoField, byte(h.Width), byte(h.Height), byte(h.Depth)}
}

// Pixels returns the number of pixels in the bitmap.
func (h Header) Pixels() int {
	return h.Width * h.Height
}

// DataLen returns the size of the pixel data in bytes.
func (h Header) DataLen() int {
	return (h.Pixels() + 7) >> 3
}
