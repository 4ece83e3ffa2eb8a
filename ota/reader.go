package ota

import (
	"errors"
	"image"
	"io"

	"github.com/bodgit/oplogo/bitmap"
)

var (
	errNotEnough = errors.New("ota: not enough image data")
	errTooMuch   = errors.New("ota: too much image data")
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	r io.Reader

	header Header
	image  *image.Paletted

	tmp [HeaderLen]byte
}

func (d *decoder) readHeader() error {
	if err := readFull(d.r, d.tmp[:]); err != nil {
		return err
	}

	h, err := ParseHeader(d.tmp[:])
	if err != nil {
		return err
	}
	d.header = h
	return nil
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	d.r = r

	if err := d.readHeader(); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return errNotEnough
	}

	if configOnly {
		return nil
	}

	data := make([]byte, d.header.DataLen())
	if err := readFull(d.r, data); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return errNotEnough
	}

	if n, err := r.Read(d.tmp[:1]); n != 0 || (err != io.EOF && err != io.ErrUnexpectedEOF) {
		if err != nil {
			return err
		}
		return errTooMuch
	}

	d.image = image.NewPaletted(image.Rect(0, 0, d.header.Width, d.header.Height), Palette)

	// Trailing padding bits are ignored
	for i, set := range bitmap.BytesToBits(data)[:d.header.Pixels()] {
		if set {
			d.image.Pix[i] = 1
		}
	}

	return nil
}

// Decode reads an OTA bitmap from r and returns it as an image.Image.
func Decode(r io.Reader) (image.Image, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return d.image, nil
}

// DecodeConfig returns the color model and dimensions of an OTA bitmap
// without decoding the entire bitmap.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: Palette,
		Width:      d.header.Width,
		Height:     d.header.Height,
	}, nil
}
