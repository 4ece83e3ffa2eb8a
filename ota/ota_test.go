package ota

import (
	"bytes"
	"encoding/hex"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 72x14 "VINCIT" logo
const logoHex = "00480e01" +
	"3c07bc40f07f079ff81e0f3c60f0ffc79ff81e0f3c70f1ffe79ff80f1e3c78f1f3c783c00f1e3c7cf3e08783c007bc3c7ef3c00783c007bc3c7ff3c00783c003b83c7ff3c00783c003f83c7bf3e08783c001f03c79f1f3c783c001f03c78f1ffe783c000e03c7870ffc783c000e03c78307f0783c0004000001000000000"

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestParseHeader(t *testing.T) {
	h, err := ParseHeader([]byte{0x00, 0x48, 0x0e, 0x01})
	require.NoError(t, err)
	assert.Equal(t, LogoHeader, h)
	assert.Equal(t, 1008, h.Pixels())
	assert.Equal(t, 126, h.DataLen())
	assert.Equal(t, "00480e01", hex.EncodeToString(h.Bytes()))

	tables := []struct {
		name string
		in   []byte
	}{
		{"short", []byte{0x00, 0x48, 0x0e}},
		{"info field", []byte{0x10, 0x48, 0x0e, 0x01}},
		{"depth", []byte{0x00, 0x48, 0x0e, 0x02}},
		{"zero width", []byte{0x00, 0x00, 0x0e, 0x01}},
		{"zero height", []byte{0x00, 0x48, 0x00, 0x01}},
	}
	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			_, err := ParseHeader(table.in)
			var fe FormatError
			assert.ErrorAs(t, err, &fe)
		})
	}
}

func TestDecode(t *testing.T) {
	m, err := Decode(bytes.NewReader(mustHex(t, logoHex)))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 72, 14), m.Bounds())

	pm, ok := m.(*image.Paletted)
	require.True(t, ok)

	// First byte 0x3c: ..####..
	for x, want := range []uint8{0, 0, 1, 1, 1, 1, 0, 0} {
		assert.Equal(t, want, pm.ColorIndexAt(x, 0), x)
	}
	// Last row only has two pixels set
	assert.Equal(t, uint8(1), pm.ColorIndexAt(9, 13))
	assert.Equal(t, uint8(1), pm.ColorIndexAt(35, 13))
	assert.Equal(t, uint8(0), pm.ColorIndexAt(71, 13))
}

func TestDecodeConfig(t *testing.T) {
	c, err := DecodeConfig(bytes.NewReader([]byte{0x00, 0x10, 0x02, 0x01}))
	require.NoError(t, err)
	assert.Equal(t, 16, c.Width)
	assert.Equal(t, 2, c.Height)
	assert.Equal(t, Palette, c.ColorModel)
}

func TestDecodeErrors(t *testing.T) {
	b := mustHex(t, logoHex)

	_, err := Decode(bytes.NewReader(b[:2]))
	assert.Equal(t, errNotEnough, err)

	_, err = Decode(bytes.NewReader(b[:len(b)-1]))
	assert.Equal(t, errNotEnough, err)

	_, err = Decode(bytes.NewReader(append(b[:len(b):len(b)], 0x00)))
	assert.Equal(t, errTooMuch, err)
}

func TestEncodeRoundTrip(t *testing.T) {
	in := mustHex(t, logoHex)

	m, err := Decode(bytes.NewReader(in))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, Encode(&out, m))
	assert.Equal(t, in, out.Bytes())
}

func TestEncodePadding(t *testing.T) {
	// 3x3 is 9 pixels so 2 bytes with 7 bits of padding
	m := image.NewPaletted(image.Rect(0, 0, 3, 3), Palette)
	m.SetColorIndex(0, 0, 1)
	m.SetColorIndex(2, 2, 1)

	var out bytes.Buffer
	require.NoError(t, Encode(&out, m))
	assert.Equal(t, []byte{0x00, 0x03, 0x03, 0x01, 0x80, 0x80}, out.Bytes())

	d, err := Decode(bytes.NewReader(out.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, m.Pix, d.(*image.Paletted).Pix)
}

func TestEncodeWrongSize(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, Encode(&out, image.NewGray(image.Rect(0, 0, 256, 1))))
	assert.Error(t, Encode(&out, image.NewGray(image.Rect(0, 0, 0, 0))))
	assert.Zero(t, out.Len())
}

func TestConvert(t *testing.T) {
	// Black square on the left half of a white image, twice the target size
	m := image.NewRGBA(image.Rect(0, 0, 144, 28))
	for y := 0; y < 28; y++ {
		for x := 0; x < 144; x++ {
			c := color.RGBA{0xff, 0xff, 0xff, 0xff}
			if x < 72 {
				c = color.RGBA{0x10, 0x10, 0x10, 0xff}
			}
			m.Set(x, y, c)
		}
	}

	pm := Convert(m, image.Pt(72, 14))
	assert.Equal(t, image.Rect(0, 0, 72, 14), pm.Bounds())
	assert.Equal(t, uint8(1), pm.ColorIndexAt(0, 0))
	assert.Equal(t, uint8(1), pm.ColorIndexAt(30, 7))
	assert.Equal(t, uint8(0), pm.ColorIndexAt(50, 7))
	assert.Equal(t, uint8(0), pm.ColorIndexAt(71, 13))
}

func TestBitsGray(t *testing.T) {
	m := image.NewGray(image.Rect(0, 0, 8, 1))
	for x := 0; x < 8; x++ {
		m.SetGray(x, 0, color.Gray{0xff})
	}
	m.SetGray(3, 0, color.Gray{0x00})

	b := Bits(m)
	assert.Len(t, b, 8)
	for i, v := range b {
		assert.Equal(t, i == 3, v, i)
	}
}
