/*
Package bitmap converts a flat, row-major sequence of 1-bit pixels to and
from its two packed representations: hex characters carrying four pixels
each and bytes carrying eight pixels each. In both cases the first pixel is
stored in the most significant bit.
*/
package bitmap

import "fmt"

const (
	bitsPerNibble = 4
	bitsPerByte   = 8
	hexDigits     = "0123456789abcdef"
)

// A FormatError reports that the input could not be transcoded.
type FormatError string

func (e FormatError) Error() string { return "bitmap: invalid format: " + string(e) }

// Bits is a sequence of pixels, true meaning set.
type Bits []bool

// Size describes the dimensions of a bitmap in pixels.
type Size struct {
	Width  int
	Height int
}

// Len returns the number of pixels in a bitmap of this size.
func (s Size) Len() int {
	return s.Width * s.Height
}

// Index returns the offset of the pixel at (x, y) and whether it lies
// within the bitmap.
func (s Size) Index(x, y int) (int, bool) {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height {
		return 0, false
	}
	return y*s.Width + x, true
}

// Check returns an error unless b holds exactly one bitmap of this size.
func (s Size) Check(b Bits) error {
	if len(b) != s.Len() {
		return FormatError(fmt.Sprintf("want %d pixels for %dx%d, got %d", s.Len(), s.Width, s.Height, len(b)))
	}
	return nil
}

func nibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// HexToBits expands each hex character of s into four pixels.
func HexToBits(s string) (Bits, error) {
	b := make(Bits, 0, len(s)*bitsPerNibble)
	for i := 0; i < len(s); i++ {
		n, ok := nibble(s[i])
		if !ok {
			return nil, FormatError(fmt.Sprintf("invalid hex character %q at offset %d", s[i], i))
		}
		b = append(b, n&8 != 0, n&4 != 0, n&2 != 0, n&1 != 0)
	}
	return b, nil
}

// BitsToHex packs each group of four pixels into one lower case hex
// character.
func BitsToHex(b Bits) (string, error) {
	if len(b)%bitsPerNibble != 0 {
		return "", FormatError(fmt.Sprintf("%d pixels is not a multiple of %d", len(b), bitsPerNibble))
	}

	s := make([]byte, len(b)/bitsPerNibble)
	for i := range s {
		s[i] = hexDigits[pack(b[i*bitsPerNibble:(i+1)*bitsPerNibble])]
	}
	return string(s), nil
}

// BytesToBits expands each byte of p into eight pixels.
func BytesToBits(p []byte) Bits {
	b := make(Bits, 0, len(p)*bitsPerByte)
	for _, c := range p {
		for shift := bitsPerByte - 1; shift >= 0; shift-- {
			b = append(b, c>>uint(shift)&1 != 0)
		}
	}
	return b
}

// BitsToBytes packs each group of eight pixels into one byte.
func BitsToBytes(b Bits) ([]byte, error) {
	if len(b)%bitsPerByte != 0 {
		return nil, FormatError(fmt.Sprintf("%d pixels is not a multiple of %d", len(b), bitsPerByte))
	}

	p := make([]byte, len(b)/bitsPerByte)
	for i := range p {
		p[i] = pack(b[i*bitsPerByte : (i+1)*bitsPerByte])
	}
	return p, nil
}

// Pad returns b extended with clear pixels up to a multiple of n.
func Pad(b Bits, n int) Bits {
	if mod := len(b) % n; mod > 0 {
		return append(b[:len(b):len(b)], make(Bits, n-mod)...)
	}
	return b
}

// Most significant bit first
func pack(b Bits) (n byte) {
	for _, v := range b {
		n <<= 1
		if v {
			n |= 1
		}
	}
	return
}
