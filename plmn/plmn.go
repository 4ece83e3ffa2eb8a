/*
Package plmn implements the encoding of a mobile network identifier as used
by Smart Messaging operator logos.

The identifier is a pair of a three digit Mobile Country Code (MCC) and a two
digit Mobile Network Code (MNC), encoded as three little-endian BCD octets
with a filler nibble, written as six hex characters. For example MCC 123 and
MNC 45 are encoded as:

	21 f3 54

The filler nibble, conventionally 'f', is ignored when decoding and always
written as 'f' when encoding.
*/
package plmn

import "fmt"

const (
	// EncodedLen is the length of an encoded identifier in hex characters.
	EncodedLen = 6

	// MaxMCC and MaxMNC are the largest values that can be encoded.
	MaxMCC = 999
	MaxMNC = 99

	filler = 'f'
)

// A FormatError reports that the input is not a valid encoded identifier.
type FormatError string

func (e FormatError) Error() string { return "plmn: invalid format: " + string(e) }

// ID is a mobile network identifier.
type ID struct {
	MCC int
	MNC int
}

// Valid reports whether both codes are within their encodable ranges.
func (id ID) Valid() bool {
	return id.MCC >= 0 && id.MCC <= MaxMCC && id.MNC >= 0 && id.MNC <= MaxMNC
}

func (id ID) String() string {
	return fmt.Sprintf("%03d-%02d", id.MCC, id.MNC)
}

func hexValue(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	}
	return 0, false
}

// digits returns the decimal value of the given positions of s, most
// significant first.
func digits(s string, pos ...int) (int, error) {
	n := 0
	for _, i := range pos {
		v, _ := hexValue(s[i])
		if v > 9 {
			return 0, FormatError(fmt.Sprintf("non-decimal digit %q at offset %d", s[i], i))
		}
		n = n*10 + v
	}
	return n, nil
}

// Decode parses the six hex character form of an identifier. The filler
// nibble is not validated beyond being a hex digit.
func Decode(s string) (ID, error) {
	if len(s) != EncodedLen {
		return ID{}, FormatError(fmt.Sprintf("want %d characters, got %d", EncodedLen, len(s)))
	}

	for i := 0; i < len(s); i++ {
		if _, ok := hexValue(s[i]); !ok {
			return ID{}, FormatError(fmt.Sprintf("invalid hex character %q at offset %d", s[i], i))
		}
	}

	mcc, err := digits(s, 1, 0, 3)
	if err != nil {
		return ID{}, err
	}

	mnc, err := digits(s, 5, 4)
	if err != nil {
		return ID{}, err
	}

	return ID{MCC: mcc, MNC: mnc}, nil
}

// Encode returns the six hex character form of id.
func Encode(id ID) (string, error) {
	if !id.Valid() {
		return "", FormatError(fmt.Sprintf("identifier %d-%d out of range", id.MCC, id.MNC))
	}

	m := fmt.Sprintf("%03d", id.MCC)
	n := fmt.Sprintf("%02d", id.MNC)

	return string([]byte{m[1], m[0], filler, m[2], n[1], n[0]}), nil
}
