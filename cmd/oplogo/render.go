package main

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/bodgit/oplogo"
	"github.com/bodgit/oplogo/plmn"
)

const (
	inkRune   = '#'
	blankRune = '.'
)

func writeText(w io.Writer, l *oplogo.Logo) error {
	var sb strings.Builder
	for y := 0; y < oplogo.Height; y++ {
		for x := 0; x < oplogo.Width; x++ {
			v, err := l.Pixel(x, y)
			if err != nil {
				return err
			}
			if v {
				sb.WriteRune(inkRune)
			} else {
				sb.WriteRune(blankRune)
			}
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writePNG(file string, l *oplogo.Logo) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}

	if err := png.Encode(f, l.Raster()); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// parsePayload accepts either the hex form or a share token. Tokens carry no
// network so network is used instead.
func parsePayload(s string, network plmn.ID) (*oplogo.Logo, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")

	var l *oplogo.Logo
	var err error
	switch len(s) {
	case oplogo.HexLen:
		return oplogo.FromHex(s)
	case oplogo.Base64Len:
		l, err = oplogo.ParseToken(s)
	default:
		return nil, fmt.Errorf("payload is neither %d hex nor %d base64 characters", oplogo.HexLen, oplogo.Base64Len)
	}
	if err != nil {
		return nil, err
	}

	if err := l.SetNetwork(network); err != nil {
		return nil, err
	}
	return l, nil
}
