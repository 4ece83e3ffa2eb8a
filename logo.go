package oplogo

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"image"

	"github.com/bodgit/oplogo/bitmap"
	"github.com/bodgit/oplogo/ota"
	"github.com/bodgit/oplogo/plmn"
	"github.com/bodgit/oplogo/pubsub"
)

const (
	// Width and Height are the fixed dimensions of an operator logo.
	Width  = 72
	Height = 14

	// DefaultMCC and DefaultMNC identify Elisa, Finland.
	DefaultMCC = 244
	DefaultMNC = 5

	// HexLen is the length of the hex form of a logo.
	HexLen = headerEnd + Width*Height/4

	// Base64Len is the length of the base64 form of a logo.
	Base64Len = (Width*Height/8 + 2) / 3 * 4

	networkEnd = plmn.EncodedLen
	headerEnd  = networkEnd + ota.HeaderLen*2
)

// Event kinds published by a Logo.
const (
	KindBitmap  = "bitmap"
	KindPixel   = "pixel"
	KindNetwork = "network"
)

var (
	size      = bitmap.Size{Width: Width, Height: Height}
	headerHex = hex.EncodeToString(ota.LogoHeader.Bytes())
)

// Patch describes a single changed pixel. It is the payload of KindPixel
// events.
type Patch struct {
	X, Y  int
	Value bool
}

// Image returns the pixel as a 1x1 image for drawing at (X, Y).
func (p Patch) Image() *image.RGBA {
	m := image.NewRGBA(image.Rect(0, 0, 1, 1))
	if p.Value {
		m.Pix[3] = 0xff
	}
	return m
}

// Logo is an operator logo: a network identifier and a 72x14 monochrome
// bitmap. Every change is announced to the logo's subscribers.
//
// The zero value is a blank logo for the default network, the same as New
// returns. A Logo is not safe for concurrent use. Subscribers may read the logo but
// any mutating call made from within a subscriber fails with ErrReentrant.
type Logo struct {
	network plmn.ID
	bits    bitmap.Bits
	changes pubsub.Publisher
}

// New returns a blank logo for the default network.
func New() *Logo {
	return &Logo{
		network: plmn.ID{MCC: DefaultMCC, MNC: DefaultMNC},
		bits:    make(bitmap.Bits, size.Len()),
	}
}

// FromHex returns a logo decoded from its hex form.
func FromHex(s string) (*Logo, error) {
	l := New()
	if err := l.DecodeHex(s); err != nil {
		return nil, err
	}
	return l, nil
}

// FromBase64 returns a logo for the default network with the bitmap decoded
// from its base64 form.
func FromBase64(s string) (*Logo, error) {
	l := New()
	if err := l.DecodeBase64(s); err != nil {
		return nil, err
	}
	return l, nil
}

// Subscribe registers fn to be called on every change, optionally only for
// the given kind. Subscribers receive a nil event when everything changed,
// whatever their filter.
func (l *Logo) Subscribe(fn pubsub.Subscriber, kind ...string) *pubsub.Subscription {
	return l.changes.Subscribe(fn, kind...)
}

// lazyInit gives a zero value Logo its default network and a blank bitmap.
func (l *Logo) lazyInit() {
	if l.bits == nil {
		l.network = plmn.ID{MCC: DefaultMCC, MNC: DefaultMNC}
		l.bits = make(bitmap.Bits, size.Len())
	}
}

func (l *Logo) guard() error {
	if l.changes.Dispatching() {
		return ErrReentrant
	}
	return nil
}

// MCC returns the mobile country code.
func (l *Logo) MCC() int {
	return l.Network().MCC
}

// MNC returns the mobile network code.
func (l *Logo) MNC() int {
	return l.Network().MNC
}

// Network returns the network identifier.
func (l *Logo) Network() plmn.ID {
	l.lazyInit()
	return l.network
}

// SetNetwork changes the network identifier.
func (l *Logo) SetNetwork(id plmn.ID) error {
	if err := l.guard(); err != nil {
		return err
	}
	l.lazyInit()
	if !id.Valid() {
		return fmt.Errorf("oplogo: network %d-%d out of range", id.MCC, id.MNC)
	}
	if id == l.network {
		return nil
	}
	l.network = id
	return l.changes.Publish(pubsub.NewEvent(KindNetwork, id))
}

// Bits returns a copy of the bitmap.
func (l *Logo) Bits() bitmap.Bits {
	l.lazyInit()
	return append(bitmap.Bits(nil), l.bits...)
}

// Equal reports whether both logos have the same network and bitmap. A nil
// logo equals nothing.
func (l *Logo) Equal(o *Logo) bool {
	if o == nil {
		return false
	}
	l.lazyInit()
	o.lazyInit()
	if l.network != o.network || len(l.bits) != len(o.bits) {
		return false
	}
	for i := range l.bits {
		if l.bits[i] != o.bits[i] {
			return false
		}
	}
	return true
}

// Clear clears every pixel.
func (l *Logo) Clear() error {
	if err := l.guard(); err != nil {
		return err
	}
	l.lazyInit()
	l.bits = make(bitmap.Bits, size.Len())
	return l.changes.Publish(nil)
}

// Commit tells bitmap subscribers that a series of pixel changes, such as
// a drawing stroke, is complete.
func (l *Logo) Commit() error {
	return l.changes.Publish(pubsub.NewEvent(KindBitmap, nil))
}

// Pixel returns the pixel at (x, y).
func (l *Logo) Pixel(x, y int) (bool, error) {
	l.lazyInit()
	i, ok := size.Index(x, y)
	if !ok {
		return false, &RangeError{x, y}
	}
	return l.bits[i], nil
}

// SetPixel sets the pixel at (x, y) and returns the resulting patch. If the
// pixel already has the value nothing is published and the patch is nil.
func (l *Logo) SetPixel(x, y int, value bool) (*Patch, error) {
	if err := l.guard(); err != nil {
		return nil, err
	}
	l.lazyInit()
	i, ok := size.Index(x, y)
	if !ok {
		return nil, &RangeError{x, y}
	}
	if l.bits[i] == value {
		return nil, nil
	}
	l.bits[i] = value

	p := Patch{X: x, Y: y, Value: value}
	if err := l.changes.Publish(pubsub.NewEvent(KindPixel, p)); err != nil {
		return nil, err
	}
	return &p, nil
}

// SetImage replaces the bitmap with m, scaled and reduced to two colors if
// necessary.
func (l *Logo) SetImage(m image.Image) error {
	if err := l.guard(); err != nil {
		return err
	}
	l.lazyInit()
	if pt := image.Pt(Width, Height); m.Bounds().Size() != pt {
		m = ota.Convert(m, pt)
	}
	l.bits = ota.Bits(m)
	return l.changes.Publish(nil)
}

// DecodeHex replaces the network and bitmap with those decoded from s. The
// logo is unchanged if s is invalid.
func (l *Logo) DecodeHex(s string) error {
	if err := l.guard(); err != nil {
		return err
	}
	l.lazyInit()
	if len(s) != HexLen {
		return &FormatError{"hex", fmt.Errorf("want %d characters, got %d", HexLen, len(s))}
	}

	id, err := plmn.Decode(s[:networkEnd])
	if err != nil {
		return &FormatError{"hex", err}
	}

	b, err := hex.DecodeString(s[networkEnd:headerEnd])
	if err != nil {
		return &FormatError{"hex", err}
	}
	h, err := ota.ParseHeader(b)
	if err != nil {
		return &FormatError{"hex", err}
	}
	if h != ota.LogoHeader {
		return &FormatError{"hex", fmt.Errorf("unsupported bitmap %dx%d", h.Width, h.Height)}
	}

	bits, err := bitmap.HexToBits(s[headerEnd:])
	if err != nil {
		return &FormatError{"hex", err}
	}

	l.network, l.bits = id, bits
	return l.changes.Publish(nil)
}

// EncodeHex returns the hex form of the logo.
func (l *Logo) EncodeHex() string {
	l.lazyInit()
	// Neither can fail as the setters keep the logo valid
	network, _ := plmn.Encode(l.network)
	data, _ := bitmap.BitsToHex(l.bits)
	return network + headerHex + data
}

// DecodeBase64 replaces the bitmap with the one decoded from s. The network
// is left untouched. The logo is unchanged if s is invalid.
func (l *Logo) DecodeBase64(s string) error {
	if err := l.guard(); err != nil {
		return err
	}
	l.lazyInit()

	// The decoder skips line breaks
	if len(s) != Base64Len {
		return &FormatError{"base64", fmt.Errorf("want %d characters, got %d", Base64Len, len(s))}
	}

	p, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return &FormatError{"base64", err}
	}

	bits := bitmap.BytesToBits(p)
	if err := size.Check(bits); err != nil {
		return &FormatError{"base64", err}
	}

	l.bits = bits
	return l.changes.Publish(nil)
}

// EncodeBase64 returns the base64 form of the bitmap.
func (l *Logo) EncodeBase64() string {
	l.lazyInit()
	p, _ := bitmap.BitsToBytes(l.bits)
	return base64.StdEncoding.EncodeToString(p)
}

// MarshalText implements encoding.TextMarshaler using the hex form.
func (l *Logo) MarshalText() ([]byte, error) {
	return []byte(l.EncodeHex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using the hex form.
func (l *Logo) UnmarshalText(text []byte) error {
	return l.DecodeHex(string(text))
}

// Token returns the share token of the logo, suitable for a URL fragment.
func (l *Logo) Token() string {
	return "#" + l.EncodeBase64()
}
