/*
Package oplogo is a library for editing and converting Smart Messaging
operator logos.

An operator logo is a 72 by 14 monochrome bitmap bundled with the identifier
of the mobile network it is meant for. It has two textual forms: the 266
character hex form sent over the air, carrying the network identifier, an OTA
bitmap header and the bitmap; and a 168 character base64 form carrying just
the bitmap, which is convenient for sharing.
*/
package oplogo

import (
	"fmt"
	"strings"
)

// DefaultToken is the base64 form of a sample logo, used when there is
// nothing else to show.
const DefaultToken = "PAe8QPB/B5/4Hg88YPD/x5/4Hg88cPH/55/4Dx48ePHzx4PADx48fPPgh4PAB7w8fvPAB4PAB7w8f/" +
	"PAB4PAA7g8f/PAB4PAA/g8e/Pgh4PAAfA8efHzx4PAAfA8ePH/54PAAOA8eHD/x4PAAOA8eDB/B4PAAEAAABAAAAAA"

// ParseToken returns a logo for the default network from a share token, the
// base64 form optionally prefixed with '#' as found in a URL fragment.
func ParseToken(token string) (*Logo, error) {
	token = strings.TrimPrefix(token, "#")
	if len(token) != Base64Len {
		return nil, &FormatError{"token", fmt.Errorf("want %d characters, got %d", Base64Len, len(token))}
	}
	return FromBase64(token)
}
