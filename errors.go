package oplogo

import (
	"errors"
	"fmt"

	"github.com/bodgit/oplogo/pubsub"
)

var (
	// ErrReentrant is returned by mutating methods called from a
	// subscriber while the logo is notifying its subscribers.
	ErrReentrant = pubsub.ErrReentrant

	// ErrNotFound is returned when a named logo does not exist.
	ErrNotFound = errors.New("oplogo: logo not found")
)

// FormatError reports a payload that could not be decoded.
type FormatError struct {
	Format string
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("oplogo: invalid %s payload: %v", e.Format, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// RangeError reports pixel coordinates outside of the logo.
type RangeError struct {
	X, Y int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("oplogo: pixel (%d, %d) outside of %dx%d", e.X, e.Y, Width, Height)
}
