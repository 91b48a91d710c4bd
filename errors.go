package hufftree

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncated is reported when a bit string ends in the middle of a
	// code, i.e. it does not decompose into whole codes.
	ErrTruncated = errors.New("bit string ends in the middle of a code")

	// ErrInvalidBit is reported when a bit string contains a character
	// other than '0' or '1'.
	ErrInvalidBit = errors.New("invalid bit")

	// ErrPlaceholder is reported when a bit string selects the placeholder
	// leaf of a single-symbol Tree.  The Encoder never produces such a
	// string.
	ErrPlaceholder = errors.New("bit string selects the placeholder leaf")
)

// MalformedInputError describes a bit string that Decode refused.
type MalformedInputError struct {
	// Offset is the index of the offending bit, or the length of the
	// input for ErrTruncated.
	Offset int

	// Decoded is the number of whole symbols decoded before the failure.
	Decoded int

	// Err is one of ErrTruncated, ErrInvalidBit or ErrPlaceholder.
	Err error
}

// Error fulfills the error interface.
func (err *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input at bit %d, after %d symbols: %v", err.Offset, err.Decoded, err.Err)
}

// Unwrap returns the underlying sentinel error.
func (err *MalformedInputError) Unwrap() error {
	return err.Err
}

var _ error = (*MalformedInputError)(nil)
