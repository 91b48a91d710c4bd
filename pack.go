package hufftree

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/icza/bitio"
)

// Pack packs a string of '0' and '1' characters into bytes, first bit in the
// most significant position of the first byte.  The last byte is padded
// with zero bits; the caller must remember len(bits) to undo the padding.
func Pack(bits string) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow((len(bits) + 7) / 8)

	w := bitio.NewWriter(&buf)
	for offset := 0; offset < len(bits); offset++ {
		var bit bool
		switch bits[offset] {
		case '0':
			bit = false
		case '1':
			bit = true
		default:
			return nil, fmt.Errorf("failed to pack bit %d: %w %q", offset, ErrInvalidBit, bits[offset])
		}
		if err := w.WriteBool(bit); err != nil {
			return nil, fmt.Errorf("failed to pack bit %d: %w", offset, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush packed bits: %w", err)
	}
	return buf.Bytes(), nil
}

// Unpack is the inverse of Pack: it reads the first n bits of data back
// into a string of '0' and '1' characters.
func Unpack(data []byte, n int) (string, error) {
	if n < 0 || n > len(data)*8 {
		return "", fmt.Errorf("cannot unpack %d bits from %d bytes", n, len(data))
	}

	var sb strings.Builder
	sb.Grow(n)

	r := bitio.NewReader(bytes.NewReader(data))
	for offset := 0; offset < n; offset++ {
		bit, err := r.ReadBool()
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		if err != nil {
			return "", fmt.Errorf("failed to unpack bit %d: %w", offset, err)
		}
		if bit {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String(), nil
}
