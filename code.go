package hufftree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chronos-tachyon/assert"
)

// maxBitsPerCode is the longest path a Tree may contain.  Reaching depth 64
// with positive weights needs an input of at least Fib(66) symbols, which is
// far beyond anything that fits in memory.
const maxBitsPerCode = 64

// Code represents a root-to-leaf path in a Tree as a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The least significant bit
	// of Bits is the first bit, i.e. the step taken from the root.
	Bits uint64
}

// MakeCode is a convenience function that constructs a Code.
func MakeCode(size byte, bits uint64) Code {
	return Code{Size: size, Bits: bits}
}

// ParseCode constructs a Code from a string of '0' and '1' characters, with
// the first character being the first bit.
func ParseCode(path string) (Code, error) {
	if len(path) > maxBitsPerCode {
		return Code{}, fmt.Errorf("code %q is too long: got %d bits, max %d", path, len(path), maxBitsPerCode)
	}
	var hc Code
	for index := 0; index < len(path); index++ {
		switch path[index] {
		case '0':
			hc = hc.Append(0)
		case '1':
			hc = hc.Append(1)
		default:
			return Code{}, fmt.Errorf("code %q: %w at index %d", path, ErrInvalidBit, index)
		}
	}
	return hc, nil
}

// Append returns the Code extended by one more bit.
func (hc Code) Append(bit uint) Code {
	assert.Assertf(hc.Size < maxBitsPerCode, "code size %d would exceed %d bits", hc.Size, maxBitsPerCode)
	assert.Assertf(bit <= 1, "bit %d is not 0 or 1", bit)
	hc.Bits |= uint64(bit) << hc.Size
	hc.Size++
	return hc
}

// Bit returns the index'th bit of the Code.
func (hc Code) Bit(index byte) uint {
	return uint(hc.Bits>>index) & 1
}

// HasPrefix returns true iff prefix is a (possibly equal) prefix of hc.
func (hc Code) HasPrefix(prefix Code) bool {
	if prefix.Size > hc.Size {
		return false
	}
	if prefix.Size == 0 {
		return true
	}
	mask := ^uint64(0) >> (maxBitsPerCode - prefix.Size)
	return hc.Bits&mask == prefix.Bits
}

// Path returns the bits of the Code as a string of '0' and '1' characters,
// first bit first.
func (hc Code) Path() string {
	var sb strings.Builder
	sb.Grow(int(hc.Size))
	hc.appendPath(&sb)
	return sb.String()
}

func (hc Code) appendPath(sb *strings.Builder) {
	for index := byte(0); index < hc.Size; index++ {
		sb.WriteByte('0' + byte(hc.Bit(index)))
	}
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	return strconv.Quote(hc.Path())
}

var _ fmt.Stringer = Code{}
