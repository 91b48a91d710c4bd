package hufftree

import (
	mathbits "math/bits"
)

// log2ceil returns the number of bits needed to give each of x distinct
// values its own fixed-length code.  It never returns less than 1.
func log2ceil(x uint64) uint64 {
	if x <= 2 {
		return 1
	}
	return uint64(64 - mathbits.LeadingZeros64(x-1))
}
