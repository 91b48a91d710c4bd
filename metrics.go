package hufftree

import (
	"fmt"
	"math"

	"github.com/chronos-tachyon/assert"
)

// BitsPerByte is the size of one unencoded Symbol when the alphabet is
// bytes.
const BitsPerByte = 8

// Metrics describes how well a CodeTable compresses an input.
type Metrics struct {
	// InputLen is the length of the input, in Symbols.
	InputLen uint64

	// EncodedLen is the length of the encoded bit string, in bits.
	EncodedLen uint64

	// Ratio is the unencoded size divided by the encoded size.
	Ratio float64

	// Degree is the percentage by which encoding shrank the input.
	Degree float64

	// AverageCodeLength is the mean number of bits spent per Symbol.
	AverageCodeLength float64

	// FixedCodeLength is the number of bits per Symbol that a fixed-length
	// code for the same alphabet would need.
	FixedCodeLength uint64

	// Entropy is the Shannon entropy of the input, in bits per Symbol.  No
	// prefix code can have an AverageCodeLength below it.
	Entropy float64
}

// ComputeMetrics derives the compression Metrics of an encoding.
// bitsPerSymbol is the size of one unencoded Symbol, e.g. BitsPerByte.
func ComputeMetrics[S Symbol](inputLen uint64, encodedLen uint64, bitsPerSymbol uint64, table CodeTable[S], freqs Frequencies[S]) Metrics {
	assert.Assertf(inputLen != 0, "inputLen must be positive")
	assert.Assertf(encodedLen != 0, "encodedLen must be positive")
	assert.Assertf(bitsPerSymbol != 0, "bitsPerSymbol must be positive")

	rawLen := float64(inputLen) * float64(bitsPerSymbol)
	n := float64(inputLen)

	var weighted float64
	var entropy float64
	for _, symbol := range table.Symbols() {
		hc := table.codes[symbol]
		freq := float64(freqs[symbol])
		weighted += freq * float64(hc.Size)
		if freq != 0 {
			p := freq / n
			entropy -= p * math.Log2(p)
		}
	}

	return Metrics{
		InputLen:          inputLen,
		EncodedLen:        encodedLen,
		Ratio:             rawLen / float64(encodedLen),
		Degree:            100 * (1 - float64(encodedLen)/rawLen),
		AverageCodeLength: weighted / n,
		FixedCodeLength:   log2ceil(uint64(table.Len())),
		Entropy:           entropy,
	}
}

// String returns a one-line summary of the Metrics.
func (m Metrics) String() string {
	return fmt.Sprintf("(ratio %.4f, degree %.2f%%, %.4f bits per symbol)", m.Ratio, m.Degree, m.AverageCodeLength)
}

var _ fmt.Stringer = Metrics{}
