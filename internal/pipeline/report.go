package pipeline

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/hufftree"
	"github.com/dustin/go-humanize"
)

// Report holds everything a Run produced.
type Report struct {
	Input        []byte
	Encoded      string
	Decoded      []byte
	Table        hufftree.CodeTable[byte]
	Metrics      hufftree.Metrics
	Timings      []Stage
	InputDigest  uint64
	OutputDigest uint64

	// BaselineSize is the zstd-compressed size of Input in bytes, or -1
	// if it was not measured.
	BaselineSize int
}

// Stage returns the duration of the named stage, if it ran.
func (r *Report) Stage(name string) (Stage, bool) {
	for _, stage := range r.Timings {
		if stage.Name == name {
			return stage, true
		}
	}
	return Stage{}, false
}

// Packed returns the encoded bits packed into bytes.
func (r *Report) Packed() ([]byte, error) {
	return hufftree.Pack(r.Encoded)
}

// WriteTo writes the human-readable report.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Input text:\n%s\n\n", r.Input)
	fmt.Fprintf(&buf, "Encoded text:\n%s\n\n", r.Encoded)
	fmt.Fprintf(&buf, "Decoded text:\n%s\n\n", r.Decoded)

	buf.WriteString("Code table:\n")
	for _, symbol := range r.Table.Symbols() {
		hc, _ := r.Table.Lookup(symbol)
		fmt.Fprintf(&buf, "%q\t%s\n", symbol, hc.Path())
	}
	buf.WriteString("\n")

	m := r.Metrics
	fmt.Fprintf(&buf, "Compression ratio: %g\n", m.Ratio)
	fmt.Fprintf(&buf, "Compression degree: %g%%\n", m.Degree)
	fmt.Fprintf(&buf, "Average code length: %g bits per symbol\n", m.AverageCodeLength)
	fmt.Fprintf(&buf, "Fixed-length code: %d bits per symbol\n", m.FixedCodeLength)
	fmt.Fprintf(&buf, "Entropy: %g bits per symbol\n", m.Entropy)
	fmt.Fprintf(&buf, "Input size: %s\n", humanize.IBytes(m.InputLen))
	fmt.Fprintf(&buf, "Encoded size: %s (%d bits)\n", humanize.IBytes((m.EncodedLen+7)/8), m.EncodedLen)
	if r.BaselineSize >= 0 {
		fmt.Fprintf(&buf, "zstd size: %s\n", humanize.IBytes(uint64(r.BaselineSize)))
	}
	fmt.Fprintf(&buf, "Round trip digest: %016x\n", r.OutputDigest)

	for _, stage := range []string{"encode", "decode"} {
		if s, ok := r.Stage(stage); ok {
			fmt.Fprintf(&buf, "Time to %s: %d ns\n", stage, s.Duration.Nanoseconds())
		}
	}
	return buf.WriteTo(w)
}
