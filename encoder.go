package hufftree

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/chronos-tachyon/assert"
)

// CodeTable maps each real Symbol of a Tree to the Code of its leaf.
type CodeTable[S Symbol] struct {
	codes       map[S]Code
	placeholder Code
	minSize     byte
	maxSize     byte
}

// CodeTable walks the Tree depth-first, appending a 0 bit for every left
// step and a 1 bit for every right step, and records the path to every
// leaf.
func (t *Tree[S]) CodeTable() CodeTable[S] {
	t.mustBeLive()

	table := CodeTable[S]{codes: make(map[S]Code, t.numLeaves)}
	var hasMinMax bool
	t.walk(func(n *node[S], hc Code) {
		if n.placeholder {
			table.placeholder = hc
			return
		}
		table.codes[n.symbol] = hc
		if !hasMinMax {
			hasMinMax = true
			table.minSize = hc.Size
			table.maxSize = hc.Size
		} else if table.minSize > hc.Size {
			table.minSize = hc.Size
		} else if table.maxSize < hc.Size {
			table.maxSize = hc.Size
		}
	})
	return table
}

// PlaceholderCode returns the Code of the placeholder leaf of a
// single-symbol Tree.  ok is false if the Tree has no placeholder.
func (t *Tree[S]) PlaceholderCode() (hc Code, ok bool) {
	table := t.CodeTable()
	return table.placeholder, table.placeholder.Size != 0
}

// Len returns the number of Symbols in the table.
func (table CodeTable[S]) Len() int {
	return len(table.codes)
}

// Lookup returns the Code for a Symbol.
func (table CodeTable[S]) Lookup(symbol S) (hc Code, found bool) {
	hc, found = table.codes[symbol]
	return
}

// Symbols returns the Symbols of the table in ascending order.
func (table CodeTable[S]) Symbols() []S {
	out := make([]S, 0, len(table.codes))
	for symbol := range table.codes {
		out = append(out, symbol)
	}
	sortSymbols(out)
	return out
}

// MinSize is the bit length of the shortest code.
func (table CodeTable[S]) MinSize() byte {
	return table.minSize
}

// MaxSize is the bit length of the longest code.
func (table CodeTable[S]) MaxSize() byte {
	return table.maxSize
}

// IsPrefixFree returns true iff no Code in the table is a prefix of another.
func (table CodeTable[S]) IsPrefixFree() bool {
	symbols := table.Symbols()
	for i, a := range symbols {
		for _, b := range symbols[i+1:] {
			ca, cb := table.codes[a], table.codes[b]
			if ca.HasPrefix(cb) || cb.HasPrefix(ca) {
				return false
			}
		}
	}
	return true
}

// EncodedLen returns the length, in bits, of the encoding of any input with
// the given frequencies.
func (table CodeTable[S]) EncodedLen(freqs Frequencies[S]) uint64 {
	var total uint64
	for symbol, freq := range freqs {
		hc := table.mustLookup(symbol)
		total += freq * uint64(hc.Size)
	}
	return total
}

// Encode concatenates the Codes of the input's Symbols, in order, as a
// string of '0' and '1' characters.  Every Symbol of the input must be
// present in the table.
func (table CodeTable[S]) Encode(input []S) string {
	var sb strings.Builder
	sb.Grow(len(input) * int(table.maxSize))
	for _, symbol := range input {
		hc := table.mustLookup(symbol)
		hc.appendPath(&sb)
	}
	return sb.String()
}

func (table CodeTable[S]) mustLookup(symbol S) Code {
	hc, found := table.codes[symbol]
	assert.Assertf(found, "symbol %v is not in the code table", symbol)
	return hc
}

// Dump writes a programmer-readable debugging dump of the CodeTable to the
// given writer.
func (table CodeTable[S]) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", table.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", table.maxSize)
	for _, symbol := range table.Symbols() {
		fmt.Fprintf(&buf, "\tEncode(%v) = %s\n", symbol, table.codes[symbol])
	}
	if table.placeholder.Size != 0 {
		fmt.Fprintf(&buf, "\tPlaceholder() = %s\n", table.placeholder)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
