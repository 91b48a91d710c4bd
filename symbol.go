package hufftree

import (
	"cmp"
	"sort"
)

// Symbol is the constraint satisfied by the units of an alphabet.  Symbols
// must be ordered so that ties between equal weights can be broken the same
// way on every build.
type Symbol interface {
	cmp.Ordered
}

// Frequencies maps each distinct Symbol of an input to its number of
// occurrences.  Every entry is positive.
type Frequencies[S Symbol] map[S]uint64

// Count scans input and returns the number of occurrences of each distinct
// Symbol.
func Count[S Symbol](input []S) Frequencies[S] {
	freqs := make(Frequencies[S])
	for _, symbol := range input {
		freqs[symbol]++
	}
	return freqs
}

// Total returns the sum of all frequencies, i.e. the length of the input
// that was counted.
func (freqs Frequencies[S]) Total() uint64 {
	var total uint64
	for _, freq := range freqs {
		total += freq
	}
	return total
}

// Symbols returns the distinct Symbols in ascending order.
func (freqs Frequencies[S]) Symbols() []S {
	out := make([]S, 0, len(freqs))
	for symbol := range freqs {
		out = append(out, symbol)
	}
	sortSymbols(out)
	return out
}

func sortSymbols[S Symbol](list []S) {
	sort.Slice(list, func(i, j int) bool {
		return cmp.Less(list[i], list[j])
	})
}
