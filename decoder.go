package hufftree

// Decode walks the Tree one bit at a time, starting from the root: '0'
// moves to the left child and '1' to the right child.  Each time a leaf is
// reached its Symbol is emitted and the walk restarts from the root.
//
// The bit string must decompose into whole codes.  If it does not, or if it
// contains anything other than '0' and '1', or if it selects the placeholder
// leaf of a single-symbol Tree, Decode returns a *MalformedInputError and no
// Symbols at all.
//
func (t *Tree[S]) Decode(bits string) ([]S, error) {
	t.mustBeLive()

	out := make([]S, 0, len(bits)/2+1)
	cursor := t.root
	for offset := 0; offset < len(bits); offset++ {
		n := &t.nodes[cursor]
		switch bits[offset] {
		case '0':
			cursor = n.left
		case '1':
			cursor = n.right
		default:
			return nil, &MalformedInputError{Offset: offset, Decoded: len(out), Err: ErrInvalidBit}
		}

		n = &t.nodes[cursor]
		if !n.isLeaf() {
			continue
		}
		if n.placeholder {
			return nil, &MalformedInputError{Offset: offset, Decoded: len(out), Err: ErrPlaceholder}
		}
		out = append(out, n.symbol)
		cursor = t.root
	}

	if cursor != t.root {
		return nil, &MalformedInputError{Offset: len(bits), Decoded: len(out), Err: ErrTruncated}
	}
	return out, nil
}
