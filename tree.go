package hufftree

import (
	"bytes"
	"container/heap"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// nodeIndex addresses a node within Tree.nodes.
type nodeIndex int32

const noNode = nodeIndex(-1)

type node[S Symbol] struct {
	symbol      S
	weight      uint64
	left        nodeIndex
	right       nodeIndex
	placeholder bool
}

func (n *node[S]) isLeaf() bool {
	return n.left == noNode
}

// Tree is a Huffman code tree.  Leaves hold the Symbols of the alphabet and
// their frequencies; every internal node has exactly two children and a
// weight equal to the sum of its children's weights.
//
// Nodes live in a single arena and refer to their children by index.  Each
// node except the root has exactly one parent.
//
// A Tree is read-only once built.  Release discards it; every method except
// Released panics afterward.
type Tree[S Symbol] struct {
	nodes     []node[S]
	root      nodeIndex
	numLeaves int
}

// BuildTree constructs the Huffman code tree for the given frequencies,
// which must not be empty.
//
// The two lightest nodes are merged repeatedly, the first one popped
// becoming the left child, until a single root remains.  Ties between equal
// weights are broken by creation order: leaves are created in ascending
// Symbol order, and each merged node is created after every node that
// precedes it.  The result does not depend on map iteration order.
//
// A single distinct Symbol gets a synthetic root with the real leaf on the
// left and a zero-weight placeholder leaf on the right, so that the Symbol
// is assigned the 1-bit code "0".
//
func BuildTree[S Symbol](freqs Frequencies[S]) *Tree[S] {
	assert.Assertf(len(freqs) != 0, "cannot build a code tree from empty frequencies")

	symbols := freqs.Symbols()
	numLeaves := len(symbols)
	t := &Tree[S]{
		nodes:     make([]node[S], 0, 2*numLeaves+1),
		root:      noNode,
		numLeaves: numLeaves,
	}

	// Step 1: one leaf per symbol, seeded into a minheap.

	h := weightHeap{make([]weightAndIndex, 0, numLeaves)}
	for _, symbol := range symbols {
		freq := freqs[symbol]
		assert.Assertf(freq != 0, "symbol %v has a frequency of 0", symbol)
		index := t.push(node[S]{symbol: symbol, weight: freq, left: noNode, right: noNode})
		h.list = append(h.list, weightAndIndex{freq, index})
	}

	// Step 2: a lone leaf cannot be merged with anything, so pair it with
	// a placeholder.

	if numLeaves == 1 {
		leaf := h.list[0].index
		placeholder := t.push(node[S]{left: noNode, right: noNode, placeholder: true})
		t.root = t.push(node[S]{weight: t.nodes[leaf].weight, left: leaf, right: placeholder})
		return t
	}

	// Step 3: pop two, merge, push one, until one is left.

	h.Init()
	for h.Len() > 1 {
		a := heap.Pop(&h).(weightAndIndex)
		b := heap.Pop(&h).(weightAndIndex)

		sum := a.weight + b.weight
		assert.Assertf(sum >= a.weight, "weight overflow merging %d and %d", a.weight, b.weight)

		index := t.push(node[S]{weight: sum, left: a.index, right: b.index})
		heap.Push(&h, weightAndIndex{sum, index})
	}
	t.root = heap.Pop(&h).(weightAndIndex).index
	return t
}

func (t *Tree[S]) push(n node[S]) nodeIndex {
	index := nodeIndex(len(t.nodes))
	t.nodes = append(t.nodes, n)
	return index
}

func (t *Tree[S]) mustBeLive() {
	assert.Assertf(t.nodes != nil, "use of a released code tree")
}

// Weight returns the weight of the root, which equals the length of the
// input the Tree was built for.
func (t *Tree[S]) Weight() uint64 {
	t.mustBeLive()
	return t.nodes[t.root].weight
}

// NumSymbols returns the number of real (non-placeholder) leaves.
func (t *Tree[S]) NumSymbols() int {
	t.mustBeLive()
	return t.numLeaves
}

// NumNodes returns the number of nodes, leaves and placeholder included.
func (t *Tree[S]) NumNodes() int {
	t.mustBeLive()
	return len(t.nodes)
}

// HasPlaceholder returns true iff the Tree was built for a single distinct
// Symbol and therefore carries a placeholder leaf.
func (t *Tree[S]) HasPlaceholder() bool {
	t.mustBeLive()
	return t.nodes[t.nodes[t.root].right].placeholder
}

// Validate checks the structural invariants of the Tree: every node is
// reachable from the root exactly once, every internal node has two
// children, and every internal node weighs the sum of its children.
func (t *Tree[S]) Validate() error {
	t.mustBeLive()

	seen := make([]bool, len(t.nodes))
	stack := make([]nodeIndex, 0, 16)
	stack = append(stack, t.root)
	var leaves int
	for len(stack) != 0 {
		index := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if seen[index] {
			return fmt.Errorf("node %d has more than one parent", index)
		}
		seen[index] = true

		n := &t.nodes[index]
		if n.isLeaf() {
			if n.right != noNode {
				return fmt.Errorf("node %d has a right child but no left child", index)
			}
			if !n.placeholder {
				leaves++
			}
			continue
		}
		if n.right == noNode {
			return fmt.Errorf("internal node %d has only one child", index)
		}

		left, right := &t.nodes[n.left], &t.nodes[n.right]
		if n.weight != left.weight+right.weight {
			return fmt.Errorf("internal node %d weighs %d, but its children weigh %d + %d", index, n.weight, left.weight, right.weight)
		}
		stack = append(stack, n.right, n.left)
	}

	for index, ok := range seen {
		if !ok {
			return fmt.Errorf("node %d is not reachable from the root", index)
		}
	}
	if leaves != t.numLeaves {
		return fmt.Errorf("expected %d leaves, found %d", t.numLeaves, leaves)
	}
	return nil
}

// Release tears the Tree down, children before parents.  No node of the
// Tree can be reached afterward.
func (t *Tree[S]) Release() {
	if t.nodes == nil {
		return
	}

	type stackItem struct {
		index nodeIndex
		x     byte
	}

	stack := make([]stackItem, 0, 16)
	stack = append(stack, stackItem{index: t.root})
	for len(stack) != 0 {
		top := &stack[len(stack)-1]
		n := &t.nodes[top.index]
		if n.isLeaf() || top.x == 2 {
			*n = node[S]{}
			stack = stack[:len(stack)-1]
			continue
		}
		child := n.left
		if top.x == 1 {
			child = n.right
		}
		top.x++
		stack = append(stack, stackItem{index: child})
	}

	*t = Tree[S]{root: noNode}
}

// Released returns true iff Release has been called.
func (t *Tree[S]) Released() bool {
	return t.nodes == nil
}

// Dump writes a programmer-readable debugging dump of the Tree's leaves, in
// depth-first order, to the given writer.
func (t *Tree[S]) Dump(w io.Writer) (int64, error) {
	t.mustBeLive()

	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	fmt.Fprintf(&buf, "\tWeight() = %d\n", t.nodes[t.root].weight)
	fmt.Fprintf(&buf, "\tNumNodes() = %d\n", len(t.nodes))
	t.walk(func(n *node[S], hc Code) {
		if n.placeholder {
			fmt.Fprintf(&buf, "\tLeaf(%s) = placeholder\n", hc)
		} else {
			fmt.Fprintf(&buf, "\tLeaf(%s) = {%v, %d}\n", hc, n.symbol, n.weight)
		}
	})
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// walk visits every leaf in depth-first, left-before-right order, along
// with the Code of the path leading to it.
func (t *Tree[S]) walk(fn func(n *node[S], hc Code)) {
	// The stack holds internal nodes only.  stackItem.x records where we
	// are at that node:
	//   x=0 → We just arrived at stackItem for the first time
	//   x=1 → We have already processed the left child
	//   x=2 → We have already processed both children

	type stackItem struct {
		index nodeIndex
		hc    Code
		x     byte
	}

	stack := make([]stackItem, 0, 16)

	processChild := func(child nodeIndex, hc Code) {
		n := &t.nodes[child]
		if n.isLeaf() {
			fn(n, hc)
			return
		}
		stack = append(stack, stackItem{index: child, hc: hc})
	}

	stack = append(stack, stackItem{index: t.root})
	for len(stack) != 0 {
		top := &stack[len(stack)-1]
		x := top.x
		top.x++
		n := &t.nodes[top.index]
		switch x {
		case 0:
			processChild(n.left, top.hc.Append(0))
		case 1:
			processChild(n.right, top.hc.Append(1))
		case 2:
			stack = stack[:len(stack)-1]
		}
	}
}

// type weightAndIndex + type weightHeap {{{

type weightAndIndex struct {
	weight uint64
	index  nodeIndex
}

type weightHeap struct {
	list []weightAndIndex
}

func (h *weightHeap) Init() {
	heap.Init(h)
}

func (h *weightHeap) Len() int {
	return len(h.list)
}

func (h *weightHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *weightHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.weight != b.weight {
		return a.weight < b.weight
	}
	return a.index < b.index
}

func (h *weightHeap) Push(x interface{}) {
	h.list = append(h.list, x.(weightAndIndex))
}

func (h *weightHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*weightHeap)(nil)

// }}}
