// Package hufftree builds frequency-driven prefix codes (Huffman codes) for
// arbitrary ordered symbol alphabets, and uses them to encode a symbol
// sequence into a bit string and to decode it back by walking the code tree.
//
// The usual flow is:
//
//     freqs := hufftree.Count(input)
//     tree := hufftree.BuildTree(freqs)
//     table := tree.CodeTable()
//     bits := table.Encode(input)
//     output, err := tree.Decode(bits)
//     tree.Release()
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package hufftree
