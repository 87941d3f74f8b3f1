// Package tokenizer implements the lattice-building Viterbi search,
// the Normal/Decompose penalty policy, and token materialization on
// top of a dict.Dictionary. It owns the public engine API: construct a
// Tokenizer from a loaded dictionary, mode, and optional user
// dictionary, then call Tokenize.
package tokenizer

import "github.com/kanjiru/kanjiru/dict"

type nodeKind uint8

const (
	kindBOS nodeKind = iota
	kindEOS
	kindKnown
	kindUser
	kindUnknown
)

// latticeNode is one arena slot: a candidate token, or one of the two
// virtual pins (BOS/EOS), referencing its best predecessor by index
// rather than by pointer, the same flat-array-of-indices shape the
// compiled dictionary itself uses for its trie and word stores.
type latticeNode struct {
	start, end int
	wordID     uint32
	wordCost   int16
	leftID     uint16
	rightID    uint16
	kind       nodeKind

	bestCost int64
	prev     int32 // index into lattice.nodes; -1 sentinel (BOS has no predecessor)
}

func (n *latticeNode) isVirtual() bool { return n.kind == kindBOS || n.kind == kindEOS }
