package dict

// Candidate is one lattice-node proposal: a surface occupying
// [start, start+width) bytes (width is implicit from the caller's
// search position and Candidate.End) with the cost/context data needed
// to score and materialize it.
type Candidate struct {
	End      int // exclusive byte position
	WordID   uint32
	WordCost int16
	LeftID   uint16
	RightID  uint16
	IsUser   bool
	IsUnknown bool
	Category Category // meaningful only when IsUnknown
}

// CandidateSource is the uniform contract the system trie, the user
// trie, and the unknown-word generator all implement. The lattice
// builder treats all three sources identically.
type CandidateSource interface {
	// CommonPrefixSearch returns every candidate token starting at byte
	// position start in input.
	CommonPrefixSearch(input []byte, start int) []Candidate
}
