package dict

// systemSource adapts the double-array trie plus the word-values blob
// into a CandidateSource: a trie hit names a packed (offset, len) run of
// WordEntry records, one Candidate per homograph in that run.
type systemSource struct {
	trie   *Trie
	values wordValues
}

func (s systemSource) CommonPrefixSearch(input []byte, start int) []Candidate {
	matches := s.trie.CommonPrefixSearch(input, start)
	if len(matches) == 0 {
		return nil
	}
	var out []Candidate
	for _, m := range matches {
		if m.End == start {
			continue // zero-length surfaces are never valid candidates
		}
		v := trieValue(m.Value)
		for _, e := range s.values.entries(v.byteOffset(), v.len()) {
			out = append(out, Candidate{
				End:      m.End,
				WordID:   e.WordID,
				WordCost: e.WordCost,
				LeftID:   e.LeftID,
				RightID:  e.RightID,
			})
		}
	}
	return out
}
