package tokenizer

import (
	"math"

	"github.com/kanjiru/kanjiru/dict"
)

// scoreBest finds the minimum-cost predecessor ending at pos for a
// candidate whose left_context_id is leftID:
// cost = predecessor.bestCost + matrix.Cost(predecessor.rightID, leftID)
//        + wordCost + penalty
// Ties are broken by insertion order: byEnd[pos] is walked in the
// order nodes were appended, and only a strictly smaller cost replaces
// the running best, so the first-inserted minimum wins and results stay
// deterministic across repeated runs on the same input.
func scoreBest(l *lattice, pos int, leftID uint16, m *dict.Matrix, wordCost int16, penalty int64) (bestCost int64, bestPrev int32, ok bool) {
	preds := l.byEnd[pos]
	if len(preds) == 0 {
		return 0, -1, false
	}
	best := int64(math.MaxInt64)
	bestIdx := int32(-1)
	for _, pi := range preds {
		p := &l.nodes[pi]
		cost := p.bestCost + int64(m.Cost(p.rightID, leftID)) + int64(wordCost) + penalty
		if cost < best {
			best = cost
			bestIdx = pi
		}
	}
	if best > math.MaxInt32 {
		best = math.MaxInt32
	} else if best < math.MinInt32 {
		best = math.MinInt32
	}
	return best, bestIdx, true
}
