package tokenizer

import "github.com/kanjiru/kanjiru/dict"

// Mode selects the tokenization strategy.
type Mode uint8

const (
	// Normal performs plain Viterbi segmentation with no extra bias
	// toward shorter or longer candidates.
	Normal Mode = iota
	// Decompose biases the search toward shorter (more decomposed)
	// segmentations by penalizing candidates that exceed the schema's
	// decompose threshold.
	Decompose
)

// penaltyPolicy applies the Decompose-mode cost bias. Both rates and
// the threshold come from the dictionary's Schema rather than being
// hard-coded, so different compiled dictionaries can tune the bias
// independently.
type penaltyPolicy struct {
	mode            Mode
	threshold       int
	knownPenalty    int16
	unknownPenalty  int16
}

func newPenaltyPolicy(mode Mode, schema *dict.Schema) penaltyPolicy {
	return penaltyPolicy{
		mode:           mode,
		threshold:      schema.DecomposeThreshold,
		knownPenalty:   schema.DecomposeKnownPenalty,
		unknownPenalty: schema.DecomposeUnknownPenalty,
	}
}

// penalty computes the additive cost bias for a candidate spanning
// runeLen runes: an independent per-kind rate times the excess length
// over the threshold, zero below it and zero outside Decompose mode.
func (p penaltyPolicy) penalty(runeLen int, isUnknown bool) int64 {
	if p.mode != Decompose {
		return 0
	}
	excess := runeLen - p.threshold
	if excess <= 0 {
		return 0
	}
	rate := p.knownPenalty
	if isUnknown {
		rate = p.unknownPenalty
	}
	return int64(rate) * int64(excess)
}
