package tokenizer

import (
	"runtime"
	"sync"
	"unicode/utf8"

	"github.com/kanjiru/kanjiru/dict"
)

// Option configures a Tokenizer at construction time: a plain
// constructor-option style rather than a config/flags package for a
// concern this small.
type Option func(*Tokenizer)

// WithMode selects Normal or Decompose segmentation.
func WithMode(m Mode) Option {
	return func(t *Tokenizer) { t.mode = m }
}

// WithUserDictionary layers a compiled user dictionary on top of the
// system dictionary. A user hit never suppresses a system hit; both
// compete in the lattice on equal footing.
func WithUserDictionary(u *dict.UserDictionary) Option {
	return func(t *Tokenizer) { t.user = u }
}

// WithKeepWhitespace controls whether tokens whose primary character
// category is SPACE survive materialization.
func WithKeepWhitespace(keep bool) Option {
	return func(t *Tokenizer) { t.keepWhitespace = keep }
}

// Tokenizer is the public engine: one dictionary, one mode, one
// optional user dictionary, and a reusable per-instance scratch
// lattice. A Tokenizer is not safe for concurrent use — the dictionary
// it wraps is, and many Tokenizers may share one.
type Tokenizer struct {
	dictionary     *dict.Dictionary
	user           *dict.UserDictionary
	mode           Mode
	keepWhitespace bool
	penalty        penaltyPolicy
	scratch        *lattice
}

// New constructs a Tokenizer bound to d. d must outlive the Tokenizer.
func New(d *dict.Dictionary, opts ...Option) *Tokenizer {
	t := &Tokenizer{dictionary: d, mode: Normal, scratch: newLattice()}
	for _, opt := range opts {
		opt(t)
	}
	t.penalty = newPenaltyPolicy(t.mode, d.Schema)
	return t
}

// Tokenize segments text into tokens via lattice construction and
// Viterbi search. It rejects input that is not valid UTF-8.
func (t *Tokenizer) Tokenize(text string) ([]*Token, error) {
	input := []byte(text)
	if !utf8.Valid(input) {
		return nil, &dict.InputError{Err: dict.ErrInvalidUTF8}
	}
	return t.tokenize(input)
}

func (t *Tokenizer) tokenize(input []byte) ([]*Token, error) {
	n := len(input)
	l := t.scratch
	l.reset(n)

	schema := t.dictionary.Schema
	unknown := t.dictionary.Unknown()

	bos := latticeNode{
		start: 0, end: 0, kind: kindBOS,
		rightID: schema.DefaultRightContextID,
		bestCost: 0, prev: -1,
	}
	l.append(bos)

	for pos := 0; pos < n; pos++ {
		if !l.reachable(pos) {
			continue
		}

		var candidates []dict.Candidate
		candidates = append(candidates, t.dictionary.SystemSource().CommonPrefixSearch(input, pos)...)
		if t.user != nil {
			candidates = append(candidates, t.user.CommonPrefixSearch(input, pos)...)
		}

		if len(candidates) == 0 || unknown.InvokesAlongsideMatch(input, pos) {
			unk := t.dictionary.UnknownSource().CommonPrefixSearch(input, pos)
			if len(unk) == 0 && len(candidates) == 0 {
				return nil, &dict.EngineError{Err: dict.ErrUnknownProgressStall}
			}
			candidates = append(candidates, unk...)
		}

		for _, c := range candidates {
			if c.End <= pos || c.End > n {
				continue // zero-length or out-of-range surfaces are never valid candidates
			}

			kind := kindKnown
			switch {
			case c.IsUser:
				kind = kindUser
			case c.IsUnknown:
				kind = kindUnknown
			}

			runeLen := utf8.RuneCount(input[pos:c.End])
			penalty := t.penalty.penalty(runeLen, c.IsUnknown)

			best, prevIdx, ok := scoreBest(l, pos, c.LeftID, t.dictionary.Matrix(), c.WordCost, penalty)
			if !ok {
				continue // no scored predecessor ends here; unreachable given the reachable(pos) guard above
			}

			l.append(latticeNode{
				start: pos, end: c.End,
				wordID: c.WordID, wordCost: c.WordCost,
				leftID: c.LeftID, rightID: c.RightID,
				kind: kind, bestCost: best, prev: prevIdx,
			})
		}
	}

	if !l.reachable(n) {
		return nil, &dict.EngineError{Err: dict.ErrNoPath}
	}

	eosBest, eosPrev, ok := scoreBest(l, n, schema.DefaultLeftContextID, t.dictionary.Matrix(), 0, 0)
	if !ok {
		return nil, &dict.EngineError{Err: dict.ErrNoPath}
	}
	eosIdx := l.append(latticeNode{start: n, end: n, kind: kindEOS, bestCost: eosBest, prev: eosPrev})

	return t.materialize(l, input, eosIdx)
}

// materialize walks the best path backward from eos to BOS, reverses
// it, and drops the two virtual pins plus (unless keepWhitespace is
// set) any span whose first rune's primary category is SPACE.
func (t *Tokenizer) materialize(l *lattice, input []byte, eosIdx int32) ([]*Token, error) {
	var path []int32
	for idx := l.nodes[eosIdx].prev; idx >= 0 && !l.nodes[idx].isVirtual(); idx = l.nodes[idx].prev {
		path = append(path, idx)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	tokens := make([]*Token, 0, len(path))
	for _, idx := range path {
		n := &l.nodes[idx]
		if !t.keepWhitespace {
			if t.dictionary.Unknown().CategoryOf(input, n.start) == dict.CategorySpace {
				continue
			}
		}

		var source tokenSource = t.dictionary
		if n.kind == kindUser {
			source = t.user
		}

		tok := &Token{
			Surface:   string(input[n.start:n.end]),
			Start:     n.start,
			End:       n.end,
			IsUser:    n.kind == kindUser,
			IsUnknown: n.kind == kindUnknown,
			wordID:    n.wordID,
			source:    source,
			schema:    t.dictionary.Schema,
		}
		tok.Ordinal = len(tokens)
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// TokenizeList tokenizes many texts concurrently: a channel fan-out of
// one job per text across up to runtime.NumCPU() goroutines, each worker owning its
// own Tokenizer since scratch lattices are never shared. Results are
// written directly to their origin index rather than merged and
// re-sorted, since the index is known up front.
func TokenizeList(d *dict.Dictionary, texts []string, opts ...Option) ([][]*Token, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	workers := runtime.NumCPU()
	if workers > len(texts) {
		workers = len(texts)
	}
	if workers < 1 {
		workers = 1
	}

	type job struct {
		idx  int
		text string
	}
	jobs := make(chan job)
	results := make([][]*Token, len(texts))
	errs := make([]error, len(texts))

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			tk := New(d, opts...)
			for j := range jobs {
				toks, err := tk.Tokenize(j.text)
				results[j.idx] = toks
				errs[j.idx] = err
			}
		}()
	}
	for i, text := range texts {
		jobs <- job{idx: i, text: text}
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
