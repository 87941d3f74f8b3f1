package dict

import (
	"encoding/binary"
	"unicode/utf8"
)

// UnkStore is the unknown-word store: per-category lists of synthetic
// entry templates. On-disk layout: a fixed-size header of categoryCount
// (offset u32, count u16) pairs, 6 bytes each, followed by a
// WordEntry-shaped blob (the same 10-byte record the word-values blob
// uses, with WordID repurposed as a synthetic word id that still must
// resolve in the word-detail store).
type UnkStore struct {
	offsets [categoryCount]uint32
	counts  [categoryCount]uint16
	values  wordValues
}

func newUnkStore(raw []byte) (*UnkStore, error) {
	headerSize := int(categoryCount) * 6
	if len(raw) < headerSize {
		return nil, loadErr("parse unk.bin", ErrCorruptHeader)
	}
	var u UnkStore
	for i := 0; i < int(categoryCount); i++ {
		b := raw[i*6 : i*6+6]
		u.offsets[i] = binary.LittleEndian.Uint32(b[0:4])
		u.counts[i] = binary.LittleEndian.Uint16(b[4:6])
	}
	u.values = wordValues{raw: raw[headerSize:]}
	return &u, nil
}

// Templates returns every synthetic entry template registered for c.
func (u *UnkStore) Templates(c Category) []WordEntry {
	if int(c) >= len(u.counts) {
		return nil
	}
	return u.values.entries(int(u.offsets[c]), int(u.counts[c]))
}

// UnknownGenerator synthesizes candidate nodes at positions with no (or
// incomplete) dictionary coverage. It implements CandidateSource so the
// lattice builder treats it exactly like the system and user tries.
type UnknownGenerator struct {
	chars *CharDef
	store *UnkStore
}

func newUnknownGenerator(chars *CharDef, store *UnkStore) *UnknownGenerator {
	return &UnknownGenerator{chars: chars, store: store}
}

// CommonPrefixSearch synthesizes candidates starting at start. It always
// returns at least one candidate if the store has a DEFAULT template;
// callers that get back an empty slice here — meaning even DEFAULT is
// missing — must surface ErrUnknownProgressStall rather than loop.
func (g *UnknownGenerator) CommonPrefixSearch(input []byte, start int) []Candidate {
	if start >= len(input) {
		return nil
	}
	r, size := utf8.DecodeRune(input[start:])
	_, primary := g.chars.Lookup(r)
	def := g.chars.Def(primary)

	var spanEnds []int

	// Step 2: group consecutive same-category runes into one span.
	if def.Group {
		end := start + size
		for end < len(input) {
			nr, nsize := utf8.DecodeRune(input[end:])
			if nsize == 0 {
				break
			}
			_, ncat := g.chars.Lookup(nr)
			if ncat != primary {
				break
			}
			end += nsize
		}
		spanEnds = append(spanEnds, end)
	}

	// Step 3: additionally emit 1..Length rune-count spans.
	if def.Length > 0 {
		end := start
		for i := 0; i < int(def.Length) && end < len(input); i++ {
			_, sz := utf8.DecodeRune(input[end:])
			if sz == 0 {
				break
			}
			end += sz
			spanEnds = append(spanEnds, end)
		}
	}

	// Step 5: nothing fired — still make one character's worth of
	// progress so the lattice never stalls.
	if len(spanEnds) == 0 {
		spanEnds = append(spanEnds, start+size)
	}

	templates := g.store.Templates(primary)
	category := primary
	if len(templates) == 0 {
		category = CategoryDefault
		templates = g.store.Templates(CategoryDefault)
	}
	if len(templates) == 0 {
		return nil
	}

	seen := make(map[int]bool, len(spanEnds))
	var out []Candidate
	for _, end := range spanEnds {
		if end <= start || seen[end] {
			continue
		}
		seen[end] = true
		for _, t := range templates {
			out = append(out, Candidate{
				End:       end,
				WordID:    t.WordID,
				WordCost:  t.WordCost,
				LeftID:    t.LeftID,
				RightID:   t.RightID,
				IsUnknown: true,
				Category:  category,
			})
		}
	}
	return out
}

// InvokesAlongsideMatch reports whether the category at the first rune
// of input[pos:] has its invoke flag set, in which case the lattice
// builder must run unknown synthesis even when dictionary candidates
// were already found at pos.
func (g *UnknownGenerator) InvokesAlongsideMatch(input []byte, pos int) bool {
	if pos >= len(input) {
		return false
	}
	r, _ := utf8.DecodeRune(input[pos:])
	_, primary := g.chars.Lookup(r)
	return g.chars.Def(primary).Invoke
}

// CategoryOf exposes the primary category of the rune at byte position
// pos, used by the token materializer to decide whitespace filtering.
func (g *UnknownGenerator) CategoryOf(input []byte, pos int) Category {
	if pos >= len(input) {
		return CategoryDefault
	}
	r, _ := utf8.DecodeRune(input[pos:])
	_, primary := g.chars.Lookup(r)
	return primary
}
