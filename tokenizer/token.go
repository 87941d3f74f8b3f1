package tokenizer

import (
	"sync"

	"github.com/kanjiru/kanjiru/dict"
)

// tokenSource is the narrow slice of Dictionary/UserDictionary that a
// Token needs to resolve its feature tuple lazily.
type tokenSource interface {
	Features(wordID uint32) ([]string, error)
}

// Token is one materialized segmentation result: a surface string, its
// byte span in the original input, and a feature tuple resolved lazily
// and once, since many callers only ever read Surface.
type Token struct {
	Surface string
	Start   int // byte offset into the original input, inclusive
	End     int // byte offset into the original input, exclusive
	Ordinal int // 0-based position among materialized tokens

	IsUser    bool `json:"is_user,omitempty"`
	IsUnknown bool `json:"is_unknown,omitempty"`

	wordID  uint32
	source  tokenSource
	schema  *dict.Schema
	once    sync.Once
	feats   []string
	featErr error
}

// Features returns the schema-ordered feature tuple (e.g. part of
// speech, base form, reading), resolving it from the dictionary on
// first access and caching the result.
func (t *Token) Features() ([]string, error) {
	t.once.Do(func() {
		t.feats, t.featErr = t.source.Features(t.wordID)
	})
	return t.feats, t.featErr
}

// Feature resolves a single named field of the feature tuple, letting
// callers address a field by name instead of by tuple index.
func (t *Token) Feature(name string) (string, bool) {
	i, ok := t.schema.FieldIndex(name)
	if !ok {
		return "", false
	}
	feats, err := t.Features()
	if err != nil || i >= len(feats) {
		return "", false
	}
	return feats[i], true
}
