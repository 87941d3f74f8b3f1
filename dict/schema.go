package dict

import (
	"encoding/json"
)

// Schema is the per-dictionary metadata descriptor: field layout,
// source encoding, default context/cost values for unknown and user
// entries, and the decompose-mode penalty constants. These live here,
// sourced from the compiled dictionary's own metadata, rather than
// hard-coded into the engine.
type Schema struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Language string `json:"language"`

	// Encoding is the source CSV encoding declared at build time
	// (typically "UTF-8", "EUC-JP", "EUC-KR", or "GBK"/"GB18030"); the
	// compiled blobs themselves are always UTF-8.
	Encoding string `json:"encoding"`

	// Fields names each slot of a resolved token feature tuple, in
	// order, e.g. ["pos", "base_form", "reading", "pronunciation"].
	Fields []string `json:"fields"`

	// Defaults applied to simple-format user-dictionary rows, which
	// supply no cost/context information of their own.
	DefaultLeftContextID  uint16 `json:"default_left_context_id"`
	DefaultRightContextID uint16 `json:"default_right_context_id"`
	DefaultWordCost       int16  `json:"default_word_cost"`

	// DecomposeThreshold is the rune-length threshold in the Decompose
	// penalty formula (default 3 if the metadata omits it).
	DecomposeThreshold int `json:"decompose_threshold"`
	// DecomposeKnownPenalty / DecomposeUnknownPenalty are independent
	// per-excess-character-length cost rates applied in Decompose mode
	// to known and synthesized nodes respectively.
	DecomposeKnownPenalty   int16 `json:"decompose_known_penalty"`
	DecomposeUnknownPenalty int16 `json:"decompose_unknown_penalty"`

	// Compressed flags that the large blobs may be LZMA-compressed and
	// require decompression on load.
	Compressed bool `json:"compressed"`

	// Labels holds optional human-readable field labels, keyed by field
	// name, for renderers that want to present something nicer than the
	// raw field name.
	Labels map[string]string `json:"labels,omitempty"`

	fieldIndex map[string]int
}

func parseSchema(raw []byte) (*Schema, error) {
	var s Schema
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, loadErr("parse metadata.json", err)
	}
	if s.DecomposeThreshold <= 0 {
		s.DecomposeThreshold = 3
	}
	s.buildIndex()
	return &s, nil
}

func (s *Schema) buildIndex() {
	s.fieldIndex = make(map[string]int, len(s.Fields))
	for i, name := range s.Fields {
		s.fieldIndex[name] = i
	}
}

// FieldIndex returns the position of a named feature field in a
// resolved token's feature tuple, so external filters can address
// fields by name instead of by index.
func (s *Schema) FieldIndex(name string) (int, bool) {
	if s.fieldIndex == nil {
		s.buildIndex()
	}
	i, ok := s.fieldIndex[name]
	return i, ok
}
