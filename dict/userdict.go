package dict

import (
	"encoding/csv"
	"io"
	"strconv"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// userEntry is one compiled user-dictionary row.
type userEntry struct {
	wordID   uint32
	wordCost int16
	leftID   uint16
	rightID  uint16
}

// userNode is a byte-keyed trie node: a children map plus a payload
// slice, left unflattened rather than compiled into an arena, because a
// user dictionary is typically orders of magnitude smaller than the
// compiled system dictionary and never benefits from the mmap/arena
// treatment. Keyed by byte instead of rune so its CommonPrefixSearch
// walk matches the system trie's byte-at-a-time contract exactly.
type userNode struct {
	children map[byte]*userNode
	entries  []userEntry
}

// UserDictionary is the compiled, in-memory overlay described in spec
// §3/§4.8: same logical shape as the compiled dictionary, layered on
// top rather than suppressing it. Implements CandidateSource.
type UserDictionary struct {
	root     *userNode
	features [][]string
	schema   *Schema
}

func newUserDictionary(schema *Schema) *UserDictionary {
	return &UserDictionary{root: &userNode{children: make(map[byte]*userNode)}, schema: schema}
}

func (u *UserDictionary) insert(surface string, cost int16, left, right uint16, fields []string) {
	node := u.root
	for i := 0; i < len(surface); i++ {
		b := surface[i]
		child, ok := node.children[b]
		if !ok {
			child = &userNode{children: make(map[byte]*userNode)}
			node.children[b] = child
		}
		node = child
	}
	id := uint32(len(u.features))
	u.features = append(u.features, fields)
	node.entries = append(node.entries, userEntry{wordID: id, wordCost: cost, leftID: left, rightID: right})
}

// CommonPrefixSearch implements dict.CandidateSource.
func (u *UserDictionary) CommonPrefixSearch(input []byte, start int) []Candidate {
	if u == nil || u.root == nil {
		return nil
	}
	node := u.root
	var out []Candidate
	for pos := start; pos < len(input); pos++ {
		child, ok := node.children[input[pos]]
		if !ok {
			break
		}
		node = child
		for _, e := range node.entries {
			out = append(out, Candidate{
				End: pos + 1, WordID: e.wordID, WordCost: e.wordCost,
				LeftID: e.leftID, RightID: e.rightID, IsUser: true,
			})
		}
	}
	return out
}

// Features resolves the feature tuple for a user-dictionary word id.
func (u *UserDictionary) Features(wordID uint32) ([]string, error) {
	if int(wordID) >= len(u.features) {
		return nil, loadErr("resolve user word detail", ErrSchemaMismatch)
	}
	return u.features[wordID], nil
}

// LoadUser compiles a user-dictionary CSV. detailed selects the
// per-language full-field format (surface, left_id,
// right_id, cost, then schema.Fields verbatim); when false, rows use the
// simple three-field format (surface, POS tag, reading) and receive the
// schema's default context ids and cost.
func LoadUser(r io.Reader, schema *Schema, detailed bool) (*UserDictionary, error) {
	if decoder := sourceDecoder(schema.Encoding); decoder != nil {
		r = transform.NewReader(r, decoder.NewDecoder())
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = false

	ud := newUserDictionary(schema)
	line := 0
	for {
		line++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, loadErr("parse user dictionary CSV", err)
		}
		if len(record) == 0 {
			continue
		}
		if detailed {
			if err := ud.insertDetailed(record, schema, line); err != nil {
				return nil, err
			}
		} else {
			if err := ud.insertSimple(record, schema, line); err != nil {
				return nil, err
			}
		}
	}
	return ud, nil
}

func (u *UserDictionary) insertSimple(record []string, schema *Schema, line int) error {
	const simpleFieldCount = 3
	if len(record) < simpleFieldCount {
		return &MalformedRowError{Line: line, Reason: "simple user dictionary rows need surface, POS tag, reading"}
	}
	surface, pos, reading := record[0], record[1], record[2]
	if surface == "" {
		return &MalformedRowError{Line: line, Reason: "empty surface"}
	}
	fields := make([]string, len(schema.Fields))
	for i, name := range schema.Fields {
		switch name {
		case "pos", "part_of_speech":
			fields[i] = pos
		case "reading", "pronunciation":
			fields[i] = reading
		}
	}
	u.insert(surface, schema.DefaultWordCost, schema.DefaultLeftContextID, schema.DefaultRightContextID, fields)
	return nil
}

func (u *UserDictionary) insertDetailed(record []string, schema *Schema, line int) error {
	const prefixFieldCount = 4 // surface, left_id, right_id, cost
	need := prefixFieldCount + len(schema.Fields)
	if len(record) < need {
		return &MalformedRowError{Line: line, Reason: "detailed user dictionary row shorter than schema requires"}
	}
	surface := record[0]
	if surface == "" {
		return &MalformedRowError{Line: line, Reason: "empty surface"}
	}
	left, err := strconv.ParseUint(record[1], 10, 16)
	if err != nil {
		return &MalformedRowError{Line: line, Reason: "left_context_id not an integer"}
	}
	right, err := strconv.ParseUint(record[2], 10, 16)
	if err != nil {
		return &MalformedRowError{Line: line, Reason: "right_context_id not an integer"}
	}
	cost, err := strconv.ParseInt(record[3], 10, 16)
	if err != nil {
		return &MalformedRowError{Line: line, Reason: "word_cost not an integer"}
	}
	fields := append([]string(nil), record[prefixFieldCount:prefixFieldCount+len(schema.Fields)]...)
	u.insert(surface, int16(cost), uint16(left), uint16(right), fields)
	return nil
}

// sourceDecoder returns the golang.org/x/text encoding for a schema's
// declared source encoding, or nil for UTF-8/unrecognized values (left
// as-is, since the CSV is then assumed to already be UTF-8).
func sourceDecoder(name string) encoding.Encoding {
	switch name {
	case "EUC-JP", "euc-jp":
		return japanese.EUCJP
	case "Shift_JIS", "shift_jis", "SJIS":
		return japanese.ShiftJIS
	case "EUC-KR", "euc-kr":
		return korean.EUCKR
	case "GBK", "gbk":
		return simplifiedchinese.GBK
	case "GB18030", "gb18030":
		return simplifiedchinese.GB18030
	default:
		return nil
	}
}
