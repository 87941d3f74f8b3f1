package tokenizer

import (
	"encoding/binary"
	"testing/fstest"

	"github.com/kanjiru/kanjiru/dict"
)

// buildFixtureDictionary assembles a minimal, hand-rolled dictionary
// covering exactly one system word ("go") plus a DEFAULT unknown-word
// template, serialized to the exact on-disk layouts dict.Load expects,
// and registers it under an embedded:// URI so these tests exercise
// the real loader rather than a package-internal shortcut.
func buildFixtureDictionary(t testingT, name string) *dict.Dictionary {
	const n = 256
	base := make([]int32, n)
	check := make([]int32, n)
	for i := range check {
		check[i] = -1
	}
	base[0] = -103 // root --'g'(103)--> state 1
	check[1] = 0
	base[1] = 10 // state1 ("g"): not terminal, --'o'(111)--> state 122
	check[122] = 1
	base[122] = 50 // state122 ("go"): terminal at idx 50
	check[50] = 122
	base[50] = int32(1) // packed (offset 0, count 1)

	trieRaw := make([]byte, 4+n*4*2)
	binary.LittleEndian.PutUint32(trieRaw[0:4], uint32(n))
	body := trieRaw[4:]
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint32(body[i*4:i*4+4], uint32(base[i]))
	}
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint32(body[n*4+i*4:n*4+i*4+4], uint32(check[i]))
	}

	valsRaw := make([]byte, 10)
	binary.LittleEndian.PutUint32(valsRaw[0:4], 1) // word id 1
	binary.LittleEndian.PutUint16(valsRaw[4:6], 100)
	binary.LittleEndian.PutUint16(valsRaw[6:8], 0)
	binary.LittleEndian.PutUint16(valsRaw[8:10], 0)

	// word details: id 1 -> "VERB", id 2 -> "UNK" (the unknown template).
	wordsRaw := []byte{}
	putField := func(s string) int {
		off := len(wordsRaw)
		var l [2]byte
		binary.LittleEndian.PutUint16(l[:], uint16(len(s)))
		wordsRaw = append(wordsRaw, l[:]...)
		wordsRaw = append(wordsRaw, s...)
		return off
	}
	off1 := putField("VERB")
	off2 := putField("UNK")
	idxRaw := make([]byte, 12)
	binary.LittleEndian.PutUint32(idxRaw[4:8], uint32(off1))
	binary.LittleEndian.PutUint32(idxRaw[8:12], uint32(off2))

	matrixRaw := make([]byte, 6)
	binary.LittleEndian.PutUint16(matrixRaw[0:2], 1)
	binary.LittleEndian.PutUint16(matrixRaw[2:4], 1)
	binary.LittleEndian.PutUint16(matrixRaw[4:6], 0)

	const categoryCount = 15 // dict.categoryCount mirrored; see dict/chardef.go
	charRaw := make([]byte, categoryCount*3)
	charRaw[1] = 1 // CategoryDefault (index 0): group = true

	unkRaw := make([]byte, categoryCount*6+10)
	binary.LittleEndian.PutUint32(unkRaw[0:4], 0) // DEFAULT offset, relative to the entry blob after the header
	binary.LittleEndian.PutUint16(unkRaw[4:6], 1)                      // DEFAULT count
	entry := unkRaw[categoryCount*6:]
	binary.LittleEndian.PutUint32(entry[0:4], 2) // word id 2
	binary.LittleEndian.PutUint16(entry[4:6], 500)

	metadata := []byte(`{
		"name": "fixture",
		"fields": ["pos"],
		"default_left_context_id": 0,
		"default_right_context_id": 0,
		"default_word_cost": 0,
		"decompose_threshold": 2,
		"decompose_known_penalty": 50,
		"decompose_unknown_penalty": 10,
		"compressed": false
	}`)

	fsys := fstest.MapFS{
		"metadata.json":  {Data: metadata},
		"dict.da":        {Data: trieRaw},
		"dict.vals":      {Data: valsRaw},
		"dict.wordsidx":  {Data: idxRaw},
		"dict.words":     {Data: wordsRaw},
		"matrix.mtx":     {Data: matrixRaw},
		"char_def.bin":   {Data: charRaw},
		"unk.bin":        {Data: unkRaw},
	}
	dict.RegisterEmbedded(name, fsys)

	d, err := dict.Load("embedded://" + name)
	if err != nil {
		t.Fatalf("dict.Load(fixture): %v", err)
	}
	return d
}

// testingT is the narrow slice of *testing.T this helper needs, so it
// can be shared from both _test.go files without an import cycle.
type testingT interface {
	Fatalf(format string, args ...any)
}
