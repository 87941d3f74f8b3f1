package dict

// Dictionary is the compiled, read-only dictionary: five artifacts
// (trie, word-values, connection matrix, word-detail store,
// character/unknown-word tables) plus the schema that describes them.
// It is immutable after Load returns and safe to share by reference
// across any number of concurrently running tokenizers.
type Dictionary struct {
	Schema *Schema

	system  systemSource
	details wordDetails
	matrix  *Matrix
	chars   *CharDef
	unk     *UnkStore
	unknown *UnknownGenerator

	closers []func() error
}

// Load materializes a Dictionary from uri: either "embedded://<name>"
// for in-process bytes registered with RegisterEmbedded, or a
// filesystem path to a directory containing the compiled dictionary
// files.
func Load(uri string) (*Dictionary, error) {
	src, err := resolveSource(uri)
	if err != nil {
		return nil, err
	}

	schemaRaw, err := src.readAll("metadata.json")
	if err != nil {
		return nil, loadErr("read metadata.json", err)
	}
	schema, err := parseSchema(schemaRaw)
	if err != nil {
		return nil, err
	}

	d := &Dictionary{Schema: schema}
	ok := false
	defer func() {
		if !ok {
			d.Close()
		}
	}()

	trieBlob, err := d.loadMappable(src, "dict.da", schema.Compressed)
	if err != nil {
		return nil, loadErr("read dict.da", err)
	}
	trie, err := newTrie(trieBlob)
	if err != nil {
		return nil, err
	}

	valsBlob, err := d.loadMappable(src, "dict.vals", schema.Compressed)
	if err != nil {
		return nil, loadErr("read dict.vals", err)
	}

	wordsIdxBlob, err := d.loadHeap(src, "dict.wordsidx", schema.Compressed)
	if err != nil {
		return nil, loadErr("read dict.wordsidx", err)
	}

	wordsBlob, err := d.loadMappable(src, "dict.words", schema.Compressed)
	if err != nil {
		return nil, loadErr("read dict.words", err)
	}

	matrixBlob, err := d.loadMappable(src, "matrix.mtx", schema.Compressed)
	if err != nil {
		return nil, loadErr("read matrix.mtx", err)
	}
	matrix, err := newMatrix(matrixBlob)
	if err != nil {
		return nil, err
	}

	charDefBlob, err := d.loadHeap(src, "char_def.bin", schema.Compressed)
	if err != nil {
		return nil, loadErr("read char_def.bin", err)
	}
	chars, err := newCharDef(charDefBlob)
	if err != nil {
		return nil, err
	}

	unkBlob, err := d.loadHeap(src, "unk.bin", schema.Compressed)
	if err != nil {
		return nil, loadErr("read unk.bin", err)
	}
	unk, err := newUnkStore(unkBlob)
	if err != nil {
		return nil, err
	}

	if len(schema.Fields) == 0 {
		return nil, loadErr("validate metadata.json", ErrSchemaMismatch)
	}

	d.system = systemSource{trie: trie, values: wordValues{raw: valsBlob}}
	d.details = wordDetails{index: wordsIdxBlob, payload: wordsBlob}
	d.matrix = matrix
	d.chars = chars
	d.unk = unk
	d.unknown = newUnknownGenerator(chars, unk)

	ok = true
	return d, nil
}

// loadMappable reads a large, random-access blob, preferring a
// zero-copy mapping (real directories) over a heap copy (embedded
// sources), decompressing first when the schema declares the blobs
// LZMA-compressed; decompression must complete fully before any
// lookup, since the blobs are used random-access.
func (d *Dictionary) loadMappable(src source, name string, compressed bool) ([]byte, error) {
	b, err := src.readMappable(name)
	if err != nil {
		return nil, err
	}
	if !compressed {
		d.closers = append(d.closers, b.closer)
		return b.data, nil
	}
	out, err := decompressBlob(b.data)
	if err != nil {
		_ = b.closer()
		return nil, err
	}
	if len(out) > 0 && len(b.data) > 0 && &out[0] == &b.data[0] {
		// Not LZMA after all: out is the mapping itself, so keep it alive.
		d.closers = append(d.closers, b.closer)
		return out, nil
	}
	_ = b.closer() // the compressed mapping itself is no longer needed
	return out, nil
}

func (d *Dictionary) loadHeap(src source, name string, compressed bool) ([]byte, error) {
	raw, err := src.readAll(name)
	if err != nil {
		return nil, err
	}
	if !compressed {
		return raw, nil
	}
	return decompressBlob(raw)
}

// Close releases any mmap regions the dictionary holds. Safe to call
// more than once.
func (d *Dictionary) Close() error {
	var first error
	for _, c := range d.closers {
		if c == nil {
			continue
		}
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	d.closers = nil
	return first
}

// SystemSource returns the candidate source backed by the compiled
// system trie.
func (d *Dictionary) SystemSource() CandidateSource { return d.system }

// UnknownSource returns the candidate source that synthesizes
// unknown-word candidates.
func (d *Dictionary) UnknownSource() CandidateSource { return d.unknown }

// Unknown exposes the unknown-word generator directly, for the lattice
// builder's invoke-flag and category queries.
func (d *Dictionary) Unknown() *UnknownGenerator { return d.unknown }

// CharDef exposes the character-category table, e.g. for
// keep_whitespace filtering.
func (d *Dictionary) CharDef() *CharDef { return d.chars }

// Matrix exposes the connection-cost matrix.
func (d *Dictionary) Matrix() *Matrix { return d.matrix }

// Features resolves the feature tuple for a system-dictionary word id.
func (d *Dictionary) Features(wordID uint32) ([]string, error) {
	return d.details.Features(wordID, len(d.Schema.Fields))
}
