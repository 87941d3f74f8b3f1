package dict

import (
	"bytes"
	"io"

	"github.com/ulikunitz/xz/lzma"
)

// looksLikeLZMA checks the first byte of a standard .lzma stream
// header: a properties byte in [0, 225] followed by a 4-byte dictionary
// size and an 8-byte uncompressed size (or 0xFFFFFFFFFFFFFFFF for
// "unknown"). There is no multi-byte magic number for raw LZMA the way
// gzip or xz have one, so detection in practice is done by attempting
// to construct a reader and treating failure as "not LZMA"; gating on
// the properties byte range first means a plain uncompressed blob that
// happens to decode is vanishingly unlikely to be misclassified.
func looksLikeLZMA(b []byte) bool {
	return len(b) >= 13 && b[0] <= 225
}

// decompressBlob transparently decompresses b if it carries the
// standard LZMA header. Streaming decode isn't worth the complexity for
// a blob that's used random-access, so this decompresses fully to heap
// before returning.
func decompressBlob(b []byte) ([]byte, error) {
	if !looksLikeLZMA(b) {
		return b, nil
	}
	r, err := lzma.NewReader(bytes.NewReader(b))
	if err != nil {
		// Not actually LZMA despite the header byte being in range;
		// treat as raw.
		return b, nil
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, loadErr("lzma decompress", ErrDecompressionFailed)
	}
	return out, nil
}
