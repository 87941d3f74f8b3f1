package dict

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/edsrzf/mmap-go"
)

// blob is a loaded byte region plus the means to release it. Regions
// backed by mmap keep the mapping object alive via closer; heap-copied
// regions (embedded sources, or filesystems that cannot mmap) have a
// no-op closer.
type blob struct {
	data   []byte
	closer func() error
}

// source abstracts where the dictionary files come from: a real
// filesystem directory, where the large blobs are worth
// memory-mapping, or an embedded fs.FS, where they are not. Sandboxed
// hosts (e.g. WebAssembly) can't mmap at all; embed.FS has the same
// shape of limitation, so both take the heap-copy path uniformly.
type source interface {
	// readMappable loads a file that is a candidate for zero-copy
	// mapping (the large, random-access blobs: dict.da, dict.vals,
	// dict.words, matrix.mtx).
	readMappable(name string) (blob, error)
	// readAll loads a file fully into heap memory (the small blobs:
	// dict.wordsidx, char_def.bin, unk.bin, metadata.json, plus every
	// blob on a source that cannot mmap).
	readAll(name string) ([]byte, error)
}

// dirSource reads from a real filesystem directory and mmaps the large
// blobs read-only: open the file, mmap.Map it RDONLY, and keep the
// mapping object around so the OS doesn't reclaim the pages out from
// under the returned slices.
type dirSource struct {
	root string
}

func (d dirSource) path(name string) string { return filepath.Join(d.root, name) }

func (d dirSource) readMappable(name string) (blob, error) {
	f, err := os.Open(d.path(name))
	if err != nil {
		return blob{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return blob{}, err
	}
	if info.Size() == 0 {
		return blob{data: nil, closer: func() error { return nil }}, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		data, rerr := io.ReadAll(f)
		if rerr != nil {
			return blob{}, rerr
		}
		return blob{data: data, closer: func() error { return nil }}, nil
	}
	return blob{data: []byte(m), closer: func() error { return m.Unmap() }}, nil
}

func (d dirSource) readAll(name string) ([]byte, error) {
	return os.ReadFile(d.path(name))
}

// fsSource reads from an arbitrary fs.FS (e.g. an embed.FS registered
// under an "embedded://<name>" URI). It never mmaps — fs.FS gives no
// guarantee of an underlying real file descriptor — and always returns
// heap copies, per the design notes' fallback guidance.
type fsSource struct {
	fsys fs.FS
}

func (s fsSource) readMappable(name string) (blob, error) {
	data, err := s.readAll(name)
	if err != nil {
		return blob{}, err
	}
	return blob{data: data, closer: func() error { return nil }}, nil
}

func (s fsSource) readAll(name string) ([]byte, error) {
	f, err := s.fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

var (
	embeddedMu  sync.RWMutex
	embeddedFSs = make(map[string]fs.FS)
)

// RegisterEmbedded makes fsys available under the "embedded://name" URI
// accepted by Load. Intended for language-specific dictionary crates
// that embed their compiled dictionary with a Go embed.FS and want to
// hand it to Load without writing it out to disk first.
func RegisterEmbedded(name string, fsys fs.FS) {
	embeddedMu.Lock()
	defer embeddedMu.Unlock()
	embeddedFSs[name] = fsys
}

// resolveSource parses a dictionary URI: "embedded://<name>" for
// in-process bytes linked at build time, or a plain filesystem path to
// a directory containing the dictionary files.
func resolveSource(uri string) (source, error) {
	if name, ok := strings.CutPrefix(uri, "embedded://"); ok {
		embeddedMu.RLock()
		fsys, ok := embeddedFSs[name]
		embeddedMu.RUnlock()
		if !ok {
			return nil, loadErr("resolve source", ErrNotFound)
		}
		return fsSource{fsys: fsys}, nil
	}
	info, err := os.Stat(uri)
	if err != nil {
		return nil, loadErr("resolve source", err)
	}
	if !info.IsDir() {
		return nil, loadErr("resolve source", ErrNotFound)
	}
	return dirSource{root: uri}, nil
}
