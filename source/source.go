// Package source defines the ByteSource collaborator chunkcube reads
// through, plus two small implementations. The byte-source abstraction is
// explicitly out of scope for THE CORE (spec.md §1): this package is
// intentionally thin, stdlib-only plumbing that just has to expose
// contiguous byte ranges given an offset and a length.
package source

import (
	"fmt"
	"io"
)

// ByteSource is a fixed-length, random-access view over a file's bytes.
//
// Implementations must be safe for concurrent ReadAt calls with distinct
// byte ranges (spec.md §5: many decode sessions may share one ByteSource as
// long as each owns its own scratch buffers).
type ByteSource interface {
	// ReadAt reads exactly len(p) bytes starting at off, or returns an
	// error. It has the same contract as io.ReaderAt.ReadAt.
	ReadAt(p []byte, off int64) (int, error)

	// Size returns the total byte length of the source.
	Size() int64
}

// ReaderAtSource adapts an io.ReaderAt plus a known size into a ByteSource.
// This is the typical production implementation: r is usually an *os.File.
type ReaderAtSource struct {
	r    io.ReaderAt
	size int64
}

var _ ByteSource = (*ReaderAtSource)(nil)

// NewReaderAtSource wraps r, which must expose size bytes.
func NewReaderAtSource(r io.ReaderAt, size int64) *ReaderAtSource {
	return &ReaderAtSource{r: r, size: size}
}

// ReadAt implements ByteSource.
func (s *ReaderAtSource) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(p)) > s.size {
		return 0, fmt.Errorf("source: read [%d, %d) exceeds size %d", off, off+int64(len(p)), s.size)
	}

	return io.ReadFull(io.NewSectionReader(s.r, off, int64(len(p))), p)
}

// Size implements ByteSource.
func (s *ReaderAtSource) Size() int64 { return s.size }

// MemorySource is an in-memory ByteSource, used by tests and by callers who
// have already loaded (or memory-mapped) the whole file into a []byte. A
// memory-mapped caller is responsible for keeping the mapping alive for the
// lifetime of every Reader built on top of it (spec.md §5).
type MemorySource struct {
	data []byte
}

var _ ByteSource = MemorySource{}

// NewMemorySource wraps data directly; it is not copied.
func NewMemorySource(data []byte) MemorySource {
	return MemorySource{data: data}
}

// ReadAt implements ByteSource.
func (s MemorySource) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(p)) > int64(len(s.data)) {
		return 0, fmt.Errorf("source: read [%d, %d) exceeds size %d", off, off+int64(len(p)), len(s.data))
	}
	n := copy(p, s.data[off:off+int64(len(p))])

	return n, nil
}

// Size implements ByteSource.
func (s MemorySource) Size() int64 { return int64(len(s.data)) }
