package metadata

import (
	"github.com/gridfile/chunkcube/endian"
	"github.com/gridfile/chunkcube/format"
)

// LUTEntrySize is the byte width of one LUT slot: a 64-bit little-endian
// cumulative byte offset into the data region.
const LUTEntrySize = 8

// LUTLayout answers "where does chunk k start and end" uniformly across the
// on-disk trailer versions, per the design note in spec.md §9: rather than
// threading a version integer through the planners, callers resolve one
// concrete LUTLayout at Open time and the planners only ever see this
// interface.
//
// Both on-disk versions store one 8-byte entry per chunk, entry k holding
// the end byte offset of chunk k's compressed bytes (chunk k's start is
// entry k-1, or the implicit zero for k == 0); they differ only in how
// DataStart is computed, which the (out-of-scope) header/trailer parser has
// already resolved into Metadata by the time a LUTLayout is built. See the
// Open Question resolution in SPEC_FULL.md/DESIGN.md for why this spec
// deliberately reads both versions' LUT the same way.
type LUTLayout interface {
	// DataStart returns the byte offset of chunk 0's compressed bytes.
	DataStart() int64

	// FirstSlotOffset returns the byte offset, relative to the start of the
	// LUT region, at which a contiguous read covering chunk range [lo, hi)
	// must begin so that it includes both entry lo-1 (chunk lo's start,
	// when lo > 0) and entry hi-1 (the range's last chunk's end) in one
	// span, per spec.md §4.2's offset convention.
	FirstSlotOffset(lo int64) int64

	// ChunkRange returns chunk k's [start, end) byte range within the data
	// region. lutBytes must have been read starting at readOffset (relative
	// to the LUT region start) and must cover entry k, and entry k-1 when
	// k > 0.
	ChunkRange(lutBytes []byte, readOffset int64, k int64) (start, end int64)
}

// sequentialLayout implements LUTLayout for both versions: they share the
// same "entry k is chunk k's end" arithmetic and only disagree on
// DataStart, which is carried per-instance.
type sequentialLayout struct{ dataStart int64 }

// DataStart implements LUTLayout.
func (l sequentialLayout) DataStart() int64 { return l.dataStart }

// FirstSlotOffset implements LUTLayout.
func (sequentialLayout) FirstSlotOffset(lo int64) int64 {
	if lo == 0 {
		return 0
	}

	return (lo - 1) * LUTEntrySize
}

// ChunkRange implements LUTLayout.
func (sequentialLayout) ChunkRange(lutBytes []byte, readOffset int64, k int64) (int64, int64) {
	end := readEntry(lutBytes, k*LUTEntrySize-readOffset)

	if k == 0 {
		return 0, end
	}

	start := readEntry(lutBytes, (k-1)*LUTEntrySize-readOffset)

	return start, end
}

// Version2Layout implements the version-2 trailer rule (spec.md §6):
// lutStart = headerLength, dataStart = headerLength + nChunks*8.
type Version2Layout struct{ sequentialLayout }

// NewVersion2Layout builds a Version2Layout for the given dataStart.
func NewVersion2Layout(dataStart int64) Version2Layout {
	return Version2Layout{sequentialLayout{dataStart: dataStart}}
}

// Version3Layout implements the version-3 trailer rule (spec.md §6):
// dataStart is fixed at 3 (a short magic/version prefix).
type Version3Layout struct{ sequentialLayout }

// NewVersion3Layout builds a Version3Layout for the given dataStart.
func NewVersion3Layout(dataStart int64) Version3Layout {
	return Version3Layout{sequentialLayout{dataStart: dataStart}}
}

// lutEndian is the byte order every on-disk LUT entry and trailer field
// uses. Threaded through endian.EndianEngine rather than encoding/binary
// directly so the same engine abstraction covers both the trailer and the
// LUT, and a big-endian source needs only this one swap.
var lutEndian = endian.GetLittleEndianEngine()

// readEntry decodes one LUT entry from lutBytes at byteOffset, or returns
// -1 if byteOffset falls outside lutBytes (the caller is responsible for
// treating that as corruption, not as a valid offset).
func readEntry(lutBytes []byte, byteOffset int64) int64 {
	if byteOffset < 0 || byteOffset+LUTEntrySize > int64(len(lutBytes)) {
		return -1
	}

	return int64(lutEndian.Uint64(lutBytes[byteOffset : byteOffset+LUTEntrySize]))
}

// LayoutForVersion returns the concrete LUTLayout for v.
func LayoutForVersion(v format.Version, dataStart int64) LUTLayout {
	if v == format.Version2 {
		return NewVersion2Layout(dataStart)
	}

	return NewVersion3Layout(dataStart)
}
