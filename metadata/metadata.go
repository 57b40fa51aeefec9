// Package metadata holds the immutable per-file description a chunkcube
// Reader is opened against: dimensions, chunk shape, compression kind, scale
// factor, and the byte offsets of the LUT and data regions.
//
// Parsing the full file header is out of scope for this package (spec.md
// §1); ParseTrailer only implements the trailer arithmetic from spec.md §6
// needed to recover a Metadata value.
package metadata

import (
	"fmt"
	"math"

	"github.com/gridfile/chunkcube/errs"
	"github.com/gridfile/chunkcube/format"
)

// Metadata describes the logical shape and on-disk layout of one array.
type Metadata struct {
	// Dims is the logical extent of each dimension, slowest-varying first.
	Dims []int64
	// Chunks is the chunk extent along each dimension; the last chunk along
	// any dimension may be shorter than Chunks[i] when Dims[i] doesn't
	// divide evenly.
	Chunks []int64
	// ScaleFactor is the finite positive scale applied by the unscale
	// formula selected by Compression.
	ScaleFactor float32
	// Compression selects the unscale formula and the codec/delta pair.
	Compression format.CompressionKind
	// LUTStart is the byte offset of the lookup table within the source.
	LUTStart int64
	// DataStart is the byte offset of the first chunk's compressed bytes.
	DataStart int64
	// Version identifies which LUT layout rule (§6) applies.
	Version format.Version
}

// NDims returns the array's rank.
func (m *Metadata) NDims() int { return len(m.Dims) }

// NChunks returns ceil(Dims[i] / Chunks[i]) for every dimension.
func (m *Metadata) NChunks() []int64 {
	out := make([]int64, len(m.Dims))
	for i := range m.Dims {
		out[i] = ceilDiv(m.Dims[i], m.Chunks[i])
	}

	return out
}

// TotalChunks returns the product of NChunks, i.e. the number of distinct
// globalChunkNum values.
func (m *Metadata) TotalChunks() int64 {
	total := int64(1)
	for _, n := range m.NChunks() {
		total *= n
	}

	return total
}

// ChunkElementCount returns the product of Chunks, the element count of a
// full (non-boundary) chunk.
func (m *Metadata) ChunkElementCount() int64 {
	total := int64(1)
	for _, c := range m.Chunks {
		total *= c
	}

	return total
}

func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}

// Validate checks the invariants spec.md §3 requires of a Metadata value
// before it is used to plan or decode reads.
func (m *Metadata) Validate() error {
	if len(m.Dims) == 0 {
		return fmt.Errorf("%w: zero dimensionality", errs.ErrBadMetadata)
	}
	if len(m.Chunks) != len(m.Dims) {
		return fmt.Errorf("%w: chunks rank %d != dims rank %d", errs.ErrBadMetadata, len(m.Chunks), len(m.Dims))
	}
	for i, d := range m.Dims {
		if d <= 0 {
			return fmt.Errorf("%w: dims[%d]=%d must be positive", errs.ErrBadMetadata, i, d)
		}
		if m.Chunks[i] <= 0 {
			return fmt.Errorf("%w: chunks[%d]=%d must be positive", errs.ErrBadMetadata, i, m.Chunks[i])
		}
	}
	if m.ScaleFactor <= 0 || math.IsNaN(float64(m.ScaleFactor)) || math.IsInf(float64(m.ScaleFactor), 0) {
		return fmt.Errorf("%w: scalefactor must be finite and positive", errs.ErrBadMetadata)
	}
	if m.LUTStart < 0 || m.DataStart < 0 {
		return fmt.Errorf("%w: negative offset (lutStart=%d, dataStart=%d)", errs.ErrBadMetadata, m.LUTStart, m.DataStart)
	}

	return nil
}
