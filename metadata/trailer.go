package metadata

import (
	"fmt"

	"github.com/gridfile/chunkcube/errs"
	"github.com/gridfile/chunkcube/format"
)

// trailerFixedSize is the number of bytes occupied by the lutStart and
// nDims fields at the end of a version-3 file, per spec.md §6.
const trailerFixedSize = 16

// ParseTrailer reconstructs a Metadata from the last bytes of a version-3
// file. tail must be the file's final trailerFixedSize+2*nDims*8 bytes,
// where nDims is read out of the trailer itself; callers that don't know
// nDims up front should pass the whole file tail (or at least its last few
// KiB) and rely on len(tail) to bound the dims/chunks slices.
//
// This only implements spec.md §6's trailer arithmetic; it does not parse
// the rest of the file header (magic bytes, attributes, etc.) — that's the
// out-of-scope header/trailer parser spec.md §1 names as an external
// collaborator.
func ParseTrailer(tail []byte, scaleFactor float32, compression format.CompressionKind) (*Metadata, error) {
	if len(tail) < trailerFixedSize {
		return nil, fmt.Errorf("%w: trailer shorter than %d bytes", errs.ErrBadMetadata, trailerFixedSize)
	}

	end := len(tail)
	lutStart := int64(lutEndian.Uint64(tail[end-8 : end]))
	nDims := int64(lutEndian.Uint64(tail[end-16 : end-8]))

	if nDims <= 0 {
		return nil, fmt.Errorf("%w: nDims=%d", errs.ErrBadMetadata, nDims)
	}
	if lutStart < 0 {
		return nil, fmt.Errorf("%w: negative lutStart %d", errs.ErrBadMetadata, lutStart)
	}

	dimsBlockSize := nDims * 8
	needed := trailerFixedSize + 2*dimsBlockSize
	if int64(len(tail)) < needed {
		return nil, fmt.Errorf("%w: trailer too short for nDims=%d", errs.ErrBadMetadata, nDims)
	}

	chunksStart := end - trailerFixedSize - int(dimsBlockSize)
	dimsStart := chunksStart - int(dimsBlockSize)

	dims := make([]int64, nDims)
	chunks := make([]int64, nDims)
	for i := int64(0); i < nDims; i++ {
		dims[i] = int64(lutEndian.Uint64(tail[dimsStart+int(i)*8 : dimsStart+int(i)*8+8]))
		chunks[i] = int64(lutEndian.Uint64(tail[chunksStart+int(i)*8 : chunksStart+int(i)*8+8]))
	}

	m := &Metadata{
		Dims:        dims,
		Chunks:      chunks,
		ScaleFactor: scaleFactor,
		Compression: compression,
		LUTStart:    lutStart,
		DataStart:   3, // version 3: short magic/version prefix, see SPEC_FULL.md.
		Version:     format.Version3,
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// ParseVersion2 builds a Metadata for the version-2 layout, where lutStart
// and dataStart are derived from the (externally parsed) header length and
// chunk count rather than from a trailer.
func ParseVersion2(dims, chunks []int64, scaleFactor float32, compression format.CompressionKind, headerLength int64) (*Metadata, error) {
	if len(dims) == 0 || len(dims) != len(chunks) {
		return nil, fmt.Errorf("%w: dims/chunks rank mismatch", errs.ErrBadMetadata)
	}

	m := &Metadata{
		Dims:        append([]int64(nil), dims...),
		Chunks:      append([]int64(nil), chunks...),
		ScaleFactor: scaleFactor,
		Compression: compression,
		LUTStart:    headerLength,
		Version:     format.Version2,
	}
	m.DataStart = headerLength + m.TotalChunks()*LUTEntrySize

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}
