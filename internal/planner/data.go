package planner

import "github.com/gridfile/chunkcube/internal/geometry"

// ChunkRangeFunc resolves chunk k's compressed byte range within the data
// region (relative to Metadata.DataStart).
type ChunkRangeFunc func(k int64) (start, end int64, err error)

// PlanDataReads returns the coalesced data-region byte reads needed to
// cover every chunk geometry.FirstChunkRange/NextChunkRange enumerates for
// req, per spec.md §4.3. resolve must resolve chunks in storage order,
// where chunk k+1's bytes begin exactly where chunk k's end — true of every
// LUT layout this package supports — so each geometry run collapses to the
// fewest [start, end) spans that respect opts.MaxSize before coalescing.
func PlanDataReads(grid *geometry.Grid, req geometry.Request, resolve ChunkRangeFunc, opts Options) ([]ByteRange, error) {
	var raw []ByteRange

	lo, hi, cursor, ok := geometry.FirstChunkRange(grid, req)
	for ok {
		runRanges, err := splitRun(lo, hi, resolve, opts.MaxSize)
		if err != nil {
			return nil, err
		}
		raw = append(raw, runRanges...)
		lo, hi, ok = geometry.NextChunkRange(cursor)
	}

	return Coalesce(raw, opts), nil
}

// splitRun resolves chunks [lo, hi) and collapses consecutive chunks into
// the fewest ByteRanges such that no returned range's length exceeds
// maxSize, unless a single chunk's own compressed span already does.
// maxSize <= 0 disables splitting: the whole run collapses to one range.
// Splits only ever land on a chunk boundary, so a later Slice lookup always
// finds one ByteRange that fully covers any single chunk.
func splitRun(lo, hi int64, resolve ChunkRangeFunc, maxSize int64) ([]ByteRange, error) {
	segStart, end, err := resolve(lo)
	if err != nil {
		return nil, err
	}

	var out []ByteRange
	for k := lo + 1; k < hi; k++ {
		_, chunkEnd, err := resolve(k)
		if err != nil {
			return nil, err
		}
		if maxSize > 0 && chunkEnd-segStart > maxSize {
			out = append(out, ByteRange{Offset: segStart, Length: end - segStart})
			segStart = end
		}
		end = chunkEnd
	}
	out = append(out, ByteRange{Offset: segStart, Length: end - segStart})

	return out, nil
}
