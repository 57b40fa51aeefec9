package planner

import (
	"github.com/gridfile/chunkcube/internal/geometry"
	"github.com/gridfile/chunkcube/metadata"
)

// PlanIndexReads returns the coalesced LUT-region byte reads (relative to
// Metadata.LUTStart) needed to resolve every chunk geometry.FirstChunkRange
// / geometry.NextChunkRange enumerates for req, per spec.md §4.2.
func PlanIndexReads(grid *geometry.Grid, req geometry.Request, layout metadata.LUTLayout, opts Options) []ByteRange {
	var raw []ByteRange

	lo, hi, cursor, ok := geometry.FirstChunkRange(grid, req)
	for ok {
		start := layout.FirstSlotOffset(lo)
		end := hi * metadata.LUTEntrySize
		raw = append(raw, ByteRange{Offset: start, Length: end - start})
		lo, hi, ok = geometry.NextChunkRange(cursor)
	}

	return Coalesce(raw, opts)
}
