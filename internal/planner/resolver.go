package planner

import (
	"fmt"

	"github.com/gridfile/chunkcube/internal/hash"
	"github.com/gridfile/chunkcube/metadata"

	"github.com/gridfile/chunkcube/errs"
)

// IndexLookup is one already-executed LUT read: the byte range it covered
// (relative to LUTStart) and the bytes returned.
type IndexLookup struct {
	Range ByteRange
	Data  []byte
}

// IndexResolver answers "what is chunk k's compressed byte range" (relative
// to DataStart) from a set of already-executed LUT reads, without copying
// or re-assembling them into one buffer.
type IndexResolver struct {
	layout  metadata.LUTLayout
	lookups []IndexLookup
}

// NewIndexResolver builds a resolver over lookups, the results of executing
// the ByteRanges PlanIndexReads returned.
func NewIndexResolver(layout metadata.LUTLayout, lookups []IndexLookup) *IndexResolver {
	return &IndexResolver{layout: layout, lookups: lookups}
}

// ChunkRange returns chunk k's [start, end) byte range within the data
// region. It returns a plain error if no executed lookup covers both LUT
// entry k and, when k > 0, entry k-1 — which indicates a planner/resolver
// mismatch, not a file corruption. A covered entry pair that yields a
// negative or non-monotonic range returns a *errs.CorruptLUTError.
func (r *IndexResolver) ChunkRange(k int64) (start, end int64, err error) {
	entryStart := k * metadata.LUTEntrySize
	if k > 0 {
		entryStart = (k - 1) * metadata.LUTEntrySize
	}
	entryEnd := k*metadata.LUTEntrySize + metadata.LUTEntrySize

	for _, lk := range r.lookups {
		if lk.Range.Offset <= entryStart && entryEnd <= lk.Range.End() {
			start, end = r.layout.ChunkRange(lk.Data, lk.Range.Offset, k)
			if start < 0 || end < start {
				return 0, 0, &errs.CorruptLUTError{
					Offset:      lk.Range.Offset,
					Length:      lk.Range.Length,
					Fingerprint: hash.Sum64(lk.Data),
					Reason:      "non-monotonic or negative chunk range",
				}
			}

			return start, end, nil
		}
	}

	return 0, 0, fmt.Errorf("planner: no executed LUT read covers chunk %d's entries", k)
}
