package planner

import "fmt"

// DataLookup is one already-executed chunk-data read: the byte range it
// covered (relative to Metadata.DataStart) and the bytes returned.
type DataLookup struct {
	Range ByteRange
	Data  []byte
}

// Slice returns the bytes of lookups starting at start (relative to
// Metadata.DataStart), as a subslice of whichever already-executed read
// covers [start, end). The returned slice may extend past end: further
// chunks merged into the same coalesced read follow immediately, which is
// exactly what the self-delimiting Decoder contract expects.
func Slice(lookups []DataLookup, start, end int64) ([]byte, error) {
	for _, lk := range lookups {
		if lk.Range.Offset <= start && end <= lk.Range.End() {
			local := start - lk.Range.Offset

			return lk.Data[local:], nil
		}
	}

	return nil, fmt.Errorf("planner: no executed data read covers byte range [%d, %d)", start, end)
}
