// Package planner coalesces the many small byte ranges a chunk-space read
// touches — LUT entries, compressed chunk payloads — into the fewest
// ReadAt calls that respect a merge threshold and a maximum read size, per
// spec.md §4.2 and §4.3.
package planner

// ByteRange is a half-open byte interval [Offset, Offset+Length).
type ByteRange struct {
	Offset int64
	Length int64
}

// End returns the range's exclusive end offset.
func (r ByteRange) End() int64 { return r.Offset + r.Length }

// Options tunes how aggressively adjacent byte ranges are merged.
type Options struct {
	// MergeThreshold (io_size_merge) is the largest gap, in bytes, between
	// two ranges that still get merged into a single read.
	MergeThreshold int64
	// MaxSize (io_size_max) bounds the length of any single merged read;
	// merging never produces a range longer than this.
	MaxSize int64
}

// DefaultOptions returns the planner's default thresholds.
func DefaultOptions() Options {
	return Options{MergeThreshold: 512, MaxSize: 65536}
}

// Coalesce merges an ascending, non-overlapping sequence of byte ranges
// into the fewest ranges such that no merged range exceeds opts.MaxSize and
// any two ranges separated by no more than opts.MergeThreshold bytes are
// combined. Coalesce never splits an input range — a caller whose raw
// ranges can individually exceed opts.MaxSize (e.g. a geometry run spanning
// many chunks) must split those first, at boundaries Coalesce's callers can
// still resolve a single read against.
func Coalesce(ranges []ByteRange, opts Options) []ByteRange {
	if len(ranges) == 0 {
		return nil
	}

	out := make([]ByteRange, 0, len(ranges))
	cur := ranges[0]
	for _, r := range ranges[1:] {
		gap := r.Offset - cur.End()
		mergedLen := r.End() - cur.Offset
		if gap <= opts.MergeThreshold && mergedLen <= opts.MaxSize {
			cur.Length = mergedLen

			continue
		}
		out = append(out, cur)
		cur = r
	}
	out = append(out, cur)

	return out
}
