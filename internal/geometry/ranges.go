package geometry

// RangeCursor enumerates the globalChunkNum ranges a Window intersects, one
// contiguous run at a time. It is the concrete form of the "small DimCursor
// value" spec.md §9's design note calls for: the outer (slower-than-
// boundary) chunk coordinate is the only mutable state, advanced as a
// mixed-radix counter bounded by the request window rather than by the
// grid's full extent.
type RangeCursor struct {
	w       *Window
	coord   []int64
	started bool
	done    bool
}

// NewRangeCursor builds a cursor over w, positioned before its first run.
func NewRangeCursor(w *Window) *RangeCursor {
	return &RangeCursor{w: w, coord: w.outerCoord()}
}

// Next advances to the next contiguous [lo, hi) run of globalChunkNum
// values intersecting the request, or reports ok=false once every run has
// been produced. Every run Next returns has width w.LinearReadCount().
func (c *RangeCursor) Next() (lo, hi int64, ok bool) {
	if c.done {
		return 0, 0, false
	}
	if c.started {
		if !c.w.advanceOuter(c.coord) {
			c.done = true

			return 0, 0, false
		}
	}
	c.started = true

	lo = c.w.grid.GlobalChunkNum(c.coord)
	hi = lo + c.w.linearReadCount

	return lo, hi, true
}

// FirstChunkRange returns the first contiguous [lo, hi) run of
// globalChunkNum values intersecting req within grid, along with the
// cursor positioned to produce the remaining runs via NextChunkRange.
// ok is false only when req selects zero chunks, which cannot happen for a
// well-formed non-empty request.
func FirstChunkRange(grid *Grid, req Request) (lo, hi int64, cursor *RangeCursor, ok bool) {
	w := NewWindow(grid, req)
	cursor = NewRangeCursor(w)
	lo, hi, ok = cursor.Next()

	return lo, hi, cursor, ok
}

// NextChunkRange advances cursor and returns the next contiguous [lo, hi)
// run, or ok=false once the request's chunks have been fully enumerated.
func NextChunkRange(cursor *RangeCursor) (lo, hi int64, ok bool) {
	return cursor.Next()
}
