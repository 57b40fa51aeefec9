package geometry

// Request describes a read in array-element space: the half-open interval
// [Offset[i], Offset[i]+Count[i]) along every dimension. It carries no
// information about where the result lands in the caller's output cube —
// that placement is the decode package's concern, not chunk geometry's.
type Request struct {
	Offset []int64
	Count  []int64
}

// Window precomputes, for one Grid and Request pair, everything the chunk
// enumeration (FirstChunkRange/NextChunkRange) and per-chunk intersection
// need: which chunk coordinates the request touches along each dimension,
// and whether that dimension is covered in full.
type Window struct {
	grid *Grid
	req  Request

	// lo[i], hi[i] bound the half-open range of chunk coordinates dimension
	// i contributes: [lo[i], hi[i]).
	lo, hi []int64
	// full[i] is true when [lo[i], hi[i]) spans all of [0, nChunks[i]), i.e.
	// the request reads dimension i in its entirety.
	full []bool
	// boundaryDim is the fastest-varying dimension that is not fully
	// covered, or -1 if every dimension is fully covered (the request spans
	// the whole array).
	boundaryDim int
	// linearReadCount is the number of consecutive globalChunkNum values in
	// every run this Window enumerates (spec.md §4.1): the product of
	// nChunks[i] for every dimension faster than boundaryDim (all fully
	// covered by construction) times the boundary dimension's own window
	// width, or TotalChunks when boundaryDim is -1.
	linearReadCount int64
}

// NewWindow builds a Window for req against grid. req must have the same
// rank as grid and lie within grid's Dims; callers are expected to have
// bounds-checked the request already (decode.Session.Read does this before
// planning).
func NewWindow(grid *Grid, req Request) *Window {
	n := grid.NDims()
	w := &Window{
		grid: grid,
		req:  req,
		lo:   make([]int64, n),
		hi:   make([]int64, n),
		full: make([]bool, n),
	}
	for i := 0; i < n; i++ {
		w.lo[i] = req.Offset[i] / grid.Chunks[i]
		w.hi[i] = ceilDiv(req.Offset[i]+req.Count[i], grid.Chunks[i])
		w.full[i] = w.lo[i] == 0 && w.hi[i] == grid.nChunks[i]
	}

	w.boundaryDim = -1
	for i := n - 1; i >= 0; i-- {
		if !w.full[i] {
			w.boundaryDim = i
			break
		}
	}

	if w.boundaryDim == -1 {
		w.linearReadCount = grid.TotalChunks()
	} else {
		count := w.hi[w.boundaryDim] - w.lo[w.boundaryDim]
		for i := w.boundaryDim + 1; i < n; i++ {
			count *= grid.nChunks[i]
		}
		w.linearReadCount = count
	}

	return w
}

// LinearReadCount returns the constant run length every chunk range this
// Window enumerates shares (spec.md §4.1/§4.3).
func (w *Window) LinearReadCount() int64 { return w.linearReadCount }

// outerCoord returns the request-window chunk coordinate for every
// dimension slower than boundaryDim; dimensions from boundaryDim onward are
// always set to their window's first element within a single run.
func (w *Window) outerCoord() []int64 {
	coord := make([]int64, w.grid.NDims())
	for i := range coord {
		coord[i] = w.lo[i]
	}

	return coord
}

// advanceOuter increments the mixed-radix counter formed by dimensions
// [0, boundaryDim) — each ranging over [lo[i], hi[i]) — by one. It reports
// false once every combination has been produced.
func (w *Window) advanceOuter(coord []int64) bool {
	for i := w.boundaryDim - 1; i >= 0; i-- {
		coord[i]++
		if coord[i] < w.hi[i] {
			return true
		}
		coord[i] = w.lo[i]
	}

	return false
}
