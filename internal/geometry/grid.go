// Package geometry implements the pure, I/O-free arithmetic over chunk
// space that the read planner and per-chunk decoder are both built on:
// chunk numbering, per-chunk element extents, and the enumeration of which
// chunks intersect an arbitrary read request.
//
// Nothing here touches a byte source or can fail at runtime other than a
// caller passing a malformed Grid or Request. RangeCursor is the only
// mutable state: NextChunkRange advances the cursor it is given.
package geometry

// Grid is the chunk-space description derived from an array's dims and
// chunk shape. Chunks are numbered so that the last dimension is the
// fastest-varying (spec.md §3): globalChunkNum's decomposition into
// per-dimension coordinates uses dimension i varying faster than i-1.
type Grid struct {
	Dims   []int64
	Chunks []int64

	nChunks []int64
	// stride[i] is the number of distinct globalChunkNum values obtained by
	// holding dims [0, i] fixed and varying dims (i, N), i.e. the flat-index
	// stride contributed by one unit of coordinate i.
	stride []int64
}

// NewGrid builds a Grid from dims and chunks. Both must have the same
// length and contain only positive values; callers (metadata.Metadata.
// Validate) are expected to have already checked this.
func NewGrid(dims, chunks []int64) *Grid {
	n := len(dims)
	g := &Grid{
		Dims:    dims,
		Chunks:  chunks,
		nChunks: make([]int64, n),
		stride:  make([]int64, n),
	}
	for i := 0; i < n; i++ {
		g.nChunks[i] = ceilDiv(dims[i], chunks[i])
	}
	stride := int64(1)
	for i := n - 1; i >= 0; i-- {
		g.stride[i] = stride
		stride *= g.nChunks[i]
	}

	return g
}

func ceilDiv(a, b int64) int64 { return (a + b - 1) / b }

// NDims returns the grid's rank.
func (g *Grid) NDims() int { return len(g.Dims) }

// NChunks returns ceil(Dims[i] / Chunks[i]) for dimension i.
func (g *Grid) NChunks(i int) int64 { return g.nChunks[i] }

// Stride returns the flat globalChunkNum stride contributed by dimension i.
func (g *Grid) Stride(i int) int64 { return g.stride[i] }

// TotalChunks returns the number of distinct globalChunkNum values, i.e.
// the product of NChunks over every dimension.
func (g *Grid) TotalChunks() int64 {
	if g.NDims() == 0 {
		return 0
	}

	return g.nChunks[0] * g.stride[0]
}

// ChunkCoord decomposes globalChunkNum into per-dimension chunk
// coordinates: coord[i] = (globalChunkNum / stride[i]) mod nChunks[i].
func (g *Grid) ChunkCoord(globalChunkNum int64) []int64 {
	coord := make([]int64, g.NDims())
	for i := range coord {
		coord[i] = (globalChunkNum / g.stride[i]) % g.nChunks[i]
	}

	return coord
}

// GlobalChunkNum flattens a per-dimension chunk coordinate back into a
// globalChunkNum. It is the inverse of ChunkCoord.
func (g *Grid) GlobalChunkNum(coord []int64) int64 {
	var n int64
	for i, c := range coord {
		n += c * g.stride[i]
	}

	return n
}

// ChunkOrigin returns the global coordinate of chunk coord's first element
// along every dimension: coord[i] * Chunks[i].
func (g *Grid) ChunkOrigin(coord []int64) []int64 {
	origin := make([]int64, len(coord))
	for i, c := range coord {
		origin[i] = c * g.Chunks[i]
	}

	return origin
}

// ChunkLength returns chunk coord's actual element extent along every
// dimension, clamped at the array boundary: min((c[i]+1)*Chunks[i],
// Dims[i]) - c[i]*Chunks[i]. Only the last chunk along any dimension can be
// shorter than Chunks[i].
func (g *Grid) ChunkLength(coord []int64) []int64 {
	length := make([]int64, len(coord))
	for i, c := range coord {
		start := c * g.Chunks[i]
		end := start + g.Chunks[i]
		if end > g.Dims[i] {
			end = g.Dims[i]
		}
		length[i] = end - start
	}

	return length
}

// ChunkElementCount returns the product of ChunkLength(coord), the number
// of elements actually stored in this chunk (boundary chunks store fewer
// than the nominal Chunks product).
func (g *Grid) ChunkElementCount(coord []int64) int64 {
	total := int64(1)
	for _, l := range g.ChunkLength(coord) {
		total *= l
	}

	return total
}
