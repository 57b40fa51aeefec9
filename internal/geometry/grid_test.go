package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridChunkCoordRoundTrip(t *testing.T) {
	g := NewGrid([]int64{10, 10, 10}, []int64{4, 4, 4})
	require.EqualValues(t, 27, g.TotalChunks()) // ceil(10/4)=3 per dim, 3^3

	for n := int64(0); n < g.TotalChunks(); n++ {
		coord := g.ChunkCoord(n)
		assert.Equal(t, n, g.GlobalChunkNum(coord))
	}
}

func TestGridLastDimensionFastest(t *testing.T) {
	g := NewGrid([]int64{8, 8}, []int64{4, 4})
	// coord (0,0)->0, (0,1)->1, (1,0)->2, (1,1)->3: last dim varies fastest.
	assert.Equal(t, []int64{0, 0}, g.ChunkCoord(0))
	assert.Equal(t, []int64{0, 1}, g.ChunkCoord(1))
	assert.Equal(t, []int64{1, 0}, g.ChunkCoord(2))
	assert.Equal(t, []int64{1, 1}, g.ChunkCoord(3))
}

func TestGridChunkLengthBoundary(t *testing.T) {
	g := NewGrid([]int64{10}, []int64{4})
	assert.Equal(t, []int64{4}, g.ChunkLength([]int64{0}))
	assert.Equal(t, []int64{4}, g.ChunkLength([]int64{1}))
	assert.Equal(t, []int64{2}, g.ChunkLength([]int64{2})) // 10 - 2*4 = 2
}

// TestTilingProperty is testable property 1: a read over the full array
// visits every globalChunkNum exactly once.
func TestTilingProperty(t *testing.T) {
	g := NewGrid([]int64{10, 10, 10}, []int64{4, 4, 4})
	req := Request{Offset: []int64{0, 0, 0}, Count: []int64{10, 10, 10}}

	seen := make(map[int64]bool)
	lo, hi, cursor, ok := FirstChunkRange(g, req)
	require.True(t, ok)
	for {
		for n := lo; n < hi; n++ {
			require.False(t, seen[n], "chunk %d visited twice", n)
			seen[n] = true
		}
		lo, hi, ok = NextChunkRange(cursor)
		if !ok {
			break
		}
	}
	assert.Len(t, seen, int(g.TotalChunks()))
}

// TestCoverageProperty is testable property 2: the set of chunks an S2-style
// partial read visits exactly equals those whose element range intersects
// the request, no more and no fewer.
func TestCoverageProperty(t *testing.T) {
	g := NewGrid([]int64{4, 4}, []int64{2, 2})
	req := Request{Offset: []int64{1, 1}, Count: []int64{2, 2}} // [1..3, 1..3]

	visited := collectRuns(t, g, req)
	assert.ElementsMatch(t, []int64{0, 1, 2, 3}, visited) // all 4 chunks touch [1..3,1..3]
}

func TestCoverageDoesNotOverVisit(t *testing.T) {
	g := NewGrid([]int64{10, 10, 10}, []int64{4, 4, 4})
	req := Request{Offset: []int64{0, 0, 3}, Count: []int64{10, 10, 4}} // [0..10,0..10,3..7]

	visited := collectRuns(t, g, req)
	for _, n := range visited {
		coord := g.ChunkCoord(n)
		inter := Intersect(g, req, n)
		_ = coord
		for _, dim := range inter {
			assert.False(t, dim.NoOverlap)
		}
	}
}

func TestLinearReadCountGrowsWithFullOuterDims(t *testing.T) {
	g := NewGrid([]int64{8, 8, 8}, []int64{2, 2, 2}) // nChunks = [4,4,4]

	// Full read: boundaryDim=-1, run = TotalChunks.
	full := NewWindow(g, Request{Offset: []int64{0, 0, 0}, Count: []int64{8, 8, 8}})
	assert.EqualValues(t, 64, full.LinearReadCount())

	// Innermost dim partial, outer dims full: run = w[2] (fastest dim only,
	// since dims faster than it... there are none; boundaryDim=2).
	partialInner := NewWindow(g, Request{Offset: []int64{0, 0, 0}, Count: []int64{8, 8, 3}})
	assert.EqualValues(t, 2, partialInner.LinearReadCount()) // chunks [0,2) along dim2

	// Outermost dim partial, inner dims full: run = w[0]*nChunks[1]*nChunks[2].
	partialOuter := NewWindow(g, Request{Offset: []int64{0, 0, 0}, Count: []int64{3, 8, 8}})
	assert.EqualValues(t, 2*4*4, partialOuter.LinearReadCount())
}

func collectRuns(t *testing.T, g *Grid, req Request) []int64 {
	t.Helper()
	var out []int64
	lo, hi, cursor, ok := FirstChunkRange(g, req)
	require.True(t, ok)
	for {
		for n := lo; n < hi; n++ {
			out = append(out, n)
		}
		lo, hi, ok = NextChunkRange(cursor)
		if !ok {
			break
		}
	}

	return out
}
