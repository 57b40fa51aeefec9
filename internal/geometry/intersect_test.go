package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntersectPartialOverlap(t *testing.T) {
	g := NewGrid([]int64{4, 4}, []int64{2, 2})
	req := Request{Offset: []int64{1, 1}, Count: []int64{2, 2}} // [1..3, 1..3]

	// Chunk 0 covers [0..2, 0..2]; overlap with [1..3,1..3] is [1..2,1..2].
	inter := Intersect(g, req, 0)
	assert.False(t, inter[0].NoOverlap)
	assert.EqualValues(t, 1, inter[0].LocalStart)
	assert.EqualValues(t, 2, inter[0].LocalEnd)
	assert.EqualValues(t, 1, inter[0].GlobalStart)
}

func TestIntersectNoOverlap(t *testing.T) {
	g := NewGrid([]int64{4, 4}, []int64{2, 2})
	req := Request{Offset: []int64{0, 0}, Count: []int64{2, 2}} // chunk 0 only

	// Chunk 3 covers [2..4, 2..4], disjoint from the request.
	inter := Intersect(g, req, 3)
	assert.True(t, inter[0].NoOverlap)
	assert.True(t, inter[1].NoOverlap)
}

func TestIntersectFullChunkCoverage(t *testing.T) {
	g := NewGrid([]int64{4, 4}, []int64{2, 2})
	req := Request{Offset: []int64{0, 0}, Count: []int64{4, 4}}

	inter := Intersect(g, req, 0)
	assert.EqualValues(t, 0, inter[0].LocalStart)
	assert.EqualValues(t, 2, inter[0].LocalEnd)
}
