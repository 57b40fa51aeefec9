package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChunkBufferPoolReusesBackingArray(t *testing.T) {
	p := NewChunkBufferPool(64)
	require.Equal(t, 64, p.Capacity())

	slice1, cleanup1 := p.Get(64)
	ptr1 := &slice1[0]
	cleanup1()

	slice2, cleanup2 := p.Get(64)
	defer cleanup2()

	require.Equal(t, ptr1, &slice2[0])
}
