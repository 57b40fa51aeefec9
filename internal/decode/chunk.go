// Package decode implements the per-chunk decoder (spec.md §4.4) and the
// decode session that drives the read planners end to end (spec.md §4.5):
// the only two components in the module that touch the codec, the delta
// decoder, and the caller's output buffer all at once.
package decode

import (
	"github.com/gridfile/chunkcube/format"
	"github.com/gridfile/chunkcube/internal/codec"
	"github.com/gridfile/chunkcube/internal/geometry"
)

// Chunk decodes globalChunkNum's compressed bytes into scratch, then
// scatters its overlap with req into into, placed per intoCoordLower and
// shaped by intoCubeDimension. It always returns the number of bytes the
// codec consumed from compressed — even when the chunk shares no elements
// with req, its byte count must still be charged against the data-read
// cursor (spec.md §4.4 step 3, scenario S5).
//
// scratch must have capacity for at least one full chunk's element count
// (∏ grid.Chunks); Chunk only reads/writes its first grid.ChunkElementCount
// elements.
func Chunk(
	grid *geometry.Grid,
	req geometry.Request,
	globalChunkNum int64,
	compressed []byte,
	scaleFactor float32,
	kind format.CompressionKind,
	scratch []int16,
	into []float32,
	intoCoordLower, intoCubeDimension []int64,
) (bytesConsumed int, err error) {
	n := grid.NDims()
	coord := grid.ChunkCoord(globalChunkNum)
	length := grid.ChunkLength(coord)
	origin := grid.ChunkOrigin(coord)
	nElements := int(grid.ChunkElementCount(coord))

	decoder, err := codec.ForCompression(kind)
	if err != nil {
		return 0, err
	}

	bytesConsumed, err = decoder.Decode(compressed, nElements, scratch[:nElements])
	if err != nil {
		return 0, err
	}

	isect := geometry.Intersect(grid, req, globalChunkNum)
	for _, d := range isect {
		if d.NoOverlap {
			return bytesConsumed, nil
		}
	}

	if kind.IsDeltaCoded() {
		cols := int(length[n-1])
		codec.DecodeDelta2D(scratch[:nElements], nElements/cols, cols)
	}

	scatter(grid, req, origin, length, isect, scratch, into, intoCoordLower, intoCubeDimension, scaleFactor, kind)

	return bytesConsumed, nil
}

// scatter copies every element of the chunk that overlaps req into into,
// in runs of elements contiguous in both the chunk's local buffer and the
// target cube. Those runs never exceed the fastest dimension's overlap
// width: a chunk's fastest dimension is laid out contiguously, but a
// shorter-than-Count request or an intoCubeDimension wider than the read
// region breaks contiguity at every slower dimension, so a full N-dimension
// linearization is not safe in general (spec.md §4.4 step 5/6).
func scatter(
	grid *geometry.Grid,
	req geometry.Request,
	origin, length []int64,
	isect []geometry.DimIntersection,
	scratch []int16,
	into []float32,
	intoCoordLower, intoCubeDimension []int64,
	scaleFactor float32,
	kind format.CompressionKind,
) {
	n := grid.NDims()

	chunkStride := make([]int64, n)
	stride := int64(1)
	for i := n - 1; i >= 0; i-- {
		chunkStride[i] = stride
		stride *= length[i]
	}

	cubeStride := make([]int64, n)
	stride = int64(1)
	for i := n - 1; i >= 0; i-- {
		cubeStride[i] = stride
		stride *= intoCubeDimension[i]
	}

	runLen := isect[n-1].LocalEnd - isect[n-1].LocalStart

	local := make([]int64, n)
	for i := 0; i < n; i++ {
		local[i] = isect[i].LocalStart
	}

	for {
		var chunkOff, cubeOff int64
		for i := 0; i < n; i++ {
			chunkOff += local[i] * chunkStride[i]
			globalCoord := origin[i] + local[i]
			cubeCoord := intoCoordLower[i] + (globalCoord - req.Offset[i])
			cubeOff += cubeCoord * cubeStride[i]
		}

		for k := int64(0); k < runLen; k++ {
			into[cubeOff+k] = codec.Unscale(scratch[chunkOff+k], scaleFactor, kind)
		}

		carried := false
		for i := n - 2; i >= 0; i-- {
			local[i]++
			if local[i] < isect[i].LocalEnd {
				carried = true

				break
			}
			local[i] = isect[i].LocalStart
		}
		if !carried {
			break
		}
	}
}
