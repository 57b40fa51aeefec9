package geometry

// DimIntersection is the overlap between one chunk and a Request along a
// single dimension.
type DimIntersection struct {
	// LocalStart, LocalEnd bound the overlap within the chunk's own local
	// buffer: [LocalStart, LocalEnd), 0-indexed from the chunk's origin.
	LocalStart, LocalEnd int64
	// GlobalStart is the overlap's start expressed in array-element space;
	// GlobalStart - Offset[i] is the overlap's offset within the request.
	GlobalStart int64
	// NoOverlap is true when the chunk does not intersect the request along
	// this dimension at all (possible when a chunk was only read because of
	// I/O coalescing, spec.md §4.4).
	NoOverlap bool
}

// Intersect computes, for every dimension, the overlap between chunk
// globalChunkNum and req. A chunk has no overlap with the request as a
// whole when any one dimension's DimIntersection.NoOverlap is true.
func Intersect(grid *Grid, req Request, globalChunkNum int64) []DimIntersection {
	coord := grid.ChunkCoord(globalChunkNum)
	origin := grid.ChunkOrigin(coord)
	length := grid.ChunkLength(coord)

	out := make([]DimIntersection, grid.NDims())
	for i := range out {
		chunkStart, chunkEnd := origin[i], origin[i]+length[i]
		reqStart, reqEnd := req.Offset[i], req.Offset[i]+req.Count[i]

		start := max64(chunkStart, reqStart)
		end := min64(chunkEnd, reqEnd)

		if start >= end {
			out[i] = DimIntersection{NoOverlap: true}

			continue
		}

		out[i] = DimIntersection{
			LocalStart:  start - chunkStart,
			LocalEnd:    end - chunkStart,
			GlobalStart: start,
		}
	}

	return out
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}

	return b
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}

	return b
}
