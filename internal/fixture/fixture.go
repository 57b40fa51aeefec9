// Package fixture builds synthetic in-memory chunkcube files for tests. It
// is the write side of the format — deliberately out of scope for the
// production module (spec.md §1) — kept test-only so round-trip tests
// (spec.md §8 property 6) don't need a real writer.
package fixture

import (
	"encoding/binary"
	"math"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/gridfile/chunkcube/format"
	"github.com/gridfile/chunkcube/internal/codec"
	"github.com/gridfile/chunkcube/internal/geometry"
	"github.com/gridfile/chunkcube/metadata"
)

// BuildVersion3 encodes values (row-major over dims) into independently
// compressed chunks and assembles them into a version-3 file: [3-byte
// magic][chunk data][LUT][dims][chunks][nDims][lutStart]. It returns the
// file bytes alongside the Metadata a real header/trailer parser would have
// produced for it.
func BuildVersion3(dims, chunks []int64, values []float32, scaleFactor float32, kind format.CompressionKind) ([]byte, *metadata.Metadata) {
	grid := geometry.NewGrid(dims, chunks)
	n := grid.NDims()
	total := grid.TotalChunks()

	data := make([]byte, 0, len(values)*2)
	lutEnds := make([]int64, total)

	for k := int64(0); k < total; k++ {
		coord := grid.ChunkCoord(k)
		origin := grid.ChunkOrigin(coord)
		length := grid.ChunkLength(coord)
		nElem := int(grid.ChunkElementCount(coord))

		quant := make([]int16, nElem)
		gatherAndQuantize(dims, origin, length, values, scaleFactor, kind, quant)

		var payload []byte
		switch {
		case kind.IsDeltaCoded():
			cols := int(length[n-1])
			codec.EncodeDelta2D(quant, nElem/cols, cols)
			payload = codec.EncodeZigzagDelta(quant)
		case kind == format.RawNone:
			payload = encodeRawNone(quant)
		default:
			payload = encodeFramedBlock(quant, kind)
		}

		data = append(data, payload...)
		lutEnds[k] = int64(len(data))
	}

	const magicLen = 3
	buf := make([]byte, magicLen, magicLen+len(data)+8)
	buf = append(buf, data...)

	lutStart := int64(len(buf))
	for _, end := range lutEnds {
		buf = appendUint64(buf, uint64(end))
	}

	for _, d := range dims {
		buf = appendUint64(buf, uint64(d))
	}
	for _, c := range chunks {
		buf = appendUint64(buf, uint64(c))
	}
	buf = appendUint64(buf, uint64(n))
	buf = appendUint64(buf, uint64(lutStart))

	meta := &metadata.Metadata{
		Dims:        append([]int64(nil), dims...),
		Chunks:      append([]int64(nil), chunks...),
		ScaleFactor: scaleFactor,
		Compression: kind,
		LUTStart:    lutStart,
		DataStart:   magicLen,
		Version:     format.Version3,
	}

	return buf, meta
}

func appendUint64(buf []byte, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)

	return append(buf, tmp[:]...)
}

func quantize(f float32, scaleFactor float32, kind format.CompressionKind) int16 {
	if math.IsNaN(float64(f)) {
		return math.MaxInt16
	}

	var v float64
	if kind == format.LogarithmicQuantized {
		v = math.Log10(float64(f)+1) * float64(scaleFactor)
	} else {
		v = float64(f) * float64(scaleFactor)
	}

	if v > 0 {
		v += 0.5
	} else {
		v -= 0.5
	}

	return int16(v)
}

// forEachChunkElement visits every element of a chunk with extent length
// rooted at origin within an array of shape dims, in the chunk's own
// row-major order, calling fn with the element's flat offset within the
// chunk's local buffer and its flat offset within the global values array.
func forEachChunkElement(dims, origin, length []int64, fn func(local, global int64)) {
	n := len(dims)
	gStride := make([]int64, n)
	lStride := make([]int64, n)
	gs, ls := int64(1), int64(1)
	for i := n - 1; i >= 0; i-- {
		gStride[i] = gs
		lStride[i] = ls
		gs *= dims[i]
		ls *= length[i]
	}

	coord := make([]int64, n)
	for {
		var g, l int64
		for i := 0; i < n; i++ {
			g += (origin[i] + coord[i]) * gStride[i]
			l += coord[i] * lStride[i]
		}
		fn(l, g)

		carried := false
		for i := n - 1; i >= 0; i-- {
			coord[i]++
			if coord[i] < length[i] {
				carried = true

				break
			}
			coord[i] = 0
		}
		if !carried {
			return
		}
	}
}

func gatherAndQuantize(dims, origin, length []int64, values []float32, scaleFactor float32, kind format.CompressionKind, quant []int16) {
	forEachChunkElement(dims, origin, length, func(local, global int64) {
		quant[local] = quantize(values[global], scaleFactor, kind)
	})
}

func encodeRawNone(quant []int16) []byte {
	buf := make([]byte, len(quant)*2)
	for i, v := range quant {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(v))
	}

	return buf
}

func encodeFramedBlock(quant []int16, kind format.CompressionKind) []byte {
	raw := encodeRawNone(quant)

	var compressed []byte
	switch kind {
	case format.RawZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			panic(err)
		}
		compressed = enc.EncodeAll(raw, nil)
		_ = enc.Close()
	case format.RawS2:
		compressed = s2.Encode(nil, raw)
	case format.RawLZ4:
		dst := make([]byte, lz4.CompressBlockBound(len(raw)))
		var c lz4.Compressor
		m, err := c.CompressBlock(raw, dst)
		if err != nil {
			panic(err)
		}
		if m == 0 {
			// Incompressible input: lz4 leaves dst empty. The raw bytes
			// are not a block UncompressBlock can invert, so rather than
			// emit a fixture the framed decoder would misread, panic.
			panic("lz4: block not compressible")
		}
		compressed = dst[:m]
	}

	prefix := make([]byte, binary.MaxVarintLen64)
	pn := binary.PutUvarint(prefix, uint64(len(compressed)))

	out := make([]byte, 0, pn+len(compressed))
	out = append(out, prefix[:pn]...)
	out = append(out, compressed...)

	return out
}
