package codec

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/gridfile/chunkcube/errs"
)

// The Raw* compression kinds store plain little-endian int16 values,
// optionally wrapped in a general-purpose block compressor, instead of the
// zigzag-delta integer-sequence codec. They exist to exercise the rest of
// the klauspost/compress and pierrec/lz4 surface carried over from this
// module's reference stack beyond the mandatory quantized kinds.
//
// RawNone's byte length is a fixed function of nElements (2 bytes each), so
// it is self-delimiting without any framing. The block-compressed variants
// are not — their compressed length has no fixed relationship to
// nElements — so their chunk payload is prefixed with a uvarint byte count,
// matching the self-delimiting contract Decoder requires.

type rawNoneDecoder struct{}

// NewRawNoneDecoder returns the uncompressed raw int16 decoder.
func NewRawNoneDecoder() Decoder { return rawNoneDecoder{} }

func (rawNoneDecoder) Decode(src []byte, nElements int, dst []int16) (int, error) {
	need := nElements * 2
	if len(src) < need {
		return 0, fmt.Errorf("%w: raw payload has %d bytes, need %d", errs.ErrCodecFailure, len(src), need)
	}
	for i := 0; i < nElements; i++ {
		dst[i] = int16(binary.LittleEndian.Uint16(src[i*2:]))
	}

	return need, nil
}

// blockCodec is the common shape of a general-purpose block compressor.
type blockCodec interface {
	decompress(compressed []byte) ([]byte, error)
}

type framedBlockDecoder struct{ codec blockCodec }

func (d framedBlockDecoder) Decode(src []byte, nElements int, dst []int16) (int, error) {
	payloadLen, n := binary.Uvarint(src)
	if n <= 0 {
		return 0, fmt.Errorf("%w: truncated block-length prefix", errs.ErrCodecFailure)
	}
	if uint64(len(src)-n) < payloadLen {
		return 0, fmt.Errorf("%w: block payload truncated", errs.ErrCodecFailure)
	}

	raw, err := d.codec.decompress(src[n : n+int(payloadLen)])
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errs.ErrCodecFailure, err)
	}

	need := nElements * 2
	if len(raw) < need {
		return 0, fmt.Errorf("%w: decompressed %d bytes, need %d", errs.ErrCodecFailure, len(raw), need)
	}
	for i := 0; i < nElements; i++ {
		dst[i] = int16(binary.LittleEndian.Uint16(raw[i*2:]))
	}

	return n + int(payloadLen), nil
}

// zstdBlockCodec decompresses via a pooled zstd.Decoder, grounded on the
// reference stack's pooled-decoder pattern.
type zstdBlockCodec struct{}

var zstdDecoderPool = sync.Pool{
	New: func() any {
		d, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		if err != nil {
			panic(err)
		}

		return d
	},
}

func (zstdBlockCodec) decompress(compressed []byte) ([]byte, error) {
	d, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(d)

	return d.DecodeAll(compressed, nil)
}

// NewRawZstdDecoder returns the zstd-framed raw int16 decoder.
func NewRawZstdDecoder() Decoder { return framedBlockDecoder{codec: zstdBlockCodec{}} }

type s2BlockCodec struct{}

func (s2BlockCodec) decompress(compressed []byte) ([]byte, error) { return s2.Decode(nil, compressed) }

// NewRawS2Decoder returns the S2-framed raw int16 decoder.
func NewRawS2Decoder() Decoder { return framedBlockDecoder{codec: s2BlockCodec{}} }

type lz4BlockCodec struct{}

func (lz4BlockCodec) decompress(compressed []byte) ([]byte, error) {
	bufSize := len(compressed) * 4
	const maxSize = 128 * 1024 * 1024
	for bufSize <= maxSize {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(compressed, buf)
		if err == nil {
			return buf[:n], nil
		}
		if err != lz4.ErrInvalidSourceShortBuffer {
			return nil, err
		}
		bufSize *= 2
	}

	return nil, lz4.ErrInvalidSourceShortBuffer
}

// NewRawLZ4Decoder returns the LZ4-framed raw int16 decoder.
func NewRawLZ4Decoder() Decoder { return framedBlockDecoder{codec: lz4BlockCodec{}} }
