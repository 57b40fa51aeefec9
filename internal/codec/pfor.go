package codec

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gridfile/chunkcube/errs"
)

// zigzagDeltaDecoder is the default codec (spec.md §6): a PFor-family
// 16-bit zigzag-delta variant. Each element is encoded as the zigzag-varint
// of its difference from the previous decoded element (the first element's
// "previous" is implicitly zero). The delta-of-delta timestamp codec this
// is grounded on applies a second level of differencing itself; here the
// second-order differencing lives one layer up, in Delta2D, so this stage
// stays first-order.
type zigzagDeltaDecoder struct{}

// NewZigzagDeltaDecoder returns the default integer-sequence decoder.
func NewZigzagDeltaDecoder() Decoder { return zigzagDeltaDecoder{} }

// Decode implements Decoder.
func (zigzagDeltaDecoder) Decode(src []byte, nElements int, dst []int16) (int, error) {
	if nElements == 0 {
		return 0, nil
	}
	if len(dst) < nElements {
		return 0, fmt.Errorf("%w: dst has %d elements, need %d", errs.ErrCodecFailure, len(dst), nElements)
	}

	var prev int64
	pos := 0
	for i := 0; i < nElements; i++ {
		zz, n := binary.Uvarint(src[pos:])
		if n <= 0 {
			return 0, fmt.Errorf("%w: truncated varint decoding element %d of %d", errs.ErrCodecFailure, i, nElements)
		}
		prev += zigzagDecode(zz)
		if prev < math.MinInt16 || prev > math.MaxInt16 {
			return 0, fmt.Errorf("%w: decoded value %d out of int16 range at element %d", errs.ErrCodecFailure, prev, i)
		}
		dst[i] = int16(prev)
		pos += n
	}

	return pos, nil
}

func zigzagDecode(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

func zigzagEncode(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

// EncodeZigzagDelta encodes values with the inverse of zigzagDeltaDecoder,
// for building synthetic fixtures in tests.
func EncodeZigzagDelta(values []int16) []byte {
	buf := make([]byte, 0, len(values)*binary.MaxVarintLen64)
	tmp := make([]byte, binary.MaxVarintLen64)

	var prev int64
	for _, v := range values {
		delta := int64(v) - prev
		prev = int64(v)
		n := binary.PutUvarint(tmp, zigzagEncode(delta))
		buf = append(buf, tmp[:n]...)
	}

	return buf
}
