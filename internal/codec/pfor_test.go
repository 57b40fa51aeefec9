package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridfile/chunkcube/errs"
)

func TestZigzagDeltaRoundTrip(t *testing.T) {
	values := []int16{0, 1, 1, -5, 1000, -1000, 32767, -32768}
	encoded := EncodeZigzagDelta(values)

	dst := make([]int16, len(values))
	d := NewZigzagDeltaDecoder()
	n, err := d.Decode(encoded, len(values), dst)
	require.NoError(t, err)
	assert.Equal(t, len(encoded), n)
	assert.Equal(t, values, dst)
}

func TestZigzagDeltaConsumedBytesAllowsTrailingData(t *testing.T) {
	values := []int16{5, 5, 5}
	encoded := EncodeZigzagDelta(values)
	withTrailer := append(append([]byte{}, encoded...), 0xFF, 0xFF, 0xFF)

	dst := make([]int16, len(values))
	n, err := NewZigzagDeltaDecoder().Decode(withTrailer, len(values), dst)
	require.NoError(t, err)
	assert.Equal(t, len(encoded), n, "must report only its own bytes, ignoring the next chunk's trailing bytes")
	assert.Equal(t, values, dst)
}

func TestZigzagDeltaTruncatedIsCodecFailure(t *testing.T) {
	dst := make([]int16, 2)
	_, err := NewZigzagDeltaDecoder().Decode([]byte{0x01}, 2, dst)
	require.ErrorIs(t, err, errs.ErrCodecFailure)
}
