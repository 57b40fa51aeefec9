package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDelta2DRoundTrip(t *testing.T) {
	const rows, cols = 3, 4
	original := []int16{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
	}

	buf := append([]int16(nil), original...)
	EncodeDelta2D(buf, rows, cols)
	DecodeDelta2D(buf, rows, cols)
	assert.Equal(t, original, buf)
}

func TestDelta2DSingleRow(t *testing.T) {
	original := []int16{4, 4, 4, 4}
	buf := append([]int16(nil), original...)
	EncodeDelta2D(buf, 1, 4)
	DecodeDelta2D(buf, 1, 4)
	assert.Equal(t, original, buf)
}

func TestDelta2DEmpty(t *testing.T) {
	var buf []int16
	DecodeDelta2D(buf, 0, 0) // must not panic
}
