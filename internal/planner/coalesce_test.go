package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoalesceMergesWithinThreshold(t *testing.T) {
	ranges := []ByteRange{
		{Offset: 0, Length: 100},
		{Offset: 150, Length: 50}, // gap 50, within default merge threshold 512
	}
	out := Coalesce(ranges, DefaultOptions())
	assert.Equal(t, []ByteRange{{Offset: 0, Length: 200}}, out)
}

func TestCoalesceSplitsBeyondThreshold(t *testing.T) {
	ranges := []ByteRange{
		{Offset: 0, Length: 100},
		{Offset: 100 + 1000, Length: 50}, // gap 1000 > 512
	}
	out := Coalesce(ranges, Options{MergeThreshold: 512, MaxSize: 65536})
	assert.Equal(t, ranges, out)
}

func TestCoalesceRespectsMaxSize(t *testing.T) {
	ranges := []ByteRange{
		{Offset: 0, Length: 100},
		{Offset: 100, Length: 100},
	}
	out := Coalesce(ranges, Options{MergeThreshold: 512, MaxSize: 150})
	assert.Equal(t, ranges, out, "merged length 200 exceeds MaxSize 150, so ranges stay separate")
}

func TestCoalesceEmpty(t *testing.T) {
	assert.Nil(t, Coalesce(nil, DefaultOptions()))
}
