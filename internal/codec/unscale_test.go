package codec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gridfile/chunkcube/format"
)

func TestUnscaleLinear(t *testing.T) {
	got := Unscale(150, 100, format.LinearQuantized)
	assert.InDelta(t, 1.5, got, 1e-6)
}

func TestUnscaleLogarithmic(t *testing.T) {
	// 10^(200/100) - 1 = 99
	got := Unscale(200, 100, format.LogarithmicQuantized)
	assert.InDelta(t, 99, got, 1e-4)
}

// TestNaNSentinelProperty is testable property 5: INT16_MAX always unscales
// to NaN regardless of compression kind or scale factor.
func TestNaNSentinelProperty(t *testing.T) {
	for _, kind := range []format.CompressionKind{format.LinearQuantized, format.LogarithmicQuantized, format.RawNone} {
		got := Unscale(math.MaxInt16, 7, kind)
		assert.True(t, math.IsNaN(float64(got)), "kind=%s", kind)
	}
}
