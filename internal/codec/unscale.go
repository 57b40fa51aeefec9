package codec

import (
	"math"

	"github.com/gridfile/chunkcube/format"
)

// nanSentinel is the quantized integer value reserved to mean "no data"
// (spec.md §6): it always unscales to NaN regardless of compression kind.
const nanSentinel = math.MaxInt16

// Unscale converts one quantized integer back to its floating-point value
// per kind's formula. v == INT16_MAX always unscales to NaN.
func Unscale(v int16, scaleFactor float32, kind format.CompressionKind) float32 {
	if v == nanSentinel {
		return float32(math.NaN())
	}

	switch kind {
	case format.LogarithmicQuantized:
		return float32(math.Pow(10, float64(v)/float64(scaleFactor)) - 1)
	default: // LinearQuantized and the raw passthrough kinds.
		return float32(v) / scaleFactor
	}
}
