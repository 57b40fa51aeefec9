// Package format defines the small, closed set of on-disk enumerations shared
// by every other chunkcube package: the array's compression kind and the
// trailer layout version.
package format

// CompressionKind selects both the unscale formula applied to a decoded
// int16 and the codec/delta pair used to decompress a chunk's bytes.
//
// LinearQuantized and LogarithmicQuantized are the two mandatory kinds named
// by the on-disk format. RawNone, RawZstd, RawS2 and RawLZ4 are interchange
// kinds that skip the delta pre-coding stage and decode straight to scaled
// int16s through a generic byte-level codec; see SPEC_FULL.md §3.2.
type CompressionKind uint8

const (
	// LinearQuantized unscales a decoded int16 v as v / scalefactor.
	LinearQuantized CompressionKind = iota + 1
	// LogarithmicQuantized unscales a decoded int16 v as 10^(v/scalefactor) - 1.
	LogarithmicQuantized
	// RawNone carries raw little-endian int16s with no byte-level compression.
	RawNone
	// RawZstd carries a whole-chunk Zstandard stream of raw little-endian int16s.
	RawZstd
	// RawS2 carries a whole-chunk S2 stream of raw little-endian int16s.
	RawS2
	// RawLZ4 carries a whole-chunk LZ4 block of raw little-endian int16s.
	RawLZ4
)

// String implements fmt.Stringer.
func (c CompressionKind) String() string {
	switch c {
	case LinearQuantized:
		return "LinearQuantized"
	case LogarithmicQuantized:
		return "LogarithmicQuantized"
	case RawNone:
		return "RawNone"
	case RawZstd:
		return "RawZstd"
	case RawS2:
		return "RawS2"
	case RawLZ4:
		return "RawLZ4"
	default:
		return "Unknown"
	}
}

// IsDeltaCoded reports whether chunks of this kind were delta pre-coded and
// therefore require a Delta2D reversal after codec decompression.
func (c CompressionKind) IsDeltaCoded() bool {
	return c == LinearQuantized || c == LogarithmicQuantized
}

// Version identifies the on-disk trailer layout, see SPEC_FULL.md §6.
type Version uint8

const (
	// Version2 stores an explicit LUT entry for chunk 0's end offset.
	Version2 Version = 2
	// Version3 omits chunk 0's implicit-zero LUT entry.
	Version3 Version = 3
)

// String implements fmt.Stringer.
func (v Version) String() string {
	switch v {
	case Version2:
		return "Version2"
	case Version3:
		return "Version3"
	default:
		return "Unknown"
	}
}
