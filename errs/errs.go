// Package errs centralizes the sentinel errors shared across chunkcube's
// packages, so callers can test with errors.Is against a stable value
// instead of string-matching messages.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrBadMetadata is returned when a trailer or the resolved Metadata
	// fails validation: a missing field, an inconsistent dimension count, or
	// a value outside its allowed range. LUT failures surface as
	// ErrCorruptLUT instead.
	ErrBadMetadata = errors.New("chunkcube: bad metadata")

	// ErrCodecFailure is returned when a chunk's compressed bytes cannot be
	// decoded by the codec its compression kind selects: truncated input,
	// an out-of-range decoded value, or a corrupt varint/length prefix.
	ErrCodecFailure = errors.New("chunkcube: codec failure")

	// ErrDecodeMismatch is returned when the number of bytes a chunk's
	// codec actually consumed does not match the byte range the LUT
	// resolved for that chunk, signaling a corrupt file or a planner/codec
	// disagreement about chunk boundaries.
	ErrDecodeMismatch = errors.New("chunkcube: decoded byte count does not match LUT range")

	// ErrOutOfBounds is returned when a read request's offset/count falls
	// outside the array's declared dimensions, or a scatter placement falls
	// outside the caller's target cube.
	ErrOutOfBounds = errors.New("chunkcube: read request out of bounds")

	// ErrRankMismatch is returned when a request's Offset/Count slices
	// don't match the array's declared rank.
	ErrRankMismatch = errors.New("chunkcube: dimension rank mismatch")

	// ErrCorruptLUT is the sentinel CorruptLUTError wraps, so callers can
	// match it with errors.Is without unwrapping to the concrete type.
	ErrCorruptLUT = errors.New("chunkcube: corrupt LUT")
)

// CorruptLUTError reports a LUT region that failed a monotonicity or
// bounds check, carrying enough detail for an operator to locate the bad
// bytes in a multi-gigabyte file without re-reading the whole LUT.
type CorruptLUTError struct {
	// Offset, Length bound the offending byte range within the LUT region.
	Offset, Length int64
	// Fingerprint is the xxHash64 of the offending bytes.
	Fingerprint uint64
	// Reason describes what check failed ("non-monotonic", "out of
	// bounds", ...).
	Reason string
}

func (e *CorruptLUTError) Error() string {
	return fmt.Sprintf("chunkcube: corrupt LUT at [%d, %d): %s (fingerprint %016x)",
		e.Offset, e.Offset+e.Length, e.Reason, e.Fingerprint)
}

func (e *CorruptLUTError) Unwrap() error { return ErrCorruptLUT }
