// Package codec implements the chunk byte-stream contract (spec.md §6): the
// integer-sequence decoders chunkcube's decode pipeline invokes after a
// chunk's compressed bytes have been located by the planners, plus the
// Delta2D spatial decoder and scalar unscale formulas that run on a
// decoder's output before it is scattered into the caller's cube.
package codec

import "github.com/gridfile/chunkcube/format"

// Decoder decodes exactly nElements 16-bit integers from the front of src
// into dst[:nElements] and reports how many bytes of src it consumed.
//
// The returned byte count need not equal len(src): src may be the remainder
// of a coalesced multi-chunk data read, with further chunks' bytes
// following this one's. Decoder implementations must be self-delimiting —
// they determine where their own compressed payload ends without being
// told — since that consumed-byte count is the session's only way to find
// the next chunk's start within a merged read, and is cross-checked against
// the LUT-derived byte range as a corruption guard (spec.md §4.5).
type Decoder interface {
	Decode(src []byte, nElements int, dst []int16) (bytesConsumed int, err error)
}

// ForCompression returns the Decoder registered for kind.
func ForCompression(kind format.CompressionKind) (Decoder, error) {
	return lookupDecoder(kind)
}
