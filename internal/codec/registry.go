package codec

import (
	"fmt"

	"github.com/gridfile/chunkcube/format"
)

var decoders = map[format.CompressionKind]Decoder{
	format.LinearQuantized:      NewZigzagDeltaDecoder(),
	format.LogarithmicQuantized: NewZigzagDeltaDecoder(),
	format.RawNone:              NewRawNoneDecoder(),
	format.RawZstd:              NewRawZstdDecoder(),
	format.RawS2:                NewRawS2Decoder(),
	format.RawLZ4:               NewRawLZ4Decoder(),
}

func lookupDecoder(kind format.CompressionKind) (Decoder, error) {
	d, ok := decoders[kind]
	if !ok {
		return nil, fmt.Errorf("codec: unsupported compression kind %s", kind)
	}

	return d, nil
}
