// Package endian provides byte order utilities for binary encoding and decoding.
//
// This package extends Go's standard encoding/binary package by combining
// ByteOrder and AppendByteOrder interfaces into a unified EndianEngine interface.
//
// # Basic Usage
//
// The on-disk trailer and LUT are little-endian, so metadata parsing uses
// GetLittleEndianEngine():
//
//	engine := endian.GetLittleEndianEngine()
//	v := engine.Uint64(lutBytes[off : off+8])
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library, making it fully compatible with existing Go code while
// providing access to both read/write and append operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine. Every field this
// module reads (trailer, LUT entries) is little-endian on disk, so it is the
// only engine chunkcube ever constructs.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
