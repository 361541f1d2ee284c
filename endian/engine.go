// Package endian provides byte order utilities for the snapshot codec.
//
// It combines encoding/binary's ByteOrder and AppendByteOrder interfaces
// into one EndianEngine interface, so encoders can both read fixed-width
// fields and append them without intermediate buffers. The returned
// engines are the immutable binary.LittleEndian and binary.BigEndian
// values and are safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface for byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine, the default for
// larr snapshots.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine, for interoperability
// with big-endian consumers.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
