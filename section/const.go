// Package section defines the binary layout of larr snapshots: the fixed
// header, its flag bits, and the section sizes and limits shared by the
// snapshot encoder and decoder.
package section

import "math"

const (
	// MagicSnapshotV1 is the version 1 magic number for larr snapshots.
	MagicSnapshotV1 = 0xA110

	// Flag bits (byte 2 of the header).
	FlagBigEndian = 0x01 // 0=little-endian payloads, 1=big-endian

	// HeaderSize is the fixed header size in bytes. The shape section
	// (4 bytes per axis) follows immediately, then the label payload and
	// the data payload.
	HeaderSize = 24

	// AxisLengthSize is the encoded size of one axis length in the shape
	// section.
	AxisLengthSize = 4

	// MaxRank is the maximum number of dimensions a snapshot can record;
	// the header stores the rank in one byte.
	MaxRank = math.MaxUint8

	// MaxPayloadSize is the maximum stored size of one payload; the
	// header records payload sizes as uint32.
	MaxPayloadSize = math.MaxUint32
)

// Fixed byte offsets inside the header. All header fields are
// little-endian regardless of the payload byte order flag.
const (
	offMagic       = 0
	offFlag        = 2
	offCompression = 3
	offDType       = 4
	offRank        = 5
	offLabelSize   = 8
	offDataSize    = 12
	offChecksum    = 16
)
