package section

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/larr/endian"
	"github.com/arloliu/larr/errs"
	"github.com/arloliu/larr/format"
)

// Flag packs the snapshot option bits stored in the header.
type Flag uint8

// BigEndian reports whether the snapshot payloads use big-endian byte
// order.
func (f Flag) BigEndian() bool {
	return f&FlagBigEndian != 0
}

// WithBigEndian returns the flag with the payload byte order bit set or
// cleared.
func (f Flag) WithBigEndian(big bool) Flag {
	if big {
		return f | FlagBigEndian
	}

	return f &^ FlagBigEndian
}

// EndianEngine returns the engine matching the payload byte order bit.
func (f Flag) EndianEngine() endian.EndianEngine {
	if f.BigEndian() {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

// Header is the fixed-size snapshot header. The shape section, the label
// payload, and the data payload follow it in that order.
type Header struct {
	Flag             Flag
	Compression      format.CompressionType
	DType            format.DType
	Rank             int
	LabelPayloadSize uint32
	DataPayloadSize  uint32
	Checksum         uint32
}

// AppendTo appends the encoded header to dst and returns the extended
// slice. Header fields are always little-endian; only payloads honor the
// byte order flag.
func (h *Header) AppendTo(dst []byte) []byte {
	var buf [HeaderSize]byte
	binary.LittleEndian.PutUint16(buf[offMagic:], MagicSnapshotV1)
	buf[offFlag] = byte(h.Flag)
	buf[offCompression] = byte(h.Compression)
	buf[offDType] = byte(h.DType)
	buf[offRank] = byte(h.Rank)
	binary.LittleEndian.PutUint32(buf[offLabelSize:], h.LabelPayloadSize)
	binary.LittleEndian.PutUint32(buf[offDataSize:], h.DataPayloadSize)
	binary.LittleEndian.PutUint32(buf[offChecksum:], h.Checksum)

	return append(dst, buf[:]...)
}

// ParseHeader decodes and validates a snapshot header from the front of
// data.
func ParseHeader(data []byte) (*Header, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes, need %d",
			errs.ErrInvalidHeaderSize, len(data), HeaderSize)
	}
	if magic := binary.LittleEndian.Uint16(data[offMagic:]); magic != MagicSnapshotV1 {
		return nil, fmt.Errorf("%w: 0x%04X", errs.ErrInvalidMagicNumber, magic)
	}

	h := &Header{
		Flag:             Flag(data[offFlag]),
		Compression:      format.CompressionType(data[offCompression]),
		DType:            format.DType(data[offDType]),
		Rank:             int(data[offRank]),
		LabelPayloadSize: binary.LittleEndian.Uint32(data[offLabelSize:]),
		DataPayloadSize:  binary.LittleEndian.Uint32(data[offDataSize:]),
		Checksum:         binary.LittleEndian.Uint32(data[offChecksum:]),
	}
	if !h.DType.Valid() {
		return nil, fmt.Errorf("%w: unknown dtype 0x%02X", errs.ErrInvalidPayload, data[offDType])
	}
	if h.Rank < 1 {
		return nil, fmt.Errorf("%w: rank must be at least 1", errs.ErrInvalidPayload)
	}

	return h, nil
}
