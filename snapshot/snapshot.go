// Package snapshot implements the round-trippable serialization contract
// for labeled arrays.
//
// A snapshot is a self-describing byte sequence: a fixed header (dtype tag,
// rank, compression, payload byte order, CRC32 checksum), a shape section,
// a label payload holding every axis's label sequence, and a data payload
// holding the buffer values. Encode then Decode yields an array equal in
// dtype, shape, labels, and data to the original.
//
// The core guarantees only this intermediate representation; archival file
// formats and CSV import/export are external collaborators built on top of
// it.
//
// Object arrays cannot be encoded: opaque elements have no defined wire
// form.
package snapshot

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"math"

	"github.com/arloliu/larr/array"
	"github.com/arloliu/larr/axis"
	"github.com/arloliu/larr/compress"
	"github.com/arloliu/larr/endian"
	"github.com/arloliu/larr/errs"
	"github.com/arloliu/larr/format"
	"github.com/arloliu/larr/internal/options"
	"github.com/arloliu/larr/internal/pool"
	"github.com/arloliu/larr/label"
	"github.com/arloliu/larr/section"
)

// encoderConfig carries the encoding options.
type encoderConfig struct {
	compression format.CompressionType
	bigEndian   bool
}

// Option configures Encode.
type Option = options.Option[*encoderConfig]

// WithCompression selects the payload compression. The default is
// format.CompressionNone.
func WithCompression(ct format.CompressionType) Option {
	return options.New(func(cfg *encoderConfig) error {
		if _, err := compress.CreateCodec(ct, "snapshot"); err != nil {
			return err
		}
		cfg.compression = ct

		return nil
	})
}

// WithBigEndian stores the data payload in big-endian byte order, for
// interoperability with big-endian consumers. The default is
// little-endian. The label payload and header are canonical and
// unaffected.
func WithBigEndian() Option {
	return options.NoError(func(cfg *encoderConfig) {
		cfg.bigEndian = true
	})
}

// Encode serializes an array into a snapshot.
func Encode(arr *array.Array, opts ...Option) ([]byte, error) {
	cfg := &encoderConfig{compression: format.CompressionNone}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if arr.DType() == format.DTypeObject {
		return nil, fmt.Errorf("%w: Object arrays have no wire form", errs.ErrDtypeMismatch)
	}
	if arr.Rank() > section.MaxRank {
		return nil, fmt.Errorf("%w: rank %d exceeds maximum %d",
			errs.ErrShapeMismatch, arr.Rank(), section.MaxRank)
	}

	codec, err := compress.CreateCodec(cfg.compression, "snapshot")
	if err != nil {
		return nil, err
	}
	flag := section.Flag(0).WithBigEndian(cfg.bigEndian)
	engine := flag.EndianEngine()

	// Shape section, always little-endian like the header.
	shape := arr.Shape()
	shapeSection := make([]byte, 0, len(shape)*section.AxisLengthSize)
	for _, n := range shape {
		shapeSection = binary.LittleEndian.AppendUint32(shapeSection, uint32(n)) //nolint:gosec
	}

	labelPayload, err := codec.Compress(encodeLabels(arr.Axes()))
	if err != nil {
		return nil, fmt.Errorf("compress label payload: %w", err)
	}
	rawData, err := encodeData(arr, engine)
	if err != nil {
		return nil, err
	}
	dataPayload, err := codec.Compress(rawData)
	if err != nil {
		return nil, fmt.Errorf("compress data payload: %w", err)
	}
	if len(labelPayload) > section.MaxPayloadSize || len(dataPayload) > section.MaxPayloadSize {
		return nil, fmt.Errorf("%w: payload exceeds maximum size", errs.ErrInvalidPayload)
	}

	checksum := crc32.NewIEEE()
	_, _ = checksum.Write(shapeSection)
	_, _ = checksum.Write(labelPayload)
	_, _ = checksum.Write(dataPayload)

	header := &section.Header{
		Flag:             flag,
		Compression:      cfg.compression,
		DType:            arr.DType(),
		Rank:             arr.Rank(),
		LabelPayloadSize: uint32(len(labelPayload)), //nolint:gosec
		DataPayloadSize:  uint32(len(dataPayload)),  //nolint:gosec
		Checksum:         checksum.Sum32(),
	}

	buf := pool.GetSnapshotBuffer()
	defer pool.PutSnapshotBuffer(buf)

	buf.Grow(section.HeaderSize + len(shapeSection) + len(labelPayload) + len(dataPayload))
	buf.B = header.AppendTo(buf.B)
	buf.MustWrite(shapeSection)
	buf.MustWrite(labelPayload)
	buf.MustWrite(dataPayload)

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

// Decode reconstructs an array from a snapshot produced by Encode.
func Decode(data []byte) (*array.Array, error) {
	header, err := section.ParseHeader(data)
	if err != nil {
		return nil, err
	}
	// Encode never produces Object snapshots, so a header claiming one is
	// corrupt. The header sits outside the checksum; validate it here.
	if header.DType == format.DTypeObject {
		return nil, fmt.Errorf("%w: Object arrays have no wire form", errs.ErrInvalidPayload)
	}
	rest := data[section.HeaderSize:]

	shapeLen := header.Rank * section.AxisLengthSize
	total := shapeLen + int(header.LabelPayloadSize) + int(header.DataPayloadSize)
	if len(rest) < total {
		return nil, fmt.Errorf("%w: %d bytes after header, need %d",
			errs.ErrInvalidPayload, len(rest), total)
	}

	shapeSection := rest[:shapeLen]
	labelPayload := rest[shapeLen : shapeLen+int(header.LabelPayloadSize)]
	dataPayload := rest[shapeLen+int(header.LabelPayloadSize) : total]

	checksum := crc32.NewIEEE()
	_, _ = checksum.Write(shapeSection)
	_, _ = checksum.Write(labelPayload)
	_, _ = checksum.Write(dataPayload)
	if checksum.Sum32() != header.Checksum {
		return nil, fmt.Errorf("%w: want 0x%08X, got 0x%08X",
			errs.ErrChecksumMismatch, header.Checksum, checksum.Sum32())
	}

	shape := make([]int, header.Rank)
	size := 1
	for d := range shape {
		shape[d] = int(binary.LittleEndian.Uint32(shapeSection[d*section.AxisLengthSize:]))
		size *= shape[d]
	}

	codec, err := compress.CreateCodec(header.Compression, "snapshot")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidPayload, err)
	}
	rawLabels, err := codec.Decompress(labelPayload)
	if err != nil {
		return nil, fmt.Errorf("%w: label payload: %s", errs.ErrInvalidPayload, err)
	}
	rawData, err := codec.Decompress(dataPayload)
	if err != nil {
		return nil, fmt.Errorf("%w: data payload: %s", errs.ErrInvalidPayload, err)
	}

	axes, err := decodeLabels(rawLabels, shape)
	if err != nil {
		return nil, err
	}

	return decodeData(header, rawData, size, axes)
}

// encodeLabels concatenates every axis's labels in canonical binary form.
// The shape section carries the per-axis counts, so no extra framing is
// needed.
func encodeLabels(axes []*axis.Index) []byte {
	var buf []byte
	for _, ix := range axes {
		for i := 0; i < ix.Len(); i++ {
			buf = ix.Label(i).AppendBinary(buf)
		}
	}

	return buf
}

func decodeLabels(raw []byte, shape []int) ([]*axis.Index, error) {
	axes := make([]*axis.Index, len(shape))
	rest := raw
	for d, n := range shape {
		// The checksum guards transit corruption, not crafted input, so
		// bound each axis length by the bytes actually present before
		// allocating. Every encoded label is at least two bytes.
		if n > len(rest)/2 {
			return nil, fmt.Errorf("%w: axis %d claims %d labels, %d label bytes remain",
				errs.ErrInvalidPayload, d, n, len(rest))
		}
		labels := make([]label.Label, n)
		for i := range labels {
			var err error
			labels[i], rest, err = label.DecodeBinary(rest)
			if err != nil {
				return nil, fmt.Errorf("%w: axis %d: %s", errs.ErrInvalidPayload, d, err)
			}
		}
		ix, err := axis.New(labels)
		if err != nil {
			return nil, err
		}
		axes[d] = ix
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: %d trailing label bytes", errs.ErrInvalidPayload, len(rest))
	}

	return axes, nil
}

func encodeData(arr *array.Array, engine endian.EndianEngine) ([]byte, error) {
	switch arr.DType() {
	case format.DTypeFloat:
		values, err := arr.Floats()
		if err != nil {
			return nil, err
		}
		buf := make([]byte, 0, len(values)*8)
		for _, v := range values {
			buf = engine.AppendUint64(buf, math.Float64bits(v))
		}

		return buf, nil

	case format.DTypeInt:
		values, err := arr.Ints()
		if err != nil {
			return nil, err
		}
		buf := make([]byte, 0, len(values)*8)
		for _, v := range values {
			buf = engine.AppendUint64(buf, uint64(v)) //nolint:gosec
		}

		return buf, nil

	case format.DTypeString:
		values, err := arr.Strings()
		if err != nil {
			return nil, err
		}
		buf := make([]byte, 0, len(values)*8)
		for _, v := range values {
			buf = binary.AppendUvarint(buf, uint64(len(v)))
			buf = append(buf, v...)
		}

		return buf, nil

	default:
		return nil, fmt.Errorf("%w: cannot encode dtype %v", errs.ErrDtypeMismatch, arr.DType())
	}
}

func decodeData(header *section.Header, raw []byte, size int, axes []*axis.Index) (*array.Array, error) {
	engine := header.Flag.EndianEngine()

	switch header.DType {
	case format.DTypeFloat:
		if len(raw) != size*8 {
			return nil, fmt.Errorf("%w: %d data bytes for %d float64 elements",
				errs.ErrInvalidPayload, len(raw), size)
		}
		values := make([]float64, size)
		for i := range values {
			values[i] = math.Float64frombits(engine.Uint64(raw[i*8:]))
		}

		return array.NewFloatNoCopy(values, axes...)

	case format.DTypeInt:
		if len(raw) != size*8 {
			return nil, fmt.Errorf("%w: %d data bytes for %d int64 elements",
				errs.ErrInvalidPayload, len(raw), size)
		}
		values := make([]int64, size)
		for i := range values {
			values[i] = int64(engine.Uint64(raw[i*8:])) //nolint:gosec
		}

		return array.NewIntNoCopy(values, axes...)

	case format.DTypeString:
		// Every string element costs at least its uvarint length byte.
		if size > len(raw) {
			return nil, fmt.Errorf("%w: %d data bytes for %d string elements",
				errs.ErrInvalidPayload, len(raw), size)
		}
		values := make([]string, size)
		rest := raw
		for i := range values {
			length, n := binary.Uvarint(rest)
			if n <= 0 || uint64(len(rest)-n) < length {
				return nil, fmt.Errorf("%w: truncated string element %d",
					errs.ErrInvalidPayload, i)
			}
			values[i] = string(rest[n : n+int(length)])
			rest = rest[n+int(length):]
		}
		if len(rest) != 0 {
			return nil, fmt.Errorf("%w: %d trailing data bytes", errs.ErrInvalidPayload, len(rest))
		}

		return array.NewStringNoCopy(values, axes...)

	default:
		return nil, fmt.Errorf("%w: cannot decode dtype %v", errs.ErrInvalidPayload, header.DType)
	}
}
