package label

import (
	"fmt"
	"math"
)

// DecodeBinary decodes one label from the front of data, returning the
// label and the remaining bytes. It is the inverse of AppendBinary.
func DecodeBinary(data []byte) (Label, []byte, error) {
	if len(data) < 1 {
		return Label{}, nil, fmt.Errorf("label: empty input")
	}
	kind := Kind(data[0])
	rest := data[1:]

	switch kind {
	case KindInt, KindTime:
		if len(rest) < 8 {
			return Label{}, nil, fmt.Errorf("label: truncated %s payload", kind)
		}

		return Label{kind: kind, num: int64(readUint64(rest))}, rest[8:], nil

	case KindFloat:
		if len(rest) < 8 {
			return Label{}, nil, fmt.Errorf("label: truncated Float payload")
		}

		return Float(math.Float64frombits(readUint64(rest))), rest[8:], nil

	case KindString:
		length, n := readUvarint(rest)
		if n <= 0 || uint64(len(rest)-n) < length {
			return Label{}, nil, fmt.Errorf("label: truncated String payload")
		}
		rest = rest[n:]

		return String(string(rest[:length])), rest[length:], nil

	default:
		return Label{}, nil, fmt.Errorf("label: unknown kind byte 0x%02X", data[0])
	}
}

func readUint64(b []byte) uint64 {
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}

func readUvarint(b []byte) (uint64, int) {
	var v uint64
	var shift uint
	for i, c := range b {
		if c < 0x80 {
			if i > 9 || (i == 9 && c > 1) {
				return 0, -(i + 1) // overflow
			}

			return v | uint64(c)<<shift, i + 1
		}
		v |= uint64(c&0x7F) << shift
		shift += 7
	}

	return 0, 0
}
