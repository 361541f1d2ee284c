// Package label defines the closed tagged-variant label type used to name
// positions along larr axes.
//
// A Label is one of four kinds: Int, Float, String, or Time. The type is
// comparable, so labels are usable directly as map keys for the reverse
// label-to-position maps kept by axis indexes. Labels of different kinds are
// never equal to each other: Int(1) and Float(1) are distinct labels even
// though they compare as numerically equal under Compare.
//
// Ordering is defined within compatible kinds only: Int and Float order
// numerically against each other, String orders lexicographically, Time
// orders chronologically. Comparing across incompatible kinds reports
// errs.ErrUnorderable.
package label

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/arloliu/larr/errs"
)

// Kind identifies the variant held by a Label.
type Kind uint8

const (
	KindInt    Kind = 0x1 // KindInt holds a signed 64-bit integer.
	KindFloat  Kind = 0x2 // KindFloat holds a float64.
	KindString Kind = 0x3 // KindString holds a string.
	KindTime   Kind = 0x4 // KindTime holds a UTC timestamp with nanosecond precision.
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindTime:
		return "Time"
	default:
		return "Unknown"
	}
}

// Label is an immutable, comparable axis label.
//
// The zero value is not a valid label; construct labels with Int, Float,
// String, or Time.
type Label struct {
	str  string
	num  int64
	f    float64
	kind Kind
}

// Int returns an integer label.
func Int(v int64) Label {
	return Label{kind: KindInt, num: v}
}

// Float returns a floating-point label.
//
// NaN is not a usable label value: NaN compares unequal to itself, so a NaN
// label can never be found by a reverse-map lookup. Float(NaN) is normalized
// to a single canonical bit pattern so axis uniqueness checks stay coherent,
// but callers should avoid NaN labels entirely.
func Float(v float64) Label {
	if math.IsNaN(v) {
		v = math.NaN()
	}

	return Label{kind: KindFloat, f: v}
}

// String returns a string label.
func String(v string) Label {
	return Label{kind: KindString, str: v}
}

// Time returns a timestamp label with nanosecond precision.
// The location is not part of label identity; the instant is.
func Time(v time.Time) Label {
	return Label{kind: KindTime, num: v.UnixNano()}
}

// Kind reports the variant held by the label.
func (l Label) Kind() Kind {
	return l.kind
}

// IntValue returns the integer payload. It is only meaningful for KindInt.
func (l Label) IntValue() int64 { return l.num }

// FloatValue returns the floating-point payload. It is only meaningful for
// KindFloat.
func (l Label) FloatValue() float64 { return l.f }

// StringValue returns the string payload. It is only meaningful for
// KindString.
func (l Label) StringValue() string { return l.str }

// TimeValue returns the timestamp payload in UTC. It is only meaningful for
// KindTime.
func (l Label) TimeValue() time.Time { return time.Unix(0, l.num).UTC() }

// Compare orders l against other.
//
// Returns -1, 0, or +1 when the labels share a total order, and
// errs.ErrUnorderable otherwise. Int and Float labels order numerically
// against each other; String and Time labels only order within their own
// kind.
func (l Label) Compare(other Label) (int, error) {
	switch {
	case l.isNumeric() && other.isNumeric():
		return cmpFloat(l.numeric(), other.numeric()), nil
	case l.kind == KindString && other.kind == KindString:
		switch {
		case l.str < other.str:
			return -1, nil
		case l.str > other.str:
			return 1, nil
		default:
			return 0, nil
		}
	case l.kind == KindTime && other.kind == KindTime:
		return cmpInt(l.num, other.num), nil
	default:
		return 0, fmt.Errorf("%w: cannot compare %s label with %s label",
			errs.ErrUnorderable, l.kind, other.kind)
	}
}

func (l Label) isNumeric() bool {
	return l.kind == KindInt || l.kind == KindFloat
}

func (l Label) numeric() float64 {
	if l.kind == KindInt {
		return float64(l.num)
	}

	return l.f
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// String renders the label for diagnostics and error messages.
func (l Label) String() string {
	switch l.kind {
	case KindInt:
		return strconv.FormatInt(l.num, 10)
	case KindFloat:
		return strconv.FormatFloat(l.f, 'g', -1, 64)
	case KindString:
		return strconv.Quote(l.str)
	case KindTime:
		return l.TimeValue().Format(time.RFC3339Nano)
	default:
		return "<invalid label>"
	}
}

// AppendBinary appends a canonical binary form of the label to dst and
// returns the extended slice. The form is stable across processes and is
// what the hashed lookup fast path and the snapshot codec feed to xxHash64.
//
// Layout: 1 kind byte followed by the payload (8-byte little-endian for
// Int/Float/Time, varint length prefix plus raw bytes for String).
func (l Label) AppendBinary(dst []byte) []byte {
	dst = append(dst, byte(l.kind))
	switch l.kind {
	case KindInt, KindTime:
		dst = appendUint64(dst, uint64(l.num))
	case KindFloat:
		dst = appendUint64(dst, math.Float64bits(l.f))
	case KindString:
		dst = appendUvarint(dst, uint64(len(l.str)))
		dst = append(dst, l.str...)
	}

	return dst
}

func appendUint64(dst []byte, v uint64) []byte {
	return append(dst,
		byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
		byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56))
}

func appendUvarint(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}

	return append(dst, byte(v))
}
