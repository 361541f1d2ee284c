// Package format defines the element type and compression enumerations
// shared by the array and snapshot packages.
package format

type (
	DType           uint8
	CompressionType uint8
)

const (
	DTypeFloat  DType = 0x1 // DTypeFloat holds float64 elements; missing is NaN.
	DTypeInt    DType = 0x2 // DTypeInt holds int64 elements; no missing sentinel.
	DTypeString DType = 0x3 // DTypeString holds string elements; missing is "".
	DTypeObject DType = 0x4 // DTypeObject holds opaque elements; missing is nil.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (d DType) String() string {
	switch d {
	case DTypeFloat:
		return "Float"
	case DTypeInt:
		return "Int"
	case DTypeString:
		return "String"
	case DTypeObject:
		return "Object"
	default:
		return "Unknown"
	}
}

// Valid reports whether d is one of the defined element types.
func (d DType) Valid() bool {
	return d >= DTypeFloat && d <= DTypeObject
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
