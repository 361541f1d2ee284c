// Package errs defines the sentinel errors shared across larr packages.
//
// Every public operation in larr either returns a valid result or an error
// wrapping one of these sentinels, so callers can classify failures with
// errors.Is without parsing messages:
//
//	_, err := arr.Select(array.At(label.String("2024-01-03")))
//	if errors.Is(err, errs.ErrKeyNotFound) {
//	    // label missing from the axis
//	}
package errs

import "errors"

// Label and axis errors.
var (
	// ErrDuplicateLabel indicates an axis was built from, or mutated into,
	// a label sequence containing a repeated label.
	ErrDuplicateLabel = errors.New("duplicate label on axis")

	// ErrKeyNotFound indicates a label-based lookup missed. The wrapping
	// error names the axis and the offending label.
	ErrKeyNotFound = errors.New("label not found")

	// ErrShapeMismatch indicates a rank or axis-length mismatch blocking
	// an operation.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrUnorderable indicates a range selection or sorted union was
	// requested on labels that do not share a total order.
	ErrUnorderable = errors.New("labels are not orderable")

	// ErrDtypeMismatch indicates a binary operation between element types
	// with no defined coercion.
	ErrDtypeMismatch = errors.New("dtype mismatch")

	// ErrInvalidArgument indicates an out-of-domain parameter such as a
	// non-positive window or an oversized lag.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Snapshot encode/decode errors.
var (
	// ErrInvalidMagicNumber indicates the snapshot header does not carry a
	// recognized larr magic number.
	ErrInvalidMagicNumber = errors.New("invalid magic number")

	// ErrInvalidHeaderSize indicates the input is too short to contain a
	// snapshot header.
	ErrInvalidHeaderSize = errors.New("invalid header size")

	// ErrInvalidPayload indicates a snapshot payload is truncated or
	// inconsistent with its header.
	ErrInvalidPayload = errors.New("invalid snapshot payload")

	// ErrChecksumMismatch indicates the snapshot payload failed CRC32
	// verification.
	ErrChecksumMismatch = errors.New("checksum mismatch")
)
