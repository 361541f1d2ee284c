// Package larr provides labeled N-dimensional arrays with automatic
// label alignment.
//
// A labeled array couples an N-dimensional buffer of homogeneous values
// with one ordered sequence of unique labels per axis. Elements are
// addressed by label rather than by raw position, and binary operations
// between two arrays align their operands by label before computing, so
// callers never reconcile positions by hand.
//
// # Core Features
//
//   - Label-addressed selection: exact keys, inclusive value ranges,
//     boolean masks, and raw positions, freely mixed across axes
//   - Automatic alignment for binary operations (intersection by
//     default, union with missing-value fill on request)
//   - Missing-value semantics per dtype (NaN for floats, "" for
//     strings) with automatic Int to Float promotion where a missing
//     sentinel is required
//   - Moving-window statistics along any axis: sums, ranks, lags,
//     z-scores, quantile binning
//   - Hash-accelerated label lookup (64-bit xxHash64) behind the same
//     observable behavior as the reference map implementation
//   - Round-trippable binary snapshots with optional compression
//     (None, Zstd, S2, LZ4) and CRC32 integrity checks
//
// # Basic Usage
//
// Creating two labeled vectors and adding them:
//
//	import "github.com/arloliu/larr"
//
//	a, _ := larr.NewFloat([]float64{1, 2, 3},
//	    larr.MustIndex(label.Strings("x", "y", "z")))
//	b, _ := larr.NewFloat([]float64{10, 20, 30},
//	    larr.MustIndex(label.Strings("y", "z", "w")))
//
//	// Aligns on the shared labels "y" and "z", then adds.
//	sum, _ := array.Apply(array.OpAdd, a, b)
//
// Snapshot round trip:
//
//	data, _ := larr.Encode(sum, snapshot.WithCompression(format.CompressionZstd))
//	restored, _ := larr.Decode(data)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the array,
// axis, and snapshot packages, simplifying the most common use cases.
// For advanced usage and fine-grained control, use those packages
// directly.
package larr

import (
	"github.com/arloliu/larr/array"
	"github.com/arloliu/larr/axis"
	"github.com/arloliu/larr/format"
	"github.com/arloliu/larr/label"
	"github.com/arloliu/larr/snapshot"
)

var defaultSnapshotOptions = []snapshot.Option{
	snapshot.WithCompression(format.CompressionZstd),
}

// NewFloat creates a float64 array over the given axes. NaN elements are
// treated as missing.
//
// The number of axes determines the rank, the axis lengths determine the
// shape, and data must hold exactly the product of the axis lengths in
// row-major order. Use axis.Default for a positional axis when labels do
// not matter.
//
// Returns an error if the data length does not match the shape or an
// axis contains duplicate labels.
func NewFloat(data []float64, axes ...*axis.Index) (*array.Array, error) {
	return array.NewFloat(data, axes...)
}

// NewInt creates an int64 array over the given axes. Int arrays have no
// missing sentinel; operations that would introduce one promote the
// result to Float.
func NewInt(data []int64, axes ...*axis.Index) (*array.Array, error) {
	return array.NewInt(data, axes...)
}

// NewString creates a string array over the given axes. Empty strings
// are treated as missing.
func NewString(data []string, axes ...*axis.Index) (*array.Array, error) {
	return array.NewString(data, axes...)
}

// NewObject creates an array of opaque elements over the given axes.
// Nil elements are treated as missing. Object arrays support selection
// and alignment but not arithmetic or snapshots.
func NewObject(data []any, axes ...*axis.Index) (*array.Array, error) {
	return array.NewObject(data, axes...)
}

// NewIndex creates an axis index from labels.
//
// Returns an error wrapping errs.ErrDuplicateLabel if any label repeats.
func NewIndex(labels []label.Label) (*axis.Index, error) {
	return axis.New(labels)
}

// MustIndex is NewIndex for labels known to be unique, such as literals
// in examples and tests. It panics on duplicates.
func MustIndex(labels []label.Label) *axis.Index {
	ix, err := axis.New(labels)
	if err != nil {
		panic(err)
	}

	return ix
}

// Encode serializes an array into a self-describing binary snapshot
// with custom options.
//
// Available options:
//   - snapshot.WithCompression(format.CompressionNone|Zstd|S2|LZ4)
//   - snapshot.WithBigEndian()
//
// Returns an error wrapping errs.ErrDtypeMismatch for Object arrays,
// which have no wire form.
func Encode(arr *array.Array, opts ...snapshot.Option) ([]byte, error) {
	return snapshot.Encode(arr, opts...)
}

// EncodeDefault serializes an array with recommended default settings:
// Zstd compression and little-endian payloads. Use this unless you need
// a specific compression trade-off or big-endian interoperability.
func EncodeDefault(arr *array.Array) ([]byte, error) {
	return snapshot.Encode(arr, defaultSnapshotOptions...)
}

// Decode reconstructs an array from a snapshot produced by Encode.
// The result is equal to the original in dtype, shape, labels, and
// data.
func Decode(data []byte) (*array.Array, error) {
	return snapshot.Decode(data)
}
