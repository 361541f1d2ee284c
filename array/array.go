// Package array implements the labeled N-dimensional array at the heart of
// larr, together with its label-based selection, alignment, elementwise
// dispatch, and windowed transform engines.
//
// An Array couples one homogeneous, row-major data buffer with one axis
// index per dimension. The axis indexes carry the labels; every label-based
// operation resolves labels to positions through them and then works
// positionally against the buffer. Arrays are immutable in shape: every
// transforming operation returns a new Array and never mutates its inputs.
//
// # Missing values
//
// Each element type has its own missing-value sentinel: NaN for Float, the
// empty string for String, and nil for Object. Int has no sentinel; any
// operation that must introduce missing values into an Int array first
// promotes it to Float. String and Object arrays support selection,
// alignment, lag and shuffle, but not numeric transforms.
package array

import (
	"fmt"
	"math"

	"github.com/arloliu/larr/axis"
	"github.com/arloliu/larr/errs"
	"github.com/arloliu/larr/format"
	"github.com/arloliu/larr/label"
)

// Array is a labeled N-dimensional array: a dtype-tagged buffer of fixed
// shape plus one axis.Index per dimension.
//
// The zero value is not usable; construct arrays with NewFloat, NewInt,
// NewString, or NewObject.
type Array struct {
	f []float64
	i []int64
	s []string
	o []any

	axes    []*axis.Index
	shape   []int
	strides []int
	dtype   format.DType
}

// NewFloat builds a float64 array over the given axes.
//
// The rank equals the number of axes and must be at least one. The data
// length must equal the product of the axis lengths; data is laid out
// row-major (last axis fastest). The data slice is copied.
func NewFloat(data []float64, axes ...*axis.Index) (*Array, error) {
	arr, err := newArray(format.DTypeFloat, len(data), axes)
	if err != nil {
		return nil, err
	}
	arr.f = make([]float64, len(data))
	copy(arr.f, data)

	return arr, nil
}

// NewInt builds an int64 array over the given axes. The data slice is
// copied.
func NewInt(data []int64, axes ...*axis.Index) (*Array, error) {
	arr, err := newArray(format.DTypeInt, len(data), axes)
	if err != nil {
		return nil, err
	}
	arr.i = make([]int64, len(data))
	copy(arr.i, data)

	return arr, nil
}

// NewString builds a string array over the given axes. The empty string is
// the missing-value sentinel. The data slice is copied.
func NewString(data []string, axes ...*axis.Index) (*Array, error) {
	arr, err := newArray(format.DTypeString, len(data), axes)
	if err != nil {
		return nil, err
	}
	arr.s = make([]string, len(data))
	copy(arr.s, data)

	return arr, nil
}

// NewObject builds an array of opaque elements over the given axes. Nil is
// the missing-value sentinel. The data slice is copied; the elements it
// points at are shared with the caller.
func NewObject(data []any, axes ...*axis.Index) (*Array, error) {
	arr, err := newArray(format.DTypeObject, len(data), axes)
	if err != nil {
		return nil, err
	}
	arr.o = make([]any, len(data))
	copy(arr.o, data)

	return arr, nil
}

// NewFloatNoCopy is NewFloat without the defensive copy: the array takes
// ownership of data, which must not be touched by the caller afterwards.
// Meant for decoders and generators that build the slice themselves.
func NewFloatNoCopy(data []float64, axes ...*axis.Index) (*Array, error) {
	arr, err := newArray(format.DTypeFloat, len(data), axes)
	if err != nil {
		return nil, err
	}
	arr.f = data

	return arr, nil
}

// NewIntNoCopy is NewInt without the defensive copy; the array takes
// ownership of data.
func NewIntNoCopy(data []int64, axes ...*axis.Index) (*Array, error) {
	arr, err := newArray(format.DTypeInt, len(data), axes)
	if err != nil {
		return nil, err
	}
	arr.i = data

	return arr, nil
}

// NewStringNoCopy is NewString without the defensive copy; the array takes
// ownership of data.
func NewStringNoCopy(data []string, axes ...*axis.Index) (*Array, error) {
	arr, err := newArray(format.DTypeString, len(data), axes)
	if err != nil {
		return nil, err
	}
	arr.s = data

	return arr, nil
}

func newArray(dtype format.DType, dataLen int, axes []*axis.Index) (*Array, error) {
	if len(axes) == 0 {
		return nil, fmt.Errorf("%w: an array needs at least one axis", errs.ErrShapeMismatch)
	}

	shape := make([]int, len(axes))
	size := 1
	for i, ix := range axes {
		shape[i] = ix.Len()
		size *= ix.Len()
	}
	if dataLen != size {
		return nil, fmt.Errorf("%w: %d elements for shape %v (want %d)",
			errs.ErrShapeMismatch, dataLen, shape, size)
	}

	owned := make([]*axis.Index, len(axes))
	copy(owned, axes)

	return &Array{
		dtype:   dtype,
		shape:   shape,
		strides: rowMajorStrides(shape),
		axes:    owned,
	}, nil
}

func rowMajorStrides(shape []int) []int {
	strides := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= shape[i]
	}

	return strides
}

// DType reports the element type of the buffer.
func (a *Array) DType() format.DType {
	return a.dtype
}

// Rank reports the number of dimensions.
func (a *Array) Rank() int {
	return len(a.shape)
}

// Shape returns a copy of the array's shape.
func (a *Array) Shape() []int {
	out := make([]int, len(a.shape))
	copy(out, a.shape)

	return out
}

// Size reports the total number of elements.
func (a *Array) Size() int {
	size := 1
	for _, n := range a.shape {
		size *= n
	}

	return size
}

// Axis returns the index attached to dimension d. Panics when d is out of
// range, matching slice indexing semantics.
func (a *Array) Axis(d int) *axis.Index {
	return a.axes[d]
}

// Axes returns a copy of the axis list. The indexes themselves are
// immutable and shared.
func (a *Array) Axes() []*axis.Index {
	out := make([]*axis.Index, len(a.axes))
	copy(out, a.axes)

	return out
}

// Floats returns a copy of the buffer. Fails unless the dtype is Float.
func (a *Array) Floats() ([]float64, error) {
	if a.dtype != format.DTypeFloat {
		return nil, fmt.Errorf("%w: Floats on %s array", errs.ErrDtypeMismatch, a.dtype)
	}
	out := make([]float64, len(a.f))
	copy(out, a.f)

	return out, nil
}

// Ints returns a copy of the buffer. Fails unless the dtype is Int.
func (a *Array) Ints() ([]int64, error) {
	if a.dtype != format.DTypeInt {
		return nil, fmt.Errorf("%w: Ints on %s array", errs.ErrDtypeMismatch, a.dtype)
	}
	out := make([]int64, len(a.i))
	copy(out, a.i)

	return out, nil
}

// Strings returns a copy of the buffer. Fails unless the dtype is String.
func (a *Array) Strings() ([]string, error) {
	if a.dtype != format.DTypeString {
		return nil, fmt.Errorf("%w: Strings on %s array", errs.ErrDtypeMismatch, a.dtype)
	}
	out := make([]string, len(a.s))
	copy(out, a.s)

	return out, nil
}

// Objects returns a copy of the buffer. Fails unless the dtype is Object.
func (a *Array) Objects() ([]any, error) {
	if a.dtype != format.DTypeObject {
		return nil, fmt.Errorf("%w: Objects on %s array", errs.ErrDtypeMismatch, a.dtype)
	}
	out := make([]any, len(a.o))
	copy(out, a.o)

	return out, nil
}

// offset converts a full positional index to a flat buffer offset.
// Panics when the number of indices does not match the rank or an index is
// out of range.
func (a *Array) offset(indices []int) int {
	if len(indices) != len(a.shape) {
		panic(fmt.Sprintf("array: %d indices for rank %d", len(indices), len(a.shape)))
	}
	off := 0
	for d, idx := range indices {
		if idx < 0 || idx >= a.shape[d] {
			panic(fmt.Sprintf("array: index %d out of range on axis %d (length %d)",
				idx, d, a.shape[d]))
		}
		off += idx * a.strides[d]
	}

	return off
}

// Get resolves one label per axis and returns the addressed element as a
// float64, int64, string, or the stored opaque value.
//
// Fails with errs.ErrKeyNotFound when a label is absent, naming the axis
// and label, and with errs.ErrShapeMismatch when the number of labels does
// not match the rank.
func (a *Array) Get(labels ...label.Label) (any, error) {
	if len(labels) != len(a.axes) {
		return nil, fmt.Errorf("%w: %d labels for rank %d",
			errs.ErrShapeMismatch, len(labels), len(a.axes))
	}
	indices := make([]int, len(labels))
	for d, l := range labels {
		pos, err := a.axes[d].Position(l)
		if err != nil {
			return nil, fmt.Errorf("axis %d: %w", d, err)
		}
		indices[d] = pos
	}
	off := a.offset(indices)

	switch a.dtype {
	case format.DTypeFloat:
		return a.f[off], nil
	case format.DTypeInt:
		return a.i[off], nil
	case format.DTypeString:
		return a.s[off], nil
	default:
		return a.o[off], nil
	}
}

// IsMissing reports whether the element at the given positional indices is
// the dtype's missing sentinel. Int arrays have no sentinel, so IsMissing
// is always false for them.
func (a *Array) IsMissing(indices ...int) bool {
	off := a.offset(indices)
	switch a.dtype {
	case format.DTypeFloat:
		return math.IsNaN(a.f[off])
	case format.DTypeString:
		return a.s[off] == ""
	case format.DTypeObject:
		return a.o[off] == nil
	default:
		return false
	}
}

// Copy returns a deep copy of the array. Object elements are shared, not
// cloned.
func (a *Array) Copy() *Array {
	out := a.emptyLike(a.dtype, a.shape, a.axes)
	switch a.dtype {
	case format.DTypeFloat:
		copy(out.f, a.f)
	case format.DTypeInt:
		copy(out.i, a.i)
	case format.DTypeString:
		copy(out.s, a.s)
	default:
		copy(out.o, a.o)
	}

	return out
}

// emptyLike allocates an uninitialized array of the given dtype and shape,
// reusing the provided axis indexes.
func (a *Array) emptyLike(dtype format.DType, shape []int, axes []*axis.Index) *Array {
	ownedShape := make([]int, len(shape))
	copy(ownedShape, shape)
	ownedAxes := make([]*axis.Index, len(axes))
	copy(ownedAxes, axes)

	out := &Array{
		dtype:   dtype,
		shape:   ownedShape,
		strides: rowMajorStrides(ownedShape),
		axes:    ownedAxes,
	}
	size := out.Size()
	switch dtype {
	case format.DTypeFloat:
		out.f = make([]float64, size)
	case format.DTypeInt:
		out.i = make([]int64, size)
	case format.DTypeString:
		out.s = make([]string, size)
	default:
		out.o = make([]any, size)
	}

	return out
}

// Equal reports whether two arrays hold the same dtype, shape, labels, and
// data. Missing values compare equal to missing values, so two NaNs at the
// same position do not break equality. Object elements compare by ==.
func (a *Array) Equal(other *Array) bool {
	if a.dtype != other.dtype || len(a.shape) != len(other.shape) {
		return false
	}
	for d, n := range a.shape {
		if other.shape[d] != n || !a.axes[d].Equal(other.axes[d]) {
			return false
		}
	}

	switch a.dtype {
	case format.DTypeFloat:
		for i, v := range a.f {
			w := other.f[i]
			if v != w && !(math.IsNaN(v) && math.IsNaN(w)) {
				return false
			}
		}
	case format.DTypeInt:
		for i, v := range a.i {
			if other.i[i] != v {
				return false
			}
		}
	case format.DTypeString:
		for i, v := range a.s {
			if other.s[i] != v {
				return false
			}
		}
	default:
		for i, v := range a.o {
			if other.o[i] != v {
				return false
			}
		}
	}

	return true
}

// AsFloat returns a Float copy of a numeric array. Float arrays are copied
// as-is; Int arrays are converted element by element. Fails with
// errs.ErrDtypeMismatch for String and Object arrays.
func (a *Array) AsFloat() (*Array, error) {
	switch a.dtype {
	case format.DTypeFloat:
		return a.Copy(), nil
	case format.DTypeInt:
		out := a.emptyLike(format.DTypeFloat, a.shape, a.axes)
		for i, v := range a.i {
			out.f[i] = float64(v)
		}

		return out, nil
	default:
		return nil, fmt.Errorf("%w: cannot convert %s array to Float",
			errs.ErrDtypeMismatch, a.dtype)
	}
}

// Transpose returns a new array with axes reordered by perm, which must be
// a permutation of 0..rank-1. Axis labels move with their axes; data is
// copied into contiguous row-major order for the new axis order.
func (a *Array) Transpose(perm ...int) (*Array, error) {
	d := len(a.shape)
	if len(perm) != d {
		return nil, fmt.Errorf("%w: %d permutation entries for rank %d",
			errs.ErrShapeMismatch, len(perm), d)
	}
	seen := make([]bool, d)
	for _, p := range perm {
		if p < 0 || p >= d || seen[p] {
			return nil, fmt.Errorf("%w: %v is not a permutation of axes",
				errs.ErrShapeMismatch, perm)
		}
		seen[p] = true
	}

	newShape := make([]int, d)
	newAxes := make([]*axis.Index, d)
	for i, p := range perm {
		newShape[i] = a.shape[p]
		newAxes[i] = a.axes[p]
	}

	out := a.emptyLike(a.dtype, newShape, newAxes)
	srcIdx := make([]int, d)
	dstIdx := make([]int, d)
	for flat := 0; flat < out.Size(); flat++ {
		unravel(flat, out.shape, dstIdx)
		for i, p := range perm {
			srcIdx[p] = dstIdx[i]
		}
		out.setFrom(flat, a, a.offset(srcIdx))
	}

	return out, nil
}

// unravel decomposes a flat row-major offset into per-axis indices.
func unravel(flat int, shape, indices []int) {
	for d := len(shape) - 1; d >= 0; d-- {
		indices[d] = flat % shape[d]
		flat /= shape[d]
	}
}

// setFrom copies the element at src's flat offset srcOff into the
// receiver's flat offset dstOff. Both arrays must share a dtype.
func (a *Array) setFrom(dstOff int, src *Array, srcOff int) {
	switch a.dtype {
	case format.DTypeFloat:
		a.f[dstOff] = src.f[srcOff]
	case format.DTypeInt:
		a.i[dstOff] = src.i[srcOff]
	case format.DTypeString:
		a.s[dstOff] = src.s[srcOff]
	default:
		a.o[dstOff] = src.o[srcOff]
	}
}

// setMissing writes the dtype's missing sentinel at the flat offset.
// Must not be called on Int arrays; callers promote to Float first.
func (a *Array) setMissing(off int) {
	switch a.dtype {
	case format.DTypeFloat:
		a.f[off] = math.NaN()
	case format.DTypeString:
		a.s[off] = ""
	case format.DTypeObject:
		a.o[off] = nil
	default:
		panic("array: no missing sentinel for Int dtype")
	}
}

// String renders a short metadata summary, not the data itself.
func (a *Array) String() string {
	return fmt.Sprintf("larr.Array{dtype: %s, shape: %v, rank: %d}",
		a.dtype, a.shape, len(a.shape))
}
