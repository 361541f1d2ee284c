package array

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/larr/axis"
	"github.com/arloliu/larr/errs"
	"github.com/arloliu/larr/format"
	"github.com/arloliu/larr/label"
)

func newIndex(t *testing.T, labels []label.Label) *axis.Index {
	t.Helper()
	ix, err := axis.New(labels)
	require.NoError(t, err)

	return ix
}

func newFloat(t *testing.T, data []float64, axes ...*axis.Index) *Array {
	t.Helper()
	arr, err := NewFloat(data, axes...)
	require.NoError(t, err)

	return arr
}

func newInt(t *testing.T, data []int64, axes ...*axis.Index) *Array {
	t.Helper()
	arr, err := NewInt(data, axes...)
	require.NoError(t, err)

	return arr
}

func newString(t *testing.T, data []string, axes ...*axis.Index) *Array {
	t.Helper()
	arr, err := NewString(data, axes...)
	require.NoError(t, err)

	return arr
}

// requireFloats compares float slices treating NaN as equal to NaN, which
// require.Equal does not.
func requireFloats(t *testing.T, want, got []float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i, w := range want {
		if math.IsNaN(w) {
			require.True(t, math.IsNaN(got[i]), "index %d: want NaN, got %v", i, got[i])
		} else {
			require.InDelta(t, w, got[i], 1e-12, "index %d", i)
		}
	}
}

// floats extracts the buffer of a Float array.
func floats(t *testing.T, arr *Array) []float64 {
	t.Helper()
	out, err := arr.Floats()
	require.NoError(t, err)

	return out
}

// sample2x3 builds a 2x3 float array:
//
//	      c1 c2 c3
//	r1 [[  1  2  3 ]
//	r2  [  4  5  6 ]]
func sample2x3(t *testing.T) *Array {
	t.Helper()

	return newFloat(t, []float64{1, 2, 3, 4, 5, 6},
		newIndex(t, label.Strings("r1", "r2")),
		newIndex(t, label.Strings("c1", "c2", "c3")))
}

func TestNew_ShapeMismatch(t *testing.T) {
	_, err := NewFloat([]float64{1, 2, 3}, newIndex(t, label.Ints(1, 2)))
	require.ErrorIs(t, err, errs.ErrShapeMismatch)

	_, err = NewFloat([]float64{1, 2, 3})
	require.ErrorIs(t, err, errs.ErrShapeMismatch)
}

func TestNew_CopiesData(t *testing.T) {
	data := []float64{1, 2}
	arr := newFloat(t, data, newIndex(t, label.Ints(0, 1)))

	data[0] = 99
	require.Equal(t, []float64{1, 2}, floats(t, arr))
}

func TestNewNoCopy_TakesOwnership(t *testing.T) {
	data := []float64{1, 2}
	arr, err := NewFloatNoCopy(data, newIndex(t, label.Ints(0, 1)))
	require.NoError(t, err)

	data[0] = 99
	require.Equal(t, []float64{99, 2}, floats(t, arr))
}

func TestArray_Get(t *testing.T) {
	arr := sample2x3(t)

	v, err := arr.Get(label.String("r2"), label.String("c1"))
	require.NoError(t, err)
	require.Equal(t, 4.0, v)

	_, err = arr.Get(label.String("r2"), label.String("nope"))
	require.ErrorIs(t, err, errs.ErrKeyNotFound)

	_, err = arr.Get(label.String("r2"))
	require.ErrorIs(t, err, errs.ErrShapeMismatch)
}

func TestArray_IsMissing(t *testing.T) {
	ix := newIndex(t, label.Ints(0, 1))

	f := newFloat(t, []float64{math.NaN(), 1}, ix)
	require.True(t, f.IsMissing(0))
	require.False(t, f.IsMissing(1))

	s := newString(t, []string{"", "x"}, ix)
	require.True(t, s.IsMissing(0))
	require.False(t, s.IsMissing(1))

	// Int has no missing sentinel.
	i := newInt(t, []int64{0, 1}, ix)
	require.False(t, i.IsMissing(0))

	o, err := NewObject([]any{nil, "x"}, ix)
	require.NoError(t, err)
	require.True(t, o.IsMissing(0))
	require.False(t, o.IsMissing(1))
}

func TestArray_Equal(t *testing.T) {
	a := newFloat(t, []float64{1, math.NaN()}, newIndex(t, label.Ints(0, 1)))
	b := newFloat(t, []float64{1, math.NaN()}, newIndex(t, label.Ints(0, 1)))
	require.True(t, a.Equal(b))

	// Same data, different labels.
	c := newFloat(t, []float64{1, math.NaN()}, newIndex(t, label.Ints(0, 2)))
	require.False(t, a.Equal(c))

	// Same data positions, different dtype.
	d := newInt(t, []int64{1, 0}, newIndex(t, label.Ints(0, 1)))
	require.False(t, a.Equal(d))
}

func TestArray_Copy(t *testing.T) {
	arr := sample2x3(t)
	cp := arr.Copy()

	require.True(t, arr.Equal(cp))
	require.Equal(t, arr.Shape(), cp.Shape())
}

func TestArray_AsFloat(t *testing.T) {
	i := newInt(t, []int64{1, 2}, newIndex(t, label.Ints(0, 1)))
	f, err := i.AsFloat()
	require.NoError(t, err)
	require.Equal(t, format.DTypeFloat, f.DType())
	require.Equal(t, []float64{1, 2}, floats(t, f))

	s := newString(t, []string{"a"}, newIndex(t, label.Ints(0)))
	_, err = s.AsFloat()
	require.ErrorIs(t, err, errs.ErrDtypeMismatch)
}

func TestArray_Transpose(t *testing.T) {
	arr := sample2x3(t)

	tr, err := arr.Transpose(1, 0)
	require.NoError(t, err)
	require.Equal(t, []int{3, 2}, tr.Shape())

	// Labels move with their axes.
	v, err := tr.Get(label.String("c2"), label.String("r1"))
	require.NoError(t, err)
	require.Equal(t, 2.0, v)
	v, err = tr.Get(label.String("c1"), label.String("r2"))
	require.NoError(t, err)
	require.Equal(t, 4.0, v)

	// Double transpose restores the original.
	back, err := tr.Transpose(1, 0)
	require.NoError(t, err)
	require.True(t, arr.Equal(back))
}

func TestArray_TransposeInvalidPerm(t *testing.T) {
	arr := sample2x3(t)

	_, err := arr.Transpose(0)
	require.ErrorIs(t, err, errs.ErrShapeMismatch)

	_, err = arr.Transpose(0, 0)
	require.ErrorIs(t, err, errs.ErrShapeMismatch)

	_, err = arr.Transpose(0, 2)
	require.ErrorIs(t, err, errs.ErrShapeMismatch)
}

func TestArray_BufferAccessors(t *testing.T) {
	arr := sample2x3(t)

	_, err := arr.Ints()
	require.ErrorIs(t, err, errs.ErrDtypeMismatch)
	_, err = arr.Strings()
	require.ErrorIs(t, err, errs.ErrDtypeMismatch)
	_, err = arr.Objects()
	require.ErrorIs(t, err, errs.ErrDtypeMismatch)

	// Floats returns a copy, not the live buffer.
	out := floats(t, arr)
	out[0] = 99
	require.Equal(t, 1.0, floats(t, arr)[0])
}
