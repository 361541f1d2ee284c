package array

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/larr/errs"
	"github.com/arloliu/larr/label"
)

func TestTake_ReordersDataAndLabels(t *testing.T) {
	arr := newFloat(t, []float64{1, 2, 3}, newIndex(t, label.Strings("a", "b", "c")))

	got, err := arr.Take(0, []int{2, 0})
	require.NoError(t, err)
	require.Equal(t, []float64{3, 1}, floats(t, got))
	require.Equal(t, label.Strings("c", "a"), got.Axis(0).Labels())
}

func TestTake_InnerAxis(t *testing.T) {
	arr := sample2x3(t)

	got, err := arr.Take(1, []int{1})
	require.NoError(t, err)
	require.Equal(t, []int{2, 1}, got.Shape())
	require.Equal(t, []float64{2, 5}, floats(t, got))
	require.Equal(t, label.Strings("c2"), got.Axis(1).Labels())
	require.True(t, arr.Axis(0).Equal(got.Axis(0)))
}

func TestTake_DuplicatePosition(t *testing.T) {
	arr := newFloat(t, []float64{1, 2}, newIndex(t, label.Ints(0, 1)))

	_, err := arr.Take(0, []int{1, 1})
	require.ErrorIs(t, err, errs.ErrDuplicateLabel)
}

func TestTake_OutOfRange(t *testing.T) {
	arr := newFloat(t, []float64{1, 2}, newIndex(t, label.Ints(0, 1)))

	_, err := arr.Take(0, []int{2})
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	_, err = arr.Take(0, []int{-1})
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	_, err = arr.Take(1, []int{0})
	require.ErrorIs(t, err, errs.ErrShapeMismatch)
}

func TestTake_DoesNotMutateReceiver(t *testing.T) {
	arr := newFloat(t, []float64{1, 2, 3}, newIndex(t, label.Ints(0, 1, 2)))
	before := arr.Copy()

	_, err := arr.Take(0, []int{2, 1, 0})
	require.NoError(t, err)
	require.True(t, before.Equal(arr))
}
