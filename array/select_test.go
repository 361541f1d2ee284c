package array

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/larr/errs"
	"github.com/arloliu/larr/label"
)

func TestSelect_IdentityRoundTrip(t *testing.T) {
	arr := sample2x3(t)

	got, err := arr.Select(All(), All())
	require.NoError(t, err)
	require.True(t, arr.Equal(got))
	require.NotSame(t, arr, got)
}

func TestSelect_AtCollapsesAxis(t *testing.T) {
	arr := sample2x3(t)

	got, err := arr.Select(At(label.String("r2")), All())
	require.NoError(t, err)
	require.Equal(t, 1, got.Rank())
	require.Equal(t, []float64{4, 5, 6}, floats(t, got))
	require.Equal(t, label.Strings("c1", "c2", "c3"), got.Axis(0).Labels())
}

func TestSelect_AllAtFails(t *testing.T) {
	arr := sample2x3(t)

	_, err := arr.Select(At(label.String("r1")), At(label.String("c1")))
	require.ErrorIs(t, err, errs.ErrShapeMismatch)
}

func TestSelect_KeysReorder(t *testing.T) {
	arr := sample2x3(t)

	got, err := arr.Select(Keys(label.String("r2"), label.String("r1")), All())
	require.NoError(t, err)
	require.Equal(t, []float64{4, 5, 6, 1, 2, 3}, floats(t, got))
	require.Equal(t, label.Strings("r2", "r1"), got.Axis(0).Labels())
}

func TestSelect_KeysNotFound(t *testing.T) {
	arr := sample2x3(t)

	_, err := arr.Select(Keys(label.String("r9")), All())
	require.ErrorIs(t, err, errs.ErrKeyNotFound)
}

func TestSelect_RangeInclusiveByValue(t *testing.T) {
	// The axis is deliberately unsorted: range selection compares label
	// values and preserves axis order.
	arr := newFloat(t, []float64{1, 2, 3}, newIndex(t, label.Ints(10, 5, 20)))

	got, err := arr.Select(Range(label.Int(5), label.Int(15)))
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2}, floats(t, got))
	require.Equal(t, label.Ints(10, 5), got.Axis(0).Labels())

	// Endpoints need not exist on the axis; 15 does not.
	got, err = arr.Select(Range(label.Int(10), label.Int(10)))
	require.NoError(t, err)
	require.Equal(t, []float64{1}, floats(t, got))
}

func TestSelect_RangeUnorderable(t *testing.T) {
	arr := newFloat(t, []float64{1, 2}, newIndex(t, label.Strings("a", "b")))

	_, err := arr.Select(Range(label.Int(0), label.Int(9)))
	require.ErrorIs(t, err, errs.ErrUnorderable)
}

func TestSelect_Mask(t *testing.T) {
	arr := sample2x3(t)

	got, err := arr.Select(All(), Mask([]bool{true, false, true}))
	require.NoError(t, err)
	require.Equal(t, []int{2, 2}, got.Shape())
	require.Equal(t, []float64{1, 3, 4, 6}, floats(t, got))
	require.Equal(t, label.Strings("c1", "c3"), got.Axis(1).Labels())
}

func TestSelect_MaskLengthMismatch(t *testing.T) {
	arr := sample2x3(t)

	_, err := arr.Select(All(), Mask([]bool{true}))
	require.ErrorIs(t, err, errs.ErrShapeMismatch)
}

func TestSelect_Pos(t *testing.T) {
	arr := sample2x3(t)

	got, err := arr.Select(All(), Pos(2, 0))
	require.NoError(t, err)
	require.Equal(t, []float64{3, 1, 6, 4}, floats(t, got))
	require.Equal(t, label.Strings("c3", "c1"), got.Axis(1).Labels())

	_, err = arr.Select(All(), Pos(3))
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestSelect_PosIsNotLabel(t *testing.T) {
	// At(label.Int(3)) addresses the label 3, never position 3.
	arr := newFloat(t, []float64{1, 2, 3}, newIndex(t, label.Ints(3, 4, 5)))

	got, err := arr.Select(At(label.Int(3)))
	require.NoError(t, err)
	require.Equal(t, []float64{1}, floats(t, got))

	got, err = arr.Select(Pos(2))
	require.NoError(t, err)
	require.Equal(t, []float64{3}, floats(t, got))
}

func TestSelect_SpecCountMismatch(t *testing.T) {
	arr := sample2x3(t)

	_, err := arr.Select(All())
	require.ErrorIs(t, err, errs.ErrShapeMismatch)
}

func TestSelect_MixedSpecs(t *testing.T) {
	arr := sample2x3(t)

	got, err := arr.Select(
		Keys(label.String("r2")),
		Range(label.String("c2"), label.String("c3")),
	)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, got.Shape())
	require.Equal(t, []float64{5, 6}, floats(t, got))
}

func TestSelect_StringArray(t *testing.T) {
	arr := newString(t, []string{"x", "y", "z"}, newIndex(t, label.Ints(0, 1, 2)))

	got, err := arr.Select(Keys(label.Int(2), label.Int(0)))
	require.NoError(t, err)
	values, err := got.Strings()
	require.NoError(t, err)
	require.Equal(t, []string{"z", "x"}, values)
}
