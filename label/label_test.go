package label

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/larr/errs"
)

func TestLabel_KindsDistinct(t *testing.T) {
	// Labels of different kinds are never equal, even with equal payloads.
	require.NotEqual(t, Int(1), Float(1))
	require.NotEqual(t, Int(1), String("1"))
	require.Equal(t, Int(1), Int(1))
	require.Equal(t, String("x"), String("x"))
}

func TestLabel_CompareNumeric(t *testing.T) {
	tests := []struct {
		name string
		a, b Label
		want int
	}{
		{"int less", Int(1), Int(2), -1},
		{"int equal", Int(5), Int(5), 0},
		{"int greater", Int(9), Int(2), 1},
		{"float less", Float(1.5), Float(2.5), -1},
		{"mixed int float equal", Int(2), Float(2.0), 0},
		{"mixed float int greater", Float(2.5), Int(2), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.Compare(tt.b)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestLabel_CompareString(t *testing.T) {
	got, err := String("aapl").Compare(String("ibm"))
	require.NoError(t, err)
	require.Equal(t, -1, got)

	got, err = String("ibm").Compare(String("ibm"))
	require.NoError(t, err)
	require.Equal(t, 0, got)
}

func TestLabel_CompareTime(t *testing.T) {
	t0 := time.Unix(1700000000, 0)
	t1 := t0.Add(time.Hour)

	got, err := Time(t0).Compare(Time(t1))
	require.NoError(t, err)
	require.Equal(t, -1, got)
}

func TestLabel_CompareUnorderable(t *testing.T) {
	_, err := String("a").Compare(Int(1))
	require.ErrorIs(t, err, errs.ErrUnorderable)

	_, err = Time(time.Unix(0, 0)).Compare(Float(1))
	require.ErrorIs(t, err, errs.ErrUnorderable)
}

func TestLabel_TimeIdentityIgnoresLocation(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	instant := time.Unix(1700000000, 123)

	require.Equal(t, Time(instant), Time(instant.In(loc)))
}

func TestLabel_String(t *testing.T) {
	require.Equal(t, "42", Int(42).String())
	require.Equal(t, "2.5", Float(2.5).String())
	require.Equal(t, `"aapl"`, String("aapl").String())
}

func TestLabel_AppendBinaryStable(t *testing.T) {
	labels := []Label{Int(-3), Float(2.5), String("hello"), Time(time.Unix(12, 34))}
	for _, l := range labels {
		first := l.AppendBinary(nil)
		second := l.AppendBinary(nil)
		require.Equal(t, first, second, "label %s", l)
		require.Greater(t, len(first), 1)
		require.Equal(t, byte(l.Kind()), first[0])
	}
}

func TestSequence(t *testing.T) {
	seq := Sequence(3)
	require.Equal(t, []Label{Int(0), Int(1), Int(2)}, seq)
	require.Empty(t, Sequence(0))
}

func TestSliceConstructors(t *testing.T) {
	require.Equal(t, []Label{Int(1), Int(2)}, Ints(1, 2))
	require.Equal(t, []Label{Float(0.5)}, Floats(0.5))
	require.Equal(t, []Label{String("a"), String("b")}, Strings("a", "b"))
	require.Len(t, Times(time.Unix(0, 0)), 1)
}
