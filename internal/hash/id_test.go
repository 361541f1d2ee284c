package hash

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/larr/label"
)

func TestLabelID_Deterministic(t *testing.T) {
	labels := []label.Label{
		label.Int(42),
		label.Float(3.14),
		label.String("aapl"),
		label.Time(time.Unix(1700000000, 0)),
	}

	for _, l := range labels {
		require.Equal(t, LabelID(l), LabelID(l), "label %s", l)
	}
}

func TestLabelID_KindsDistinct(t *testing.T) {
	// Int(1) and Float(1) are distinct labels and must hash differently.
	require.NotEqual(t, LabelID(label.Int(1)), LabelID(label.Float(1)))
	require.NotEqual(t, LabelID(label.String("1")), LabelID(label.Int(1)))
}

func TestLabelID_LongString(t *testing.T) {
	long := make([]byte, 4096)
	for i := range long {
		long[i] = byte('a' + i%26)
	}
	l := label.String(string(long))

	require.Equal(t, LabelID(l), LabelID(l))
	require.NotEqual(t, LabelID(l), LabelID(label.String(string(long[:4095]))))
}
