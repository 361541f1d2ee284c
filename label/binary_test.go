package label

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDecodeBinary_RoundTrip(t *testing.T) {
	labels := []Label{
		Int(0),
		Int(-1234567890123),
		Float(3.14159),
		Float(math.Inf(-1)),
		String(""),
		String("cpu.usage"),
		Time(time.Unix(1700000000, 987654321)),
	}

	var buf []byte
	for _, l := range labels {
		buf = l.AppendBinary(buf)
	}

	rest := buf
	for _, want := range labels {
		var got Label
		var err error
		got, rest, err = DecodeBinary(rest)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	require.Empty(t, rest)
}

func TestDecodeBinary_Truncated(t *testing.T) {
	full := Int(42).AppendBinary(nil)
	for i := range full {
		_, _, err := DecodeBinary(full[:i])
		require.Error(t, err, "prefix length %d", i)
	}

	full = String("hello").AppendBinary(nil)
	for i := 1; i < len(full); i++ {
		_, _, err := DecodeBinary(full[:i])
		require.Error(t, err, "prefix length %d", i)
	}
}

func TestDecodeBinary_UnknownKind(t *testing.T) {
	_, _, err := DecodeBinary([]byte{0x7F, 0, 0})
	require.Error(t, err)
}
