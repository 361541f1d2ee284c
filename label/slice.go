package label

import "time"

// Ints converts a slice of integers into labels.
func Ints(vs ...int64) []Label {
	out := make([]Label, len(vs))
	for i, v := range vs {
		out[i] = Int(v)
	}

	return out
}

// Floats converts a slice of float64 values into labels.
func Floats(vs ...float64) []Label {
	out := make([]Label, len(vs))
	for i, v := range vs {
		out[i] = Float(v)
	}

	return out
}

// Strings converts a slice of strings into labels.
func Strings(vs ...string) []Label {
	out := make([]Label, len(vs))
	for i, v := range vs {
		out[i] = String(v)
	}

	return out
}

// Times converts a slice of timestamps into labels.
func Times(vs ...time.Time) []Label {
	out := make([]Label, len(vs))
	for i, v := range vs {
		out[i] = Time(v)
	}

	return out
}

// Sequence returns the default labels for an axis of length n: Int(0)
// through Int(n-1).
func Sequence(n int) []Label {
	out := make([]Label, n)
	for i := range out {
		out[i] = Int(int64(i))
	}

	return out
}
