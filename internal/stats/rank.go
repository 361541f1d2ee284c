package stats

import (
	"math"
	"sort"
)

// Rank writes the fractional rank of each non-missing value in src into
// dst. Ranks start at 1; tied values receive the average rank of their tied
// group. Missing values stay missing and are excluded from the ranking of
// the others.
//
// dst and src must have equal length; dst may alias src.
func Rank(dst, src []float64) {
	order := make([]int, 0, len(src))
	for i, v := range src {
		if math.IsNaN(v) {
			dst[i] = math.NaN()
		} else {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return src[order[a]] < src[order[b]]
	})

	for start := 0; start < len(order); {
		end := start + 1
		for end < len(order) && src[order[end]] == src[order[start]] {
			end++
		}
		// Average of 1-based ranks start+1 .. end.
		rank := float64(start+end+1) / 2
		for _, idx := range order[start:end] {
			dst[idx] = rank
		}
		start = end
	}
}

// LastRank returns the rank of the last element of the lane among all
// non-missing elements, normalized to [-1, 1] and adjusted for ties.
//
// Returns NaN when the last element is missing or when it is the only
// non-missing element.
func LastRank(lane []float64) float64 {
	if len(lane) == 0 {
		return math.NaN()
	}
	last := lane[len(lane)-1]
	if math.IsNaN(last) {
		return math.NaN()
	}

	var below, equal, finite int
	for _, v := range lane {
		if math.IsNaN(v) {
			continue
		}
		finite++
		if v < last {
			below++
		} else if v == last {
			equal++
		}
	}
	if finite < 2 {
		return math.NaN()
	}

	// Tie-adjusted 0-based rank of the last element, then scaled to [-1, 1].
	r := (float64(2*below+equal) - 1) / 2
	r /= float64(finite - 1)

	return 2 * (r - 0.5)
}

// MovRank writes the moving last-element rank of src into dst: position i
// holds LastRank over the window [i-window+1, i]. The first window-1
// positions are missing.
//
// dst and src must have equal length and must not alias.
func MovRank(dst, src []float64, window int) {
	for i := range dst {
		if i < window-1 {
			dst[i] = math.NaN()
		} else {
			dst[i] = LastRank(src[i-window+1 : i+1])
		}
	}
}

// Quantile writes the quantile bin of each value into dst, normalized to
// [-1, 1]. Values are ordinally ranked among the non-missing elements (ties
// broken by lane order), split into q bins of equal rank span, and the bin
// number is rescaled so the lowest bin maps to -1 and the highest to +1.
// With q == 1 every non-missing value maps to 0. Missing values stay
// missing.
//
// dst and src must have equal length; dst may alias src. q must be at
// least 1 and at most the number of lane elements; the array layer
// validates this.
func Quantile(dst, src []float64, q int) {
	order := make([]int, 0, len(src))
	for i, v := range src {
		if math.IsNaN(v) {
			dst[i] = math.NaN()
		} else {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return src[order[a]] < src[order[b]]
	})

	if q == 1 {
		for _, idx := range order {
			dst[idx] = 0
		}

		return
	}

	n := len(order)
	span := float64(n-1) / float64(q)
	for ordinal, idx := range order {
		bin := int(math.Ceil(float64(ordinal)/span)) // bins 0..q, 0 only for ordinal 0
		if bin < 1 {
			bin = 1
		}
		if bin > q {
			bin = q
		}
		dst[idx] = 2*(float64(bin-1)/float64(q-1)) - 1
	}
}
