package stats

import "math"

// MovSum writes the trailing moving sum of src into dst.
//
// Position i covers the window [i-window+1, i]. The first window-1 positions
// are missing, and any missing input inside a window poisons that window's
// output. The kernel runs in O(n) by maintaining a running sum and a count
// of missing values currently inside the window.
//
// dst and src must have equal length and must not alias: the running sum
// evicts src values a full window after reading them.
func MovSum(dst, src []float64, window int) {
	var sum float64
	var missing int

	for i, v := range src {
		if math.IsNaN(v) {
			missing++
		} else {
			sum += v
		}
		if i >= window {
			old := src[i-window]
			if math.IsNaN(old) {
				missing--
			} else {
				sum -= old
			}
		}
		if i < window-1 || missing > 0 {
			dst[i] = math.NaN()
		} else {
			dst[i] = sum
		}
	}
}

// MovSumSkip writes the trailing moving sum of src into dst, skipping
// missing inputs instead of poisoning the window.
//
// With skip > 0 the window ends skip positions before the output: position
// i covers [i-window-skip+1, i-skip]. A window whose inputs are all
// missing yields a missing output. With norm set, each sum is scaled by
// window/(window-missing) to compensate for the skipped values. The first
// window+skip-1 positions are missing either way.
//
// dst and src must have equal length and must not alias: the running sum
// evicts src values a full window after reading them.
func MovSumSkip(dst, src []float64, window, skip int, norm bool) {
	n := len(src)
	var sum float64
	var missing int

	for i := range dst {
		dst[i] = math.NaN()
	}
	for i, v := range src {
		if math.IsNaN(v) {
			missing++
		} else {
			sum += v
		}
		if i >= window {
			old := src[i-window]
			if math.IsNaN(old) {
				missing--
			} else {
				sum -= old
			}
		}
		out := i + skip
		if i < window-1 || out >= n || missing == window {
			continue
		}
		if norm {
			dst[out] = sum * float64(window) / float64(window-missing)
		} else {
			dst[out] = sum
		}
	}
}

// MovSumForward writes the forward-looking moving sum of src into dst:
// position i covers [i+skip, i+skip+window-1]. Missing handling and norm
// match MovSumSkip; the last window+skip-1 positions are missing.
//
// dst and src must have equal length and must not alias.
func MovSumForward(dst, src []float64, window, skip int, norm bool) {
	n := len(src)
	var sum float64
	var missing int

	for i := range dst {
		dst[i] = math.NaN()
	}
	for i := n - 1; i >= 0; i-- {
		v := src[i]
		if math.IsNaN(v) {
			missing++
		} else {
			sum += v
		}
		if i+window < n {
			old := src[i+window]
			if math.IsNaN(old) {
				missing--
			} else {
				sum -= old
			}
		}
		out := i - skip
		if i+window > n || out < 0 || missing == window {
			continue
		}
		if norm {
			dst[out] = sum * float64(window) / float64(window-missing)
		} else {
			dst[out] = sum
		}
	}
}

// Lag shifts src by k positions into dst, exposing missing values at the k
// boundary positions. Positive k shifts toward higher positions, negative k
// toward lower ones. dst and src must have equal length and must not alias
// when k != 0.
func Lag(dst, src []float64, k int) {
	n := len(src)
	for i := range dst {
		j := i - k
		if j < 0 || j >= n {
			dst[i] = math.NaN()
		} else {
			dst[i] = src[j]
		}
	}
}

// Push forward-fills missing values in dst from src: a missing position
// takes the most recent non-missing value, provided that value is at most
// maxAge positions old. dst and src must have equal length; dst may alias
// src.
func Push(dst, src []float64, maxAge int) {
	recent := math.NaN()
	age := 0

	for i, v := range src {
		if !math.IsNaN(v) {
			dst[i] = v
			recent = v
			age = 0

			continue
		}
		age++
		if !math.IsNaN(recent) && age <= maxAge {
			dst[i] = recent
		} else {
			dst[i] = math.NaN()
		}
	}
}
