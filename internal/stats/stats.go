// Package stats implements the one-dimensional lane kernels behind the
// array package's windowed and statistical transforms.
//
// Every kernel operates on a []float64 lane where NaN marks a missing value.
// Kernels are pure reference implementations: no shared state, no
// allocation beyond the destination slice the caller provides, identical
// results regardless of how lanes are scheduled.
package stats

import (
	"math"
	"sort"
)

// Mean returns the arithmetic mean over non-missing values, or NaN when the
// lane is all missing.
func Mean(lane []float64) float64 {
	var sum float64
	var n int
	for _, v := range lane {
		if !math.IsNaN(v) {
			sum += v
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}

	return sum / float64(n)
}

// Std returns the population standard deviation over non-missing values,
// or NaN when the lane has no non-missing values.
func Std(lane []float64) float64 {
	mean := Mean(lane)
	if math.IsNaN(mean) {
		return math.NaN()
	}

	var sum float64
	var n int
	for _, v := range lane {
		if !math.IsNaN(v) {
			d := v - mean
			sum += d * d
			n++
		}
	}

	return math.Sqrt(sum / float64(n))
}

// Median returns the median over non-missing values, or NaN when the lane
// is all missing. Even-length lanes return the mean of the two middle
// values.
func Median(lane []float64) float64 {
	finite := make([]float64, 0, len(lane))
	for _, v := range lane {
		if !math.IsNaN(v) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return math.NaN()
	}
	sort.Float64s(finite)

	mid := len(finite) / 2
	if len(finite)%2 == 1 {
		return finite[mid]
	}

	return (finite[mid-1] + finite[mid]) / 2
}

// GeometricMean returns the geometric mean over non-missing values, or NaN
// when the lane is all missing. Values must be greater than zero; the array
// layer validates this before calling.
func GeometricMean(lane []float64) float64 {
	var sum float64
	var n int
	for _, v := range lane {
		if !math.IsNaN(v) {
			sum += math.Log(v)
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}

	return math.Exp(sum / float64(n))
}

// Correlation returns the Pearson correlation of two equal-length lanes,
// computed over positions where both values are non-missing. Returns NaN
// when fewer than two such positions exist or either side has zero
// variance.
func Correlation(a, b []float64) float64 {
	var meanA, meanB float64
	var n int
	for i, v := range a {
		if !math.IsNaN(v) && !math.IsNaN(b[i]) {
			meanA += v
			meanB += b[i]
			n++
		}
	}
	if n < 2 {
		return math.NaN()
	}
	meanA /= float64(n)
	meanB /= float64(n)

	var num, denA, denB float64
	for i, v := range a {
		if !math.IsNaN(v) && !math.IsNaN(b[i]) {
			da := v - meanA
			db := b[i] - meanB
			num += da * db
			denA += da * da
			denB += db * db
		}
	}
	den := math.Sqrt(denA * denB)
	if den == 0 {
		return math.NaN()
	}

	return num / den
}
