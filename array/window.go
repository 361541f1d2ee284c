package array

import (
	"fmt"
	"math/rand"

	"github.com/arloliu/larr/axis"
	"github.com/arloliu/larr/errs"
	"github.com/arloliu/larr/format"
	"github.com/arloliu/larr/internal/pool"
	"github.com/arloliu/larr/internal/stats"
)

// Windowed and statistical transforms. Each operates along one
// caller-specified axis, treating every other axis as an independent lane.
// Lanes never share accumulators, so results are identical no matter how
// lanes are ordered or scheduled. Int arrays are promoted to Float, since
// these transforms introduce missing values; String and Object arrays fail
// with errs.ErrDtypeMismatch except where noted.

// MovSum computes the trailing moving sum over the given window.
//
// Position i holds the sum over positions [i-window+1, i] of its lane. The
// first window-1 positions are missing, and a single missing input inside a
// window poisons that window's output. For the missing-skipping policy use
// MovSumSkip. Runs in O(n) per lane.
func (a *Array) MovSum(dim, window int) (*Array, error) {
	if err := a.checkWindow(dim, window, 1); err != nil {
		return nil, err
	}

	return a.mapLanes(dim, func(dst, src []float64) {
		stats.MovSum(dst, src, window)
	})
}

// MovSumSkip computes the trailing moving sum, skipping missing inputs
// instead of poisoning the window. With skip > 0 the window ends skip
// positions before the output position, so position i covers
// [i-window-skip+1, i-skip]. With norm set, sums are scaled by
// window/(window-missing) to compensate for skipped values. A window with
// no non-missing inputs yields a missing output.
func (a *Array) MovSumSkip(dim, window, skip int, norm bool) (*Array, error) {
	if err := a.checkWindow(dim, window, 1); err != nil {
		return nil, err
	}
	if err := a.checkSkip(dim, skip); err != nil {
		return nil, err
	}

	return a.mapLanes(dim, func(dst, src []float64) {
		stats.MovSumSkip(dst, src, window, skip, norm)
	})
}

// MovSumForward computes the forward-looking moving sum: position i covers
// [i+skip, i+skip+window-1] of its lane, skipping missing inputs. The last
// window+skip-1 positions are missing. Missing handling and norm match
// MovSumSkip.
func (a *Array) MovSumForward(dim, window, skip int, norm bool) (*Array, error) {
	if err := a.checkWindow(dim, window, 1); err != nil {
		return nil, err
	}
	if err := a.checkSkip(dim, skip); err != nil {
		return nil, err
	}

	return a.mapLanes(dim, func(dst, src []float64) {
		stats.MovSumForward(dst, src, window, skip, norm)
	})
}

// MovRank computes the moving rank of each position among the window
// ending there, normalized to [-1, 1] and adjusted for ties. The first
// window-1 positions are missing; a missing input stays missing. The
// window must be at least 2.
func (a *Array) MovRank(dim, window int) (*Array, error) {
	if err := a.checkWindow(dim, window, 2); err != nil {
		return nil, err
	}

	return a.mapLanes(dim, func(dst, src []float64) {
		stats.MovRank(dst, src, window)
	})
}

// Ranking replaces each value with its fractional rank among the
// non-missing values of its lane, starting at 1, with tied values
// receiving the average rank of the tied group. Missing values stay
// missing and are excluded from the ranking of the others.
func (a *Array) Ranking(dim int) (*Array, error) {
	if err := a.checkDim(dim); err != nil {
		return nil, err
	}

	return a.mapLanes(dim, stats.Rank)
}

// LastRank ranks each lane's last value against the rest of the lane,
// normalized to [-1, 1] and adjusted for ties, collapsing the axis. A lane
// whose last value is missing, or with fewer than two non-missing values,
// yields a missing output.
func (a *Array) LastRank(dim int) (*Array, error) {
	if err := a.checkDim(dim); err != nil {
		return nil, err
	}

	return a.reduceLanes(dim, stats.LastRank)
}

// GeometricMean computes the geometric mean of each lane's non-missing
// values, collapsing the axis. Every non-missing value must be greater
// than zero; an all-missing lane yields a missing output.
func (a *Array) GeometricMean(dim int) (*Array, error) {
	if err := a.checkDim(dim); err != nil {
		return nil, err
	}
	src, err := a.AsFloat()
	if err != nil {
		return nil, err
	}
	for _, v := range src.f {
		if v <= 0 {
			return nil, fmt.Errorf("%w: geometric mean requires positive values, got %v",
				errs.ErrInvalidArgument, v)
		}
	}

	return src.reduceLanes(dim, stats.GeometricMean)
}

// Demean subtracts the lane mean, computed over non-missing values only.
// An all-missing lane stays all-missing.
func (a *Array) Demean(dim int) (*Array, error) {
	if err := a.checkDim(dim); err != nil {
		return nil, err
	}

	return a.mapLanes(dim, func(dst, src []float64) {
		mean := stats.Mean(src)
		for i, v := range src {
			dst[i] = v - mean
		}
	})
}

// Demedian subtracts the lane median, computed over non-missing values
// only. An all-missing lane stays all-missing.
func (a *Array) Demedian(dim int) (*Array, error) {
	if err := a.checkDim(dim); err != nil {
		return nil, err
	}

	return a.mapLanes(dim, func(dst, src []float64) {
		median := stats.Median(src)
		for i, v := range src {
			dst[i] = v - median
		}
	})
}

// Zscore subtracts the lane mean and divides by the lane population
// standard deviation, both computed over non-missing values only. An
// all-missing lane stays all-missing; a zero-variance lane yields missing
// rather than a division error.
func (a *Array) Zscore(dim int) (*Array, error) {
	if err := a.checkDim(dim); err != nil {
		return nil, err
	}

	return a.mapLanes(dim, func(dst, src []float64) {
		mean := stats.Mean(src)
		std := stats.Std(src)
		for i, v := range src {
			dst[i] = (v - mean) / std
		}
	})
}

// Push forward-fills missing values from the most recent non-missing value
// in the lane, provided it is at most maxAge positions old.
func (a *Array) Push(dim, maxAge int) (*Array, error) {
	if err := a.checkDim(dim); err != nil {
		return nil, err
	}
	if maxAge < 0 {
		return nil, fmt.Errorf("%w: maxAge %d is negative", errs.ErrInvalidArgument, maxAge)
	}

	return a.mapLanes(dim, func(dst, src []float64) {
		stats.Push(dst, src, maxAge)
	})
}

// Quantile bins each lane's non-missing values into q quantiles by rank
// and rescales the bin numbers to [-1, 1]. q must be at least 1 and at
// most the axis length.
func (a *Array) Quantile(dim, q int) (*Array, error) {
	if err := a.checkDim(dim); err != nil {
		return nil, err
	}
	if q < 1 {
		return nil, fmt.Errorf("%w: q must be at least 1, got %d", errs.ErrInvalidArgument, q)
	}
	if q > a.shape[dim] {
		return nil, fmt.Errorf("%w: q %d exceeds axis length %d",
			errs.ErrInvalidArgument, q, a.shape[dim])
	}

	return a.mapLanes(dim, func(dst, src []float64) {
		stats.Quantile(dst, src, q)
	})
}

// Lag shifts values by k positions along the axis, exposing missing
// sentinels at the k boundary positions. Positive k shifts toward higher
// positions, negative k toward lower ones. Labels are unchanged: lag moves
// data, not labels. A |k| of the axis length or more yields an all-missing
// array.
//
// Lag works on any dtype with a missing sentinel; Int promotes to Float.
func (a *Array) Lag(dim, k int) (*Array, error) {
	if err := a.checkDim(dim); err != nil {
		return nil, err
	}

	src := a
	if a.dtype == format.DTypeInt {
		var err error
		if src, err = a.AsFloat(); err != nil {
			return nil, err
		}
	}

	n := src.shape[dim]
	positions := make([]int, n)
	for i := range positions {
		j := i - k
		if j < 0 || j >= n {
			positions[i] = missingPos
		} else {
			positions[i] = j
		}
	}

	return src.take(dim, positions, src.axes[dim])
}

// Shuffle returns a copy with the data along the axis permuted by rng.
// Labels are unchanged: only the data moves. The permutation is
// deterministic given a seeded rng, and the receiver is never mutated.
// Works on any dtype.
func (a *Array) Shuffle(dim int, rng *rand.Rand) (*Array, error) {
	if err := a.checkDim(dim); err != nil {
		return nil, err
	}

	return a.take(dim, rng.Perm(a.shape[dim]), a.axes[dim])
}

// Correlation aligns two numeric arrays under ModeInner, flattens them,
// and returns the Pearson correlation over positions where both are
// non-missing. Returns NaN when fewer than two such positions exist.
func Correlation(a, b *Array) (float64, error) {
	a2, b2, err := Align(a, b)
	if err != nil {
		return 0, err
	}
	af, err := a2.AsFloat()
	if err != nil {
		return 0, err
	}
	bf, err := b2.AsFloat()
	if err != nil {
		return 0, err
	}

	return stats.Correlation(af.f, bf.f), nil
}

// CorrelationAlong aligns two numeric arrays under ModeInner and computes
// the Pearson correlation of each pair of lanes along dim, collapsing that
// axis. Positions where either lane is missing are skipped; a lane pair
// with fewer than two shared positions yields a missing output. Rank-1
// inputs would collapse to a scalar; use Correlation for those.
func CorrelationAlong(a, b *Array, dim int) (*Array, error) {
	a2, b2, err := Align(a, b)
	if err != nil {
		return nil, err
	}
	af, err := a2.AsFloat()
	if err != nil {
		return nil, err
	}
	bf, err := b2.AsFloat()
	if err != nil {
		return nil, err
	}
	if err := af.checkDim(dim); err != nil {
		return nil, err
	}
	if len(af.shape) < 2 {
		return nil, fmt.Errorf("%w: collapsing axis %d of a rank-1 array yields a rank-0 result",
			errs.ErrShapeMismatch, dim)
	}

	outShape := make([]int, 0, len(af.shape)-1)
	outAxes := make([]*axis.Index, 0, len(af.axes)-1)
	for d := range af.shape {
		if d != dim {
			outShape = append(outShape, af.shape[d])
			outAxes = append(outAxes, af.axes[d])
		}
	}
	out := af.emptyLike(format.DTypeFloat, outShape, outAxes)

	n := af.shape[dim]
	inner := af.strides[dim]
	outer := 1
	for _, s := range af.shape[:dim] {
		outer *= s
	}

	laneA, releaseA := pool.GetFloat64Slice(n)
	defer releaseA()
	laneB, releaseB := pool.GetFloat64Slice(n)
	defer releaseB()

	for o := 0; o < outer; o++ {
		base := o * n * inner
		for k := 0; k < inner; k++ {
			start := base + k
			for t := 0; t < n; t++ {
				laneA[t] = af.f[start+t*inner]
				laneB[t] = bf.f[start+t*inner]
			}
			// Dropping dim from a row-major shape leaves position (o, k)
			// at flat offset o*inner + k.
			out.f[o*inner+k] = stats.Correlation(laneA, laneB)
		}
	}

	return out, nil
}

func (a *Array) checkDim(dim int) error {
	if dim < 0 || dim >= len(a.shape) {
		return fmt.Errorf("%w: axis %d out of range for rank %d",
			errs.ErrShapeMismatch, dim, len(a.shape))
	}

	return nil
}

func (a *Array) checkWindow(dim, window, minWindow int) error {
	if err := a.checkDim(dim); err != nil {
		return err
	}
	if window < minWindow {
		return fmt.Errorf("%w: window %d is too small (minimum %d)",
			errs.ErrInvalidArgument, window, minWindow)
	}
	if window > a.shape[dim] {
		return fmt.Errorf("%w: window %d exceeds axis length %d",
			errs.ErrInvalidArgument, window, a.shape[dim])
	}

	return nil
}

func (a *Array) checkSkip(dim, skip int) error {
	if skip < 0 || skip > a.shape[dim] {
		return fmt.Errorf("%w: skip %d out of range for axis length %d",
			errs.ErrInvalidArgument, skip, a.shape[dim])
	}

	return nil
}

// mapLanes applies a 1-D kernel to every lane along dim and returns a new
// Float array. The source is promoted to Float first. Lanes are gathered
// into pooled contiguous scratch buffers, transformed, and scattered back,
// so kernels never see strided memory.
func (a *Array) mapLanes(dim int, kernel func(dst, src []float64)) (*Array, error) {
	src, err := a.AsFloat()
	if err != nil {
		return nil, err
	}
	out := src.emptyLike(format.DTypeFloat, src.shape, src.axes)

	n := src.shape[dim]
	inner := src.strides[dim]
	outer := 1
	for _, s := range src.shape[:dim] {
		outer *= s
	}

	laneIn, releaseIn := pool.GetFloat64Slice(n)
	defer releaseIn()
	laneOut, releaseOut := pool.GetFloat64Slice(n)
	defer releaseOut()

	for o := 0; o < outer; o++ {
		base := o * n * inner
		for k := 0; k < inner; k++ {
			start := base + k
			for t := 0; t < n; t++ {
				laneIn[t] = src.f[start+t*inner]
			}
			kernel(laneOut, laneIn)
			for t := 0; t < n; t++ {
				out.f[start+t*inner] = laneOut[t]
			}
		}
	}

	return out, nil
}

// reduceLanes reduces every lane along dim to a single value, collapsing
// that axis. The source is promoted to Float first. Rank-1 sources are
// rejected, since the result would have no axes left.
func (a *Array) reduceLanes(dim int, reduce func(lane []float64) float64) (*Array, error) {
	src, err := a.AsFloat()
	if err != nil {
		return nil, err
	}
	if len(src.shape) < 2 {
		return nil, fmt.Errorf("%w: collapsing axis %d of a rank-1 array yields a rank-0 result",
			errs.ErrShapeMismatch, dim)
	}

	outShape := make([]int, 0, len(src.shape)-1)
	outAxes := make([]*axis.Index, 0, len(src.axes)-1)
	for d := range src.shape {
		if d != dim {
			outShape = append(outShape, src.shape[d])
			outAxes = append(outAxes, src.axes[d])
		}
	}
	out := src.emptyLike(format.DTypeFloat, outShape, outAxes)

	n := src.shape[dim]
	inner := src.strides[dim]
	outer := 1
	for _, s := range src.shape[:dim] {
		outer *= s
	}

	lane, release := pool.GetFloat64Slice(n)
	defer release()

	for o := 0; o < outer; o++ {
		base := o * n * inner
		for k := 0; k < inner; k++ {
			start := base + k
			for t := 0; t < n; t++ {
				lane[t] = src.f[start+t*inner]
			}
			// Dropping dim from a row-major shape leaves position (o, k)
			// at flat offset o*inner + k.
			out.f[o*inner+k] = reduce(lane)
		}
	}

	return out, nil
}
