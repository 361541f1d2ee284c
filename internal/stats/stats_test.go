package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

var nan = math.NaN()

// requireLane compares lanes elementwise treating NaN as equal to NaN.
func requireLane(t *testing.T, want, got []float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		if math.IsNaN(want[i]) {
			require.True(t, math.IsNaN(got[i]), "position %d: want NaN, got %v", i, got[i])
		} else {
			require.InDelta(t, want[i], got[i], 1e-12, "position %d", i)
		}
	}
}

func TestMean(t *testing.T) {
	require.InDelta(t, 2.0, Mean([]float64{1, nan, 3}), 1e-12)
	require.True(t, math.IsNaN(Mean([]float64{nan, nan})))
	require.True(t, math.IsNaN(Mean(nil)))
}

func TestStd(t *testing.T) {
	// Population std of {1, 2, 3} is sqrt(2/3).
	require.InDelta(t, math.Sqrt(2.0/3.0), Std([]float64{1, nan, 2, 3}), 1e-12)
	require.True(t, math.IsNaN(Std([]float64{nan})))
	require.InDelta(t, 0, Std([]float64{5, 5}), 1e-12)
}

func TestMedian(t *testing.T) {
	require.InDelta(t, 2, Median([]float64{1, nan, 2, 10}), 1e-12)
	require.InDelta(t, 1.5, Median([]float64{2, 1}), 1e-12)
	require.True(t, math.IsNaN(Median([]float64{nan})))
}

func TestMovSum_Poisoning(t *testing.T) {
	src := []float64{1, nan, 3, 4}
	dst := make([]float64, len(src))

	MovSum(dst, src, 2)

	requireLane(t, []float64{nan, nan, nan, 7}, dst)
}

func TestMovSum_NoMissing(t *testing.T) {
	src := []float64{1, 2, 3, 4, 5}
	dst := make([]float64, len(src))

	MovSum(dst, src, 3)

	requireLane(t, []float64{nan, nan, 6, 9, 12}, dst)
}

func TestMovSum_WindowOne(t *testing.T) {
	src := []float64{1, nan, 3}
	dst := make([]float64, len(src))

	MovSum(dst, src, 1)

	requireLane(t, []float64{1, nan, 3}, dst)
}

func TestMovSumSkip(t *testing.T) {
	src := []float64{1, 2, nan, 4, 5}
	dst := make([]float64, len(src))

	MovSumSkip(dst, src, 2, 0, false)
	requireLane(t, []float64{nan, 3, 2, 4, 9}, dst)

	MovSumSkip(dst, src, 2, 0, true)
	requireLane(t, []float64{nan, 3, 4, 8, 9}, dst)
}

func TestMovSumSkip_AllMissingWindow(t *testing.T) {
	src := []float64{1, nan, nan, 4}
	dst := make([]float64, len(src))

	MovSumSkip(dst, src, 2, 0, false)

	requireLane(t, []float64{nan, 1, nan, 4}, dst)
}

func TestMovSumSkip_Skip(t *testing.T) {
	src := []float64{1, 2, 3, 4, 5}
	dst := make([]float64, len(src))

	// Each output is the skip-free sum lagged by one position.
	MovSumSkip(dst, src, 2, 1, false)

	requireLane(t, []float64{nan, nan, 3, 5, 7}, dst)
}

func TestMovSumForward(t *testing.T) {
	src := []float64{1, 2, nan, 4, 5}
	dst := make([]float64, len(src))

	MovSumForward(dst, src, 2, 0, false)
	requireLane(t, []float64{3, 2, 4, 9, nan}, dst)

	MovSumForward(dst, src, 2, 1, false)
	requireLane(t, []float64{2, 4, 9, nan, nan}, dst)

	MovSumForward(dst, src, 2, 0, true)
	requireLane(t, []float64{3, 4, 8, 9, nan}, dst)
}

func TestGeometricMean(t *testing.T) {
	require.InDelta(t, 4.0, GeometricMean([]float64{2, 8, nan}), 1e-12)
	require.InDelta(t, 3.0, GeometricMean([]float64{3, 3, 3}), 1e-12)
	require.True(t, math.IsNaN(GeometricMean([]float64{nan, nan})))
	require.True(t, math.IsNaN(GeometricMean(nil)))
}

func TestLag(t *testing.T) {
	src := []float64{1, 2, 3, 4}
	dst := make([]float64, len(src))

	Lag(dst, src, 1)
	requireLane(t, []float64{nan, 1, 2, 3}, dst)

	Lag(dst, src, -2)
	requireLane(t, []float64{3, 4, nan, nan}, dst)

	Lag(dst, src, 0)
	requireLane(t, src, dst)
}

func TestLag_RoundTripRestoresInterior(t *testing.T) {
	src := []float64{1, 2, 3, 4, 5}
	fwd := make([]float64, len(src))
	back := make([]float64, len(src))

	Lag(fwd, src, 2)
	Lag(back, fwd, -2)

	requireLane(t, []float64{1, 2, 3, nan, nan}, back)
}

func TestPush(t *testing.T) {
	src := []float64{1, nan, nan, nan, 5, nan}
	dst := make([]float64, len(src))

	Push(dst, src, 2)
	requireLane(t, []float64{1, 1, 1, nan, 5, 5}, dst)

	Push(dst, src, 0)
	requireLane(t, []float64{1, nan, nan, nan, 5, nan}, dst)
}

func TestRank_AverageTies(t *testing.T) {
	src := []float64{10, 20, 20, 5}
	dst := make([]float64, len(src))

	Rank(dst, src)

	requireLane(t, []float64{2, 3.5, 3.5, 1}, dst)
}

func TestRank_MissingExcluded(t *testing.T) {
	src := []float64{10, nan, 20, 5}
	dst := make([]float64, len(src))

	Rank(dst, src)

	requireLane(t, []float64{2, nan, 3, 1}, dst)
}

func TestLastRank(t *testing.T) {
	require.InDelta(t, 1.0, LastRank([]float64{1, 2, 3}), 1e-12)
	require.InDelta(t, -1.0, LastRank([]float64{3, 2, 1}), 1e-12)
	require.InDelta(t, -0.5, LastRank([]float64{1, 3, 4, 5, 2}), 1e-12)
	require.True(t, math.IsNaN(LastRank([]float64{1, 2, nan})))
	require.True(t, math.IsNaN(LastRank([]float64{nan, nan, 2})))
	require.True(t, math.IsNaN(LastRank(nil)))
}

func TestMovRank(t *testing.T) {
	src := []float64{1, 3, 2, 4}
	dst := make([]float64, len(src))

	MovRank(dst, src, 2)

	requireLane(t, []float64{nan, 1, -1, 1}, dst)
}

func TestQuantile(t *testing.T) {
	src := []float64{1, 2, 3, 4, 5, 6}
	dst := make([]float64, len(src))

	Quantile(dst, src, 3)

	requireLane(t, []float64{-1, -1, 0, 0, 1, 1}, dst)
}

func TestQuantile_SingleBinAndMissing(t *testing.T) {
	src := []float64{4, nan, 1}
	dst := make([]float64, len(src))

	Quantile(dst, src, 1)

	requireLane(t, []float64{0, nan, 0}, dst)
}

func TestCorrelation(t *testing.T) {
	require.InDelta(t, 1.0, Correlation([]float64{1, 2, 3}, []float64{2, 4, 6}), 1e-12)
	require.InDelta(t, -1.0, Correlation([]float64{1, 2, 3}, []float64{3, 2, 1}), 1e-12)
	// Missing positions are dropped pairwise.
	require.InDelta(t, 1.0, Correlation([]float64{1, nan, 3}, []float64{2, 100, 6}), 1e-12)
	require.True(t, math.IsNaN(Correlation([]float64{1, nan}, []float64{nan, 2})))
	require.True(t, math.IsNaN(Correlation([]float64{1, 1, 1}, []float64{1, 2, 3})))
}
