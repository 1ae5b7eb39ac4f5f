package mstl

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multiSeasonal(n int, periods []int, amplitudes []float64, slope, noise float64) []float64 {
	x := make([]float64, n)
	for i := range x {
		v := slope * float64(i)
		for j, p := range periods {
			v += amplitudes[j] * math.Sin(2*math.Pi*float64(i)/float64(p))
		}
		v += noise * math.Sin(float64(i)*12.9898+78.233)
		x[i] = v
	}
	return x
}

func TestDecomposeReconstruction(t *testing.T) {
	x := multiSeasonal(336, []int{24, 168}, []float64{3, 8}, 0.01, 0.2)

	result, err := Decompose(x, Config{Periods: []int{24, 168}})
	require.NoError(t, err)
	require.Len(t, result.Seasons, 2)
	require.Equal(t, []int{24, 168}, result.Periods)

	for i := range x {
		sum := result.Trend[i] + result.Remainder[i]
		for _, s := range result.Seasons {
			sum += s[i]
		}
		assert.InDeltaf(t, x[i], sum, 1e-10, "reconstruction at index %d", i)
	}
}

func TestDecomposeSinglePeriodRecovery(t *testing.T) {
	// Linear trend + period-7 sinusoid of amplitude 5 + tiny noise over
	// ten cycles.
	const (
		n         = 70
		period    = 7
		amplitude = 5.0
		slope     = 0.3
	)
	x := multiSeasonal(n, []int{period}, []float64{amplitude}, slope, 0.01)

	result, err := Decompose(x, Config{
		Periods:    []int{period},
		Windows:    []int{7},
		Iterations: 1,
	})
	require.NoError(t, err)

	// Recovered seasonal amplitude within 10% of the truth, measured away
	// from the boundaries.
	lo, hi := 2*period, n-2*period
	minS, maxS := math.Inf(1), math.Inf(-1)
	for i := lo; i < hi; i++ {
		minS = math.Min(minS, result.Seasons[0][i])
		maxS = math.Max(maxS, result.Seasons[0][i])
	}
	recovered := (maxS - minS) / 2
	assert.InDelta(t, amplitude, recovered, 0.1*amplitude)

	// Recovered trend slope within 10% of the truth.
	meanStep := (result.Trend[hi-1] - result.Trend[lo]) / float64(hi-1-lo)
	assert.InDelta(t, slope, meanStep, 0.1*slope)
}

func TestDecomposeSeparatesTwoPeriods(t *testing.T) {
	x := multiSeasonal(480, []int{12, 60}, []float64{4, 6}, 0, 0.1)

	result, err := Decompose(x, Config{Periods: []int{12, 60}, Iterations: 2})
	require.NoError(t, err)

	// Each component should carry the energy of its own frequency: the
	// short component stays close to the period-12 sinusoid.
	var sse12 float64
	count := 0
	for i := 60; i < 420; i++ {
		truth := 4 * math.Sin(2*math.Pi*float64(i)/12)
		sse12 += (result.Seasons[0][i] - truth) * (result.Seasons[0][i] - truth)
		count++
	}
	rmse12 := math.Sqrt(sse12 / float64(count))
	assert.Less(t, rmse12, 0.15*4.0)
}

func TestDecomposeDeterministic(t *testing.T) {
	x := multiSeasonal(200, []int{10, 50}, []float64{2, 3}, 0.05, 0.3)
	cfg := Config{Periods: []int{10, 50}}

	a, err := Decompose(x, cfg)
	require.NoError(t, err)
	b, err := Decompose(x, cfg)
	require.NoError(t, err)

	assert.Equal(t, a.Trend, b.Trend)
	assert.Equal(t, a.Seasons, b.Seasons)
	assert.Equal(t, a.Remainder, b.Remainder)
}

func TestDecomposeRejectsNonIncreasingPeriods(t *testing.T) {
	x := multiSeasonal(800, []int{7, 365}, []float64{1, 2}, 0, 0)

	_, err := Decompose(x, Config{Periods: []int{365, 7}})
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = Decompose(x, Config{Periods: []int{7, 7}})
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestDecomposeRejectsBadPeriods(t *testing.T) {
	x := make([]float64, 100)

	_, err := Decompose(x, Config{Periods: []int{1}})
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = Decompose(x, Config{Periods: []int{0, 7}})
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestDecomposeRejectsBadWindows(t *testing.T) {
	x := multiSeasonal(100, []int{7}, []float64{1}, 0, 0)

	_, err := Decompose(x, Config{Periods: []int{7}, Windows: []int{4}})
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = Decompose(x, Config{Periods: []int{7}, Windows: []int{7, 11}})
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestDecomposeInsufficientLength(t *testing.T) {
	x := make([]float64, 10)
	for i := range x {
		x[i] = float64(i)
	}

	_, err := Decompose(x, Config{
		Periods:    []int{12},
		Windows:    []int{7},
		Iterations: 1,
	})
	assert.ErrorIs(t, err, ErrInsufficientLength)
}

func TestDecomposeTrendOnly(t *testing.T) {
	n := 100
	x := make([]float64, n)
	for i := range x {
		x[i] = 1 + 0.2*float64(i) + 0.1*math.Sin(float64(i)*12.9898)
	}

	result, err := Decompose(x, Config{})
	require.NoError(t, err)
	assert.Empty(t, result.Seasons)
	assert.Empty(t, result.Periods)

	for i := range x {
		assert.InDeltaf(t, x[i], result.Trend[i]+result.Remainder[i], 1e-10, "index %d", i)
	}

	// The loess trend should track the line closely in the interior.
	for i := 25; i < 75; i++ {
		assert.InDeltaf(t, 1+0.2*float64(i), result.Trend[i], 0.15, "index %d", i)
	}
}

func TestDefaultWindow(t *testing.T) {
	assert.Equal(t, 7, DefaultWindow(0))
	assert.Equal(t, 11, DefaultWindow(1))
	assert.Equal(t, 15, DefaultWindow(2))
}
