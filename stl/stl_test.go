package stl

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// synthetic builds trend + season + deterministic pseudo-noise.
func synthetic(n, period int, amplitude, slope, noise float64) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = slope*float64(i) +
			amplitude*math.Sin(2*math.Pi*float64(i)/float64(period)) +
			noise*math.Sin(float64(i)*12.9898+78.233)
	}
	return x
}

func TestDecomposeReconstruction(t *testing.T) {
	x := synthetic(120, 12, 5, 0.1, 0.3)

	result, err := Decompose(x, Config{Period: 12, SeasonalWindow: 11})
	require.NoError(t, err)
	require.Len(t, result.Trend, len(x))
	require.Len(t, result.Seasonal, len(x))
	require.Len(t, result.Remainder, len(x))

	for i := range x {
		sum := result.Trend[i] + result.Seasonal[i] + result.Remainder[i]
		assert.InDeltaf(t, x[i], sum, 1e-10, "reconstruction at index %d", i)
	}
}

func TestDecomposeRecoversSinusoid(t *testing.T) {
	const (
		n         = 240
		period    = 12
		amplitude = 5.0
		slope     = 0.05
	)
	x := synthetic(n, period, amplitude, slope, 0.05)

	result, err := Decompose(x, Config{Period: period, SeasonalWindow: 25})
	require.NoError(t, err)

	// Away from the boundaries the seasonal component should track the
	// true sinusoid closely.
	var sse float64
	count := 0
	for i := 2 * period; i < n-2*period; i++ {
		truth := amplitude * math.Sin(2*math.Pi*float64(i)/float64(period))
		sse += (result.Seasonal[i] - truth) * (result.Seasonal[i] - truth)
		count++
	}
	rmse := math.Sqrt(sse / float64(count))
	assert.Less(t, rmse, 0.1*amplitude, "seasonal RMSE should be well under 10%% of the amplitude")

	// Trend should be close to linear: compare interior increments.
	meanStep := (result.Trend[n-2*period] - result.Trend[2*period]) / float64(n-4*period)
	assert.InDelta(t, slope, meanStep, 0.2*slope)
}

func TestDecomposeSeasonalIsPeriodicUnderWideWindow(t *testing.T) {
	x := synthetic(144, 12, 3, 0, 0)

	// A very wide seasonal window forces a near-static seasonal shape.
	result, err := Decompose(x, Config{Period: 12, SeasonalWindow: 1001})
	require.NoError(t, err)

	for i := 24; i < 120-12; i++ {
		assert.InDeltaf(t, result.Seasonal[i], result.Seasonal[i+12], 0.05,
			"seasonal should repeat across cycles at index %d", i)
	}
}

func TestDecomposeRobustDownweightsOutlier(t *testing.T) {
	x := synthetic(120, 12, 4, 0, 0)
	x[60] += 50

	plain, err := Decompose(x, Config{Period: 12, SeasonalWindow: 11})
	require.NoError(t, err)
	robust, err := Decompose(x, Config{Period: 12, SeasonalWindow: 11, RobustIters: 2})
	require.NoError(t, err)

	// The robust fit should push more of the spike into the remainder.
	assert.Greater(t, math.Abs(robust.Remainder[60]), math.Abs(plain.Remainder[60]))
}

func TestDecomposeDeterministic(t *testing.T) {
	x := synthetic(96, 12, 2, 0.02, 0.2)
	cfg := Config{Period: 12, SeasonalWindow: 7, RobustIters: 1}

	a, err := Decompose(x, cfg)
	require.NoError(t, err)
	b, err := Decompose(x, cfg)
	require.NoError(t, err)

	assert.Equal(t, a.Trend, b.Trend)
	assert.Equal(t, a.Seasonal, b.Seasonal)
	assert.Equal(t, a.Remainder, b.Remainder)
}

func TestDecomposeValidation(t *testing.T) {
	x := synthetic(60, 12, 1, 0, 0)

	_, err := Decompose(x, Config{Period: 1, SeasonalWindow: 7})
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = Decompose(x, Config{Period: 60, SeasonalWindow: 7})
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = Decompose(x, Config{Period: 12, SeasonalWindow: 8})
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = Decompose(x, Config{Period: 12, SeasonalWindow: 0})
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = Decompose(x, Config{Period: 12, SeasonalWindow: 7, TrendWindow: 10})
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = Decompose(x, Config{Period: 12, SeasonalWindow: 7, LowPassWindow: 4})
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestDefaultTrendWindow(t *testing.T) {
	// 1.5*12/(1-1.5/11) = 20.8..., next odd is 21.
	assert.Equal(t, 21, DefaultTrendWindow(12, 11))
	// Must always be odd.
	for _, sw := range []int{7, 11, 15, 25} {
		w := DefaultTrendWindow(24, sw)
		assert.Equal(t, 1, w%2, "trend window must be odd for seasonal window %d", sw)
	}
}
