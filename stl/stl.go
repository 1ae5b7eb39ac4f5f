// Package stl implements seasonal-trend decomposition using loess for a
// single seasonal period.
package stl

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/sartorproj/godecomp/loess"
)

var (
	// ErrInvalidPeriod is returned when the seasonal period is not in [2, n).
	ErrInvalidPeriod = errors.New("period must be an integer in [2, series length)")
	// ErrInvalidWindow is returned when a smoothing window is not a positive odd integer.
	ErrInvalidWindow = errors.New("window must be a positive odd integer")
)

// Config holds the knobs of a single-period STL decomposition.
type Config struct {
	// Period is the seasonal cycle length in observations. Required, >= 2
	// and < len(x).
	Period int
	// SeasonalWindow is the loess span for cycle-subseries smoothing, in
	// cycles. Required, positive odd. Smaller windows let the seasonal
	// shape evolve faster across cycles.
	SeasonalWindow int
	// TrendWindow is the loess span for trend smoothing. Positive odd;
	// zero selects the usual STL default derived from Period and
	// SeasonalWindow.
	TrendWindow int
	// LowPassWindow is the loess span of the low-pass filter that removes
	// trend leakage from the raw seasonal. Positive odd; zero selects the
	// smallest odd integer >= Period.
	LowPassWindow int
	// InnerIters is the number of seasonal/trend alternation passes.
	// Zero selects 2.
	InnerIters int
	// RobustIters is the number of outer robustness passes with bisquare
	// downweighting of large remainders. Zero disables robustness.
	RobustIters int
}

// Result holds the additive components of a decomposition. The identity
// x = Trend + Seasonal + Remainder holds exactly elementwise.
type Result struct {
	Trend     []float64
	Seasonal  []float64
	Remainder []float64
	Period    int
}

// Decompose splits x into trend, seasonal, and remainder components for a
// single seasonal period.
func Decompose(x []float64, cfg Config) (*Result, error) {
	n := len(x)
	if cfg.Period < 2 || cfg.Period >= n {
		return nil, fmt.Errorf("%w: period %d, length %d", ErrInvalidPeriod, cfg.Period, n)
	}
	if cfg.SeasonalWindow <= 0 || cfg.SeasonalWindow%2 == 0 {
		return nil, fmt.Errorf("%w: seasonal window %d", ErrInvalidWindow, cfg.SeasonalWindow)
	}
	trendWindow := cfg.TrendWindow
	if trendWindow == 0 {
		trendWindow = DefaultTrendWindow(cfg.Period, cfg.SeasonalWindow)
	}
	if trendWindow <= 0 || trendWindow%2 == 0 {
		return nil, fmt.Errorf("%w: trend window %d", ErrInvalidWindow, trendWindow)
	}
	lowPassWindow := cfg.LowPassWindow
	if lowPassWindow == 0 {
		lowPassWindow = nextOdd(cfg.Period)
	}
	if lowPassWindow <= 0 || lowPassWindow%2 == 0 {
		return nil, fmt.Errorf("%w: low-pass window %d", ErrInvalidWindow, lowPassWindow)
	}
	innerIters := cfg.InnerIters
	if innerIters <= 0 {
		innerIters = 2
	}

	period := cfg.Period
	trend := make([]float64, n)
	season := make([]float64, n)
	remainder := make([]float64, n)
	detrended := make([]float64, n)
	deseason := make([]float64, n)
	var rho []float64

	for outer := 0; ; outer++ {
		for inner := 0; inner < innerIters; inner++ {
			for i := range x {
				detrended[i] = x[i] - trend[i]
			}

			raw, err := smoothSubseries(detrended, rho, period, cfg.SeasonalWindow)
			if err != nil {
				return nil, err
			}

			lp, err := lowPass(raw, period, lowPassWindow)
			if err != nil {
				return nil, err
			}
			for i := range season {
				season[i] = raw[i] - lp[i]
			}

			for i := range x {
				deseason[i] = x[i] - season[i]
			}
			trend, err = loess.SmoothWeighted(deseason, rho, trendWindow, 1)
			if err != nil {
				return nil, err
			}
		}

		for i := range x {
			remainder[i] = x[i] - trend[i] - season[i]
		}

		if outer >= cfg.RobustIters {
			break
		}
		rho = robustnessWeights(remainder, rho)
	}

	return &Result{
		Trend:     trend,
		Seasonal:  season,
		Remainder: remainder,
		Period:    period,
	}, nil
}

// DefaultTrendWindow returns the standard STL trend span: the smallest odd
// integer >= 1.5*period / (1 - 1.5/seasonalWindow).
func DefaultTrendWindow(period, seasonalWindow int) int {
	den := 1 - 1.5/float64(seasonalWindow)
	if den <= 0 {
		// Tiny seasonal windows; fall back to a span of three cycles.
		return nextOdd(3 * period)
	}
	return nextOdd(int(math.Ceil(1.5 * float64(period) / den)))
}

// smoothSubseries groups x by phase (index mod period) and loess-smooths
// each phase's sub-series along its cycle index.
func smoothSubseries(x, rho []float64, period, window int) ([]float64, error) {
	n := len(x)
	out := make([]float64, n)
	for phase := 0; phase < period; phase++ {
		m := (n - phase + period - 1) / period
		sub := make([]float64, m)
		var subRho []float64
		if rho != nil {
			subRho = make([]float64, m)
		}
		for c := 0; c < m; c++ {
			sub[c] = x[phase+c*period]
			if rho != nil {
				subRho[c] = rho[phase+c*period]
			}
		}

		sm, err := loess.SmoothWeighted(sub, subRho, window, 1)
		if err != nil {
			return nil, err
		}
		for c := 0; c < m; c++ {
			out[phase+c*period] = sm[c]
		}
	}
	return out, nil
}

// lowPass removes trend leakage from a raw seasonal estimate: two moving
// averages of length period, one of length 3, then a loess pass.
func lowPass(x []float64, period, window int) ([]float64, error) {
	y := centeredMA(x, period)
	y = centeredMA(y, period)
	y = centeredMA(y, 3)
	return loess.Smooth(y, window, 1)
}

// centeredMA computes a centered moving average of length m, truncating
// the window at the series boundaries so the output keeps the input
// length. Even m gets half-weight endpoints.
func centeredMA(x []float64, m int) []float64 {
	n := len(x)
	out := make([]float64, n)
	half := m / 2
	for i := 0; i < n; i++ {
		sum, wsum := 0.0, 0.0
		for j := i - half; j <= i+half; j++ {
			if j < 0 || j >= n {
				continue
			}
			w := 1.0
			if m%2 == 0 && (j == i-half || j == i+half) {
				w = 0.5
			}
			sum += w * x[j]
			wsum += w
		}
		out[i] = sum / wsum
	}
	return out
}

// robustnessWeights computes bisquare weights from remainders, scaled by
// six times the median absolute remainder.
func robustnessWeights(remainder, prev []float64) []float64 {
	n := len(remainder)
	rho := prev
	if rho == nil {
		rho = make([]float64, n)
	}

	absR := make([]float64, n)
	for i, r := range remainder {
		absR[i] = math.Abs(r)
	}
	sort.Float64s(absR)
	var med float64
	if n%2 == 0 {
		med = (absR[n/2-1] + absR[n/2]) / 2
	} else {
		med = absR[n/2]
	}

	h := 6 * med
	if h == 0 {
		for i := range rho {
			rho[i] = 1
		}
		return rho
	}
	for i, r := range remainder {
		u := math.Abs(r) / h
		if u < 1 {
			rho[i] = (1 - u*u) * (1 - u*u)
		} else {
			rho[i] = 0
		}
	}
	return rho
}

func nextOdd(v int) int {
	if v%2 == 0 {
		return v + 1
	}
	return v
}
