// Package mstl implements multiple seasonal-trend decomposition using
// iterated STL fits.
package mstl

import (
	"errors"
	"fmt"

	"github.com/sartorproj/godecomp/loess"
	"github.com/sartorproj/godecomp/stl"
)

var (
	// ErrInvalidPeriod is returned when a period is below 2 or the period
	// list is not strictly increasing.
	ErrInvalidPeriod = errors.New("periods must be integers >= 2 in strictly increasing order")
	// ErrInvalidWindow is returned when the seasonal windows do not match
	// the periods or a window is not a positive odd integer.
	ErrInvalidWindow = errors.New("windows must be positive odd integers, one per period")
	// ErrInsufficientLength is returned when the series is shorter than
	// twice the largest period.
	ErrInsufficientLength = errors.New("series must cover at least two cycles of the largest period")
)

// Config holds the knobs of an MSTL decomposition.
type Config struct {
	// Periods are the seasonal cycle lengths, each >= 2, in strictly
	// increasing order. The ordering is significant: shorter periods are
	// extracted first within each pass, and a permuted list produces a
	// different decomposition, so non-increasing lists are rejected rather
	// than sorted. An empty list degenerates to trend-only smoothing.
	Periods []int
	// Windows are the per-period seasonal loess spans, odd positive, one
	// per period. Nil selects the defaults 7, 11, 15, ...
	Windows []int
	// Iterations is the number of outer refinement passes over the period
	// list. Zero selects 2. One or two passes are typically enough for a
	// validated period set.
	Iterations int
	// TrendWindow overrides the loess span of the final trend fit.
	// Zero selects the STL default for the largest period.
	TrendWindow int
	// RobustIters enables bisquare robustness passes inside each STL fit.
	RobustIters int
}

// Result holds the additive components of an MSTL decomposition. The
// identity x = Trend + sum(Seasons) + Remainder holds exactly elementwise.
// Seasons is aligned to the configured periods.
type Result struct {
	Trend     []float64
	Seasons   [][]float64
	Remainder []float64
	Periods   []int
}

// DefaultWindow returns the default seasonal window for the i-th period
// (0-based): 7, 11, 15, ...
func DefaultWindow(i int) int {
	return 7 + 4*i
}

// Decompose splits x into a trend, one seasonal component per configured
// period, and a remainder.
//
// Each outer pass visits the periods from shortest to longest. For each
// period the current estimate of its seasonal component is added back to
// the running deseasonalized series, a single-period STL fit re-estimates
// the component, and the new estimate is subtracted out again. After the
// final pass the trend is taken from one more STL fit of the fully
// deseasonalized series at the largest period.
func Decompose(x []float64, cfg Config) (*Result, error) {
	n := len(x)

	for i, p := range cfg.Periods {
		if p < 2 {
			return nil, fmt.Errorf("%w: period %d at index %d", ErrInvalidPeriod, p, i)
		}
		if i > 0 && p <= cfg.Periods[i-1] {
			return nil, fmt.Errorf("%w: period %d at index %d does not increase", ErrInvalidPeriod, p, i)
		}
	}

	windows := cfg.Windows
	if windows == nil {
		windows = make([]int, len(cfg.Periods))
		for i := range windows {
			windows[i] = DefaultWindow(i)
		}
	}
	if len(windows) != len(cfg.Periods) {
		return nil, fmt.Errorf("%w: %d windows for %d periods", ErrInvalidWindow, len(windows), len(cfg.Periods))
	}
	for i, w := range windows {
		if w <= 0 || w%2 == 0 {
			return nil, fmt.Errorf("%w: window %d at index %d", ErrInvalidWindow, w, i)
		}
	}

	if len(cfg.Periods) == 0 {
		return decomposeTrendOnly(x, cfg.TrendWindow)
	}

	maxPeriod := cfg.Periods[len(cfg.Periods)-1]
	if n < 2*maxPeriod {
		return nil, fmt.Errorf("%w: length %d, largest period %d", ErrInsufficientLength, n, maxPeriod)
	}

	iterations := cfg.Iterations
	if iterations <= 0 {
		iterations = 2
	}

	seasons := make([][]float64, len(cfg.Periods))
	for i := range seasons {
		seasons[i] = make([]float64, n)
	}

	// Running deseasonalized series: x minus all current seasonal
	// estimates. The add-back/subtract pair keeps it consistent as each
	// component is re-estimated.
	deseas := make([]float64, n)
	copy(deseas, x)

	for pass := 0; pass < iterations; pass++ {
		for i, period := range cfg.Periods {
			for t := range deseas {
				deseas[t] += seasons[i][t]
			}

			fit, err := stl.Decompose(deseas, stl.Config{
				Period:         period,
				SeasonalWindow: windows[i],
				RobustIters:    cfg.RobustIters,
			})
			if err != nil {
				return nil, fmt.Errorf("period %d: %w", period, err)
			}
			seasons[i] = fit.Seasonal

			for t := range deseas {
				deseas[t] -= seasons[i][t]
			}
		}
	}

	// Final trend from the fully deseasonalized series.
	finalFit, err := stl.Decompose(deseas, stl.Config{
		Period:         maxPeriod,
		SeasonalWindow: windows[len(windows)-1],
		TrendWindow:    cfg.TrendWindow,
		RobustIters:    cfg.RobustIters,
	})
	if err != nil {
		return nil, fmt.Errorf("final trend fit: %w", err)
	}
	trend := finalFit.Trend

	remainder := make([]float64, n)
	for t := range x {
		remainder[t] = x[t] - trend[t]
		for i := range seasons {
			remainder[t] -= seasons[i][t]
		}
	}

	periods := make([]int, len(cfg.Periods))
	copy(periods, cfg.Periods)

	return &Result{
		Trend:     trend,
		Seasons:   seasons,
		Remainder: remainder,
		Periods:   periods,
	}, nil
}

// decomposeTrendOnly handles a series with no seasonal periods: the trend
// is a single loess smooth and there are no seasonal components.
func decomposeTrendOnly(x []float64, trendWindow int) (*Result, error) {
	n := len(x)
	if trendWindow == 0 {
		trendWindow = nextOdd(n / 2)
		if trendWindow < 3 {
			trendWindow = 3
		}
	}
	if trendWindow <= 0 || trendWindow%2 == 0 {
		return nil, fmt.Errorf("%w: trend window %d", ErrInvalidWindow, trendWindow)
	}

	trend, err := loess.Smooth(x, trendWindow, 1)
	if err != nil {
		return nil, err
	}
	remainder := make([]float64, n)
	for i := range x {
		remainder[i] = x[i] - trend[i]
	}
	return &Result{
		Trend:     trend,
		Seasons:   [][]float64{},
		Remainder: remainder,
		Periods:   []int{},
	}, nil
}

func nextOdd(v int) int {
	if v%2 == 0 {
		return v + 1
	}
	return v
}
