package stats

import (
	"math"

	"github.com/sartorproj/godecomp/timeseries"
)

// DecompositionResult represents a classical decomposition of a time
// series. For the loess- and regression-based methods see the stl, mstl,
// and str packages; classical decomposition is the quick moving-average
// baseline to compare them against.
type DecompositionResult struct {
	Original *timeseries.Series
	Trend    *timeseries.Series
	Seasonal *timeseries.Series
	Residual *timeseries.Series
	Period   int
	Type     string // "additive" or "multiplicative"
}

// Decompose performs classical seasonal decomposition with a centered
// moving average trend and a single averaged seasonal pattern per phase.
// Type can be "additive" (Y = T + S + R) or "multiplicative" (Y = T * S * R).
// The trend (and therefore the residual) is NaN within half a period of
// the boundaries, where the centered average is undefined.
func Decompose(series *timeseries.Series, period int, decompositionType string) *DecompositionResult {
	n := series.Len()
	if n < 2*period {
		return nil
	}

	multiplicative := decompositionType == "multiplicative"
	if !multiplicative {
		decompositionType = "additive"
	}

	trend := centeredTrend(series, period)

	// Detrend.
	detrended := make([]float64, n)
	for i := 0; i < n; i++ {
		switch {
		case math.IsNaN(trend[i]):
			detrended[i] = math.NaN()
		case multiplicative:
			if trend[i] != 0 {
				detrended[i] = series.Values[i] / trend[i]
			} else {
				detrended[i] = math.NaN()
			}
		default:
			detrended[i] = series.Values[i] - trend[i]
		}
	}

	// Average the detrended values within each phase.
	pattern := make([]float64, period)
	counts := make([]int, period)
	for i := 0; i < n; i++ {
		if !math.IsNaN(detrended[i]) {
			pattern[i%period] += detrended[i]
			counts[i%period]++
		}
	}
	for i := 0; i < period; i++ {
		if counts[i] > 0 {
			pattern[i] /= float64(counts[i])
		}
	}

	// Normalize: additive patterns sum to zero, multiplicative average to
	// one.
	mean := 0.0
	for _, v := range pattern {
		mean += v
	}
	mean /= float64(period)
	for i := range pattern {
		if multiplicative {
			pattern[i] /= mean
		} else {
			pattern[i] -= mean
		}
	}

	seasonal := make([]float64, n)
	for i := 0; i < n; i++ {
		seasonal[i] = pattern[i%period]
	}

	residual := make([]float64, n)
	for i := 0; i < n; i++ {
		switch {
		case math.IsNaN(trend[i]):
			residual[i] = math.NaN()
		case multiplicative:
			if trend[i] != 0 && seasonal[i] != 0 {
				residual[i] = series.Values[i] / (trend[i] * seasonal[i])
			} else {
				residual[i] = math.NaN()
			}
		default:
			residual[i] = series.Values[i] - trend[i] - seasonal[i]
		}
	}

	return &DecompositionResult{
		Original: series,
		Trend:    series.WithValues("trend", trend),
		Seasonal: series.WithValues("seasonal", seasonal),
		Residual: series.WithValues("residual", residual),
		Period:   period,
		Type:     decompositionType,
	}
}

// centeredTrend calculates the trend using a centered moving average of
// the period length; even periods use the standard 2xMA with half-weight
// endpoints. Positions without a full window are NaN.
func centeredTrend(series *timeseries.Series, period int) []float64 {
	n := series.Len()
	trend := make([]float64, n)
	for i := range trend {
		trend[i] = math.NaN()
	}

	half := period / 2
	for i := half; i < n-half; i++ {
		sum := 0.0
		if period%2 == 0 {
			sum += series.Values[i-half] * 0.5
			sum += series.Values[i+half] * 0.5
			for j := i - half + 1; j < i+half; j++ {
				sum += series.Values[j]
			}
		} else {
			for j := i - half; j <= i+half; j++ {
				sum += series.Values[j]
			}
		}
		trend[i] = sum / float64(period)
	}

	return trend
}
