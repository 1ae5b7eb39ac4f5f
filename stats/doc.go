// Package stats provides statistical analysis and diagnostics for time
// series decomposition.
//
// This package includes autocorrelation functions, seasonal period
// detection, classical decomposition, component strength measures, and
// residual diagnostics for validating decomposition quality.
//
// # Autocorrelation Functions
//
// Analyze autocorrelation patterns:
//
//	// Autocorrelation Function
//	acf := stats.ACF(series, 20)
//
//	// Partial Autocorrelation Function
//	pacf := stats.PACF(series, 20)
//
//	// ACF with confidence bounds
//	acfResult := stats.ACFWithConfidence(series, 20)
//	significant := stats.SignificantLags(acfResult.Values, acfResult.ConfBounds)
//
// # Seasonal Period Detection
//
// Suggest candidate seasonal periods from the autocorrelation of the
// differenced series:
//
//	candidates := stats.DetectPeriods(series, 400)
//	for _, c := range candidates {
//	    fmt.Printf("period=%d (r=%.3f)\n", c.Period, c.Correlation)
//	}
//
// # Classical Decomposition
//
// Decompose a series with a moving-average trend and averaged seasonal
// pattern:
//
//	decomp := stats.Decompose(series, 12, "additive")
//	// decomp.Trend, decomp.Seasonal, decomp.Residual
//
// For overlapping or evolving seasonality use the stl, mstl, and str
// packages instead.
//
// # Component Strength
//
// Measure how much of a series' variation each component explains:
//
//	fs := stats.SeasonalStrength(seasonal, remainder)
//	ft := stats.TrendStrength(trend, remainder)
//
// Values near 1 indicate a strong component; values near 0 indicate the
// component is mostly noise.
//
// # Residual Diagnostics
//
// Test decomposition remainders for leftover autocorrelation:
//
//	// Ljung-Box test
//	lb := stats.LjungBox(remainder, 10, 0)
//	if lb.PValue > 0.05 {
//	    // Remainder is white noise (good)
//	}
//
//	// Durbin-Watson test
//	dw := stats.DurbinWatson(remainder.Values)
package stats
