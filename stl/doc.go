// Package stl implements STL, seasonal-trend decomposition using loess,
// for a single seasonal period.
//
// STL splits a series x into three additive components,
//
//	x = trend + seasonal + remainder,
//
// by alternating two loess fits: cycle-subseries smoothing of the
// detrended series (which yields the seasonal), and trend smoothing of the
// deseasonalized series. A low-pass filter between the two prevents trend
// variation from leaking into the seasonal component. Optional outer
// passes downweight observations with large remainders (bisquare), making
// the fit robust to outliers.
//
// # Usage
//
//	result, err := stl.Decompose(values, stl.Config{
//	    Period:         12,
//	    SeasonalWindow: 11,
//	})
//	if err != nil {
//	    // handle
//	}
//	// result.Trend, result.Seasonal, result.Remainder
//
// The seasonal window is measured in cycles: it is the loess span applied
// to each phase's sub-series. Small windows let the seasonal shape evolve
// quickly from one cycle to the next; very large windows approach a
// strictly periodic seasonal.
//
// For series with several seasonal periods, see the mstl package, which
// iterates this decomposition over each period.
//
// Reference: Cleveland, R.B., Cleveland, W.S., McRae, J.E., and
// Terpenning, I. (1990). STL: A Seasonal-Trend Decomposition Procedure
// Based on Loess. Journal of Official Statistics, 6(1), 3-73.
package stl
