// Package godecomp provides time series decomposition with multiple and
// irregular seasonal patterns.
//
// GoDecomp is a Go package for splitting a time series into trend, one or
// more seasonal components, optional covariate effects, and a remainder.
// It implements MSTL (Multiple Seasonal-Trend decomposition using Loess)
// and STR (Seasonal-Trend decomposition using Regression), following the
// methodology of Hyndman et al.
//
// # Features
//
//   - MSTL decomposition for series with several nested seasonal periods
//   - STR decomposition with penalized regression, supporting irregular
//     seasonal topologies, non-integer periods, and covariate effects
//   - STL single-season decomposition with loess smoothing
//   - Classical additive/multiplicative decomposition as a baseline
//   - ACF-based candidate period detection and decomposition diagnostics
//     (Ljung-Box whiteness test, trend/seasonal strength)
//
// # Quick Start
//
// Decompose an hourly series with daily and weekly seasonality:
//
//	result, err := mstl.Decompose(values, mstl.Config{
//	    Periods:    []int{24, 168},
//	    Iterations: 2,
//	})
//	// result.Trend, result.Seasons[0], result.Seasons[1], result.Remainder
//
// Decompose with an irregular seasonal calendar via STR:
//
//	result, err := str.Decompose(values, str.Config{
//	    TrendPenalty: 100,
//	    Seasonal: []str.SeasonalSpec{{
//	        Name:         "day-of-week",
//	        Phases:       7,
//	        Topology:     func(t int) int { return t % 7 },
//	        PenaltyTime:  10,
//	        PenaltyPhase: 1,
//	    }},
//	})
//
// # Packages
//
// The library is organized into the following packages:
//
//   - mstl: multi-period seasonal-trend decomposition (iterated STL)
//   - stl: single-period seasonal-trend decomposition using loess
//   - str: seasonal-trend decomposition using penalized regression
//   - loess: local polynomial regression smoothing
//   - sparse: sparse least-squares solver used by str
//   - stats: autocorrelation, diagnostics, classical decomposition
//   - timeseries: time series data structures and CSV loading
//
// # References
//
//   - Bandara, K., Hyndman, R.J., & Bergmeir, C. (2021). MSTL: A
//     Seasonal-Trend Decomposition Algorithm for Time Series with Multiple
//     Seasonal Patterns
//   - Dokumentov, A., & Hyndman, R.J. (2022). STR: Seasonal-Trend
//     Decomposition Using Regression
//   - Cleveland, R.B., Cleveland, W.S., McRae, J.E., & Terpenning, I.
//     (1990). STL: A Seasonal-Trend Decomposition Procedure Based on Loess
package godecomp
