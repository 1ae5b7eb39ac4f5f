// Package mstl implements MSTL, multiple seasonal-trend decomposition
// using loess, for series with several seasonal periods.
//
// MSTL extends STL to multiple seasonality by cycling over the periods
// from shortest to longest, re-estimating one seasonal component at a time
// against the series with all other components removed. High-frequency
// seasonality is extracted first so that it does not contaminate the
// longer cycles. After the refinement passes the trend is taken from a
// final STL fit of the fully deseasonalized series, and the remainder is
// defined by the additive identity.
//
// # Usage
//
// Hourly data with daily and weekly patterns:
//
//	result, err := mstl.Decompose(values, mstl.Config{
//	    Periods: []int{24, 168},
//	})
//	if err != nil {
//	    // handle
//	}
//	daily := result.Seasons[0]
//	weekly := result.Seasons[1]
//
// Periods must be supplied in strictly increasing order; the decomposition
// depends on the extraction order, so non-increasing lists are rejected
// with ErrInvalidPeriod rather than silently reordered.
//
// Reference: Bandara, K., Hyndman, R.J., and Bergmeir, C. (2021). MSTL: A
// Seasonal-Trend Decomposition Algorithm for Time Series with Multiple
// Seasonal Patterns.
package mstl
