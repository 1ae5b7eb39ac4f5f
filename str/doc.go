// Package str implements STR, seasonal-trend decomposition using
// regression.
//
// STR poses decomposition as one penalized least-squares problem: the
// trend, every seasonal component, and every covariate coefficient are
// estimated simultaneously by stacking the observation equations on top
// of difference-penalty rows and solving the sparse system. Smoothness is
// expressed through penalty weights rather than smoother spans, which
// makes the method considerably more flexible than loess-based
// decomposition:
//
//   - seasonal components are 2D surfaces over (phase, time), so the
//     seasonal shape may drift over time at a rate set by its penalties;
//   - the mapping from time to phase is an arbitrary Topology function, so
//     components may be non-nested, have non-integer effective periods, or
//     follow irregular calendars;
//   - covariates enter with constant or smoothly time-varying
//     coefficients.
//
// # Usage
//
//	result, err := str.Decompose(values, str.Config{
//	    TrendPenalty: 500,
//	    Seasonal: []str.SeasonalSpec{{
//	        Name:         "week",
//	        Phases:       7,
//	        Topology:     str.Cyclic(7),
//	        PenaltyTime:  50,
//	        PenaltyPhase: 1,
//	    }},
//	    Covariates: []str.Covariate{
//	        {Name: "temperature", Values: temp, Penalty: 0},
//	    },
//	})
//
// Penalty weights are hyperparameters: larger weights give smoother
// components. Choosing them (for example by cross-validation) is the
// caller's concern.
//
// By default each seasonal surface carries a soft zero-sum constraint
// across phases at every time step, which pins the seasonal level and
// keeps it from drifting into the trend.
//
// Reference: Dokumentov, A., and Hyndman, R.J. (2022). STR: Seasonal-Trend
// Decomposition Using Regression. INFORMS Journal on Data Science, 1(1).
package str
