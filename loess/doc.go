// Package loess implements local polynomial regression smoothing on a
// regular grid.
//
// The smoother fits a weighted polynomial (degree 0, 1, or 2) over the
// span nearest neighbors of each point, using tricube neighborhood
// weights, and evaluates the fit at the point. It is the smoothing
// primitive used by the stl and mstl packages for cycle-subseries,
// low-pass, and trend smoothing.
//
// # Usage
//
// Smooth a noisy sequence with a local linear fit over 21 neighbors:
//
//	fitted, err := loess.Smooth(values, 21, 1)
//
// Robust smoothing with bisquare multipliers:
//
//	fitted, err := loess.SmoothWeighted(values, rho, 21, 1)
//
// The span must be a positive odd integer. Spans larger than the series
// length are allowed and produce progressively flatter fits, which is how
// STL expresses "periodic" seasonal sub-series smoothing.
package loess
