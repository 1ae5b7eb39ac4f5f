package str

import (
	"math"

	"github.com/sartorproj/godecomp/sparse"
)

// layout records where each block of unknowns lives in the stacked
// coefficient vector: [trend | surface_1 | ... | surface_I | covariates].
type layout struct {
	n             int
	surfaceOffset []int // start column of each seasonal surface
	covarOffset   []int // start column of each covariate coefficient block
	covarWidth    []int // 1 for a constant coefficient, n for time-varying
	cols          int
}

func buildLayout(n int, seasonal []SeasonalSpec, covariates []Covariate) layout {
	l := layout{n: n}
	col := n
	for _, spec := range seasonal {
		l.surfaceOffset = append(l.surfaceOffset, col)
		col += spec.Phases * n
	}
	for _, cv := range covariates {
		l.covarOffset = append(l.covarOffset, col)
		w := 1
		if cv.Penalty > 0 {
			w = n
		}
		l.covarWidth = append(l.covarWidth, w)
		col += w
	}
	l.cols = col
	return l
}

// countRows returns the total number of stacked rows: observations,
// penalty rows per block, and zero-sum constraint rows.
func countRows(n int, cfg *Config, zeroSum float64) int {
	rows := n     // observations
	rows += n - 2 // trend second differences
	for _, spec := range cfg.Seasonal {
		m := spec.Phases
		if spec.PenaltyTime > 0 {
			rows += m * (n - 2)
		}
		if spec.PenaltyPhase > 0 {
			if m >= 3 {
				rows += m * n
			} else if m == 2 {
				rows += n
			}
		}
		if spec.PenaltyCross > 0 && m >= 2 {
			rows += m * (n - 1)
		}
		if zeroSum > 0 {
			rows += n
		}
	}
	for _, cv := range cfg.Covariates {
		if cv.Penalty > 0 {
			rows += n - 2
		}
	}
	return rows
}

// assemble builds the stacked sparse design and extended response. The
// observation rows carry the additive model y_t = l_t + sum_i s_i(p_i(t), t)
// + sum_p z_p(t) phi_p(t); every remaining row is a difference-penalty or
// zero-sum soft constraint with zero response, following the D'D
// construction of Whittaker-Henderson style smoothers.
func assemble(y []float64, cfg *Config, phases [][]int, zeroSum float64) (*sparse.Matrix, []float64, layout) {
	n := len(y)
	l := buildLayout(n, cfg.Seasonal, cfg.Covariates)
	rows := countRows(n, cfg, zeroSum)

	b := sparse.NewBuilder(rows, l.cols)
	rhs := make([]float64, rows)
	row := 0

	// Observation rows, scaled for weighted least squares.
	for t := 0; t < n; t++ {
		w := 1.0
		if cfg.Weights != nil {
			w = math.Sqrt(cfg.Weights[t])
		}
		b.Add(row, t, w) // trend
		for i := range cfg.Seasonal {
			b.Add(row, l.surfaceCol(i, phases[i][t], t), w)
		}
		for p, cv := range cfg.Covariates {
			if cv.Values[t] != 0 {
				b.Add(row, l.covarCol(p, t), w*cv.Values[t])
			}
		}
		rhs[row] = w * y[t]
		row++
	}

	// Trend smoothness: lambda * (l_t - 2 l_{t+1} + l_{t+2}) = 0.
	for t := 0; t < n-2; t++ {
		b.Add(row, t, cfg.TrendPenalty)
		b.Add(row, t+1, -2*cfg.TrendPenalty)
		b.Add(row, t+2, cfg.TrendPenalty)
		row++
	}

	for i, spec := range cfg.Seasonal {
		m := spec.Phases

		// Time direction: second differences within each phase track.
		if spec.PenaltyTime > 0 {
			for k := 0; k < m; k++ {
				for t := 0; t < n-2; t++ {
					b.Add(row, l.surfaceCol(i, k, t), spec.PenaltyTime)
					b.Add(row, l.surfaceCol(i, k, t+1), -2*spec.PenaltyTime)
					b.Add(row, l.surfaceCol(i, k, t+2), spec.PenaltyTime)
					row++
				}
			}
		}

		// Phase direction: cyclic second differences across phases at each
		// time step. With only two phases the cyclic second difference
		// degenerates, so a plain first difference is used instead.
		if spec.PenaltyPhase > 0 {
			if m >= 3 {
				for t := 0; t < n; t++ {
					for k := 0; k < m; k++ {
						prev := (k - 1 + m) % m
						next := (k + 1) % m
						b.Add(row, l.surfaceCol(i, prev, t), spec.PenaltyPhase)
						b.Add(row, l.surfaceCol(i, k, t), -2*spec.PenaltyPhase)
						b.Add(row, l.surfaceCol(i, next, t), spec.PenaltyPhase)
						row++
					}
				}
			} else if m == 2 {
				for t := 0; t < n; t++ {
					b.Add(row, l.surfaceCol(i, 0, t), spec.PenaltyPhase)
					b.Add(row, l.surfaceCol(i, 1, t), -spec.PenaltyPhase)
					row++
				}
			}
		}

		// Cross direction: difference in time of the difference in phase.
		if spec.PenaltyCross > 0 && m >= 2 {
			for k := 0; k < m; k++ {
				next := (k + 1) % m
				for t := 0; t < n-1; t++ {
					b.Add(row, l.surfaceCol(i, next, t+1), spec.PenaltyCross)
					b.Add(row, l.surfaceCol(i, k, t+1), -spec.PenaltyCross)
					b.Add(row, l.surfaceCol(i, next, t), -spec.PenaltyCross)
					b.Add(row, l.surfaceCol(i, k, t), spec.PenaltyCross)
					row++
				}
			}
		}

		// Zero-sum across phases at each time step pins the surface level,
		// separating it from the trend.
		if zeroSum > 0 {
			for t := 0; t < n; t++ {
				for k := 0; k < m; k++ {
					b.Add(row, l.surfaceCol(i, k, t), zeroSum)
				}
				row++
			}
		}
	}

	// Covariate coefficient smoothness for time-varying coefficients.
	for p, cv := range cfg.Covariates {
		if cv.Penalty <= 0 {
			continue
		}
		off := l.covarOffset[p]
		for t := 0; t < n-2; t++ {
			b.Add(row, off+t, cv.Penalty)
			b.Add(row, off+t+1, -2*cv.Penalty)
			b.Add(row, off+t+2, cv.Penalty)
			row++
		}
	}

	return b.Build(), rhs, l
}

// surfaceCol returns the column of surface i's value at (phase k, time t).
func (l layout) surfaceCol(i, k, t int) int {
	return l.surfaceOffset[i] + k*l.n + t
}

// covarCol returns the column of covariate p's coefficient at time t. A
// constant coefficient has a single column regardless of t.
func (l layout) covarCol(p, t int) int {
	if l.covarWidth[p] == 1 {
		return l.covarOffset[p]
	}
	return l.covarOffset[p] + t
}
