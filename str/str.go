// Package str implements seasonal-trend decomposition using penalized
// regression.
package str

import (
	"errors"
	"fmt"

	"github.com/sartorproj/godecomp/sparse"
)

var (
	// ErrInvalidTopology is returned when a seasonal topology maps a time
	// index outside the component's phase range, or is missing.
	ErrInvalidTopology = errors.New("topology must map every time index into [0, phases)")
	// ErrInvalidDimensions is returned when a component's dimensions are
	// inconsistent with the series length.
	ErrInvalidDimensions = errors.New("component dimensions are inconsistent with the series")
	// ErrInvalidPenalty is returned when a penalty weight is negative, or
	// the trend penalty is not positive.
	ErrInvalidPenalty = errors.New("penalty weights must be non-negative and the trend penalty positive")
	// ErrNotIdentifiable is returned when the regression design is
	// rank-deficient: some coefficients cannot be estimated from the data
	// and penalties supplied. It aliases sparse.ErrNotIdentifiable.
	ErrNotIdentifiable = sparse.ErrNotIdentifiable
)

// DefaultZeroSumWeight is the weight of the soft constraint that each
// seasonal surface sums to zero across phases at every time step.
const DefaultZeroSumWeight = 1000.0

// Topology maps a time index to a 0-based seasonal phase index. It may be
// many-to-one and need not follow a fixed integer cycle, which is how
// irregular calendars (e.g. lunar holidays) are expressed.
type Topology func(t int) int

// Cyclic returns the ordinary integer-period topology t mod period.
func Cyclic(period int) Topology {
	return func(t int) int { return t % period }
}

// SeasonalSpec describes one seasonal component: the dimensionality of its
// surface, the topology projecting times onto phases, and the smoothness
// penalties of the surface in each differencing direction.
type SeasonalSpec struct {
	Name     string
	Phases   int
	Topology Topology
	// PenaltyTime smooths each phase track over time (second differences).
	PenaltyTime float64
	// PenaltyPhase smooths across neighboring phases at each time step
	// (cyclic second differences).
	PenaltyPhase float64
	// PenaltyCross smooths the interaction: how the phase profile is
	// allowed to deform over time.
	PenaltyCross float64
}

// Covariate is an external regressor aligned with the series. A zero
// penalty estimates a single constant coefficient; a positive penalty
// estimates a time-varying coefficient series whose roughness it controls.
type Covariate struct {
	Name    string
	Values  []float64
	Penalty float64
}

// Config holds the inputs of an STR decomposition. Penalty weights are
// hyperparameters chosen by the caller; they are not estimated here.
type Config struct {
	// TrendPenalty controls trend smoothness. Required, > 0.
	TrendPenalty float64
	Seasonal     []SeasonalSpec
	Covariates   []Covariate
	// Weights are optional non-negative observation weights for weighted
	// least squares. Nil means uniform.
	Weights []float64
	// ZeroSumWeight is the weight of the soft zero-sum constraint across
	// phases. Zero selects DefaultZeroSumWeight; negative disables the
	// constraint (leaving seasonal levels confounded with the trend).
	ZeroSumWeight float64
	// Solver overrides the sparse solver options.
	Solver *sparse.LSQROptions
}

// Surface is a seasonal component's full (phase, time) coefficient grid.
type Surface struct {
	Name   string
	Phases int
	// Values[k][t] is the component's value at phase k and time t.
	Values [][]float64
}

// CovariateEffect is an estimated covariate contribution.
type CovariateEffect struct {
	Name string
	// Coefficients is the coefficient at each time step (a constant
	// coefficient is expanded to the full length).
	Coefficients []float64
	// Effect is the elementwise contribution coefficient * covariate.
	Effect []float64
}

// Result holds the components of an STR decomposition. The identity
// y = Trend + sum(Seasons) + sum(Covariates.Effect) + Remainder holds
// exactly elementwise.
type Result struct {
	Trend []float64
	// Seasons are the surfaces projected onto the observation times,
	// aligned with Config.Seasonal.
	Seasons    [][]float64
	Surfaces   []Surface
	Covariates []CovariateEffect
	Remainder  []float64
}

// Decompose fits the additive model
//
//	y_t = trend_t + sum_i surface_i(topology_i(t), t) + sum_p z_p(t)*phi_p(t) + r_t
//
// by penalized least squares over the stacked design of observation rows
// and difference-penalty rows, solved with sparse LSQR. Larger penalty
// weights give smoother components.
func Decompose(y []float64, cfg Config) (*Result, error) {
	n := len(y)
	if n < 3 {
		return nil, fmt.Errorf("%w: need at least 3 observations, got %d", ErrInvalidDimensions, n)
	}
	if cfg.TrendPenalty <= 0 {
		return nil, fmt.Errorf("%w: trend penalty %g", ErrInvalidPenalty, cfg.TrendPenalty)
	}
	if cfg.Weights != nil {
		if len(cfg.Weights) != n {
			return nil, fmt.Errorf("%w: %d weights for %d observations", ErrInvalidDimensions, len(cfg.Weights), n)
		}
		for t, w := range cfg.Weights {
			if w < 0 {
				return nil, fmt.Errorf("%w: negative weight %g at index %d", ErrInvalidDimensions, w, t)
			}
		}
	}

	// Evaluate and validate every topology up front; the projection is
	// reused for assembly and extraction.
	phases := make([][]int, len(cfg.Seasonal))
	for i, spec := range cfg.Seasonal {
		if spec.Phases < 1 {
			return nil, fmt.Errorf("%w: component %d (%s) has %d phases", ErrInvalidDimensions, i, spec.Name, spec.Phases)
		}
		if spec.Topology == nil {
			return nil, fmt.Errorf("%w: component %d (%s) has no topology", ErrInvalidTopology, i, spec.Name)
		}
		if spec.PenaltyTime < 0 || spec.PenaltyPhase < 0 || spec.PenaltyCross < 0 {
			return nil, fmt.Errorf("%w: component %d (%s)", ErrInvalidPenalty, i, spec.Name)
		}
		phases[i] = make([]int, n)
		for t := 0; t < n; t++ {
			k := spec.Topology(t)
			if k < 0 || k >= spec.Phases {
				return nil, fmt.Errorf("%w: component %d (%s) maps t=%d to phase %d of %d",
					ErrInvalidTopology, i, spec.Name, t, k, spec.Phases)
			}
			phases[i][t] = k
		}
	}
	for p, cv := range cfg.Covariates {
		if len(cv.Values) != n {
			return nil, fmt.Errorf("%w: covariate %d (%s) has length %d, series %d",
				ErrInvalidDimensions, p, cv.Name, len(cv.Values), n)
		}
		if cv.Penalty < 0 {
			return nil, fmt.Errorf("%w: covariate %d (%s) penalty %g", ErrInvalidPenalty, p, cv.Name, cv.Penalty)
		}
	}

	if err := checkIdentifiable(n, &cfg, phases); err != nil {
		return nil, err
	}

	zeroSum := cfg.ZeroSumWeight
	if zeroSum == 0 {
		zeroSum = DefaultZeroSumWeight
	} else if zeroSum < 0 {
		zeroSum = 0
	}

	a, rhs, l := assemble(y, &cfg, phases, zeroSum)
	solved, err := sparse.LSQR(a, rhs, cfg.Solver)
	if err != nil {
		return nil, fmt.Errorf("str solve: %w", err)
	}
	beta := solved.X

	result := &Result{
		Trend:     beta[:n:n],
		Remainder: make([]float64, n),
	}

	for i, spec := range cfg.Seasonal {
		surface := Surface{Name: spec.Name, Phases: spec.Phases}
		for k := 0; k < spec.Phases; k++ {
			start := l.surfaceCol(i, k, 0)
			surface.Values = append(surface.Values, beta[start:start+n:start+n])
		}
		season := make([]float64, n)
		for t := 0; t < n; t++ {
			season[t] = surface.Values[phases[i][t]][t]
		}
		result.Surfaces = append(result.Surfaces, surface)
		result.Seasons = append(result.Seasons, season)
	}

	for p, cv := range cfg.Covariates {
		coefs := make([]float64, n)
		if cv.Penalty > 0 {
			copy(coefs, beta[l.covarOffset[p]:l.covarOffset[p]+n])
		} else {
			c := beta[l.covarOffset[p]]
			for t := range coefs {
				coefs[t] = c
			}
		}
		effect := make([]float64, n)
		for t := range effect {
			effect[t] = coefs[t] * cv.Values[t]
		}
		result.Covariates = append(result.Covariates, CovariateEffect{
			Name:         cv.Name,
			Coefficients: coefs,
			Effect:       effect,
		})
	}

	for t := 0; t < n; t++ {
		r := y[t] - result.Trend[t]
		for i := range result.Seasons {
			r -= result.Seasons[i][t]
		}
		for p := range result.Covariates {
			r -= result.Covariates[p].Effect[t]
		}
		result.Remainder[t] = r
	}

	return result, nil
}

// checkIdentifiable rejects designs that are structurally rank-deficient
// before they reach the solver: surface entries no observation or penalty
// touches, zero covariate columns, and exactly collinear constant-
// coefficient covariates. Near-deficiency that only shows up numerically
// is caught by the solver's condition limit instead.
func checkIdentifiable(n int, cfg *Config, phases [][]int) error {
	for i, spec := range cfg.Seasonal {
		if spec.PenaltyPhase > 0 || spec.PenaltyCross > 0 {
			continue
		}
		seen := make([]bool, spec.Phases)
		observed := 0
		for t := 0; t < n; t++ {
			if !seen[phases[i][t]] {
				seen[phases[i][t]] = true
				observed++
			}
		}
		if observed < spec.Phases {
			for k, ok := range seen {
				if !ok {
					return fmt.Errorf(
						"%w: component %d (%s): phase %d is never observed and no phase or cross penalty ties it to the data",
						ErrNotIdentifiable, i, spec.Name, k)
				}
			}
		}
	}

	var constIdx []int
	for p, cv := range cfg.Covariates {
		if cv.Penalty > 0 {
			continue
		}
		zero := true
		for _, v := range cv.Values {
			if v != 0 {
				zero = false
				break
			}
		}
		if zero {
			return fmt.Errorf("%w: covariate %d (%s) is identically zero", ErrNotIdentifiable, p, cv.Name)
		}
		for _, q := range constIdx {
			if equalSlices(cv.Values, cfg.Covariates[q].Values) {
				return fmt.Errorf("%w: covariates %d and %d (%s) are collinear", ErrNotIdentifiable, q, p, cv.Name)
			}
		}
		constIdx = append(constIdx, p)
	}
	return nil
}

func equalSlices(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
