package sparse

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrNotIdentifiable is returned when the system is rank-deficient or so
// ill-conditioned that no stable least-squares solution exists.
var ErrNotIdentifiable = errors.New("system is rank-deficient or too ill-conditioned to solve")

// LSQROptions configures the iterative solver. The zero value selects the
// defaults.
type LSQROptions struct {
	// MaxIters caps the number of bidiagonalization steps. Zero selects
	// 4*cols.
	MaxIters int
	// Atol is the relative tolerance on ||A'r|| / (||A|| * ||r||).
	// Zero selects 1e-10.
	Atol float64
	// Btol is the relative tolerance on the residual norm. Zero selects
	// 1e-10.
	Btol float64
	// CondLim aborts with ErrNotIdentifiable once the running condition
	// estimate of A exceeds it. Zero selects 1e8.
	CondLim float64
}

// LSQRResult holds the solution of a least-squares solve.
type LSQRResult struct {
	// X is the computed solution of min ||b - A*x||.
	X []float64
	// Residual is b - A*X.
	Residual []float64
	// ResidualNorm is ||b - A*X|| as estimated by the recurrence.
	ResidualNorm float64
	// CondEstimate is the final running estimate of cond(A).
	CondEstimate float64
	// Iters is the number of iterations performed.
	Iters int
}

// LSQR solves the sparse least-squares problem min ||b - A*x|| using the
// Paige-Saunders bidiagonalization method. Only products with A and A' are
// required, so the cost per iteration is proportional to the number of
// stored entries. The method is deterministic: identical inputs produce
// identical solutions.
func LSQR(a *Matrix, b []float64, opts *LSQROptions) (*LSQRResult, error) {
	rows, cols := a.Dims()
	if len(b) != rows {
		panic(fmt.Sprintf("sparse: LSQR shape mismatch: %dx%d matrix, b %d", rows, cols, len(b)))
	}

	maxIters := 4 * cols
	atol, btol, condLim := 1e-10, 1e-10, 1e8
	if opts != nil {
		if opts.MaxIters > 0 {
			maxIters = opts.MaxIters
		}
		if opts.Atol > 0 {
			atol = opts.Atol
		}
		if opts.Btol > 0 {
			btol = opts.Btol
		}
		if opts.CondLim > 0 {
			condLim = opts.CondLim
		}
	}

	x := make([]float64, cols)
	u := make([]float64, rows)
	v := make([]float64, cols)
	w := make([]float64, cols)
	tmpRows := make([]float64, rows)
	tmpCols := make([]float64, cols)

	copy(u, b)
	beta := floats.Norm(u, 2)
	bnorm := beta
	if beta == 0 {
		// b is zero: x = 0 is exact.
		return &LSQRResult{X: x, Residual: make([]float64, rows)}, nil
	}
	floats.Scale(1/beta, u)

	a.MulTransVec(v, u)
	alpha := floats.Norm(v, 2)
	if alpha == 0 {
		// A'b = 0: x = 0 minimizes the residual already.
		res := make([]float64, rows)
		copy(res, b)
		return &LSQRResult{X: x, Residual: res, ResidualNorm: bnorm}, nil
	}
	floats.Scale(1/alpha, v)
	copy(w, v)

	phibar := beta
	rhobar := alpha
	var anorm, ddnorm, acond float64
	iters := 0

	for iters = 1; iters <= maxIters; iters++ {
		// Continue the bidiagonalization.
		a.MulVec(tmpRows, v)
		floats.AddScaledTo(u, tmpRows, -alpha, u)
		beta = floats.Norm(u, 2)
		if beta > 0 {
			floats.Scale(1/beta, u)
		}
		anorm = math.Sqrt(anorm*anorm + alpha*alpha + beta*beta)

		a.MulTransVec(tmpCols, u)
		floats.AddScaledTo(v, tmpCols, -beta, v)
		alpha = floats.Norm(v, 2)
		if alpha > 0 {
			floats.Scale(1/alpha, v)
		}

		// Plane rotation to eliminate the subdiagonal.
		rho := math.Hypot(rhobar, beta)
		c := rhobar / rho
		s := beta / rho
		theta := s * alpha
		rhobar = -c * alpha
		phi := c * phibar
		phibar = s * phibar

		t1 := phi / rho
		t2 := -theta / rho
		for i := range x {
			dk := w[i] / rho
			ddnorm += dk * dk
			x[i] += t1 * w[i]
			w[i] = v[i] + t2*w[i]
		}

		acond = anorm * math.Sqrt(ddnorm)
		if acond > condLim {
			return nil, fmt.Errorf("%w: condition estimate %.3g exceeds limit %.3g",
				ErrNotIdentifiable, acond, condLim)
		}

		rnorm := phibar
		arnorm := alpha * math.Abs(s*phi)
		xnorm := floats.Norm(x, 2)

		if rnorm <= btol*bnorm+atol*anorm*xnorm {
			break
		}
		if anorm > 0 && rnorm > 0 && arnorm/(anorm*rnorm) <= atol {
			break
		}
		if alpha == 0 || beta == 0 {
			// Exact breakdown: the Krylov space is exhausted and x is the
			// minimum-norm solution.
			break
		}
	}
	if iters > maxIters {
		iters = maxIters
	}

	residual := make([]float64, rows)
	a.MulVec(residual, x)
	floats.AddScaledTo(residual, b, -1, residual)

	return &LSQRResult{
		X:            x,
		Residual:     residual,
		ResidualNorm: phibar,
		CondEstimate: acond,
		Iters:        iters,
	}, nil
}
