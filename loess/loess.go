// Package loess implements local polynomial regression smoothing.
package loess

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrInvalidWindow is returned when the span is not a positive odd integer.
	ErrInvalidWindow = errors.New("span must be a positive odd integer")
	// ErrInvalidDegree is returned when the local polynomial degree is not 0, 1, or 2.
	ErrInvalidDegree = errors.New("degree must be 0, 1, or 2")
	// ErrWeightLength is returned when the robustness weights do not match the data.
	ErrWeightLength = errors.New("robustness weights must match data length")
)

// Smooth fits a locally weighted polynomial of the given degree at every
// index of y and returns the fitted values. The span is the number of
// nearest neighbors included in each local fit and must be a positive odd
// integer; spans larger than the series fall back to fitting over all
// points with correspondingly flatter tricube weights.
func Smooth(y []float64, span, degree int) ([]float64, error) {
	return SmoothWeighted(y, nil, span, degree)
}

// SmoothWeighted is Smooth with per-point robustness multipliers rho (as
// produced by bisquare reweighting). A nil rho means uniform weights.
func SmoothWeighted(y, rho []float64, span, degree int) ([]float64, error) {
	if span <= 0 || span%2 == 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWindow, span)
	}
	if degree < 0 || degree > 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDegree, degree)
	}
	n := len(y)
	if rho != nil && len(rho) != n {
		return nil, fmt.Errorf("%w: %d weights for %d points", ErrWeightLength, len(rho), n)
	}
	if n == 0 {
		return []float64{}, nil
	}
	if n == 1 {
		return []float64{y[0]}, nil
	}

	q := span
	if q > n {
		q = n
	}

	fitted := make([]float64, n)
	weights := make([]float64, n)
	for i := 0; i < n; i++ {
		// Nearest q points on a regular grid form a contiguous window.
		lo := i - (q-1)/2
		if lo < 0 {
			lo = 0
		}
		if lo+q > n {
			lo = n - q
		}
		hi := lo + q - 1

		// Tricube distance scale: distance to the farthest point in the
		// window, stretched when the requested span exceeds the series.
		lambda := float64(maxInt(i-lo, hi-i))
		if span > n {
			lambda *= float64(span) / float64(n)
		}
		if lambda == 0 {
			fitted[i] = y[i]
			continue
		}

		sumW := 0.0
		for j := lo; j <= hi; j++ {
			w := tricube(absFloat(float64(j-i)) / lambda)
			if rho != nil {
				w *= rho[j]
			}
			weights[j] = w
			sumW += w
		}
		if sumW == 0 {
			// All points downweighted to zero; fall back to a plain mean.
			sum := 0.0
			for j := lo; j <= hi; j++ {
				sum += y[j]
			}
			fitted[i] = sum / float64(q)
			continue
		}

		fitted[i] = fitLocal(y, weights, lo, hi, i, degree)
	}

	return fitted, nil
}

// fitLocal fits a weighted polynomial of the given degree over the window
// [lo, hi] centered at index c and evaluates it at c.
func fitLocal(y, weights []float64, lo, hi, c, degree int) float64 {
	if degree == 0 {
		num, den := 0.0, 0.0
		for j := lo; j <= hi; j++ {
			num += weights[j] * y[j]
			den += weights[j]
		}
		return num / den
	}

	// Weighted normal equations for a polynomial in (j - c). The constant
	// coefficient is the fitted value at c.
	p := degree + 1
	a := mat.NewSymDense(p, nil)
	b := mat.NewVecDense(p, nil)
	pow := make([]float64, 2*degree+1)
	for j := lo; j <= hi; j++ {
		w := weights[j]
		if w == 0 {
			continue
		}
		x := float64(j - c)
		pow[0] = 1
		for k := 1; k < len(pow); k++ {
			pow[k] = pow[k-1] * x
		}
		for r := 0; r < p; r++ {
			for s := r; s < p; s++ {
				a.SetSym(r, s, a.At(r, s)+w*pow[r+s])
			}
			b.SetVec(r, b.AtVec(r)+w*pow[r]*y[j])
		}
	}

	var chol mat.Cholesky
	if !chol.Factorize(a) {
		// Degenerate window (e.g. a single effective point); fall back to
		// the weighted mean.
		return fitLocal(y, weights, lo, hi, c, 0)
	}
	var sol mat.VecDense
	if err := chol.SolveVecTo(&sol, b); err != nil {
		return fitLocal(y, weights, lo, hi, c, 0)
	}
	return sol.AtVec(0)
}

func tricube(u float64) float64 {
	if u >= 1 {
		return 0
	}
	t := 1 - u*u*u
	return t * t * t
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
