package sparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderBuild(t *testing.T) {
	b := NewBuilder(3, 4)
	b.Add(2, 1, 5)
	b.Add(0, 0, 1)
	b.Add(0, 3, 2)
	b.Add(1, 2, -3)
	b.Add(0, 0, 1) // duplicate, summed

	m := b.Build()
	rows, cols := m.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 4, cols)
	assert.Equal(t, 4, m.NNZ())

	dst := make([]float64, 3)
	m.MulVec(dst, []float64{1, 1, 1, 1})
	assert.Equal(t, []float64{4, -3, 5}, dst)
}

func TestBuilderEmptyRows(t *testing.T) {
	// Rows with no entries must still be addressable.
	b := NewBuilder(4, 2)
	b.Add(3, 1, 7)

	m := b.Build()
	dst := make([]float64, 4)
	m.MulVec(dst, []float64{1, 2})
	assert.Equal(t, []float64{0, 0, 0, 14}, dst)
}

func TestBuilderPanicsOutOfRange(t *testing.T) {
	b := NewBuilder(2, 2)
	assert.Panics(t, func() { b.Add(2, 0, 1) })
	assert.Panics(t, func() { b.Add(0, -1, 1) })
}

func TestMulTransVec(t *testing.T) {
	// A = [1 2; 3 0; 0 4]
	b := NewBuilder(3, 2)
	b.Add(0, 0, 1)
	b.Add(0, 1, 2)
	b.Add(1, 0, 3)
	b.Add(2, 1, 4)
	m := b.Build()

	dst := make([]float64, 2)
	m.MulTransVec(dst, []float64{1, 1, 1})
	assert.Equal(t, []float64{4, 6}, dst)
}

func TestLSQRIdentity(t *testing.T) {
	n := 5
	b := NewBuilder(n, n)
	for i := 0; i < n; i++ {
		b.Add(i, i, 1)
	}
	rhs := []float64{1, -2, 3, -4, 5}

	result, err := LSQR(b.Build(), rhs, nil)
	require.NoError(t, err)
	for i := range rhs {
		assert.InDelta(t, rhs[i], result.X[i], 1e-10)
	}
}

func TestLSQRRecoversKnownSolution(t *testing.T) {
	// Square bidiagonal system with known solution.
	n := 50
	b := NewBuilder(n, n)
	for i := 0; i < n; i++ {
		b.Add(i, i, 2)
		if i > 0 {
			b.Add(i, i-1, -1)
		}
	}
	a := b.Build()

	xTrue := make([]float64, n)
	for i := range xTrue {
		xTrue[i] = float64(i%7) - 3
	}
	rhs := make([]float64, n)
	a.MulVec(rhs, xTrue)

	result, err := LSQR(a, rhs, nil)
	require.NoError(t, err)
	for i := range xTrue {
		assert.InDeltaf(t, xTrue[i], result.X[i], 1e-6, "index %d", i)
	}
	for i := range result.Residual {
		assert.InDelta(t, 0, result.Residual[i], 1e-6)
	}
}

func TestLSQROverdeterminedLineFit(t *testing.T) {
	// Fit y = a + b*t through points on an exact line; the least-squares
	// solution is the line itself with zero residual.
	n := 20
	bld := NewBuilder(n, 2)
	rhs := make([]float64, n)
	for i := 0; i < n; i++ {
		bld.Add(i, 0, 1)
		bld.Add(i, 1, float64(i))
		rhs[i] = 2.5 + 0.75*float64(i)
	}

	result, err := LSQR(bld.Build(), rhs, nil)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, result.X[0], 1e-8)
	assert.InDelta(t, 0.75, result.X[1], 1e-8)
}

func TestLSQRInconsistentSystem(t *testing.T) {
	// Three equations, one unknown: x = 1, x = 2, x = 3. The least-squares
	// solution is the mean.
	bld := NewBuilder(3, 1)
	bld.Add(0, 0, 1)
	bld.Add(1, 0, 1)
	bld.Add(2, 0, 1)

	result, err := LSQR(bld.Build(), []float64{1, 2, 3}, nil)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, result.X[0], 1e-10)
}

func TestLSQRZeroRHS(t *testing.T) {
	bld := NewBuilder(3, 2)
	bld.Add(0, 0, 1)
	bld.Add(1, 1, 1)
	bld.Add(2, 0, 1)

	result, err := LSQR(bld.Build(), []float64{0, 0, 0}, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, result.X)
}

func TestLSQRIllConditioned(t *testing.T) {
	// A singular value eight orders of magnitude below the rest pushes the
	// running condition estimate past the limit before the solve finishes.
	bld := NewBuilder(2, 2)
	bld.Add(0, 0, 1)
	bld.Add(1, 1, 1e-8)

	_, err := LSQR(bld.Build(), []float64{1, 1}, &LSQROptions{CondLim: 1e6})
	assert.ErrorIs(t, err, ErrNotIdentifiable)
}

func TestLSQRDeterministic(t *testing.T) {
	n := 30
	bld := NewBuilder(n, 10)
	rhs := make([]float64, n)
	for i := 0; i < n; i++ {
		bld.Add(i, i%10, 1+float64(i%3))
		bld.Add(i, (i+3)%10, -0.5)
		rhs[i] = float64(i%5) - 2
	}
	a := bld.Build()

	r1, err := LSQR(a, rhs, nil)
	require.NoError(t, err)
	r2, err := LSQR(a, rhs, nil)
	require.NoError(t, err)
	assert.Equal(t, r1.X, r2.X)
	assert.Equal(t, r1.Iters, r2.Iters)
}
