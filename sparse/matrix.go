// Package sparse provides a compressed sparse row matrix and an iterative
// least-squares solver for tall, sparse regression designs.
package sparse

import (
	"fmt"
	"sort"
)

// Builder accumulates matrix entries in triplet form. Entries may be added
// in any order; duplicates at the same position are summed when the matrix
// is built.
type Builder struct {
	rows, cols int
	ri, ci     []int
	val        []float64
}

// NewBuilder creates a builder for a rows x cols matrix.
func NewBuilder(rows, cols int) *Builder {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("sparse: invalid dimensions %dx%d", rows, cols))
	}
	return &Builder{rows: rows, cols: cols}
}

// Add records the entry a[i,j] += v. Zero values are dropped.
func (b *Builder) Add(i, j int, v float64) {
	if i < 0 || i >= b.rows || j < 0 || j >= b.cols {
		panic(fmt.Sprintf("sparse: entry (%d,%d) outside %dx%d matrix", i, j, b.rows, b.cols))
	}
	if v == 0 {
		return
	}
	b.ri = append(b.ri, i)
	b.ci = append(b.ci, j)
	b.val = append(b.val, v)
}

// Rows returns the number of rows of the matrix being built.
func (b *Builder) Rows() int { return b.rows }

// Cols returns the number of columns of the matrix being built.
func (b *Builder) Cols() int { return b.cols }

// Build compresses the accumulated triplets into CSR form. The builder
// remains usable; subsequent Adds affect later Builds only.
func (b *Builder) Build() *Matrix {
	order := make([]int, len(b.val))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(p, q int) bool {
		ip, iq := order[p], order[q]
		if b.ri[ip] != b.ri[iq] {
			return b.ri[ip] < b.ri[iq]
		}
		return b.ci[ip] < b.ci[iq]
	})

	m := &Matrix{
		rows:   b.rows,
		cols:   b.cols,
		indptr: make([]int, b.rows+1),
	}
	prevRow, prevCol := -1, -1
	for _, k := range order {
		r, c, v := b.ri[k], b.ci[k], b.val[k]
		if r == prevRow && c == prevCol {
			m.data[len(m.data)-1] += v
			continue
		}
		m.indices = append(m.indices, c)
		m.data = append(m.data, v)
		for fill := prevRow + 1; fill <= r; fill++ {
			m.indptr[fill] = len(m.data) - 1
		}
		prevRow, prevCol = r, c
	}
	for fill := prevRow + 1; fill <= b.rows; fill++ {
		m.indptr[fill] = len(m.data)
	}
	return m
}

// Matrix is an immutable sparse matrix in compressed sparse row form.
type Matrix struct {
	rows, cols int
	indptr     []int
	indices    []int
	data       []float64
}

// Dims returns the matrix dimensions.
func (m *Matrix) Dims() (rows, cols int) { return m.rows, m.cols }

// NNZ returns the number of stored entries.
func (m *Matrix) NNZ() int { return len(m.data) }

// MulVec computes dst = A*x. dst must have length rows and x length cols.
func (m *Matrix) MulVec(dst, x []float64) {
	if len(dst) != m.rows || len(x) != m.cols {
		panic(fmt.Sprintf("sparse: MulVec shape mismatch: %dx%d matrix, dst %d, x %d",
			m.rows, m.cols, len(dst), len(x)))
	}
	for i := 0; i < m.rows; i++ {
		sum := 0.0
		for k := m.indptr[i]; k < m.indptr[i+1]; k++ {
			sum += m.data[k] * x[m.indices[k]]
		}
		dst[i] = sum
	}
}

// MulTransVec computes dst = A'*x. dst must have length cols and x length
// rows.
func (m *Matrix) MulTransVec(dst, x []float64) {
	if len(dst) != m.cols || len(x) != m.rows {
		panic(fmt.Sprintf("sparse: MulTransVec shape mismatch: %dx%d matrix, dst %d, x %d",
			m.rows, m.cols, len(dst), len(x)))
	}
	for j := range dst {
		dst[j] = 0
	}
	for i := 0; i < m.rows; i++ {
		xi := x[i]
		if xi == 0 {
			continue
		}
		for k := m.indptr[i]; k < m.indptr[i+1]; k++ {
			dst[m.indices[k]] += m.data[k] * xi
		}
	}
}
