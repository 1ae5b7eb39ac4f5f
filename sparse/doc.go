// Package sparse provides the sparse linear algebra used by the str
// package: a compressed sparse row matrix assembled through a triplet
// builder, and an LSQR solver for penalized least-squares problems.
//
// The solver is matrix-free in the sense that it only needs products with
// the matrix and its transpose, so a solve touches each stored entry a
// constant number of times per iteration. Stacked regression designs
// (observation rows plus difference-penalty rows) stay sparse, with O(1)
// entries per row, which keeps large decompositions tractable where a
// dense factorization would not be.
//
// # Usage
//
//	b := sparse.NewBuilder(rows, cols)
//	b.Add(0, 0, 1)
//	b.Add(0, 3, -2)
//	// ...
//	a := b.Build()
//	result, err := sparse.LSQR(a, rhs, nil)
//	if errors.Is(err, sparse.ErrNotIdentifiable) {
//	    // the design is rank-deficient; drop a component or tighten penalties
//	}
//
// LSQR reference: Paige, C.C., and Saunders, M.A. (1982). LSQR: An
// Algorithm for Sparse Linear Equations and Sparse Least Squares. ACM
// Transactions on Mathematical Software, 8(1), 43-71.
package sparse
