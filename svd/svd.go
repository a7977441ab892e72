// Copyright 2025 The benchlab Authors. SPDX-License-Identifier: Apache-2.0

// Package svd computes singular values by selectable methods, built to be
// benchmarked against each other.
//
// All methods share the same reduction: Golub-Kahan Householder
// bidiagonalization of the input, then the symmetric tridiagonal Gram
// matrix of the bidiagonal. They differ in the tridiagonal eigensolver:
//
//   - MethodStandard: implicit-shift QL iteration, values only.
//   - MethodDC: Cuppen divide-and-conquer with deflation and secular
//     equation roots. Asymptotically the same O(n^3) but with heavy
//     deflation on real inputs; its subtrees run in parallel.
//   - MethodJacobi: one-sided Jacobi on the original columns, no
//     reduction at all. Slowest and most accurate; the reference the
//     tests check the other two against.
//
// Complex matrices go through the real embedding [R -C; C R], whose
// spectrum contains each singular value of R+iC exactly twice.
//
// Only singular values are produced. Going through the Gram matrix
// squares the spectrum, so values below about sqrt(eps)*sigma_max are
// returned as ~0 rather than resolved; the benchmarked LAPACK-style
// methods trade that accuracy for speed, Jacobi does not.
package svd

import (
	"math"

	"github.com/pkg/errors"

	"github.com/ajroetker/benchlab/mat"
	"github.com/ajroetker/benchlab/workerpool"
)

// Method selects the singular value algorithm.
type Method int

const (
	// MethodStandard is bidiagonalization plus QL iteration.
	MethodStandard Method = iota
	// MethodDC is bidiagonalization plus divide-and-conquer.
	MethodDC
	// MethodJacobi is one-sided Jacobi on the matrix columns.
	MethodJacobi
)

func (m Method) String() string {
	switch m {
	case MethodStandard:
		return "standard"
	case MethodDC:
		return "dc"
	case MethodJacobi:
		return "jacobi"
	default:
		return "unknown"
	}
}

// ParseMethod maps the CLI spelling to a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "standard", "std":
		return MethodStandard, nil
	case "dc", "divide-and-conquer":
		return MethodDC, nil
	case "jacobi":
		return MethodJacobi, nil
	default:
		return 0, errors.Errorf("svd: unknown method %q", s)
	}
}

type options struct {
	pool *workerpool.Pool
}

// Option configures a Values call.
type Option func(*options)

// WithPool supplies a worker pool for the parallel parts of MethodDC.
// Without one, the divide-and-conquer merge runs single-threaded.
func WithPool(p *workerpool.Pool) Option {
	return func(o *options) { o.pool = p }
}

// Values returns the singular values of a in descending order.
func Values(a *mat.Dense, m Method, opts ...Option) ([]float64, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	rows, cols := a.Dims()
	work := a.Clone()
	if rows < cols {
		// Singular values are transpose-invariant; keep the tall case.
		work = work.T()
	}

	if m == MethodJacobi {
		return jacobiValues(work)
	}

	d, e := bidiagonalize(work)
	td, te := gramTridiagonal(d, e)

	var eig []float64
	var err error
	switch m {
	case MethodStandard:
		eig, err = qlValues(td, te)
	case MethodDC:
		eig, _, err = eigDC(td, te, o.pool, 0)
	default:
		return nil, errors.Errorf("svd: unknown method %d", m)
	}
	if err != nil {
		return nil, errors.Wrap(err, "svd: tridiagonal eigensolver failed")
	}

	return eigToSingular(eig), nil
}

// ValuesC returns the singular values of the complex matrix a in
// descending order, computed on the real embedding. The embedding doubles
// every singular value's multiplicity; the duplicates are dropped.
func ValuesC(a *mat.CDense, m Method, opts ...Option) ([]float64, error) {
	doubled, err := Values(a.Embed(), m, opts...)
	if err != nil {
		return nil, err
	}

	// Descending pairs: keep every other entry.
	vals := make([]float64, 0, len(doubled)/2)
	for i := 0; i < len(doubled); i += 2 {
		vals = append(vals, doubled[i])
	}
	return vals, nil
}

// gramTridiagonal forms the symmetric tridiagonal B^T B from the bidiagonal
// (d, e): diagonal d[j]^2 + e[j-1]^2, off-diagonal d[j]*e[j].
func gramTridiagonal(d, e []float64) (td, te []float64) {
	n := len(d)
	td = make([]float64, n)
	te = make([]float64, n-1)
	for j := range n {
		td[j] = d[j] * d[j]
		if j > 0 {
			td[j] += e[j-1] * e[j-1]
		}
		if j < n-1 {
			te[j] = d[j] * e[j]
		}
	}
	return td, te
}

// eigToSingular maps the ascending Gram eigenvalues to descending singular
// values. Small negative eigenvalues are rounding artifacts and clamp to 0.
func eigToSingular(eig []float64) []float64 {
	n := len(eig)
	vals := make([]float64, n)
	for i, lam := range eig {
		if lam < 0 {
			lam = 0
		}
		vals[n-1-i] = math.Sqrt(lam)
	}
	return vals
}
