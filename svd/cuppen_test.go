// Copyright 2025 The benchlab Authors. SPDX-License-Identifier: Apache-2.0

package svd

import (
	"math"
	"math/rand"
	"testing"
)

// applyRankOne computes (D + rho*z*z^T) v for the residual checks.
func applyRankOne(d, z []float64, rho float64, v []float64) []float64 {
	n := len(d)
	out := make([]float64, n)
	var zv float64
	for i := range n {
		zv += z[i] * v[i]
	}
	for i := range n {
		out[i] = d[i]*v[i] + rho*z[i]*zv
	}
	return out
}

// TestRankOneEigResiduals verifies eigenpairs of the secular solve directly:
// residual, orthonormality and trace.
func TestRankOneEigResiduals(t *testing.T) {
	rng := rand.New(rand.NewSource(10))

	for _, rho := range []float64{2.5, -1.75, 0} {
		n := 12
		d := make([]float64, n)
		z := make([]float64, n)
		for i := range n {
			d[i] = rng.NormFloat64() * 3
			z[i] = rng.NormFloat64()
		}

		lam, s := rankOneEig(d, z, rho)

		// Ascending
		for i := 1; i < n; i++ {
			if lam[i] < lam[i-1] {
				t.Fatalf("rho=%v: eigenvalues not ascending", rho)
			}
		}

		// Trace: sum(lam) == sum(d) + rho*||z||^2
		var trWant, trGot, zz float64
		for i := range n {
			trWant += d[i]
			trGot += lam[i]
			zz += z[i] * z[i]
		}
		trWant += rho * zz
		if math.Abs(trGot-trWant) > 1e-9*(math.Abs(trWant)+1) {
			t.Errorf("rho=%v: trace %v, want %v", rho, trGot, trWant)
		}

		// Residuals and orthonormality
		for j := range n {
			v := make([]float64, n)
			for i := range n {
				v[i] = s[i*n+j]
			}
			mv := applyRankOne(d, z, rho, v)
			var res, norm float64
			for i := range n {
				r := mv[i] - lam[j]*v[i]
				res += r * r
				norm += v[i] * v[i]
			}
			if math.Sqrt(res) > 1e-8 {
				t.Errorf("rho=%v: eigenpair %d residual %g", rho, j, math.Sqrt(res))
			}
			if math.Abs(norm-1) > 1e-10 {
				t.Errorf("rho=%v: eigenvector %d norm %v", rho, j, math.Sqrt(norm))
			}
		}
	}
}

// TestRankOneEigDeflation exercises the tiny-z and near-equal paths.
func TestRankOneEigDeflation(t *testing.T) {
	// Two exactly equal diagonal entries and one zero z component.
	d := []float64{1, 1, 2, 5}
	z := []float64{0.5, 0.5, 0, 0.25}
	rho := 1.0

	lam, s := rankOneEig(d, z, rho)

	for j := range 4 {
		v := make([]float64, 4)
		for i := range 4 {
			v[i] = s[i*4+j]
		}
		mv := applyRankOne(d, z, rho, v)
		for i := range 4 {
			if math.Abs(mv[i]-lam[j]*v[i]) > 1e-10 {
				t.Fatalf("deflated eigenpair %d residual at %d: %g", j, i, mv[i]-lam[j]*v[i])
			}
		}
	}
}

// TestEigDCMatchesQL compares divide-and-conquer eigenvalues against the QL
// iteration on random tridiagonals large enough to recurse several levels.
func TestEigDCMatchesQL(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for _, n := range []int{33, 64, 200, 301} {
		td := make([]float64, n)
		te := make([]float64, n-1)
		for i := range td {
			td[i] = rng.NormFloat64() * 2
		}
		for i := range te {
			te[i] = rng.NormFloat64()
		}

		want, err := qlValues(td, te)
		if err != nil {
			t.Fatal(err)
		}
		got, _, err := eigDC(td, te, nil, 0)
		if err != nil {
			t.Fatal(err)
		}

		scale := math.Max(math.Abs(want[0]), math.Abs(want[n-1]))
		if d := maxAbsDiff(got, want); d > 1e-9*scale {
			t.Errorf("n=%d: eigDC deviates from QL by %g", n, d)
		}
	}
}

// TestEigDCEigenvectors checks reconstruction T*q_j = lam_j*q_j for the
// accumulated vectors (they carry the merges, so they must be accurate).
func TestEigDCEigenvectors(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	n := 120

	td := make([]float64, n)
	te := make([]float64, n-1)
	for i := range td {
		td[i] = rng.NormFloat64() * 2
	}
	for i := range te {
		te[i] = rng.NormFloat64()
	}

	lam, q, err := eigDC(td, te, nil, 0)
	if err != nil {
		t.Fatal(err)
	}

	scale := math.Max(math.Abs(lam[0]), math.Abs(lam[n-1]))
	for j := 0; j < n; j += 7 {
		var res, norm float64
		for i := range n {
			// (T q)_i
			tv := td[i] * q[i*n+j]
			if i > 0 {
				tv += te[i-1] * q[(i-1)*n+j]
			}
			if i < n-1 {
				tv += te[i] * q[(i+1)*n+j]
			}
			r := tv - lam[j]*q[i*n+j]
			res += r * r
			norm += q[i*n+j] * q[i*n+j]
		}
		if math.Sqrt(res) > 1e-8*scale {
			t.Errorf("eigenpair %d residual %g", j, math.Sqrt(res))
		}
		if math.Abs(norm-1) > 1e-8 {
			t.Errorf("eigenvector %d norm deviates: %v", j, math.Sqrt(norm))
		}
	}
}
