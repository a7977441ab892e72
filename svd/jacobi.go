// Copyright 2025 The benchlab Authors. SPDX-License-Identifier: Apache-2.0

package svd

import (
	"math"

	"github.com/pkg/errors"
	"github.com/viterin/vek"

	"github.com/ajroetker/benchlab/mat"
)

// maxJacobiSweeps bounds the column sweeps. One-sided Jacobi converges in
// well under 30 sweeps for any practical matrix.
const maxJacobiSweeps = 30

// jacobiValues computes singular values by one-sided Jacobi: rotate column
// pairs until all columns are mutually orthogonal, then the singular
// values are the column norms. Works directly on the input without
// bidiagonalization, which is what makes it the accuracy reference: no
// Gram matrix, no squared condition number.
func jacobiValues(a *mat.Dense) ([]float64, error) {
	m, n := a.Dims()
	if m < n {
		panic("svd: jacobiValues requires rows >= cols")
	}

	// Column-major copy: rotations and dot products touch whole columns.
	cols := make([][]float64, n)
	for j := range n {
		cols[j] = make([]float64, m)
		for i := range m {
			cols[j][i] = a.At(i, j)
		}
	}

	eps := math.Pow(2, -52)
	for sweep := 0; ; sweep++ {
		if sweep >= maxJacobiSweeps {
			return nil, errors.New("jacobi sweeps failed to converge")
		}

		rotated := false
		for p := 0; p < n-1; p++ {
			for q := p + 1; q < n; q++ {
				alpha := vek.Dot(cols[p], cols[p])
				beta := vek.Dot(cols[q], cols[q])
				gamma := vek.Dot(cols[p], cols[q])

				if math.Abs(gamma) <= eps*math.Sqrt(alpha*beta) || gamma == 0 {
					continue
				}
				rotated = true

				// Rotation angle that orthogonalizes the pair.
				zeta := (beta - alpha) / (2 * gamma)
				t := math.Copysign(1, zeta) / (math.Abs(zeta) + math.Sqrt(1+zeta*zeta))
				c := 1 / math.Sqrt(1+t*t)
				s := c * t

				cp, cq := cols[p], cols[q]
				for i := range m {
					vp := cp[i]
					cp[i] = c*vp - s*cq[i]
					cq[i] = s*vp + c*cq[i]
				}
			}
		}

		if !rotated {
			break
		}
	}

	vals := make([]float64, n)
	for j := range n {
		vals[j] = vek.Norm(cols[j])
	}

	// Descending, matching the other methods.
	insertionDesc(vals)
	return vals, nil
}

// insertionDesc sorts a short slice descending.
func insertionDesc(x []float64) {
	for i := 1; i < len(x); i++ {
		v := x[i]
		j := i - 1
		for j >= 0 && x[j] < v {
			x[j+1] = x[j]
			j--
		}
		x[j+1] = v
	}
}
