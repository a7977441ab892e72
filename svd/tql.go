// Copyright 2025 The benchlab Authors. SPDX-License-Identifier: Apache-2.0

package svd

import (
	"math"

	"github.com/pkg/errors"
)

// maxQLSweeps bounds the implicit QL iterations per eigenvalue before the
// solver reports non-convergence.
const maxQLSweeps = 50

// qlValues returns the eigenvalues, ascending, of the symmetric tridiagonal
// matrix with diagonal td and off-diagonal te. Inputs are not modified.
func qlValues(td, te []float64) ([]float64, error) {
	n := len(td)
	d := make([]float64, n)
	copy(d, td)
	e := make([]float64, n)
	copy(e, te) // e[n-1] stays 0

	if err := tql(d, e, nil, 0); err != nil {
		return nil, err
	}
	return d, nil
}

// tql runs the implicit-shift QL iteration (EISPACK tql2 lineage) on the
// tridiagonal (d, e), leaving ascending eigenvalues in d. e is destroyed.
// e must have length len(d) with e[len(d)-1] == 0 and e[i] the off-diagonal
// between rows i and i+1.
//
// If z is non-nil it must be a row-major len(d) x zStride matrix whose
// columns are rotated along with the iteration; pass the identity to
// accumulate eigenvectors (column j of z ends up as the eigenvector of
// d[j]).
func tql(d, e, z []float64, zStride int) error {
	n := len(d)
	if n <= 1 {
		return nil
	}

	eps := math.Pow(2, -52)
	var f, tst1 float64

	for l := 0; l < n; l++ {
		// Find a negligible off-diagonal to split at.
		tst1 = math.Max(tst1, math.Abs(d[l])+math.Abs(e[l]))
		m := l
		for m < n {
			if math.Abs(e[m]) <= eps*tst1 {
				break
			}
			m++
		}

		if m > l {
			for iter := 0; ; iter++ {
				if iter > maxQLSweeps {
					return errors.Errorf("ql iteration failed to converge at eigenvalue %d", l)
				}

				// Implicit shift from the top 2x2.
				g := d[l]
				p := (d[l+1] - g) / (2 * e[l])
				r := math.Hypot(p, 1)
				if p < 0 {
					r = -r
				}
				d[l] = e[l] / (p + r)
				d[l+1] = e[l] * (p + r)
				dl1 := d[l+1]
				h := g - d[l]
				for i := l + 2; i < n; i++ {
					d[i] -= h
				}
				f += h

				// QL sweep from m back to l.
				p = d[m]
				c, c2, c3 := 1.0, 1.0, 1.0
				el1 := e[l+1]
				var s, s2 float64
				for i := m - 1; i >= l; i-- {
					c3 = c2
					c2 = c
					s2 = s
					g = c * e[i]
					h = c * p
					r = math.Hypot(p, e[i])
					e[i+1] = s * r
					s = e[i] / r
					c = p / r
					p = c*d[i] - s*g
					d[i+1] = h + s*(c*g+s*d[i])

					if z != nil {
						for k := 0; k < n; k++ {
							row := z[k*zStride:]
							h = row[i+1]
							row[i+1] = s*row[i] + c*h
							row[i] = c*row[i] - s*h
						}
					}
				}
				p = -s * s2 * c3 * el1 * e[l] / dl1
				e[l] = s * p
				d[l] = c * p

				if math.Abs(e[l]) <= eps*tst1 {
					break
				}
			}
		}
		d[l] += f
		e[l] = 0
	}

	// Selection sort ascending, carrying columns of z.
	for i := 0; i < n-1; i++ {
		k := i
		p := d[i]
		for j := i + 1; j < n; j++ {
			if d[j] < p {
				k = j
				p = d[j]
			}
		}
		if k != i {
			d[k] = d[i]
			d[i] = p
			if z != nil {
				for r := 0; r < n; r++ {
					row := z[r*zStride:]
					row[i], row[k] = row[k], row[i]
				}
			}
		}
	}

	return nil
}
