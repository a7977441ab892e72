// Copyright 2025 The benchlab Authors. SPDX-License-Identifier: Apache-2.0

package svd

import (
	"math"

	"github.com/viterin/vek"

	"github.com/ajroetker/benchlab/mat"
)

// bidiagonalize reduces a (rows >= cols) to upper bidiagonal form with
// alternating left and right Householder reflections, LINPACK style:
// column k is reflected onto the diagonal, then row k onto the
// superdiagonal. a is overwritten. Returns the diagonal d (len n) and
// superdiagonal e (len n-1); signs are arbitrary, only the Gram matrix of
// (d, e) is consumed downstream.
func bidiagonalize(a *mat.Dense) (d, e []float64) {
	m, n := a.Dims()
	if m < n {
		panic("svd: bidiagonalize requires rows >= cols")
	}

	d = make([]float64, n)
	e = make([]float64, n-1)

	for k := range n {
		// Left reflection: zero column k below the diagonal.
		norm := colNorm(a, k, k, m)
		if norm != 0 {
			if a.At(k, k) < 0 {
				norm = -norm
			}
			for i := k; i < m; i++ {
				a.Set(i, k, a.At(i, k)/norm)
			}
			a.Set(k, k, a.At(k, k)+1)

			head := a.At(k, k)
			for j := k + 1; j < n; j++ {
				var s float64
				for i := k; i < m; i++ {
					s += a.At(i, k) * a.At(i, j)
				}
				s = -s / head
				for i := k; i < m; i++ {
					a.Set(i, j, a.At(i, j)+s*a.At(i, k))
				}
			}
		}
		d[k] = -norm

		if k >= n-1 {
			continue
		}

		// Right reflection: zero row k beyond the superdiagonal.
		row := a.Row(k)
		rnorm := scaledNorm(row[k+1:])
		if rnorm != 0 {
			if row[k+1] < 0 {
				rnorm = -rnorm
			}
			for j := k + 1; j < n; j++ {
				row[j] /= rnorm
			}
			row[k+1]++

			head := row[k+1]
			for i := k + 1; i < m; i++ {
				ri := a.Row(i)
				s := -vek.Dot(row[k+1:], ri[k+1:]) / head
				for j := k + 1; j < n; j++ {
					ri[j] += s * row[j]
				}
			}
		}
		e[k] = -rnorm
	}

	return d, e
}

// colNorm computes the 2-norm of a[lo:hi, j] with overflow-safe scaling.
func colNorm(a *mat.Dense, j, lo, hi int) float64 {
	var amax float64
	for i := lo; i < hi; i++ {
		if v := math.Abs(a.At(i, j)); v > amax {
			amax = v
		}
	}
	if amax == 0 {
		return 0
	}
	var sum float64
	for i := lo; i < hi; i++ {
		v := a.At(i, j) / amax
		sum += v * v
	}
	return amax * math.Sqrt(sum)
}

// scaledNorm is colNorm for a contiguous slice.
func scaledNorm(x []float64) float64 {
	var amax float64
	for _, v := range x {
		if a := math.Abs(v); a > amax {
			amax = a
		}
	}
	if amax == 0 {
		return 0
	}
	var sum float64
	for _, v := range x {
		t := v / amax
		sum += t * t
	}
	return amax * math.Sqrt(sum)
}
