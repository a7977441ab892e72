// Copyright 2025 The benchlab Authors. SPDX-License-Identifier: Apache-2.0

package svd

import (
	"math"
	"sort"
	"sync"

	"github.com/viterin/vek"

	"github.com/ajroetker/benchlab/workerpool"
)

const (
	// dcBaseSize: subproblems this small go straight to QL iteration.
	dcBaseSize = 32

	// dcParallelDepth / dcParallelMin bound the parallel fan-out of the
	// recursion: only the top levels of large problems fork a goroutine.
	dcParallelDepth = 3
	dcParallelMin   = 128

	// secularIters bounds the bisection for one secular root. 110 halvings
	// of a float64 interval reach the representable limit.
	secularIters = 110
)

// eigDC computes the full eigendecomposition of the symmetric tridiagonal
// matrix (td, te) by Cuppen's divide-and-conquer: split at the middle
// off-diagonal entry, solve the halves recursively, and merge them as a
// rank-one update whose eigenvalues are secular equation roots.
//
// Returns ascending eigenvalues and a row-major n x n matrix q whose
// column j is the eigenvector of lam[j]. The eigenvectors exist to carry
// the merge (the rank-one vector z is built from child eigenvector rows);
// callers that only need values discard q.
func eigDC(td, te []float64, pool *workerpool.Pool, depth int) (lam, q []float64, err error) {
	n := len(td)

	if n <= dcBaseSize {
		lam = make([]float64, n)
		copy(lam, td)
		e := make([]float64, n)
		copy(e, te)
		q = identity(n)
		if err := tql(lam, e, q, n); err != nil {
			return nil, nil, err
		}
		return lam, q, nil
	}

	k := n / 2
	n2 := n - k
	beta := te[k-1]

	// T = [T1 0; 0 T2] + beta*v*v^T with v carrying ones at rows k-1, k;
	// the split subtracts beta from both touched diagonal entries.
	d1 := make([]float64, k)
	copy(d1, td[:k])
	d1[k-1] -= beta
	d2 := make([]float64, n2)
	copy(d2, td[k:])
	d2[0] -= beta

	var lam1, q1, lam2, q2 []float64
	var err1, err2 error
	if pool != nil && depth < dcParallelDepth && n >= dcParallelMin {
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			lam1, q1, err1 = eigDC(d1, te[:k-1], pool, depth+1)
		}()
		lam2, q2, err2 = eigDC(d2, te[k:], pool, depth+1)
		wg.Wait()
	} else {
		lam1, q1, err1 = eigDC(d1, te[:k-1], pool, depth+1)
		lam2, q2, err2 = eigDC(d2, te[k:], pool, depth+1)
	}
	if err1 != nil {
		return nil, nil, err1
	}
	if err2 != nil {
		return nil, nil, err2
	}

	// In the children's eigenbasis the coupling becomes D + beta*z*z^T
	// with z = [last row of Q1; first row of Q2].
	d := make([]float64, n)
	copy(d[:k], lam1)
	copy(d[k:], lam2)
	z := make([]float64, n)
	copy(z[:k], q1[(k-1)*k:k*k])
	copy(z[k:], q2[:n2])

	lam, s := rankOneEig(d, z, beta)

	// Back to tridiagonal coordinates: Q = blkdiag(Q1, Q2) * S.
	q = assembleQ(q1, q2, s, k, n, pool)
	return lam, q, nil
}

// assembleQ multiplies the block-diagonal child basis into the merge
// vectors. s is transposed once so every output element is a contiguous
// dot product.
func assembleQ(q1, q2, s []float64, k, n int, pool *workerpool.Pool) []float64 {
	st := transposeSquare(s, n)
	q := make([]float64, n*n)
	n2 := n - k

	rowRange := func(start, end int) {
		for i := start; i < end; i++ {
			out := q[i*n : (i+1)*n]
			if i < k {
				row := q1[i*k : (i+1)*k]
				for c := range n {
					out[c] = vek.Dot(row, st[c*n:c*n+k])
				}
			} else {
				row := q2[(i-k)*n2 : (i-k+1)*n2]
				for c := range n {
					out[c] = vek.Dot(row, st[c*n+k:(c+1)*n])
				}
			}
		}
	}

	if pool != nil {
		pool.ParallelFor(n, rowRange)
	} else {
		rowRange(0, n)
	}
	return q
}

// givens records one deflation rotation applied to coordinates i, j.
type givens struct {
	i, j int
	c, s float64
}

// rankOneEig solves the symmetric eigenproblem D + rho*z*z^T for diagonal
// d. Returns ascending eigenvalues and the row-major eigenvector matrix s
// (column per eigenvalue) in the coordinates of d.
func rankOneEig(d, z []float64, rho float64) (lam, s []float64) {
	n := len(d)
	if n == 1 {
		return []float64{d[0] + rho*z[0]*z[0]}, []float64{1}
	}

	if rho >= 0 {
		return rankOnePos(d, z, rho)
	}

	// Negative coupling: solve on -M = (-D) + (-rho)zz^T and negate back,
	// reversing the ascending order.
	dn := make([]float64, n)
	for i, v := range d {
		dn[i] = -v
	}
	lamN, sN := rankOnePos(dn, z, -rho)

	lam = make([]float64, n)
	s = make([]float64, n*n)
	for j := range n {
		lam[j] = -lamN[n-1-j]
		for i := range n {
			s[i*n+j] = sN[i*n+(n-1-j)]
		}
	}
	return lam, s
}

// rankOnePos is rankOneEig for rho >= 0: sort, deflate, solve the secular
// equation per interval, rebuild vectors.
func rankOnePos(d, z []float64, rho float64) (lam, s []float64) {
	n := len(d)

	// Sort coordinates by diagonal value.
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sort.Slice(perm, func(a, b int) bool { return d[perm[a]] < d[perm[b]] })

	ds := make([]float64, n)
	zs := make([]float64, n)
	for p, idx := range perm {
		ds[p] = d[idx]
		zs[p] = z[idx]
	}

	zz := vek.Dot(zs, zs)
	scale := math.Max(math.Abs(ds[0]), math.Abs(ds[n-1]))
	scale = math.Max(scale, rho*zz)
	eps := math.Pow(2, -52)
	tol := 8 * float64(n) * eps * scale

	if scale == 0 {
		// Zero matrix: eigenvalues are the (zero) diagonal.
		return ds, permutationMatrix(perm, n)
	}

	// Deflation. Tiny z components contribute at most rho*z_i^2 to any
	// eigenvalue; near-equal diagonal pairs rotate one z component to zero
	// at an off-diagonal error below tol.
	deflated := make([]bool, n)
	var rots []givens
	for i := range n {
		if rho*zs[i]*zs[i] <= tol {
			deflated[i] = true
		}
	}
	prev := -1 // previous non-deflated index
	for i := range n {
		if deflated[i] {
			continue
		}
		if prev >= 0 && ds[i]-ds[prev] <= tol {
			r := math.Hypot(zs[prev], zs[i])
			c := zs[i] / r
			sn := zs[prev] / r
			zs[i] = r
			zs[prev] = 0
			di, dj := ds[prev], ds[i]
			ds[prev] = c*c*di + sn*sn*dj
			ds[i] = sn*sn*di + c*c*dj
			rots = append(rots, givens{i: prev, j: i, c: c, s: sn})
			deflated[prev] = true
		}
		prev = i
	}

	// Collect the secular subproblem.
	var secIdx []int
	for i := range n {
		if !deflated[i] {
			secIdx = append(secIdx, i)
		}
	}
	// Deflation moved diagonal entries by up to tol; restore strict
	// ascending order for the bracketing below.
	sort.Slice(secIdx, func(a, b int) bool { return ds[secIdx[a]] < ds[secIdx[b]] })

	kSec := len(secIdx)
	delta := make([]float64, kSec)
	zeta := make([]float64, kSec)
	for t, idx := range secIdx {
		delta[t] = ds[idx]
		zeta[t] = zs[idx]
	}
	if kSec > 0 {
		zz = vek.Dot(zeta, zeta)
	}

	// One column per eigenvalue, assembled in the deflated coordinates.
	type eigPair struct {
		val float64
		vec []float64
	}
	pairs := make([]eigPair, 0, n)

	for i := range n {
		if deflated[i] {
			vec := make([]float64, n)
			vec[i] = 1
			pairs = append(pairs, eigPair{val: ds[i], vec: vec})
		}
	}

	for r := range kSec {
		lo := delta[r]
		var hi float64
		if r < kSec-1 {
			hi = delta[r+1]
		} else {
			hi = delta[kSec-1] + rho*zz
		}

		root := secularRoot(delta, zeta, rho, lo, hi)
		vec := secularVector(delta, zeta, secIdx, root, n)
		pairs = append(pairs, eigPair{val: root, vec: vec})
	}

	sort.Slice(pairs, func(a, b int) bool { return pairs[a].val < pairs[b].val })

	lam = make([]float64, n)
	s = make([]float64, n*n)
	for j, p := range pairs {
		lam[j] = p.val
		for i := range n {
			s[i*n+j] = p.vec[i]
		}
	}

	// Undo the deflation rotations (apply their transposes in reverse).
	for ri := len(rots) - 1; ri >= 0; ri-- {
		g := rots[ri]
		ri1 := s[g.i*n : (g.i+1)*n]
		ri2 := s[g.j*n : (g.j+1)*n]
		for c := range n {
			a, b := ri1[c], ri2[c]
			ri1[c] = g.c*a + g.s*b
			ri2[c] = -g.s*a + g.c*b
		}
	}

	// Undo the sorting permutation on rows.
	sOut := make([]float64, n*n)
	for p, idx := range perm {
		copy(sOut[idx*n:(idx+1)*n], s[p*n:(p+1)*n])
	}

	return lam, sOut
}

// secularRoot finds the root of f(x) = 1 + rho*sum(zeta^2/(delta-x)) in
// (lo, hi) by bisection. f decreases through the pole at lo and increases
// to the pole at hi (or to f(hi) >= 0 for the open last interval), so the
// sign of f decides the half. Bisection is slower than the rational
// interpolation LAPACK uses but cannot diverge.
func secularRoot(delta, zeta []float64, rho, lo, hi float64) float64 {
	for range secularIters {
		mid := lo + (hi-lo)/2
		if mid <= lo || mid >= hi {
			break
		}
		if secularF(delta, zeta, rho, mid) < 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo + (hi-lo)/2
}

func secularF(delta, zeta []float64, rho, x float64) float64 {
	sum := 0.0
	for t, dt := range delta {
		sum += zeta[t] * zeta[t] / (dt - x)
	}
	return 1 + rho*sum
}

// secularVector builds the eigenvector for a secular root: components
// zeta_t/(delta_t - root) on the non-deflated coordinates, normalized.
// A root that collapsed onto a pole degenerates to the corresponding unit
// vector.
func secularVector(delta, zeta []float64, secIdx []int, root float64, n int) []float64 {
	vec := make([]float64, n)
	var norm float64
	nearest := 0
	nearestGap := math.Inf(1)

	for t, idx := range secIdx {
		gap := delta[t] - root
		if math.Abs(gap) < nearestGap {
			nearestGap = math.Abs(gap)
			nearest = idx
		}
		if gap == 0 {
			norm = math.Inf(1)
			break
		}
		v := zeta[t] / gap
		vec[idx] = v
		norm += v * v
	}

	if !(norm > 0) || math.IsInf(norm, 1) {
		for i := range vec {
			vec[i] = 0
		}
		vec[nearest] = 1
		return vec
	}

	inv := 1 / math.Sqrt(norm)
	for _, idx := range secIdx {
		vec[idx] *= inv
	}
	return vec
}

// identity returns the row-major n x n identity.
func identity(n int) []float64 {
	m := make([]float64, n*n)
	for i := range n {
		m[i*n+i] = 1
	}
	return m
}

// permutationMatrix returns row-major P with P[perm[p]][p] = 1, matching
// the row un-permutation used by rankOnePos.
func permutationMatrix(perm []int, n int) []float64 {
	m := make([]float64, n*n)
	for p, idx := range perm {
		m[idx*n+p] = 1
	}
	return m
}

// transposeSquare returns the row-major transpose of the n x n matrix a.
func transposeSquare(a []float64, n int) []float64 {
	t := make([]float64, n*n)
	for i := range n {
		for j := range n {
			t[j*n+i] = a[i*n+j]
		}
	}
	return t
}
