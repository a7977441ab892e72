// Copyright 2025 The benchlab Authors. SPDX-License-Identifier: Apache-2.0

// Package mat provides the dense matrix types used by the benchlab
// decomposition benchmarks: Dense (float64) and CDense (complex128), both
// row-major. Float64 inner loops go through the vek SIMD kernels.
//
// The package is deliberately small: storage, products, norms and random
// fills, just enough to feed the svd package and the CLI demos.
package mat

import (
	"math/rand"

	"github.com/viterin/vek"
)

// Dense is a row-major float64 matrix.
type Dense struct {
	rows, cols int
	data       []float64
}

// NewDense creates a rows x cols matrix. If data is nil a zero matrix is
// allocated; otherwise data is used directly (not copied) and must have
// length rows*cols.
func NewDense(rows, cols int, data []float64) *Dense {
	if rows <= 0 || cols <= 0 {
		panic("mat: non-positive dimension")
	}
	if data == nil {
		data = make([]float64, rows*cols)
	}
	if len(data) != rows*cols {
		panic("mat: data length does not match dimensions")
	}
	return &Dense{rows: rows, cols: cols, data: data}
}

// Randn creates a rows x cols matrix with standard normal entries.
func Randn(rows, cols int, rng *rand.Rand) *Dense {
	m := NewDense(rows, cols, nil)
	for i := range m.data {
		m.data[i] = rng.NormFloat64()
	}
	return m
}

// Dims returns the row and column counts.
func (m *Dense) Dims() (rows, cols int) { return m.rows, m.cols }

// At returns the element at row i, column j.
func (m *Dense) At(i, j int) float64 { return m.data[i*m.cols+j] }

// Set assigns the element at row i, column j.
func (m *Dense) Set(i, j int, v float64) { m.data[i*m.cols+j] = v }

// Row returns row i as a slice aliasing the matrix storage.
func (m *Dense) Row(i int) []float64 { return m.data[i*m.cols : (i+1)*m.cols] }

// RawData returns the backing slice.
func (m *Dense) RawData() []float64 { return m.data }

// Clone returns a deep copy.
func (m *Dense) Clone() *Dense {
	data := make([]float64, len(m.data))
	copy(data, m.data)
	return &Dense{rows: m.rows, cols: m.cols, data: data}
}

// T returns a new transposed matrix.
func (m *Dense) T() *Dense {
	t := NewDense(m.cols, m.rows, nil)
	for i := range m.rows {
		row := m.Row(i)
		for j, v := range row {
			t.data[j*t.cols+i] = v
		}
	}
	return t
}

// MulVec computes m * v into result. Panics if len(v) < cols or
// len(result) < rows. Each output element is a vek dot product of one row
// with v.
func (m *Dense) MulVec(v, result []float64) {
	if len(v) < m.cols {
		panic("mat: vector slice too small")
	}
	if len(result) < m.rows {
		panic("mat: result slice too small")
	}

	for i := range m.rows {
		result[i] = vek.Dot(m.Row(i), v[:m.cols])
	}
}

// Mul computes m * b as a new matrix. Panics on inner dimension mismatch.
// b is transposed once so every output element is a contiguous row-row dot
// product.
func (m *Dense) Mul(b *Dense) *Dense {
	if m.cols != b.rows {
		panic("mat: inner dimensions do not match")
	}

	bt := b.T()
	out := NewDense(m.rows, b.cols, nil)
	for i := range m.rows {
		row := m.Row(i)
		outRow := out.Row(i)
		for j := range b.cols {
			outRow[j] = vek.Dot(row, bt.Row(j))
		}
	}
	return out
}

// Norm returns the Frobenius norm.
func (m *Dense) Norm() float64 {
	return vek.Norm(m.data)
}
