// Copyright 2025 The benchlab Authors. SPDX-License-Identifier: Apache-2.0

package mat

import "math/rand"

// CDense is a row-major complex128 matrix.
type CDense struct {
	rows, cols int
	data       []complex128
}

// NewCDense creates a rows x cols complex matrix. Semantics match NewDense.
func NewCDense(rows, cols int, data []complex128) *CDense {
	if rows <= 0 || cols <= 0 {
		panic("mat: non-positive dimension")
	}
	if data == nil {
		data = make([]complex128, rows*cols)
	}
	if len(data) != rows*cols {
		panic("mat: data length does not match dimensions")
	}
	return &CDense{rows: rows, cols: cols, data: data}
}

// RandnC creates a rows x cols matrix with independent standard normal
// real and imaginary parts.
func RandnC(rows, cols int, rng *rand.Rand) *CDense {
	m := NewCDense(rows, cols, nil)
	for i := range m.data {
		m.data[i] = complex(rng.NormFloat64(), rng.NormFloat64())
	}
	return m
}

// Dims returns the row and column counts.
func (m *CDense) Dims() (rows, cols int) { return m.rows, m.cols }

// At returns the element at row i, column j.
func (m *CDense) At(i, j int) complex128 { return m.data[i*m.cols+j] }

// Set assigns the element at row i, column j.
func (m *CDense) Set(i, j int, v complex128) { m.data[i*m.cols+j] = v }

// Embed returns the real 2m x 2n embedding [R -C; C R] of m = R + iC.
// The embedding has the same singular values as m, each with multiplicity
// doubled, which is how the svd package computes complex singular values.
func (m *CDense) Embed() *Dense {
	out := NewDense(2*m.rows, 2*m.cols, nil)
	for i := range m.rows {
		for j := range m.cols {
			v := m.data[i*m.cols+j]
			re, im := real(v), imag(v)
			out.Set(i, j, re)
			out.Set(i, j+m.cols, -im)
			out.Set(i+m.rows, j, im)
			out.Set(i+m.rows, j+m.cols, re)
		}
	}
	return out
}
