// Copyright 2025 The benchlab Authors. SPDX-License-Identifier: Apache-2.0

package mat

import (
	"math"
	"math/rand"
	"testing"
)

func TestNewDensePanics(t *testing.T) {
	cases := []func(){
		func() { NewDense(0, 3, nil) },
		func() { NewDense(2, 2, make([]float64, 3)) },
		func() { NewCDense(2, -1, nil) },
	}
	for i, fn := range cases {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("case %d: expected panic", i)
				}
			}()
			fn()
		}()
	}
}

func TestAtSetRow(t *testing.T) {
	m := NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	if m.At(1, 2) != 6 {
		t.Errorf("At(1,2) = %v, want 6", m.At(1, 2))
	}
	m.Set(0, 1, 9)
	if m.Row(0)[1] != 9 {
		t.Errorf("Set did not land in row storage")
	}
}

func TestTranspose(t *testing.T) {
	m := NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	tr := m.T()
	r, c := tr.Dims()
	if r != 3 || c != 2 {
		t.Fatalf("T dims = %dx%d, want 3x2", r, c)
	}
	for i := range 2 {
		for j := range 3 {
			if m.At(i, j) != tr.At(j, i) {
				t.Errorf("T mismatch at (%d,%d)", i, j)
			}
		}
	}
}

func TestMulVec(t *testing.T) {
	// 2x3:
	//   [1 2 3]
	//   [4 5 6]
	m := NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	v := []float64{1, 0, 1}
	result := make([]float64, 2)
	m.MulVec(v, result)
	if result[0] != 4 || result[1] != 10 {
		t.Errorf("MulVec = %v, want [4 10]", result)
	}
}

func TestMul(t *testing.T) {
	a := NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	b := NewDense(3, 2, []float64{7, 8, 9, 10, 11, 12})
	got := a.Mul(b)

	want := [][]float64{{58, 64}, {139, 154}}
	for i := range 2 {
		for j := range 2 {
			if got.At(i, j) != want[i][j] {
				t.Errorf("Mul At(%d,%d) = %v, want %v", i, j, got.At(i, j), want[i][j])
			}
		}
	}
}

func TestMulDimensionMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on inner dimension mismatch")
		}
	}()
	NewDense(2, 3, nil).Mul(NewDense(2, 2, nil))
}

func TestCloneIsDeep(t *testing.T) {
	m := NewDense(1, 2, []float64{1, 2})
	c := m.Clone()
	c.Set(0, 0, 99)
	if m.At(0, 0) != 1 {
		t.Error("Clone shares storage with original")
	}
}

func TestNorm(t *testing.T) {
	m := NewDense(2, 2, []float64{1, 2, 2, 4})
	if math.Abs(m.Norm()-5) > 1e-12 {
		t.Errorf("Norm = %v, want 5", m.Norm())
	}
}

func TestRandnShapes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	m := Randn(4, 7, rng)
	r, c := m.Dims()
	if r != 4 || c != 7 {
		t.Fatalf("Randn dims = %dx%d", r, c)
	}
	var nonzero bool
	for _, v := range m.RawData() {
		if v != 0 {
			nonzero = true
		}
	}
	if !nonzero {
		t.Error("Randn produced all zeros")
	}
}

// TestEmbedSpectrumStructure checks the defining identity of the real
// embedding on a hand-computable case: for m = [[i]], the embedding is the
// rotation [[0 -1],[1 0]] with singular values {1, 1}.
func TestEmbedSpectrumStructure(t *testing.T) {
	cm := NewCDense(1, 1, []complex128{1i})
	e := cm.Embed()
	r, c := e.Dims()
	if r != 2 || c != 2 {
		t.Fatalf("Embed dims = %dx%d, want 2x2", r, c)
	}
	want := [][]float64{{0, -1}, {1, 0}}
	for i := range 2 {
		for j := range 2 {
			if e.At(i, j) != want[i][j] {
				t.Errorf("Embed At(%d,%d) = %v, want %v", i, j, e.At(i, j), want[i][j])
			}
		}
	}
}

func TestEmbedBlocks(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	cm := RandnC(3, 2, rng)
	e := cm.Embed()

	for i := range 3 {
		for j := range 2 {
			v := cm.At(i, j)
			if e.At(i, j) != real(v) || e.At(i+3, j+2) != real(v) {
				t.Errorf("real blocks mismatch at (%d,%d)", i, j)
			}
			if e.At(i, j+2) != -imag(v) || e.At(i+3, j) != imag(v) {
				t.Errorf("imaginary blocks mismatch at (%d,%d)", i, j)
			}
		}
	}
}
