package svd

import (
	"math/rand"
	"testing"

	"github.com/ajroetker/benchlab/mat"
	"github.com/ajroetker/benchlab/workerpool"
)

func benchmarkValues(b *testing.B, rows, cols int, method Method, opts ...Option) {
	rng := rand.New(rand.NewSource(7))
	m := mat.Randn(rows, cols, rng)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Values(m, method, opts...); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkValues_Standard_100x100(b *testing.B) { benchmarkValues(b, 100, 100, MethodStandard) }
func BenchmarkValues_Standard_300x300(b *testing.B) { benchmarkValues(b, 300, 300, MethodStandard) }
func BenchmarkValues_Standard_500x200(b *testing.B) { benchmarkValues(b, 500, 200, MethodStandard) }

func BenchmarkValues_DC_100x100(b *testing.B) { benchmarkValues(b, 100, 100, MethodDC) }
func BenchmarkValues_DC_300x300(b *testing.B) { benchmarkValues(b, 300, 300, MethodDC) }
func BenchmarkValues_DC_500x200(b *testing.B) { benchmarkValues(b, 500, 200, MethodDC) }

func BenchmarkValues_DCPool_300x300(b *testing.B) {
	pool := workerpool.New(0)
	defer pool.Close()
	benchmarkValues(b, 300, 300, MethodDC, WithPool(pool))
}

func BenchmarkValues_Jacobi_100x100(b *testing.B) { benchmarkValues(b, 100, 100, MethodJacobi) }
func BenchmarkValues_Jacobi_300x300(b *testing.B) { benchmarkValues(b, 300, 300, MethodJacobi) }

func benchmarkValuesC(b *testing.B, rows, cols int, method Method) {
	rng := rand.New(rand.NewSource(7))
	m := mat.RandnC(rows, cols, rng)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ValuesC(m, method); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkValuesC_Standard_100x100(b *testing.B) { benchmarkValuesC(b, 100, 100, MethodStandard) }
func BenchmarkValuesC_DC_100x100(b *testing.B)       { benchmarkValuesC(b, 100, 100, MethodDC) }
