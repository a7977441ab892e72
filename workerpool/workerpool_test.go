// Copyright 2025 The benchlab Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"runtime"
	"sync/atomic"
	"testing"
)

func TestNew(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	if pool.NumWorkers() != 4 {
		t.Errorf("NumWorkers() = %d, want 4", pool.NumWorkers())
	}
}

func TestNewDefault(t *testing.T) {
	pool := New(0)
	defer pool.Close()

	if pool.NumWorkers() != runtime.GOMAXPROCS(0) {
		t.Errorf("NumWorkers() = %d, want %d", pool.NumWorkers(), runtime.GOMAXPROCS(0))
	}
}

func TestParallelFor(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 100
	results := make([]int, n)

	pool.ParallelFor(n, func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
	})

	for i := 0; i < n; i++ {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func TestParallelForSmallN(t *testing.T) {
	pool := New(8)
	defer pool.Close()

	// Test with n smaller than workers
	n := 3
	var count atomic.Int32

	pool.ParallelFor(n, func(start, end int) {
		count.Add(int32(end - start))
	})

	if count.Load() != int32(n) {
		t.Errorf("count = %d, want %d", count.Load(), n)
	}
}

func TestParallelForZeroN(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var called bool
	pool.ParallelFor(0, func(start, end int) {
		called = true
	})

	if called {
		t.Error("ParallelFor with n=0 should not call fn")
	}
}

func TestCloseMultipleTimes(t *testing.T) {
	pool := New(4)
	pool.Close()
	pool.Close() // Should not panic
}

func TestClosedPoolFallback(t *testing.T) {
	pool := New(4)
	pool.Close()

	n := 100
	results := make([]int, n)

	// Should still work (sequential fallback)
	pool.ParallelFor(n, func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
	})

	for i := 0; i < n; i++ {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func TestGroup(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	g := pool.Group()
	var count atomic.Int32
	for range 50 {
		g.Go(func() {
			count.Add(1)
		})
	}
	g.Wait()

	if count.Load() != 50 {
		t.Errorf("count = %d, want 50", count.Load())
	}
}

func TestGroupNestedFork(t *testing.T) {
	pool := New(2)
	defer pool.Close()

	// Tasks that fork further tasks from inside workers must not deadlock:
	// submits that would block run inline instead.
	g := pool.Group()
	var count atomic.Int32
	var fork func(depth int)
	fork = func(depth int) {
		count.Add(1)
		if depth == 0 {
			return
		}
		g.Go(func() { fork(depth - 1) })
		g.Go(func() { fork(depth - 1) })
	}
	fork(6)
	g.Wait()

	// A full binary recursion of depth 6 visits 2^7 - 1 nodes.
	if count.Load() != 127 {
		t.Errorf("count = %d, want 127", count.Load())
	}
}

func TestGroupClosedPoolRunsInline(t *testing.T) {
	pool := New(4)
	pool.Close()

	g := pool.Group()
	var count atomic.Int32
	for range 10 {
		g.Go(func() {
			count.Add(1)
		})
	}
	g.Wait()

	if count.Load() != 10 {
		t.Errorf("count = %d, want 10", count.Load())
	}
}

func BenchmarkParallelFor(b *testing.B) {
	pool := New(0) // Use GOMAXPROCS
	defer pool.Close()

	n := 1000

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.ParallelFor(n, func(start, end int) {
			// Simulate work
			for j := start; j < end; j++ {
				_ = j * j
			}
		})
	}
}

func BenchmarkGroup(b *testing.B) {
	pool := New(0)
	defer pool.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g := pool.Group()
		for range 16 {
			g.Go(func() {
				for j := 0; j < 100; j++ {
					_ = j * j
				}
			})
		}
		g.Wait()
	}
}
