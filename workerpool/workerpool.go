// Copyright 2025 The benchlab Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent, reusable worker pool for parallel
// computation. Unlike per-call goroutine spawning, a Pool is created once and
// reused across many operations, eliminating allocation and spawn overhead.
//
// benchlab uses a shared pool for the parallel sorting variants and for the
// block matrix products inside the divide-and-conquer eigensolver, where
// per-call goroutine spawning would dominate the cost of small subproblems.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	pool.ParallelFor(n, func(start, end int) {
//	    processChunk(start, end)
//	})
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool that can be reused across many parallel
// operations. Workers are spawned once at creation and reused.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

// workItem represents a single parallel operation to execute.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a new worker pool with the specified number of workers.
// Workers are spawned immediately and persist until Close is called.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		// Buffer enough for all workers to have pending work
		workC: make(chan workItem, numWorkers*2),
	}

	for range numWorkers {
		go p.worker()
	}

	return p
}

// worker is the main loop for each persistent worker goroutine.
func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the worker pool. All pending work will complete.
// Calling Close multiple times is safe.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// ParallelFor executes fn for each index in [0, n) using the worker pool.
// Each worker processes a contiguous range of indices.
// Blocks until all work completes.
//
// fn receives (start, end) indices where work should process [start, end).
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	if p.closed.Load() {
		// Fallback to sequential if pool is closed
		fn(0, n)
		return
	}

	workers := min(p.numWorkers, n)
	if workers == 1 {
		fn(0, n)
		return
	}

	// Chunk size rounds up so all items are covered
	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := range workers {
		start := i * chunkSize
		end := min(start+chunkSize, n)
		if start >= n {
			wg.Done()
			continue
		}

		p.workC <- workItem{
			fn: func() {
				fn(start, end)
			},
			barrier: &wg,
		}
	}

	wg.Wait()
}

// Group collects independent tasks submitted with Go and waits for them with
// Wait. It is the fork/join primitive behind the parallel quicksort, where the
// task tree is not a flat index range.
//
// A Group must not be reused after Wait returns.
type Group struct {
	pool *Pool
	wg   sync.WaitGroup
}

// Group returns a new task group backed by this pool.
func (p *Pool) Group() *Group {
	return &Group{pool: p}
}

// Go submits fn to the pool. If the pool is closed, or every worker is busy
// and the submit would block, fn runs on the calling goroutine instead. The
// inline fallback keeps recursive task trees deadlock-free: a task that forks
// children from inside a worker can always make progress.
func (g *Group) Go(fn func()) {
	if g.pool.closed.Load() {
		fn()
		return
	}

	g.wg.Add(1)
	select {
	case g.pool.workC <- workItem{fn: fn, barrier: &g.wg}:
	default:
		fn()
		g.wg.Done()
	}
}

// Wait blocks until every task submitted with Go has completed.
func (g *Group) Wait() {
	g.wg.Wait()
}
