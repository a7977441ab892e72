// Copyright 2025 The benchlab Authors. SPDX-License-Identifier: Apache-2.0

package sortx

import (
	"cmp"

	"github.com/ajroetker/benchlab/workerpool"
)

// parallelCutoff: partitions smaller than this sort sequentially instead of
// forking a pool task.
const parallelCutoff = 8192

// Parallel sorts data in-place using quicksort with partitions forked onto
// the worker pool. Tasks never block on each other: every task either
// forks children into the same group or finishes its range sequentially,
// and the single Wait happens here. If pool is nil a throwaway pool sized
// to GOMAXPROCS is used.
func Parallel[T cmp.Ordered](data []T, pool *workerpool.Pool) {
	if len(data) <= parallelCutoff {
		Sort(data)
		return
	}

	if pool == nil {
		pool = workerpool.New(0)
		defer pool.Close()
	}

	g := pool.Group()
	parallelImpl(data, g)
	g.Wait()
}

func parallelImpl[T cmp.Ordered](data []T, g *workerpool.Group) {
	for len(data) > parallelCutoff {
		pivot := pivotSampled(data)
		lt, gt := partition3Way(data, pivot)

		// Fork the smaller side, keep walking the larger one
		if lt < len(data)-gt {
			left := data[:lt]
			g.Go(func() { parallelImpl(left, g) })
			data = data[gt:]
		} else {
			right := data[gt:]
			g.Go(func() { parallelImpl(right, g) })
			data = data[:lt]
		}
	}
	Sort(data)
}
