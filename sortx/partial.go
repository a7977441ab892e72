// Copyright 2025 The benchlab Authors. SPDX-License-Identifier: Apache-2.0

package sortx

import "cmp"

// PartialSort rearranges data so that data[:k] holds the k smallest
// elements in ascending order. Elements in data[k:] are in unspecified
// order, all >= data[k-1]. Heap-select: maintain a max-heap of the k
// smallest seen so far, then heapsort it.
func PartialSort[T cmp.Ordered](data []T, k int) {
	n := len(data)
	if k <= 0 || n <= 1 {
		return
	}
	if k >= n {
		Sort(data)
		return
	}

	// Max-heap over data[:k]
	for i := k/2 - 1; i >= 0; i-- {
		siftDown(data[:k], i, k)
	}

	// Every later element smaller than the heap root displaces it
	for i := k; i < n; i++ {
		if data[i] < data[0] {
			data[0], data[i] = data[i], data[0]
			siftDown(data[:k], 0, k)
		}
	}

	// Extract the heap in ascending order
	for i := k - 1; i > 0; i-- {
		data[0], data[i] = data[i], data[0]
		siftDown(data[:k], 0, i)
	}
}

// NthElement rearranges data such that the element at index k is the
// element that would be at that position if data were sorted. Elements
// before k are <= data[k], elements after are >= data[k]. Quickselect
// with the same sampled pivot and depth guard as Sort.
func NthElement[T cmp.Ordered](data []T, k int) {
	n := len(data)
	if k < 0 || k >= n {
		return
	}

	maxDepth := 0
	for tmp := n; tmp > 0; tmp >>= 1 {
		maxDepth++
	}
	maxDepth *= 2

	nthElementImpl(data, k, maxDepth)
}

func nthElementImpl[T cmp.Ordered](data []T, k, depthLimit int) {
	n := len(data)
	if n <= 1 {
		return
	}

	if depthLimit == 0 || n <= insertionThreshold {
		Sort(data)
		return
	}

	pivot := pivotSampled(data)
	lt, gt := partition3Way(data, pivot)

	if k < lt {
		nthElementImpl(data[:lt], k, depthLimit-1)
	} else if k >= gt {
		nthElementImpl(data[gt:], k-gt, depthLimit-1)
	}
	// lt <= k < gt: k landed in the equal partition
}
