// Copyright 2025 The benchlab Authors. SPDX-License-Identifier: Apache-2.0

package sortx

import "cmp"

// Thresholds for switching sorting strategies.
const (
	// insertionThreshold: use insertion sort for runs this size or smaller.
	insertionThreshold = 24

	// pivotSampleSpan: minimum size for median-of-nine pivot sampling.
	pivotSampleSpan = 128
)

// Sort sorts data in-place using introsort: 3-way quicksort with a sampled
// pivot, insertion sort for small runs, and heapsort once the recursion
// depth limit is hit, guaranteeing O(n log n) worst case.
func Sort[T cmp.Ordered](data []T) {
	n := len(data)
	if n <= 1 {
		return
	}

	// Max recursion depth: 2 * floor(log2(n))
	maxDepth := 0
	for tmp := n; tmp > 0; tmp >>= 1 {
		maxDepth++
	}
	maxDepth *= 2

	sortImpl(data, maxDepth)
}

func sortImpl[T cmp.Ordered](data []T, depthLimit int) {
	n := len(data)
	if n <= 1 {
		return
	}

	if n <= insertionThreshold {
		Insertion(data)
		return
	}

	if depthLimit == 0 {
		Heap(data)
		return
	}

	pivot := pivotSampled(data)
	lt, gt := partition3Way(data, pivot)

	if lt > 0 {
		sortImpl(data[:lt], depthLimit-1)
	}
	if gt < n {
		sortImpl(data[gt:], depthLimit-1)
	}
}

// Quick3Way sorts data in-place with plain 3-way quicksort: no insertion
// sort cutoff and no heapsort fallback. Exposed for benchmarking against
// Sort; prefer Sort for real use.
func Quick3Way[T cmp.Ordered](data []T) {
	n := len(data)
	if n <= 1 {
		return
	}

	pivot := pivotSampled(data)
	lt, gt := partition3Way(data, pivot)

	if lt > 0 {
		Quick3Way(data[:lt])
	}
	if gt < n {
		Quick3Way(data[gt:])
	}
}

// partition3Way partitions data around pivot into <, ==, > regions and
// returns (lt, gt) such that data[:lt] < pivot, data[lt:gt] == pivot,
// and data[gt:] > pivot. Dutch national flag scheme.
func partition3Way[T cmp.Ordered](data []T, pivot T) (lt, gt int) {
	lt, gt = 0, len(data)
	i := 0
	for i < gt {
		switch {
		case data[i] < pivot:
			data[i], data[lt] = data[lt], data[i]
			lt++
			i++
		case data[i] > pivot:
			gt--
			data[i], data[gt] = data[gt], data[i]
		default:
			i++
		}
	}
	return lt, gt
}

// pivotSampled selects a pivot by median sampling: median-of-three for
// small inputs, median-of-three-medians for larger ones.
func pivotSampled[T cmp.Ordered](data []T) T {
	n := len(data)
	if n < pivotSampleSpan {
		return median3(data[0], data[n/2], data[n-1])
	}

	step := n / 9
	a := median3(data[0], data[step], data[2*step])
	b := median3(data[3*step], data[4*step], data[5*step])
	c := median3(data[6*step], data[7*step], data[8*step])
	return median3(a, b, c)
}

func median3[T cmp.Ordered](a, b, c T) T {
	if a > b {
		a, b = b, a
	}
	if b > c {
		b = c
	}
	if a > b {
		b = a
	}
	return b
}

// Insertion sorts data in-place with insertion sort. O(n^2) but the fastest
// variant under a few dozen elements.
func Insertion[T cmp.Ordered](data []T) {
	for i := 1; i < len(data); i++ {
		key := data[i]
		j := i - 1
		for j >= 0 && data[j] > key {
			data[j+1] = data[j]
			j--
		}
		data[j+1] = key
	}
}

// Heap sorts data in-place with heapsort. O(n log n) worst case, no extra
// memory, poor cache behavior.
func Heap[T cmp.Ordered](data []T) {
	n := len(data)
	if n <= 1 {
		return
	}

	for i := n/2 - 1; i >= 0; i-- {
		siftDown(data, i, n)
	}

	for i := n - 1; i > 0; i-- {
		data[0], data[i] = data[i], data[0]
		siftDown(data, 0, i)
	}
}

func siftDown[T cmp.Ordered](data []T, i, n int) {
	for {
		largest := i
		left := 2*i + 1
		right := 2*i + 2

		if left < n && data[left] > data[largest] {
			largest = left
		}
		if right < n && data[right] > data[largest] {
			largest = right
		}

		if largest == i {
			break
		}

		data[i], data[largest] = data[largest], data[i]
		i = largest
	}
}

// IsSorted reports whether data is in ascending order.
func IsSorted[T cmp.Ordered](data []T) bool {
	for i := 1; i < len(data); i++ {
		if data[i] < data[i-1] {
			return false
		}
	}
	return true
}
