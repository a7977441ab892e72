// Copyright 2025 The benchlab Authors. SPDX-License-Identifier: Apache-2.0

package sortx

import "cmp"

// Stable sorts data in-place, preserving the relative order of equal keys.
// Bottom-up merge sort with insertion-sorted base runs; allocates one
// buffer of len(data).
func Stable[T cmp.Ordered](data []T) {
	n := len(data)
	if n <= insertionThreshold {
		Insertion(data)
		return
	}

	// Seed with sorted runs of insertionThreshold elements
	for lo := 0; lo < n; lo += insertionThreshold {
		hi := min(lo+insertionThreshold, n)
		Insertion(data[lo:hi])
	}

	buf := make([]T, n)
	src, dst := data, buf
	for width := insertionThreshold; width < n; width *= 2 {
		for lo := 0; lo < n; lo += 2 * width {
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			merge(src[lo:mid], src[mid:hi], dst[lo:hi])
		}
		src, dst = dst, src
	}

	if &src[0] != &data[0] {
		copy(data, src)
	}
}

// merge merges sorted runs a and b into out. Ties take from a, which is
// what makes the sort stable.
func merge[T cmp.Ordered](a, b, out []T) {
	i, j, k := 0, 0, 0
	for i < len(a) && j < len(b) {
		if b[j] < a[i] {
			out[k] = b[j]
			j++
		} else {
			out[k] = a[i]
			i++
		}
		k++
	}
	k += copy(out[k:], a[i:])
	copy(out[k:], b[j:])
}
