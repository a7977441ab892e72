// Package sortx provides the sorting variants benchmarked by benchlab.
//
// The package mirrors the classic standard-library sorting family as
// separately callable, separately measurable algorithms:
//   - Sort: introsort (3-way quicksort, insertion sort for small runs,
//     heapsort fallback at the recursion depth limit)
//   - Stable: bottom-up merge sort preserving the order of equal keys
//   - Heap, Insertion, Quick3Way: the building blocks, exposed directly
//   - RadixSort / RadixSortFloat64 / RadixSortFloat32: LSD byte-radix
//   - Parallel: quicksort forking partitions onto a worker pool
//   - PartialSort, NthElement: partial selection variants
//
// All operations sort in-place into ascending order.
//
// # Performance
//
// The variants exist to be compared, not to pick a winner: radix sort is
// O(n) for fixed-width keys but cache-hostile, quicksort wins on random
// data, insertion sort wins under ~64 elements, and the stable variant
// pays an O(n) buffer for its ordering guarantee. The package benchmarks
// run every variant against slices.Sort across sizes and input patterns.
package sortx
