// Copyright 2025 The benchlab Authors. SPDX-License-Identifier: Apache-2.0

package sortx

import "math"

// radixCutoff: below this size the bucket bookkeeping costs more than
// comparison sorting; fall back to Sort.
const radixCutoff = 256

// RadixSort sorts signed integers in-place with LSD byte-radix sort:
// one counting pass per byte, sign-corrected on the final pass.
// O(n) for fixed-width keys at the price of an n-element scratch buffer.
func RadixSort[T int32 | int64](data []T) {
	n := len(data)
	if n <= 1 {
		return
	}
	if n < radixCutoff {
		Sort(data)
		return
	}

	var zero T
	bytes := 4
	if _, ok := any(zero).(int64); ok {
		bytes = 8
	}

	src := data
	dst := make([]T, n)
	for pass := 0; pass < bytes; pass++ {
		shift := pass * 8
		if pass == bytes-1 {
			radixPassSigned(src, dst, shift)
		} else {
			radixPass(src, dst, shift)
		}
		src, dst = dst, src
	}

	if &src[0] != &data[0] {
		copy(data, src)
	}
}

// radixPass performs one LSD pass: histogram the shift-th byte, prefix-sum
// into bucket offsets, scatter.
func radixPass[T int32 | int64](src, dst []T, shift int) {
	var count [256]int

	for _, v := range src {
		count[int((v>>shift)&0xFF)]++
	}

	offset := 0
	for b := 0; b < 256; b++ {
		c := count[b]
		count[b] = offset
		offset += c
	}

	for _, v := range src {
		digit := int((v >> shift) & 0xFF)
		dst[count[digit]] = v
		count[digit]++
	}
}

// radixPassSigned performs the final pass for signed integers. The top byte
// carries the sign bit, so buckets 128-255 (negative values) must precede
// buckets 0-127.
func radixPassSigned[T int32 | int64](src, dst []T, shift int) {
	var count [256]int

	for _, v := range src {
		count[int((v>>shift)&0xFF)]++
	}

	// Negative buckets first, then non-negative
	offset := 0
	for b := 128; b < 256; b++ {
		c := count[b]
		count[b] = offset
		offset += c
	}
	for b := 0; b < 128; b++ {
		c := count[b]
		count[b] = offset
		offset += c
	}

	for _, v := range src {
		digit := int((v >> shift) & 0xFF)
		dst[count[digit]] = v
		count[digit]++
	}
}

// RadixSortFloat64 sorts float64 values in-place by mapping them to an
// order-preserving unsigned key (flip the sign bit for positives, all bits
// for negatives), radix sorting the keys, and mapping back. NaNs are moved
// to the end of the slice before sorting and stay there.
func RadixSortFloat64(data []float64) {
	n := partitionNaNs64(data)
	keys := make([]uint64, n)
	for i, v := range data[:n] {
		keys[i] = float64ToSortable(v)
	}
	radixSortUint64(keys)
	for i, k := range keys {
		data[i] = sortableToFloat64(k)
	}
}

// RadixSortFloat32 is RadixSortFloat64 for float32 values.
func RadixSortFloat32(data []float32) {
	n := partitionNaNs32(data)
	keys := make([]uint32, n)
	for i, v := range data[:n] {
		keys[i] = float32ToSortable(v)
	}
	radixSortUint32(keys)
	for i, k := range keys {
		data[i] = sortableToFloat32(k)
	}
}

// partitionNaNs64 moves NaNs to the tail and returns the count of non-NaN
// elements at the front.
func partitionNaNs64(data []float64) int {
	n := len(data)
	i := 0
	for i < n {
		if math.IsNaN(data[i]) {
			n--
			data[i], data[n] = data[n], data[i]
		} else {
			i++
		}
	}
	return n
}

func partitionNaNs32(data []float32) int {
	n := len(data)
	i := 0
	for i < n {
		if data[i] != data[i] {
			n--
			data[i], data[n] = data[n], data[i]
		} else {
			i++
		}
	}
	return n
}

// float64ToSortable maps a float to an unsigned key with the same ordering.
// Positive floats: flip sign bit. Negative floats: flip all bits.
func float64ToSortable(v float64) uint64 {
	bits := math.Float64bits(v)
	if bits&(1<<63) != 0 {
		return ^bits
	}
	return bits | (1 << 63)
}

func sortableToFloat64(k uint64) float64 {
	if k&(1<<63) != 0 {
		return math.Float64frombits(k &^ (1 << 63))
	}
	return math.Float64frombits(^k)
}

func float32ToSortable(v float32) uint32 {
	bits := math.Float32bits(v)
	if bits&(1<<31) != 0 {
		return ^bits
	}
	return bits | (1 << 31)
}

func sortableToFloat32(k uint32) float32 {
	if k&(1<<31) != 0 {
		return math.Float32frombits(k &^ (1 << 31))
	}
	return math.Float32frombits(^k)
}

func radixSortUint64(keys []uint64) {
	n := len(keys)
	if n <= 1 {
		return
	}

	src := keys
	dst := make([]uint64, n)
	for pass := 0; pass < 8; pass++ {
		shift := pass * 8
		var count [256]int
		for _, k := range src {
			count[int((k>>shift)&0xFF)]++
		}
		offset := 0
		for b := 0; b < 256; b++ {
			c := count[b]
			count[b] = offset
			offset += c
		}
		for _, k := range src {
			digit := int((k >> shift) & 0xFF)
			dst[count[digit]] = k
			count[digit]++
		}
		src, dst = dst, src
	}
	// 8 passes: src ends back at keys
}

func radixSortUint32(keys []uint32) {
	n := len(keys)
	if n <= 1 {
		return
	}

	src := keys
	dst := make([]uint32, n)
	for pass := 0; pass < 4; pass++ {
		shift := pass * 8
		var count [256]int
		for _, k := range src {
			count[int((k>>shift)&0xFF)]++
		}
		offset := 0
		for b := 0; b < 256; b++ {
			c := count[b]
			count[b] = offset
			offset += c
		}
		for _, k := range src {
			digit := int((k >> shift) & 0xFF)
			dst[count[digit]] = k
			count[digit]++
		}
		src, dst = dst, src
	}
	// 4 passes: src ends back at keys
}
