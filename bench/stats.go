// Copyright 2025 The benchlab Authors. SPDX-License-Identifier: Apache-2.0

package bench

import (
	"math"
	"time"

	"github.com/ajroetker/benchlab/sortx"
)

// Stats is the five-number summary (plus mean and standard deviation) of a
// result's samples.
type Stats struct {
	Min    time.Duration `yaml:"min"`
	LQ     time.Duration `yaml:"lq"`
	Median time.Duration `yaml:"median"`
	Mean   time.Duration `yaml:"mean"`
	UQ     time.Duration `yaml:"uq"`
	Max    time.Duration `yaml:"max"`
	StdDev time.Duration `yaml:"stddev"`
	N      int           `yaml:"n"`
}

// Stats summarizes the samples. Quartiles use linear interpolation on the
// sorted samples (type-7, the convention R's quantile defaults to).
func (r Result) Stats() Stats {
	n := len(r.Samples)
	if n == 0 {
		return Stats{}
	}

	sorted := make([]float64, n)
	for i, s := range r.Samples {
		sorted[i] = float64(s)
	}
	sortx.Sort(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(n)

	var sq float64
	for _, v := range sorted {
		d := v - mean
		sq += d * d
	}
	var sd float64
	if n > 1 {
		sd = math.Sqrt(sq / float64(n-1))
	}

	return Stats{
		Min:    time.Duration(sorted[0]),
		LQ:     time.Duration(quantile(sorted, 0.25)),
		Median: time.Duration(quantile(sorted, 0.5)),
		Mean:   time.Duration(mean),
		UQ:     time.Duration(quantile(sorted, 0.75)),
		Max:    time.Duration(sorted[n-1]),
		StdDev: time.Duration(sd),
		N:      n,
	}
}

// quantile interpolates the p-th quantile of sorted data.
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	h := p * float64(n-1)
	lo := int(math.Floor(h))
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// Ratio returns this result's median relative to other's median, the
// "how many times slower" number quoted when comparing methods.
func (r Result) Ratio(other Result) float64 {
	om := other.Stats().Median
	if om == 0 {
		return math.Inf(1)
	}
	return float64(r.Stats().Median) / float64(om)
}
