// Copyright 2025 The benchlab Authors. SPDX-License-Identifier: Apache-2.0

// Package bench is a micro-benchmark harness with quartile reporting: run a
// function a fixed number of times, keep every individual timing, and
// summarize as min / lower quartile / median / mean / upper quartile / max.
// Keeping the raw samples (rather than one averaged number) is the point:
// the spread between quartiles is what separates a noisy result from a real
// difference between two implementations.
//
// Sub-microsecond functions are handled the way testing.B handles them: a
// sample's inner iteration count grows until one sample takes at least
// MinSampleTime, and the recorded duration is divided back out.
package bench

import (
	"time"

	"github.com/pkg/errors"
)

// Defaults mirror the harness's command-line defaults.
const (
	DefaultTimes         = 100
	DefaultWarmup        = 2
	DefaultMinSampleTime = time.Millisecond
)

// Options controls a Run.
type Options struct {
	// Times is the number of recorded samples.
	Times int
	// Warmup is the number of unrecorded runs before sampling starts.
	Warmup int
	// MinSampleTime is the smallest duration one sample may take; the
	// inner iteration count is calibrated upward until it is met.
	MinSampleTime time.Duration
	// OnSample, when set, is called after each recorded sample with the
	// number of samples collected so far. The Suite uses it to drive a
	// progress bar.
	OnSample func(done int)
}

// Option mutates Options.
type Option func(*Options)

// Times sets the number of recorded samples.
func Times(n int) Option { return func(o *Options) { o.Times = n } }

// Warmup sets the number of unrecorded warmup runs.
func Warmup(n int) Option { return func(o *Options) { o.Warmup = n } }

// MinSampleTime sets the calibration floor for one sample.
func MinSampleTime(d time.Duration) Option { return func(o *Options) { o.MinSampleTime = d } }

// OnSample registers a per-sample callback.
func OnSample(fn func(done int)) Option { return func(o *Options) { o.OnSample = fn } }

func (o *Options) applyDefaults() {
	if o.Times <= 0 {
		o.Times = DefaultTimes
	}
	if o.Warmup < 0 {
		o.Warmup = DefaultWarmup
	}
	if o.MinSampleTime <= 0 {
		o.MinSampleTime = DefaultMinSampleTime
	}
}

// Result holds the raw samples of one benchmark.
type Result struct {
	Name string `yaml:"name"`
	// Iterations is the calibrated inner loop count per sample.
	Iterations int `yaml:"iterations"`
	// Samples are per-call durations (sample time / Iterations).
	Samples []time.Duration `yaml:"samples"`
}

// Run benchmarks fn: calibrate the inner iteration count, warm up, then
// record opts.Times samples.
func Run(name string, fn func(), opts ...Option) Result {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	o.applyDefaults()

	iters := calibrate(fn, o.MinSampleTime)

	for range o.Warmup {
		sample(fn, iters)
	}

	samples := make([]time.Duration, 0, o.Times)
	for i := range o.Times {
		samples = append(samples, sample(fn, iters))
		if o.OnSample != nil {
			o.OnSample(i + 1)
		}
	}

	return Result{Name: name, Iterations: iters, Samples: samples}
}

// sample times iters calls of fn and returns the per-call duration.
func sample(fn func(), iters int) time.Duration {
	start := time.Now()
	for range iters {
		fn()
	}
	return time.Since(start) / time.Duration(iters)
}

// calibrate finds an inner iteration count whose total runtime reaches
// minTime, growing geometrically like testing.B.
func calibrate(fn func(), minTime time.Duration) int {
	iters := 1
	for {
		start := time.Now()
		for range iters {
			fn()
		}
		elapsed := time.Since(start)
		if elapsed >= minTime || iters >= 1<<20 {
			return iters
		}

		// Grow toward the target with headroom, at least doubling.
		next := iters * 2
		if elapsed > 0 {
			predicted := int(float64(iters) * 1.2 * float64(minTime) / float64(elapsed))
			if predicted > next {
				next = predicted
			}
		}
		iters = next
	}
}

// Validate checks a result for use in comparisons.
func (r Result) Validate() error {
	if len(r.Samples) == 0 {
		return errors.Errorf("bench: result %q has no samples", r.Name)
	}
	return nil
}
