// Copyright 2025 The benchlab Authors. SPDX-License-Identifier: Apache-2.0

package progress

import "time"

// etaAlpha is the smoothing factor of the rate EWMA. Closer to 1 reacts
// faster to rate changes, closer to 0 damps jitter.
const etaAlpha = 0.25

// minObservations before the EWMA is trusted; until then the estimator
// falls back to the whole-run average rate.
const minObservations = 4

// Estimator produces an estimated time remaining from timed progress
// observations. It keeps an exponentially weighted moving average of the
// unit completion rate; before enough observations arrive it falls back to
// the overall average, elapsed * (1-f)/f.
//
// Estimator is not safe for concurrent use; the Bar serializes calls.
type Estimator struct {
	start    time.Time
	lastTime time.Time
	lastUnit int64
	rate     float64 // units per second, EWMA
	samples  int
}

// NewEstimator creates an estimator anchored at the given start time.
func NewEstimator(start time.Time) *Estimator {
	return &Estimator{start: start, lastTime: start}
}

// Observe feeds a progress reading at time now.
func (e *Estimator) Observe(now time.Time, units int64) {
	dt := now.Sub(e.lastTime).Seconds()
	du := units - e.lastUnit
	if dt <= 0 || du <= 0 {
		return
	}

	inst := float64(du) / dt
	if e.samples == 0 {
		e.rate = inst
	} else {
		e.rate = etaAlpha*inst + (1-etaAlpha)*e.rate
	}
	e.samples++
	e.lastTime = now
	e.lastUnit = units
}

// Remaining estimates the time left to reach total from current at time
// now. Returns 0 when no estimate is possible (no progress yet, unknown
// total, or already complete).
func (e *Estimator) Remaining(now time.Time, current, total int64) time.Duration {
	if total <= 0 || current <= 0 || current >= total {
		return 0
	}

	left := float64(total - current)
	if e.samples >= minObservations && e.rate > 0 {
		return time.Duration(left / e.rate * float64(time.Second))
	}

	// Whole-run average: remaining = elapsed * (1-f)/f
	elapsed := now.Sub(e.start).Seconds()
	if elapsed <= 0 {
		return 0
	}
	avg := float64(current) / elapsed
	if avg <= 0 {
		return 0
	}
	return time.Duration(left / avg * float64(time.Second))
}
