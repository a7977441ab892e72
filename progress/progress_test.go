// Copyright 2025 The benchlab Authors. SPDX-License-Identifier: Apache-2.0

package progress

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycle(t *testing.T) {
	var buf bytes.Buffer
	bar := New(10, WithWriter(&buf), WithRefreshInterval(0))

	assert.Equal(t, StateIdle, bar.State())

	require.NoError(t, bar.Start())
	assert.Equal(t, StateStarted, bar.State())

	bar.Add(3)
	assert.Equal(t, StateUpdated, bar.State())
	assert.Equal(t, int64(3), bar.Current())

	bar.Finish()
	assert.Equal(t, StateFinalized, bar.State())
	assert.NoError(t, bar.Err())
}

func TestUpdateBeforeStartIsRecordedMisuse(t *testing.T) {
	bar := New(10, WithWriter(io.Discard))

	bar.Add(1)
	assert.Equal(t, int64(0), bar.Current(), "idle bar must ignore updates")
	assert.Error(t, bar.Err())
	assert.Equal(t, StateIdle, bar.State())
}

func TestDoubleStart(t *testing.T) {
	bar := New(10, WithWriter(io.Discard))
	require.NoError(t, bar.Start())
	assert.Error(t, bar.Start())
}

func TestFinishIdempotent(t *testing.T) {
	var buf bytes.Buffer
	bar := New(4, WithWriter(&buf), WithRefreshInterval(0))
	require.NoError(t, bar.Start())
	bar.Set(4)
	bar.Finish()
	out := buf.String()
	bar.Finish()
	assert.Equal(t, out, buf.String(), "second Finish must not render")
}

func TestFinishWithoutStart(t *testing.T) {
	bar := New(4, WithWriter(io.Discard))
	bar.Finish()
	assert.Equal(t, StateFinalized, bar.State())
	assert.Error(t, bar.Err())
}

func TestCounterClampsAtTotal(t *testing.T) {
	bar := New(5, WithWriter(io.Discard))
	require.NoError(t, bar.Start())
	bar.Add(100)
	assert.Equal(t, int64(5), bar.Current())
	bar.Set(99)
	assert.Equal(t, int64(5), bar.Current())
}

func TestConcurrentAdds(t *testing.T) {
	const workers = 8
	const perWorker = 1000

	bar := New(workers*perWorker, WithWriter(io.Discard))
	require.NoError(t, bar.Start())

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				bar.Increment()
			}
		}()
	}
	wg.Wait()
	bar.Finish()

	assert.Equal(t, int64(workers*perWorker), bar.Current())
	assert.NoError(t, bar.Err())
}

// captureRenderer records every snapshot it is handed. The Bar serializes
// renderer calls under its mutex, so plain slices suffice.
type captureRenderer struct {
	frames []Snapshot
	finals []Snapshot
}

func (r *captureRenderer) Render(w io.Writer, s Snapshot) { r.frames = append(r.frames, s) }
func (r *captureRenderer) Done(w io.Writer, s Snapshot)   { r.finals = append(r.finals, s) }

func TestSnapshotNeverExceedsTotal(t *testing.T) {
	r := &captureRenderer{}
	bar := New(5, WithWriter(io.Discard), WithRenderer(r), WithRefreshInterval(0))
	require.NoError(t, bar.Start())

	// Every Add overshoots the total again, so renders keep racing into
	// the window between the atomic add and the clamping store.
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 500 {
				bar.Add(3)
			}
		}()
	}
	wg.Wait()
	bar.Finish()

	for _, s := range append(r.frames, r.finals...) {
		require.LessOrEqual(t, s.Current, s.Total)
		require.LessOrEqual(t, s.Frac, 1.0)
	}
	assert.Equal(t, int64(5), bar.Current())
}

func TestRenderThrottling(t *testing.T) {
	r := &captureRenderer{}
	bar := New(100, WithWriter(io.Discard), WithRenderer(r), WithRefreshInterval(time.Hour))
	require.NoError(t, bar.Start())

	for range 50 {
		bar.Increment()
	}
	bar.Finish()

	assert.Len(t, r.frames, 1, "inside the interval only the first frame renders")
	assert.Len(t, r.finals, 1, "the final frame always renders")
}

func TestRenderResumesAfterInterval(t *testing.T) {
	r := &captureRenderer{}
	bar := New(100, WithWriter(io.Discard), WithRenderer(r), WithRefreshInterval(30*time.Millisecond))
	require.NoError(t, bar.Start())

	bar.Increment() // throttled
	time.Sleep(50 * time.Millisecond)
	bar.Increment() // interval elapsed, renders
	bar.Finish()

	assert.GreaterOrEqual(t, len(r.frames), 2)
	assert.Len(t, r.finals, 1)
}

func TestWithWidthAppliesRegardlessOfOptionOrder(t *testing.T) {
	var buf bytes.Buffer
	bar := New(4,
		WithWidth(10),
		WithRenderer(&BarRenderer{}),
		WithWriter(&buf),
		WithRefreshInterval(0),
	)
	require.NoError(t, bar.Start())
	bar.Finish()

	assert.Contains(t, buf.String(), "["+strings.Repeat(" ", 10)+"]")
}

func TestBarRendererFrame(t *testing.T) {
	r := &BarRenderer{Width: 10}
	s := Snapshot{
		Label:   "sort",
		Current: 500,
		Total:   1000,
		Frac:    0.5,
		Elapsed: 12 * time.Second,
		ETA:     12 * time.Second,
		State:   StateUpdated,
	}

	var buf bytes.Buffer
	r.Render(&buf, s)
	out := buf.String()

	assert.Contains(t, out, "sort [")
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "500/1 k")
	assert.Contains(t, out, "00:12")
	assert.Contains(t, out, "ETA 00:12")
}

func TestBarRendererDoneEndsLine(t *testing.T) {
	r := &BarRenderer{Width: 4}
	var buf bytes.Buffer
	r.Done(&buf, Snapshot{Frac: 1, Current: 4, Total: 4, State: StateFinalized})
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
	assert.Contains(t, buf.String(), "[====]")
}

func TestTickRenderer(t *testing.T) {
	var buf bytes.Buffer
	bar := New(100, WithWriter(&buf), WithRenderer(&TickRenderer{}), WithRefreshInterval(0))
	require.NoError(t, bar.Start())
	for range 100 {
		bar.Increment()
	}
	bar.Finish()

	out := buf.String()
	assert.Contains(t, out, "0%   10   20")
	assert.Equal(t, tickCount, strings.Count(out, "*"))
	assert.True(t, strings.HasSuffix(out, "]\n"))
}

func TestEstimatorFallsBackToAverage(t *testing.T) {
	start := time.Now()
	e := NewEstimator(start)

	// One observation is below minObservations, so Remaining uses the
	// whole-run average: 25 units in 1s -> 75 units take 3s.
	now := start.Add(time.Second)
	e.Observe(now, 25)
	got := e.Remaining(now, 25, 100)
	assert.InDelta(t, (3 * time.Second).Seconds(), got.Seconds(), 0.01)
}

func TestEstimatorEWMA(t *testing.T) {
	start := time.Now()
	e := NewEstimator(start)

	// Steady 10 units/sec over 6 observations
	now := start
	for i := int64(1); i <= 6; i++ {
		now = start.Add(time.Duration(i) * time.Second)
		e.Observe(now, i*10)
	}
	got := e.Remaining(now, 60, 100)
	assert.InDelta(t, (4 * time.Second).Seconds(), got.Seconds(), 0.05)
}

func TestEstimatorEdgeCases(t *testing.T) {
	start := time.Now()
	e := NewEstimator(start)
	now := start.Add(time.Second)

	assert.Zero(t, e.Remaining(now, 0, 100), "no progress yet")
	assert.Zero(t, e.Remaining(now, 100, 100), "already complete")
	assert.Zero(t, e.Remaining(now, 5, 0), "unknown total")
}

func TestTrackReader(t *testing.T) {
	payload := strings.Repeat("x", 1<<16)
	bar := New(int64(len(payload)), WithWriter(io.Discard))
	require.NoError(t, bar.Start())

	r := TrackReader(bar, strings.NewReader(payload))
	n, err := io.Copy(io.Discard, r)
	require.NoError(t, err)
	bar.Finish()

	assert.Equal(t, int64(len(payload)), n)
	assert.Equal(t, int64(len(payload)), bar.Current())
}

func TestTrackWriter(t *testing.T) {
	bar := New(6, WithWriter(io.Discard))
	require.NoError(t, bar.Start())

	var sink bytes.Buffer
	w := TrackWriter(bar, &sink)
	_, err := w.Write([]byte("abcdef"))
	require.NoError(t, err)

	assert.Equal(t, int64(6), bar.Current())
	assert.Equal(t, "abcdef", sink.String())
}
