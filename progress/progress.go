// Copyright 2025 The benchlab Authors. SPDX-License-Identifier: Apache-2.0

// Package progress provides a customizable console progress bar with a
// timer-based ETA estimator.
//
// A Bar walks a fixed lifecycle: Idle until Start, Started, Updated once
// progress arrives, Finalized after Finish. Updates are concurrency-safe
// atomic adds; rendering is throttled to the configured refresh interval.
//
// Rendering is the customization point: anything implementing Renderer can
// replace the default bar. Two renderers ship with the package, BarRenderer
// (a classic bracketed bar with counts, elapsed time and ETA) and
// TickRenderer (a percent scale printed once, with ticks emitted as
// progress passes each mark).
//
//	bar := progress.New(int64(len(items)), progress.WithLabel("ingest"))
//	bar.Start()
//	for _, it := range items {
//	    process(it)
//	    bar.Increment()
//	}
//	bar.Finish()
package progress

import (
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

// State is the lifecycle position of a Bar.
type State int32

const (
	// StateIdle: constructed, not yet started. Updates are ignored.
	StateIdle State = iota
	// StateStarted: Start was called; the clock is running.
	StateStarted
	// StateUpdated: at least one update arrived since Start.
	StateUpdated
	// StateFinalized: Finish was called. The bar is inert.
	StateFinalized
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarted:
		return "started"
	case StateUpdated:
		return "updated"
	case StateFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable view of a Bar handed to renderers.
type Snapshot struct {
	Label   string
	Current int64
	Total   int64
	Frac    float64 // Current/Total clamped to [0, 1]
	Elapsed time.Duration
	ETA     time.Duration // estimated time remaining; 0 when unknown or done
	State   State
}

// Renderer draws bar snapshots. Render is called on throttled updates,
// Done exactly once when the bar finalizes.
type Renderer interface {
	Render(w io.Writer, s Snapshot)
	Done(w io.Writer, s Snapshot)
}

// Bar is a concurrency-safe progress bar. The counter is advanced with
// atomic adds; terminal writes happen on the goroutine that triggered the
// refresh, at most once per refresh interval.
type Bar struct {
	total   int64
	label   string
	refresh time.Duration
	w       io.Writer
	r       Renderer
	width   int
	withETA bool

	current    atomic.Int64
	state      atomic.Int32
	lastRender atomic.Int64 // UnixNano of the last render

	mu      sync.Mutex // serializes writes to w and est
	est     *Estimator
	start   time.Time
	misuse  error
	doneOne sync.Once
}

// Option configures a Bar.
type Option func(*Bar)

// WithWriter sets the output writer. Default os.Stderr.
func WithWriter(w io.Writer) Option { return func(b *Bar) { b.w = w } }

// WithLabel sets a prefix label shown by the built-in renderers.
func WithLabel(label string) Option { return func(b *Bar) { b.label = label } }

// WithRenderer replaces the default BarRenderer.
func WithRenderer(r Renderer) Option { return func(b *Bar) { b.r = r } }

// WithRefreshInterval sets the minimum interval between renders.
// Default 100ms. The first and final frames always render.
func WithRefreshInterval(d time.Duration) Option { return func(b *Bar) { b.refresh = d } }

// WithWidth sets the bar width in cells. It applies to whichever
// *BarRenderer the bar ends up with, regardless of option order; other
// renderers ignore it.
func WithWidth(width int) Option {
	return func(b *Bar) { b.width = width }
}

// WithoutETA disables the ETA estimator; snapshots carry ETA 0.
func WithoutETA() Option { return func(b *Bar) { b.withETA = false } }

// New creates an idle Bar expecting total units of work.
func New(total int64, opts ...Option) *Bar {
	b := &Bar{
		total:   total,
		refresh: 100 * time.Millisecond,
		w:       os.Stderr,
		r:       &BarRenderer{Width: 40},
		withETA: true,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.width > 0 {
		if br, ok := b.r.(*BarRenderer); ok {
			br.Width = b.width
		}
	}
	return b
}

// Start moves the bar from Idle to Started and starts the clock.
// Starting a non-idle bar records and returns an error.
func (b *Bar) Start() error {
	if !b.state.CompareAndSwap(int32(StateIdle), int32(StateStarted)) {
		err := errors.Errorf("progress: Start on %s bar", b.State())
		b.recordMisuse(err)
		return err
	}

	b.mu.Lock()
	b.start = time.Now()
	if b.withETA {
		b.est = NewEstimator(b.start)
	}
	b.mu.Unlock()

	b.render(false)
	return nil
}

// Add advances the bar by n units. Calling Add on an idle or finalized bar
// is a no-op that records a misuse error retrievable via Err.
func (b *Bar) Add(n int64) {
	st := b.State()
	if st == StateIdle || st == StateFinalized {
		b.recordMisuse(errors.Errorf("progress: update on %s bar", st))
		return
	}

	cur := b.current.Add(n)
	if cur > b.total && b.total > 0 {
		b.current.Store(b.total)
	}
	b.state.CompareAndSwap(int32(StateStarted), int32(StateUpdated))
	b.render(false)
}

// Increment advances the bar by one unit.
func (b *Bar) Increment() { b.Add(1) }

// Set moves the counter to an absolute position.
func (b *Bar) Set(n int64) {
	st := b.State()
	if st == StateIdle || st == StateFinalized {
		b.recordMisuse(errors.Errorf("progress: update on %s bar", st))
		return
	}

	if n > b.total && b.total > 0 {
		n = b.total
	}
	b.current.Store(n)
	b.state.CompareAndSwap(int32(StateStarted), int32(StateUpdated))
	b.render(false)
}

// Finish finalizes the bar and forces a last render. Idempotent.
// Finishing a bar that was never started records a misuse error.
func (b *Bar) Finish() {
	st := b.State()
	if st == StateIdle {
		b.recordMisuse(errors.New("progress: Finish on idle bar"))
		b.state.Store(int32(StateFinalized))
		return
	}
	if st == StateFinalized {
		return
	}

	b.state.Store(int32(StateFinalized))
	b.doneOne.Do(func() {
		b.render(true)
	})
}

// Current returns the counter value.
func (b *Bar) Current() int64 { return b.current.Load() }

// Total returns the configured amount of work.
func (b *Bar) Total() int64 { return b.total }

// State returns the lifecycle position.
func (b *Bar) State() State { return State(b.state.Load()) }

// Err returns the first lifecycle misuse observed (update before Start,
// double Start, Finish without Start), or nil.
func (b *Bar) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.misuse
}

func (b *Bar) recordMisuse(err error) {
	b.mu.Lock()
	if b.misuse == nil {
		b.misuse = err
	}
	b.mu.Unlock()
}

// render draws a frame if the refresh interval elapsed, or always when
// final. The CAS on lastRender elects a single drawing goroutine.
func (b *Bar) render(final bool) {
	now := time.Now()
	if !final {
		last := b.lastRender.Load()
		if now.UnixNano()-last < int64(b.refresh) {
			return
		}
		if !b.lastRender.CompareAndSwap(last, now.UnixNano()) {
			return
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	s := b.snapshotLocked(now)
	if final {
		b.r.Done(b.w, s)
		return
	}
	if b.est != nil {
		b.est.Observe(now, s.Current)
	}
	b.r.Render(b.w, s)
}

func (b *Bar) snapshotLocked(now time.Time) Snapshot {
	cur := b.current.Load()
	// Add clamps the counter after the atomic add; a render racing into
	// that window can load the overshot value, so the snapshot clamps too.
	if b.total > 0 && cur > b.total {
		cur = b.total
	}
	s := Snapshot{
		Label:   b.label,
		Current: cur,
		Total:   b.total,
		State:   State(b.state.Load()),
	}
	if !b.start.IsZero() {
		s.Elapsed = now.Sub(b.start)
	}
	if b.total > 0 {
		s.Frac = float64(cur) / float64(b.total)
		if s.Frac > 1 {
			s.Frac = 1
		}
	}
	if b.est != nil {
		s.ETA = b.est.Remaining(now, cur, b.total)
	}
	return s
}
