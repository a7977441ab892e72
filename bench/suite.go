// Copyright 2025 The benchlab Authors. SPDX-License-Identifier: Apache-2.0

package bench

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ajroetker/benchlab/progress"
)

// Suite is a named collection of benchmark results sharing one
// configuration, identified by a run ID so exported result files can be
// traced back to a run.
type Suite struct {
	Name    string    `yaml:"name"`
	RunID   uuid.UUID `yaml:"run_id"`
	Started time.Time `yaml:"started"`
	Results []Result  `yaml:"results"`

	opts []Option
	bar  *progress.Bar
}

// NewSuite creates a suite whose benchmarks run with the given options.
func NewSuite(name string, opts ...Option) *Suite {
	return &Suite{
		Name:    name,
		RunID:   uuid.New(),
		Started: time.Now(),
		opts:    opts,
	}
}

// WithProgress attaches a progress bar spanning the expected total number
// of samples across all benchmarks in the suite. The suite starts and
// finishes the bar itself.
func (s *Suite) WithProgress(bar *progress.Bar) *Suite {
	s.bar = bar
	return s
}

// Run benchmarks fn under the suite's options and records the result.
func (s *Suite) Run(name string, fn func()) Result {
	opts := s.opts
	if s.bar != nil {
		if s.bar.State() == progress.StateIdle {
			_ = s.bar.Start()
		}
		opts = append(opts[:len(opts):len(opts)], OnSample(func(int) {
			s.bar.Increment()
		}))
	}

	r := Run(name, fn, opts...)
	s.Results = append(s.Results, r)
	return r
}

// Finish finalizes the suite's progress bar, if any.
func (s *Suite) Finish() {
	if s.bar != nil {
		s.bar.Finish()
	}
}

// Table writes an aligned summary of all results, with a unit column
// chosen from the fastest median and a relative column against it.
//
//	name              min      lq  median    mean      uq     max  relative
//	dcSVD           101ms   103ms   105ms   106ms   108ms   121ms      1.00
//	baseSVD         398ms   402ms   411ms   414ms   425ms   466ms      3.91
func (s *Suite) Table(w io.Writer) error {
	if len(s.Results) == 0 {
		return errors.New("bench: empty suite")
	}

	fastest := s.Results[0]
	for _, r := range s.Results[1:] {
		if r.Stats().Median < fastest.Stats().Median {
			fastest = r
		}
	}

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "name\tmin\tlq\tmedian\tmean\tuq\tmax\trelative\t\n")
	for _, r := range s.Results {
		st := r.Stats()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%.2f\t\n",
			r.Name,
			fmtDuration(st.Min), fmtDuration(st.LQ), fmtDuration(st.Median),
			fmtDuration(st.Mean), fmtDuration(st.UQ), fmtDuration(st.Max),
			r.Ratio(fastest))
	}
	return errors.Wrap(tw.Flush(), "bench: flushing table")
}

// WriteYAML exports the suite, raw samples included, for offline analysis.
func (s *Suite) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(s); err != nil {
		return errors.Wrap(err, "bench: encoding suite")
	}
	return nil
}

// fmtDuration rounds a duration to three significant-ish digits so table
// columns stay narrow.
func fmtDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return d.Round(10 * time.Millisecond).String()
	case d >= time.Millisecond:
		return d.Round(10 * time.Microsecond).String()
	case d >= time.Microsecond:
		return d.Round(10 * time.Nanosecond).String()
	default:
		return d.String()
	}
}
