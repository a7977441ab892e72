// Copyright 2025 The benchlab Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/ajroetker/benchlab/bench"
	"github.com/ajroetker/benchlab/config"
	"github.com/ajroetker/benchlab/progress"
)

// newSuite builds a suite from the shared configuration, with a progress
// bar spanning totalSamples when one is wanted.
func newSuite(cfg *config.Config, name string, totalSamples int) *bench.Suite {
	s := bench.NewSuite(name,
		bench.Times(cfg.Times),
		bench.Warmup(cfg.Warmup),
	)
	if cfg.Progress {
		bar := progress.New(int64(totalSamples),
			progress.WithWriter(os.Stderr),
			progress.WithLabel(name),
			progress.WithRefreshInterval(100*time.Millisecond),
		)
		s.WithProgress(bar)
	}
	return s
}

// reportSuites prints each suite's table and, when cfg.Output is set,
// exports all raw samples to one YAML stream.
func reportSuites(cfg *config.Config, w io.Writer, suites ...*bench.Suite) error {
	for _, s := range suites {
		fmt.Fprintf(w, "\n%s (run %s, %d samples per benchmark)\n", s.Name, s.RunID, cfg.Times)
		if err := s.Table(w); err != nil {
			return err
		}
	}

	if cfg.Output == "" {
		return nil
	}

	f, err := os.Create(cfg.Output)
	if err != nil {
		return errors.Wrapf(err, "creating %s", cfg.Output)
	}
	defer f.Close()

	for i, s := range suites {
		if i > 0 {
			// Document separator between suites in the YAML stream.
			if _, err := io.WriteString(f, "---\n"); err != nil {
				return errors.Wrapf(err, "writing %s", cfg.Output)
			}
		}
		if err := s.WriteYAML(f); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "\nraw samples written to %s\n", cfg.Output)
	return nil
}
