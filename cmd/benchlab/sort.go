// Copyright 2025 The benchlab Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"math/rand"
	"os"
	"slices"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ajroetker/benchlab/bench"
	"github.com/ajroetker/benchlab/config"
	"github.com/ajroetker/benchlab/sortx"
	"github.com/ajroetker/benchlab/workerpool"
)

func newSortCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Compare sorting variants against the standard library",
		Long: `Benchmark the sortx variants against slices.Sort on float64 inputs.

Variants: std, sort (introsort), stable, heap, radix, parallel.
Patterns: random, sorted, reversed, equal.`,
		RunE: runSort,
	}
	cmd.Flags().IntSlice("sizes", nil, "Input lengths (overrides config)")
	cmd.Flags().StringSlice("algos", nil, "Variants to benchmark (overrides config)")
	cmd.Flags().String("pattern", "", "Input pattern (overrides config)")
	return cmd
}

func runSort(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("sizes") {
		cfg.Sort.Sizes, _ = cmd.Flags().GetIntSlice("sizes")
	}
	if cmd.Flags().Changed("algos") {
		cfg.Sort.Algos, _ = cmd.Flags().GetStringSlice("algos")
	}
	if cmd.Flags().Changed("pattern") {
		cfg.Sort.Pattern, _ = cmd.Flags().GetString("pattern")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	suite, err := sortSuite(cfg)
	if err != nil {
		return err
	}
	return reportSuites(cfg, os.Stdout, suite)
}

// sortSuite benchmarks every configured variant at every configured size.
// Each sample re-copies the unsorted input before sorting, so the copy cost
// is part of every variant equally.
func sortSuite(cfg *config.Config) (*bench.Suite, error) {
	pool := workerpool.New(0)
	defer pool.Close()

	variants := map[string]func([]float64){
		"std":      slices.Sort[[]float64],
		"sort":     sortx.Sort[float64],
		"stable":   sortx.Stable[float64],
		"heap":     sortx.Heap[float64],
		"radix":    sortx.RadixSortFloat64,
		"parallel": func(d []float64) { sortx.Parallel(d, pool) },
	}
	for _, algo := range cfg.Sort.Algos {
		if _, ok := variants[algo]; !ok {
			return nil, errors.Errorf("unknown sort variant %q", algo)
		}
	}

	total := len(cfg.Sort.Algos) * len(cfg.Sort.Sizes) * cfg.Times
	suite := newSuite(cfg, "sort", total)

	rng := rand.New(rand.NewSource(cfg.Seed))
	for _, n := range cfg.Sort.Sizes {
		ref := sortInput(n, cfg.Sort.Pattern, rng)
		data := make([]float64, n)

		for _, algo := range cfg.Sort.Algos {
			fn := variants[algo]
			suite.Run(fmt.Sprintf("%s_%d", algo, n), func() {
				copy(data, ref)
				fn(data)
			})
		}
	}
	suite.Finish()

	return suite, nil
}

// sortInput generates n float64 values in the requested pattern.
func sortInput(n int, pattern string, rng *rand.Rand) []float64 {
	data := make([]float64, n)
	switch pattern {
	case "", "random":
		for i := range data {
			data[i] = rng.Float64() * 1000
		}
	case "sorted":
		for i := range data {
			data[i] = rng.Float64() * 1000
		}
		sortx.Sort(data)
	case "reversed":
		for i := range data {
			data[i] = rng.Float64() * 1000
		}
		sortx.Sort(data)
		slices.Reverse(data)
	case "equal":
		for i := range data {
			data[i] = 42
		}
	}
	return data
}
