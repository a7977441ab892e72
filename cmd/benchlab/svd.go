// Copyright 2025 The benchlab Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ajroetker/benchlab/bench"
	"github.com/ajroetker/benchlab/config"
	"github.com/ajroetker/benchlab/mat"
	"github.com/ajroetker/benchlab/svd"
	"github.com/ajroetker/benchlab/workerpool"
)

func newSVDCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "svd",
		Short: "Compare singular value decomposition methods",
		Long: `Benchmark singular value computation on a random dense matrix.

Methods: standard (implicit-shift QL), dc (divide-and-conquer), jacobi.
With --complex the complex-valued variants run as well.`,
		RunE: runSVD,
	}
	cmd.Flags().Int("rows", 0, "Matrix rows (overrides config)")
	cmd.Flags().Int("cols", 0, "Matrix columns (overrides config)")
	cmd.Flags().StringSlice("methods", nil, "Methods to benchmark (overrides config)")
	cmd.Flags().Bool("complex", false, "Also benchmark complex-valued matrices")
	return cmd
}

func runSVD(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("rows") {
		cfg.SVD.Rows, _ = cmd.Flags().GetInt("rows")
	}
	if cmd.Flags().Changed("cols") {
		cfg.SVD.Cols, _ = cmd.Flags().GetInt("cols")
	}
	if cmd.Flags().Changed("methods") {
		cfg.SVD.Methods, _ = cmd.Flags().GetStringSlice("methods")
	}
	if cmd.Flags().Changed("complex") {
		cfg.SVD.Complex, _ = cmd.Flags().GetBool("complex")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	suite, err := svdSuite(cfg)
	if err != nil {
		return err
	}
	return reportSuites(cfg, os.Stdout, suite)
}

// svdSuite benchmarks every configured method on one random matrix,
// complex variants included when configured.
func svdSuite(cfg *config.Config) (*bench.Suite, error) {
	methods := make([]svd.Method, len(cfg.SVD.Methods))
	for i, name := range cfg.SVD.Methods {
		m, err := svd.ParseMethod(name)
		if err != nil {
			return nil, err
		}
		methods[i] = m
	}

	pool := workerpool.New(0)
	defer pool.Close()

	rng := rand.New(rand.NewSource(cfg.Seed))
	a := mat.Randn(cfg.SVD.Rows, cfg.SVD.Cols, rng)
	var ac *mat.CDense
	if cfg.SVD.Complex {
		ac = mat.RandnC(cfg.SVD.Rows, cfg.SVD.Cols, rng)
	}

	benchCount := len(methods)
	if cfg.SVD.Complex {
		benchCount *= 2
	}
	suite := newSuite(cfg, "svd", benchCount*cfg.Times)

	shape := fmt.Sprintf("%dx%d", cfg.SVD.Rows, cfg.SVD.Cols)
	for _, m := range methods {
		// Fail on convergence problems before committing to a full
		// sample run.
		if _, err := svd.Values(a, m, svd.WithPool(pool)); err != nil {
			return nil, errors.Wrapf(err, "svd %s %s", m, shape)
		}
		suite.Run(fmt.Sprintf("%s_%s", m, shape), func() {
			_, _ = svd.Values(a, m, svd.WithPool(pool))
		})
	}
	if cfg.SVD.Complex {
		for _, m := range methods {
			if _, err := svd.ValuesC(ac, m, svd.WithPool(pool)); err != nil {
				return nil, errors.Wrapf(err, "svd %s complex %s", m, shape)
			}
			suite.Run(fmt.Sprintf("%s_c_%s", m, shape), func() {
				_, _ = svd.ValuesC(ac, m, svd.WithPool(pool))
			})
		}
	}
	suite.Finish()

	return suite, nil
}
