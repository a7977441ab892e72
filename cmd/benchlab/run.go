// Copyright 2025 The benchlab Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ajroetker/benchlab/bench"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [suite.yaml]",
		Short: "Run every configured workload",
		Long: `Run the sort and svd workloads in one pass, using the given config
file (or benchlab.yaml / defaults when omitted).`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAll,
	}
}

func runAll(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		if err := cmd.Flags().Set("config", args[0]); err != nil {
			return err
		}
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var suites []*bench.Suite

	s, err := sortSuite(cfg)
	if err != nil {
		return err
	}
	suites = append(suites, s)

	s, err = svdSuite(cfg)
	if err != nil {
		return err
	}
	suites = append(suites, s)

	return reportSuites(cfg, os.Stdout, suites...)
}
