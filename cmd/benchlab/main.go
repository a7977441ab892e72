// Copyright 2025 The benchlab Authors. SPDX-License-Identifier: Apache-2.0

// Package main provides the benchlab CLI entry point.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/viterin/vek"
	"golang.org/x/sys/cpu"

	"github.com/ajroetker/benchlab/config"
)

var (
	version   = "0.1.0"
	commit    = "dev"
	buildTime = "unknown" // Set via ldflags: -X main.buildTime=$(date +%Y%m%d-%H%M%S)
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "benchlab",
		Short: "benchlab - micro-benchmark lab for sorting and SVD kernels",
		Long: `benchlab runs repeatable micro-benchmark comparisons and reports
quartile summaries (min/lq/median/mean/uq/max), the way R's microbenchmark
package does, instead of a single averaged number.

Workloads:
  • sort  - sortx variants (introsort, stable, heap, radix, parallel) vs stdlib
  • svd   - singular values: standard (QL) vs divide-and-conquer vs Jacobi`,
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (default: benchlab.yaml if present)")
	rootCmd.PersistentFlags().Int("times", 0, "Samples per benchmark (overrides config)")
	rootCmd.PersistentFlags().Int("warmup", -1, "Warmup runs per benchmark (overrides config)")
	rootCmd.PersistentFlags().Int64("seed", 0, "Data generator seed (overrides config)")
	rootCmd.PersistentFlags().Bool("progress", true, "Show a progress bar")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Write raw results as YAML to this path")

	// Version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("benchlab v%s (%s) built %s\n", version, commit, buildTime)
		},
	})

	// Env command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "env",
		Short: "Report the execution environment",
		Long:  "Report CPU features and runtime settings that affect benchmark results",
		Run: func(cmd *cobra.Command, args []string) {
			printEnv()
		},
	})

	rootCmd.AddCommand(newSortCmd())
	rootCmd.AddCommand(newSVDCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newDemoCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig builds the effective configuration for a command:
// defaults < config file < BENCHLAB_* environment < flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.FindConfigFile()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("times") {
		cfg.Times, _ = cmd.Flags().GetInt("times")
	}
	if cmd.Flags().Changed("warmup") {
		cfg.Warmup, _ = cmd.Flags().GetInt("warmup")
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed, _ = cmd.Flags().GetInt64("seed")
	}
	if cmd.Flags().Changed("progress") {
		cfg.Progress, _ = cmd.Flags().GetBool("progress")
	}
	if cmd.Flags().Changed("output") {
		cfg.Output, _ = cmd.Flags().GetString("output")
	}

	return cfg, cfg.Validate()
}

func printEnv() {
	fmt.Printf("go:         %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fmt.Printf("gomaxprocs: %d\n", runtime.GOMAXPROCS(0))

	info := vek.Info()
	fmt.Printf("vek:        accelerated=%v features=%s\n", info.Acceleration, info.CPUFeatures)

	switch runtime.GOARCH {
	case "amd64":
		fmt.Printf("cpu:        sse42=%v avx=%v avx2=%v fma=%v avx512f=%v\n",
			cpu.X86.HasSSE42, cpu.X86.HasAVX, cpu.X86.HasAVX2, cpu.X86.HasFMA, cpu.X86.HasAVX512F)
	case "arm64":
		fmt.Printf("cpu:        asimd=%v fp=%v sve=%v\n",
			cpu.ARM64.HasASIMD, cpu.ARM64.HasFP, cpu.ARM64.HasSVE)
	}
}
