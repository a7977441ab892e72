// Copyright 2025 The benchlab Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ajroetker/benchlab/progress"
)

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Demonstrate the progress bar renderers",
		Long: `Run a simulated workload behind each progress renderer.

Renderers: bar (carriage-return overwritten bar with ETA), ticks
(append-only tick line for non-TTY output).`,
		RunE: runDemo,
	}
	cmd.Flags().Int64("total", 200, "Units of simulated work")
	cmd.Flags().Duration("delay", 10*time.Millisecond, "Time per unit")
	cmd.Flags().String("renderer", "bar", "Renderer: bar or ticks")
	return cmd
}

func runDemo(cmd *cobra.Command, args []string) error {
	total, _ := cmd.Flags().GetInt64("total")
	delay, _ := cmd.Flags().GetDuration("delay")
	name, _ := cmd.Flags().GetString("renderer")

	opts := []progress.Option{
		progress.WithWriter(os.Stdout),
		progress.WithLabel("demo"),
	}
	switch name {
	case "bar":
	case "ticks":
		opts = append(opts, progress.WithRenderer(&progress.TickRenderer{}))
	default:
		return errors.Errorf("unknown renderer %q", name)
	}

	bar := progress.New(total, opts...)
	if err := bar.Start(); err != nil {
		return err
	}
	for range total {
		time.Sleep(delay)
		bar.Increment()
	}
	bar.Finish()
	return bar.Err()
}
