// Copyright 2025 The benchlab Authors. SPDX-License-Identifier: Apache-2.0

// Package config loads benchlab suite configuration from YAML files and
// environment variables.
//
// Precedence (highest to lowest):
//  1. Command-line flags (--times, --seed, ...)
//  2. Environment variables (BENCHLAB_*)
//  3. Config file (benchlab.yaml)
//  4. Built-in defaults
//
// Environment variables:
//   - BENCHLAB_TIMES=100
//   - BENCHLAB_WARMUP=2
//   - BENCHLAB_SEED=42
//   - BENCHLAB_PROGRESS=true
//   - BENCHLAB_OUTPUT=results.yaml
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the full suite configuration.
type Config struct {
	// Times is the number of recorded samples per benchmark.
	Times int `yaml:"times"`
	// Warmup is the number of unrecorded runs per benchmark.
	Warmup int `yaml:"warmup"`
	// Seed feeds the data generators so runs are reproducible.
	Seed int64 `yaml:"seed"`
	// Progress enables the progress bar during suite runs.
	Progress bool `yaml:"progress"`
	// Output is an optional path for the YAML results export.
	Output string `yaml:"output"`

	Sort SortConfig `yaml:"sort"`
	SVD  SVDConfig  `yaml:"svd"`
}

// SortConfig selects the sorting comparison workload.
type SortConfig struct {
	// Sizes are the input lengths to benchmark.
	Sizes []int `yaml:"sizes"`
	// Algos are sortx variant names: std, sort, stable, heap, radix,
	// parallel.
	Algos []string `yaml:"algos"`
	// Pattern is the input shape: random, sorted, reversed, equal.
	Pattern string `yaml:"pattern"`
}

// SVDConfig selects the decomposition comparison workload.
type SVDConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
	// Methods are svd method names: standard, dc, jacobi.
	Methods []string `yaml:"methods"`
	// Complex additionally benchmarks the complex-valued variants.
	Complex bool `yaml:"complex"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Times:    25,
		Warmup:   2,
		Seed:     42,
		Progress: true,
		Sort: SortConfig{
			Sizes:   []int{1000, 100000},
			Algos:   []string{"std", "sort", "stable", "heap", "radix", "parallel"},
			Pattern: "random",
		},
		SVD: SVDConfig{
			Rows:    400,
			Cols:    400,
			Methods: []string{"standard", "dc"},
		},
	}
}

// Load reads path over the defaults and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "config: reading %s", path)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, errors.Wrapf(err, "config: parsing %s", path)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv returns the defaults with environment overrides only.
func FromEnv() *Config {
	cfg := Default()
	cfg.applyEnv()
	return cfg
}

func (c *Config) applyEnv() {
	c.Times = envInt("BENCHLAB_TIMES", c.Times)
	c.Warmup = envInt("BENCHLAB_WARMUP", c.Warmup)
	c.Seed = int64(envInt("BENCHLAB_SEED", int(c.Seed)))
	c.Progress = envBool("BENCHLAB_PROGRESS", c.Progress)
	if v := os.Getenv("BENCHLAB_OUTPUT"); v != "" {
		c.Output = v
	}
}

// Validate rejects configurations the runners cannot execute.
func (c *Config) Validate() error {
	if c.Times <= 0 {
		return errors.New("config: times must be positive")
	}
	if c.Warmup < 0 {
		return errors.New("config: warmup must be non-negative")
	}
	for _, n := range c.Sort.Sizes {
		if n <= 0 {
			return errors.Errorf("config: invalid sort size %d", n)
		}
	}
	switch c.Sort.Pattern {
	case "", "random", "sorted", "reversed", "equal":
	default:
		return errors.Errorf("config: unknown sort pattern %q", c.Sort.Pattern)
	}
	if c.SVD.Rows <= 0 || c.SVD.Cols <= 0 {
		return errors.Errorf("config: invalid svd shape %dx%d", c.SVD.Rows, c.SVD.Cols)
	}
	return nil
}

// FindConfigFile returns the first existing default config path, or "".
func FindConfigFile() string {
	for _, p := range []string{"benchlab.yaml", "benchlab.yml"} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	v := strings.ToLower(os.Getenv(key))
	switch v {
	case "":
		return def
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
