// Package config defines the caller-supplied configuration structure
// and its validation rules. It is deliberately free of any CLI or
// env-binding library; spf13/viper binds into this struct from
// cmd/genodist instead.
package config

import (
	"github.com/destrak/novedad-genomica/internal/errs"
	"github.com/destrak/novedad-genomica/internal/hll"
)

// Config holds every recognized pipeline option. Not every field is
// required by every operation; each operation's Validate* helper below
// checks only the fields it needs.
type Config struct {
	InputDir  string
	OutputDir string
	K         int
	W         int
	P         byte
	N         int
	RPath     string
	SDir      string
	UsedList  string
	CSVOut    string
	// Seed is an optional explicit PRNG seed that makes catalogue
	// construction reproducible in tests. When nil, catalogue
	// construction seeds from crypto/rand.
	Seed *uint64
}

// ValidateMinimize checks the fields required by the minimizer
// extractor (C1).
func (c Config) ValidateMinimize() error {
	if c.InputDir == "" || c.OutputDir == "" {
		return errs.New(errs.BadConfig, "config.ValidateMinimize", "input_dir/output_dir required")
	}
	if c.K <= 0 {
		return errs.New(errs.BadConfig, "config.ValidateMinimize", "k must be > 0")
	}
	if c.W <= 0 {
		return errs.New(errs.BadConfig, "config.ValidateMinimize", "w must be > 0")
	}
	if 2*c.K > 64 {
		return errs.New(errs.BadConfig, "config.ValidateMinimize", "2*k must be <= 64")
	}
	return nil
}

// ValidateSketch checks the fields required by the sketch builder (C3).
func (c Config) ValidateSketch() error {
	if c.InputDir == "" || c.OutputDir == "" {
		return errs.New(errs.BadConfig, "config.ValidateSketch", "input_dir/output_dir required")
	}
	if c.P < hll.MinPrecision || c.P > hll.MaxPrecision {
		return errs.New(errs.BadConfig, "config.ValidateSketch", "p out of [4,18]")
	}
	return nil
}

// ValidateCatalogue checks the fields required by catalogue
// construction (C4, first half).
func (c Config) ValidateCatalogue() error {
	if c.InputDir == "" {
		return errs.New(errs.BadConfig, "config.ValidateCatalogue", "input_dir required")
	}
	if c.OutputDir == "" {
		return errs.New(errs.BadConfig, "config.ValidateCatalogue", "output_dir required")
	}
	if c.N < 1 {
		return errs.New(errs.BadConfig, "config.ValidateCatalogue", "N must be >= 1")
	}
	return nil
}

// ValidateCompare checks the fields required by the novelty comparator
// (C4, second half).
func (c Config) ValidateCompare() error {
	if c.RPath == "" {
		return errs.New(errs.BadConfig, "config.ValidateCompare", "R_path required")
	}
	if c.SDir == "" {
		return errs.New(errs.BadConfig, "config.ValidateCompare", "S_dir required")
	}
	if c.UsedList == "" {
		return errs.New(errs.BadConfig, "config.ValidateCompare", "used_list required")
	}
	if c.CSVOut == "" {
		return errs.New(errs.BadConfig, "config.ValidateCompare", "csv_out required")
	}
	return nil
}
