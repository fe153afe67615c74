package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/destrak/novedad-genomica/internal/catalog"
	"github.com/destrak/novedad-genomica/internal/config"
	"github.com/spf13/cobra"
)

// newCatalogueCmd wires the first half of C4: pick N sketches at
// random from input-dir, merge them into a reference sketch, and save
// it (plus the used/not-used name lists) under output-dir.
func newCatalogueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalogue",
		Short: "Build a reference catalogue sketch from a pool of sketches",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := viperFrom(cmd.Context())
			cfg := config.Config{
				InputDir:  v.GetString("input-dir"),
				OutputDir: v.GetString("output-dir"),
				N:         v.GetInt("n"),
			}
			if err := cfg.ValidateCatalogue(); err != nil {
				return err
			}
			// viper.IsSet is unreliable for a bound pflag (it reports
			// the flag's zero-value default as "set" too), so the
			// explicit-seed check goes straight to pflag's own
			// Changed bookkeeping instead.
			if cmd.Flags().Changed("seed") {
				seed := v.GetUint64("seed")
				cfg.Seed = &seed
			}
			return runCatalogue(cfg)
		},
	}
	cmd.Flags().String("input-dir", "", "directory of pooled .hll sketches")
	cmd.Flags().String("output-dir", "", "directory to write the catalogue into")
	cmd.Flags().Int("n", 0, "number of sketches to merge into the catalogue")
	cmd.Flags().Uint64("seed", 0, "explicit PRNG seed (omit for crypto/rand entropy)")
	return cmd
}

func runCatalogue(cfg config.Config) error {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	outPath := filepath.Join(cfg.OutputDir, "catalogue.hll")

	result, err := catalog.Build(cfg.InputDir, cfg.N, outPath, cfg.Seed)
	if err != nil {
		return err
	}

	if len(result.NotChosen)+len(result.Chosen) < cfg.N {
		warnf("pool smaller than requested N=%d; used all %d available sketches", cfg.N, len(result.Chosen))
	}

	logger.Info("catalogue complete",
		"chosen", len(result.Chosen),
		"not_chosen", len(result.NotChosen),
		"cardinality", result.Cardinality,
		"output", outPath,
	)
	return nil
}
