package main

import (
	"github.com/destrak/novedad-genomica/internal/catalog"
	"github.com/destrak/novedad-genomica/internal/config"
	"github.com/spf13/cobra"
)

// newCompareCmd wires the second half of C4: compare every
// un-used sketch in S-dir against the reference sketch at R-path and
// write a novelty CSV.
func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compute novelty of pooled sketches against a reference catalogue",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := viperFrom(cmd.Context())
			cfg := config.Config{
				RPath:    v.GetString("r-path"),
				SDir:     v.GetString("s-dir"),
				UsedList: v.GetString("used-list"),
				CSVOut:   v.GetString("csv-out"),
			}
			if err := cfg.ValidateCompare(); err != nil {
				return err
			}
			return runCompare(cfg)
		},
	}
	cmd.Flags().String("r-path", "", "path to the reference catalogue sketch")
	cmd.Flags().String("s-dir", "", "directory of candidate sketches to compare")
	cmd.Flags().String("used-list", "", "file naming sketches already in the catalogue")
	cmd.Flags().String("csv-out", "", "path to write the novelty CSV to")
	return cmd
}

func runCompare(cfg config.Config) error {
	result, err := catalog.Compare(cfg.RPath, cfg.SDir, cfg.UsedList)
	if err != nil {
		return err
	}

	for _, skipped := range result.Skipped {
		warnf("%s: %v", skipped.Path, skipped.Err)
	}

	if err := catalog.WriteCSV(cfg.CSVOut, result.Rows); err != nil {
		return err
	}

	logger.Info("compare complete",
		"rows", len(result.Rows),
		"skipped", len(result.Skipped),
		"csv_out", cfg.CSVOut,
	)
	return nil
}
