package main

import (
	"fmt"
	"os"

	"github.com/destrak/novedad-genomica/internal/config"
	"github.com/destrak/novedad-genomica/internal/sketch"
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// newSketchCmd wires C3: build one HyperLogLog sketch per minimizer
// file in input-dir, writing "<stem>.hll" into output-dir.
func newSketchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sketch",
		Short: "Build HyperLogLog sketches from minimizer files",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := viperFrom(cmd.Context())
			cfg := config.Config{
				InputDir:  v.GetString("input-dir"),
				OutputDir: v.GetString("output-dir"),
				P:         byte(v.GetInt("p")),
			}
			if err := cfg.ValidateSketch(); err != nil {
				return err
			}
			return runSketch(cfg)
		},
	}
	cmd.Flags().String("input-dir", "", "directory of minimizer files")
	cmd.Flags().String("output-dir", "", "directory to write .hll sketches into")
	cmd.Flags().Int("p", 14, "HyperLogLog precision (registers = 2^p)")
	return cmd
}

func runSketch(cfg config.Config) error {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	results, err := sketch.BuildDir(cfg.InputDir, cfg.OutputDir, cfg.P, func(path string) {
		logger.Info("processing minimizer file", "path", path)
	})
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"sketch", "cardinality", "bytes", "theoretical"})
	for _, r := range results {
		t.AppendRow(table.Row{
			r.OutputPath,
			fmt.Sprintf("%.0f", r.Cardinality),
			humanize.Bytes(uint64(r.BytesWritten)),
			humanize.Bytes(uint64(r.TheoreticalBytes)),
		})
	}
	t.Render()

	logger.Info("sketch complete", "sketches_built", len(results))
	return nil
}
