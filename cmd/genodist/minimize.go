package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/destrak/novedad-genomica/internal/config"
	"github.com/destrak/novedad-genomica/internal/fasta"
	"github.com/destrak/novedad-genomica/internal/kmer"
	"github.com/spf13/cobra"
)

// newMinimizeCmd extracts minimizer streams from FASTA files: for
// every FASTA file in input-dir, it extracts the minimizer stream for
// each contig and writes "hash idx" lines to output-dir, one
// "<stem>.txt" per input file.
func newMinimizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "minimize",
		Short: "Extract minimizer streams from FASTA files",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := viperFrom(cmd.Context())
			cfg := config.Config{
				InputDir:  v.GetString("input-dir"),
				OutputDir: v.GetString("output-dir"),
				K:         v.GetInt("k"),
				W:         v.GetInt("w"),
			}
			if err := cfg.ValidateMinimize(); err != nil {
				return err
			}
			return runMinimize(cfg)
		},
	}
	cmd.Flags().String("input-dir", "", "directory of FASTA files")
	cmd.Flags().String("output-dir", "", "directory to write minimizer files into")
	cmd.Flags().Int("k", 21, "k-mer length")
	cmd.Flags().Int("w", 11, "minimizer window size")
	return cmd
}

func runMinimize(cfg config.Config) error {
	entries, err := os.ReadDir(cfg.InputDir)
	if err != nil {
		return fmt.Errorf("reading input dir: %w", err)
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	var filesProcessed, recordsEmitted int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".fa" && ext != ".fna" && ext != ".fasta" {
			continue
		}
		inPath := filepath.Join(cfg.InputDir, entry.Name())
		logger.Info("processing fasta file", "path", inPath)

		contigs, err := fasta.ReadFile(inPath)
		if err != nil {
			errorf("%s: %v", inPath, err)
			continue
		}

		stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		outPath := filepath.Join(cfg.OutputDir, stem+".txt")
		out, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outPath, err)
		}

		count := 0
		for _, contig := range contigs {
			kmer.Stream(contig.Sequence, cfg.K, cfg.W, func(r kmer.Record) {
				fmt.Fprintf(out, "%d %d\n", r.H, r.Idx)
				count++
			})
		}
		if err := out.Close(); err != nil {
			return fmt.Errorf("closing %s: %w", outPath, err)
		}

		filesProcessed++
		recordsEmitted += count
		logger.Info("wrote minimizer file", "path", outPath, "records", count)
	}

	logger.Info("minimize complete", "files_processed", filesProcessed, "records_emitted", recordsEmitted)
	return nil
}
