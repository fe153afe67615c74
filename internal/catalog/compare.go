package catalog

import (
	"bufio"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/destrak/novedad-genomica/internal/errs"
	"github.com/destrak/novedad-genomica/internal/hll"
)

// Row is one novelty comparator result row, matching the CSV header:
// sketch_S,|R|,|S|,|R_union_S|,|S_minus_R|,rho.
type Row struct {
	SketchS   string
	SizeR     float64
	SizeS     float64
	SizeUnion float64
	SMinusR   float64
	Rho       float64
}

// SkippedFile records a recoverable per-file error: a bad candidate
// sketch does not abort the whole comparison run.
type SkippedFile struct {
	Path string
	Err  error
}

// CompareResult carries every emitted row plus the files that were
// skipped after a recoverable error, so a caller can log both.
type CompareResult struct {
	Rows    []Row
	Skipped []SkippedFile
}

// readUsedNames reads the used-list file into a set of base file
// names.
func readUsedNames(path string) (map[string]struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.IOOpen, "catalog.readUsedNames", path, err)
	}
	defer f.Close()

	used := make(map[string]struct{})
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			used[line] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errs.Wrap(errs.IOOpen, "catalog.readUsedNames", path, err)
	}
	return used, nil
}

// Compare loads R, computes |R|, then for every ".hll" file in
// poolDir not named in usedListPath and not the same file as rPath,
// computes |S|, |R ∪ S|, |S\R| = max(0, |R∪S|-|R|), and
// rho = |S\R|/|S| (0 when |S|==0). Per-file errors are recorded in
// CompareResult.Skipped rather than aborting the whole run; failures
// on R itself, on the used list, or on reading poolDir are fatal.
func Compare(rPath, poolDir, usedListPath string) (CompareResult, error) {
	r, err := hll.Load(rPath)
	if err != nil {
		return CompareResult{}, err
	}
	sizeR := r.Estimate()

	rInfo, err := os.Stat(rPath)
	if err != nil {
		return CompareResult{}, errs.Wrap(errs.IOOpen, "catalog.Compare", rPath, err)
	}

	used, err := readUsedNames(usedListPath)
	if err != nil {
		return CompareResult{}, err
	}

	entries, err := os.ReadDir(poolDir)
	if err != nil {
		return CompareResult{}, errs.Wrap(errs.IOOpen, "catalog.Compare", poolDir, err)
	}

	var result CompareResult
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.ToLower(filepath.Ext(name)) != ".hll" {
			continue
		}
		if _, skip := used[name]; skip {
			continue
		}
		sPath := filepath.Join(poolDir, name)

		sInfo, statErr := os.Stat(sPath)
		if statErr == nil && os.SameFile(rInfo, sInfo) {
			continue
		}

		row, err := compareOne(r, sizeR, name, sPath)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedFile{Path: sPath, Err: err})
			continue
		}
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}

func compareOne(r *hll.Sketch, sizeR float64, name, sPath string) (Row, error) {
	s, err := hll.Load(sPath)
	if err != nil {
		return Row{}, err
	}
	sizeS := s.Estimate()

	union, err := hll.Union(r, s)
	if err != nil {
		return Row{}, err
	}
	sizeUnion := union.Estimate()

	sMinusR := sizeUnion - sizeR
	if sMinusR < 0 {
		sMinusR = 0
	}

	var rho float64
	if sizeS > 0 {
		rho = sMinusR / sizeS
	}

	return Row{
		SketchS:   name,
		SizeR:     sizeR,
		SizeS:     sizeS,
		SizeUnion: sizeUnion,
		SMinusR:   sMinusR,
		Rho:       rho,
	}, nil
}

// WriteCSV writes rows to path with full double precision
// (strconv.FormatFloat with -1 precision, the shortest representation
// that round-trips exactly).
func WriteCSV(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(errs.IOOpen, "catalog.WriteCSV", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"sketch_S", "|R|", "|S|", "|R_union_S|", "|S_minus_R|", "rho"}); err != nil {
		return errs.Wrap(errs.IOOpen, "catalog.WriteCSV", path, err)
	}
	for _, row := range rows {
		record := []string{
			row.SketchS,
			formatFloat(row.SizeR),
			formatFloat(row.SizeS),
			formatFloat(row.SizeUnion),
			formatFloat(row.SMinusR),
			formatFloat(row.Rho),
		}
		if err := w.Write(record); err != nil {
			return errs.Wrap(errs.IOOpen, "catalog.WriteCSV", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errs.Wrap(errs.IOOpen, "catalog.WriteCSV", path, err)
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
