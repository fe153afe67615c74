// Package sketch implements the sketch builder: it reads a minimizer
// text file (hash, k-mer index pairs) and produces a fixed-precision
// HyperLogLog sketch file.
package sketch

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/destrak/novedad-genomica/internal/errs"
	"github.com/destrak/novedad-genomica/internal/hll"
)

// Result carries the actual on-disk sketch size and the theoretical
// 9+m size, so a caller can log or compare them without internal/hll
// knowing about file sizing.
type Result struct {
	OutputPath       string
	Cardinality      float64
	BytesWritten     int64
	TheoreticalBytes int64
}

// BuildFromFile reads hash/idx pairs from minimizerPath, feeds every
// hash into a fresh sketch of precision p, and saves it to outPath.
// The idx field is parsed (to catch malformed-minimizer-line errors)
// but otherwise ignored.
func BuildFromFile(minimizerPath string, p byte, outPath string) (Result, error) {
	f, err := os.Open(minimizerPath)
	if err != nil {
		return Result{}, errs.Wrap(errs.IOOpen, "sketch.BuildFromFile", minimizerPath, err)
	}
	defer f.Close()

	s, err := hll.New(p)
	if err != nil {
		return Result{}, err
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return Result{}, errs.New(errs.MalformedMinimizerLine, "sketch.BuildFromFile", minimizerPath)
		}
		h, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return Result{}, errs.Wrap(errs.MalformedMinimizerLine, "sketch.BuildFromFile", minimizerPath, err)
		}
		if _, err := strconv.ParseUint(fields[1], 10, 64); err != nil {
			return Result{}, errs.Wrap(errs.MalformedMinimizerLine, "sketch.BuildFromFile", minimizerPath, err)
		}
		s.Add(h)
	}
	if err := scanner.Err(); err != nil {
		return Result{}, errs.Wrap(errs.IOOpen, "sketch.BuildFromFile", minimizerPath, err)
	}

	if err := s.Save(outPath); err != nil {
		return Result{}, err
	}

	info, err := os.Stat(outPath)
	var bytesWritten int64
	if err == nil {
		bytesWritten = info.Size()
	}

	return Result{
		OutputPath:       outPath,
		Cardinality:      s.Estimate(),
		BytesWritten:     bytesWritten,
		TheoreticalBytes: int64(9 + s.M()),
	}, nil
}

// BuildDir walks inputDir for minimizer files (suffix ".txt") and
// writes one "<stem>.hll" sketch per file into outputDir. onFile, if
// non-nil, is called with each minimizer file's path before it is
// processed, letting a caller log per-file progress without this
// package importing a logger.
func BuildDir(inputDir, outputDir string, p byte, onFile func(path string)) ([]Result, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, errs.Wrap(errs.IOOpen, "sketch.BuildDir", inputDir, err)
	}

	var results []Result
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.ToLower(filepath.Ext(name)) != ".txt" {
			continue
		}
		inPath := filepath.Join(inputDir, name)
		if onFile != nil {
			onFile(inPath)
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		outPath := filepath.Join(outputDir, stem+".hll")
		res, err := BuildFromFile(inPath, p, outPath)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}
