// Package catalog implements catalogue construction and the novelty
// comparator: random selection of N sketches from a pool, streaming
// merge into a reference sketch R, and (in compare.go) per-genome
// novelty against R.
package catalog

import (
	"crypto/rand"
	"encoding/binary"
	mathrand "math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/destrak/novedad-genomica/internal/errs"
	"github.com/destrak/novedad-genomica/internal/hll"
)

// BuildResult carries the chosen and not-chosen file names and the
// resulting estimate, so a caller can report a run summary without
// recomputing R.Estimate().
type BuildResult struct {
	Chosen      []string
	NotChosen   []string
	Cardinality float64
}

// entropySeed draws a 64-bit seed from a non-deterministic source.
func entropySeed() (uint64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// shuffle performs a Fisher-Yates shuffle seeded from seed, giving a
// deterministic ordering for a given seed and an unpredictable one
// when seed is drawn from entropy.
func shuffle(paths []string, seed uint64) {
	r := mathrand.New(mathrand.NewSource(int64(seed)))
	r.Shuffle(len(paths), func(i, j int) { paths[i], paths[j] = paths[j], paths[i] })
}

// listSketchPool lists every ".hll" file directly inside dir.
func listSketchPool(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errs.Wrap(errs.IOOpen, "catalog.listSketchPool", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.ToLower(filepath.Ext(e.Name())) != ".hll" {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

// Build validates that every sketch in poolDir shares one precision,
// shuffles the pool, merges the first N into a reference sketch R,
// saves R to outPath, and writes the used/unused file-name lists.
// seed, if non-nil, makes the shuffle deterministic; otherwise a
// crypto/rand seed is drawn.
func Build(poolDir string, n int, outPath string, seed *uint64) (BuildResult, error) {
	pool, err := listSketchPool(poolDir)
	if err != nil {
		return BuildResult{}, err
	}
	if len(pool) == 0 {
		return BuildResult{}, errs.New(errs.EmptyPool, "catalog.Build", poolDir)
	}

	firstP, err := peekPrecision(pool[0])
	if err != nil {
		return BuildResult{}, err
	}
	for _, p := range pool[1:] {
		pp, err := peekPrecision(p)
		if err != nil {
			return BuildResult{}, err
		}
		if pp != firstP {
			return BuildResult{}, errs.New(errs.IncompatibleSketches, "catalog.Build", p)
		}
	}

	s := seed
	if s == nil {
		drawn, err := entropySeed()
		if err != nil {
			return BuildResult{}, errs.Wrap(errs.IOOpen, "catalog.Build", "", err)
		}
		s = &drawn
	}
	shuffle(pool, *s)

	if n > len(pool) {
		n = len(pool)
	}
	chosenPaths := pool[:n]
	notChosenPaths := pool[n:]

	ref, err := hll.Load(chosenPaths[0])
	if err != nil {
		return BuildResult{}, err
	}
	for _, p := range chosenPaths[1:] {
		other, err := hll.Load(p)
		if err != nil {
			return BuildResult{}, err
		}
		if err := ref.Merge(other); err != nil {
			return BuildResult{}, err
		}
	}

	if err := ref.Save(outPath); err != nil {
		return BuildResult{}, err
	}

	chosenNames := baseNames(chosenPaths)
	notChosenNames := baseNames(notChosenPaths)

	if err := writeNameList(outPath+"_usados.txt", chosenNames); err != nil {
		return BuildResult{}, err
	}
	if err := writeNameList(outPath+"_no_usados.txt", notChosenNames); err != nil {
		return BuildResult{}, err
	}

	return BuildResult{
		Chosen:      chosenNames,
		NotChosen:   notChosenNames,
		Cardinality: ref.Estimate(),
	}, nil
}

// peekPrecision loads a sketch just far enough to confirm it is
// well-formed and to read its precision byte. Loading the whole
// sketch is no more expensive than a partial read for files this
// size, so it reuses hll.Load directly.
func peekPrecision(path string) (byte, error) {
	s, err := hll.Load(path)
	if err != nil {
		return 0, err
	}
	return s.P(), nil
}

func baseNames(paths []string) []string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return names
}

func writeNameList(path string, names []string) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(errs.IOOpen, "catalog.writeNameList", path, err)
	}
	defer f.Close()
	for _, name := range names {
		if _, err := f.WriteString(name + "\n"); err != nil {
			return errs.Wrap(errs.IOOpen, "catalog.writeNameList", path, err)
		}
	}
	return nil
}
