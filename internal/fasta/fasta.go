// Package fasta implements a minimal FASTA reader: header lines
// starting with ">" separate contigs, and a contig's sequence is the
// concatenation of all non-whitespace bytes on the lines following its
// header until the next header or EOF. This is glue between the
// filesystem and internal/kmer, kept deliberately small since
// directory scanning and file-name management belong to the caller.
package fasta

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/destrak/novedad-genomica/internal/errs"
)

// Contig is one FASTA record: its header (without the leading ">")
// and its concatenated sequence bytes.
type Contig struct {
	Header   string
	Sequence []byte
}

// ReadFile opens path and parses every contig in it.
func ReadFile(path string) ([]Contig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.IOOpen, "fasta.ReadFile", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads FASTA records from r.
func Parse(r io.Reader) ([]Contig, error) {
	var contigs []Contig
	var cur *Contig
	var seq strings.Builder

	flush := func() {
		if cur != nil {
			cur.Sequence = []byte(seq.String())
			contigs = append(contigs, *cur)
			seq.Reset()
		}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if line[0] == '>' {
			flush()
			cur = &Contig{Header: line[1:]}
			continue
		}
		if cur == nil {
			// sequence lines before the first header belong to no contig
			continue
		}
		for i := 0; i < len(line); i++ {
			if !isSpace(line[i]) {
				seq.WriteByte(line[i])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errs.Wrap(errs.IOOpen, "fasta.Parse", "", err)
	}
	flush()
	return contigs, nil
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '\v', '\f':
		return true
	default:
		return false
	}
}
