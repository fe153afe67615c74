package hll

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/destrak/novedad-genomica/internal/errs"
)

// magic is the fixed 4-byte sketch file prefix, "HLL1".
var magic = [4]byte{'H', 'L', 'L', '1'}

// Save writes s to path in the bit-exact layout:
// 4-byte magic, 1-byte p, 4-byte little-endian m, then m register
// bytes.
func (s *Sketch) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(errs.IOOpen, "hll.Save", path, err)
	}
	defer f.Close()

	if err := writeSketch(f, s); err != nil {
		return errs.Wrap(errs.IOOpen, "hll.Save", path, err)
	}
	return nil
}

func writeSketch(w io.Writer, s *Sketch) error {
	if _, err := w.Write(magic[:]); err != nil {
		return err
	}
	if _, err := w.Write([]byte{s.p}); err != nil {
		return err
	}
	var mBuf [4]byte
	binary.LittleEndian.PutUint32(mBuf[:], s.m)
	if _, err := w.Write(mBuf[:]); err != nil {
		return err
	}
	_, err := w.Write(s.regs)
	return err
}

// Load reads a sketch from path, validating magic, precision bounds,
// and m == 1<<p, reporting the bad-magic, bad-precision,
// inconsistent-m, and short-read error kinds.
func Load(path string) (*Sketch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.IOOpen, "hll.Load", path, err)
	}
	defer f.Close()

	return readSketch(f, path)
}

func readSketch(r io.Reader, path string) (*Sketch, error) {
	var hdr [9]byte
	n, err := io.ReadFull(r, hdr[:])
	if err != nil {
		if n < 4 {
			return nil, errs.Wrap(errs.ShortRead, "hll.Load", path, err)
		}
		return nil, errs.Wrap(errs.ShortRead, "hll.Load", path, err)
	}

	if hdr[0] != magic[0] || hdr[1] != magic[1] || hdr[2] != magic[2] || hdr[3] != magic[3] {
		return nil, errs.New(errs.BadMagic, "hll.Load", path)
	}

	p := hdr[4]
	if p < MinPrecision || p > MaxPrecision {
		return nil, errs.New(errs.BadPrecision, "hll.Load", path)
	}

	m := binary.LittleEndian.Uint32(hdr[5:9])
	if m != uint32(1)<<p {
		return nil, errs.New(errs.InconsistentM, "hll.Load", path)
	}

	regs := make([]byte, m)
	if _, err := io.ReadFull(r, regs); err != nil {
		return nil, errs.Wrap(errs.ShortRead, "hll.Load", path, err)
	}

	return &Sketch{p: p, m: m, regs: regs}, nil
}
