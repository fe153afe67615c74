// Package hll implements the HyperLogLog cardinality sketch described
// in spec section 4.1: a fixed-precision register array supporting
// add, estimate (with small-range linear-counting correction), and a
// lossless mergeable union, plus the bit-exact on-disk encoding from
// codec.go.
package hll

import (
	"fmt"
	"math"

	"github.com/destrak/novedad-genomica/internal/errs"
)

const (
	// MinPrecision and MaxPrecision bound the register-count precision p.
	MinPrecision = 4
	MaxPrecision = 18
)

// Sketch is a fixed-precision HyperLogLog register array.
type Sketch struct {
	p    byte
	m    uint32
	regs []byte
}

// New returns a fresh all-zero sketch with 2^p registers. p must be in
// [MinPrecision, MaxPrecision]; callers validate this via
// internal/config before construction (New itself reports bad-precision
// rather than silently clamping, because construction is tied
// directly to a caller-supplied config value that must be rejected,
// not coerced).
func New(p byte) (*Sketch, error) {
	if p < MinPrecision || p > MaxPrecision {
		return nil, errs.New(errs.BadPrecision, "hll.New", fmt.Sprintf("p=%d", p))
	}
	m := uint32(1) << p
	return &Sketch{p: p, m: m, regs: make([]byte, m)}, nil
}

// P returns the sketch's precision.
func (s *Sketch) P() byte { return s.p }

// M returns the number of registers, 2^p.
func (s *Sketch) M() uint32 { return s.m }

// Registers returns the raw register bytes. Callers must not mutate
// the returned slice.
func (s *Sketch) Registers() []byte { return s.regs }

// alpha returns the bias correction constant for m registers, per the
// table.
func alpha(m uint32) float64 {
	switch m {
	case 16:
		return 0.673
	case 32:
		return 0.697
	case 64:
		return 0.709
	default:
		return 0.7213 / (1 + 1.079/float64(m))
	}
}

// Add folds one 64-bit hash into the sketch. A zero hash is remapped
// to one so the leading-bit scan is always well-defined.
func (s *Sketch) Add(h uint64) {
	if h == 0 {
		h = 1
	}
	j := h >> (64 - s.p)
	w := h << s.p
	rho := byte(leadingZeros64(w)) + 1
	if rho > s.regs[j] {
		s.regs[j] = rho
	}
}

// leadingZeros64 counts leading zero bits in a 64-bit word with a
// plain bit scan, keeping the rho computation colocated and easy to
// audit against the "count leading zeros, add 1" convention.
func leadingZeros64(w uint64) int {
	if w == 0 {
		return 64
	}
	n := 0
	for mask := uint64(1) << 63; mask&w == 0; mask >>= 1 {
		n++
	}
	return n
}

// Estimate returns the current cardinality estimate: the alpha-corrected
// raw estimate, replaced by the linear-counting estimate when the raw
// estimate falls in HyperLogLog's small range and at least one register
// is still empty.
func (s *Sketch) Estimate() float64 {
	var z float64
	var v int
	for _, reg := range s.regs {
		z += math.Ldexp(1.0, -int(reg))
		if reg == 0 {
			v++
		}
	}
	e := alpha(s.m) * float64(s.m) * float64(s.m) / z
	if e <= 5*float64(s.m) && v > 0 {
		e = float64(s.m) * math.Log(float64(s.m)/float64(v))
	}
	return e
}

// Merge folds other's registers into s in place: M[j] = max(M[j],
// other.M[j]) for every j. Both sketches must share the same
// precision.
func (s *Sketch) Merge(other *Sketch) error {
	if s.p != other.p || s.m != other.m {
		return errs.New(errs.IncompatibleSketches, "hll.Merge", "")
	}
	for j := range s.regs {
		if other.regs[j] > s.regs[j] {
			s.regs[j] = other.regs[j]
		}
	}
	return nil
}

// Union returns a new sketch whose registers are the element-wise max
// of a and b, leaving both inputs unmodified.
func Union(a, b *Sketch) (*Sketch, error) {
	if a.p != b.p || a.m != b.m {
		return nil, errs.New(errs.IncompatibleSketches, "hll.Union", "")
	}
	out, err := New(a.p)
	if err != nil {
		return nil, err
	}
	for j := range out.regs {
		out.regs[j] = a.regs[j]
		if b.regs[j] > out.regs[j] {
			out.regs[j] = b.regs[j]
		}
	}
	return out, nil
}

// Clone returns a deep copy of s.
func (s *Sketch) Clone() *Sketch {
	out := &Sketch{p: s.p, m: s.m, regs: make([]byte, len(s.regs))}
	copy(out.regs, s.regs)
	return out
}
