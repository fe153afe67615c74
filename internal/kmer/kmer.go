// Package kmer implements canonical k-mer encoding and the strand
// invariant sliding-window minimizer extractor described in spec
// section 4.2: a FASTA contig's sequence is reduced to a deduplicated
// stream of (hash, k-mer index) pairs.
package kmer

// base2bits maps an upper-cased ACGT byte to its 2-bit code. ok is
// false for any byte that is not A, C, G, or T once upper-cased —
// every such byte is treated as a hard gap, resetting the rolling
// k-mer state.
func base2bits(b byte) (code uint64, ok bool) {
	switch b {
	case 'A', 'a':
		return 0, true
	case 'C', 'c':
		return 1, true
	case 'G', 'g':
		return 2, true
	case 'T', 't':
		return 3, true
	default:
		return 0, false
	}
}

// kmerMask returns the bitmask that keeps the low 2*k bits of a
// forward k-mer code, or an all-ones mask when 2*k >= 64.
func kmerMask(k int) uint64 {
	if 2*k >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(2*k)) - 1
}

// rollingKmer maintains the forward and reverse-complement encodings
// of the most recent k bases seen, resetting on any invalid base the
// way a gap byte resets fwd, rev, and len.
type rollingKmer struct {
	k     int
	mask  uint64
	fwd   uint64
	rev   uint64
	valid int // number of consecutive valid bases accumulated
}

func newRollingKmer(k int) *rollingKmer {
	return &rollingKmer{k: k, mask: kmerMask(k)}
}

// reset clears rolling state on a gap or contig boundary.
func (r *rollingKmer) reset() {
	r.fwd = 0
	r.rev = 0
	r.valid = 0
}

// push folds one base into the rolling state. It reports whether the
// k-mer window is now fully populated (valid >= k) and, if so, the
// canonical code for the k-mer ending at the just-pushed base.
func (r *rollingKmer) push(b byte) (canon uint64, ready bool) {
	code, ok := base2bits(b)
	if !ok {
		r.reset()
		return 0, false
	}

	r.fwd = ((r.fwd << 2) | code) & r.mask
	comp := 3 - code
	r.rev = (r.rev >> 2) | (comp << uint(2*(r.k-1)))

	if r.valid < r.k {
		r.valid++
	}
	if r.valid < r.k {
		return 0, false
	}

	if r.fwd < r.rev {
		return r.fwd, true
	}
	return r.rev, true
}
