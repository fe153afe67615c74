package hll

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyEstimateIsZero(t *testing.T) {
	s, err := New(14)
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.Estimate())
}

func TestSingleAddEstimate(t *testing.T) {
	s, err := New(14)
	require.NoError(t, err)
	s.Add(splitMix64Ref(1))
	m := float64(s.M())
	expected := m * math.Log(m/(m-1))
	assert.InDelta(t, expected, s.Estimate(), 1e-9)
}

// splitMix64Ref mirrors internal/kmer's finalizer so this package's
// tests don't need to import internal/kmer just to exercise Add with a
// realistic hash value.
func splitMix64Ref(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

func TestRejectsBadPrecision(t *testing.T) {
	_, err := New(3)
	assert.Error(t, err)
	_, err = New(19)
	assert.Error(t, err)
}

func TestRegisterBounds(t *testing.T) {
	s, err := New(10)
	require.NoError(t, err)
	for i := 0; i < 100000; i++ {
		s.Add(splitMix64Ref(uint64(i)))
	}
	maxRho := 64 - s.P() + 1
	for _, reg := range s.Registers() {
		assert.LessOrEqual(t, reg, maxRho)
	}
}

func TestAddIsIdempotent(t *testing.T) {
	s, err := New(10)
	require.NoError(t, err)
	h := splitMix64Ref(42)
	s.Add(h)
	snapshot := append([]byte(nil), s.Registers()...)
	for i := 0; i < 10; i++ {
		s.Add(h)
	}
	assert.Equal(t, snapshot, s.Registers())
}

func TestMergeIdempotentCommutativeAssociative(t *testing.T) {
	a, _ := New(8)
	b, _ := New(8)
	c, _ := New(8)
	for i := 0; i < 500; i++ {
		a.Add(splitMix64Ref(uint64(i)))
	}
	for i := 300; i < 900; i++ {
		b.Add(splitMix64Ref(uint64(i)))
	}
	for i := 700; i < 1200; i++ {
		c.Add(splitMix64Ref(uint64(i)))
	}

	// idempotent: A U A == A
	selfUnion, err := Union(a, a)
	require.NoError(t, err)
	assert.Equal(t, a.Registers(), selfUnion.Registers())

	// commutative: A U B == B U A
	ab, err := Union(a, b)
	require.NoError(t, err)
	ba, err := Union(b, a)
	require.NoError(t, err)
	assert.Equal(t, ab.Registers(), ba.Registers())

	// associative: (A U B) U C == A U (B U C)
	abc1, err := Union(ab, c)
	require.NoError(t, err)
	bc, err := Union(b, c)
	require.NoError(t, err)
	abc2, err := Union(a, bc)
	require.NoError(t, err)
	assert.Equal(t, abc1.Registers(), abc2.Registers())
}

func TestMergeIncompatiblePrecision(t *testing.T) {
	a, _ := New(8)
	b, _ := New(10)
	err := a.Merge(b)
	assert.Error(t, err)
	_, err = Union(a, b)
	assert.Error(t, err)
}

func TestMergeInPlace(t *testing.T) {
	a, _ := New(8)
	b, _ := New(8)
	for i := 0; i < 500; i++ {
		a.Add(splitMix64Ref(uint64(i)))
	}
	for i := 0; i < 500; i++ {
		b.Add(splitMix64Ref(uint64(i) + 1000))
	}
	union, _ := Union(a, b)
	require.NoError(t, a.Merge(b))
	assert.Equal(t, union.Registers(), a.Registers())
}

func TestEstimateWithinErrorBound(t *testing.T) {
	s, err := New(14)
	require.NoError(t, err)
	const n = 100000
	for i := 0; i < n; i++ {
		s.Add(splitMix64Ref(uint64(i)))
	}
	est := s.Estimate()
	relErr := math.Abs(est-float64(n)) / float64(n)
	assert.Less(t, relErr, 0.02)
}
