package neat

import (
	"fmt"
	"math/rand/v2"
)

// Source is the single seedable random stream threaded through every sampling call.
// Its state can be marshaled so a restored run continues the exact same stream.
type Source struct {
	*rand.Rand
	pcg *rand.PCG
}

// NewSource creates a Source seeded with the given value.
func NewSource(seed uint64) *Source {
	pcg := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &Source{Rand: rand.New(pcg), pcg: pcg}
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (s *Source) MarshalBinary() ([]byte, error) {
	return s.pcg.MarshalBinary()
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (s *Source) UnmarshalBinary(data []byte) error {
	if s.pcg == nil {
		s.pcg = &rand.PCG{}
	}
	if err := s.pcg.UnmarshalBinary(data); err != nil {
		return fmt.Errorf("failed to restore random source: %w", err)
	}
	s.Rand = rand.New(s.pcg)
	return nil
}

// Chance reports whether a Bernoulli trial with probability p succeeds.
func (s *Source) Chance(p float64) bool {
	return s.Float64() < p
}

// Bound is a closed sampling interval [Lower, Upper].
type Bound struct {
	Lower float64
	Upper float64
}

// NewBound creates a Bound.
func NewBound(lower, upper float64) Bound {
	return Bound{Lower: lower, Upper: upper}
}

// Rand draws a uniform float in [Lower, Upper).
func (b Bound) Rand(rng *Source) float64 {
	return rng.Float64()*(b.Upper-b.Lower) + b.Lower
}

// RandInt draws a uniform integer in [Lower, Upper], both ends inclusive.
func (b Bound) RandInt(rng *Source) int {
	lo, hi := int(b.Lower), int(b.Upper)
	if hi < lo {
		return lo
	}
	return rng.IntN(hi-lo+1) + lo
}

// span is the number of distinct integers RandInt can return.
func (b Bound) span() int {
	lo, hi := int(b.Lower), int(b.Upper)
	if hi < lo {
		return 1
	}
	return hi - lo + 1
}

// RandString draws size integers from the bound. Without repetition the result holds
// distinct values in draw order, and size is capped at the number of integers the
// bound contains.
func (b Bound) RandString(rng *Source, size int, repeat bool) []int {
	if size <= 0 {
		return nil
	}
	values := make([]int, 0, size)
	if repeat {
		for i := 0; i < size; i++ {
			values = append(values, b.RandInt(rng))
		}
		return values
	}
	if n := b.span(); size > n {
		size = n
	}
	seen := make(map[int]bool, size)
	for len(values) < size {
		v := b.RandInt(rng)
		if seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	return values
}

// String returns a string representation of the Bound.
func (b Bound) String() string {
	return fmt.Sprintf("[%.3f, %.3f]", b.Lower, b.Upper)
}
