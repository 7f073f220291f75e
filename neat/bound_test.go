package neat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceIsDeterministic(t *testing.T) {
	a, b := NewSource(7), NewSource(7)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestSourceMarshalResumesStream(t *testing.T) {
	a := NewSource(7)
	a.Float64()
	state, err := a.MarshalBinary()
	require.NoError(t, err)
	want := []float64{a.Float64(), a.Float64(), a.Float64()}

	b := NewSource(99)
	require.NoError(t, b.UnmarshalBinary(state))
	assert.Equal(t, want, []float64{b.Float64(), b.Float64(), b.Float64()})
}

func TestBoundRandStaysInRange(t *testing.T) {
	rng := NewSource(1)
	b := NewBound(-2, 2)
	for i := 0; i < 1000; i++ {
		v := b.Rand(rng)
		assert.GreaterOrEqual(t, v, -2.0)
		assert.Less(t, v, 2.0)
	}
}

func TestBoundRandIntIsInclusive(t *testing.T) {
	rng := NewSource(1)
	b := NewBound(2, 5)
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		v := b.RandInt(rng)
		require.GreaterOrEqual(t, v, 2)
		require.LessOrEqual(t, v, 5)
		seen[v] = true
	}
	assert.Len(t, seen, 4)
}

func TestBoundRandString(t *testing.T) {
	rng := NewSource(3)
	b := NewBound(0, 9)

	t.Run("distinct", func(t *testing.T) {
		values := b.RandString(rng, 6, false)
		require.Len(t, values, 6)
		seen := make(map[int]bool)
		for _, v := range values {
			assert.False(t, seen[v], "value %d drawn twice", v)
			seen[v] = true
		}
	})

	t.Run("capped at span", func(t *testing.T) {
		values := b.RandString(rng, 50, false)
		assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, values)
	})

	t.Run("with repetition", func(t *testing.T) {
		values := NewBound(0, 1).RandString(rng, 20, true)
		assert.Len(t, values, 20)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, b.RandString(rng, 0, false))
	})
}
