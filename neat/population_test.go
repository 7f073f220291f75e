package neat

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoSpeciesPopulation holds five seed clones and five distant genomes.
func twoSpeciesPopulation(t *testing.T, ga *GeneticAlgorithm) *Population {
	t.Helper()
	r := NewReproduction(ga, 0)
	seed := seedGenome(ga)
	var species []*Species
	for i := 0; i < 5; i++ {
		g := seed.Copy()
		g.SetFitness(float64(i + 1))
		species = r.insert(g, species)
	}
	for i := 0; i < 5; i++ {
		g := distantGenome()
		g.SetFitness(float64(i + 2))
		species = r.insert(g, species)
	}
	require.Len(t, species, 2)
	return &Population{size: 10, species: species, nextSpeciesKey: r.NextSpeciesKey, ga: ga}
}

func TestNewPopulation(t *testing.T) {
	ga := newTestGA(t, 1)
	seed := seedGenome(ga)

	p, err := NewPopulation(4, seed, ga)
	require.NoError(t, err)
	assert.Equal(t, 4, p.Size())
	assert.Equal(t, 4, p.TargetSize())
	assert.Equal(t, 0, p.Generation())
	require.Len(t, p.Species(), 1)
	for _, g := range p.Genomes() {
		assert.Equal(t, seed.Links(), g.Links())
		assert.NotSame(t, seed, g)
	}
	assert.Nil(t, p.Best())

	_, err = NewPopulation(0, seed, ga)
	assert.Error(t, err)
}

func TestEvolveEndToEnd(t *testing.T) {
	ga := newTestGA(t, 1)
	seed := seedGenome(ga)
	require.Equal(t, 0, seed.Links()[0].Innovation)

	p, err := NewPopulation(4, seed, ga)
	require.NoError(t, err)
	for i, g := range p.species[0].members {
		g.SetFitness(float64(i + 1))
	}
	best := p.Best()
	require.Equal(t, 4.0, best.Fitness())

	next, err := p.Evolve()
	require.NoError(t, err)
	assert.Equal(t, 4, next.Size())
	assert.Equal(t, 1, next.Generation())

	elite := next.Species()[0].Members()[0]
	assert.Equal(t, best.Links(), elite.Links())
	assert.Equal(t, p.species[0].Key, next.Species()[0].Key)
}

func TestEvolveLeavesInputUntouched(t *testing.T) {
	ga := newTestGA(t, 2)
	p := twoSpeciesPopulation(t, ga)
	before := make([][]float64, len(p.species))
	for i, s := range p.species {
		before[i] = fitnesses(s.members)
	}

	_, err := p.Evolve()
	require.NoError(t, err)

	require.Len(t, p.species, 2)
	for i, s := range p.species {
		assert.Equal(t, before[i], fitnesses(s.members))
		assert.Equal(t, 0, s.Staleness())
		assert.Empty(t, s.History())
	}
	assert.Equal(t, 0, p.Generation())
}

func TestEvolveKeepsPopulationSize(t *testing.T) {
	ga := newTestGA(t, 3)
	p := twoSpeciesPopulation(t, ga)

	rng := NewSource(99)
	for gen := 0; gen < 15; gen++ {
		next, err := p.Evolve()
		require.NoError(t, err, "generation %d", gen)
		require.Equal(t, 10, next.Size(), "generation %d", gen)
		for _, g := range next.Genomes() {
			g.SetFitness(0.1 + rng.Float64())
		}
		p = next
	}
}

func TestEvolveRequiresFitness(t *testing.T) {
	ga := newTestGA(t, 1)
	p, err := NewPopulation(4, seedGenome(ga), ga)
	require.NoError(t, err)

	_, err = p.Evolve()
	assert.True(t, errors.Is(err, ErrUnevaluated))
}

func TestEvolveNeverPrunesLastSpecies(t *testing.T) {
	ga := newTestGA(t, 1)
	ga.Config.Stagnation.MaxStagnation = 1
	p, err := NewPopulation(4, seedGenome(ga), ga)
	require.NoError(t, err)
	s := p.species[0]
	s.bestFitness = 10
	s.staleness = 5
	for _, g := range s.members {
		g.SetFitness(1)
	}

	_, err = p.Evolve()
	assert.True(t, errors.Is(err, ErrExtinction))
}

func TestGenomesAreSortedBestFirst(t *testing.T) {
	ga := newTestGA(t, 2)
	p := twoSpeciesPopulation(t, ga)
	genomes := p.Genomes()
	require.Len(t, genomes, 10)
	for i := 1; i < len(genomes); i++ {
		assert.GreaterOrEqual(t, genomes[i-1].Fitness(), genomes[i].Fitness())
	}
	assert.Equal(t, 6.0, p.Best().Fitness())
}

func TestStagnationProtectsBetterHalf(t *testing.T) {
	ga := newTestGA(t, 1)
	st := NewStagnation(&StagnationConfig{MaxStagnation: 2})
	species := []*Species{
		speciesWithFitness(ga, 0, 1),
		speciesWithFitness(ga, 1, 1),
		speciesWithFitness(ga, 2, 1),
		speciesWithFitness(ga, 3, 1),
	}
	for i, s := range species {
		s.bestFitness = float64(10 - i)
		s.staleness = 3
	}
	species[3].staleness = 2
	sortSpecies(species)

	survivors, stagnant, err := st.Update(species)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 3}, speciesKeys(survivors))
	assert.Equal(t, []int{2}, speciesKeys(stagnant))
}

func TestRemoveExtinctIsGreedy(t *testing.T) {
	ga := newTestGA(t, 1)
	r := NewReproduction(ga, 0)
	species := []*Species{
		speciesWithFitness(ga, 0, 10),
		speciesWithFitness(ga, 1, 0.3),
		speciesWithFitness(ga, 2, 0.54),
	}
	for _, s := range species {
		s.Hierarchy()
	}

	// 0.3/10.84 is removed first, which lifts 0.54/10.54 above the threshold.
	survivors, extinct, total, err := r.RemoveExtinct(species)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, speciesKeys(survivors))
	assert.Equal(t, []int{1}, speciesKeys(extinct))
	assert.InDelta(t, 10.54, total, 1e-9)
}

func TestComputeSpawnAmounts(t *testing.T) {
	tests := []struct {
		name     string
		averages []float64
		total    float64
		size     int
		want     []int
	}{
		{"proportional", []float64{3.5, 4}, 7.5, 10, []int{3, 4}},
		{"non-positive total", []float64{0, 0}, 0, 10, []int{4, 4}},
		{"negative share clamped", []float64{5, -1}, 4, 10, []int{8, 0}},
		{"elite overshoot trimmed", []float64{0.9, 0.05, 0.05}, 1, 10, []int{7, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, computeSpawnAmounts(tt.averages, tt.total, tt.size))
		})
	}
}

func speciesKeys(species []*Species) []int {
	keys := make([]int, len(species))
	for i, s := range species {
		keys[i] = s.Key
	}
	return keys
}
