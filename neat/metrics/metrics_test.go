package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baldhumanity/neat-innov/neat"
)

func gathered(t *testing.T, reg *prometheus.Registry) map[string]float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	values := make(map[string]float64, len(families))
	for _, f := range families {
		m := f.GetMetric()[0]
		if g := m.GetGauge(); g != nil {
			values[f.GetName()] = g.GetValue()
		}
		if c := m.GetCounter(); c != nil {
			values[f.GetName()] = c.GetValue()
		}
	}
	return values
}

func TestReporterTracksGenerations(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := NewReporter(reg)
	require.NoError(t, err)

	config := neat.DefaultConfig()
	ga := neat.NewGeneticAlgorithm(config, neat.NewSource(3))
	ga.Reporters.Add(r)

	links := []neat.ConnectionGene{neat.NewConnectionGene(0, 2, 1, true)}
	ga.Innovate(links)
	seed := neat.NewGenome([]neat.NodeGene{
		neat.NewNodeGene(0, neat.InputNode),
		neat.NewNodeGene(1, neat.InputNode),
		neat.NewNodeGene(2, neat.OutputNode),
	}, links)
	pop, err := neat.NewPopulation(6, seed, ga)
	require.NoError(t, err)

	for gen := 0; gen < 3; gen++ {
		for i, g := range pop.Genomes() {
			g.SetFitness(float64(i + 1))
		}
		pop, err = pop.Evolve()
		require.NoError(t, err)
	}

	best := 0.0
	for _, s := range pop.Species() {
		if s.BestFitness() > best {
			best = s.BestFitness()
		}
	}

	values := gathered(t, reg)
	assert.Equal(t, 3.0, values["neat_generations_total"])
	assert.Equal(t, 3.0, values["neat_generation"])
	assert.Equal(t, 6.0, values["neat_population_size"])
	assert.Equal(t, float64(len(pop.Species())), values["neat_species"])
	assert.Equal(t, best, values["neat_best_fitness"])
	assert.Equal(t, float64(ga.Ledger.Current()), values["neat_innovation"])
	assert.Contains(t, values, "neat_species_extinct_total")
}

func TestNewReporterRejectsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewReporter(reg)
	require.NoError(t, err)
	_, err = NewReporter(reg)
	assert.Error(t, err)
}
