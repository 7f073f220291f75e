package store

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baldhumanity/neat-innov/neat"
)

func testPopulation(t *testing.T) *neat.Population {
	t.Helper()
	ga := neat.NewGeneticAlgorithm(neat.DefaultConfig(), neat.NewSource(11))
	links := []neat.ConnectionGene{neat.NewConnectionGene(0, 2, 0.5, true)}
	ga.Innovate(links)
	seed := neat.NewGenome([]neat.NodeGene{
		neat.NewNodeGene(0, neat.InputNode),
		neat.NewNodeGene(1, neat.BiasNode),
		neat.NewNodeGene(2, neat.OutputNode),
	}, links)
	p, err := neat.NewPopulation(8, seed, ga)
	require.NoError(t, err)
	for i, g := range p.Genomes() {
		g.SetFitness(float64(i))
	}
	next, err := p.Evolve()
	require.NoError(t, err)
	return next
}

func TestCaptureRestore(t *testing.T) {
	p := testPopulation(t)
	snapshot, err := Capture("run-a", p)
	require.NoError(t, err)
	assert.Equal(t, "run-a", snapshot.RunID)
	assert.Equal(t, 1, snapshot.Generation)
	assert.Equal(t, len(p.Species()), snapshot.Species)
	assert.Equal(t, 7.0, snapshot.BestFitness)
	assert.NotEmpty(t, snapshot.Payload)

	restored, err := Restore(snapshot)
	require.NoError(t, err)
	assert.Equal(t, p.Generation(), restored.Generation())
	assert.Equal(t, p.Size(), restored.Size())
	assert.Equal(t, p.String(), restored.String())
}

func TestCaptureWithoutLineageFitness(t *testing.T) {
	ga := neat.NewGeneticAlgorithm(neat.DefaultConfig(), neat.NewSource(1))
	seed := neat.NewGenome([]neat.NodeGene{
		neat.NewNodeGene(0, neat.InputNode),
		neat.NewNodeGene(1, neat.OutputNode),
	}, nil)
	p, err := neat.NewPopulation(3, seed, ga)
	require.NoError(t, err)

	snapshot, err := Capture("fresh", p)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(snapshot.BestFitness))
}

func TestRestoreRejectsGarbage(t *testing.T) {
	_, err := Restore(Snapshot{RunID: "x", Payload: []byte("not a population")})
	assert.Error(t, err)
}

func TestNewRunID(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

// exerciseStore runs the behaviour every backend shares.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.ListRuns(ctx)
	require.Error(t, err, "store used before Init")

	require.NoError(t, s.Init(ctx))
	created := time.Unix(1700000000, 0).UTC()
	for _, snap := range []Snapshot{
		{RunID: "b", Generation: 0, Species: 1, BestFitness: 1, CreatedAt: created, Payload: []byte{1}},
		{RunID: "b", Generation: 2, Species: 3, BestFitness: 2.5, CreatedAt: created, Payload: []byte{2}},
		{RunID: "b", Generation: 1, Species: 2, BestFitness: math.NaN(), CreatedAt: created, Payload: []byte{3}},
		{RunID: "a", Generation: 0, Species: 1, BestFitness: 0, CreatedAt: created, Payload: []byte{4}},
	} {
		require.NoError(t, s.SaveSnapshot(ctx, snap))
	}

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, runs)

	latest, ok, err := s.LatestSnapshot(ctx, "b")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, latest.Generation)
	assert.Equal(t, 3, latest.Species)
	assert.Equal(t, 2.5, latest.BestFitness)
	assert.Equal(t, []byte{2}, latest.Payload)
	assert.True(t, created.Equal(latest.CreatedAt))

	mid, ok, err := s.LoadSnapshot(ctx, "b", 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, math.IsNaN(mid.BestFitness))

	_, ok, err = s.LoadSnapshot(ctx, "b", 9)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = s.LatestSnapshot(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	// Saving the same generation again replaces it.
	require.NoError(t, s.SaveSnapshot(ctx, Snapshot{RunID: "a", Generation: 0, Species: 5, CreatedAt: created, Payload: []byte{9}}))
	replaced, ok, err := s.LoadSnapshot(ctx, "a", 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 5, replaced.Species)
	assert.Equal(t, []byte{9}, replaced.Payload)
}
