package neat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestGA(t *testing.T, seed uint64) *GeneticAlgorithm {
	t.Helper()
	config := DefaultConfig()
	require.NoError(t, config.Validate())
	return NewGeneticAlgorithm(config, NewSource(seed))
}

// seedGenome is two inputs (0, 1) and one output (2) joined by 0->2 with weight 1.
func seedGenome(ga *GeneticAlgorithm) *Genome {
	nodes := []NodeGene{
		NewNodeGene(0, InputNode),
		NewNodeGene(1, InputNode),
		NewNodeGene(2, OutputNode),
	}
	links := []ConnectionGene{NewConnectionGene(0, 2, 1.0, true)}
	ga.Innovate(links)
	return NewGenome(nodes, links)
}

// linkWithInnovation builds a gene carrying an explicit innovation id.
func linkWithInnovation(in, out, innovation int, weight float64) ConnectionGene {
	c := NewConnectionGene(in, out, weight, true)
	c.Innovation = innovation
	return c
}

func innovations(g *Genome) []int {
	ids := make([]int, 0, g.NumLinks())
	for _, c := range g.Links() {
		ids = append(ids, c.Innovation)
	}
	return ids
}

// evolvedGenomes grows n genomes from the seed with heavy structural mutation.
func evolvedGenomes(ga *GeneticAlgorithm, n, rounds int) []*Genome {
	seed := seedGenome(ga)
	genomes := make([]*Genome, n)
	for i := range genomes {
		g := seed.Copy()
		for r := 0; r < rounds; r++ {
			ga.LinkMutate(g)
			ga.NodeMutate(g)
			ga.PointMutate(g)
			ga.ToggleMutate(g)
		}
		genomes[i] = g
	}
	return genomes
}
