package neat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenomeSortsAndDeduplicates(t *testing.T) {
	nodes := []NodeGene{
		NewNodeGene(3, OutputNode),
		NewNodeGene(0, InputNode),
		NewNodeGeneWithThreshold(2, BiasNode, 0.5),
		NewNodeGene(1, InputNode),
		NewNodeGene(0, HiddenNode), // duplicate key, dropped
	}
	links := []ConnectionGene{
		linkWithInnovation(1, 3, 4, 0.2),
		linkWithInnovation(0, 3, 1, 0.1),
		linkWithInnovation(2, 3, 2, 0.3),
	}
	g := NewGenome(nodes, links)

	keys := make([]int, 0)
	for _, n := range g.Nodes() {
		keys = append(keys, n.Key)
	}
	assert.Equal(t, []int{0, 1, 2, 3}, keys)
	n0, ok := g.Node(0)
	require.True(t, ok)
	assert.Equal(t, InputNode, n0.Type)

	assert.Equal(t, []int{1, 2, 4}, innovations(g))
	assert.Equal(t, 4, g.TopInnovation())
	assert.True(t, math.IsNaN(g.Fitness()))
	assert.False(t, g.Evaluated())
}

func TestGenomeSelectionPools(t *testing.T) {
	g := NewGenome([]NodeGene{
		NewNodeGene(0, InputNode),
		NewNodeGene(1, BiasNode),
		NewNodeGene(2, OutputNode),
		NewNodeGene(3, HiddenNode),
	}, nil)
	assert.Equal(t, []int{0, 1, 3}, g.sources)
	assert.Equal(t, []int{1, 2, 3}, g.targets)
	assert.Equal(t, NoInnovation, g.TopInnovation())
}

func TestGenomeUnknownNodeTypePanics(t *testing.T) {
	assert.Panics(t, func() {
		NewGenome([]NodeGene{{Key: 0, Type: NodeType(42)}}, nil)
	})
}

func TestGenomeCopyIsDetached(t *testing.T) {
	ga := newTestGA(t, 1)
	g := seedGenome(ga)
	g.SetFitness(3)

	c := g.Copy()
	assert.Equal(t, g.Links(), c.Links())
	assert.Equal(t, g.Nodes(), c.Nodes())
	assert.False(t, c.Evaluated())

	ga.NodeMutate(c)
	assert.Equal(t, 1, g.NumLinks())
	assert.Equal(t, 3, g.NumNodes())
	assert.Equal(t, 3, c.NumLinks())
}

func TestGeneIdentityIgnoresAttributes(t *testing.T) {
	a := linkWithInnovation(0, 2, 0, 1.0)
	b := linkWithInnovation(0, 2, 7, -3.0)
	b.Enabled = false
	assert.True(t, a.Same(b))
	assert.False(t, a.Same(NewConnectionGene(2, 0, 1.0, true)))

	assert.True(t, NewNodeGene(1, InputNode).Same(NewNodeGeneWithThreshold(1, HiddenNode, 0.3)))
}

func TestParseNodeType(t *testing.T) {
	for _, nt := range []NodeType{InputNode, OutputNode, BiasNode, HiddenNode} {
		parsed, err := ParseNodeType(nt.String())
		require.NoError(t, err)
		assert.Equal(t, nt, parsed)
	}
	_, err := ParseNodeType("recurrent")
	assert.Error(t, err)
}

func TestSortByFitnessPutsUnevaluatedLast(t *testing.T) {
	ga := newTestGA(t, 1)
	seed := seedGenome(ga)
	genomes := []*Genome{seed.Copy(), seed.Copy(), seed.Copy(), seed.Copy()}
	genomes[0].SetFitness(1)
	genomes[2].SetFitness(5)
	genomes[3].SetFitness(-2)

	sortByFitness(genomes)
	assert.Equal(t, 5.0, genomes[0].Fitness())
	assert.Equal(t, 1.0, genomes[1].Fitness())
	assert.Equal(t, -2.0, genomes[2].Fitness())
	assert.False(t, genomes[3].Evaluated())
}
