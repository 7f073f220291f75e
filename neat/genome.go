package neat

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Genome represents an individual organism in the population.
// Nodes are kept sorted by key and connections sorted by innovation id; every
// operation that changes structure restores that order before returning.
type Genome struct {
	nodes       []NodeGene
	connections []ConnectionGene
	fitness     float64

	// sources holds the keys of every non-Output node (valid link sources),
	// targets the keys of every non-Input node (valid link targets).
	sources []int
	targets []int
}

// NewGenome builds a genome from node and connection descriptors. The slices are
// copied. A node key given more than once keeps its first definition.
func NewGenome(nodes []NodeGene, connections []ConnectionGene) *Genome {
	g := &Genome{
		nodes:       make([]NodeGene, 0, len(nodes)),
		connections: make([]ConnectionGene, len(connections)),
		fitness:     math.NaN(),
	}
	seen := make(map[int]bool, len(nodes))
	for _, n := range nodes {
		if seen[n.Key] {
			continue
		}
		seen[n.Key] = true
		g.nodes = append(g.nodes, n)
	}
	copy(g.connections, connections)
	g.sortNodes()
	g.sortConnections()
	g.derivePools()
	return g
}

// derivePools partitions the nodes into the source and target selection pools.
func (g *Genome) derivePools() {
	g.sources = g.sources[:0]
	g.targets = g.targets[:0]
	for _, n := range g.nodes {
		switch n.Type {
		case InputNode:
			g.sources = append(g.sources, n.Key)
		case OutputNode:
			g.targets = append(g.targets, n.Key)
		case BiasNode, HiddenNode:
			g.sources = append(g.sources, n.Key)
			g.targets = append(g.targets, n.Key)
		default:
			panic(fmt.Sprintf("genome: unknown node type %v for node %d", n.Type, n.Key))
		}
	}
}

func (g *Genome) sortNodes() {
	sort.SliceStable(g.nodes, func(i, j int) bool {
		return g.nodes[i].Key < g.nodes[j].Key
	})
}

func (g *Genome) sortConnections() {
	sort.SliceStable(g.connections, func(i, j int) bool {
		return g.connections[i].Innovation < g.connections[j].Innovation
	})
}

// Copy returns a deep copy of the genome with an unset fitness.
func (g *Genome) Copy() *Genome {
	return NewGenome(g.nodes, g.connections)
}

// Nodes returns a copy of the node genes, sorted by key.
func (g *Genome) Nodes() []NodeGene {
	return append([]NodeGene(nil), g.nodes...)
}

// Links returns a copy of the connection genes, sorted by innovation id.
func (g *Genome) Links() []ConnectionGene {
	return append([]ConnectionGene(nil), g.connections...)
}

// NumNodes is the number of node genes.
func (g *Genome) NumNodes() int { return len(g.nodes) }

// NumLinks is the number of connection genes.
func (g *Genome) NumLinks() int { return len(g.connections) }

// Fitness returns the fitness score, NaN until evaluated.
func (g *Genome) Fitness() float64 { return g.fitness }

// SetFitness records the score assigned by the host.
func (g *Genome) SetFitness(fitness float64) { g.fitness = fitness }

// Evaluated reports whether a fitness has been assigned.
func (g *Genome) Evaluated() bool { return !math.IsNaN(g.fitness) }

// TopInnovation returns the highest innovation id carried, or NoInnovation when
// the genome has no connections.
func (g *Genome) TopInnovation() int {
	if len(g.connections) == 0 {
		return NoInnovation
	}
	return g.connections[len(g.connections)-1].Innovation
}

// HasLink reports whether a gene already connects in to out.
func (g *Genome) HasLink(in, out int) bool {
	key := ConnectionKey{InNodeID: in, OutNodeID: out}
	for _, c := range g.connections {
		if c.Key == key {
			return true
		}
	}
	return false
}

// Node looks up a node gene by key.
func (g *Genome) Node(key int) (NodeGene, bool) {
	i := sort.Search(len(g.nodes), func(i int) bool { return g.nodes[i].Key >= key })
	if i < len(g.nodes) && g.nodes[i].Key == key {
		return g.nodes[i], true
	}
	return NodeGene{}, false
}

// firstOfType returns the first node (lowest key) of the given type.
func (g *Genome) firstOfType(t NodeType) (NodeGene, bool) {
	for _, n := range g.nodes {
		if n.Type == t {
			return n, true
		}
	}
	return NodeGene{}, false
}

// nextNodeKey returns a key not used by any node in the genome.
func (g *Genome) nextNodeKey() int {
	if len(g.nodes) == 0 {
		return 0
	}
	return g.nodes[len(g.nodes)-1].Key + 1
}

// addConnection appends a gene and restores innovation order.
func (g *Genome) addConnection(c ConnectionGene) {
	g.connections = append(g.connections, c)
	g.sortConnections()
}

// splitConnection performs the structural part of node insertion atomically:
// the node and both of its links are added together.
func (g *Genome) splitConnection(node NodeGene, in, out ConnectionGene) {
	g.nodes = append(g.nodes, node)
	g.sortNodes()
	g.connections = append(g.connections, in, out)
	g.sortConnections()
	g.derivePools()
}

// String returns a string representation of the genome.
func (g *Genome) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Genome(Fitness: %.4f, Nodes: %d, Links: %d)\n", g.fitness, len(g.nodes), len(g.connections))
	for _, n := range g.nodes {
		sb.WriteString("  ")
		sb.WriteString(n.String())
		sb.WriteByte('\n')
	}
	for _, c := range g.connections {
		sb.WriteString("  ")
		sb.WriteString(c.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// sortByFitness orders genomes best first. Unevaluated genomes sink to the end.
func sortByFitness(genomes []*Genome) {
	sort.SliceStable(genomes, func(i, j int) bool {
		return fitter(genomes[i].fitness, genomes[j].fitness)
	})
}

// fitter reports whether fitness a ranks strictly above b.
func fitter(a, b float64) bool {
	if math.IsNaN(b) {
		return !math.IsNaN(a)
	}
	return a > b
}
