package neat

import (
	"math"
)

// GeneticAlgorithm holds the innovation ledger, the random stream and the
// parameters shared by every operator. Operators act on the genome passed in and
// keep no other per-call state.
type GeneticAlgorithm struct {
	Config    *Config
	Ledger    *Ledger
	Reporters *ReporterSet

	rng     *Source
	weights Bound
}

// NewGeneticAlgorithm creates the operator set. A nil rng is replaced by a Source
// seeded from config.Neat.Seed.
func NewGeneticAlgorithm(config *Config, rng *Source) *GeneticAlgorithm {
	if rng == nil {
		rng = NewSource(config.Neat.Seed)
	}
	return &GeneticAlgorithm{
		Config:    config,
		Ledger:    NewLedger(),
		Reporters: NewReporterSet(),
		rng:       rng,
		weights:   config.Genome.WeightBound(),
	}
}

// Rand exposes the random stream so hosts can draw from the same sequence.
func (ga *GeneticAlgorithm) Rand() *Source { return ga.rng }

// Innovate assigns innovation ids to the seed links. Call it once before the
// first population is built.
func (ga *GeneticAlgorithm) Innovate(links []ConnectionGene) {
	ga.Ledger.InnovateAll(links)
}

// randNode draws a key uniformly from a selection pool.
func (ga *GeneticAlgorithm) randNode(pool []int) (int, bool) {
	if len(pool) == 0 {
		return 0, false
	}
	return pool[NewBound(0, float64(len(pool)-1)).RandInt(ga.rng)], true
}

// --------------------------- Mutation operators ---------------------------

// PointMutate perturbs and re-samples connection weights.
func (ga *GeneticAlgorithm) PointMutate(g *Genome) {
	gc := &ga.Config.Genome
	for i := range g.connections {
		c := &g.connections[i]
		if ga.rng.Chance(gc.WeightPerturbRate) {
			c.Weight += gc.WeightMutatePower * (2*ga.rng.Float64() - 1)
		}
		if ga.rng.Chance(gc.WeightReplaceRate) {
			c.Weight = ga.weights.Rand(ga.rng)
		}
	}
}

// LinkMutate connects a random source to a random target if no gene already
// joins that pair.
func (ga *GeneticAlgorithm) LinkMutate(g *Genome) {
	in, ok := ga.randNode(g.sources)
	if !ok {
		return
	}
	out, ok := ga.randNode(g.targets)
	if !ok {
		return
	}
	ga.addLink(g, in, out)
}

// BiasMutate connects the genome's bias node to a random non-input node.
// Genomes without a bias node are left unchanged.
func (ga *GeneticAlgorithm) BiasMutate(g *Genome) {
	bias, ok := g.firstOfType(BiasNode)
	if !ok {
		return
	}
	out, ok := ga.randNode(g.targets)
	if !ok {
		return
	}
	ga.addLink(g, bias.Key, out)
}

func (ga *GeneticAlgorithm) addLink(g *Genome, in, out int) {
	link := NewConnectionGene(in, out, ga.weights.Rand(ga.rng), true)
	if g.HasLink(in, out) {
		return
	}
	link.Innovation = ga.Ledger.Innovate(link)
	g.addConnection(link)
}

// NodeMutate splits a random enabled link with a new hidden node. Picking a
// disabled link is a no-op that consumes no innovation ids.
func (ga *GeneticAlgorithm) NodeMutate(g *Genome) {
	if len(g.connections) == 0 {
		return
	}
	idx := NewBound(0, float64(len(g.connections)-1)).RandInt(ga.rng)
	split := &g.connections[idx]
	if !split.Enabled {
		return
	}
	split.Enabled = false

	node := NewNodeGene(g.nextNodeKey(), HiddenNode)
	in := NewConnectionGene(split.In(), node.Key, 1.0, true)
	out := NewConnectionGene(node.Key, split.Out(), split.Weight, true)
	in.Innovation = ga.Ledger.Innovate(in)
	out.Innovation = ga.Ledger.Innovate(out)
	g.splitConnection(node, in, out)
}

// ToggleMutate flips enable flags: enabled links are disabled with DisableRate,
// disabled links re-enabled with EnableRate.
func (ga *GeneticAlgorithm) ToggleMutate(g *Genome) {
	gc := &ga.Config.Genome
	for i := range g.connections {
		c := &g.connections[i]
		if c.Enabled {
			if ga.rng.Chance(gc.DisableRate) {
				c.Enabled = false
			}
		} else if ga.rng.Chance(gc.EnableRate) {
			c.Enabled = true
		}
	}
}

// Mutate runs every operator category according to its configured probability.
func (ga *GeneticAlgorithm) Mutate(g *Genome) {
	gc := &ga.Config.Genome
	ga.repeat(gc.WeightMutateRate, g, ga.PointMutate)
	ga.repeat(gc.ToggleProb, g, ga.ToggleMutate)
	ga.repeat(gc.ConnAddProb, g, ga.LinkMutate)
	ga.repeat(gc.BiasAddProb, g, ga.BiasMutate)
	ga.repeat(gc.NodeAddProb, g, ga.NodeMutate)
}

// repeat applies op floor(p) times, then once more with probability p-floor(p).
func (ga *GeneticAlgorithm) repeat(p float64, g *Genome, op func(*Genome)) {
	whole := math.Floor(p)
	for i := 0; i < int(whole); i++ {
		op(g)
	}
	if frac := p - whole; frac > 0 && ga.rng.Chance(frac) {
		op(g)
	}
}
