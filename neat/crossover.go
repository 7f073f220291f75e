package neat

// Crossover creates a child genome from two parents.
//
// The child's nodes are the union of both parents' nodes by key; when both
// parents define a key the fitter parent's copy is kept. Links follow the fitter
// parent: a gene matched by innovation id in the other parent is inherited from
// either parent at random (disabled unless the re-enable trial succeeds when
// either copy is disabled), an unmatched gene is inherited from the fitter parent
// as-is. Genes unique to the weaker parent are dropped.
func (ga *GeneticAlgorithm) Crossover(parent1, parent2 *Genome) *Genome {
	// Ensure parent1 is the fitter one; ties keep the argument order.
	if fitter(parent2.fitness, parent1.fitness) {
		parent1, parent2 = parent2, parent1
	}

	nodes := make([]NodeGene, 0, len(parent1.nodes)+len(parent2.nodes))
	nodes = append(nodes, parent1.nodes...)
	nodes = append(nodes, parent2.nodes...)

	other := innovationIndex(parent2.connections)
	disableRate := ga.Config.Reproduction.CrossoverDisableRate
	connections := make([]ConnectionGene, 0, len(parent1.connections))
	for _, conn1 := range parent1.connections {
		conn2, exists := other[conn1.Innovation]
		if !exists {
			// Disjoint or excess gene from the fitter parent: copy directly.
			connections = append(connections, conn1)
			continue
		}
		child := conn1
		if ga.rng.Float64() >= 0.5 {
			child = conn2
		}
		if !conn1.Enabled || !conn2.Enabled {
			child.Enabled = ga.rng.Float64() > disableRate
		}
		connections = append(connections, child)
	}

	return NewGenome(nodes, connections)
}

// Breed produces one mutated offspring from two parent species. Distinct
// species always cross over; a species bred with itself crosses over with
// CrossoverRate and otherwise clones one of the two selected parents.
func (ga *GeneticAlgorithm) Breed(s1, s2 *Species) *Genome {
	g1 := s1.Select()
	g2 := s2.Select()
	var child *Genome
	if s1 != s2 || ga.rng.Chance(ga.Config.Reproduction.CrossoverRate) {
		child = ga.Crossover(g1, g2)
	} else if ga.rng.Float64() < 0.5 {
		child = g1.Copy()
	} else {
		child = g2.Copy()
	}
	ga.Mutate(child)
	return child
}
