package neat

import (
	"math"
)

// innovationIndex maps innovation id -> gene for alignment.
func innovationIndex(connections []ConnectionGene) map[int]ConnectionGene {
	index := make(map[int]ConnectionGene, len(connections))
	for _, c := range connections {
		index[c.Innovation] = c
	}
	return index
}

// alignment counts the non-matching genes of two genomes. A gene unmatched in the
// other genome is excess when its id is above the other's top innovation and
// disjoint otherwise.
func alignment(g1, g2 *Genome) (disjoint, excess int) {
	count := func(a, b *Genome) {
		top := b.TopInnovation()
		index := innovationIndex(b.connections)
		for _, c := range a.connections {
			if _, ok := index[c.Innovation]; ok {
				continue
			}
			if c.Innovation > top {
				excess++
			} else {
				disjoint++
			}
		}
	}
	count(g1, g2)
	count(g2, g1)
	return disjoint, excess
}

// CountDisjoint counts unmatched genes inside the overlapping innovation range.
func CountDisjoint(g1, g2 *Genome) int {
	if len(g1.connections) == 0 || len(g2.connections) == 0 {
		return 0
	}
	disjoint, _ := alignment(g1, g2)
	return disjoint
}

// CountExcess counts unmatched genes beyond the other genome's top innovation.
// When one genome is empty every gene of the other is excess.
func CountExcess(g1, g2 *Genome) int {
	empty1, empty2 := len(g1.connections) == 0, len(g2.connections) == 0
	switch {
	case empty1 && empty2:
		return 0
	case empty1:
		return len(g2.connections)
	case empty2:
		return len(g1.connections)
	}
	_, excess := alignment(g1, g2)
	return excess
}

// WeightDifference is the mean absolute weight delta over matching genes.
func WeightDifference(g1, g2 *Genome) float64 {
	if len(g1.connections) == 0 || len(g2.connections) == 0 {
		return 0.0
	}
	index := innovationIndex(g2.connections)
	sum := 0.0
	matching := 0
	for _, c1 := range g1.connections {
		if c2, ok := index[c1.Innovation]; ok {
			sum += math.Abs(c1.Weight - c2.Weight)
			matching++
		}
	}
	if matching == 0 {
		return 0.0
	}
	return sum / float64(matching)
}

// Dissimilarity is the fraction of genes that do not match between the genomes.
// It is not used by the species predicate.
func Dissimilarity(g1, g2 *Genome) float64 {
	empty1, empty2 := len(g1.connections) == 0, len(g2.connections) == 0
	if empty1 && empty2 {
		return 0.0
	}
	if empty1 || empty2 {
		return 1.0
	}
	index := innovationIndex(g1.connections)
	genes := len(g1.connections)
	matching := 0
	for _, c := range g2.connections {
		if _, ok := index[c.Innovation]; ok {
			matching++
		} else {
			genes++
		}
	}
	return 1.0 - float64(matching)/float64(genes)
}

// Distance calculates the compatibility distance between two genomes.
// d = Zd*D/N + Ze*E/N + Zw*W, with N = 1 for genomes within the leniency size.
func (ga *GeneticAlgorithm) Distance(g1, g2 *Genome) float64 {
	sc := &ga.Config.SpeciesSet
	n := max(len(g1.connections), len(g2.connections))
	if n <= sc.CompatibilityLeniency {
		n = 1
	}
	N := float64(n)
	d := sc.CompatibilityDisjointCoefficient * float64(CountDisjoint(g1, g2)) / N
	d += sc.CompatibilityExcessCoefficient * float64(CountExcess(g1, g2)) / N
	d += sc.CompatibilityWeightCoefficient * WeightDifference(g1, g2)
	return d
}

// SameSpecies reports whether two genomes are compatible.
func (ga *GeneticAlgorithm) SameSpecies(g1, g2 *Genome) bool {
	return ga.Distance(g1, g2) < ga.Config.SpeciesSet.CompatibilityThreshold
}
