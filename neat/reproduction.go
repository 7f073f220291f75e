package neat

import (
	"fmt"
	"math"
)

// Reproduction builds the species groupings of the next generation.
type Reproduction struct {
	Config         *ReproductionConfig
	NextSpeciesKey int // Key handed to the next species founded by an offspring.

	ga *GeneticAlgorithm
}

// NewReproduction creates a new reproduction manager.
func NewReproduction(ga *GeneticAlgorithm, nextSpeciesKey int) *Reproduction {
	return &Reproduction{
		Config:         &ga.Config.Reproduction,
		NextSpeciesKey: nextSpeciesKey,
		ga:             ga,
	}
}

// getNextKey gets the next available species key and increments the internal counter.
func (r *Reproduction) getNextKey() int {
	key := r.NextSpeciesKey
	r.NextSpeciesKey++
	return key
}

// insert places g in the first compatible species or founds a new one.
func (r *Reproduction) insert(g *Genome, species []*Species) []*Species {
	for _, s := range species {
		if s.Insert(g) {
			return species
		}
	}
	return append(species, NewSpecies(r.ga, r.getNextKey(), g))
}

// RemoveExtinct drops species whose share of the summed average fitness falls
// below ExtinctionThreshold. The pass is greedy: the total shrinks as each
// species is removed, so the outcome depends on the order of the list and is not
// a fixed point.
func (r *Reproduction) RemoveExtinct(species []*Species) (survivors, extinct []*Species, total float64, err error) {
	for _, s := range species {
		total += s.average
	}
	survivors = make([]*Species, 0, len(species))
	for _, s := range species {
		if s.average/total < r.Config.ExtinctionThreshold {
			total -= s.average
			extinct = append(extinct, s)
			continue
		}
		survivors = append(survivors, s)
	}
	if len(survivors) == 0 && len(species) > 0 {
		return nil, extinct, 0, fmt.Errorf("%w: %d species below extinction_threshold %.3f",
			ErrExtinction, len(extinct), r.Config.ExtinctionThreshold)
	}
	return survivors, extinct, total, nil
}

// computeSpawnAmounts calculates the number of offspring each species breeds on
// top of its elite: floor(average/total * popSize) - 1, never negative. A
// non-positive total falls back to equal shares. When the elites of species with
// a negligible share would push the count past popSize, the largest allotments
// give up the difference.
func computeSpawnAmounts(averages []float64, total float64, popSize int) []int {
	spawnAmounts := make([]int, len(averages))
	produced := 0
	for i, avg := range averages {
		share := 1.0 / float64(len(averages))
		if total > 0 {
			share = avg / total
		}
		n := int(math.Floor(share*float64(popSize))) - 1
		spawnAmounts[i] = max(n, 0)
		produced += spawnAmounts[i] + 1
	}
	for produced > popSize {
		largest := 0
		for i, n := range spawnAmounts {
			if n > spawnAmounts[largest] {
				largest = i
			}
		}
		if spawnAmounts[largest] == 0 {
			break
		}
		spawnAmounts[largest]--
		produced--
	}
	return spawnAmounts
}

// Reproduce breeds the next generation from culled survivors whose averages sum
// to total. Each survivor seeds a successor species with its elite and breeds
// its allotted offspring internally; remaining slots are filled with hybrids of
// two uniformly chosen survivors.
func (r *Reproduction) Reproduce(survivors []*Species, total float64, popSize int) []*Species {
	averages := make([]float64, len(survivors))
	for i, s := range survivors {
		averages[i] = s.average
	}
	spawnAmounts := computeSpawnAmounts(averages, total, popSize)

	posterity := make([]*Species, 0, len(survivors))
	var offspring []*Genome
	produced := 0
	for i, s := range survivors {
		for j := 0; j < spawnAmounts[i]; j++ {
			offspring = append(offspring, r.ga.Breed(s, s))
		}
		posterity = append(posterity, s.successor())
		produced += spawnAmounts[i] + 1
	}
	for _, child := range offspring {
		posterity = r.insert(child, posterity)
	}

	pick := NewBound(0, float64(len(survivors)-1))
	var hybrids []*Genome
	for ; produced < popSize; produced++ {
		s1 := survivors[pick.RandInt(r.ga.rng)]
		s2 := survivors[pick.RandInt(r.ga.rng)]
		hybrids = append(hybrids, r.ga.Breed(s1, s2))
	}
	for _, hybrid := range hybrids {
		posterity = r.insert(hybrid, posterity)
	}
	return posterity
}
