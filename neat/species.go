package neat

import (
	"fmt"
	"math"
)

// Species represents a group of genetically similar genomes. Every member was
// compatible with the first member at the time it was inserted.
type Species struct {
	Key int // Lineage identifier, carried by the species an elite seeds.

	members []*Genome
	average float64
	// bestFitness is the best fitness the lineage ever reached, staleness the
	// number of generations since it last improved.
	bestFitness float64
	staleness   int
	history     []float64
	ga          *GeneticAlgorithm
}

// NewSpecies creates a species founded by g.
func NewSpecies(ga *GeneticAlgorithm, key int, g *Genome) *Species {
	return &Species{
		Key:         key,
		members:     []*Genome{g},
		bestFitness: math.Inf(-1),
		average:     math.NaN(),
		ga:          ga,
	}
}

// successor creates the next-generation species of this lineage, seeded by its elite.
func (s *Species) successor() *Species {
	return &Species{
		Key:         s.Key,
		members:     []*Genome{s.Elite()},
		bestFitness: s.bestFitness,
		average:     math.NaN(),
		staleness:   s.staleness,
		history:     append([]float64(nil), s.history...),
		ga:          s.ga,
	}
}

// clone copies the species bookkeeping and member list so a generational step
// can rank and cull without touching the previous population.
func (s *Species) clone() *Species {
	c := *s
	c.members = append([]*Genome(nil), s.members...)
	c.history = append([]float64(nil), s.history...)
	return &c
}

// Insert adds g if it is compatible with the first member and reports whether
// it was accepted.
func (s *Species) Insert(g *Genome) bool {
	if len(s.members) > 0 && !s.ga.SameSpecies(s.members[0], g) {
		return false
	}
	s.members = append(s.members, g)
	return true
}

// Hierarchy ranks members best first, updates the lineage best fitness and
// staleness, and recomputes the average.
func (s *Species) Hierarchy() {
	if len(s.members) == 0 {
		return
	}
	sortByFitness(s.members)
	best := s.members[0].fitness
	if best > s.bestFitness {
		s.bestFitness = best
		s.staleness = 0
	} else {
		s.staleness++
	}
	s.history = append(s.history, best)
	s.computeAverage()
}

// Cull removes members whose fitness lies below k times the average, with k = 2
// when the best member is negative and 0.5 otherwise. Members must already be
// ranked by Hierarchy.
func (s *Species) Cull() {
	if len(s.members) == 0 {
		return
	}
	k := 0.5
	if s.members[0].fitness < 0 {
		k = 2
	}
	cutoff := s.average * k
	kept := s.members[:0]
	for _, g := range s.members {
		if !(g.fitness < cutoff) {
			kept = append(kept, g)
		}
	}
	s.members = kept
	s.computeAverage()
}

// Select runs a tournament over ceil(TournamentRatio * size) distinct members
// and returns the fittest of the sample.
func (s *Species) Select() *Genome {
	n := len(s.members)
	size := int(math.Ceil(float64(n) * s.ga.Config.Reproduction.TournamentRatio))
	indices := NewBound(0, float64(n-1)).RandString(s.ga.rng, size, false)
	var best *Genome
	for _, i := range indices {
		if best == nil || fitter(s.members[i].fitness, best.fitness) {
			best = s.members[i]
		}
	}
	return best
}

// Elite returns a detached copy of the current best member.
func (s *Species) Elite() *Genome {
	return s.members[0].Copy()
}

func (s *Species) computeAverage() {
	if len(s.members) == 0 {
		s.average = math.NaN()
		return
	}
	s.average = Mean(fitnesses(s.members))
}

// Members returns the member genomes in their current order.
func (s *Species) Members() []*Genome { return append([]*Genome(nil), s.members...) }

// Len is the number of members.
func (s *Species) Len() int { return len(s.members) }

// Average is the mean member fitness as of the last Hierarchy or Cull.
func (s *Species) Average() float64 { return s.average }

// BestFitness is the best fitness the lineage has reached.
func (s *Species) BestFitness() float64 { return s.bestFitness }

// Staleness is the number of generations since BestFitness improved.
func (s *Species) Staleness() int { return s.staleness }

// History is the best member fitness recorded at each Hierarchy call.
func (s *Species) History() []float64 { return append([]float64(nil), s.history...) }

// String returns a string representation of the species.
func (s *Species) String() string {
	return fmt.Sprintf("Species(Key: %d, Members: %d, Best: %.4f, Average: %.4f, Staleness: %d)",
		s.Key, len(s.members), s.bestFitness, s.average, s.staleness)
}
