package neat

import (
	"errors"
	"fmt"
)

// ErrUnevaluated is returned by Evolve when a genome still has no fitness.
var ErrUnevaluated = errors.New("genome has no fitness")

// Population is one generation: a target size and the species holding its
// genomes. A Population is never modified by Evolve; each step returns a new one.
type Population struct {
	size       int
	species    []*Species
	generation int
	// nextSpeciesKey is the key handed to the next species founded by an offspring.
	nextSpeciesKey int
	ga             *GeneticAlgorithm
}

// NewPopulation creates the first generation: size copies of seed grouped into a
// single species. The seed links must already carry innovation ids
// (GeneticAlgorithm.Innovate).
func NewPopulation(size int, seed *Genome, ga *GeneticAlgorithm) (*Population, error) {
	if size <= 0 {
		return nil, fmt.Errorf("population size must be positive, got %d", size)
	}
	if seed == nil {
		return nil, fmt.Errorf("seed genome is required")
	}
	r := NewReproduction(ga, 0)
	var species []*Species
	for i := 0; i < size; i++ {
		species = r.insert(seed.Copy(), species)
	}
	return &Population{
		size:           size,
		species:        species,
		nextSpeciesKey: r.NextSpeciesKey,
		ga:             ga,
	}, nil
}

// Evolve performs one generational transition and returns the next generation.
// Every genome must have been assigned a fitness.
//
// The step ranks each species, prunes stagnant species from the worse half, culls
// the survivors, removes species whose share of the total average fitness is
// below the extinction threshold, then refills the population: each survivor
// keeps its elite and breeds its share of offspring, and any remaining slots are
// filled by crossing randomly chosen survivors.
func (p *Population) Evolve() (*Population, error) {
	for _, s := range p.species {
		for _, g := range s.members {
			if !g.Evaluated() {
				return nil, fmt.Errorf("generation %d species %d: %w", p.generation, s.Key, ErrUnevaluated)
			}
		}
	}

	reporters := p.ga.Reporters
	reporters.StartGeneration(p.generation)

	species := make([]*Species, 0, len(p.species))
	for _, s := range p.species {
		c := s.clone()
		c.Hierarchy()
		species = append(species, c)
	}
	sortSpecies(species)

	species, stagnant, err := NewStagnation(&p.ga.Config.Stagnation).Update(species)
	for _, s := range stagnant {
		reporters.SpeciesStagnant(p.generation, s)
	}
	if err != nil {
		return nil, fmt.Errorf("generation %d: %w", p.generation, err)
	}

	for _, s := range species {
		s.Cull()
	}

	r := NewReproduction(p.ga, p.nextSpeciesKey)
	species, extinct, total, err := r.RemoveExtinct(species)
	for _, s := range extinct {
		reporters.SpeciesExtinct(p.generation, s)
	}
	if err != nil {
		return nil, fmt.Errorf("generation %d: %w", p.generation, err)
	}

	next := &Population{
		size:       p.size,
		species:    r.Reproduce(species, total, p.size),
		generation: p.generation + 1,
		ga:         p.ga,
	}
	next.nextSpeciesKey = r.NextSpeciesKey
	reporters.EndGeneration(p.generation, next)
	return next, nil
}

// Genomes returns every genome of the generation, best first. Hosts set the
// fitness of each returned genome before calling Evolve.
func (p *Population) Genomes() []*Genome {
	genomes := make([]*Genome, 0, p.size)
	for _, s := range p.species {
		genomes = append(genomes, s.members...)
	}
	sortByFitness(genomes)
	return genomes
}

// Species returns the species of the generation.
func (p *Population) Species() []*Species {
	return append([]*Species(nil), p.species...)
}

// Size is the number of genomes currently held, summed over species.
func (p *Population) Size() int {
	n := 0
	for _, s := range p.species {
		n += len(s.members)
	}
	return n
}

// TargetSize is the configured population size.
func (p *Population) TargetSize() int { return p.size }

// Generation counts the Evolve calls that led to this population.
func (p *Population) Generation() int { return p.generation }

// GeneticAlgorithm returns the operator set the population evolves with.
func (p *Population) GeneticAlgorithm() *GeneticAlgorithm { return p.ga }

// Best returns the fittest evaluated genome, or nil if none has a fitness yet.
func (p *Population) Best() *Genome {
	var best *Genome
	for _, s := range p.species {
		for _, g := range s.members {
			if g.Evaluated() && (best == nil || g.fitness > best.fitness) {
				best = g
			}
		}
	}
	return best
}

// String returns a one-line summary of the population.
func (p *Population) String() string {
	return fmt.Sprintf("Population(Generation: %d, Size: %d/%d, Species: %d)",
		p.generation, p.Size(), p.size, len(p.species))
}
