package neat

import (
	"errors"
	"fmt"
	"sort"
)

// ErrExtinction is returned when pruning would remove every species. It means
// the stagnation or extinction thresholds are too aggressive for the current
// number of species.
var ErrExtinction = errors.New("all species pruned")

// Stagnation removes lineages that stopped improving.
type Stagnation struct {
	Config *StagnationConfig
}

// NewStagnation creates a new stagnation manager.
func NewStagnation(config *StagnationConfig) *Stagnation {
	return &Stagnation{Config: config}
}

// sortSpecies orders species by best-ever fitness, best first.
func sortSpecies(species []*Species) {
	sort.SliceStable(species, func(i, j int) bool {
		return fitter(species[i].bestFitness, species[j].bestFitness)
	})
}

// Update removes stagnant species from a list already ranked by sortSpecies.
// Only the worse half is eligible; the better half is kept whatever its
// staleness. The removed species are returned alongside the survivors.
func (st *Stagnation) Update(species []*Species) (survivors, stagnant []*Species, err error) {
	half := len(species) / 2
	survivors = make([]*Species, 0, len(species))
	for i, s := range species {
		if i >= half && s.staleness > st.Config.MaxStagnation {
			stagnant = append(stagnant, s)
			continue
		}
		survivors = append(survivors, s)
	}
	if len(survivors) == 0 && len(species) > 0 {
		return nil, stagnant, fmt.Errorf("%w: %d species stagnant beyond max_stagnation %d",
			ErrExtinction, len(stagnant), st.Config.MaxStagnation)
	}
	return survivors, stagnant, nil
}
