package neat

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"io"
	"os"
)

// GenomeSaveData is the persisted form of a Genome.
type GenomeSaveData struct {
	Nodes       []NodeGene
	Connections []ConnectionGene
	Fitness     float64
}

// SpeciesSaveData is the persisted form of a Species and its lineage.
type SpeciesSaveData struct {
	Key         int
	Members     []GenomeSaveData
	Average     float64
	BestFitness float64
	Staleness   int
	History     []float64
}

// PopulationSaveData holds everything needed to resume a run: the generation,
// the innovation ledger, the configuration and the random stream state.
type PopulationSaveData struct {
	Size           int
	Generation     int
	NextSpeciesKey int
	Species        []SpeciesSaveData

	Innovation int
	History    map[int]map[int]int

	Config    Config
	RandState []byte
}

// EncodePopulation writes a gzip-compressed gob snapshot of p to w.
func EncodePopulation(w io.Writer, p *Population) error {
	randState, err := p.ga.rng.MarshalBinary()
	if err != nil {
		return fmt.Errorf("failed to marshal random state: %w", err)
	}
	saveData := PopulationSaveData{
		Size:           p.size,
		Generation:     p.generation,
		NextSpeciesKey: p.nextSpeciesKey,
		Species:        make([]SpeciesSaveData, 0, len(p.species)),
		Innovation:     p.ga.Ledger.Current(),
		History:        p.ga.Ledger.snapshot(),
		Config:         *p.ga.Config,
		RandState:      randState,
	}
	for _, s := range p.species {
		sd := SpeciesSaveData{
			Key:         s.Key,
			Members:     make([]GenomeSaveData, 0, len(s.members)),
			Average:     s.average,
			BestFitness: s.bestFitness,
			Staleness:   s.staleness,
			History:     s.history,
		}
		for _, g := range s.members {
			sd.Members = append(sd.Members, GenomeSaveData{
				Nodes:       g.nodes,
				Connections: g.connections,
				Fitness:     g.fitness,
			})
		}
		saveData.Species = append(saveData.Species, sd)
	}

	gzWriter := gzip.NewWriter(w)
	if err := gob.NewEncoder(gzWriter).Encode(saveData); err != nil {
		gzWriter.Close()
		return fmt.Errorf("failed to encode population data: %w", err)
	}
	if err := gzWriter.Close(); err != nil {
		return fmt.Errorf("failed to flush checkpoint: %w", err)
	}
	return nil
}

// DecodePopulation reads a snapshot written by EncodePopulation. The returned
// population evolves with a fresh GeneticAlgorithm rebuilt from the saved
// configuration, ledger and random state; reporters must be added again.
func DecodePopulation(r io.Reader) (*Population, error) {
	gzReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader for checkpoint: %w", err)
	}
	defer gzReader.Close()

	var saveData PopulationSaveData
	if err := gob.NewDecoder(gzReader).Decode(&saveData); err != nil {
		return nil, fmt.Errorf("failed to decode population data from checkpoint: %w", err)
	}

	config := saveData.Config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("checkpoint holds an invalid configuration: %w", err)
	}
	rng := NewSource(0)
	if err := rng.UnmarshalBinary(saveData.RandState); err != nil {
		return nil, err
	}
	ga := NewGeneticAlgorithm(&config, rng)
	ga.Ledger = restoreLedger(saveData.Innovation, saveData.History)

	p := &Population{
		size:           saveData.Size,
		generation:     saveData.Generation,
		nextSpeciesKey: saveData.NextSpeciesKey,
		species:        make([]*Species, 0, len(saveData.Species)),
		ga:             ga,
	}
	for _, sd := range saveData.Species {
		s := &Species{
			Key:         sd.Key,
			members:     make([]*Genome, 0, len(sd.Members)),
			average:     sd.Average,
			bestFitness: sd.BestFitness,
			staleness:   sd.Staleness,
			history:     sd.History,
			ga:          ga,
		}
		for _, gd := range sd.Members {
			g := NewGenome(gd.Nodes, gd.Connections)
			g.fitness = gd.Fitness
			s.members = append(s.members, g)
		}
		p.species = append(p.species, s)
	}
	return p, nil
}

// SaveCheckpoint saves the population to a file.
func (p *Population) SaveCheckpoint(filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create checkpoint file '%s': %w", filePath, err)
	}
	defer file.Close()

	if err := EncodePopulation(file, p); err != nil {
		return err
	}
	return file.Close()
}

// LoadCheckpoint loads a population saved with SaveCheckpoint.
func LoadCheckpoint(checkpointPath string) (*Population, error) {
	file, err := os.Open(checkpointPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open checkpoint file '%s': %w", checkpointPath, err)
	}
	defer file.Close()

	p, err := DecodePopulation(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load checkpoint '%s': %w", checkpointPath, err)
	}
	return p, nil
}
