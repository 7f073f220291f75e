// Package metrics exports evolution progress as Prometheus metrics.
package metrics

import (
	"fmt"
	"math"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/baldhumanity/neat-innov/neat"
)

// Reporter is a neat.Reporter that updates Prometheus collectors.
type Reporter struct {
	generation  prometheus.Gauge
	species     prometheus.Gauge
	size        prometheus.Gauge
	best        prometheus.Gauge
	mean        prometheus.Gauge
	innovation  prometheus.Gauge
	stagnant    prometheus.Counter
	extinct     prometheus.Counter
	generations prometheus.Counter
}

// NewReporter creates the collectors and registers them with reg.
func NewReporter(reg prometheus.Registerer) (*Reporter, error) {
	r := &Reporter{
		generation: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "neat_generation", Help: "Generation of the most recent population.",
		}),
		species: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "neat_species", Help: "Number of species in the most recent population.",
		}),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "neat_population_size", Help: "Number of genomes in the most recent population.",
		}),
		best: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "neat_best_fitness", Help: "Best lineage fitness reached so far.",
		}),
		mean: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "neat_species_best_fitness_mean", Help: "Mean of the per-species best-ever fitness.",
		}),
		innovation: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "neat_innovation", Help: "Most recently allocated innovation id.",
		}),
		stagnant: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "neat_species_stagnant_total", Help: "Species removed for stagnation.",
		}),
		extinct: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "neat_species_extinct_total", Help: "Species removed for a negligible fitness share.",
		}),
		generations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "neat_generations_total", Help: "Completed generational transitions.",
		}),
	}
	for _, c := range []prometheus.Collector{
		r.generation, r.species, r.size, r.best, r.mean, r.innovation,
		r.stagnant, r.extinct, r.generations,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}
	return r, nil
}

func (r *Reporter) StartGeneration(int) {}

func (r *Reporter) SpeciesStagnant(int, *neat.Species) { r.stagnant.Inc() }

func (r *Reporter) SpeciesExtinct(int, *neat.Species) { r.extinct.Inc() }

func (r *Reporter) EndGeneration(_ int, next *neat.Population) {
	species := next.Species()
	bests := make([]float64, 0, len(species))
	for _, s := range species {
		if !math.IsInf(s.BestFitness(), -1) {
			bests = append(bests, s.BestFitness())
		}
	}
	r.generations.Inc()
	r.generation.Set(float64(next.Generation()))
	r.species.Set(float64(len(species)))
	r.size.Set(float64(next.Size()))
	r.best.Set(neat.MaxFloat(bests))
	r.mean.Set(neat.Mean(bests))
	r.innovation.Set(float64(next.GeneticAlgorithm().Ledger.Current()))
}
