package neat

import (
	"log/slog"
	"math"
)

// Reporter receives progress events from Population.Evolve.
type Reporter interface {
	StartGeneration(generation int)
	SpeciesStagnant(generation int, s *Species)
	SpeciesExtinct(generation int, s *Species)
	EndGeneration(generation int, next *Population)
}

// ReporterSet fans events out to every registered reporter in order.
type ReporterSet struct {
	reporters []Reporter
}

// NewReporterSet creates an empty set.
func NewReporterSet() *ReporterSet {
	return &ReporterSet{}
}

// Add registers a reporter.
func (rs *ReporterSet) Add(r Reporter) {
	rs.reporters = append(rs.reporters, r)
}

// Len is the number of registered reporters.
func (rs *ReporterSet) Len() int { return len(rs.reporters) }

func (rs *ReporterSet) StartGeneration(generation int) {
	for _, r := range rs.reporters {
		r.StartGeneration(generation)
	}
}

func (rs *ReporterSet) SpeciesStagnant(generation int, s *Species) {
	for _, r := range rs.reporters {
		r.SpeciesStagnant(generation, s)
	}
}

func (rs *ReporterSet) SpeciesExtinct(generation int, s *Species) {
	for _, r := range rs.reporters {
		r.SpeciesExtinct(generation, s)
	}
}

func (rs *ReporterSet) EndGeneration(generation int, next *Population) {
	for _, r := range rs.reporters {
		r.EndGeneration(generation, next)
	}
}

// LogReporter writes one structured line per event.
type LogReporter struct {
	logger *slog.Logger
}

// NewLogReporter wraps logger; nil uses slog.Default().
func NewLogReporter(logger *slog.Logger) *LogReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogReporter{logger: logger}
}

func (lr *LogReporter) StartGeneration(generation int) {
	lr.logger.Debug("generation started", "generation", generation)
}

func (lr *LogReporter) SpeciesStagnant(generation int, s *Species) {
	lr.logger.Info("species stagnant",
		"generation", generation,
		"species", s.Key,
		"staleness", s.staleness,
		"best_fitness", s.bestFitness,
	)
}

func (lr *LogReporter) SpeciesExtinct(generation int, s *Species) {
	lr.logger.Info("species extinct",
		"generation", generation,
		"species", s.Key,
		"average_fitness", s.average,
	)
}

func (lr *LogReporter) EndGeneration(generation int, next *Population) {
	best := math.Inf(-1)
	for _, s := range next.species {
		best = math.Max(best, s.bestFitness)
	}
	lr.logger.Info("generation completed",
		"generation", generation,
		"species", len(next.species),
		"size", next.Size(),
		"best_fitness", best,
		"innovation", next.ga.Ledger.Current(),
	)
}
