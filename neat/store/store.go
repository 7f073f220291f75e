// Package store persists population snapshots so a run can be resumed.
package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/baldhumanity/neat-innov/neat"
)

var errNotInitialized = errors.New("store is not initialized")

// Snapshot is one persisted generation of a run.
type Snapshot struct {
	RunID       string
	Generation  int
	Species     int
	BestFitness float64 // NaN when no lineage has a fitness yet
	CreatedAt   time.Time
	Payload     []byte // neat.EncodePopulation output
}

// Store saves and loads snapshots keyed by run id and generation.
type Store interface {
	Init(ctx context.Context) error
	SaveSnapshot(ctx context.Context, snapshot Snapshot) error
	LoadSnapshot(ctx context.Context, runID string, generation int) (Snapshot, bool, error)
	LatestSnapshot(ctx context.Context, runID string) (Snapshot, bool, error)
	ListRuns(ctx context.Context) ([]string, error)
}

// NewRunID returns a fresh random run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// Capture encodes p into a snapshot for runID.
func Capture(runID string, p *neat.Population) (Snapshot, error) {
	var buf bytes.Buffer
	if err := neat.EncodePopulation(&buf, p); err != nil {
		return Snapshot{}, fmt.Errorf("capture run %s generation %d: %w", runID, p.Generation(), err)
	}
	best := math.NaN()
	for _, s := range p.Species() {
		if b := s.BestFitness(); !math.IsInf(b, -1) && (math.IsNaN(best) || b > best) {
			best = b
		}
	}
	return Snapshot{
		RunID:       runID,
		Generation:  p.Generation(),
		Species:     len(p.Species()),
		BestFitness: best,
		CreatedAt:   time.Now().UTC(),
		Payload:     buf.Bytes(),
	}, nil
}

// Restore decodes the population held by a snapshot.
func Restore(snapshot Snapshot) (*neat.Population, error) {
	p, err := neat.DecodePopulation(bytes.NewReader(snapshot.Payload))
	if err != nil {
		return nil, fmt.Errorf("restore run %s generation %d: %w", snapshot.RunID, snapshot.Generation, err)
	}
	return p, nil
}

// CloseIfSupported closes stores that hold resources.
func CloseIfSupported(store Store) error {
	closer, ok := store.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}
