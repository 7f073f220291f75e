package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps snapshots in process memory.
type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	runs        map[string]map[int]Snapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.runs = make(map[string]map[int]Snapshot)
	return nil
}

func (s *MemoryStore) SaveSnapshot(_ context.Context, snapshot Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errNotInitialized
	}
	generations, ok := s.runs[snapshot.RunID]
	if !ok {
		generations = make(map[int]Snapshot)
		s.runs[snapshot.RunID] = generations
	}
	snapshot.Payload = append([]byte(nil), snapshot.Payload...)
	generations[snapshot.Generation] = snapshot
	return nil
}

func (s *MemoryStore) LoadSnapshot(_ context.Context, runID string, generation int) (Snapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return Snapshot{}, false, errNotInitialized
	}
	snapshot, ok := s.runs[runID][generation]
	if !ok {
		return Snapshot{}, false, nil
	}
	return copySnapshot(snapshot), true, nil
}

func (s *MemoryStore) LatestSnapshot(_ context.Context, runID string) (Snapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return Snapshot{}, false, errNotInitialized
	}
	generations, ok := s.runs[runID]
	if !ok || len(generations) == 0 {
		return Snapshot{}, false, nil
	}
	latest := -1
	for generation := range generations {
		if generation > latest {
			latest = generation
		}
	}
	return copySnapshot(generations[latest]), true, nil
}

func (s *MemoryStore) ListRuns(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, errNotInitialized
	}
	runs := make([]string, 0, len(s.runs))
	for runID := range s.runs {
		runs = append(runs, runID)
	}
	sort.Strings(runs)
	return runs, nil
}

func copySnapshot(snapshot Snapshot) Snapshot {
	snapshot.Payload = append([]byte(nil), snapshot.Payload...)
	return snapshot
}
