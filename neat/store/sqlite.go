package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps snapshots in a SQLite database file.
type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) SaveSnapshot(ctx context.Context, snapshot Snapshot) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	var best sql.NullFloat64
	if !math.IsNaN(snapshot.BestFitness) && !math.IsInf(snapshot.BestFitness, 0) {
		best = sql.NullFloat64{Float64: snapshot.BestFitness, Valid: true}
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO snapshots (run_id, generation, species, best_fitness, created_at, payload)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, generation) DO UPDATE SET
			species = excluded.species,
			best_fitness = excluded.best_fitness,
			created_at = excluded.created_at,
			payload = excluded.payload
	`, snapshot.RunID, snapshot.Generation, snapshot.Species, best, snapshot.CreatedAt.UnixNano(), snapshot.Payload)
	if err != nil {
		return fmt.Errorf("save snapshot %s/%d: %w", snapshot.RunID, snapshot.Generation, err)
	}
	return nil
}

func (s *SQLiteStore) LoadSnapshot(ctx context.Context, runID string, generation int) (Snapshot, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return Snapshot{}, false, err
	}

	row := db.QueryRowContext(ctx, `
		SELECT run_id, generation, species, best_fitness, created_at, payload
		FROM snapshots WHERE run_id = ? AND generation = ?
	`, runID, generation)
	return scanSnapshot(row)
}

func (s *SQLiteStore) LatestSnapshot(ctx context.Context, runID string) (Snapshot, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return Snapshot{}, false, err
	}

	row := db.QueryRowContext(ctx, `
		SELECT run_id, generation, species, best_fitness, created_at, payload
		FROM snapshots WHERE run_id = ?
		ORDER BY generation DESC LIMIT 1
	`, runID)
	return scanSnapshot(row)
}

func (s *SQLiteStore) ListRuns(ctx context.Context) ([]string, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT DISTINCT run_id FROM snapshots ORDER BY run_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []string
	for rows.Next() {
		var runID string
		if err := rows.Scan(&runID); err != nil {
			return nil, err
		}
		runs = append(runs, runID)
	}
	return runs, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errNotInitialized
	}
	return s.db, nil
}

func scanSnapshot(row *sql.Row) (Snapshot, bool, error) {
	var (
		snapshot  Snapshot
		best      sql.NullFloat64
		createdAt int64
	)
	err := row.Scan(&snapshot.RunID, &snapshot.Generation, &snapshot.Species, &best, &createdAt, &snapshot.Payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Snapshot{}, false, nil
		}
		return Snapshot{}, false, err
	}
	snapshot.BestFitness = math.NaN()
	if best.Valid {
		snapshot.BestFitness = best.Float64
	}
	snapshot.CreatedAt = time.Unix(0, createdAt).UTC()
	return snapshot, true, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS snapshots (
			run_id TEXT NOT NULL,
			generation INTEGER NOT NULL,
			species INTEGER NOT NULL,
			best_fitness REAL,
			created_at INTEGER NOT NULL,
			payload BLOB NOT NULL,
			PRIMARY KEY (run_id, generation)
		);
	`)
	return err
}
