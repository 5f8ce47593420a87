package persistence

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps reports in a single database file
// Summary columns are queryable; the full report is a TOML payload
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

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			finished_at TEXT NOT NULL,
			status TEXT NOT NULL,
			generations INTEGER NOT NULL,
			best_fitness INTEGER NOT NULL,
			payload BLOB NOT NULL
		)
	`); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) SaveReport(ctx context.Context, report Report) error {
	if report.RunID == "" {
		return ErrRunIDRequired
	}
	db, err := s.getDB()
	if err != nil {
		return err
	}

	var payload bytes.Buffer
	if err := toml.NewEncoder(&payload).Encode(report); err != nil {
		return fmt.Errorf("encode report %s: %w", report.RunID, err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO runs (id, finished_at, status, generations, best_fitness, payload)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			finished_at = excluded.finished_at,
			status = excluded.status,
			generations = excluded.generations,
			best_fitness = excluded.best_fitness,
			payload = excluded.payload
	`, report.RunID, report.FinishedAt.UTC().Format(time.RFC3339Nano), report.Status,
		report.Generations, report.BestFitness, payload.Bytes())
	return err
}

func (s *SQLiteStore) GetReport(ctx context.Context, runID string) (Report, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return Report{}, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM runs WHERE id = ?`, runID).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Report{}, false, nil
		}
		return Report{}, false, err
	}

	var report Report
	if _, err := toml.Decode(string(payload), &report); err != nil {
		return Report{}, false, fmt.Errorf("decode report %s: %w", runID, err)
	}
	return report, true, nil
}

func (s *SQLiteStore) ListReports(ctx context.Context) ([]string, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT id FROM runs ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
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
		return nil, errors.New("sqlite store is not initialized")
	}
	return s.db, nil
}
