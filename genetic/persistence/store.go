package persistence

import (
	"context"
	"errors"
	"fmt"
)

// ErrRunIDRequired rejects reports without an identifier
var ErrRunIDRequired = errors.New("run id is required")

// Store persists run reports
type Store interface {
	Init(ctx context.Context) error
	SaveReport(ctx context.Context, report Report) error
	GetReport(ctx context.Context, runID string) (Report, bool, error)
	ListReports(ctx context.Context) ([]string, error)
}

// Store backend names
const (
	StoreNone   = "none"
	StoreMemory = "memory"
	StoreTOML   = "toml"
	StoreSQLite = "sqlite"
)

// NewStore builds a store for kind; path is a directory for toml and a database file for sqlite
// StoreNone returns a nil store
func NewStore(kind, path string) (Store, error) {
	switch kind {
	case StoreNone:
		return nil, nil
	case "", StoreMemory:
		return NewMemoryStore(), nil
	case StoreTOML:
		return NewManager(path), nil
	case StoreSQLite:
		return NewSQLiteStore(path), nil
	default:
		return nil, fmt.Errorf("unsupported report store: %s", kind)
	}
}

// CloseIfSupported closes stores that hold resources
func CloseIfSupported(store Store) error {
	closer, ok := store.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}
