package persistence

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

const reportExt = ".toml"

// Manager stores one TOML file per run under a base directory
type Manager struct {
	basePath string
}

// NewManager creates a manager with the given base directory
func NewManager(basePath string) *Manager {
	return &Manager{basePath: basePath}
}

// FilePath returns the path for a run report
func (m *Manager) FilePath(runID string) string {
	return filepath.Join(m.basePath, runID+reportExt)
}

// Exists checks if a report file exists
func (m *Manager) Exists(runID string) bool {
	_, err := os.Stat(m.FilePath(runID))
	return err == nil
}

// Init creates the base directory
func (m *Manager) Init(context.Context) error {
	if m.basePath == "" {
		return errors.New("report directory is required")
	}
	return os.MkdirAll(m.basePath, 0755)
}

// SaveReport writes the report to disk
func (m *Manager) SaveReport(_ context.Context, report Report) error {
	if report.RunID == "" {
		return ErrRunIDRequired
	}
	if err := os.MkdirAll(m.basePath, 0755); err != nil {
		return err
	}

	f, err := os.Create(m.FilePath(report.RunID))
	if err != nil {
		return err
	}

	if err := toml.NewEncoder(f).Encode(report); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// GetReport reads a report from disk
func (m *Manager) GetReport(_ context.Context, runID string) (Report, bool, error) {
	var report Report

	if _, err := toml.DecodeFile(m.FilePath(runID), &report); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Report{}, false, nil
		}
		return Report{}, false, err
	}

	return report, true, nil
}

// ListReports returns the run IDs found in the base directory
func (m *Manager) ListReports(context.Context) ([]string, error) {
	entries, err := os.ReadDir(m.basePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), reportExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), reportExt))
	}
	slices.Sort(ids)
	return ids, nil
}
