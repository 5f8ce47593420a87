package persistence

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/grayevo/genetic"
)

func sampleReport(id string) Report {
	started := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return Report{
		RunID:          id,
		StartedAt:      started,
		FinishedAt:     started.Add(90 * time.Second),
		Image:          "target.png",
		Width:          4,
		Height:         3,
		PopulationSize: 100,
		MutationRate:   0.01,
		MaxGeneration:  1000,
		Seed:           42,
		Status:         "converged",
		Generations:    3,
		BestFitness:    0,
		Similarity:     1,
		History:        []int64{120, 40, 0},
		Summary:        map[string]float64{"generations": 3, "avg_best_score": 53.3},
	}
}

func TestStores_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	stores := map[string]Store{
		StoreMemory: NewMemoryStore(),
		StoreTOML:   NewManager(filepath.Join(dir, "runs")),
		StoreSQLite: NewSQLiteStore(filepath.Join(dir, "runs.db")),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.Init(ctx))
			t.Cleanup(func() { _ = CloseIfSupported(store) })

			want := sampleReport("run-" + name)
			require.NoError(t, store.SaveReport(ctx, want))

			got, ok, err := store.GetReport(ctx, want.RunID)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, want.RunID, got.RunID)
			assert.Equal(t, want.Status, got.Status)
			assert.Equal(t, want.History, got.History)
			assert.Equal(t, want.Seed, got.Seed)
			assert.True(t, want.StartedAt.Equal(got.StartedAt))
			assert.InDelta(t, 53.3, got.Summary["avg_best_score"], 1e-9)

			_, ok, err = store.GetReport(ctx, "missing")
			require.NoError(t, err)
			assert.False(t, ok)

			ids, err := store.ListReports(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{want.RunID}, ids)
		})
	}
}

func TestStores_Upsert(t *testing.T) {
	ctx := context.Background()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, store.Init(ctx))
	defer store.Close()

	r := sampleReport("same")
	require.NoError(t, store.SaveReport(ctx, r))
	r.Status = "interrupted"
	require.NoError(t, store.SaveReport(ctx, r))

	got, ok, err := store.GetReport(ctx, "same")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "interrupted", got.Status)

	ids, err := store.ListReports(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 1)
}

func TestStores_RequireRunID(t *testing.T) {
	ctx := context.Background()
	assert.ErrorIs(t, NewMemoryStore().SaveReport(ctx, Report{}), ErrRunIDRequired)
	assert.ErrorIs(t, NewManager(t.TempDir()).SaveReport(ctx, Report{}), ErrRunIDRequired)
}

func TestSQLiteStore_Uninitialized(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "runs.db"))
	_, _, err := store.GetReport(context.Background(), "x")
	assert.Error(t, err)
	assert.NoError(t, store.Close())
}

func TestManager_Exists(t *testing.T) {
	m := NewManager(t.TempDir())
	assert.False(t, m.Exists("a"))
	require.NoError(t, m.SaveReport(context.Background(), sampleReport("a")))
	assert.True(t, m.Exists("a"))
}

func TestNewStore(t *testing.T) {
	store, err := NewStore(StoreNone, "")
	require.NoError(t, err)
	assert.Nil(t, store)

	store, err = NewStore("", "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	store, err = NewStore(StoreTOML, t.TempDir())
	require.NoError(t, err)
	assert.IsType(t, &Manager{}, store)

	store, err = NewStore(StoreSQLite, filepath.Join(t.TempDir(), "r.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, store)

	_, err = NewStore("postgres", "")
	assert.Error(t, err)
}

func TestFromState(t *testing.T) {
	best := genetic.NewGrid(2, 2)
	state := genetic.EvolutionState[genetic.Grid, int64]{
		Population: []genetic.Candidate[genetic.Grid, int64]{
			{Data: best, Score: 255},
			{Data: genetic.NewGrid(2, 2), Score: 510},
		},
		History: []int64{600, 255},
		Status:  genetic.StatusMaxGenReached,
	}

	r := FromState(Report{RunID: "x"}, state)
	assert.Equal(t, "max_generation", r.Status)
	assert.Equal(t, 2, r.Generations)
	assert.Equal(t, int64(255), r.BestFitness)
	assert.InDelta(t, 0.75, r.Similarity, 1e-9)

	state.History[0] = 1
	assert.Equal(t, int64(600), r.History[0])
}
