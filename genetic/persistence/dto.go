package persistence

import (
	"time"

	"github.com/lixenwraith/grayevo/genetic"
	"github.com/lixenwraith/grayevo/genetic/fitness"
)

// Report is the serializable outcome of one run
// It never carries population state: runs are not resumable
type Report struct {
	RunID          string             `toml:"run_id"`
	StartedAt      time.Time          `toml:"started_at"`
	FinishedAt     time.Time          `toml:"finished_at"`
	Image          string             `toml:"image"`
	Width          int                `toml:"width"`
	Height         int                `toml:"height"`
	PopulationSize int                `toml:"population_size"`
	MutationRate   float64            `toml:"mutation_rate"`
	MaxGeneration  int                `toml:"max_generation"`
	Seed           uint64             `toml:"seed"`
	Status         string             `toml:"status"`
	Generations    int                `toml:"generations"`
	BestFitness    int64              `toml:"best_fitness"`
	Similarity     float64            `toml:"similarity"`
	History        []int64            `toml:"history"`
	Summary        map[string]float64 `toml:"summary"`
}

// FromState fills the outcome fields of a report from a finished run
func FromState(r Report, state genetic.EvolutionState[genetic.Grid, int64]) Report {
	r.Status = state.Status.String()
	r.Generations = len(state.History)
	r.History = append([]int64(nil), state.History...)

	if best, ok := state.Best(); ok {
		r.BestFitness = best.Score
		r.Similarity = fitness.Similarity(best.Score, best.Data.Len())
	}
	return r
}
