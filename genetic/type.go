package genetic

import (
	"math/rand/v2"
)

// --- Core Type Constraints ---

// Solution represents any type that can be used as a solution encoding
type Solution any

// Numeric constrains types to numeric values for fitness scores
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// --- Core Data Structures ---

// Candidate pairs a solution with its evaluated score
// S is the solution type, F is the fitness score type (lower = better)
type Candidate[S Solution, F Numeric] struct {
	// Data holds the encoded solution representation
	Data S
	// Score is the error of this solution against the target, 0 is a perfect match
	Score F
}

// PoolStats contains statistical information about a candidate pool
type PoolStats[F Numeric] struct {
	BestScore    F
	WorstScore   F
	AverageScore float64
}

// --- Function Types for Flexibility ---

// EvaluatorFunc calculates the score for a solution
type EvaluatorFunc[S Solution, F Numeric] func(solution S) F

// InitializerFunc creates an initial solution candidate
type InitializerFunc[S Solution] func(rng *rand.Rand) S

// ObserverFunc receives a snapshot after every completed generation
type ObserverFunc[S Solution, F Numeric] func(snap Snapshot[S, F])

// --- Core Operators as Interfaces ---

// Selector chooses the breeding stock from a population
type Selector[S Solution, F Numeric] interface {
	// Select returns survivors for a population of the given size
	Select(members []Candidate[S, F], size int, rng *rand.Rand) []Candidate[S, F]
}

// Combiner recombines two parents into one freshly allocated offspring
type Combiner[S Solution] interface {
	Combine(a, b S, rng *rand.Rand) S
}

// Perturbator defines the mutation operator for introducing variation
type Perturbator[S Solution] interface {
	// Perturb modifies a solution in-place
	// The rate parameter is the per-gene mutation probability (0-1)
	Perturb(solution *S, rate float64, rng *rand.Rand)
}

// RateAdapter recomputes the mutation rate from the stagnation counter
type RateAdapter interface {
	Adapt(stagnation int, rng *rand.Rand) float64
}

// computeStats summarizes a candidate slice
func computeStats[S Solution, F Numeric](candidates []Candidate[S, F]) PoolStats[F] {
	if len(candidates) == 0 {
		return PoolStats[F]{}
	}

	stats := PoolStats[F]{
		BestScore:  candidates[0].Score,
		WorstScore: candidates[0].Score,
	}

	var total float64
	for _, c := range candidates {
		if c.Score < stats.BestScore {
			stats.BestScore = c.Score
		}
		if c.Score > stats.WorstScore {
			stats.WorstScore = c.Score
		}
		total += float64(c.Score)
	}
	stats.AverageScore = total / float64(len(candidates))

	return stats
}
