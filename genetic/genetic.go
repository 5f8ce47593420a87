package genetic

// Package genetic evolves populations of candidate solutions toward a minimum score
// 1. Operators are plugged in through small interfaces (Selector, Combiner, Perturbator, RateAdapter)
// 2. Run state lives in an explicit EvolutionState threaded through Engine.Step
// 3. Lower scores are better; a score of zero terminates the run as converged

import (
	"cmp"
	"math/rand/v2"
	"slices"
)

// --- Concrete Operator Implementations ---

// TruncationSelector keeps the fittest fraction of the population as breeding stock
type TruncationSelector[S Solution, F Numeric] struct {
	// Fraction of the population size that survives, 0.5 keeps the fittest half
	Fraction float64
}

// Select sorts a copy of members ascending by score and returns the first floor(Fraction*size)
// Ties keep their input order. A population of one keeps its single member
func (ts *TruncationSelector[S, F]) Select(members []Candidate[S, F], size int, rng *rand.Rand) []Candidate[S, F] {
	keep := int(ts.Fraction * float64(size))
	if keep == 0 && size > 0 {
		keep = 1
	}
	keep = min(keep, len(members))
	if keep <= 0 {
		return []Candidate[S, F]{}
	}

	sorted := SortByScore(members)
	return sorted[:keep]
}

// SortByScore returns a stably sorted copy, best (lowest) score first
func SortByScore[S Solution, F Numeric](members []Candidate[S, F]) []Candidate[S, F] {
	sorted := slices.Clone(members)
	slices.SortStableFunc(sorted, func(a, b Candidate[S, F]) int {
		return cmp.Compare(a.Score, b.Score)
	})
	return sorted
}

// UniformCombiner performs uniform crossover between two grids
// Each cell is taken from the first parent with MixProbability, else from the second
type UniformCombiner struct {
	MixProbability float64
}

// Combine creates one offspring with freshly allocated storage
// Crossing a grid with itself yields a copy of it
func (uc *UniformCombiner) Combine(a, b Grid, rng *rand.Rand) Grid {
	if a.sharesStorage(b) {
		return a.Clone()
	}
	if !a.SameShape(b) {
		panic("genetic: crossover parents differ in shape")
	}

	mask := make([]bool, a.Len())
	for i := range mask {
		mask[i] = rng.Float64() < uc.MixProbability
	}
	return CrossMask(a, b, mask)
}

// CrossMask builds a child taking a.Pix[i] where mask[i] is set, else b.Pix[i]
func CrossMask(a, b Grid, mask []bool) Grid {
	child := NewGrid(a.Width, a.Height)
	for i := range child.Pix {
		if mask[i] {
			child.Pix[i] = a.Pix[i]
		} else {
			child.Pix[i] = b.Pix[i]
		}
	}
	return child
}
