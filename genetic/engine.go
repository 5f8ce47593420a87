package genetic

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/go-logr/logr"

	"github.com/lixenwraith/grayevo/parameter"
)

// --- Algorithm Engine ---

// Status is the driver state of a run
type Status int

const (
	StatusInit Status = iota
	StatusRunning
	StatusConverged
	StatusMaxGenReached
	StatusInterrupted
)

func (s Status) String() string {
	switch s {
	case StatusInit:
		return "init"
	case StatusRunning:
		return "running"
	case StatusConverged:
		return "converged"
	case StatusMaxGenReached:
		return "max_generation"
	case StatusInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further generation follows
func (s Status) Terminal() bool {
	return s == StatusConverged || s == StatusMaxGenReached || s == StatusInterrupted
}

// EvolutionState is everything that carries over from one generation to the next
type EvolutionState[S Solution, F Numeric] struct {
	// Population is sorted ascending by score once a generation has completed
	Population []Candidate[S, F]
	// Generation is the 0-based index of the last completed (or next) generation
	Generation int
	// Stagnation counts consecutive generations without strict improvement
	Stagnation int
	// MutationRate applies to the next generation
	MutationRate float64
	// BestScore is the best score seen so far
	BestScore F
	// History holds the best score of every completed generation
	History []F
	Stats   PoolStats[F]
	Status  Status
}

// Best returns the lowest-scoring candidate, the first one on ties
func (s *EvolutionState[S, F]) Best() (Candidate[S, F], bool) {
	if len(s.Population) == 0 {
		return Candidate[S, F]{}, false
	}

	best := s.Population[0]
	for _, c := range s.Population[1:] {
		if c.Score < best.Score {
			best = c
		}
	}
	return best, true
}

// Snapshot is handed to observers after each completed generation
type Snapshot[S Solution, F Numeric] struct {
	Generation   int
	Best         Candidate[S, F]
	Stats        PoolStats[F]
	Stagnation   int
	MutationRate float64
	Status       Status
	// Elapsed is the wall time of the generation
	Elapsed time.Duration
}

// historyPrealloc caps the initial history capacity for very long runs
const historyPrealloc = 4096

// Engine is the generational driver
// One generation is select -> breed -> mutate -> replace -> convergence check
type Engine[S Solution, F Numeric] struct {
	// Core operators
	evaluator   EvaluatorFunc[S, F]
	initializer InitializerFunc[S]
	selector    Selector[S, F]
	combiner    Combiner[S]
	perturbator Perturbator[S]
	adapter     RateAdapter

	// Configuration
	config EngineConfig

	rng      *rand.Rand
	observer ObserverFunc[S, F]
	logger   logr.Logger
}

// EngineConfig holds configuration parameters for the algorithm
type EngineConfig struct {
	// PoolSize is the number of candidates at every generation boundary
	PoolSize int
	// MutationRate is the base per-cell mutation probability
	MutationRate float64
	// MaxGeneration is the index of the last generation that may run
	MaxGeneration int
	// Seed for random number generation (0 for random seed)
	Seed uint64
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() EngineConfig {
	return EngineConfig{
		PoolSize:      parameter.GAPoolSize,
		MutationRate:  parameter.GAMutationRate,
		MaxGeneration: parameter.GAMaxGeneration,
		Seed:          0,
	}
}

// NewEngine creates a new engine with the specified operators
func NewEngine[S Solution, F Numeric](
	evaluator EvaluatorFunc[S, F],
	initializer InitializerFunc[S],
	selector Selector[S, F],
	combiner Combiner[S],
	perturbator Perturbator[S],
	adapter RateAdapter,
	config EngineConfig,
) *Engine[S, F] {
	if config.PoolSize < 1 {
		panic("genetic: PoolSize must be positive")
	}

	var rng *rand.Rand
	if config.Seed == 0 {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	} else {
		rng = rand.New(rand.NewPCG(config.Seed, config.Seed))
	}

	return &Engine[S, F]{
		evaluator:   evaluator,
		initializer: initializer,
		selector:    selector,
		combiner:    combiner,
		perturbator: perturbator,
		adapter:     adapter,
		config:      config,
		rng:         rng,
		logger:      logr.Discard(),
	}
}

// SetObserver registers a callback invoked after every completed generation
func (e *Engine[S, F]) SetObserver(observer ObserverFunc[S, F]) {
	e.observer = observer
}

// SetLogger replaces the default discarding logger
func (e *Engine[S, F]) SetLogger(logger logr.Logger) {
	e.logger = logger.WithName("engine")
}

// Config returns the engine configuration
func (e *Engine[S, F]) Config() EngineConfig {
	return e.config
}

// Run evolves until convergence, MaxGeneration, or cancellation of ctx
// Cancellation is observed between generations: the returned state is the last
// completed generation, marked StatusInterrupted, together with ctx.Err()
func (e *Engine[S, F]) Run(ctx context.Context) (EvolutionState[S, F], error) {
	state := e.Initialize()
	e.logger.Info("population initialized", "size", len(state.Population), "best", state.BestScore)

	for !state.Status.Terminal() {
		select {
		case <-ctx.Done():
			state.Status = StatusInterrupted
			e.logger.Info("run interrupted", "generation", state.Generation, "completed", len(state.History))
			return state, ctx.Err()
		default:
		}

		start := time.Now()
		state = e.Step(state)
		elapsed := time.Since(start)

		e.logger.V(1).Info("generation complete",
			"generation", state.Generation,
			"best", state.Stats.BestScore,
			"rate", state.MutationRate,
			"stagnation", state.Stagnation)

		if e.observer != nil {
			e.observer(e.snapshot(&state, elapsed))
		}
	}

	e.logger.Info("run finished", "status", state.Status.String(), "generation", state.Generation, "best", state.BestScore)
	return state, nil
}

// Initialize creates the initial population and the Init state
func (e *Engine[S, F]) Initialize() EvolutionState[S, F] {
	candidates := make([]Candidate[S, F], e.config.PoolSize)
	for i := range candidates {
		solution := e.initializer(e.rng)
		candidates[i] = Candidate[S, F]{
			Data:  solution,
			Score: e.evaluator(solution),
		}
	}

	stats := computeStats(candidates)
	return EvolutionState[S, F]{
		Population:   candidates,
		MutationRate: e.config.MutationRate,
		BestScore:    stats.BestScore,
		History:      make([]F, 0, min(e.config.MaxGeneration+1, historyPrealloc)),
		Stats:        stats,
		Status:       StatusInit,
	}
}

// Step runs one generation on state and returns the successor state
func (e *Engine[S, F]) Step(state EvolutionState[S, F]) EvolutionState[S, F] {
	if state.Status == StatusRunning {
		state.Generation++
	}
	state.Status = StatusRunning

	survivors := e.selector.Select(state.Population, e.config.PoolSize, e.rng)
	offspring := e.Breed(survivors)
	e.Mutate(offspring, state.MutationRate)
	state.Population = e.Replace(offspring)
	state.Stats = computeStats(state.Population)

	best := state.Stats.BestScore
	state.History = append(state.History, best)

	if best < state.BestScore {
		state.BestScore = best
		state.Stagnation = 0
	} else {
		state.Stagnation++
	}

	state.MutationRate = e.adapter.Adapt(state.Stagnation, e.rng)

	switch {
	case best == F(0):
		state.Status = StatusConverged
	case state.Generation >= e.config.MaxGeneration:
		state.Status = StatusMaxGenReached
	}

	return state
}

// Breed produces PoolSize offspring, each from two parents drawn uniformly with replacement
func (e *Engine[S, F]) Breed(survivors []Candidate[S, F]) []S {
	if len(survivors) == 0 {
		return nil
	}

	offspring := make([]S, e.config.PoolSize)
	for i := range offspring {
		p1 := survivors[e.rng.IntN(len(survivors))]
		p2 := survivors[e.rng.IntN(len(survivors))]
		offspring[i] = e.combiner.Combine(p1.Data, p2.Data, e.rng)
	}
	return offspring
}

// Mutate perturbs every offspring in place
func (e *Engine[S, F]) Mutate(offspring []S, rate float64) {
	for i := range offspring {
		e.perturbator.Perturb(&offspring[i], rate, e.rng)
	}
}

// Replace scores the offspring and keeps the best PoolSize of them, sorted ascending
func (e *Engine[S, F]) Replace(offspring []S) []Candidate[S, F] {
	scored := make([]Candidate[S, F], len(offspring))
	for i, s := range offspring {
		scored[i] = Candidate[S, F]{Data: s, Score: e.evaluator(s)}
	}

	sorted := SortByScore(scored)
	if len(sorted) > e.config.PoolSize {
		sorted = sorted[:e.config.PoolSize]
	}
	return sorted
}

func (e *Engine[S, F]) snapshot(state *EvolutionState[S, F], elapsed time.Duration) Snapshot[S, F] {
	best, _ := state.Best()
	return Snapshot[S, F]{
		Generation:   state.Generation,
		Best:         best,
		Stats:        state.Stats,
		Stagnation:   state.Stagnation,
		MutationRate: state.MutationRate,
		Status:       state.Status,
		Elapsed:      elapsed,
	}
}

// ErrNoCandidates is returned when a best candidate is requested from an empty state
var ErrNoCandidates = errors.New("no candidates available")

// BestOf returns the best candidate of a finished state
func BestOf[S Solution, F Numeric](state EvolutionState[S, F]) (Candidate[S, F], error) {
	best, ok := state.Best()
	if !ok {
		return Candidate[S, F]{}, ErrNoCandidates
	}
	return best, nil
}
