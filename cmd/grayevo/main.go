// grayevo evolves a population of random grayscale grids toward a target image
//
// Usage:
//
//	grayevo [flags] <image>
//	grayevo --config run.toml --live
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/lixenwraith/grayevo/genetic"
	"github.com/lixenwraith/grayevo/genetic/fitness"
	"github.com/lixenwraith/grayevo/genetic/persistence"
	"github.com/lixenwraith/grayevo/genetic/tracking"
	"github.com/lixenwraith/grayevo/imageio"
	"github.com/lixenwraith/grayevo/parameter"
	"github.com/lixenwraith/grayevo/preview"
	"github.com/lixenwraith/grayevo/report"
)

// Exit statuses
const (
	exitOK      = 0
	exitFailure = 1
	exitConfig  = 2
)

func main() {
	// Panic recovery: deferred screen cleanup in run has already restored the terminal
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n\x1b[31mGRAYEVO CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(exitFailure)
		}
	}()

	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type gridEngine = genetic.Engine[genetic.Grid, int64]
type gridState = genetic.EvolutionState[genetic.Grid, int64]

// run executes one evolution and returns the process exit status
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := LoadConfig(args, stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitConfig
	}

	logger, logFile := setupLogging(cfg.Debug)
	if logFile != nil {
		defer logFile.Close()
	}

	target, err := imageio.Load(cfg.Image, cfg.MaxSide)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading image: %v\n", err)
		logger.Error(err, "target load failed", "image", cfg.Image)
		return exitFailure
	}

	if cfg.Seed == 0 {
		cfg.Seed = uint64(rand.Int64N(math.MaxInt64)) + 1
	}
	logger.Info("run configured",
		"image", cfg.Image, "width", target.Width, "height", target.Height,
		"population", cfg.PopulationSize, "maxGeneration", cfg.MaxGeneration, "seed", cfg.Seed)

	engine := newEngine(cfg, target)
	engine.SetLogger(logger)
	ec := engine.Config()
	logger.V(1).Info("engine configured", "poolSize", ec.PoolSize, "mutationRate", ec.MutationRate, "maxGeneration", ec.MaxGeneration)

	r := &runner{
		cfg:       cfg,
		target:    target,
		engine:    engine,
		logger:    logger,
		collector: tracking.NewStandardCollector(),
		stdout:    stdout,
		stderr:    stderr,
	}

	if !cfg.Live {
		fmt.Fprintf(stdout, "Target: %s (%dx%d), seed %d\n", cfg.Image, target.Width, target.Height, cfg.Seed)
	}

	started := time.Now()
	state, err := r.evolve(stdin)
	finished := time.Now()
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	r.finish(state, started, finished)
	return exitOK
}

// newEngine wires the grid operators, overriding the engine defaults from cfg
func newEngine(cfg Config, target genetic.Grid) *gridEngine {
	ec := genetic.DefaultConfig()
	ec.PoolSize = cfg.PopulationSize
	ec.MutationRate = cfg.MutationRate
	ec.MaxGeneration = cfg.MaxGeneration
	ec.Seed = cfg.Seed

	return genetic.NewEngine[genetic.Grid, int64](
		fitness.Against(target),
		genetic.UniformGrid(target.Width, target.Height),
		&genetic.TruncationSelector[genetic.Grid, int64]{Fraction: parameter.GASurvivorFraction},
		&genetic.UniformCombiner{MixProbability: parameter.GACrossoverMixProbability},
		&genetic.NoisePerturbator{Amplitude: cfg.NoiseAmplitude},
		&genetic.RateController{Base: cfg.MutationRate, Floor: cfg.RateFloor, Threshold: cfg.StagnationThreshold},
		ec,
	)
}

type runner struct {
	cfg       Config
	target    genetic.Grid
	engine    *gridEngine
	logger    logr.Logger
	collector *tracking.StandardCollector
	stdout    io.Writer
	stderr    io.Writer
}

// evolve runs the engine with the terminal front end selected by cfg
func (r *runner) evolve(stdin io.Reader) (gridState, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if r.cfg.Live {
		return r.evolveLive(ctx, cancel)
	}

	progress := NewProgress(r.stdout, r.target.Len(), r.cfg.MaxGeneration)
	r.engine.SetObserver(tracking.Observe[genetic.Grid, int64](r.collector, func(snap gridSnapshot) {
		progress.Update(snap)
		r.snapshot(snap)
	}))

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt)
	defer signal.Stop(signals)

	guard := newInterruptGuard(signals, stdin, r.stderr, cancel)
	guard.hold = progress.Hold
	go guard.watch(ctx)

	return r.engine.Run(ctx)
}

// evolveLive runs the engine on a worker goroutine while the UI owns the terminal
func (r *runner) evolveLive(ctx context.Context, cancel context.CancelFunc) (gridState, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return gridState{}, fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return gridState{}, fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()

	mode, err := preview.ParseMode(r.cfg.Render)
	if err != nil {
		return gridState{}, err
	}
	view := newLiveView(screen, fmt.Sprintf("grayevo: %s", filepath.Base(r.cfg.Image)), r.target.Len(), mode, cancel)
	r.engine.SetObserver(tracking.Observe[genetic.Grid, int64](r.collector, func(snap gridSnapshot) {
		view.Offer(snap)
		r.snapshot(snap)
	}))

	var (
		state    gridState
		runErr   error
		panicked any
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			if p := recover(); p != nil {
				panicked = p
				cancel()
			}
		}()
		state, runErr = r.engine.Run(ctx)
	}()

	view.Run(done)
	// Closing the view early stops the engine too
	cancel()
	<-done

	if panicked != nil {
		screen.Fini()
		panic(panicked)
	}
	return state, runErr
}

// snapshot writes the best grid every PlotInterval generations and on convergence
func (r *runner) snapshot(snap gridSnapshot) {
	if r.cfg.SnapshotDir == "" {
		return
	}
	if snap.Generation%r.cfg.PlotInterval != 0 && snap.Status != genetic.StatusConverged {
		return
	}

	path := filepath.Join(r.cfg.SnapshotDir, fmt.Sprintf("gen_%06d.png", snap.Generation))
	if err := imageio.SavePNG(snap.Best.Data, path); err != nil {
		r.logger.Error(err, "snapshot failed", "path", path)
		return
	}
	r.logger.V(1).Info("snapshot written", "path", path, "fitness", snap.Best.Score)
}

// finish writes the run artifacts and the summary; failures here are warnings
func (r *runner) finish(state gridState, started, finished time.Time) {
	best, err := genetic.BestOf(state)
	if err != nil {
		r.warn(err, "no best individual")
		return
	}

	if state.Status == genetic.StatusInterrupted {
		fmt.Fprintln(r.stdout, "\nRun interrupted")
	}

	if r.cfg.BestOut != "" {
		if err := imageio.SavePNG(best.Data, r.cfg.BestOut); err != nil {
			r.warn(err, "saving best individual")
		}
	}

	if r.cfg.HistoryHTML != "" {
		if err := report.PlotHistory(state.History, r.cfg.HistoryHTML, filepath.Base(r.cfg.Image)); err != nil {
			r.warn(err, "writing fitness history chart")
		}
	}

	n := r.target.Len()
	summary := r.collector.Finalize(nil).Merge(tracking.MetricBundle{
		"final_similarity": fitness.Similarity(best.Score, n),
		"final_closeness":  fitness.Closeness(best.Score, n),
	})
	r.logger.Info("run summary",
		"generations", summary.Get(tracking.MetricGenerations, 0),
		"seconds", summary.Get(tracking.MetricSeconds, 0),
		"improvedSeconds", summary.Get("time_"+tracking.MetricImproved, 0))

	rep := persistence.FromState(persistence.Report{
		RunID:          uuid.NewString(),
		StartedAt:      started,
		FinishedAt:     finished,
		Image:          r.cfg.Image,
		Width:          r.target.Width,
		Height:         r.target.Height,
		PopulationSize: r.cfg.PopulationSize,
		MutationRate:   r.cfg.MutationRate,
		MaxGeneration:  r.cfg.MaxGeneration,
		Seed:           r.cfg.Seed,
		Summary:        summary,
	}, state)

	r.store(rep)

	if err := report.WriteSummary(r.stdout, rep); err != nil {
		r.logger.Error(err, "summary output failed")
	}

	if r.cfg.Chime {
		if err := playChime(); err != nil {
			r.warn(err, "audio unavailable")
		}
	}
}

func (r *runner) store(rep persistence.Report) {
	store, err := persistence.NewStore(r.cfg.ReportStore, r.cfg.StorePath())
	if err != nil {
		r.warn(err, "report store")
		return
	}
	if store == nil {
		return
	}
	defer persistence.CloseIfSupported(store)

	if r.cfg.ReportStore == persistence.StoreSQLite {
		if err := os.MkdirAll(r.cfg.ReportPath, 0755); err != nil {
			r.warn(err, "report directory")
			return
		}
	}

	ctx := context.Background()
	if err := store.Init(ctx); err != nil {
		r.warn(err, "report store init")
		return
	}
	if err := store.SaveReport(ctx, rep); err != nil {
		r.warn(err, "saving run report")
		return
	}
	r.logger.Info("run report saved", "store", r.cfg.ReportStore, "runID", rep.RunID)
}

func (r *runner) warn(err error, msg string) {
	fmt.Fprintf(r.stderr, "Warning: %s: %v\n", msg, err)
	r.logger.Error(err, msg)
}
