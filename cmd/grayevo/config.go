package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"github.com/lixenwraith/grayevo/genetic/persistence"
	"github.com/lixenwraith/grayevo/parameter"
	"github.com/lixenwraith/grayevo/preview"
)

// ErrInvalidConfig marks configuration the run cannot start with
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the resolved run configuration
// Precedence: parameter defaults, then the TOML file, then explicitly set flags
type Config struct {
	Image               string  `toml:"image"`
	PopulationSize      int     `toml:"population_size"`
	MutationRate        float64 `toml:"mutation_rate"`
	MaxGeneration       int     `toml:"max_generation"`
	Seed                uint64  `toml:"seed"`
	StagnationThreshold int     `toml:"stagnation_threshold"`
	RateFloor           float64 `toml:"rate_floor"`
	NoiseAmplitude      int     `toml:"noise_amplitude"`
	PlotInterval        int     `toml:"plot_interval"`
	MaxSide             int     `toml:"max_side"`
	SnapshotDir         string  `toml:"snapshot_dir"`
	BestOut             string  `toml:"best_out"`
	HistoryHTML         string  `toml:"history_html"`
	ReportStore         string  `toml:"report_store"`
	ReportPath          string  `toml:"report_path"`
	Live                bool    `toml:"live"`
	Render              string  `toml:"render"`
	Chime               bool    `toml:"chime"`
	Debug               bool    `toml:"debug"`
}

func DefaultConfig() Config {
	return Config{
		PopulationSize:      parameter.GAPoolSize,
		MutationRate:        parameter.GAMutationRate,
		MaxGeneration:       parameter.GAMaxGeneration,
		StagnationThreshold: parameter.GAStagnationThreshold,
		RateFloor:           parameter.GARateFloor,
		NoiseAmplitude:      parameter.GANoiseAmplitude,
		PlotInterval:        parameter.GAPlotInterval,
		ReportStore:         persistence.StoreNone,
		ReportPath:          parameter.GAReportPath,
		Render:              "quadrant",
	}
}

// Validate rejects configurations the engine cannot run
func (c Config) Validate() error {
	switch {
	case c.Image == "":
		return fmt.Errorf("%w: image path is required", ErrInvalidConfig)
	case c.PopulationSize <= 1:
		return fmt.Errorf("%w: population_size must be greater than 1, got %d", ErrInvalidConfig, c.PopulationSize)
	case c.MutationRate <= 0 || c.MutationRate > 1:
		return fmt.Errorf("%w: mutation_rate must be in (0,1], got %g", ErrInvalidConfig, c.MutationRate)
	case c.MaxGeneration < 0:
		return fmt.Errorf("%w: max_generation must not be negative, got %d", ErrInvalidConfig, c.MaxGeneration)
	case c.NoiseAmplitude < 0:
		return fmt.Errorf("%w: noise_amplitude must not be negative, got %d", ErrInvalidConfig, c.NoiseAmplitude)
	case c.RateFloor <= 0 || c.RateFloor > 1:
		return fmt.Errorf("%w: rate_floor must be in (0,1], got %g", ErrInvalidConfig, c.RateFloor)
	case c.PlotInterval <= 0:
		return fmt.Errorf("%w: plot_interval must be positive, got %d", ErrInvalidConfig, c.PlotInterval)
	case c.StagnationThreshold < 0:
		return fmt.Errorf("%w: stagnation_threshold must not be negative, got %d", ErrInvalidConfig, c.StagnationThreshold)
	}

	if _, err := preview.ParseMode(c.Render); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	switch c.ReportStore {
	case persistence.StoreNone, persistence.StoreMemory, persistence.StoreTOML, persistence.StoreSQLite:
	default:
		return fmt.Errorf("%w: unknown report_store %q", ErrInvalidConfig, c.ReportStore)
	}
	return nil
}

// StorePath is the location handed to the report store factory
func (c Config) StorePath() string {
	if c.ReportStore == persistence.StoreSQLite {
		return filepath.Join(c.ReportPath, "grayevo.db")
	}
	return c.ReportPath
}

// LoadConfig parses args over the defaults and an optional --config file
// The image may also be given as the single positional argument
func LoadConfig(args []string, stderr io.Writer) (Config, error) {
	cfg := DefaultConfig()
	var configPath string

	fs := pflag.NewFlagSet("grayevo", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SortFlags = false

	fs.StringVarP(&configPath, "config", "c", "", "TOML configuration file")
	fs.StringVarP(&cfg.Image, "image", "i", cfg.Image, "target image (png, jpeg, gif, bmp, tiff, webp)")
	fs.IntVarP(&cfg.PopulationSize, "population", "p", cfg.PopulationSize, "population size")
	fs.Float64VarP(&cfg.MutationRate, "mutation-rate", "m", cfg.MutationRate, "base per-cell mutation probability")
	fs.IntVarP(&cfg.MaxGeneration, "max-generation", "g", cfg.MaxGeneration, "index of the last generation")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 picks one)")
	fs.IntVar(&cfg.StagnationThreshold, "stagnation-threshold", cfg.StagnationThreshold, "non-improving generations before the rate is resampled")
	fs.Float64Var(&cfg.RateFloor, "rate-floor", cfg.RateFloor, "other end of the resampling interval")
	fs.IntVar(&cfg.NoiseAmplitude, "noise", cfg.NoiseAmplitude, "mutation noise amplitude")
	fs.IntVar(&cfg.PlotInterval, "plot-interval", cfg.PlotInterval, "generations between best-individual snapshots")
	fs.IntVar(&cfg.MaxSide, "max-side", cfg.MaxSide, "downscale the target so its longer side is at most this (0 keeps size)")
	fs.StringVar(&cfg.SnapshotDir, "snapshot-dir", cfg.SnapshotDir, "directory for periodic best-individual PNGs")
	fs.StringVar(&cfg.BestOut, "best-out", cfg.BestOut, "PNG path for the final best individual")
	fs.StringVar(&cfg.HistoryHTML, "history-html", cfg.HistoryHTML, "HTML path for the fitness history chart")
	fs.StringVar(&cfg.ReportStore, "report-store", cfg.ReportStore, "run report store: none, toml, sqlite, memory")
	fs.StringVar(&cfg.ReportPath, "report-path", cfg.ReportPath, "run report directory")
	fs.BoolVarP(&cfg.Live, "live", "l", cfg.Live, "show the best individual in a live terminal view")
	fs.StringVar(&cfg.Render, "render", cfg.Render, "live view render mode: quadrant, bg")
	fs.BoolVar(&cfg.Chime, "chime", cfg.Chime, "play a tone when the run ends")
	fs.BoolVarP(&cfg.Debug, "debug", "d", cfg.Debug, "write debug logs to logs/")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return cfg, err
		}
		return cfg, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if configPath != "" {
		// Explicit flags win over the file: remember them, decode, then re-apply
		changed := make(map[string]string)
		fs.Visit(func(f *pflag.Flag) {
			changed[f.Name] = f.Value.String()
		})

		md, err := toml.DecodeFile(configPath, &cfg)
		if err != nil {
			return cfg, fmt.Errorf("%w: config file: %w", ErrInvalidConfig, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return cfg, fmt.Errorf("%w: config file: unknown keys %v", ErrInvalidConfig, undecoded)
		}

		for name, value := range changed {
			if err := fs.Set(name, value); err != nil {
				return cfg, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
			}
		}
	}

	switch fs.NArg() {
	case 0:
	case 1:
		if !fs.Changed("image") {
			cfg.Image = fs.Arg(0)
		}
	default:
		return cfg, fmt.Errorf("%w: unexpected arguments %v", ErrInvalidConfig, fs.Args()[1:])
	}

	return cfg, cfg.Validate()
}
