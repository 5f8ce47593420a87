package parameter

// Genetic Algorithm - Engine Configuration
const (
	// GAPoolSize is the number of candidates in each population
	GAPoolSize = 100

	// GAMutationRate is the base per-cell mutation probability (0.0-1.0]
	GAMutationRate = 0.01

	// GAMaxGeneration is the index of the last generation (inclusive)
	GAMaxGeneration = 1000

	// GASurvivorFraction is the share of the population kept as breeding stock
	GASurvivorFraction = 0.5

	// GACrossoverMixProbability for uniform crossover
	GACrossoverMixProbability = 0.5

	// GANoiseAmplitude bounds mutation noise to [-GANoiseAmplitude, GANoiseAmplitude]
	GANoiseAmplitude = 15
)

// Genetic Algorithm - Adaptive Mutation Rate
const (
	// GAStagnationThreshold is the non-improving generation count that must be exceeded
	GAStagnationThreshold = 10

	// GARateFloor is the far end of the resampling interval
	GARateFloor = 0.001
)

// Reporting
const (
	// GAPlotInterval is the generation period for best-individual snapshots
	GAPlotInterval = 100

	// GAProgressBarWidth is the slot count of the progress bar
	GAProgressBarWidth = 20

	// GAReportPath is the default directory for run reports
	GAReportPath = "./runs"
)
