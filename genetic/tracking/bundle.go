package tracking

import "time"

// MetricBundle is a generic container for named metrics
// Keys are metric names, values are float64 measurements
type MetricBundle map[string]float64

// Standard metric keys (conventions)
const (
	MetricBestScore    = "best_score"
	MetricWorstScore   = "worst_score"
	MetricMeanScore    = "mean_score"
	MetricMutationRate = "mutation_rate"
	MetricStagnation   = "stagnation"
	MetricImproved     = "improved"
	MetricGenerations  = "generations"
	MetricSeconds      = "seconds"
)

// Get returns metric value or default if not present
func (b MetricBundle) Get(key string, defaultVal float64) float64 {
	if v, ok := b[key]; ok {
		return v
	}
	return defaultVal
}

// Merge combines two bundles, other values override existing
func (b MetricBundle) Merge(other MetricBundle) MetricBundle {
	result := make(MetricBundle, len(b)+len(other))
	for k, v := range b {
		result[k] = v
	}
	for k, v := range other {
		result[k] = v
	}
	return result
}

// Collector accumulates metrics over a run
type Collector interface {
	// Collect records metrics for a single generation that took dt
	Collect(metrics MetricBundle, dt time.Duration)

	// Finalize returns accumulated metrics merged with final, terminal metrics
	Finalize(final MetricBundle) MetricBundle

	// Reset clears accumulated state for reuse
	Reset()
}
