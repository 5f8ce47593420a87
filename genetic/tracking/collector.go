package tracking

import (
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// StandardCollector keeps every sample per key and summarizes on Finalize
type StandardCollector struct {
	generations int
	elapsed     time.Duration
	samples     map[string][]float64
	durations   map[string]time.Duration
}

// NewStandardCollector creates a reusable collector
func NewStandardCollector() *StandardCollector {
	return &StandardCollector{
		samples:   make(map[string][]float64),
		durations: make(map[string]time.Duration),
	}
}

func (c *StandardCollector) Collect(metrics MetricBundle, dt time.Duration) {
	c.generations++
	c.elapsed += dt

	for key, value := range metrics {
		c.samples[key] = append(c.samples[key], value)

		// Boolean metrics: accumulate time when > 0.5
		if value > 0.5 {
			c.durations[key] += dt
		}
	}
}

// Finalize emits avg_, std_, min_, max_ and time_ entries per collected key
func (c *StandardCollector) Finalize(final MetricBundle) MetricBundle {
	result := make(MetricBundle)

	result[MetricGenerations] = float64(c.generations)
	result[MetricSeconds] = c.elapsed.Seconds()

	for key, values := range c.samples {
		if len(values) == 0 {
			continue
		}
		mean, std := stat.MeanStdDev(values, nil)
		result["avg_"+key] = mean
		if len(values) > 1 {
			result["std_"+key] = std
		}
		result["min_"+key] = floats.Min(values)
		result["max_"+key] = floats.Max(values)
	}

	for key, dur := range c.durations {
		result["time_"+key] = dur.Seconds()
	}

	for key, val := range final {
		result[key] = val
	}

	return result
}

func (c *StandardCollector) Reset() {
	c.generations = 0
	c.elapsed = 0
	clear(c.samples)
	clear(c.durations)
}
