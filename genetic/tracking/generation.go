package tracking

import "github.com/lixenwraith/grayevo/genetic"

// FromSnapshot converts a generation snapshot into a metric bundle
func FromSnapshot[S genetic.Solution, F genetic.Numeric](snap genetic.Snapshot[S, F]) MetricBundle {
	improved := 0.0
	if snap.Stagnation == 0 {
		improved = 1
	}
	return MetricBundle{
		MetricBestScore:    float64(snap.Stats.BestScore),
		MetricWorstScore:   float64(snap.Stats.WorstScore),
		MetricMeanScore:    snap.Stats.AverageScore,
		MetricMutationRate: snap.MutationRate,
		MetricStagnation:   float64(snap.Stagnation),
		MetricImproved:     improved,
	}
}

// Observe returns an observer feeding c, chained before next when next is non-nil
func Observe[S genetic.Solution, F genetic.Numeric](c Collector, next genetic.ObserverFunc[S, F]) genetic.ObserverFunc[S, F] {
	return func(snap genetic.Snapshot[S, F]) {
		c.Collect(FromSnapshot(snap), snap.Elapsed)
		if next != nil {
			next(snap)
		}
	}
}
