package genetic

import (
	"math"
	"math/rand/v2"
)

// minRate is the smallest rate representable after rounding to three decimals
const minRate = 0.001

// RateController couples the mutation rate to stagnation
// Past Threshold non-improving generations the rate is resampled between Base and Floor,
// which perturbs exploration pressure instead of pushing it in one direction
type RateController struct {
	// Base is the rate used while the best score keeps improving
	Base float64
	// Floor is the other end of the resampling interval
	Floor float64
	// Threshold is the stagnation count that must be exceeded to resample
	Threshold int
}

// Adapt returns Base, or a resampled rate rounded to three decimals once stagnation exceeds Threshold
func (rc *RateController) Adapt(stagnation int, rng *rand.Rand) float64 {
	if stagnation <= rc.Threshold {
		return rc.Base
	}

	lo, hi := rc.Interval()
	rate := lo + rng.Float64()*(hi-lo)
	rate = math.Round(rate*1000) / 1000

	return max(rate, minRate)
}

// Interval returns the ordered resampling bounds
func (rc *RateController) Interval() (lo, hi float64) {
	return min(rc.Base, rc.Floor), max(rc.Base, rc.Floor)
}
