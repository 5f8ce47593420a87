package fitness

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/grayevo/genetic"
)

// ErrDimensionMismatch marks a comparison between grids of different shape
var ErrDimensionMismatch = errors.New("dimension mismatch")

// DimensionError describes the two shapes that failed to match
type DimensionError struct {
	Got, Want [2]int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%v: individual %dx%d, target %dx%d",
		ErrDimensionMismatch, e.Got[0], e.Got[1], e.Want[0], e.Want[1])
}

func (e *DimensionError) Is(target error) bool {
	return target == ErrDimensionMismatch
}

// Check returns a *DimensionError when the grids differ in shape
func Check(individual, target genetic.Grid) error {
	if individual.SameShape(target) {
		return nil
	}
	return &DimensionError{
		Got:  [2]int{individual.Width, individual.Height},
		Want: [2]int{target.Width, target.Height},
	}
}

// AbsDiff returns the sum of absolute per-cell intensity differences
// Panics with a *DimensionError on shape mismatch: callers never compare foreign grids
func AbsDiff(individual, target genetic.Grid) int64 {
	if err := Check(individual, target); err != nil {
		panic(err)
	}

	var sum int64
	for i, v := range individual.Pix {
		d := int64(v) - int64(target.Pix[i])
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return sum
}

// Against binds the target into an evaluator
func Against(target genetic.Grid) genetic.EvaluatorFunc[genetic.Grid, int64] {
	return func(individual genetic.Grid) int64 {
		return AbsDiff(individual, target)
	}
}

// MaxScore is the worst possible score for a grid of n cells
func MaxScore(n int) int64 {
	return int64(n) * genetic.MaxIntensity
}
