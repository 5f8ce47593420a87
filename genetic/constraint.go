package genetic

import "math/rand/v2"

// Intensity bounds of a grid cell
const (
	MinIntensity = 0
	MaxIntensity = 255
)

// NoisePerturbator adds bounded integer noise to randomly chosen cells
type NoisePerturbator struct {
	// Amplitude bounds the noise to [-Amplitude, Amplitude]
	Amplitude int
}

// Perturb selects each cell independently with probability rate and shifts it by uniform noise
func (np *NoisePerturbator) Perturb(solution *Grid, rate float64, rng *rand.Rand) {
	if solution == nil || solution.Len() == 0 || rate <= 0 {
		return
	}

	mask := make([]bool, solution.Len())
	noise := make([]int, solution.Len())
	span := 2*np.Amplitude + 1

	for i := range mask {
		if rng.Float64() >= rate {
			continue
		}
		mask[i] = true
		noise[i] = rng.IntN(span) - np.Amplitude
	}

	ApplyNoise(*solution, mask, noise)
}

// ApplyNoise adds noise[i] to every cell whose mask is set and clamps to the intensity bounds
func ApplyNoise(g Grid, mask []bool, noise []int) {
	for i := range g.Pix {
		if !mask[i] {
			continue
		}
		g.Pix[i] = Clamp(int(g.Pix[i]) + noise[i])
	}
}

// Clamp enforces intensity bounds
func Clamp(v int) uint8 {
	if v < MinIntensity {
		return MinIntensity
	}
	if v > MaxIntensity {
		return MaxIntensity
	}
	return uint8(v)
}
