package fitness

// NormalizeFunc converts a raw metric to a 0-1 score
type NormalizeFunc func(raw float64) float64

// NormalizeInverse creates an inverse normalizer: 1 / (1 + raw/scale)
func NormalizeInverse(scale float64) NormalizeFunc {
	if scale <= 0 {
		scale = 1
	}
	return func(raw float64) float64 {
		return 1.0 / (1.0 + raw/scale)
	}
}

// NormalizeCap creates a capped normalizer: min(raw/max, 1.0)
func NormalizeCap(max float64) NormalizeFunc {
	if max <= 0 {
		return func(raw float64) float64 { return 0 }
	}
	return func(raw float64) float64 {
		v := raw / max
		if v > 1 {
			return 1
		}
		if v < 0 {
			return 0
		}
		return v
	}
}

// Similarity maps a score over n cells to [0,1], 1 being an exact match
func Similarity(score int64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return 1 - NormalizeCap(float64(MaxScore(n)))(float64(score))
}

// Closeness maps a score to (0,1] with a scale of one intensity step per cell
// Unlike Similarity it keeps resolving progress once most cells are near the target
func Closeness(score int64, n int) float64 {
	return NormalizeInverse(float64(n))(float64(score))
}
