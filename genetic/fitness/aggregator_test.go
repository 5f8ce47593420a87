package fitness

import (
	"math"
	"testing"
)

func TestNormalizeCap(t *testing.T) {
	n := NormalizeCap(100)

	tests := []struct {
		raw, want float64
	}{
		{-5, 0},
		{0, 0},
		{50, 0.5},
		{100, 1},
		{150, 1},
	}
	for _, tt := range tests {
		if got := n(tt.raw); got != tt.want {
			t.Errorf("NormalizeCap(100)(%v): expected %v, got %v", tt.raw, tt.want, got)
		}
	}

	if got := NormalizeCap(0)(10); got != 0 {
		t.Errorf("expected 0 for non-positive cap, got %v", got)
	}
}

func TestNormalizeInverse(t *testing.T) {
	n := NormalizeInverse(10)
	if got := n(0); got != 1 {
		t.Errorf("expected 1 at zero, got %v", got)
	}
	if got := n(10); got != 0.5 {
		t.Errorf("expected 0.5 at scale, got %v", got)
	}
}

func TestSimilarity(t *testing.T) {
	if got := Similarity(0, 4); got != 1 {
		t.Errorf("expected exact match similarity 1, got %v", got)
	}
	if got := Similarity(MaxScore(4), 4); got != 0 {
		t.Errorf("expected worst similarity 0, got %v", got)
	}
	if got := Similarity(MaxScore(4)/2, 4); math.Abs(got-0.5) > 1e-3 {
		t.Errorf("expected about 0.5, got %v", got)
	}
	if got := Similarity(10, 0); got != 0 {
		t.Errorf("expected 0 for empty grid, got %v", got)
	}
}

func TestCloseness(t *testing.T) {
	// one intensity step per cell on average
	if got := Closeness(16, 16); got != 0.5 {
		t.Errorf("expected 0.5, got %v", got)
	}
}
