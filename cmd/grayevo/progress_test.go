package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/grayevo/genetic"
)

func snapAt(gen int, score int64, elapsed time.Duration) genetic.Snapshot[genetic.Grid, int64] {
	return genetic.Snapshot[genetic.Grid, int64]{
		Generation: gen,
		Best:       genetic.Candidate[genetic.Grid, int64]{Score: score},
		Elapsed:    elapsed,
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		pct    float64
		filled int
	}{
		{0, 0},
		{4.9, 0},
		{5, 1},
		{50, 10},
		{100, 20},
		{150, 20},
	}

	for _, tt := range tests {
		bar := progressBar(tt.pct, 20)
		if got := strings.Count(bar, barFill); got != tt.filled {
			t.Errorf("pct %.1f: expected %d filled, got %d", tt.pct, tt.filled, got)
		}
		if got := len([]rune(bar)); got != 20 {
			t.Errorf("pct %.1f: expected width 20, got %d", tt.pct, got)
		}
	}
}

func TestProgress_Update(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 100, 1000)

	p.Update(snapAt(100, 12345, 1500*time.Millisecond))
	out := buf.String()

	assert.Contains(t, out, "Generation: 100\n")
	assert.Contains(t, out, "Fitness: 12,345 (similarity 51.59%)")
	assert.Contains(t, out, "Total time: 1.500 [s]")
	assert.Contains(t, out, "| 10.0%")
	assert.NotContains(t, out, lineUp)

	buf.Reset()
	p.Update(snapAt(101, 12000, 500*time.Millisecond))
	out = buf.String()
	assert.Equal(t, 4, strings.Count(out, lineUp+lineClear))
	assert.Contains(t, out, "Total time: 2.000 [s]")
	assert.Equal(t, 2*time.Second, p.Total())
}

func TestProgress_HoldStartsFreshBlock(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 4, 10)
	p.Update(snapAt(0, 10, 0))

	release := p.Hold()
	release()

	buf.Reset()
	p.Update(snapAt(1, 5, 0))
	assert.NotContains(t, buf.String(), lineUp)
}

func TestProgress_ZeroMaxGeneration(t *testing.T) {
	var buf bytes.Buffer
	NewProgress(&buf, 4, 0).Update(snapAt(0, 0, 0))
	assert.Contains(t, buf.String(), "100.0%")
}
