package main

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/lixenwraith/grayevo/genetic"
	"github.com/lixenwraith/grayevo/genetic/fitness"
	"github.com/lixenwraith/grayevo/parameter"
)

const (
	lineUp    = "\033[1A"
	lineClear = "\x1b[2K"
	barFill   = "❚"
)

// Progress redraws a four-line status block in place after every generation
type Progress struct {
	mu            sync.Mutex
	w             io.Writer
	cells         int
	maxGeneration int
	total         time.Duration
	drawn         int
}

func NewProgress(w io.Writer, cells, maxGeneration int) *Progress {
	return &Progress{w: w, cells: cells, maxGeneration: maxGeneration}
}

// Update accumulates the generation time and redraws
func (p *Progress) Update(snap genetic.Snapshot[genetic.Grid, int64]) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.total += snap.Elapsed
	lines := p.render(snap)

	var b strings.Builder
	for range p.drawn {
		b.WriteString(lineUp)
		b.WriteString(lineClear)
	}
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	p.drawn = len(lines)

	io.WriteString(p.w, b.String())
}

// Hold blocks redraws until the returned release is called
// The next redraw starts a fresh block below whatever was printed meanwhile
func (p *Progress) Hold() (release func()) {
	p.mu.Lock()
	return func() {
		p.drawn = 0
		p.mu.Unlock()
	}
}

// Total returns the accumulated generation time
func (p *Progress) Total() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}

func (p *Progress) render(snap genetic.Snapshot[genetic.Grid, int64]) []string {
	pct := 100.0
	if p.maxGeneration > 0 {
		pct = float64(snap.Generation) * 100 / float64(p.maxGeneration)
	}

	return []string{
		fmt.Sprintf("Generation: %s", humanize.Comma(int64(snap.Generation))),
		fmt.Sprintf("Fitness: %s (similarity %.2f%%)", humanize.Comma(snap.Best.Score), fitness.Similarity(snap.Best.Score, p.cells)*100),
		fmt.Sprintf("Total time: %.3f [s]", p.total.Seconds()),
		fmt.Sprintf("|%s| %.1f%%", progressBar(pct, parameter.GAProgressBarWidth), pct),
	}
}

// progressBar fills one slot per 100/width percent
func progressBar(pct float64, width int) string {
	filled := int(pct * float64(width) / 100)
	filled = max(0, min(filled, width))
	return strings.Repeat(barFill, filled) + strings.Repeat(" ", width-filled)
}
