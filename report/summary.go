package report

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/lixenwraith/grayevo/genetic/persistence"
)

// WriteSummary prints the end-of-run block
func WriteSummary(w io.Writer, r persistence.Report) error {
	elapsed := r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond)

	lines := []string{
		fmt.Sprintf("Run:          %s", r.RunID),
		fmt.Sprintf("Target:       %s (%dx%d, %s cells)", r.Image, r.Width, r.Height, humanize.Comma(int64(r.Width*r.Height))),
		fmt.Sprintf("Status:       %s after %s generations", r.Status, humanize.Comma(int64(r.Generations))),
		fmt.Sprintf("Best fitness: %s", humanize.Comma(r.BestFitness)),
		fmt.Sprintf("Similarity:   %s%%", humanize.FtoaWithDigits(r.Similarity*100, 2)),
		fmt.Sprintf("Elapsed:      %s", elapsed),
		fmt.Sprintf("Seed:         %d", r.Seed),
	}

	for _, key := range slices.Sorted(maps.Keys(r.Summary)) {
		lines = append(lines, fmt.Sprintf("  %-22s %s", key, humanize.FtoaWithDigits(r.Summary[key], 4)))
	}

	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
