// Package report renders run outcomes for humans
package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// ErrEmptyHistory is returned when there is nothing to plot
var ErrEmptyHistory = errors.New("fitness history is empty")

// HistoryChart builds a line chart of best fitness per generation
func HistoryChart(history []int64, title string) (*charts.Line, error) {
	if len(history) == 0 {
		return nil, ErrEmptyHistory
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: "Best fitness change over time",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Generation",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Best fitness",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)

	generations := make([]string, len(history))
	points := make([]opts.LineData, len(history))
	for i, v := range history {
		generations[i] = strconv.Itoa(i)
		points[i] = opts.LineData{Value: v}
	}

	line.SetXAxis(generations).
		AddSeries("Best fitness", points).
		SetSeriesOptions(
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(len(history) <= 200)}),
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}),
		)

	return line, nil
}

// PlotHistory writes the history chart as a standalone HTML page
func PlotHistory(history []int64, path, title string) error {
	line, err := HistoryChart(history, title)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := line.Render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
