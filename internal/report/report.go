// Package report renders harvest results for the terminal.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/github-harvest/internal/domain"
	"github.com/naka-gawa/github-harvest/internal/usecase"
)

// Summary describes the star distribution of a harvest.
type Summary struct {
	Count  int
	Total  int
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	P90    float64
}

// Summarize computes star statistics. An empty harvest yields a zero Summary.
func Summarize(entries []domain.Entry) (Summary, error) {
	if len(entries) == 0 {
		return Summary{}, nil
	}
	data := make(stats.Float64Data, 0, len(entries))
	total := 0
	for _, e := range entries {
		data = append(data, float64(e.Stars))
		total += e.Stars
	}

	s := Summary{Count: len(entries), Total: total}
	var err error
	if s.Min, err = data.Min(); err != nil {
		return Summary{}, fmt.Errorf("failed to compute minimum: %w", err)
	}
	if s.Max, err = data.Max(); err != nil {
		return Summary{}, fmt.Errorf("failed to compute maximum: %w", err)
	}
	if s.Mean, err = data.Mean(); err != nil {
		return Summary{}, fmt.Errorf("failed to compute mean: %w", err)
	}
	if s.Median, err = data.Median(); err != nil {
		return Summary{}, fmt.Errorf("failed to compute median: %w", err)
	}
	if s.P90, err = data.PercentileNearestRank(90); err != nil {
		return Summary{}, fmt.Errorf("failed to compute 90th percentile: %w", err)
	}
	return s, nil
}

// RenderSummary writes the summary followed by the top entries by stars.
// top <= 0 lists every entry.
func RenderSummary(w io.Writer, s Summary, entries []domain.Entry, top int) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Repositories", "Total stars", "Min", "Median", "Mean", "P90", "Max"})
	t.AppendRow(table.Row{s.Count, s.Total, s.Min, s.Median, fmt.Sprintf("%.1f", s.Mean), s.P90, s.Max})
	t.SetStyle(table.StyleRounded)
	t.Render()

	sorted := make([]domain.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Stars > sorted[j].Stars
	})
	if top > 0 && top < len(sorted) {
		sorted = sorted[:top]
	}

	rt := table.NewWriter()
	rt.SetOutputMirror(w)
	rt.AppendHeader(table.Row{"#", "Repository", "Stars"})
	for i, e := range sorted {
		rt.AppendRow(table.Row{i + 1, e.Name, e.Stars})
	}
	rt.SetStyle(table.StyleRounded)
	rt.Render()
}

// RenderChecks writes the checks whose star count moved since the harvest.
// It returns how many were written.
func RenderChecks(w io.Writer, checks []usecase.Check) int {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Repository", "Harvested", "Current", "Drift"})
	drifted := 0
	for _, c := range checks {
		if c.Drift() == 0 {
			continue
		}
		drifted++
		t.AppendRow(table.Row{c.Entry.Name, c.Entry.Stars, c.Actual, fmt.Sprintf("%+d", c.Drift())})
	}
	t.AppendFooter(table.Row{"", "", "Drifted", fmt.Sprintf("%d/%d", drifted, len(checks))})
	t.SetStyle(table.StyleRounded)
	t.Render()
	return drifted
}
