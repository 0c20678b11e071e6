package main

import (
	"fmt"
	"io"
	"sort"

	engine "github.com/gfawcettpq/emotional-contagion/pkg/sims/contagion"

	"github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// group aggregates the runs of one parameter combination across seeds.
type group struct {
	label  string
	runs   int
	mean   float64
	stddev float64
	curve  []float64
}

func groupLabel(p paramSet) string {
	if p.mode == engine.ModeConway {
		return fmt.Sprintf("conway spread=%.2f", p.spread)
	}
	return fmt.Sprintf("%s spread=%.2f radius=%d", p.mode, p.spread, p.radius)
}

// summarize groups results by everything but the seed. Groups are ordered by
// mean final intensity, highest first.
func summarize(all []runResult) []group {
	finals := map[string][]float64{}
	curves := map[string][]float64{}
	for _, res := range all {
		key := groupLabel(res.params)
		finals[key] = append(finals[key], res.intensity)
		sum, ok := curves[key]
		if !ok {
			curves[key] = append([]float64(nil), res.curve...)
			continue
		}
		if len(sum) == len(res.curve) {
			floats.Add(sum, res.curve)
		}
	}

	out := make([]group, 0, len(finals))
	for key, xs := range finals {
		mean, std := stat.MeanStdDev(xs, nil)
		if len(xs) < 2 {
			std = 0
		}
		curve := curves[key]
		floats.Scale(1/float64(len(xs)), curve)
		out = append(out, group{label: key, runs: len(xs), mean: mean, stddev: std, curve: curve})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].mean != out[j].mean {
			return out[i].mean > out[j].mean
		}
		return out[i].label < out[j].label
	})
	return out
}

func reportGroups(w io.Writer, groups []group) {
	fmt.Fprintf(w, "\nMean final intensity by parameters:\n")
	for _, g := range groups {
		fmt.Fprintf(w, "  %-36s mean=%.3f sd=%.3f runs=%d\n", g.label, g.mean, g.stddev, g.runs)
	}
}

// writeChart renders each group's mean intensity curve as a PNG line chart.
func writeChart(w io.Writer, groups []group) error {
	var series []chart.Series
	top := 1.0
	for i, g := range groups {
		if len(g.curve) < 2 {
			continue
		}
		xs := make([]float64, len(g.curve))
		for t := range xs {
			xs[t] = float64(t + 1)
		}
		top = max(top, floats.Max(g.curve))
		series = append(series, chart.ContinuousSeries{
			Name:    g.label,
			XValues: xs,
			YValues: g.curve,
			Style:   chart.Style{StrokeColor: chart.GetDefaultColor(i), StrokeWidth: 2},
		})
	}
	if len(series) == 0 {
		return fmt.Errorf("chart: no curve with at least two ticks")
	}
	graph := chart.Chart{
		Width:  960,
		Height: 480,
		XAxis: chart.XAxis{
			Name:  "tick",
			Style: chart.Style{FontSize: 10},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "total intensity",
			Style: chart.Style{FontSize: 10},
			Range: &chart.ContinuousRange{Min: 0, Max: top},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	return nil
}
