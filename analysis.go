package lsystem

import (
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// GrowthSample records one generation of a growth analysis.
type GrowthSample struct {
	Generation int
	Length     int
	Expansion  float64 // length relative to the previous generation
	Drawable   int     // symbols bound to a Forward/Move command
}

// GrowthProfile is the per-generation growth record of one seeded
// derivation. It shows how close a grammar is to the configured
// length cap without building any geometry.
type GrowthProfile struct {
	Seed    uint64
	Samples []GrowthSample
}

// AnalyseGrowth restarts the engine and records word length,
// expansion ratio, and drawable-symbol count for each generation.
func (l *LSystem) AnalyseGrowth(generations int) (*GrowthProfile, error) {
	l.Reset()
	profile := &GrowthProfile{Seed: l.seed}

	record := func(w Word) {
		sample := GrowthSample{Generation: len(profile.Samples), Length: len(w)}
		for _, sym := range w {
			if cmd, ok := l.Grammar.Bindings[sym.Token]; ok && (cmd.Op == OpForward || cmd.Op == OpMove) {
				sample.Drawable++
			}
		}
		if n := len(profile.Samples); n > 0 && profile.Samples[n-1].Length > 0 {
			sample.Expansion = float64(sample.Length) / float64(profile.Samples[n-1].Length)
		}
		profile.Samples = append(profile.Samples, sample)
	}

	record(l.pool.Current())
	for g := 0; g < generations; g++ {
		if _, err := l.Step(); err != nil {
			return nil, err
		}
		record(l.pool.Current())
	}
	return profile, nil
}

// RenderChart writes a line chart of word length and drawable symbols
// per generation.
func (p *GrowthProfile) RenderChart(w io.Writer) error {
	line := charts.NewLine()
	line.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title:    "Derivation Growth",
		Subtitle: "seed " + strconv.FormatUint(p.Seed, 10),
	}))

	labels := make([]string, len(p.Samples))
	lengths := make([]opts.LineData, len(p.Samples))
	drawable := make([]opts.LineData, len(p.Samples))
	for i, s := range p.Samples {
		labels[i] = strconv.Itoa(s.Generation)
		lengths[i] = opts.LineData{Value: s.Length}
		drawable[i] = opts.LineData{Value: s.Drawable}
	}

	line.SetXAxis(labels).
		AddSeries("word length", lengths).
		AddSeries("drawable symbols", drawable)
	return line.Render(w)
}

// RenderExpansionChart writes a bar chart of the generation-over-
// generation expansion ratio.
func (p *GrowthProfile) RenderExpansionChart(w io.Writer) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title:    "Expansion Ratio",
		Subtitle: "seed " + strconv.FormatUint(p.Seed, 10),
	}))

	labels := make([]string, 0, len(p.Samples))
	ratios := make([]opts.BarData, 0, len(p.Samples))
	for _, s := range p.Samples {
		if s.Generation == 0 {
			continue
		}
		labels = append(labels, strconv.Itoa(s.Generation))
		ratios = append(ratios, opts.BarData{Value: s.Expansion})
	}

	bar.SetXAxis(labels).AddSeries("expansion", ratios)
	return bar.Render(w)
}

// ServeAnalysis runs the growth analysis once and serves its charts
// over HTTP until the listener fails.
func (l *LSystem) ServeAnalysis(addr string, generations int) error {
	profile, err := l.AnalyseGrowth(generations)
	if err != nil {
		return err
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/growth", func(w http.ResponseWriter, _ *http.Request) {
		if err := profile.RenderChart(w); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
	mux.HandleFunc("/expansion", func(w http.ResponseWriter, _ *http.Request) {
		if err := profile.RenderExpansionChart(w); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
	log.Println("serving growth analysis on", addr)
	return http.ListenAndServe(addr, mux)
}
