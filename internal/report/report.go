// Package report turns benchmark timings into statistics and appends them to a markdown report.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"
	"github.com/montanaflynn/stats"
)

// Phase names, in the order they run inside one iteration.
const (
	PhaseParsing       = "parsing"
	PhaseAlgorithm     = "algorithm"
	PhaseSerialization = "serialization"
)

// Summary Statistics of a series of samples, in milliseconds.
type Summary struct {
	Samples  int
	Mean     float64
	Variance float64
	StdDev   float64
	Min      float64
	Median   float64
	P90      float64
	Max      float64
}

// Summarize Computes the statistics of the samples. At least one sample is required.
func Summarize(samples []time.Duration) (Summary, error) {
	data := make(stats.Float64Data, len(samples))
	for i, d := range samples {
		data[i] = float64(d.Nanoseconds()) / float64(time.Millisecond)
	}

	s := Summary{Samples: len(samples)}
	var err error
	if s.Mean, err = stats.Mean(data); err != nil {
		return Summary{}, fmt.Errorf("mean: %w", err)
	}
	if s.Variance, err = stats.PopulationVariance(data); err != nil {
		return Summary{}, fmt.Errorf("variance: %w", err)
	}
	if s.StdDev, err = stats.StandardDeviationPopulation(data); err != nil {
		return Summary{}, fmt.Errorf("standard deviation: %w", err)
	}
	if s.Min, err = stats.Min(data); err != nil {
		return Summary{}, fmt.Errorf("min: %w", err)
	}
	if s.Median, err = stats.Median(data); err != nil {
		return Summary{}, fmt.Errorf("median: %w", err)
	}
	if s.P90, err = stats.Percentile(data, 90); err != nil {
		return Summary{}, fmt.Errorf("percentile 90: %w", err)
	}
	if s.Max, err = stats.Max(data); err != nil {
		return Summary{}, fmt.Errorf("max: %w", err)
	}
	return s, nil
}

// FstInfo Size of an fst file and of the fst it holds.
type FstInfo struct {
	Path      string
	Bytes     int64
	NumStates int
	NumTrs    int
}

func (i FstInfo) String() string {
	return fmt.Sprintf("`%s` (%s, %s states, %s transitions)",
		i.Path, humanize.Bytes(uint64(i.Bytes)), humanize.Comma(int64(i.NumStates)), humanize.Comma(int64(i.NumTrs)))
}

// PhaseTimings The samples recorded for one phase, one per timed iteration.
type PhaseTimings struct {
	Name    string
	Samples []time.Duration
}

// Entry One benchmark run as appended to the report.
type Entry struct {
	Algorithm string
	Date      time.Time
	WarmUps   int
	Iters     int
	Input     FstInfo
	Output    FstInfo
	Phases    []PhaseTimings
}

// Markdown Formats the entry as a markdown section.
func (e *Entry) Markdown() (string, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "## %s\n\n", e.Algorithm)
	fmt.Fprintf(&sb, "- Date: %s\n", e.Date.UTC().Format(time.RFC3339))
	fmt.Fprintf(&sb, "- Input: %s\n", e.Input)
	fmt.Fprintf(&sb, "- Output: %s\n", e.Output)
	fmt.Fprintf(&sb, "- Warm-ups: %d, iterations: %d\n", e.WarmUps, e.Iters)

	samples := 0
	if len(e.Phases) > 0 {
		samples = len(e.Phases[0].Samples)
	}
	fmt.Fprintf(&sb, "- Samples: %d\n\n", samples)

	sb.WriteString("| Phase | Mean (ms) | Std dev (ms) | Variance (ms²) | Min (ms) | Median (ms) | P90 (ms) | Max (ms) |\n")
	sb.WriteString("|---|---:|---:|---:|---:|---:|---:|---:|\n")
	for _, p := range e.Phases {
		if len(p.Samples) != samples {
			return "", fmt.Errorf("phase %s has %d samples, expected %d", p.Name, len(p.Samples), samples)
		}
		s, err := Summarize(p.Samples)
		if err != nil {
			return "", fmt.Errorf("phase %s: %w", p.Name, err)
		}
		fmt.Fprintf(&sb, "| %s | %.3f | %.3f | %.3f | %.3f | %.3f | %.3f | %.3f |\n",
			p.Name, s.Mean, s.StdDev, s.Variance, s.Min, s.Median, s.P90, s.Max)
	}
	sb.WriteString("\n")
	return sb.String(), nil
}

// Append Adds the entry at the end of the report file, creating it if needed, and returns the markdown written.
func Append(path string, e *Entry) (string, error) {
	md, err := e.Markdown()
	if err != nil {
		return "", err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := io.WriteString(file, md); err != nil {
		_ = file.Close()
		return "", fmt.Errorf("write report %s: %w", path, err)
	}
	return md, file.Close()
}

// Render Prints markdown for a terminal. An empty style picks dark or light from the terminal background.
func Render(w io.Writer, md string, style string) error {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(120)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return err
	}
	out, err := r.Render(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
