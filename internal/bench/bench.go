// Package bench times one fst algorithm: every iteration parses the input file, runs the algorithm and
// serializes the result, and the three phases are timed separately.
package bench

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/geange/fst"
	"github.com/geange/fst/internal/report"
)

// Config Parameters of one benchmark run.
type Config struct {
	WarmUps    int
	Iters      int
	PathIn     string
	PathOut    string
	PathReport string
	Format     fst.Format
}

func (c *Config) Validate() error {
	switch {
	case c.WarmUps < 0:
		return fmt.Errorf("number of warm-ups must be >= 0, got %d", c.WarmUps)
	case c.Iters < 1:
		return fmt.Errorf("number of iterations must be >= 1, got %d", c.Iters)
	case c.PathIn == "":
		return errors.New("input path must not be empty")
	case c.PathOut == "":
		return errors.New("output path must not be empty")
	case c.PathReport == "":
		return errors.New("report path must not be empty")
	}
	return nil
}

// Timings Durations of the phases of one iteration.
type Timings struct {
	Parsing       time.Duration
	Algorithm     time.Duration
	Serialization time.Duration
}

// Result Everything measured by Run.
type Result struct {
	Algorithm string
	Timings   []Timings
	Input     report.FstInfo
	Output    report.FstInfo
}

// Entry Converts the result into a report entry.
func (r *Result) Entry(cfg *Config, date time.Time) *report.Entry {
	phases := []report.PhaseTimings{
		{Name: report.PhaseParsing},
		{Name: report.PhaseAlgorithm},
		{Name: report.PhaseSerialization},
	}
	for _, t := range r.Timings {
		phases[0].Samples = append(phases[0].Samples, t.Parsing)
		phases[1].Samples = append(phases[1].Samples, t.Algorithm)
		phases[2].Samples = append(phases[2].Samples, t.Serialization)
	}
	return &report.Entry{
		Algorithm: r.Algorithm,
		Date:      date,
		WarmUps:   cfg.WarmUps,
		Iters:     cfg.Iters,
		Input:     r.Input,
		Output:    r.Output,
		Phases:    phases,
	}
}

type Runner struct {
	cfg    Config
	algo   Algorithm
	logger *log.Logger
}

func NewRunner(cfg Config, algo Algorithm, logger *log.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if algo.Run == nil {
		return nil, fmt.Errorf("algorithm %q has no implementation", algo.Name)
	}
	return &Runner{cfg: cfg, algo: algo, logger: logger}, nil
}

// Run Performs the warm-ups, whose timings are dropped, then the timed iterations. The output file holds the
// fst produced by the last iteration.
func (r *Runner) Run() (*Result, error) {
	r.logger.Info("running benchmark", "algorithm", r.algo.Name, "input", r.cfg.PathIn,
		"warm_ups", r.cfg.WarmUps, "iters", r.cfg.Iters)

	var last *fst.VectorFst
	for i := 0; i < r.cfg.WarmUps; i++ {
		t, _, err := r.runOnce()
		if err != nil {
			return nil, fmt.Errorf("warm-up %d: %w", i, err)
		}
		r.logger.Debug("warm-up", "n", i, "algorithm", t.Algorithm)
	}

	result := &Result{
		Algorithm: r.algo.Name,
		Timings:   make([]Timings, 0, r.cfg.Iters),
	}
	for i := 0; i < r.cfg.Iters; i++ {
		t, f, err := r.runOnce()
		if err != nil {
			return nil, fmt.Errorf("iteration %d: %w", i, err)
		}
		r.logger.Debug("iteration", "n", i, "parsing", t.Parsing, "algorithm", t.Algorithm,
			"serialization", t.Serialization)
		result.Timings = append(result.Timings, t)
		last = f
	}

	var err error
	if result.Input, err = r.describe(r.cfg.PathIn, nil); err != nil {
		return nil, err
	}
	if result.Output, err = r.describe(r.cfg.PathOut, last); err != nil {
		return nil, err
	}
	return result, nil
}

// The input is parsed again on every iteration so that in-place algorithms always start from the same fst.
func (r *Runner) runOnce() (Timings, *fst.VectorFst, error) {
	var t Timings

	start := time.Now()
	f, err := fst.ReadFile(r.cfg.PathIn, r.cfg.Format)
	if err != nil {
		return t, nil, err
	}
	parsed := time.Now()

	if err := r.algo.Run(f); err != nil {
		return t, nil, fmt.Errorf("%s: %w", r.algo.Name, err)
	}
	computed := time.Now()

	if err := fst.WriteFile(r.cfg.PathOut, f, r.cfg.Format); err != nil {
		return t, nil, err
	}
	written := time.Now()

	t.Parsing = parsed.Sub(start)
	t.Algorithm = computed.Sub(parsed)
	t.Serialization = written.Sub(computed)
	return t, f, nil
}

// Reports the file size and the fst dimensions; f is loaded from path when nil.
func (r *Runner) describe(path string, f *fst.VectorFst) (report.FstInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return report.FstInfo{}, err
	}
	if f == nil {
		if f, err = fst.ReadFile(path, r.cfg.Format); err != nil {
			return report.FstInfo{}, err
		}
	}
	return report.FstInfo{
		Path:      path,
		Bytes:     stat.Size(),
		NumStates: f.NumStates(),
		NumTrs:    f.TotalTrs(),
	}, nil
}

// Benchmark Runs the benchmark and appends its section to the report. Returns the markdown appended.
func Benchmark(cfg Config, algo Algorithm, logger *log.Logger) (*Result, string, error) {
	runner, err := NewRunner(cfg, algo, logger)
	if err != nil {
		return nil, "", err
	}
	result, err := runner.Run()
	if err != nil {
		return nil, "", err
	}

	md, err := report.Append(cfg.PathReport, result.Entry(&cfg, time.Now()))
	if err != nil {
		return nil, "", fmt.Errorf("report: %w", err)
	}
	logger.Info("report written", "path", cfg.PathReport, "samples", len(result.Timings))
	return result, md, nil
}
