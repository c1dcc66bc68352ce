package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/geange/fst"
	"github.com/geange/fst/internal/bench"
	"github.com/geange/fst/internal/config"
	"github.com/geange/fst/internal/logger"
	"github.com/geange/fst/internal/report"
)

const usage = "fstbench <n_warm_ups> <n_iters> <path_in> <path_out> <path_report_md>"

func Execute() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		logger.New(os.Stderr, logger.Config{}).Error("benchmark failed", "err", err)
		os.Exit(1)
	}
}

// Positional arguments, parsed before any file is touched.
type positional struct {
	warmUps    int
	iters      int
	pathIn     string
	pathOut    string
	pathReport string
}

func parseArgs(args []string) (*positional, error) {
	if len(args) != 5 {
		return nil, fmt.Errorf("expected 5 arguments, got %d (usage: %s)", len(args), usage)
	}
	warmUps, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, fmt.Errorf("n_warm_ups: %w", err)
	}
	iters, err := strconv.Atoi(args[1])
	if err != nil {
		return nil, fmt.Errorf("n_iters: %w", err)
	}
	if warmUps < 0 {
		return nil, fmt.Errorf("n_warm_ups must be >= 0, got %d", warmUps)
	}
	if iters < 1 {
		return nil, fmt.Errorf("n_iters must be >= 1, got %d", iters)
	}
	for i, name := range []string{"path_in", "path_out", "path_report_md"} {
		if args[2+i] == "" {
			return nil, errors.New(name + " must not be empty")
		}
	}
	return &positional{
		warmUps:    warmUps,
		iters:      iters,
		pathIn:     args[2],
		pathOut:    args[3],
		pathReport: args[4],
	}, nil
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var pos *positional

	cmd := &cobra.Command{
		Use:           usage,
		Short:         "Time one fst algorithm and append the result to a markdown report",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(_ *cobra.Command, args []string) error {
			var err error
			pos, err = parseArgs(args)
			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd)
			if err != nil {
				return err
			}
			log := logger.New(stderr, logger.Config{Debug: cfg.Debug, Timestamps: cfg.Timestamps})

			algo, err := bench.Lookup(cfg.Algorithm)
			if err != nil {
				return err
			}
			format, err := fst.ParseFormat(cfg.Format)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(stdout, "Running benchmark for algorithm %s\n", algo.Name)
			_, md, err := bench.Benchmark(bench.Config{
				WarmUps:    pos.warmUps,
				Iters:      pos.iters,
				PathIn:     pos.pathIn,
				PathOut:    pos.pathOut,
				PathReport: pos.pathReport,
				Format:     format,
			}, algo, log)
			if err != nil {
				return err
			}

			if cfg.Render {
				return report.Render(stdout, md, cfg.Style)
			}
			return nil
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	config.AddFlags(cmd)
	return cmd
}
