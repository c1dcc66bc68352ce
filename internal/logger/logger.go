package logger

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

type Config struct {
	Debug bool
	// Prefix every line with an RFC 3339 timestamp.
	Timestamps bool
}

// New Returns the logger of the benchmark driver, writing to w.
func New(w io.Writer, cfg Config) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		Prefix:          "fstbench",
		ReportTimestamp: cfg.Timestamps,
		TimeFormat:      time.RFC3339,
	})
	if cfg.Debug {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

// Discard Returns a logger dropping everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
