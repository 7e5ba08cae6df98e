// Package logutils configures the process wide slog logger for the
// fleet IAM server and its tools.
package logutils

import (
	"flag"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/gravitational/trace"
)

// Config configures the default logger.
type Config struct {
	// Severity is the minimum level that gets emitted, one of the
	// slog level names. Defaults to INFO.
	Severity string
	// Format selects the log sink, "text" (stderr) or "journal"
	// (systemd journal). Defaults to "text".
	Format string
	// Output overrides the destination stream of the text format.
	// Used by tests, defaults to stderr.
	Output io.Writer
}

const (
	// FormatText emits human readable key=value lines.
	FormatText = "text"
	// FormatJournal emits entries to the systemd journal.
	FormatJournal = "journal"
)

// Initialize builds a logger from the config, installs it as the slog
// default and returns it together with the level that can be adjusted
// at runtime.
func Initialize(cfg Config) (*slog.Logger, *slog.LevelVar, error) {
	level := new(slog.LevelVar)
	if cfg.Severity != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(cfg.Severity)); err != nil {
			return nil, nil, trace.BadParameter("unknown log severity %q", cfg.Severity)
		}
		level.Set(l)
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	var handler slog.Handler
	switch cfg.Format {
	case "", FormatText:
		handler = slog.NewTextHandler(output, &slog.HandlerOptions{Level: level})
	case FormatJournal:
		h, err := newJournalHandler(level)
		if err != nil {
			return nil, nil, trace.Wrap(err)
		}
		handler = h
	default:
		return nil, nil, trace.BadParameter("unknown log format %q", cfg.Format)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger, level, nil
}

// InitLoggerForTests installs a logger suitable for test runs: debug
// to stderr under -v, otherwise discarded.
func InitLoggerForTests() {
	// Parse flags to check testing.Verbose().
	flag.Parse()

	level := slog.LevelDebug
	w := io.Writer(os.Stderr)
	if !testing.Verbose() {
		level = slog.LevelError
		w = io.Discard
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
