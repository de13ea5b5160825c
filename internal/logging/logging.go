// Package logging configures the process-wide slog logger. The TUI owns the
// terminal, so in TUI mode records go to a log file; CLI commands log to
// stderr.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Mode selects where log records are written.
type Mode int

const (
	ModeCLI Mode = iota
	ModeTUI
)

func (m Mode) String() string {
	switch m {
	case ModeCLI:
		return "cli"
	case ModeTUI:
		return "tui"
	default:
		return "unknown"
	}
}

// Options configure Setup.
type Options struct {
	Mode  Mode
	Level slog.Level
	// LogFile receives records in TUI mode. Parent directories are created.
	LogFile string
	// Output receives records in CLI mode; nil means os.Stderr.
	Output io.Writer
}

// ParseLevel maps debug, info, warn and error (any case) to a slog level. An
// empty name is info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", name)
	}
}

// Setup builds a text-handler logger, installs it as the slog default and
// returns it with a function that releases its output.
func Setup(opts Options) (*slog.Logger, func() error, error) {
	handlerOpts := &slog.HandlerOptions{Level: opts.Level}
	closer := func() error { return nil }

	var out io.Writer
	switch opts.Mode {
	case ModeTUI:
		if strings.TrimSpace(opts.LogFile) == "" {
			return nil, nil, fmt.Errorf("log file is required in %s mode", opts.Mode)
		}
		f, err := openLogFile(opts.LogFile)
		if err != nil {
			return nil, nil, err
		}
		out = f
		closer = f.Close
	default:
		out = opts.Output
		if out == nil {
			out = os.Stderr
		}
	}

	logger := slog.New(slog.NewTextHandler(out, handlerOpts))
	slog.SetDefault(logger)
	return logger, closer, nil
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
