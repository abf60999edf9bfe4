package observability

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// LogOptions holds configuration for the console logger.
type LogOptions struct {
	Level           string
	Format          string
	ReportTimestamp bool
	Prefix          string
}

// DefaultLogOptions returns the options used when nothing is configured.
func DefaultLogOptions() LogOptions {
	return LogOptions{
		Level:  "warn",
		Format: "text",
		Prefix: "taskboard",
	}
}

// ParseLogLevel parses a level name into a charmbracelet/log Level.
func ParseLogLevel(level string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel, nil
	case "", "info":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	case "fatal":
		return log.FatalLevel, nil
	default:
		return log.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
}

// ParseLogFormatter parses a formatter name into a charmbracelet/log Formatter.
func ParseLogFormatter(format string) (log.Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	default:
		return log.TextFormatter, fmt.Errorf("unknown log format %q", format)
	}
}

// NewLogger builds a logger writing to w.
func NewLogger(w io.Writer, opts LogOptions) (*log.Logger, error) {
	level, err := ParseLogLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	formatter, err := ParseLogFormatter(opts.Format)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          opts.Prefix,
	}), nil
}

// OpenLogFile opens path for appending and returns a logger writing to it
// together with the file, which the caller must close. The terminal UI
// uses this so log lines never land on the screen it draws.
func OpenLogFile(path string, opts LogOptions) (*log.Logger, *os.File, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	opts.ReportTimestamp = true
	logger, err := NewLogger(f, opts)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return logger, f, nil
}
