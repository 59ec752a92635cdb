// Package logger builds the process logger: the log/slog API on top of a
// charmbracelet/log handler.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Format selects the charm formatter
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Options configures New
type Options struct {
	Prefix    string
	Level     string
	Format    Format
	Timestamp bool
	Caller    bool
	Output    io.Writer
}

// New returns a text logger writing to stderr at the given level. Unknown
// levels fall back to info.
func New(prefix, level string) *slog.Logger {
	return NewWithOptions(Options{Prefix: prefix, Level: level, Timestamp: true})
}

// NewWithOptions builds a logger from opts.
func NewWithOptions(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	formatter := log.TextFormatter
	if opts.Format == FormatJSON {
		formatter = log.JSONFormatter
	}

	handler := log.NewWithOptions(out, log.Options{
		Prefix:          opts.Prefix,
		Level:           ParseLevel(opts.Level),
		ReportCaller:    opts.Caller,
		ReportTimestamp: opts.Timestamp,
		Formatter:       formatter,
	})
	return slog.New(handler)
}

// ParseLevel maps a config string onto a charm level
func ParseLevel(level string) log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Discard returns a logger that drops every record
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
