// Package logging builds the charmbracelet loggers used by the app, the
// CLI and the file watcher. Library packages return errors and never log.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to stderr with RFC3339 timestamps. level
// is one of debug, info, warn, error or fatal; anything else means info.
func New(prefix, level string) *log.Logger {
	return NewWriter(os.Stderr, prefix, level)
}

// NewWriter is New with an explicit destination.
func NewWriter(w io.Writer, prefix, level string) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          prefix,
	})
	l.SetLevel(ParseLevel(level))
	return l
}

// ParseLevel maps a level name to a log level, defaulting to info.
func ParseLevel(level string) log.Level {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
