// Package logger builds prefixed charm loggers that share the process-wide level.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New returns a logger tagged with prefix that writes to stderr at the global level.
// Stdout stays free for the IPC protocol and the interactive CLI.
func New(prefix string) *log.Logger {
	return NewWithWriter(os.Stderr, prefix)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: log.GetLevel() <= log.DebugLevel,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// Configure sets the global level from a level name. Debug overrides the name.
// Unknown names fall back to info.
func Configure(level string, debug bool) log.Level {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	if debug {
		lvl = log.DebugLevel
	}

	log.SetOutput(os.Stderr)
	log.SetLevel(lvl)
	log.SetReportTimestamp(lvl <= log.DebugLevel)
	return lvl
}
