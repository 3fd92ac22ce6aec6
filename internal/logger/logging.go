// Package logger configures charmbracelet/log for the quickswitch binaries.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New creates a charm logger writing to stderr at the global log level.
// stdout is reserved for IPC frames and command output.
func New(prefix string) *log.Logger {
	return NewWithWriter(os.Stderr, prefix)
}

// NewWithWriter creates a charm logger writing to w at the global log level.
func NewWithWriter(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: log.GetLevel() == log.DebugLevel,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// Setup points the global logger at stderr and sets its level. debug wins
// over level; an unknown level falls back to warn.
func Setup(level string, debug bool) log.Level {
	log.SetOutput(os.Stderr)

	lvl := log.WarnLevel
	if debug {
		lvl = log.DebugLevel
	} else if level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			log.Warnf("Unknown log level %q, using warn", level)
		} else {
			lvl = parsed
		}
	}

	log.SetLevel(lvl)
	log.SetReportTimestamp(lvl == log.DebugLevel)
	return lvl
}
