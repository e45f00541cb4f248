// Package logging provides the diagnostic channel of the window generator.
// Level and prefix can be overridden from the environment.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// LevelEnv selects the log level: debug, info, warn, error (default: info)
	LevelEnv = "WINDOW_GEN_LOG_LEVEL"
	// PrefixEnv overrides the log prefix (default: "window-gen")
	PrefixEnv = "WINDOW_GEN_LOG_PREFIX"

	defaultPrefix = "window-gen"
)

// New creates a logger writing to w. debug forces the debug level regardless of the environment.
func New(w io.Writer, debug bool) *log.Logger {
	lg := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	lg.SetLevel(levelFromEnv())
	if debug {
		lg.SetLevel(log.DebugLevel)
	}

	prefix := os.Getenv(PrefixEnv)
	if prefix == "" {
		prefix = defaultPrefix
	}
	return lg.WithPrefix(prefix)
}

// Discard returns a logger that drops everything, for tests and library callers.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func levelFromEnv() log.Level {
	switch os.Getenv(LevelEnv) {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
