// Package logging provides structured logging for venuemap using zerolog.
// Console output is used when the log destination is a terminal and JSON
// otherwise, so reconciliation runs can be piped into log tooling with their
// per-entry fields intact.
//
// A run carries its logger in the context:
//
//	ctx := logging.WithRunID(logging.WithLogger(ctx, &logger), runID)
//	ctx = logging.WithEntry(ctx, "abc123")
//	logging.FromContext(ctx).Warn().Str("field", "acronym").Msg("Conflict")
package logging

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger serves code that runs without a context logger. It honours
// LOG_LEVEL, LOG_FORMAT, LOG_OUTPUT and NO_COLOR until the CLI replaces it.
var defaultLogger = NewLoggerFromConfig(envConfig())

// Default returns the process-wide logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the process-wide logger, including zerolog's global
// log.Logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

func envConfig() *Config {
	cfg := DefaultConfig()
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("LOG_OUTPUT"); v != "" {
		cfg.Output = v
	}
	return cfg
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
