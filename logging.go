package uthread

import (
	"io"

	"github.com/rs/zerolog"
)

// defaultLogger is silent on the happy path: spec §7 promises the
// library "does not log successes and produces no output on the happy
// path." Debug tracing (dispatch decisions, sleep accounting, teardown)
// is opt-in via WithLogger or WithDebugLogging.
var defaultLogger = zerolog.New(io.Discard).Level(zerolog.Disabled)

// newDebugLogger returns a zerolog.Logger writing to w at debug level,
// for callers who want dispatch-level tracing. Grounded in the pack's
// zerolog usage (joeycumines/go-utilpkg's logiface-zerolog adapter).
func newDebugLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger().Level(zerolog.DebugLevel)
}
