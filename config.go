package uthread

import (
	"io"

	"github.com/rs/zerolog"
)

const (
	// DefaultMaxThreads mirrors spec §6's "typically 100".
	DefaultMaxThreads = 100
	// DefaultStackSize mirrors spec §6's "typically 4096" bytes. Go
	// goroutine stacks are runtime-managed and grow on demand, so this
	// value is not used to size an allocation; it is retained purely
	// for interface fidelity with the original C-style constants and is
	// surfaced back through Config for callers who want it.
	DefaultStackSize = 4096
)

// Config holds the two knobs the spec names as compile-time constants
// (MAX_THREADS, STACK_SIZE) plus an injectable logger, resolved through
// functional options the way joeycumines/go-eventloop resolves its
// LoopOption set.
type Config struct {
	MaxThreads int
	StackSize  int
	logger     zerolog.Logger
}

// Option configures a Config.
type Option func(*Config)

// WithMaxThreads overrides DefaultMaxThreads.
func WithMaxThreads(n int) Option {
	return func(c *Config) { c.MaxThreads = n }
}

// WithStackSize overrides DefaultStackSize. Retained for interface
// fidelity only; see the DefaultStackSize doc comment.
func WithStackSize(n int) Option {
	return func(c *Config) { c.StackSize = n }
}

// WithLogger attaches a debug-level logger for dispatch/sleep/teardown
// tracing. The library never logs on the happy path without one.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Config) { c.logger = l }
}

// WithDebugLogging is shorthand for WithLogger(newDebugLogger(w)): a
// timestamped debug-level logger writing to w, for callers who want
// dispatch tracing without building their own zerolog.Logger.
func WithDebugLogging(w io.Writer) Option {
	return func(c *Config) { c.logger = newDebugLogger(w) }
}

func resolveConfig(opts []Option) Config {
	cfg := Config{
		MaxThreads: DefaultMaxThreads,
		StackSize:  DefaultStackSize,
		logger:     defaultLogger,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}
