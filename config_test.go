package uthread

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestResolveConfig_Defaults(t *testing.T) {
	cfg := resolveConfig(nil)
	assert.Equal(t, DefaultMaxThreads, cfg.MaxThreads)
	assert.Equal(t, DefaultStackSize, cfg.StackSize)
}

func TestResolveConfig_OptionsOverrideDefaults(t *testing.T) {
	cfg := resolveConfig([]Option{
		WithMaxThreads(8),
		WithStackSize(65536),
	})
	assert.Equal(t, 8, cfg.MaxThreads)
	assert.Equal(t, 65536, cfg.StackSize)
}

func TestResolveConfig_IgnoresNilOption(t *testing.T) {
	cfg := resolveConfig([]Option{nil, WithMaxThreads(5)})
	assert.Equal(t, 5, cfg.MaxThreads)
}

func TestWithDebugLogging_EnablesAndWritesToGivenWriter(t *testing.T) {
	var buf bytes.Buffer
	cfg := resolveConfig([]Option{WithDebugLogging(&buf)})

	cfg.logger.Debug().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.Equal(t, zerolog.DebugLevel, cfg.logger.GetLevel())
}
