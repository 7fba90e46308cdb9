package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// readerConfig stands in for the reader configuration the public entry
// points build with these helpers.
type readerConfig struct {
	windows bool
	source  string
}

func withWindows(enabled bool) Option[*readerConfig] {
	return NoError(func(c *readerConfig) {
		c.windows = enabled
	})
}

func withSource(source string) Option[*readerConfig] {
	return New(func(c *readerConfig) error {
		if source == "" {
			return errors.New("source must not be empty")
		}
		c.source = source

		return nil
	})
}

func TestApplyInOrder(t *testing.T) {
	cfg := &readerConfig{windows: true}

	err := Apply(cfg, withWindows(false), withSource("mapped"))
	require.NoError(t, err)
	require.False(t, cfg.windows)
	require.Equal(t, "mapped", cfg.source)
}

func TestApplyStopsAtFirstError(t *testing.T) {
	cfg := &readerConfig{}

	err := Apply(cfg, withSource(""), withWindows(true))
	require.Error(t, err)
	require.False(t, cfg.windows, "options after the failing one must not run")
}

func TestApplyNoOptions(t *testing.T) {
	cfg := &readerConfig{windows: true}

	require.NoError(t, Apply(cfg))
	require.True(t, cfg.windows)
}
