package log

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLoggerTagsServiceAndEnv(t *testing.T) {
	var buf strings.Builder
	logger := newLogger(&buf, "api", "production")

	logger.Info().Msg("hello")

	out := buf.String()
	require.Contains(t, out, "service=api")
	require.Contains(t, out, "env=production")
	require.Contains(t, out, "hello")
}

func TestProductionSuppressesDebug(t *testing.T) {
	var buf strings.Builder
	logger := newLogger(&buf, "api", "production")

	logger.Debug().Msg("noise")
	require.Empty(t, buf.String())

	// Restore the default for whichever test runs next.
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
}

func TestDevelopmentKeepsDebug(t *testing.T) {
	var buf strings.Builder
	logger := newLogger(&buf, "api", "development")

	logger.Debug().Msg("detail")
	require.Contains(t, buf.String(), "detail")
}
