package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitRespectsRequestedLevel(t *testing.T) {
	lg, err := Init("debug", "dev")
	require.NoError(t, err)
	defer lg.Closer()

	assert.Equal(t, zapcore.DebugLevel, lg.Level.Level())
	assert.True(t, lg.Base.Core().Enabled(zapcore.DebugLevel))
}

func TestInitUnknownLevelFallsBackToInfo(t *testing.T) {
	lg, err := Init("chatty", "prod")
	require.NoError(t, err)
	defer lg.Closer()

	assert.Equal(t, zapcore.InfoLevel, lg.Level.Level())
	assert.False(t, lg.Base.Core().Enabled(zapcore.DebugLevel))
}

func TestInitTrimsAndLowercasesLevel(t *testing.T) {
	lg, err := Init("  WARN ", "dev")
	require.NoError(t, err)
	defer lg.Closer()

	assert.Equal(t, zapcore.WarnLevel, lg.Level.Level())
}
