package observability

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitSentryWithoutDSNIsNoop(t *testing.T) {
	flush, err := InitSentry("", "dev", "")
	require.NoError(t, err)
	require.NotNil(t, flush)
	flush()
}

func TestCaptureErrToleratesMissingClient(t *testing.T) {
	assert.NotPanics(t, func() {
		CaptureErr(nil)
		CaptureErr(errors.New("boom"))
	})
}
