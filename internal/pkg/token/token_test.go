package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndDecode(t *testing.T) {
	raw, err := Sign("secret", 42, "teacher", time.Hour)
	require.NoError(t, err)

	claims, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "teacher", claims.Role)
	assert.True(t, claims.IsActive)
}

func TestDecodeIgnoresSignature(t *testing.T) {
	// the dashboard never holds the signing key, so decoding must work
	// for tokens signed with any secret
	raw, err := Sign("some-other-secret", 7, "admin", time.Hour)
	require.NoError(t, err)

	claims, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode("not.a.jwt")
	assert.Error(t, err)

	_, err = Decode("")
	assert.Error(t, err)
}
