package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitJWTSecretRequiresValue(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	assert.Error(t, InitJWTSecret())
}

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-signing-key")
	require.NoError(t, InitJWTSecret())

	token, err := GenerateAccessToken("session-abc")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "session-abc", claims.Session)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-signing-key")
	require.NoError(t, InitJWTSecret())

	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}
