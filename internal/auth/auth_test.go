package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret123", "admin@manpasand.store", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken("secret123", token)
	require.NoError(t, err)
	assert.Equal(t, "admin@manpasand.store", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Greater(t, claims.ExpiresAt, int64(0))
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret123", "admin@manpasand.store", "admin")
	require.NoError(t, err)

	_, err = ValidateToken("other-secret", token)
	require.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	_, err := ValidateToken("secret123", "not-a-jwt")
	require.Error(t, err)
}

func TestPasswordHashVerify(t *testing.T) {
	hash, err := HashPassword("admin123")
	require.NoError(t, err)
	require.NotEqual(t, "admin123", hash)

	require.NoError(t, VerifyPassword(hash, "admin123"))
	require.Error(t, VerifyPassword(hash, "wrong"))
}
