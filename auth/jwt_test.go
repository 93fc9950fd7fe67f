package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devsearch-app/backend/errs"
)

func testTokens() TokenService {
	return NewTokenService(map[string]string{"JWT_SECRET": "test-secret"})
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := testTokens()

	id := uuid.New()
	tokenStr, err := tokens.GenerateAccessToken(id, "grace")
	require.NoError(t, err)

	claims, err := tokens.ParseToken(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "grace", claims.Username)

	parsed, err := claims.ProfileID()
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestTokenExpired(t *testing.T) {
	tokens := testTokens()

	tokenStr, err := tokens.GenerateToken(uuid.New(), "grace", -time.Minute)
	require.NoError(t, err)

	_, err = tokens.ParseToken(tokenStr)
	require.Error(t, err)
	assert.True(t, errs.IsUnauthorized(err))
}

func TestTokenWrongSecret(t *testing.T) {
	tokenStr, err := testTokens().GenerateAccessToken(uuid.New(), "grace")
	require.NoError(t, err)

	other := NewTokenService(map[string]string{"JWT_SECRET": "different-secret"})
	_, err = other.ParseToken(tokenStr)
	require.Error(t, err)
	assert.True(t, errs.IsUnauthorized(err))
}

func TestTokenGarbage(t *testing.T) {
	_, err := testTokens().ParseToken("not.a.token")
	require.Error(t, err)
	assert.True(t, errs.IsUnauthorized(err))
}

func TestAccessTTLFromConfig(t *testing.T) {
	assert.Equal(t, 24*time.Hour, NewTokenService(nil).accessTTL)
	assert.Equal(t, 6*time.Hour,
		NewTokenService(map[string]string{"JWT_EXPIRES_HOURS": "6"}).accessTTL)

	// Nonsense falls back to the default.
	assert.Equal(t, 24*time.Hour,
		NewTokenService(map[string]string{"JWT_EXPIRES_HOURS": "-3"}).accessTTL)
}
