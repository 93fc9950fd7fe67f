package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devsearch-app/backend/auth"
)

func testTokens() auth.TokenService {
	return auth.NewTokenService(map[string]string{"JWT_SECRET": "test-secret"})
}

func protectedEcho(t *testing.T, tokens auth.TokenService) http.Handler {
	t.Helper()
	return newAuthMiddleware(tokens).authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := ctxProfileID(r.Context())
		require.NoError(t, err)
		w.Header().Set("X-Profile-ID", id.String())
		w.Header().Set("X-Username", ctxUsername(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAuthenticatePassesIdentity(t *testing.T) {
	tokens := testTokens()

	id := uuid.New()
	token, err := tokens.GenerateAccessToken(id, "grace")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protectedEcho(t, tokens).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id.String(), rec.Header().Get("X-Profile-ID"))
	assert.Equal(t, "grace", rec.Header().Get("X-Username"))
}

func TestAuthenticateRejectsAnonymous(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()
	protectedEcho(t, testTokens()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing access token")
}

func TestAuthenticateRejectsExpiredToken(t *testing.T) {
	tokens := testTokens()

	token, err := tokens.GenerateToken(uuid.New(), "grace", -time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protectedEcho(t, tokens).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateRejectsTamperedToken(t *testing.T) {
	signer := auth.NewTokenService(map[string]string{"JWT_SECRET": "signing-secret"})
	token, err := signer.GenerateAccessToken(uuid.New(), "grace")
	require.NoError(t, err)

	verifier := auth.NewTokenService(map[string]string{"JWT_SECRET": "verification-secret"})
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protectedEcho(t, verifier).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
