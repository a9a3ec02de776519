package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/taskai/internal/api/shared"
	"github.com/phrazzld/taskai/internal/config"
	"github.com/phrazzld/taskai/internal/service/auth"
)

const testJWTSecret = "test-secret-key-thats-long-enough-for-hs256"

func newTestJWTService(t *testing.T) auth.JWTService {
	t.Helper()

	svc, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:                   testJWTSecret,
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 60 * 24,
	})
	require.NoError(t, err)
	return svc
}

// authProbe records whether the wrapped handler ran and with which user ID.
type authProbe struct {
	called bool
	userID int64
	found  bool
}

func (p *authProbe) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.called = true
		p.userID, p.found = GetUserID(r)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	t.Run("passes valid token and sets user ID", func(t *testing.T) {
		t.Parallel()

		jwtService := newTestJWTService(t)
		token, err := jwtService.GenerateToken(context.Background(), 42)
		require.NoError(t, err)

		probe := &authProbe{}
		mw := NewAuthMiddleware(jwtService)

		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		mw.Authenticate(probe.handler()).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, probe.called)
		assert.True(t, probe.found)
		assert.Equal(t, int64(42), probe.userID)
	})

	t.Run("rejects missing header", func(t *testing.T) {
		t.Parallel()

		probe := &authProbe{}
		mw := NewAuthMiddleware(newTestJWTService(t))

		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		w := httptest.NewRecorder()
		mw.Authenticate(probe.handler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, probe.called)
	})

	t.Run("rejects non-bearer header", func(t *testing.T) {
		t.Parallel()

		probe := &authProbe{}
		mw := NewAuthMiddleware(newTestJWTService(t))

		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()
		mw.Authenticate(probe.handler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, probe.called)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		t.Parallel()

		probe := &authProbe{}
		mw := NewAuthMiddleware(newTestJWTService(t))

		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		w := httptest.NewRecorder()
		mw.Authenticate(probe.handler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, probe.called)
	})

	t.Run("rejects refresh token on access routes", func(t *testing.T) {
		t.Parallel()

		jwtService := newTestJWTService(t)
		refreshToken, err := jwtService.GenerateRefreshToken(context.Background(), 42)
		require.NoError(t, err)

		probe := &authProbe{}
		mw := NewAuthMiddleware(jwtService)

		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		req.Header.Set("Authorization", "Bearer "+refreshToken)
		w := httptest.NewRecorder()
		mw.Authenticate(probe.handler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, probe.called)
	})
}

func TestGetUserID(t *testing.T) {
	t.Parallel()

	t.Run("returns the stored ID", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := context.WithValue(req.Context(), shared.UserIDContextKey, int64(7))

		userID, ok := GetUserID(req.WithContext(ctx))
		assert.True(t, ok)
		assert.Equal(t, int64(7), userID)
	})

	t.Run("reports missing ID", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		_, ok := GetUserID(req)
		assert.False(t, ok)
	})
}
