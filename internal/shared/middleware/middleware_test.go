package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trainway/internal/shared/config"
)

func authTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:    "test-secret",
			ExpiresIn: time.Hour,
		},
	}
}

func mintToken(t *testing.T, secret string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"user_id": "7f9c24e5-1b3a-4f0e-9c6d-2a8b5e4d3c1f",
		"email":   "asha@example.com",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

type capturedIdentity struct {
	reached bool
	userID  interface{}
	hasUser bool
}

func runThrough(handler gin.HandlerFunc, authHeader string) (*httptest.ResponseRecorder, *capturedIdentity) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	captured := &capturedIdentity{}
	engine.GET("/whoami", handler, func(c *gin.Context) {
		captured.reached = true
		captured.userID, captured.hasUser = c.Get("user_id")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w, captured
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	w, captured := runThrough(JWTAuthWithConfig(authTestConfig()), "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, captured.reached)
}

func TestJWTAuthRejectsMalformedHeader(t *testing.T) {
	w, captured := runThrough(JWTAuthWithConfig(authTestConfig()), "Token abc")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, captured.reached)
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
	token := mintToken(t, "other-secret")
	w, captured := runThrough(JWTAuthWithConfig(authTestConfig()), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, captured.reached)
}

func TestJWTAuthAttachesIdentity(t *testing.T) {
	token := mintToken(t, "test-secret")
	w, captured := runThrough(JWTAuthWithConfig(authTestConfig()), "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	require.True(t, captured.reached)
	require.True(t, captured.hasUser)
	assert.Equal(t, "7f9c24e5-1b3a-4f0e-9c6d-2a8b5e4d3c1f", captured.userID)
}

func TestOptionalAuthPassesWithoutToken(t *testing.T) {
	w, captured := runThrough(OptionalAuthWithConfig(authTestConfig()), "")

	assert.Equal(t, http.StatusOK, w.Code)
	require.True(t, captured.reached)
	assert.False(t, captured.hasUser)
}

func TestOptionalAuthIgnoresInvalidToken(t *testing.T) {
	w, captured := runThrough(OptionalAuthWithConfig(authTestConfig()), "Bearer not-a-token")

	assert.Equal(t, http.StatusOK, w.Code)
	require.True(t, captured.reached)
	assert.False(t, captured.hasUser)
}

func TestOptionalAuthAttachesIdentityWhenPresent(t *testing.T) {
	token := mintToken(t, "test-secret")
	w, captured := runThrough(OptionalAuthWithConfig(authTestConfig()), "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	require.True(t, captured.reached)
	require.True(t, captured.hasUser)
	assert.Equal(t, "7f9c24e5-1b3a-4f0e-9c6d-2a8b5e4d3c1f", captured.userID)
}
