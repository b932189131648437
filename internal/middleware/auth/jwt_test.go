package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func runMiddleware(t *testing.T, config JWTConfig, authHeader string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/calls", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	nextCalled := false
	handler := JWTMiddleware(config)(func(c echo.Context) error {
		nextCalled = true
		return c.NoContent(http.StatusOK)
	})
	assert.NoError(t, handler(c))
	return rec, nextCalled
}

func TestJWTMiddleware(t *testing.T) {
	config := JWTConfig{Secret: testSecret, Logger: zap.NewNop()}

	t.Run("valid token reaches the handler with caller identity", func(t *testing.T) {
		token := signedToken(t, testSecret, jwt.MapClaims{
			"sub":    "user-1",
			"org_id": "org-1",
			"email":  "rep@co.com",
			"exp":    time.Now().Add(time.Hour).Unix(),
		})

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/calls", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := JWTMiddleware(config)(func(c echo.Context) error {
			user, err := UserFromContext(c)
			assert.NoError(t, err)
			assert.Equal(t, "user-1", user.UserID)
			assert.Equal(t, "org-1", user.OrganizationID)
			assert.Equal(t, "rep@co.com", user.Email)

			orgID, err := OrganizationFromContext(c)
			assert.NoError(t, err)
			assert.Equal(t, "org-1", orgID)
			return c.NoContent(http.StatusOK)
		})

		assert.NoError(t, handler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		rec, nextCalled := runMiddleware(t, config, "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, nextCalled)
		assert.Contains(t, rec.Body.String(), "MISSING_AUTH_HEADER")
	})

	t.Run("non-bearer header is rejected", func(t *testing.T) {
		rec, nextCalled := runMiddleware(t, config, "Basic dXNlcjpwYXNz")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, nextCalled)
		assert.Contains(t, rec.Body.String(), "INVALID_AUTH_FORMAT")
	})

	t.Run("token signed with a different secret is rejected", func(t *testing.T) {
		token := signedToken(t, "other-secret", jwt.MapClaims{
			"sub":    "user-1",
			"org_id": "org-1",
		})

		rec, nextCalled := runMiddleware(t, config, "Bearer "+token)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, nextCalled)
		assert.Contains(t, rec.Body.String(), "INVALID_TOKEN")
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		token := signedToken(t, testSecret, jwt.MapClaims{
			"sub":    "user-1",
			"org_id": "org-1",
			"exp":    time.Now().Add(-time.Hour).Unix(),
		})

		rec, nextCalled := runMiddleware(t, config, "Bearer "+token)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, nextCalled)
	})

	t.Run("token without an organization claim is rejected", func(t *testing.T) {
		token := signedToken(t, testSecret, jwt.MapClaims{"sub": "user-1"})

		rec, nextCalled := runMiddleware(t, config, "Bearer "+token)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, nextCalled)
		assert.Contains(t, rec.Body.String(), "MISSING_ORG_CLAIM")
	})

	t.Run("skip paths bypass validation", func(t *testing.T) {
		skipConfig := JWTConfig{Secret: testSecret, Logger: zap.NewNop(), SkipPaths: []string{"/api/v1"}}

		rec, nextCalled := runMiddleware(t, skipConfig, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, nextCalled)
	})
}
