package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthUser represents an authenticated operator from JWT claims.
type AuthUser struct {
	UserID         string `json:"user_id"`
	OrganizationID string `json:"organization_id"`
	Email          string `json:"email"`
}

const userContextKey = "authenticated_user"

// JWTConfig holds the configuration for JWT middleware
type JWTConfig struct {
	Secret    string
	Logger    *zap.Logger
	SkipPaths []string // Paths to skip JWT validation
}

// JWTMiddleware validates bearer tokens on the read API and stashes the
// caller's identity and organization in the request context.
func JWTMiddleware(config JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			for _, skipPath := range config.SkipPaths {
				if strings.HasPrefix(path, skipPath) {
					return next(c)
				}
			}

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				config.Logger.Warn("Missing authorization header",
					zap.String("path", path),
					zap.String("method", c.Request().Method))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Authorization header required",
					"code":  "MISSING_AUTH_HEADER",
				})
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				config.Logger.Warn("Invalid authorization header format",
					zap.String("path", path))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Invalid authorization header format. Expected: Bearer <token>",
					"code":  "INVALID_AUTH_FORMAT",
				})
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(config.Secret), nil
			})
			if err != nil || !token.Valid {
				config.Logger.Warn("JWT validation failed",
					zap.Error(err),
					zap.String("path", path))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Invalid or expired token",
					"code":  "INVALID_TOKEN",
				})
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Invalid token claims",
					"code":  "INVALID_TOKEN",
				})
			}

			user := AuthUser{}
			if sub, err := claims.GetSubject(); err == nil {
				user.UserID = sub
			}
			if orgID, ok := claims["org_id"].(string); ok {
				user.OrganizationID = orgID
			}
			if email, ok := claims["email"].(string); ok {
				user.Email = email
			}

			if user.OrganizationID == "" {
				config.Logger.Warn("Token carries no organization claim",
					zap.String("path", path),
					zap.String("user_id", user.UserID))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Token carries no organization claim",
					"code":  "MISSING_ORG_CLAIM",
				})
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// UserFromContext returns the authenticated caller.
func UserFromContext(c echo.Context) (AuthUser, error) {
	user, ok := c.Get(userContextKey).(AuthUser)
	if !ok {
		return AuthUser{}, errors.New("no authenticated user in context")
	}
	return user, nil
}

// OrganizationFromContext returns the caller's organization id.
func OrganizationFromContext(c echo.Context) (string, error) {
	user, err := UserFromContext(c)
	if err != nil {
		return "", err
	}
	return user.OrganizationID, nil
}
