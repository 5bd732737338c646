package middleware

import (
	"strings"

	"github.com/clubhousefc/backend/internal/apperr"
	"github.com/clubhousefc/backend/internal/session"
	"github.com/labstack/echo/v4"
)

// RequireAuth checks for a valid bearer token and stores the caller in the context
func RequireAuth(v session.Verifier) echo.MiddlewareFunc {
	return authenticate(v, true)
}

// OptionalAuth resolves the caller when a valid bearer token is sent and lets
// anonymous requests through. An invalid token is still rejected.
func OptionalAuth(v session.Verifier) echo.MiddlewareFunc {
	return authenticate(v, false)
}

func authenticate(v session.Verifier, required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				if required {
					return apperr.Unauthorized("missing Authorization header")
				}
				return next(c)
			}

			// Expecting "Bearer <token>"
			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
				return apperr.Unauthorized("Authorization header must be in Bearer format")
			}

			caller, err := v.Verify(c.Request().Context(), token)
			if err != nil {
				return apperr.Unauthorized("invalid or expired token")
			}
			session.Set(c, caller)
			return next(c)
		}
	}
}
