// Package session carries the authenticated caller through a request and
// issues and verifies the bearer tokens that identify them.
package session

import (
	"context"
	"errors"

	"github.com/clubhousefc/backend/internal/apperr"
	"github.com/labstack/echo/v4"
)

// ErrInvalidToken is returned by verifiers for any token they do not accept
var ErrInvalidToken = errors.New("invalid or expired token")

const callerKey = "caller"

// Caller is the authenticated user on whose behalf an operation runs
type Caller struct {
	UserID uint
	Email  string
}

// Verifier turns a bearer token into a Caller
type Verifier interface {
	Verify(ctx context.Context, token string) (Caller, error)
}

// Chain tries each verifier in order and returns the first success
type Chain []Verifier

func (ch Chain) Verify(ctx context.Context, token string) (Caller, error) {
	for _, v := range ch {
		if v == nil {
			continue
		}
		caller, err := v.Verify(ctx, token)
		if err == nil {
			return caller, nil
		}
	}
	return Caller{}, ErrInvalidToken
}

// Set stores the caller on the echo context
func Set(c echo.Context, caller Caller) {
	c.Set(callerKey, caller)
}

// FromContext returns the caller stored by the auth middleware, if any
func FromContext(c echo.Context) (Caller, bool) {
	caller, ok := c.Get(callerKey).(Caller)
	return caller, ok
}

// Optional returns a pointer to the caller, or nil for anonymous requests
func Optional(c echo.Context) *Caller {
	caller, ok := FromContext(c)
	if !ok {
		return nil
	}
	return &caller
}

// Require returns the caller or an Unauthorized error
func Require(c echo.Context) (Caller, error) {
	caller, ok := FromContext(c)
	if !ok {
		return Caller{}, apperr.Unauthorized("authentication required")
	}
	return caller, nil
}
