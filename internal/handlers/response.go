package handlers

import (
	"net/http"
	"strconv"

	"github.com/clubhousefc/backend/internal/apperr"
	"github.com/labstack/echo/v4"
)

// Guards are the per-route middleware the handlers attach
type Guards struct {
	// Auth rejects requests without a valid bearer token
	Auth echo.MiddlewareFunc
	// OptionalAuth resolves the caller when a token is present
	OptionalAuth echo.MiddlewareFunc
	// RateLimit throttles mutations
	RateLimit echo.MiddlewareFunc
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": data})
}

func created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": data})
}

// bind decodes path params and body into req and validates it
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperr.Validation("body", "invalid request payload")
	}
	return c.Validate(req)
}

func paramID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, paramErr(name)
	}
	return uint(id), nil
}

func paramErr(name string) error {
	return apperr.Validation(name, "must be a positive integer")
}

// queryInt reads a non-negative integer query parameter, 0 when absent
func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apperr.Validation(name, "must be a non-negative integer")
	}
	return n, nil
}
