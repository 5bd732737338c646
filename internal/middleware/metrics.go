package middleware

import (
	"strconv"
	"time"

	"github.com/clubhousefc/backend/pkg/telemetry"
	"github.com/labstack/echo/v4"
)

// Metrics records request latency per route template
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			// render the error here so the status written by the error handler is observed
			if err := next(c); err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			telemetry.HTTPDuration.
				WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).
				Observe(time.Since(start).Seconds())
			return nil
		}
	}
}
