package config

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

// MaxBodySize bounds request bodies. It leaves room for a base64 encoded
// image of storage.MaxImageBytes plus the JSON around it.
const MaxBodySize = "8M"

// SetupMiddleware installs the global middleware: request id, structured
// request logging through the echo logger, panic recovery, CORS and the body limit
func SetupMiddleware(e *echo.Echo) {
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			j := log.JSON{
				"msg":        "request",
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency_ms": v.Latency.Milliseconds(),
				"request_id": v.RequestID,
				"remote_ip":  v.RemoteIP,
			}
			if v.Error != nil {
				j["error"] = v.Error.Error()
			}
			if v.Status >= 500 {
				c.Logger().Errorj(j)
				return nil
			}
			c.Logger().Infoj(j)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit(MaxBodySize))
}
