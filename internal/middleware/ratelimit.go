package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/clubhousefc/backend/internal/session"
	"github.com/clubhousefc/backend/pkg/telemetry"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// Limiter counts requests per key in fixed Redis windows. The first hit of a
// window sets its expiry; later hits, rejected ones included, do not extend it.
type Limiter struct {
	rdb    redis.Cmdable
	limit  int64
	window time.Duration
}

func NewLimiter(rdb redis.Cmdable, limit int64, window time.Duration) *Limiter {
	return &Limiter{rdb: rdb, limit: limit, window: window}
}

// Allow increments the counter for key and reports whether it is within the limit
func (l *Limiter) Allow(ctx context.Context, key string) (bool, int64, error) {
	k := "rl:" + key
	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, k)
	ttl := pipe.TTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, err
	}
	n := incr.Val()
	// a negative TTL means no expiry yet: this is the window's first hit, or
	// the process that made it died before setting one
	if n == 1 || ttl.Val() < 0 {
		if err := l.rdb.Expire(ctx, k, l.window).Err(); err != nil {
			return false, 0, err
		}
	}
	return n <= l.limit, n, nil
}

// RateLimit rejects callers over the limit with 429. Requests are keyed by
// caller when authenticated and by client IP otherwise. Redis failures let
// the request through.
func RateLimit(l *Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := "ip:" + c.RealIP()
			if caller, ok := session.FromContext(c); ok {
				key = fmt.Sprintf("user:%d", caller.UserID)
			}
			allowed, n, err := l.Allow(c.Request().Context(), key)
			if err != nil {
				c.Logger().Warnf("rate limiter unavailable: %v", err)
				return next(c)
			}
			if !allowed {
				telemetry.RateLimited.Inc()
				c.Response().Header().Set("Retry-After", fmt.Sprint(int(l.window.Seconds())))
				return echo.NewHTTPError(http.StatusTooManyRequests, fmt.Sprintf("rate limit exceeded (count=%d, limit=%d)", n, l.limit))
			}
			return next(c)
		}
	}
}

// Noop passes every request through
func Noop(next echo.HandlerFunc) echo.HandlerFunc { return next }
