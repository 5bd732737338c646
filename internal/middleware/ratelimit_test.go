package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, limit int64) (*Limiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewLimiter(rdb, limit, time.Minute), mr
}

func TestLimiter_WindowDoesNotSlideUnderSteadyTraffic(t *testing.T) {
	l, mr := newTestLimiter(t, 3)
	ctx := context.Background()

	// one request every 40s is under 3/min and must never be rejected
	want := []int64{1, 2, 1, 2, 1}
	for i, count := range want {
		allowed, n, err := l.Allow(ctx, "user:1")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d", i)
		assert.Equal(t, count, n, "request %d", i)
		mr.FastForward(40 * time.Second)
	}
}

func TestLimiter_RejectionsDoNotExtendTheWindow(t *testing.T) {
	l, mr := newTestLimiter(t, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		allowed, _, err := l.Allow(ctx, "ip:10.0.0.1")
		require.NoError(t, err)
		assert.True(t, allowed)
	}
	for i := 0; i < 5; i++ {
		allowed, _, err := l.Allow(ctx, "ip:10.0.0.1")
		require.NoError(t, err)
		assert.False(t, allowed)
		mr.FastForward(10 * time.Second)
	}

	// 50s have passed since the first hit
	mr.FastForward(11 * time.Second)
	allowed, n, err := l.Allow(ctx, "ip:10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, int64(1), n)
}

func TestLimiter_RepairsMissingExpiry(t *testing.T) {
	l, mr := newTestLimiter(t, 5)
	require.NoError(t, mr.Set("rl:user:9", "3"))

	_, n, err := l.Allow(context.Background(), "user:9")
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.Equal(t, time.Minute, mr.TTL("rl:user:9"))
}

func TestRateLimit_Returns429WithRetryAfter(t *testing.T) {
	l, _ := newTestLimiter(t, 1)
	e := echo.New()
	handler := RateLimit(l)(func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	newCtx := func() (echo.Context, *httptest.ResponseRecorder) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		rec := httptest.NewRecorder()
		return e.NewContext(req, rec), rec
	}

	c, rec := newCtx()
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	c, rec = newCtx()
	err := handler(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusTooManyRequests, he.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}
