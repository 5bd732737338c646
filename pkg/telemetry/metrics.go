package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Toggles counts toggle outcomes by kind (like, follow, comment_like) and resulting state
	Toggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clubhouse",
		Name:      "toggles_total",
		Help:      "Toggle operations by kind and resulting state.",
	}, []string{"kind", "state"})

	// Notifications counts notification rows created and removed by type
	Notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clubhouse",
		Name:      "notifications_total",
		Help:      "Notifications created or removed, by type.",
	}, []string{"type", "action"})

	CommentsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clubhouse",
		Name:      "comments_created_total",
		Help:      "Comments created, split into top-level and replies.",
	}, []string{"level"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "clubhouse",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "clubhouse",
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the rate limiter.",
	})
)

// State renders a toggle result as a metric label
func State(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
