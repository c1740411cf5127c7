package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campusvibe_registrations_total",
			Help: "Event registration attempts by outcome",
		},
		[]string{"outcome"},
	)

	paymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campusvibe_payments_total",
			Help: "Payment charges by outcome",
		},
		[]string{"outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "campusvibe_http_request_duration_seconds",
			Help:    "HTTP request latency per route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// CountRegistration records the outcome of a registration attempt
// (registered, rejected, error).
func CountRegistration(outcome string) {
	registrationsTotal.WithLabelValues(outcome).Inc()
}

// CountPayment records the outcome of a charge (completed, declined,
// refunded).
func CountPayment(outcome string) {
	paymentsTotal.WithLabelValues(outcome).Inc()
}

// RequestMetrics observes the latency of every matched route.
func RequestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestDuration.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Observe(time.Since(start).Seconds())
	}
}
