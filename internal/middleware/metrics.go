package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "wishlist"

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "API requests by method, route template and status class",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "API request latency. Scrape and upload routes sit in the upper buckets.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 15},
		},
		[]string{"method", "route"},
	)

	activeRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "http_active_requests",
			Help:      "API requests in flight",
		},
	)

	dbConnectionsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "db_connections_open",
			Help:      "Open database connections",
		},
	)
)

// Metrics collects Prometheus metrics for API routes
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		if operationalPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		start := time.Now()
		activeRequests.Inc()
		defer activeRequests.Dec()

		c.Next()

		// route template (/api/v2/items/:id/claim) keeps label cardinality bounded
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		httpRequestsTotal.WithLabelValues(c.Request.Method, route, statusClass(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// statusClass collapses 409/403/404 etc. into 4xx
func statusClass(status int) string {
	return strconv.Itoa(status/100) + "xx"
}

// SetDBConnectionsOpen updates the DB connection gauge (call from main)
func SetDBConnectionsOpen(count int) {
	dbConnectionsOpen.Set(float64(count))
}
