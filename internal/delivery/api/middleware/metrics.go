package middleware

import (
	"strconv"
	"time"

	"manero/internal/infra/metrics"

	"github.com/labstack/echo/v4"
)

// MetricsMiddleware records request counts and latencies by route template.
type MetricsMiddleware struct {
	metrics *metrics.Metrics
}

// NewMetricsMiddleware creates the middleware. A nil registry disables it.
func NewMetricsMiddleware(m *metrics.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

// Handle measures the request. Errors are written here so the recorded status
// is the one sent to the client.
func (m *MetricsMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	if m == nil || m.metrics == nil {
		return next
	}

	return func(c echo.Context) error {
		start := time.Now()
		m.metrics.InFlight.Inc()
		defer m.metrics.InFlight.Dec()

		if err := next(c); err != nil {
			c.Error(err)
		}

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Response().Status)

		m.metrics.RequestsTotal.WithLabelValues(c.Request().Method, route, status).Inc()
		m.metrics.RequestDuration.WithLabelValues(c.Request().Method, route, status).Observe(time.Since(start).Seconds())

		return nil
	}
}
