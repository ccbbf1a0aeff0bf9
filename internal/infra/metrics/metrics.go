// Package metrics owns the Prometheus registry and the collectors shared by
// the HTTP layer.
package metrics

import (
	"net/http"

	"manero/config"
	"manero/internal/errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const namespace = "manero"

// Metrics groups the registry with the HTTP collectors.
type Metrics struct {
	Registry *prometheus.Registry

	InFlight        prometheus.Gauge
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RateLimited     *prometheus.CounterVec
}

// Params holds dependencies for the metrics registry, injected by Fx
type Params struct {
	fx.In

	Config *config.Config
	DB     *gorm.DB `optional:"true"`
}

// New builds a registry with process, Go runtime and database pool collectors.
func New(params Params) (*Metrics, error) {
	m := newMetrics()

	if params.DB != nil {
		sqlDB, err := params.DB.DB()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get sql.DB for metrics")
		}
		m.Registry.MustRegister(collectors.NewDBStatsCollector(sqlDB, namespace))
	}

	return m, nil
}

func newMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_in_flight_requests",
			Help:      "In-flight HTTP requests.",
		}),
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests.",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latencies in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		RateLimited: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_rate_limited_total",
				Help:      "Requests rejected by the rate limiter.",
			},
			[]string{"route"},
		),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.InFlight,
		m.RequestsTotal,
		m.RequestDuration,
		m.RateLimited,
	)

	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
