package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"manero/config"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_HandlerExposesCollectors(t *testing.T) {
	m, err := New(Params{Config: &config.Config{}})
	require.NoError(t, err)

	m.RequestsTotal.WithLabelValues("GET", "/api/products", "200").Inc()
	m.RateLimited.WithLabelValues("/api/users/login").Add(2)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/api/products", "200")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.RateLimited.WithLabelValues("/api/users/login")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `manero_http_requests_total{method="GET",route="/api/products",status="200"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
