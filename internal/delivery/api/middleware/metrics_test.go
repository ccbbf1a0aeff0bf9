package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"manero/config"
	domainerrors "manero/internal/domain/errors"
	"manero/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsMiddleware_RecordsRenderedStatus(t *testing.T) {
	m, err := metrics.New(metrics.Params{Config: &config.Config{}})
	require.NoError(t, err)

	e := echo.New()
	e.HTTPErrorHandler = NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))).HandleHTTPError
	e.Use(NewMetricsMiddleware(m).Handle)
	e.GET("/api/products/:articleNumber", func(c echo.Context) error {
		return domainerrors.ErrProductNotFound
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products/9", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodGet, "/api/products/:articleNumber", "404")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.InFlight))
}
