package middleware

import (
	"sync"
	"time"

	"manero/config"
	"manero/internal/delivery/api/response"
	domainerrors "manero/internal/domain/errors"
	"manero/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const idleClientTTL = 5 * time.Minute

// RateLimiter throttles each client IP with a token bucket.
type RateLimiter struct {
	limit   rate.Limit
	burst   int
	metrics *metrics.Metrics
	now     func() time.Time

	mu      sync.Mutex
	clients map[string]*clientLimiter
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a limiter from the configured requests-per-minute
// budget. It returns nil when limiting is disabled; a nil limiter lets every
// request through.
func NewRateLimiter(cfg *config.Config, m *metrics.Metrics) *RateLimiter {
	if cfg.RateLimit == nil || !cfg.RateLimit.Enabled || cfg.RateLimit.RequestsPerMinute <= 0 {
		return nil
	}

	return newRateLimiter(cfg.RateLimit.RequestsPerMinute, m)
}

func newRateLimiter(requestsPerMinute int, m *metrics.Metrics) *RateLimiter {
	burst := requestsPerMinute / 10
	if burst < 1 {
		burst = 1
	}

	return &RateLimiter{
		limit:   rate.Limit(float64(requestsPerMinute) / 60.0),
		burst:   burst,
		metrics: m,
		now:     time.Now,
		clients: make(map[string]*clientLimiter),
	}
}

// Limit rejects requests over budget with 429.
func (r *RateLimiter) Limit(next echo.HandlerFunc) echo.HandlerFunc {
	if r == nil {
		return next
	}

	return func(c echo.Context) error {
		if !r.allow(c.RealIP()) {
			if r.metrics != nil {
				r.metrics.RateLimited.WithLabelValues(c.Path()).Inc()
			}
			c.Response().Header().Set(echo.HeaderRetryAfter, "60")

			return response.Error(c,
				domainerrors.ErrTooManyRequests.HTTPCode(),
				domainerrors.ErrTooManyRequests.ErrorCode(),
				domainerrors.ErrTooManyRequests.Message(),
				nil,
			)
		}

		return next(c)
	}
}

func (r *RateLimiter) allow(key string) bool {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.clients[key]
	if !ok {
		r.cleanupLocked(now)
		entry = &clientLimiter{limiter: rate.NewLimiter(r.limit, r.burst)}
		r.clients[key] = entry
	}
	entry.lastSeen = now

	return entry.limiter.AllowN(now, 1)
}

func (r *RateLimiter) cleanupLocked(now time.Time) {
	for key, entry := range r.clients {
		if now.Sub(entry.lastSeen) > idleClientTTL {
			delete(r.clients, key)
		}
	}
}
