package middleware

import (
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/shootdesk/shootdesk-api/internal/pkg/logger"
	"github.com/shootdesk/shootdesk-api/internal/pkg/response"
)

// RateLimitConfig sizes a per-organization token bucket.
// A non-positive RPS disables limiting.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

type orgLimiter struct {
	limiters sync.Map // organization id -> *rate.Limiter
	cfg      RateLimitConfig
}

func (l *orgLimiter) get(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}

	burst := l.cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	lim := rate.NewLimiter(rate.Limit(l.cfg.RPS), burst)
	actual, _ := l.limiters.LoadOrStore(key, lim)
	return actual.(*rate.Limiter)
}

// RateLimitByOrganization rejects requests with 429 once the caller's active
// organization exceeds its budget. Must run after Session.
func RateLimitByOrganization(cfg RateLimitConfig) func(http.Handler) http.Handler {
	if cfg.RPS <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	l := &orgLimiter{cfg: cfg}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := ""
			if sess := GetSession(r.Context()); sess != nil {
				key = sess.OrganizationID
			}

			if !l.get(key).Allow() {
				logger.FromContext(r.Context()).Warn().Str("organization_id", key).Msg("Rate limit exceeded")
				response.Error(w, http.StatusTooManyRequests, "Too many requests, try again later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
