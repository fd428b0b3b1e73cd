package middlewares

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"claimsreview-service/internal/app/services/shared/ratelimiter"
	"claimsreview-service/internal/pkg/constvars"

	"github.com/go-chi/httprate"
)

// GlobalRateLimit is the coarse per-IP limit applied to the whole router.
func (m *Middlewares) GlobalRateLimit() func(next http.Handler) http.Handler {
	return httprate.LimitByIP(
		m.InternalConfig.App.MaxRequests,
		time.Duration(m.InternalConfig.App.MaxTimeRequestsPerSeconds)*time.Second,
	)
}

// ResourceRateLimit applies the Redis fixed-window limiter to one endpoint
// group, keyed by client IP. With no ResourceLimiter wired it falls back
// to the in-memory limiter so a single instance still gets protection.
func (m *Middlewares) ResourceRateLimit(group string, fallback *RateLimiter) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m.ResourceLimiter == nil {
			return fallback.Limit(next)
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			out, err := m.ResourceLimiter.ApplyResourceLimiter(r.Context(), &ratelimiter.ApplyResourceLimiterInput{
				ResourceName:      ip,
				LimiterGroupName:  group,
				WindowDurationSec: m.InternalConfig.App.MaxTimeRequestsPerSeconds,
				MaxQuota:          m.InternalConfig.App.MaxRequests,
			})
			if err != nil {
				// Redis being down must not take the endpoint down with it.
				next.ServeHTTP(w, r)
				return
			}
			if !out.Allowed {
				w.Header().Set(constvars.HeaderRetryAfter, strconv.Itoa(out.RetryAfterSecs))
				http.Error(w, constvars.ErrClientTooManyRequests, constvars.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
