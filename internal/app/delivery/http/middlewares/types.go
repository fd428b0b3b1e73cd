package middlewares

import (
	"claimsreview-service/internal/app/config"
	"claimsreview-service/internal/app/services/shared/ratelimiter"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
	// ResourceLimiter is nil when Redis is disabled; rate limiting then
	// falls back to the in-memory limiter.
	ResourceLimiter *ratelimiter.ResourceLimiter
}
