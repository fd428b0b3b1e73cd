package constvars

const (
	AppTimezone = "UTC"

	ResponseUnknown = "unknown"
)

// Redis key layout. Rate-limit keys carry the client identity and window
// start so fixed windows expire on their own.
const (
	RedisKeyRateLimitFormat = "ratelimit:%s:%d"
)

// Queue names for the summarizer hand-off.
const (
	QueueReviewCompleted    = "claims_review_completed"
	QueueReviewCompletedDLQ = "claims_review_completed_dlq"
)

// Environment names.
const (
	EnvironmentDevelopment = "development"
	EnvironmentStaging     = "staging"
	EnvironmentProduction  = "production"
)
