package exceptions

import "claimsreview-service/internal/pkg/constvars"

func ErrInvalidAPIKey(err error) error {
	return BuildNewCustomError(err, constvars.StatusUnauthorized, "Invalid API key", ErrDevInvalidAPIKey)
}

func ErrAPIKeyRequired(err error) error {
	return BuildNewCustomError(err, constvars.StatusUnauthorized, "API key is required", ErrDevAPIKeyRequired)
}

const (
	ErrDevInvalidAPIKey  = "INVALID_API_KEY"
	ErrDevAPIKeyRequired = "API_KEY_REQUIRED"
)
