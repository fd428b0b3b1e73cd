package middlewares

import (
	"crypto/subtle"
	"net/http"

	"claimsreview-service/internal/pkg/constvars"
	"claimsreview-service/internal/pkg/exceptions"
	"claimsreview-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// RequireAPIKey guards the review endpoints. An empty configured key
// disables the check, which is the local development default.
func (m *Middlewares) RequireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		configured := m.InternalConfig.App.APIKey
		if configured == "" {
			next.ServeHTTP(w, r)
			return
		}

		apiKey := r.Header.Get(constvars.HeaderXAPIKey)
		if apiKey == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrAPIKeyRequired(nil))
			return
		}

		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(configured)) != 1 {
			m.Log.Warn("API key authentication failed",
				zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
				zap.String(constvars.LoggingPathKey, r.URL.Path),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidAPIKey(nil))
			return
		}

		next.ServeHTTP(w, r)
	})
}
