package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"claimsreview-service/internal/app/config"
	"claimsreview-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRequireAPIKey(t *testing.T) {
	logger := zap.NewNop()

	testAPIKey := "test-review-api-key-12345"
	internalConfig := &config.InternalConfig{
		App: config.App{
			APIKey: testAPIKey,
		},
	}

	middlewares := &Middlewares{
		Log:            logger,
		InternalConfig: internalConfig,
	}

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	})

	t.Run("Valid API Key", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/packets/review", nil)
		req.Header.Set(constvars.HeaderXAPIKey, testAPIKey)

		rr := httptest.NewRecorder()
		handler := middlewares.RequireAPIKey(testHandler)
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, "should return 200 OK for valid API key")
		assert.Equal(t, "success", rr.Body.String(), "should return success message")
	})

	t.Run("Missing API Key", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/packets/review", nil)

		rr := httptest.NewRecorder()
		handler := middlewares.RequireAPIKey(testHandler)
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "should return 401 when no API key is sent")
	})

	t.Run("Invalid API Key", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/packets/review", nil)
		req.Header.Set(constvars.HeaderXAPIKey, "wrong-key")

		rr := httptest.NewRecorder()
		handler := middlewares.RequireAPIKey(testHandler)
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "should return 401 for a wrong API key")
	})

	t.Run("Auth Disabled When No Key Configured", func(t *testing.T) {
		open := &Middlewares{
			Log:            logger,
			InternalConfig: &config.InternalConfig{},
		}

		req := httptest.NewRequest("POST", "/api/v1/packets/review", nil)

		rr := httptest.NewRecorder()
		handler := open.RequireAPIKey(testHandler)
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, "should pass through when no key is configured")
	})
}
