package routers

import (
	"net/http"
	"time"

	"claimsreview-service/internal/app/config"
	"claimsreview-service/internal/app/delivery/http/middlewares"
	"claimsreview-service/internal/app/services/packets"
	"claimsreview-service/internal/pkg/constvars"
	"claimsreview-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	mw *middlewares.Middlewares,
	packetController *packets.PacketController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Api-Key", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	router.Use(mw.RequestIDMiddleware)
	router.Use(mw.Logging(mw.Log))
	router.Use(mw.ErrorHandler)
	router.Use(mw.GlobalRateLimit())

	fallbackLimiter := middlewares.NewRateLimiter(
		internalConfig.App.MaxRequests,
		time.Duration(internalConfig.App.MaxTimeRequestsPerSeconds)*time.Second,
		time.Minute,
	)

	router.Route(internalConfig.App.EndpointPrefix, func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HealthCheckSuccessMessage, nil)
		})

		r.Route("/packets", func(r chi.Router) {
			r.Use(mw.RequireAPIKey)
			attachPacketRoutes(r, mw, fallbackLimiter, packetController)
		})
	})
}
