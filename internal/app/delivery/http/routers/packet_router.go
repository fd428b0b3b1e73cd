package routers

import (
	"claimsreview-service/internal/app/delivery/http/middlewares"
	"claimsreview-service/internal/app/services/packets"

	"github.com/go-chi/chi/v5"
)

func attachPacketRoutes(router chi.Router, mw *middlewares.Middlewares, fallback *middlewares.RateLimiter, packetController *packets.PacketController) {
	router.With(mw.ResourceRateLimit("review", fallback)).Post("/review", packetController.ReviewPacket)
	router.With(mw.ResourceRateLimit("export", fallback)).Post("/review/export", packetController.ExportPacket)
}
