package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"claimsreview-service/internal/app/config"
	"claimsreview-service/internal/app/contracts"
	"claimsreview-service/internal/app/delivery/http/middlewares"
	"claimsreview-service/internal/app/delivery/http/routers"
	"claimsreview-service/internal/app/drivers/database"
	"claimsreview-service/internal/app/drivers/logger"
	"claimsreview-service/internal/app/drivers/messaging"
	"claimsreview-service/internal/app/services/export"
	"claimsreview-service/internal/app/services/packets"
	"claimsreview-service/internal/app/services/shared/ratelimiter"
	redisrepo "claimsreview-service/internal/app/services/shared/redis"
	"claimsreview-service/internal/app/services/shared/summaryqueue"

	"github.com/go-chi/chi/v5"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	bootLog := logger.NewLogrusLogger(internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		bootLog.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	bootstrap := config.Bootstrap{
		Router:         chi.NewRouter(),
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	if internalConfig.App.RedisEnabled {
		bootstrap.Redis = database.NewRedisClient(driverConfig)
	}
	if internalConfig.App.RabbitMQEnabled {
		bootstrap.RabbitMQ = messaging.NewRabbitMQ(driverConfig)
	}

	if err := bootstrapTheApp(&bootstrap); err != nil {
		bootLog.Fatalf("Failed to wire application: %v", err)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", internalConfig.App.Address, internalConfig.App.Port),
		Handler: bootstrap.Router,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			bootLog.Fatalf("Server failed to start: %v", err)
		}
	}()
	bootLog.Infof("Server listening on %s", server.Addr)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	bootLog.Info("Waiting for pending requests to finish..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		bootLog.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		bootLog.Errorf("Error releasing drivers: %v", err)
	}

	bootLog.Info("Server exiting")
}

func bootstrapTheApp(bootstrap *config.Bootstrap) error {
	mw := &middlewares.Middlewares{
		Log:            bootstrap.Logger,
		InternalConfig: bootstrap.InternalConfig,
	}

	if bootstrap.Redis != nil {
		redisRepository := redisrepo.NewRedisRepository(bootstrap.Redis)
		mw.ResourceLimiter = ratelimiter.NewResourceLimiter(redisRepository, bootstrap.Logger)
	}

	// A nil interface here keeps publishing disabled when RabbitMQ is off.
	var summaryPublisher contracts.SummaryPublisher
	if bootstrap.RabbitMQ != nil {
		svc, err := summaryqueue.NewService(bootstrap.RabbitMQ, bootstrap.Logger)
		if err != nil {
			return err
		}
		summaryPublisher = svc
	}

	packetUsecase := packets.NewPacketUsecase(summaryPublisher, bootstrap.Logger)
	exportService := export.NewExportService(bootstrap.Logger)
	packetController := packets.NewPacketController(bootstrap.Logger, packetUsecase, exportService)

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, mw, packetController)
	return nil
}
