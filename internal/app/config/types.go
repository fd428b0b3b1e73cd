package config

import (
	"github.com/go-chi/chi/v5"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type (
	// Bootstrap carries the wired application for the HTTP entrypoint.
	Bootstrap struct {
		Router         *chi.Mux
		Redis          *redis.Client
		RabbitMQ       *amqp.Connection
		Logger         *zap.Logger
		DriverConfig   *DriverConfig
		InternalConfig *InternalConfig
	}

	DriverConfig struct {
		Redis    Redis
		RabbitMQ RabbitMQ
		Logger   Logger
	}

	InternalConfig struct {
		App App
	}

	App struct {
		Env                       string
		Port                      string
		Version                   string
		Address                   string
		Timezone                  string
		EndpointPrefix            string
		APIKey                    string
		RedisEnabled              bool
		RabbitMQEnabled           bool
		MaxRequests               int
		MaxTimeRequestsPerSeconds int
		ShutdownTimeoutInSeconds  int
	}

	Redis struct {
		Host     string
		Port     string
		Password string
	}

	RabbitMQ struct {
		Host     string
		Port     string
		Username string
		Password string
	}

	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
)
