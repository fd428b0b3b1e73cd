package config

import (
	"context"
	"log"
)

// Shutdown releases driver connections. Safe to call with partially wired
// drivers when a feature flag left one disabled.
func (b *Bootstrap) Shutdown(ctx context.Context) error {
	if b.Redis != nil {
		if err := b.Redis.Close(); err != nil {
			return err
		}
		log.Println("Successfully closed Redis")
	}

	if b.RabbitMQ != nil && !b.RabbitMQ.IsClosed() {
		if err := b.RabbitMQ.Close(); err != nil {
			return err
		}
		log.Println("Successfully closed RabbitMQ")
	}

	if b.Logger != nil {
		_ = b.Logger.Sync()
	}
	return nil
}
