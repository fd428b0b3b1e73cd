package summaryqueue

import (
	"context"
	"fmt"
	"sync"

	"claimsreview-service/internal/app/models"
	"claimsreview-service/internal/pkg/constvars"
	"claimsreview-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// ReviewCompletedMessage is the payload handed to the narrative summarizer.
// The summarizer fills summary_narrative downstream; this service never
// consumes the queue.
type ReviewCompletedMessage struct {
	RequestID string                     `json:"request_id,omitempty"`
	Output    *models.ClaimsPacketOutput `json:"output"`
}

// Service publishes finished reviews to a durable queue with publisher
// confirms. A DLQ exists so the summarizer can park payloads it cannot
// process without poisoning the main queue.
type Service struct {
	ch       *amqp.Channel
	log      *zap.Logger
	confirms chan amqp.Confirmation
	mu       sync.Mutex
}

// NewService declares the durable queues and enables confirms.
func NewService(conn *amqp.Connection, log *zap.Logger) (*Service, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		constvars.QueueReviewCompleted, // name
		true,                           // durable
		false,                          // autoDelete
		false,                          // exclusive
		false,                          // noWait
		nil,                            // args
	)
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		constvars.QueueReviewCompletedDLQ,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	return &Service{
		ch:       ch,
		log:      log,
		confirms: ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}, nil
}

// PublishReviewCompleted publishes one finished review with persistence and
// waits for the broker confirm.
func (s *Service) PublishReviewCompleted(ctx context.Context, output *models.ClaimsPacketOutput) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("SummaryQueue.PublishReviewCompleted called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPacketIDKey, output.PacketID),
	)

	body, err := json.Marshal(ReviewCompletedMessage{RequestID: requestID, Output: output})
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}

	if err := s.ch.PublishWithContext(ctx, "", constvars.QueueReviewCompleted, false, false, msg); err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, constvars.QueueReviewCompleted)
	}

	select {
	case confirmed := <-s.confirms:
		if !confirmed.Ack {
			return exceptions.ErrRabbitMQPublishMessage(fmt.Errorf("message not confirmed"), constvars.QueueReviewCompleted)
		}
	case <-ctx.Done():
		return exceptions.ErrRabbitMQPublishMessage(ctx.Err(), constvars.QueueReviewCompleted)
	}
	return nil
}
