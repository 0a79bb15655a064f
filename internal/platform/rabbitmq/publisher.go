// Package rabbitmq implements the events.Publisher interface on top of a
// RabbitMQ broker using the amqp091 client.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/fleetwise/driver-service/internal/events"
	"github.com/fleetwise/driver-service/internal/platform/logger"
)

// Publisher delivers driver-created events to a durable RabbitMQ queue.
// Delivery is at-least-once on the broker side; this publisher itself never
// retries, a failed attempt is reported to the caller.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	logger  *slog.Logger
}

// Ensure Publisher implements events.Publisher
var _ events.Publisher = (*Publisher)(nil)

// NewPublisher connects to the broker at uri and declares the durable queue
// the driver-rating/onboarding consumers read from. The caller owns the
// returned Publisher and must Close it on shutdown.
func NewPublisher(uri, queue string, log *slog.Logger) (*Publisher, error) {
	if log == nil {
		log = slog.Default()
	}

	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}

	return &Publisher{
		conn:    conn,
		channel: ch,
		queue:   queue,
		logger:  log.With(slog.String("component", "rabbitmq_publisher")),
	}, nil
}

// Publish implements events.Publisher. The message is JSON-encoded and sent
// persistent through the default exchange straight to the queue.
func (p *Publisher) Publish(ctx context.Context, event *events.DriverCreatedEvent) error {
	log := logger.FromContextOrDefault(ctx, p.logger)

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.channel.PublishWithContext(ctx,
		"",      // exchange (default)
		p.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			MessageId:    event.ID,
		})
	if err != nil {
		log.Error("failed to publish driver created event",
			slog.String("error", err.Error()),
			slog.Int64("driver_id", event.DriverID))
		return fmt.Errorf("failed to publish to queue %s: %w", p.queue, err)
	}

	log.Debug("published driver created event",
		slog.String("event_id", event.ID),
		slog.Int64("driver_id", event.DriverID))
	return nil
}

// Close releases the channel and connection.
func (p *Publisher) Close() error {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
