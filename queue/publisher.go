package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"go-event-api/logger"
)

// IPublisher defines the contract for publishing domain events. Publish
// failures are reported to the caller, who may choose to ignore them;
// notifications must never fail the main request flow.
type IPublisher interface {
	PublishRegistrationConfirmed(ctx context.Context, event RegistrationConfirmedEvent) error
}

// Publisher sends domain events to RabbitMQ. Each publish dials a fresh
// connection; confirmation traffic is low enough that connection reuse is
// not worth the reconnect bookkeeping.
type Publisher struct {
	url string
}

func NewPublisher(url string) *Publisher {
	return &Publisher{url: url}
}

// PublishRegistrationConfirmed publishes the event to the
// registration.confirmed queue. Messages are persistent so they survive a
// broker restart.
func (p *Publisher) PublishRegistrationConfirmed(ctx context.Context, event RegistrationConfirmedEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to dial RabbitMQ")
		return err
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Log.WithError(err).Error("Failed to open a RabbitMQ channel")
		return err
	}
	defer ch.Close()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(RegistrationConfirmedQueue, true, false, false, false, nil); err != nil {
		logger.Log.WithError(err).Error("Failed to declare the registration queue")
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return ch.PublishWithContext(ctx,
		"",                         // default exchange
		RegistrationConfirmedQueue, // routing key = queue name
		false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		})
}
