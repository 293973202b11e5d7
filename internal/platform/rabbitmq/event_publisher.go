package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"resource-library/internal/model"
)

// EventPublisher sends resource lifecycle events to a durable queue.
type EventPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewEventPublisher(conn *amqp.Connection, queueName string) *EventPublisher {
	return &EventPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *EventPublisher) Publish(ctx context.Context, event model.ResourceEvent) error {
	msg, err := newPublishing(event)
	if err != nil {
		return err
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		p.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue failed: %w", err)
	}

	if err := ch.PublishWithContext(ctx, "", p.queueName, false, false, msg); err != nil {
		return fmt.Errorf("publish event failed: %w", err)
	}
	return nil
}

func newPublishing(event model.ResourceEvent) (amqp.Publishing, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal event payload failed: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		Type:         event.Kind,
		MessageId:    event.ResourceID,
		Timestamp:    event.OccurredAt,
		Body:         payload,
		DeliveryMode: amqp.Persistent,
	}, nil
}
