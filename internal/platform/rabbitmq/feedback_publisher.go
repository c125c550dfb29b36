package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/ammarraza1199/Mock-interview-Backend/internal/model"
)

// FeedbackPublisher enqueues product feedback entries on a durable queue so
// the persist worker can write them outside the request path.
type FeedbackPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewFeedbackPublisher(conn *amqp.Connection, queueName string) *FeedbackPublisher {
	return &FeedbackPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *FeedbackPublisher) Publish(ctx context.Context, feedback model.Feedback) error {
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

	payload, err := json.Marshal(feedback)
	if err != nil {
		return fmt.Errorf("marshal feedback payload failed: %w", err)
	}

	if err := ch.PublishWithContext(
		ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp.Persistent,
		},
	); err != nil {
		return fmt.Errorf("publish feedback failed: %w", err)
	}
	return nil
}
