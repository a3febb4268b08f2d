// Package event publishes assessment lifecycle events to a RabbitMQ topic
// exchange. The publisher is optional; a nil *Publisher is a no-op.
package event

import (
	"encoding/json"
	"time"

	"github.com/streadway/amqp"
)

// Routing keys for the assessment lifecycle.
const (
	AssessmentCreated = "assessment.created"
	AnswerSubmitted   = "assessment.answer_submitted"
	AssessmentDone    = "assessment.completed"
	BadgesAwarded     = "assessment.badges_awarded"
)

type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewPublisher(amqpURL, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, channel: ch, exchange: exchange}, nil
}

// Publish sends the payload with the event type as routing key. Calling it
// on a nil publisher does nothing, so callers never need a guard.
func (p *Publisher) Publish(eventType string, payload any) error {
	if p == nil {
		return nil
	}

	body, err := json.Marshal(map[string]any{
		"type":      eventType,
		"payload":   payload,
		"timestamp": time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return p.channel.Publish(
		p.exchange,
		eventType,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
