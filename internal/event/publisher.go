package event

import (
	"encoding/json"
	"log"
	"time"

	"github.com/streadway/amqp"
)

// SnapshotEvent is the payload published on snapshot lifecycle changes.
type SnapshotEvent struct {
	Questionnaire string    `json:"questionnaire"`
	SessionToken  string    `json:"session_token,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

type EventPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewEventPublisher(amqpURL, exchange string) (*EventPublisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}
	return &EventPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

// Publish sends a snapshot lifecycle event, with the event type as the
// routing key.
func (p *EventPublisher) Publish(eventType string, ev SnapshotEvent) error {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	body, err := json.Marshal(map[string]any{
		"type":    eventType,
		"payload": ev,
	})
	if err != nil {
		return err
	}

	log.Printf("[EVENT] %s: %s", eventType, ev.Questionnaire)

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

func (p *EventPublisher) Close() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
