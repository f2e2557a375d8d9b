// Package events publishes learner progress events to a message broker.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Event types, also used as routing keys.
const (
	AssessmentScored  = "assessment.scored"
	CurriculumCreated = "curriculum.created"
	ProgressRecorded  = "progress.recorded"
)

// DefaultExchange is the topic exchange events are published to.
const DefaultExchange = "coach.events"

// Event is one published message.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	UserID    string    `json:"user_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// New creates an event with a fresh id stamped at the given time.
func New(typ, userID string, payload any, at time.Time) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      typ,
		UserID:    userID,
		Timestamp: at.UTC(),
		Payload:   payload,
	}
}

// Publisher sends events.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// NopPublisher logs events at debug level and drops them.
type NopPublisher struct {
	log *zap.Logger
}

// NewNopPublisher creates a NopPublisher. A nil logger discards everything.
func NewNopPublisher(log *zap.Logger) *NopPublisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &NopPublisher{log: log}
}

// Publish logs e.
func (p *NopPublisher) Publish(_ context.Context, e Event) error {
	p.log.Debug("event (publisher disabled)", zap.String("type", e.Type), zap.String("user_id", e.UserID))
	return nil
}

// Close is a no-op.
func (p *NopPublisher) Close() error { return nil }

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes persistent JSON messages to a durable topic
// exchange, routed by event type.
type AMQPPublisher struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
}

// NewPublisher returns an AMQPPublisher for url, or a NopPublisher when url
// is empty.
func NewPublisher(url, exchange string, log *zap.Logger) (Publisher, error) {
	if url == "" {
		return NewNopPublisher(log), nil
	}
	return NewAMQPPublisher(url, exchange, log)
}

// NewAMQPPublisher dials the broker and declares the exchange.
func NewAMQPPublisher(url, exchange string, log *zap.Logger) (*AMQPPublisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	if log == nil {
		log = zap.NewNop()
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	log.Info("event publisher connected", zap.String("exchange", exchange))
	return &AMQPPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func publishing(e Event) (amqp.Publishing, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    e.ID,
		Timestamp:    e.Timestamp,
		Type:         e.Type,
		Body:         body,
	}, nil
}

// Publish sends e routed by its type. Failures are returned unlogged; the
// caller decides whether they matter.
func (p *AMQPPublisher) Publish(ctx context.Context, e Event) error {
	msg, err := publishing(e)
	if err != nil {
		return err
	}
	if err := p.ch.PublishWithContext(ctx, p.exchange, e.Type, false, false, msg); err != nil {
		return fmt.Errorf("publish %s: %w", e.Type, err)
	}
	return nil
}

// Close closes the channel and the connection.
func (p *AMQPPublisher) Close() error {
	var first error
	if p.ch != nil {
		first = p.ch.Close()
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
