package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher публикует доменные события в topic exchange RabbitMQ
type Publisher struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
	now      func() time.Time
}

// NewPublisher подключается к брокеру и объявляет exchange
func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: declare exchange %q: %v", ErrConnect, exchange, err)
	}

	return &Publisher{conn: conn, ch: ch, exchange: exchange, now: time.Now}, nil
}

// Publish оборачивает payload в конверт с новым event_id и публикует его
func (p *Publisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	envelope := Envelope{
		EventID:    uuid.NewString(),
		EventType:  routingKey,
		OccurredAt: p.now().UTC(),
		Payload:    payload,
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrPublish, routingKey, err)
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    envelope.EventID,
		Timestamp:    envelope.OccurredAt,
		Type:         routingKey,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPublish, routingKey, err)
	}

	return nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NopPublisher используется, когда публикация событий отключена
type NopPublisher struct{}

// Publish ничего не делает
func (NopPublisher) Publish(context.Context, string, interface{}) error { return nil }

// Close ничего не делает
func (NopPublisher) Close() error { return nil }
