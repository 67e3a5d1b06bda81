package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

// Conn подмножество методов *nats.Conn, используемое издателем
type Conn interface {
	Publish(subj string, data []byte) error
	Drain() error
}

// NATSPublisher публикует события в NATS в формате JSON
type NATSPublisher struct {
	conn   Conn
	prefix string
}

// Connect подключается к NATS и создает издателя.
// prefix добавляется к subject каждого события ("slotbooking" -> "slotbooking.booking.created").
func Connect(url, name, prefix string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url, nats.Name(name), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return NewNATSPublisher(conn, prefix), nil
}

// NewNATSPublisher создает издателя поверх готового соединения
func NewNATSPublisher(conn Conn, prefix string) *NATSPublisher {
	return &NATSPublisher{conn: conn, prefix: prefix}
}

// Publish сериализует событие и отправляет его в subject
func (p *NATSPublisher) Publish(ctx context.Context, subject string, event interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", subject, err)
	}

	if p.prefix != "" {
		subject = p.prefix + "." + subject
	}
	if err := p.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", subject, err)
	}
	return nil
}

// Close дожидается отправки буферизованных сообщений и закрывает соединение
func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}

// NopPublisher издатель-заглушка, когда NATS выключен
type NopPublisher struct{}

// Publish ничего не делает
func (NopPublisher) Publish(context.Context, string, interface{}) error { return nil }

// Close ничего не делает
func (NopPublisher) Close() error { return nil }
