package events

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSPublisher publishes to core NATS on "<prefix>.<event type>".
type NATSPublisher struct {
	conn   *nats.Conn
	prefix string
}

// NewNATSPublisher connects to url. Reconnects are handled by the client.
func NewNATSPublisher(url, prefix string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("verdant-outbox"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}
	if prefix == "" {
		prefix = "verdant"
	}
	return &NATSPublisher{conn: conn, prefix: prefix}, nil
}

// Subject returns the subject an event type is published on.
func (p *NATSPublisher) Subject(eventType string) string {
	return p.prefix + "." + eventType
}

// Publish sends the message and flushes, so a nil error means the server has it.
func (p *NATSPublisher) Publish(ctx context.Context, msg Message) error {
	m := nats.NewMsg(p.Subject(msg.Type))
	m.Data = msg.Payload
	m.Header.Set("Nats-Msg-Id", strconv.FormatInt(msg.ID, 10))
	m.Header.Set("Event-Type", msg.Type)
	m.Header.Set("Aggregate-Id", msg.Key)

	if err := p.conn.PublishMsg(m); err != nil {
		return fmt.Errorf("nats publish failed: %w", err)
	}
	if err := p.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("nats flush failed: %w", err)
	}
	return nil
}

// Close drains pending messages and closes the connection.
func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}
