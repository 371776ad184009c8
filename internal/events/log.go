package events

import (
	"context"
	"log/slog"
)

// LogPublisher writes events to the log. Used in development when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, msg Message) error {
	p.logger.InfoContext(ctx, "event published",
		"outbox_id", msg.ID,
		"event_type", msg.Type,
		"aggregate_id", msg.Key,
		"payload", string(msg.Payload),
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }
