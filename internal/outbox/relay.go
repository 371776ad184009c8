// Package outbox relays events written by the order services to the broker.
package outbox

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"

	"github.com/dukerupert/verdant/internal/events"
	"github.com/dukerupert/verdant/internal/repository"
	"github.com/dukerupert/verdant/internal/telemetry"
)

// Config holds relay configuration
type Config struct {
	// RelayID identifies this relay instance in logs
	RelayID string

	// PollInterval is how often to look for unpublished events
	PollInterval time.Duration

	// BatchSize is the maximum number of events claimed per poll
	BatchSize int32

	// MaxAttempts stops retrying an event after this many failed publishes
	MaxAttempts int32

	// PublishTimeout bounds a single broker publish
	PublishTimeout time.Duration
}

// Relay polls the outbox table and publishes pending events. Rows are claimed
// with SKIP LOCKED, so several relays can run against one database.
type Relay struct {
	config    Config
	store     repository.Store
	publisher events.Publisher
	notifier  Notifier
	metrics   *telemetry.BusinessMetrics
	logger    *slog.Logger
}

// NewRelay creates a relay. notifier may be nil to disable customer emails.
func NewRelay(
	store repository.Store,
	publisher events.Publisher,
	notifier Notifier,
	metrics *telemetry.BusinessMetrics,
	config Config,
	logger *slog.Logger,
) *Relay {
	if config.RelayID == "" {
		config.RelayID = fmt.Sprintf("relay-%s", uuid.New().String()[:8])
	}
	if config.PollInterval == 0 {
		config.PollInterval = time.Second
	}
	if config.BatchSize == 0 {
		config.BatchSize = 50
	}
	if config.MaxAttempts == 0 {
		config.MaxAttempts = 10
	}
	if config.PublishTimeout == 0 {
		config.PublishTimeout = 5 * time.Second
	}

	return &Relay{
		config:    config,
		store:     store,
		publisher: publisher,
		notifier:  notifier,
		metrics:   metrics,
		logger:    logger.With("relay_id", config.RelayID),
	}
}

// Run relays events until ctx is cancelled. It returns nil on cancellation.
func (r *Relay) Run(ctx context.Context) error {
	r.logger.Info("outbox relay starting",
		"poll_interval", r.config.PollInterval,
		"batch_size", r.config.BatchSize,
	)

	ticker := time.NewTicker(r.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay shutting down")
			return nil
		case <-ticker.C:
			// Drain backlogs without waiting a full interval per batch.
			for {
				n, err := r.RelayBatch(ctx)
				if err != nil {
					if ctx.Err() == nil {
						r.logger.Error("outbox relay batch failed", "error", err)
					}
					break
				}
				if n < int(r.config.BatchSize) {
					break
				}
			}
		}
	}
}

// RelayBatch claims one batch, publishes each event and records the outcome
// in the same transaction. It returns the number of events claimed.
func (r *Relay) RelayBatch(ctx context.Context) (int, error) {
	var claimed int
	err := r.store.ExecTx(ctx, func(q repository.Querier) error {
		batch, err := q.ClaimOutboxEvents(ctx, repository.ClaimOutboxEventsParams{
			Limit:       r.config.BatchSize,
			MaxAttempts: r.config.MaxAttempts,
		})
		if err != nil {
			return fmt.Errorf("failed to claim outbox events: %w", err)
		}
		claimed = len(batch)

		for _, ev := range batch {
			pubErr := r.publish(ctx, ev)
			r.metrics.RecordOutbox(ev.EventType, pubErr)

			if pubErr != nil {
				r.logger.Warn("outbox publish failed",
					"outbox_id", ev.ID,
					"event_type", ev.EventType,
					"attempt", ev.Attempts+1,
					"error", pubErr,
				)
				if ev.Attempts+1 >= r.config.MaxAttempts {
					telemetry.CaptureMessage(ctx, "outbox event abandoned after max attempts", sentry.LevelError, map[string]interface{}{
						"outbox_id":  ev.ID,
						"event_type": ev.EventType,
						"last_error": pubErr.Error(),
					})
				}
				if err := q.MarkOutboxEventFailed(ctx, repository.MarkOutboxEventFailedParams{
					ID:        ev.ID,
					LastError: pubErr.Error(),
				}); err != nil {
					return fmt.Errorf("failed to mark outbox event %d failed: %w", ev.ID, err)
				}
				continue
			}

			if err := q.MarkOutboxEventPublished(ctx, ev.ID); err != nil {
				return fmt.Errorf("failed to mark outbox event %d published: %w", ev.ID, err)
			}
			r.notify(ctx, ev)
		}
		return nil
	})
	return claimed, err
}

func (r *Relay) publish(ctx context.Context, ev repository.OutboxEvent) error {
	pubCtx, cancel := context.WithTimeout(ctx, r.config.PublishTimeout)
	defer cancel()

	return r.publisher.Publish(pubCtx, events.Message{
		ID:        ev.ID,
		Key:       ev.AggregateID.String(),
		Type:      ev.EventType,
		Payload:   ev.Payload,
		CreatedAt: ev.CreatedAt,
	})
}

// notify sends the customer email tied to an event. Email delivery is best
// effort: a failure is logged and counted but never blocks the outbox.
func (r *Relay) notify(ctx context.Context, ev repository.OutboxEvent) {
	if r.notifier == nil {
		return
	}
	emailType, err := dispatch(ctx, r.notifier, ev)
	if emailType == "" {
		return
	}
	r.metrics.RecordEmail(emailType, err)
	if err != nil {
		r.logger.Error("order notification failed",
			"outbox_id", ev.ID,
			"event_type", ev.EventType,
			"order_id", ev.AggregateID,
			"error", err,
		)
	}
}
