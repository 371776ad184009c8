package repository

import (
	"context"

	"github.com/google/uuid"
)

const insertOutboxEvent = `
INSERT INTO outbox_events (aggregate_id, event_type, payload)
VALUES ($1, $2, $3)`

type InsertOutboxEventParams struct {
	AggregateID uuid.UUID
	EventType   string
	Payload     []byte
}

func (q *Queries) InsertOutboxEvent(ctx context.Context, arg InsertOutboxEventParams) error {
	_, err := q.db.Exec(ctx, insertOutboxEvent, arg.AggregateID, arg.EventType, arg.Payload)
	return err
}

const claimOutboxEvents = `
SELECT id, aggregate_id, event_type, payload, attempts, last_error, created_at, published_at
FROM outbox_events
WHERE published_at IS NULL AND attempts < $2
ORDER BY id
LIMIT $1
FOR UPDATE SKIP LOCKED`

type ClaimOutboxEventsParams struct {
	Limit       int32
	MaxAttempts int32
}

// ClaimOutboxEvents locks a batch of unpublished events. Rows locked by another
// relay are skipped.
func (q *Queries) ClaimOutboxEvents(ctx context.Context, arg ClaimOutboxEventsParams) ([]OutboxEvent, error) {
	rows, err := q.db.Query(ctx, claimOutboxEvents, arg.Limit, arg.MaxAttempts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []OutboxEvent
	for rows.Next() {
		var i OutboxEvent
		if err := rows.Scan(
			&i.ID,
			&i.AggregateID,
			&i.EventType,
			&i.Payload,
			&i.Attempts,
			&i.LastError,
			&i.CreatedAt,
			&i.PublishedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const markOutboxEventPublished = `UPDATE outbox_events SET published_at = now(), attempts = attempts + 1 WHERE id = $1`

func (q *Queries) MarkOutboxEventPublished(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, markOutboxEventPublished, id)
	return err
}

const markOutboxEventFailed = `UPDATE outbox_events SET attempts = attempts + 1, last_error = $2 WHERE id = $1`

type MarkOutboxEventFailedParams struct {
	ID        int64
	LastError string
}

func (q *Queries) MarkOutboxEventFailed(ctx context.Context, arg MarkOutboxEventFailedParams) error {
	_, err := q.db.Exec(ctx, markOutboxEventFailed, arg.ID, arg.LastError)
	return err
}
