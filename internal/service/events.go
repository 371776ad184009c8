package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/dukerupert/verdant/internal/events"
	"github.com/dukerupert/verdant/internal/repository"
)

// writeEvent appends an event to the outbox on q. Called inside the
// transaction that made the state change, so both commit or neither does.
func writeEvent(ctx context.Context, q repository.Querier, orderID uuid.UUID, eventType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}
	if err := q.InsertOutboxEvent(ctx, repository.InsertOutboxEventParams{
		AggregateID: orderID,
		EventType:   eventType,
		Payload:     data,
	}); err != nil {
		return fmt.Errorf("failed to write %s event: %w", eventType, err)
	}
	return nil
}

func eventLines(lines []repository.OrderLineDetail) []events.OrderLine {
	out := make([]events.OrderLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, events.OrderLine{
			PlantID:   l.PlantID,
			Name:      l.PlantName,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	return out
}

func fullName(u repository.User) string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	}
	return u.LastName
}
