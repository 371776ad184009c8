package outbox

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dukerupert/verdant/internal/email"
	"github.com/dukerupert/verdant/internal/events"
	"github.com/dukerupert/verdant/internal/repository"
)

// Notifier sends customer emails for order events. *email.Notifier implements it.
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, data email.OrderConfirmationEmail) error
	SendPaymentFailed(ctx context.Context, data email.PaymentFailedEmail) error
}

var _ Notifier = (*email.Notifier)(nil)

// Email types reported to metrics.
const (
	emailOrderConfirmation = "order_confirmation"
	emailPaymentFailed     = "payment_failed"
)

// dispatch routes an event to its email. It returns an empty email type for
// events that have none.
func dispatch(ctx context.Context, n Notifier, ev repository.OutboxEvent) (string, error) {
	switch ev.EventType {
	case events.TypeOrderConfirmed:
		var payload events.OrderConfirmed
		if err := json.Unmarshal(ev.Payload, &payload); err != nil {
			return emailOrderConfirmation, fmt.Errorf("failed to unmarshal order confirmed payload: %w", err)
		}
		return emailOrderConfirmation, n.SendOrderConfirmation(ctx, confirmationEmail(payload))

	case events.TypeOrderPaymentFailed:
		var payload events.OrderPaymentFailed
		if err := json.Unmarshal(ev.Payload, &payload); err != nil {
			return emailPaymentFailed, fmt.Errorf("failed to unmarshal payment failed payload: %w", err)
		}
		return emailPaymentFailed, n.SendPaymentFailed(ctx, email.PaymentFailedEmail{
			OrderID:      payload.OrderID.String(),
			CustomerName: payload.CustomerName,
			Email:        payload.CustomerEmail,
			Total:        payload.TotalAmount,
		})
	}
	return "", nil
}

func confirmationEmail(p events.OrderConfirmed) email.OrderConfirmationEmail {
	items := make([]email.OrderItem, 0, len(p.Lines))
	for _, l := range p.Lines {
		items = append(items, email.OrderItem{
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.UnitPrice.Mul(decimal.NewFromInt32(l.Quantity)),
		})
	}
	return email.OrderConfirmationEmail{
		OrderID:         p.OrderID.String(),
		CustomerName:    p.CustomerName,
		Email:           p.CustomerEmail,
		Items:           items,
		Total:           p.TotalAmount,
		ShippingAddress: p.ShippingAddress,
	}
}
