package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dukerupert/verdant/internal/billing"
	"github.com/dukerupert/verdant/internal/domain"
	"github.com/dukerupert/verdant/internal/handler"
	"github.com/dukerupert/verdant/internal/middleware"
	"github.com/dukerupert/verdant/internal/service"
	"github.com/dukerupert/verdant/internal/telemetry"
	"github.com/google/uuid"
)

const (
	razorpayEventOrderPaid     = "order.paid"
	razorpayEventPaymentFailed = "payment.failed"
)

// razorpayEvent is the part of a Razorpay webhook body the handler reads.
// order.paid carries both entities; payment.failed carries only the payment.
type razorpayEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment *struct {
			Entity razorpayEntity `json:"entity"`
		} `json:"payment"`
		Order *struct {
			Entity razorpayEntity `json:"entity"`
		} `json:"order"`
	} `json:"payload"`
}

type razorpayEntity struct {
	ID      string        `json:"id"`
	OrderID string        `json:"order_id"`
	Status  string        `json:"status"`
	Notes   razorpayNotes `json:"notes"`
}

// razorpayNotes accepts the notes object with any scalar values. Razorpay
// sends an empty array when there are no notes.
type razorpayNotes map[string]string

func (n *razorpayNotes) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		var empty []any
		if json.Unmarshal(data, &empty) == nil {
			*n = nil
			return nil
		}
		return err
	}
	out := make(razorpayNotes, len(raw))
	for k, v := range raw {
		out[k] = fmt.Sprint(v)
	}
	*n = out
	return nil
}

// RazorpayHandler applies Razorpay order.paid and payment.failed events.
type RazorpayHandler struct {
	verifier     billing.WebhookVerifier
	orderService service.OrderService
	metrics      *telemetry.BusinessMetrics
	secret       string
	logger       *slog.Logger
}

func NewRazorpayHandler(
	verifier billing.WebhookVerifier,
	orderService service.OrderService,
	metrics *telemetry.BusinessMetrics,
	secret string,
	logger *slog.Logger,
) *RazorpayHandler {
	return &RazorpayHandler{
		verifier:     verifier,
		orderService: orderService,
		metrics:      metrics,
		secret:       secret,
		logger:       logger,
	}
}

// HandleWebhook verifies X-Razorpay-Signature and applies the event. Like
// the Stripe endpoint it answers 200 once the signature is valid.
func (h *RazorpayHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	const op = "webhook.razorpay"
	logger := middleware.GetLogger(r.Context(), h.logger)

	payload, err := readPayload(r, op)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	signature := r.Header.Get("X-Razorpay-Signature")
	if signature == "" {
		handler.ErrorResponse(w, r, domain.Errorf(domain.EINVALID, op, "Missing signature"))
		return
	}
	if err := h.verifier.VerifyWebhookSignature(payload, signature, h.secret); err != nil {
		h.metrics.RecordWebhook("razorpay", "unknown", outcomeRejected)
		handler.ErrorResponse(w, r, domain.WrapError(err, domain.EUNAUTH, op, "Invalid signature"))
		return
	}

	var event razorpayEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		handler.ErrorResponse(w, r, domain.Errorf(domain.EINVALID, op, "Invalid JSON"))
		return
	}

	logger = logger.With("event_type", event.Event, "event_id", r.Header.Get("X-Razorpay-Event-Id"))
	logger.Info("razorpay webhook received")
	telemetry.AddBreadcrumb(r.Context(), "webhook", "razorpay "+event.Event, nil)

	ctx := context.WithoutCancel(r.Context())

	outcome := outcomeIgnored
	switch event.Event {
	case razorpayEventOrderPaid, razorpayEventPaymentFailed:
		outcome = h.apply(ctx, logger, event)
	default:
		logger.Debug("unhandled razorpay event type")
	}
	h.metrics.RecordWebhook("razorpay", event.Event, outcome)

	handler.JSON(w, http.StatusOK, map[string]bool{"received": true})
}

func (h *RazorpayHandler) apply(ctx context.Context, logger *slog.Logger, event razorpayEvent) string {
	if event.Payload.Payment == nil {
		logger.Warn("razorpay event carries no payment")
		return outcomeIgnored
	}
	payment := event.Payload.Payment.Entity

	// Order notes are set when the gateway order is created. Payment notes
	// only carry what the checkout widget passed.
	notes := payment.Notes
	if event.Payload.Order != nil && len(event.Payload.Order.Entity.Notes) > 0 {
		notes = event.Payload.Order.Entity.Notes
	}
	orderID, err1 := uuid.Parse(notes["order_id"])
	userID, err2 := uuid.Parse(notes["user_id"])
	if err1 != nil || err2 != nil {
		logger.Warn("razorpay event has no order_id or user_id notes", "payment_id", payment.ID)
		return outcomeIgnored
	}
	logger = logger.With("payment_id", payment.ID, "order_id", orderID)

	if event.Event == razorpayEventPaymentFailed {
		if _, err := h.orderService.MarkPaymentFailed(ctx, orderID, userID); err != nil {
			return outcomeFor(ctx, logger, err, payment.ID)
		}
		logger.Info("order marked payment failed from webhook")
		return outcomeProcessed
	}

	recorded, err := h.orderService.ReconcileCapture(ctx, orderID, userID, payment.ID)
	if err != nil {
		return outcomeFor(ctx, logger, err, payment.ID)
	}
	logger.Info("order confirmed from webhook", "amount", recorded.Amount)
	return outcomeProcessed
}
