package webhook

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dukerupert/verdant/internal/billing"
	"github.com/dukerupert/verdant/internal/domain"
	"github.com/dukerupert/verdant/internal/handler"
	"github.com/dukerupert/verdant/internal/middleware"
	"github.com/dukerupert/verdant/internal/service"
	"github.com/dukerupert/verdant/internal/telemetry"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v83"
)

// StripeHandler handles Stripe webhook events
type StripeHandler struct {
	verifier     billing.WebhookVerifier
	orderService service.OrderService
	metrics      *telemetry.BusinessMetrics
	config       StripeWebhookConfig
	logger       *slog.Logger
}

// StripeWebhookConfig contains configuration for Stripe webhook handling
type StripeWebhookConfig struct {
	// WebhookSecret is the webhook signing secret from the Stripe dashboard
	WebhookSecret string
}

// NewStripeHandler creates a new Stripe webhook handler
func NewStripeHandler(
	verifier billing.WebhookVerifier,
	orderService service.OrderService,
	metrics *telemetry.BusinessMetrics,
	config StripeWebhookConfig,
	logger *slog.Logger,
) *StripeHandler {
	return &StripeHandler{
		verifier:     verifier,
		orderService: orderService,
		metrics:      metrics,
		config:       config,
		logger:       logger,
	}
}

// HandleWebhook processes incoming Stripe webhook events.
//
// Once the signature checks out the handler always answers 200. Orders that
// cannot be confirmed or failed are logged and recorded in metrics.
//
// Stripe CLI testing:
//
//	stripe listen --forward-to localhost:3000/webhook/stripe
//	stripe trigger payment_intent.succeeded
func (h *StripeHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context(), h.logger)

	if r.Method != http.MethodPost {
		handler.ErrorResponse(w, r, domain.Errorf(domain.EINVALID, "webhook.stripe", "Method not allowed"))
		return
	}

	payload, err := readPayload(r, "webhook.stripe")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	signature := r.Header.Get("Stripe-Signature")
	if signature == "" {
		handler.ErrorResponse(w, r, domain.Errorf(domain.EINVALID, "webhook.stripe", "Missing signature"))
		return
	}

	if err := h.verifier.VerifyWebhookSignature(payload, signature, h.config.WebhookSecret); err != nil {
		h.metrics.RecordWebhook("stripe", "unknown", outcomeRejected)
		handler.ErrorResponse(w, r, domain.WrapError(err, domain.EUNAUTH, "webhook.stripe", "Invalid signature"))
		return
	}

	var event stripe.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		handler.ErrorResponse(w, r, domain.Errorf(domain.EINVALID, "webhook.stripe", "Invalid JSON"))
		return
	}

	logger = logger.With("event_id", event.ID, "event_type", string(event.Type))
	logger.Info("stripe webhook received")
	telemetry.AddBreadcrumb(r.Context(), "webhook", "stripe "+string(event.Type), map[string]interface{}{"event_id": event.ID})

	// Finish the work even if Stripe hangs up.
	ctx := context.WithoutCancel(r.Context())

	var outcome string
	switch event.Type {
	case stripe.EventTypePaymentIntentSucceeded:
		outcome = h.handlePaymentIntentSucceeded(ctx, logger, event)
	case stripe.EventTypePaymentIntentPaymentFailed:
		outcome = h.handlePaymentIntentFailed(ctx, logger, event)
	default:
		logger.Debug("unhandled stripe event type")
		outcome = outcomeIgnored
	}
	h.metrics.RecordWebhook("stripe", string(event.Type), outcome)

	handler.JSON(w, http.StatusOK, map[string]bool{"received": true})
}

// handlePaymentIntentSucceeded confirms the order named in the intent metadata.
// The intent id is the transaction id; the orchestrator still asks Stripe
// whether it was captured.
func (h *StripeHandler) handlePaymentIntentSucceeded(ctx context.Context, logger *slog.Logger, event stripe.Event) string {
	intent, orderID, userID, ok := h.parseIntent(logger, event)
	if !ok {
		return outcomeIgnored
	}
	logger = logger.With("payment_intent_id", intent.ID, "order_id", orderID)

	payment, err := h.orderService.ReconcileCapture(ctx, orderID, userID, intent.ID)
	if err != nil {
		return outcomeFor(ctx, logger, err, intent.ID)
	}

	logger.Info("order confirmed from webhook", "payment_id", payment.ID, "amount", payment.Amount)
	return outcomeProcessed
}

// handlePaymentIntentFailed moves the order to PaymentFailed.
func (h *StripeHandler) handlePaymentIntentFailed(ctx context.Context, logger *slog.Logger, event stripe.Event) string {
	intent, orderID, userID, ok := h.parseIntent(logger, event)
	if !ok {
		return outcomeIgnored
	}
	logger = logger.With("payment_intent_id", intent.ID, "order_id", orderID)

	if intent.LastPaymentError != nil {
		logger.Info("stripe reported payment failure",
			"decline_code", string(intent.LastPaymentError.DeclineCode),
			"message", intent.LastPaymentError.Msg,
		)
	}

	if _, err := h.orderService.MarkPaymentFailed(ctx, orderID, userID); err != nil {
		return outcomeFor(ctx, logger, err, intent.ID)
	}

	logger.Info("order marked payment failed from webhook")
	return outcomeProcessed
}

// parseIntent decodes the PaymentIntent and the order and user ids stored in
// its metadata when the intent was created.
func (h *StripeHandler) parseIntent(logger *slog.Logger, event stripe.Event) (*stripe.PaymentIntent, uuid.UUID, uuid.UUID, bool) {
	var intent stripe.PaymentIntent
	if event.Data == nil || json.Unmarshal(event.Data.Raw, &intent) != nil {
		logger.Warn("stripe event carries no payment intent")
		return nil, uuid.Nil, uuid.Nil, false
	}

	orderID, err := uuid.Parse(intent.Metadata["order_id"])
	if err != nil {
		logger.Warn("payment intent has no order_id metadata", "payment_intent_id", intent.ID)
		return nil, uuid.Nil, uuid.Nil, false
	}
	userID, err := uuid.Parse(intent.Metadata["user_id"])
	if err != nil {
		logger.Warn("payment intent has no user_id metadata", "payment_intent_id", intent.ID)
		return nil, uuid.Nil, uuid.Nil, false
	}
	return &intent, orderID, userID, true
}
