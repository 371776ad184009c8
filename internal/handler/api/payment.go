package api

import (
	"net/http"

	"github.com/dukerupert/verdant/internal/handler"
	"github.com/dukerupert/verdant/internal/repository"
	"github.com/dukerupert/verdant/internal/service"
	"github.com/shopspring/decimal"
)

// PaymentHandler serves the /payment routes.
type PaymentHandler struct {
	orderService service.OrderService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(orderService service.OrderService) *PaymentHandler {
	return &PaymentHandler{orderService: orderService}
}

type createIntentRequest struct {
	Amount  decimal.Decimal `json:"amount"`
	OrderID string          `json:"orderId" validate:"omitempty,uuid"`
	UserID  string          `json:"userId" validate:"omitempty,uuid"`
}

type verifyPaymentRequest struct {
	OrderID       string `json:"orderId" validate:"required,uuid"`
	UserID        string `json:"userId" validate:"required,uuid"`
	TransactionID string `json:"transactionId" validate:"required,max=255"`
}

type paymentFailedRequest struct {
	OrderID string `json:"orderId" validate:"required,uuid"`
	UserID  string `json:"userId" validate:"required,uuid"`
}

// CreateIntent handles POST /payment/create-order. It only talks to the
// gateway; nothing is persisted until the payment is verified.
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	const op = "api.payment.create_intent"

	var req createIntentRequest
	if err := decodeJSON(r, &req, op); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	intent, err := h.orderService.InitiatePaymentIntent(r.Context(), service.InitiatePaymentParams{
		Amount:  req.Amount,
		OrderID: optionalUUID(req.OrderID),
		UserID:  optionalUUID(req.UserID),
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.OK(w, "", handler.Envelope{"order": intent})
}

// Verify handles POST /payment/verify
func (h *PaymentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	const op = "api.payment.verify"

	var req verifyPaymentRequest
	if err := decodeJSON(r, &req, op); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	payment, err := h.orderService.VerifyAndComplete(r.Context(), parseUUID(req.OrderID), parseUUID(req.UserID), req.TransactionID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.OK(w, "Payment successful.", handler.Envelope{"payment": payment})
}

// Failed handles POST /payment/failed, sent by the client when checkout is
// abandoned or the gateway declines.
func (h *PaymentHandler) Failed(w http.ResponseWriter, r *http.Request) {
	const op = "api.payment.failed"

	var req paymentFailedRequest
	if err := decodeJSON(r, &req, op); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	order, err := h.orderService.MarkPaymentFailed(r.Context(), parseUUID(req.OrderID), parseUUID(req.UserID))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.OK(w, "Payment marked as failed", handler.Envelope{"order": order})
}

// List handles GET /payment
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	payments, err := h.orderService.ListPayments(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	writePayments(w, payments)
}

// ListForUser handles GET /payment/user/{userId}
func (h *PaymentHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userId", "api.payment.list_user")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	payments, err := h.orderService.ListUserPayments(r.Context(), userID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	writePayments(w, payments)
}

func writePayments(w http.ResponseWriter, payments []repository.Payment) {
	handler.OK(w, "", handler.Envelope{
		"total":    len(payments),
		"payments": payments,
	})
}
