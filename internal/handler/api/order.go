package api

import (
	"net/http"

	"github.com/dukerupert/verdant/internal/domain"
	"github.com/dukerupert/verdant/internal/handler"
	"github.com/dukerupert/verdant/internal/service"
)

// OrderHandler serves the /order routes.
type OrderHandler struct {
	orderService service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

type createOrderRequest struct {
	UserID          string `json:"userId" validate:"required,uuid"`
	ShippingAddress string `json:"shippingAddress"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type retryPaymentRequest struct {
	UserID string `json:"userId" validate:"required,uuid"`
}

// Create handles POST /order. The order is built from the user's cart.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "api.order.create"

	var req createOrderRequest
	if err := decodeJSON(r, &req, op); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	created, err := h.orderService.CreateOrder(r.Context(), parseUUID(req.UserID), req.ShippingAddress)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.Success(w, http.StatusCreated, "Order created successfully", handler.Envelope{"data": created})
}

// Get handles GET /order/{id}
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id", "api.order.get")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	order, err := h.orderService.GetOrder(r.Context(), id)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.OK(w, "", handler.Envelope{"order": order})
}

// ListForUser handles GET /order/user/{userId}
func (h *OrderHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userId", "api.order.list_user")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	orders, err := h.orderService.ListUserOrders(r.Context(), userID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	writeOrders(w, orders)
}

// List handles GET /order
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.ListAllOrders(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	writeOrders(w, orders)
}

func writeOrders(w http.ResponseWriter, orders []domain.OrderDetail) {
	var message string
	if len(orders) == 0 {
		message = "No orders found"
	}
	handler.OK(w, message, handler.Envelope{
		"total":  len(orders),
		"orders": orders,
	})
}

// UpdateStatus handles PUT /order/status/{id}. Only Shipped and Delivered
// can be requested; payment states are driven by the payment endpoints.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	const op = "api.order.update_status"

	id, err := pathUUID(r, "id", op)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	var req updateStatusRequest
	if err := decodeJSON(r, &req, op); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	target, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		handler.ErrorResponse(w, r, domain.NewValidationError(op, "status", "status is not a valid order status"))
		return
	}

	order, err := h.orderService.AdvanceStatus(r.Context(), id, target)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.OK(w, "Order status updated successfully", handler.Envelope{"order": order})
}

// Cancel handles PUT /order/cancel/{id}
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id", "api.order.cancel")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	order, err := h.orderService.CancelOrder(r.Context(), id)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.OK(w, "Order cancelled successfully", handler.Envelope{"order": order})
}

// RetryPayment handles PUT /order/retry/{id}
func (h *OrderHandler) RetryPayment(w http.ResponseWriter, r *http.Request) {
	const op = "api.order.retry"

	id, err := pathUUID(r, "id", op)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	var req retryPaymentRequest
	if err := decodeJSON(r, &req, op); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	order, err := h.orderService.RetryPayment(r.Context(), id, parseUUID(req.UserID))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.OK(w, "Order is awaiting payment again", handler.Envelope{"order": order})
}
