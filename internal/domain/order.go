package domain

import (
	"fmt"

	"github.com/dukerupert/verdant/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order-related domain errors.
var (
	ErrOrderNotFound          = &Error{Code: ENOTFOUND, Message: "Order not found"}
	ErrEmptyCart              = &Error{Code: EINVALID, Message: "Your cart is empty"}
	ErrMissingShippingAddress = &Error{Code: EINVALID, Message: "Shipping address is required"}
	ErrNotAwaitingPayment     = &Error{Code: ECONFLICT, Message: "Order is not awaiting payment"}
	ErrPaymentNotCaptured     = &Error{Code: EPAYMENT, Message: "Payment has not been captured"}
	ErrOrderLinesMissing      = &Error{Code: EINTERNAL, Message: "Order has no lines"}
	ErrInsufficientStock      = &Error{Code: ESTOCK, Message: "Insufficient stock for one or more items"}
	ErrPaymentAlreadyRecorded = &Error{Code: ECONFLICT, Message: "Payment already recorded for this order"}
	ErrTransactionAlreadyUsed = &Error{Code: ECONFLICT, Message: "Transaction already applied to another order"}
	ErrOrderFinalized         = &Error{Code: ECONFLICT, Message: "Order is finalized"}
	ErrInvalidStateTransition = &Error{Code: ECONFLICT, Message: "Invalid order status transition"}
	ErrInvalidOrderStatus     = &Error{Code: EINVALID, Message: "Invalid order status"}
)

// OrderStatus is the persisted lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPaymentPending OrderStatus = "PaymentPending"
	OrderStatusPaymentFailed  OrderStatus = "PaymentFailed"
	OrderStatusConfirmed      OrderStatus = "Confirmed"
	OrderStatusShipped        OrderStatus = "Shipped"
	OrderStatusDelivered      OrderStatus = "Delivered"
	OrderStatusCancelled      OrderStatus = "Cancelled"
)

// OrderEvent drives a transition of the order state machine.
type OrderEvent string

const (
	EventPaymentVerified OrderEvent = "payment_verified"
	EventPaymentDeclined OrderEvent = "payment_declined"
	EventRetry           OrderEvent = "retry"
	EventCancel          OrderEvent = "cancel"
	EventAdvance         OrderEvent = "advance"
)

// orderTransitions is the complete transition table. Terminal states have no entry.
var orderTransitions = map[OrderStatus]map[OrderEvent]OrderStatus{
	OrderStatusPaymentPending: {
		EventPaymentVerified: OrderStatusConfirmed,
		EventPaymentDeclined: OrderStatusPaymentFailed,
		EventCancel:          OrderStatusCancelled,
	},
	OrderStatusPaymentFailed: {
		EventRetry: OrderStatusPaymentPending,
	},
	OrderStatusConfirmed: {
		EventAdvance: OrderStatusShipped,
		EventCancel:  OrderStatusCancelled,
	},
	OrderStatusShipped: {
		EventAdvance: OrderStatusDelivered,
	},
}

// ParseOrderStatus converts a stored or client-supplied value to an OrderStatus.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch status := OrderStatus(s); status {
	case OrderStatusPaymentPending, OrderStatusPaymentFailed, OrderStatusConfirmed,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return status, nil
	}
	return "", ErrInvalidOrderStatus
}

func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are accepted.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// Apply returns the state reached by applying ev to s.
func (s OrderStatus) Apply(ev OrderEvent) (OrderStatus, error) {
	if s.IsTerminal() {
		return s, finalizedError(s)
	}
	next, ok := orderTransitions[s][ev]
	if !ok {
		return s, &Error{
			Code:    ECONFLICT,
			Message: fmt.Sprintf("Cannot %s an order that is %s", ev.verb(), s),
			Err:     &InvalidTransitionError{From: s, Event: ev},
		}
	}
	return next, nil
}

// CanTransitionTo reports whether some event moves s directly to target.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// ValidateTransition checks a direct move between two states.
// Moves out of Delivered or Cancelled fail with ErrOrderFinalized.
func ValidateTransition(from, to OrderStatus) error {
	if from.IsTerminal() {
		return finalizedError(from)
	}
	if !from.CanTransitionTo(to) {
		return &Error{
			Code:    ECONFLICT,
			Message: fmt.Sprintf("Cannot change order status from %s to %s", from, to),
			Err:     &InvalidTransitionError{From: from, To: to},
		}
	}
	return nil
}

func finalizedError(s OrderStatus) error {
	return &Error{
		Code:    ECONFLICT,
		Message: fmt.Sprintf("Order is already %s", s),
		Err:     ErrOrderFinalized,
	}
}

// InvalidTransitionError names the rejected move. It matches
// ErrInvalidStateTransition with errors.Is.
type InvalidTransitionError struct {
	From  OrderStatus
	To    OrderStatus
	Event OrderEvent
}

func (e *InvalidTransitionError) Error() string {
	if e.To != "" {
		return fmt.Sprintf("invalid transition %s -> %s", e.From, e.To)
	}
	return fmt.Sprintf("invalid event %s in status %s", e.Event, e.From)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidStateTransition
}

func (ev OrderEvent) verb() string {
	switch ev {
	case EventPaymentVerified:
		return "confirm payment for"
	case EventPaymentDeclined:
		return "fail payment for"
	case EventRetry:
		return "retry payment for"
	case EventCancel:
		return "cancel"
	case EventAdvance:
		return "advance"
	}
	return string(ev)
}

// CreatedOrder is returned by order creation.
type CreatedOrder struct {
	OrderID     uuid.UUID       `json:"orderId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// OrderDetail aggregates an order with its line snapshots and payment attempts.
type OrderDetail struct {
	repository.Order
	Items    []repository.OrderLineDetail `json:"items"`
	Payments []repository.Payment         `json:"payments,omitempty"`
}
