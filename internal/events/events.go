// Package events defines order lifecycle events and the brokers they are published to.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event types written to the outbox.
const (
	TypeOrderCreated       = "order.created"
	TypeOrderConfirmed     = "order.confirmed"
	TypeOrderPaymentFailed = "order.payment_failed"
	TypeOrderStatusChanged = "order.status_changed"
)

// Message is one outbox row on its way to a broker.
type Message struct {
	// ID is the outbox row id. Consumers use it to drop redeliveries.
	ID int64

	// Key orders messages of one aggregate (the order id).
	Key string

	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// Publisher delivers messages to a broker. Publish returns only after the
// broker acknowledged the message or the attempt failed.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// OrderLine is the line snapshot carried in order events.
type OrderLine struct {
	PlantID   uuid.UUID       `json:"plantId"`
	Name      string          `json:"name"`
	Quantity  int32           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// OrderCreated is the payload of TypeOrderCreated.
type OrderCreated struct {
	OrderID     uuid.UUID       `json:"orderId"`
	UserID      uuid.UUID       `json:"userId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Lines       []OrderLine     `json:"lines"`
}

// OrderConfirmed is the payload of TypeOrderConfirmed.
type OrderConfirmed struct {
	OrderID         uuid.UUID       `json:"orderId"`
	UserID          uuid.UUID       `json:"userId"`
	PaymentID       uuid.UUID       `json:"paymentId"`
	TransactionID   string          `json:"transactionId"`
	Method          string          `json:"method"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	ShippingAddress string          `json:"shippingAddress"`
	Lines           []OrderLine     `json:"lines"`
	CustomerEmail   string          `json:"customerEmail"`
	CustomerName    string          `json:"customerName"`
}

// OrderPaymentFailed is the payload of TypeOrderPaymentFailed.
type OrderPaymentFailed struct {
	OrderID       uuid.UUID       `json:"orderId"`
	UserID        uuid.UUID       `json:"userId"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	CustomerEmail string          `json:"customerEmail"`
	CustomerName  string          `json:"customerName"`
}

// OrderStatusChanged is the payload of TypeOrderStatusChanged.
type OrderStatusChanged struct {
	OrderID uuid.UUID `json:"orderId"`
	From    string    `json:"from"`
	To      string    `json:"to"`
}
