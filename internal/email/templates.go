package email

import (
	"embed"

	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

// EmailTemplate defines the interface for email templates
type EmailTemplate interface {
	Subject() string
	TemplateName() string
	Recipient() string
}

// OrderConfirmationEmail is sent once a payment is verified and the order confirmed
type OrderConfirmationEmail struct {
	OrderID         string
	CustomerName    string
	Email           string
	Items           []OrderItem
	Total           decimal.Decimal
	ShippingAddress string
}

func (e OrderConfirmationEmail) Subject() string {
	return "Order Confirmed - " + shortID(e.OrderID)
}

func (e OrderConfirmationEmail) TemplateName() string {
	return "order_confirmation.html"
}

func (e OrderConfirmationEmail) Recipient() string { return e.Email }

// PaymentFailedEmail is sent when a payment attempt for an order fails
type PaymentFailedEmail struct {
	OrderID      string
	CustomerName string
	Email        string
	Total        decimal.Decimal
}

func (e PaymentFailedEmail) Subject() string {
	return "Payment Issue - " + shortID(e.OrderID)
}

func (e PaymentFailedEmail) TemplateName() string {
	return "payment_failed.html"
}

func (e PaymentFailedEmail) Recipient() string { return e.Email }

// OrderItem represents a line item in an order
type OrderItem struct {
	Name      string
	Quantity  int32
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
