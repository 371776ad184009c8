package billing

import (
	"context"
	"time"
)

// Provider is the boundary to an external payment processor.
// Implementations exist for Razorpay and Stripe; MockProvider serves tests.
type Provider interface {
	// Name identifies the provider in logs and metrics (e.g. "razorpay").
	Name() string

	// CreatePaymentIntent creates a remote payment intent (a Razorpay order
	// or a Stripe PaymentIntent) for the given amount. No local state changes.
	CreatePaymentIntent(ctx context.Context, params CreatePaymentIntentParams) (*PaymentIntent, error)

	// GetTransaction fetches a transaction by its gateway id and reports
	// whether the funds were captured.
	// Returns ErrTransactionNotFound when the gateway does not know the id.
	GetTransaction(ctx context.Context, transactionID string) (*Transaction, error)
}

// WebhookVerifier is implemented by providers that sign webhook deliveries.
type WebhookVerifier interface {
	VerifyWebhookSignature(payload []byte, signature string, secret string) error
}

// CreatePaymentIntentParams contains parameters for creating a payment intent.
type CreatePaymentIntentParams struct {
	// AmountMinor is the amount in the smallest currency unit (paise for INR).
	AmountMinor int64

	// Currency code (ISO 4217), e.g. "INR".
	Currency string

	// Receipt is our reference for the intent, e.g. "rcpt_1718000000000".
	Receipt string

	// Description appears in the gateway dashboard.
	Description string

	// Metadata is stored on the intent (order_id, user_id).
	Metadata map[string]string

	// IdempotencyKey prevents duplicate intents when the client retries.
	IdempotencyKey string
}

// PaymentIntent is the gateway object a client pays against.
type PaymentIntent struct {
	// ID is the gateway id (order_... for Razorpay, pi_... for Stripe).
	ID string `json:"id"`

	// Provider is the Name() of the provider that created the intent.
	Provider string `json:"provider"`

	// ClientSecret is set by providers whose frontend SDK needs one (Stripe).
	ClientSecret string `json:"clientSecret,omitempty"`

	AmountMinor int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Receipt     string            `json:"receipt,omitempty"`
	Status      string            `json:"status"`
	Metadata    map[string]string `json:"notes,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// Transaction is the gateway's view of a payment attempt.
type Transaction struct {
	ID string

	// Status is the raw gateway status (captured, authorized, succeeded, failed ...).
	Status string

	// Captured is true only when the gateway confirms the funds were collected.
	Captured bool

	// Method is the raw gateway payment method (upi, card, netbanking ...).
	Method string

	// AmountMinor is the captured amount in the smallest currency unit.
	// Zero when the gateway does not report it.
	AmountMinor int64

	Currency string
	Metadata map[string]string
}
