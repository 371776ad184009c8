package billing

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAPIKey is returned when the gateway credentials are missing.
	ErrInvalidAPIKey = errors.New("billing: invalid or missing API key")

	// ErrTransactionNotFound is returned when the gateway does not know the id.
	ErrTransactionNotFound = errors.New("billing: transaction not found")

	// ErrInvalidWebhookSignature is returned when webhook signature verification fails.
	ErrInvalidWebhookSignature = errors.New("billing: invalid webhook signature")

	// ErrAmountTooSmall is returned for amounts the gateway cannot charge.
	ErrAmountTooSmall = errors.New("billing: amount too small")

	// ErrCircuitOpen is returned while the breaker rejects calls to a failing gateway.
	ErrCircuitOpen = errors.New("billing: gateway circuit open")
)

// GatewayError wraps an error returned by a gateway SDK.
type GatewayError struct {
	Provider      string // "razorpay" or "stripe"
	Message       string // Human-readable error message
	Code          string // Gateway error code (e.g., "card_declined", "BAD_REQUEST_ERROR")
	StatusCode    int    // HTTP status returned by the gateway, when known
	RequestID     string // Gateway request id for support tickets
	OriginalError error  // Original error from the SDK
}

func (e *GatewayError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (code: %s)", e.Provider, e.Message, e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *GatewayError) Unwrap() error {
	return e.OriginalError
}

// IsTemporary returns true if error is likely transient and retryable.
func (e *GatewayError) IsTemporary() bool {
	return e.StatusCode == 0 || e.StatusCode == 429 || e.StatusCode >= 500 ||
		e.Code == "rate_limit" || e.Code == "api_connection_error" || e.Code == "SERVER_ERROR"
}

// IsGatewayFault reports whether err indicates the gateway itself is unhealthy,
// as opposed to a well-formed rejection such as an unknown id.
func IsGatewayFault(err error) bool {
	if err == nil || errors.Is(err, ErrTransactionNotFound) || errors.Is(err, ErrAmountTooSmall) {
		return false
	}
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.IsTemporary()
	}
	return true
}
