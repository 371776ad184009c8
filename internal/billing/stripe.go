package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
	"github.com/stripe/stripe-go/v83/webhook"
)

// StripeProvider implements Provider using Stripe PaymentIntents.
type StripeProvider struct {
	config  StripeConfig
	intents *paymentintent.Client
}

// NewStripeProvider creates a new Stripe billing provider.
// The client is scoped to this provider; the global stripe.Key is left untouched.
func NewStripeProvider(config StripeConfig) (*StripeProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	maxRetries := config.MaxRetries
	if maxRetries == 0 {
		maxRetries = 2
	}
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		MaxNetworkRetries: stripe.Int64(maxRetries),
	})

	return &StripeProvider{
		config:  config,
		intents: &paymentintent.Client{B: backend, Key: config.APIKey},
	}, nil
}

// Name implements Provider.
func (s *StripeProvider) Name() string { return "stripe" }

// CreatePaymentIntent creates a Stripe PaymentIntent with automatic payment methods.
func (s *StripeProvider) CreatePaymentIntent(ctx context.Context, params CreatePaymentIntentParams) (*PaymentIntent, error) {
	if params.AmountMinor <= 0 {
		return nil, ErrAmountTooSmall
	}

	piParams := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(params.AmountMinor),
		Currency: stripe.String(strings.ToLower(params.Currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	if params.Description != "" {
		piParams.Description = stripe.String(params.Description)
	}
	piParams.Context = ctx
	for k, v := range params.Metadata {
		piParams.AddMetadata(k, v)
	}
	if params.Receipt != "" {
		piParams.AddMetadata("receipt", params.Receipt)
	}
	if params.IdempotencyKey != "" {
		piParams.SetIdempotencyKey(params.IdempotencyKey)
	}

	pi, err := s.intents.New(piParams)
	if err != nil {
		return nil, wrapStripeError(err, "failed to create payment intent")
	}

	return &PaymentIntent{
		ID:           pi.ID,
		Provider:     s.Name(),
		ClientSecret: pi.ClientSecret,
		AmountMinor:  pi.Amount,
		Currency:     strings.ToUpper(string(pi.Currency)),
		Receipt:      params.Receipt,
		Status:       string(pi.Status),
		Metadata:     pi.Metadata,
		CreatedAt:    time.Unix(pi.Created, 0),
	}, nil
}

// GetTransaction retrieves a PaymentIntent by id. Only a succeeded intent counts as captured.
func (s *StripeProvider) GetTransaction(ctx context.Context, transactionID string) (*Transaction, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	params.AddExpand("payment_method")

	pi, err := s.intents.Get(transactionID, params)
	if err != nil {
		return nil, wrapStripeError(err, "failed to retrieve payment intent")
	}

	tx := &Transaction{
		ID:          pi.ID,
		Status:      string(pi.Status),
		Captured:    pi.Status == stripe.PaymentIntentStatusSucceeded,
		AmountMinor: pi.AmountReceived,
		Currency:    strings.ToUpper(string(pi.Currency)),
		Metadata:    pi.Metadata,
	}
	if pi.PaymentMethod != nil {
		tx.Method = string(pi.PaymentMethod.Type)
	}
	return tx, nil
}

// VerifyWebhookSignature checks the Stripe-Signature header against the signing secret.
func (s *StripeProvider) VerifyWebhookSignature(payload []byte, signature string, secret string) error {
	if secret == "" {
		secret = s.config.WebhookSecret
	}
	if err := webhook.ValidatePayload(payload, signature, secret); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWebhookSignature, err)
	}
	return nil
}

// wrapStripeError converts Stripe SDK errors to GatewayError.
func wrapStripeError(err error, message string) error {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return &GatewayError{
			Provider:      "stripe",
			Message:       message,
			OriginalError: err,
		}
	}

	if stripeErr.Code == stripe.ErrorCodeResourceMissing {
		return fmt.Errorf("%w: %s", ErrTransactionNotFound, stripeErr.Msg)
	}

	code := string(stripeErr.Code)
	if code == "" {
		code = string(stripeErr.Type)
	}
	return &GatewayError{
		Provider:      "stripe",
		Message:       fmt.Sprintf("%s: %s", message, stripeErr.Msg),
		Code:          code,
		StatusCode:    stripeErr.HTTPStatusCode,
		RequestID:     stripeErr.RequestID,
		OriginalError: err,
	}
}
