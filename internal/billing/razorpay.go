package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
)

// RazorpayProvider implements Provider using Razorpay Orders and Payments.
type RazorpayProvider struct {
	config RazorpayConfig
	client *razorpay.Client
}

// NewRazorpayProvider creates a new Razorpay billing provider.
func NewRazorpayProvider(config RazorpayConfig) (*RazorpayProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &RazorpayProvider{
		config: config,
		client: razorpay.NewClient(config.KeyID, config.KeySecret),
	}, nil
}

// Name implements Provider.
func (r *RazorpayProvider) Name() string { return "razorpay" }

// CreatePaymentIntent creates a Razorpay order. The checkout widget pays against its id.
func (r *RazorpayProvider) CreatePaymentIntent(ctx context.Context, params CreatePaymentIntentParams) (*PaymentIntent, error) {
	if params.AmountMinor <= 0 {
		return nil, ErrAmountTooSmall
	}

	data := map[string]interface{}{
		"amount":   params.AmountMinor,
		"currency": strings.ToUpper(params.Currency),
		"receipt":  params.Receipt,
	}
	if len(params.Metadata) > 0 {
		notes := make(map[string]interface{}, len(params.Metadata))
		for k, v := range params.Metadata {
			notes[k] = v
		}
		data["notes"] = notes
	}

	var headers map[string]string
	if params.IdempotencyKey != "" {
		headers = map[string]string{"X-Idempotency-Key": params.IdempotencyKey}
	}

	body, err := callWithContext(ctx, func() (map[string]interface{}, error) {
		return r.client.Order.Create(data, headers)
	})
	if err != nil {
		return nil, wrapRazorpayError(err, "failed to create order")
	}

	intent := &PaymentIntent{
		ID:          stringField(body, "id"),
		Provider:    r.Name(),
		AmountMinor: int64Field(body, "amount"),
		Currency:    stringField(body, "currency"),
		Receipt:     stringField(body, "receipt"),
		Status:      stringField(body, "status"),
		Metadata:    params.Metadata,
		CreatedAt:   time.Now(),
	}
	if created := int64Field(body, "created_at"); created > 0 {
		intent.CreatedAt = time.Unix(created, 0)
	}
	return intent, nil
}

// GetTransaction fetches a Razorpay payment. Only status "captured" counts as captured;
// "authorized" payments have not been collected yet.
func (r *RazorpayProvider) GetTransaction(ctx context.Context, transactionID string) (*Transaction, error) {
	body, err := callWithContext(ctx, func() (map[string]interface{}, error) {
		return r.client.Payment.Fetch(transactionID, nil, nil)
	})
	if err != nil {
		return nil, wrapRazorpayError(err, "failed to fetch payment")
	}

	status := stringField(body, "status")
	tx := &Transaction{
		ID:          stringField(body, "id"),
		Status:      status,
		Captured:    status == "captured",
		Method:      stringField(body, "method"),
		AmountMinor: int64Field(body, "amount"),
		Currency:    stringField(body, "currency"),
	}
	if notes, ok := body["notes"].(map[string]interface{}); ok {
		tx.Metadata = make(map[string]string, len(notes))
		for k, v := range notes {
			tx.Metadata[k] = fmt.Sprint(v)
		}
	}
	return tx, nil
}

// VerifyWebhookSignature checks the X-Razorpay-Signature header.
func (r *RazorpayProvider) VerifyWebhookSignature(payload []byte, signature string, secret string) error {
	if !utils.VerifyWebhookSignature(string(payload), signature, secret) {
		return ErrInvalidWebhookSignature
	}
	return nil
}

// callWithContext runs a blocking SDK call and abandons it when ctx is done.
// The SDK has no context support; the goroutine finishes on the client's own timeout.
func callWithContext[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type result struct {
		val T
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn()
		done <- result{v, err}
	}()

	select {
	case res := <-done:
		return res.val, res.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func wrapRazorpayError(err error, message string) error {
	if err == context.DeadlineExceeded || err == context.Canceled {
		return err
	}
	msg := err.Error()
	if strings.Contains(strings.ToLower(msg), "does not exist") {
		return fmt.Errorf("%w: %s", ErrTransactionNotFound, msg)
	}

	gwErr := &GatewayError{
		Provider:      "razorpay",
		Message:       fmt.Sprintf("%s: %s", message, msg),
		OriginalError: err,
	}
	switch {
	case strings.Contains(msg, "BAD_REQUEST_ERROR"):
		gwErr.Code = "BAD_REQUEST_ERROR"
		gwErr.StatusCode = 400
	case strings.Contains(msg, "SERVER_ERROR"):
		gwErr.Code = "SERVER_ERROR"
		gwErr.StatusCode = 500
	}
	return gwErr
}

func stringField(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// int64Field reads a JSON number, which the SDK decodes as float64.
func int64Field(m map[string]interface{}, key string) int64 {
	switch v := m[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}
