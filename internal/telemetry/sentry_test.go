package telemetry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrubEvent(t *testing.T) {
	event := &sentry.Event{
		Request: &sentry.Request{
			Data:    `{"orderId":"o1","transactionId":"pay_123"}`,
			Cookies: "session=abc",
			Headers: map[string]string{
				"Stripe-Signature": "t=1,v1=deadbeef",
				"Authorization":    "Bearer secret",
				"Content-Type":     "application/json",
			},
		},
		Exception: []sentry.Exception{
			{Type: "*billing.GatewayError", Value: "card 4111 declined for vpa user@upi"},
			{Type: "*errors.errorString", Value: "failed to commit transaction"},
		},
	}

	out := scrubEvent(event, nil)

	assert.Empty(t, out.Request.Data)
	assert.Empty(t, out.Request.Cookies)
	assert.NotContains(t, out.Request.Headers, "Stripe-Signature")
	assert.NotContains(t, out.Request.Headers, "Authorization")
	assert.Equal(t, "application/json", out.Request.Headers["Content-Type"])
	assert.Equal(t, "*billing.GatewayError", out.Exception[0].Value)
	assert.Equal(t, "failed to commit transaction", out.Exception[1].Value)
}

func TestInitSentry_Disabled(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	flush, err := InitSentry(SentryConfig{Enabled: false}, logger)
	require.NoError(t, err)
	flush()
	assert.False(t, IsEnabled())

	flush, err = InitSentry(SentryConfig{Enabled: true}, logger)
	require.NoError(t, err)
	flush()
	assert.False(t, IsEnabled(), "no DSN keeps reporting off")

	// Helpers are no-ops while disabled.
	ctx, finish := StartSpan(context.Background(), "payment.gateway", "get_transaction")
	finish()
	assert.Equal(t, context.Background(), ctx)
	CaptureErrorFromContext(ctx, errors.New("boom"), nil)
	CaptureMessage(ctx, "outbox event abandoned", sentry.LevelError, nil)
	AddBreadcrumb(ctx, "webhook", "stripe payment_intent.succeeded", nil)
}
