package billing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerConfig tunes the circuit breaker placed in front of a gateway.
type BreakerConfig struct {
	// MaxRequests allowed through while half-open.
	MaxRequests uint32

	// Interval is the cyclic period in the closed state after which counts reset.
	Interval time.Duration

	// Timeout is how long the breaker stays open before probing again.
	Timeout time.Duration

	// ConsecutiveFailures trips the breaker.
	ConsecutiveFailures uint32
}

// BreakerProvider decorates a Provider with one circuit breaker per operation.
// Rejected calls return ErrCircuitOpen without reaching the gateway.
type BreakerProvider struct {
	next     Provider
	create   *gobreaker.CircuitBreaker[*PaymentIntent]
	retrieve *gobreaker.CircuitBreaker[*Transaction]
}

// NewBreakerProvider wraps next. Zero config fields fall back to defaults.
func NewBreakerProvider(next Provider, cfg BreakerConfig, logger *slog.Logger) *BreakerProvider {
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = 1
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.ConsecutiveFailures == 0 {
		cfg.ConsecutiveFailures = 5
	}

	settings := func(op string) gobreaker.Settings {
		return gobreaker.Settings{
			Name:        next.Name() + "." + op,
			MaxRequests: cfg.MaxRequests,
			Interval:    cfg.Interval,
			Timeout:     cfg.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, context.Canceled) || !IsGatewayFault(err)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("payment gateway breaker state changed",
					"breaker", name,
					"from", from.String(),
					"to", to.String(),
				)
			},
		}
	}

	return &BreakerProvider{
		next:     next,
		create:   gobreaker.NewCircuitBreaker[*PaymentIntent](settings("create_intent")),
		retrieve: gobreaker.NewCircuitBreaker[*Transaction](settings("get_transaction")),
	}
}

// Name implements Provider.
func (b *BreakerProvider) Name() string { return b.next.Name() }

// CreatePaymentIntent implements Provider.
func (b *BreakerProvider) CreatePaymentIntent(ctx context.Context, params CreatePaymentIntentParams) (*PaymentIntent, error) {
	pi, err := b.create.Execute(func() (*PaymentIntent, error) {
		return b.next.CreatePaymentIntent(ctx, params)
	})
	return pi, breakerError(err)
}

// GetTransaction implements Provider.
func (b *BreakerProvider) GetTransaction(ctx context.Context, transactionID string) (*Transaction, error) {
	tx, err := b.retrieve.Execute(func() (*Transaction, error) {
		return b.next.GetTransaction(ctx, transactionID)
	})
	return tx, breakerError(err)
}

// VerifyWebhookSignature delegates to the wrapped provider when it signs webhooks.
func (b *BreakerProvider) VerifyWebhookSignature(payload []byte, signature string, secret string) error {
	v, ok := b.next.(WebhookVerifier)
	if !ok {
		return fmt.Errorf("%s: webhooks not supported", b.next.Name())
	}
	return v.VerifyWebhookSignature(payload, signature, secret)
}

// State reports the breaker state of the transaction lookup, which gates order verification.
func (b *BreakerProvider) State() gobreaker.State {
	return b.retrieve.State()
}

func breakerError(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrCircuitOpen, err)
	}
	return err
}
