package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/getsentry/sentry-go"
)

// SentryConfig configures error reporting.
type SentryConfig struct {
	DSN         string
	Enabled     bool
	Environment string
	Release     string

	// SampleRate is the share of errors sent (0..1). Zero means 1.
	SampleRate float64

	// TracesSampleRate is the share of requests traced. Zero disables tracing.
	TracesSampleRate float64

	Debug bool
}

const flushTimeout = 2 * time.Second

// sensitiveHeaders never leave the process: webhook signatures and credentials.
var sensitiveHeaders = []string{
	"Authorization",
	"Cookie",
	"Stripe-Signature",
	"X-Razorpay-Signature",
}

var enabled atomic.Bool

// InitSentry configures the global Sentry client and returns a flush func for
// shutdown. With reporting disabled or no DSN, every helper here is a no-op.
func InitSentry(cfg SentryConfig, logger *slog.Logger) (func(), error) {
	enabled.Store(false)
	noop := func() {}

	if !cfg.Enabled {
		logger.Info("Sentry disabled")
		return noop, nil
	}
	if cfg.DSN == "" {
		logger.Warn("Sentry enabled without a DSN, error reporting is off")
		return noop, nil
	}

	sampleRate := cfg.SampleRate
	if sampleRate == 0 {
		sampleRate = 1.0
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		SampleRate:       sampleRate,
		TracesSampleRate: cfg.TracesSampleRate,
		EnableTracing:    cfg.TracesSampleRate > 0,
		Debug:            cfg.Debug,
		BeforeSend:       scrubEvent,
	}); err != nil {
		return nil, fmt.Errorf("failed to initialize Sentry: %w", err)
	}
	enabled.Store(true)

	logger.Info("Sentry initialized",
		"environment", cfg.Environment,
		"release", cfg.Release,
		"sample_rate", sampleRate,
		"traces_sample_rate", cfg.TracesSampleRate,
	)
	return func() { sentry.Flush(flushTimeout) }, nil
}

// IsEnabled reports whether events are being sent.
func IsEnabled() bool {
	return enabled.Load()
}

// scrubEvent strips request bodies, credentials and gateway error payloads,
// which can echo card, VPA or customer details.
func scrubEvent(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	if event.Request != nil {
		event.Request.Data = ""
		event.Request.Cookies = ""
		for _, h := range sensitiveHeaders {
			delete(event.Request.Headers, h)
		}
	}
	for i := range event.Exception {
		if strings.HasPrefix(event.Exception[i].Type, "*billing.") {
			event.Exception[i].Value = event.Exception[i].Type
		}
	}
	return event
}

func hubFrom(ctx context.Context) *sentry.Hub {
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		return hub
	}
	return sentry.CurrentHub()
}

// CaptureErrorFromContext reports err through the request hub with extras attached.
func CaptureErrorFromContext(ctx context.Context, err error, extras map[string]interface{}) {
	if !IsEnabled() || err == nil {
		return
	}
	hub := hubFrom(ctx)
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetExtras(extras)
		hub.CaptureException(err)
	})
}

// CaptureMessage reports a non-error condition, such as an outbox event
// that exhausted its retries.
func CaptureMessage(ctx context.Context, message string, level sentry.Level, extras map[string]interface{}) {
	if !IsEnabled() {
		return
	}
	hub := hubFrom(ctx)
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(level)
		scope.SetExtras(extras)
		hub.CaptureMessage(message)
	})
}

// AddBreadcrumb records a step on the request hub, for example a webhook
// event type before it is dispatched.
func AddBreadcrumb(ctx context.Context, category, message string, data map[string]interface{}) {
	if !IsEnabled() {
		return
	}
	hubFrom(ctx).AddBreadcrumb(&sentry.Breadcrumb{
		Category:  category,
		Message:   message,
		Data:      data,
		Level:     sentry.LevelInfo,
		Timestamp: time.Now(),
	}, nil)
}

// StartSpan opens a child span, e.g. around a gateway call, and returns the
// span context and its finish func.
func StartSpan(ctx context.Context, operation, description string) (context.Context, func()) {
	if !IsEnabled() {
		return ctx, func() {}
	}
	span := sentry.StartSpan(ctx, operation)
	span.Description = description
	return span.Context(), span.Finish
}

// SentryMiddleware gives each request its own hub tagged with the request id
// and route. Panics are left to router.Recovery, which reports them.
func SentryMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !IsEnabled() {
				next.ServeHTTP(w, r)
				return
			}

			hub := sentry.GetHubFromContext(r.Context())
			if hub == nil {
				hub = sentry.CurrentHub().Clone()
			}
			scope := hub.Scope()
			scope.SetRequest(r)
			if id := w.Header().Get("X-Request-ID"); id != "" {
				scope.SetTag("request_id", id)
			}
			if r.Pattern != "" {
				scope.SetTag("route", r.Pattern)
			}
			next.ServeHTTP(w, r.WithContext(sentry.SetHubOnContext(r.Context(), hub)))
		})
	}
}

// RecoverPanic reports a recovered panic through the request hub and flushes.
func RecoverPanic(ctx context.Context, recovered interface{}) {
	if !IsEnabled() {
		return
	}
	hub := hubFrom(ctx)
	hub.RecoverWithContext(ctx, recovered)
	hub.Flush(flushTimeout)
}
