package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// BusinessMetrics holds Prometheus metrics for the order, payment and stock workflow.
// All record methods are safe on a nil receiver so services can run without metrics.
type BusinessMetrics struct {
	// Orders
	OrdersCreated      prometheus.Counter
	OrderValue         prometheus.Histogram
	OrderStatusChanges *prometheus.CounterVec

	// Payments
	PaymentsVerified *prometheus.CounterVec
	PaymentsFailed   *prometheus.CounterVec
	RevenueCollected *prometheus.CounterVec
	PaymentIntents   *prometheus.CounterVec

	// Gateway performance
	GatewayLatency  *prometheus.HistogramVec
	GatewayTimeouts *prometheus.CounterVec

	// Inventory
	StockConflicts prometheus.Counter

	// Cart
	CartOperations *prometheus.CounterVec

	// Outbox relay
	OutboxPublished *prometheus.CounterVec
	OutboxFailed    *prometheus.CounterVec

	// Email delivery
	EmailSent   *prometheus.CounterVec
	EmailFailed *prometheus.CounterVec

	// Webhooks
	WebhookReceived *prometheus.CounterVec
}

// NewBusinessMetrics creates and registers all business metrics on reg.
// A nil reg registers on the default Prometheus registry.
func NewBusinessMetrics(namespace string, reg prometheus.Registerer) *BusinessMetrics {
	if namespace == "" {
		namespace = "verdant"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)
	subsystem := "business"

	m := &BusinessMetrics{
		// =======================================================================
		// Orders
		// =======================================================================
		OrdersCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orders_created_total",
				Help:      "Total orders placed from a cart",
			},
		),
		OrderValue: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_value_rupees",
				Help:      "Order total at placement",
				Buckets:   []float64{100, 250, 500, 1000, 2500, 5000, 10000, 25000},
			},
		),
		OrderStatusChanges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_status_changes_total",
				Help:      "Order lifecycle transitions",
			},
			[]string{"from", "to"},
		),

		// =======================================================================
		// Payments
		// =======================================================================
		PaymentsVerified: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "payments_verified_total",
				Help:      "Payments verified with the gateway and recorded as Success",
			},
			[]string{"method"},
		),
		PaymentsFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "payments_failed_total",
				Help:      "Payment verifications that did not complete",
			},
			[]string{"reason"}, // reason: declined, not_captured, insufficient_stock, already_recorded, error
		),
		RevenueCollected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "revenue_collected_minor_units",
				Help:      "Captured revenue in the smallest currency unit",
			},
			[]string{"currency"},
		),
		PaymentIntents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "payment_intents_total",
				Help:      "Payment intents requested from the gateway",
			},
			[]string{"provider", "result"},
		),

		// =======================================================================
		// Gateway Performance
		// =======================================================================
		GatewayLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "gateway_api_duration_seconds",
				Help:      "Payment gateway call duration (helps differentiate app slowness from gateway issues)",
				Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"provider", "operation"}, // operation: create_intent, get_transaction
		),
		GatewayTimeouts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "payments_gateway_timeouts_total",
				Help:      "Gateway calls abandoned after the configured timeout",
			},
			[]string{"provider"},
		),

		// =======================================================================
		// Inventory
		// =======================================================================
		StockConflicts: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "stock_decrement_conflicts_total",
				Help:      "Verifications rolled back because a line could not be fulfilled",
			},
		),

		// =======================================================================
		// Cart
		// =======================================================================
		CartOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_operations_total",
				Help:      "Cart mutations by kind",
			},
			[]string{"operation"}, // operation: add, merge, update, remove, clear
		),

		// =======================================================================
		// Outbox Relay
		// =======================================================================
		OutboxPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "outbox_events_published_total",
				Help:      "Outbox events delivered to the broker",
			},
			[]string{"event_type"},
		),
		OutboxFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "outbox_events_failed_total",
				Help:      "Outbox publish attempts that failed",
			},
			[]string{"event_type"},
		),

		// =======================================================================
		// Email Delivery
		// =======================================================================
		EmailSent: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "emails_sent_total",
				Help:      "Total emails sent by type",
			},
			[]string{"email_type"}, // email_type: order_confirmation, payment_failed
		),
		EmailFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "emails_failed_total",
				Help:      "Total email delivery failures",
			},
			[]string{"email_type"},
		),

		// =======================================================================
		// Webhooks
		// =======================================================================
		WebhookReceived: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "webhooks_received_total",
				Help:      "Gateway webhook deliveries by outcome",
			},
			[]string{"provider", "event_type", "outcome"},
		),
	}

	return m
}

// RecordOrderCreated counts a placed order and observes its value.
func (m *BusinessMetrics) RecordOrderCreated(total decimal.Decimal) {
	if m == nil {
		return
	}
	m.OrdersCreated.Inc()
	m.OrderValue.Observe(total.InexactFloat64())
}

// RecordStatusChange counts an order lifecycle transition.
func (m *BusinessMetrics) RecordStatusChange(from, to string) {
	if m == nil {
		return
	}
	m.OrderStatusChanges.WithLabelValues(from, to).Inc()
}

// RecordPaymentVerified counts a Success payment and its captured amount.
func (m *BusinessMetrics) RecordPaymentVerified(method, currency string, amountMinor int64) {
	if m == nil {
		return
	}
	m.PaymentsVerified.WithLabelValues(method).Inc()
	m.RevenueCollected.WithLabelValues(currency).Add(float64(amountMinor))
}

// RecordPaymentFailed counts a verification that did not complete.
func (m *BusinessMetrics) RecordPaymentFailed(reason string) {
	if m == nil {
		return
	}
	m.PaymentsFailed.WithLabelValues(reason).Inc()
}

// RecordPaymentIntent counts a gateway intent request.
func (m *BusinessMetrics) RecordPaymentIntent(provider string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.PaymentIntents.WithLabelValues(provider, result).Inc()
}

// ObserveGateway records the duration of a gateway call.
func (m *BusinessMetrics) ObserveGateway(provider, operation string, seconds float64) {
	if m == nil {
		return
	}
	m.GatewayLatency.WithLabelValues(provider, operation).Observe(seconds)
}

// RecordGatewayTimeout counts a gateway call that exceeded its deadline.
func (m *BusinessMetrics) RecordGatewayTimeout(provider string) {
	if m == nil {
		return
	}
	m.GatewayTimeouts.WithLabelValues(provider).Inc()
}

// RecordStockConflict counts a rolled back stock decrement.
func (m *BusinessMetrics) RecordStockConflict() {
	if m == nil {
		return
	}
	m.StockConflicts.Inc()
}

// RecordCartOperation counts a cart mutation.
func (m *BusinessMetrics) RecordCartOperation(operation string) {
	if m == nil {
		return
	}
	m.CartOperations.WithLabelValues(operation).Inc()
}

// RecordOutbox counts one relay delivery attempt.
func (m *BusinessMetrics) RecordOutbox(eventType string, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.OutboxFailed.WithLabelValues(eventType).Inc()
		return
	}
	m.OutboxPublished.WithLabelValues(eventType).Inc()
}

// RecordEmail counts one notification delivery attempt.
func (m *BusinessMetrics) RecordEmail(emailType string, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.EmailFailed.WithLabelValues(emailType).Inc()
		return
	}
	m.EmailSent.WithLabelValues(emailType).Inc()
}

// RecordWebhook counts a webhook delivery.
func (m *BusinessMetrics) RecordWebhook(provider, eventType, outcome string) {
	if m == nil {
		return
	}
	m.WebhookReceived.WithLabelValues(provider, eventType, outcome).Inc()
}
