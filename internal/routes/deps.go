package routes

import (
	"net/http"

	"github.com/dukerupert/verdant/internal/handler/api"
	"github.com/dukerupert/verdant/internal/router"
)

// APIDeps contains dependencies for the JSON API routes
type APIDeps struct {
	CartHandler    *api.CartHandler
	OrderHandler   *api.OrderHandler
	PaymentHandler *api.PaymentHandler
	PlantHandler   *api.PlantHandler

	// PaymentLimiter guards the routes that call the gateway. Optional.
	PaymentLimiter router.Middleware
}

// WebhookDeps holds the provider webhook endpoints. Each is nil unless its
// gateway is configured with a signing secret.
type WebhookDeps struct {
	StripeHandler   http.HandlerFunc
	RazorpayHandler http.HandlerFunc
}

// OpsDeps contains the health and metrics endpoints
type OpsDeps struct {
	Health  http.HandlerFunc
	Metrics http.Handler
}
