package routes

import (
	"net/http"

	"github.com/dukerupert/verdant/internal/router"
)

// RegisterWebhookRoutes mounts the gateway callbacks. They carry no auth
// middleware; each handler checks the provider signature itself.
func RegisterWebhookRoutes(r *router.Router, deps WebhookDeps) {
	for path, h := range map[string]http.HandlerFunc{
		"/webhook/stripe":   deps.StripeHandler,
		"/webhook/razorpay": deps.RazorpayHandler,
	} {
		if h != nil {
			r.Post(path, h)
		}
	}
}
