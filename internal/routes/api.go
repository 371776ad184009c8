package routes

import (
	"github.com/dukerupert/verdant/internal/router"
)

// RegisterAPIRoutes registers the cart, order, payment and catalog routes.
// Authentication is handled upstream; user ids arrive in the path or body.
func RegisterAPIRoutes(r *router.Router, deps APIDeps) {
	// Catalog
	r.Get("/plant/{id}", deps.PlantHandler.Get)

	// Cart
	r.Post("/cart", deps.CartHandler.Add)
	r.Get("/cart/{userId}", deps.CartHandler.List)
	r.Put("/cart/{id}", deps.CartHandler.Update)
	r.Delete("/cart/{id}", deps.CartHandler.Remove)
	r.Delete("/cart/clear/{userId}", deps.CartHandler.Clear)

	// Orders
	r.Post("/order", deps.OrderHandler.Create)
	r.Get("/order", deps.OrderHandler.List)
	r.Get("/order/{id}", deps.OrderHandler.Get)
	r.Get("/order/user/{userId}", deps.OrderHandler.ListForUser)
	r.Put("/order/status/{id}", deps.OrderHandler.UpdateStatus)
	r.Put("/order/cancel/{id}", deps.OrderHandler.Cancel)
	r.Put("/order/retry/{id}", deps.OrderHandler.RetryPayment)

	// Payments. Intent creation and verification hit the gateway.
	payments := r
	if deps.PaymentLimiter != nil {
		payments = r.Group(deps.PaymentLimiter)
	}
	payments.Post("/payment/create-order", deps.PaymentHandler.CreateIntent)
	payments.Post("/payment/verify", deps.PaymentHandler.Verify)
	r.Post("/payment/failed", deps.PaymentHandler.Failed)
	r.Get("/payment", deps.PaymentHandler.List)
	r.Get("/payment/user/{userId}", deps.PaymentHandler.ListForUser)
}

// RegisterOpsRoutes registers health and metrics endpoints.
func RegisterOpsRoutes(r *router.Router, deps OpsDeps) {
	r.Get("/health", deps.Health)
	if deps.Metrics != nil {
		r.Handle("GET", "/metrics", deps.Metrics)
	}
}
