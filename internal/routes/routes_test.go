package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dukerupert/verdant/internal/handler/api"
	"github.com/dukerupert/verdant/internal/router"
	"github.com/stretchr/testify/assert"
)

// Handlers are built without services: every request below fails path or
// body validation before a service would be called, which is enough to show
// the route is wired to the right handler.
func newTestRouter() *router.Router {
	r := router.New()
	RegisterAPIRoutes(r, APIDeps{
		CartHandler:    api.NewCartHandler(nil),
		OrderHandler:   api.NewOrderHandler(nil),
		PaymentHandler: api.NewPaymentHandler(nil),
		PlantHandler:   api.NewPlantHandler(nil),
	})
	RegisterOpsRoutes(r, OpsDeps{
		Health: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) },
	})
	RegisterWebhookRoutes(r, WebhookDeps{})
	r.Fallback()
	return r
}

func TestRegisterAPIRoutes(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/plant/xyz", ""},
		{http.MethodPost, "/cart", "{}"},
		{http.MethodGet, "/cart/xyz", ""},
		{http.MethodPut, "/cart/xyz", ""},
		{http.MethodDelete, "/cart/xyz", ""},
		{http.MethodDelete, "/cart/clear/xyz", ""},
		{http.MethodPost, "/order", "{}"},
		{http.MethodGet, "/order/xyz", ""},
		{http.MethodGet, "/order/user/xyz", ""},
		{http.MethodPut, "/order/status/xyz", ""},
		{http.MethodPut, "/order/cancel/xyz", ""},
		{http.MethodPut, "/order/retry/xyz", ""},
		{http.MethodPost, "/payment/create-order", "not json"},
		{http.MethodPost, "/payment/verify", "{}"},
		{http.MethodPost, "/payment/failed", "{}"},
		{http.MethodGet, "/payment/user/xyz", ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), `"success":false`)
		})
	}
}

func TestRegisterOpsRoutes(t *testing.T) {
	r := newTestRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterWebhookRoutes_OnlyConfiguredProviders(t *testing.T) {
	r := router.New()
	RegisterWebhookRoutes(r, WebhookDeps{
		RazorpayHandler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) },
	})
	r.Fallback()

	for path, want := range map[string]int{
		"/webhook/razorpay": http.StatusOK,
		"/webhook/stripe":   http.StatusNotFound,
	} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
		assert.Equal(t, want, rec.Code, path)
	}
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Route not found")
}
