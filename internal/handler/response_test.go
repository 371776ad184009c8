package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dukerupert/verdant/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorBody struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestErrorResponse_StatusMapping(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"not found", domain.NotFound("order.get", "order", "abc-123"), http.StatusNotFound},
		{"invalid", domain.Invalid("cart.add", "Quantity must be at least 1"), http.StatusBadRequest},
		{"conflict", domain.WithOp(domain.ErrNotAwaitingPayment, "payment.verify"), http.StatusBadRequest},
		{"insufficient stock", domain.WithOp(domain.ErrInsufficientStock, "payment.verify"), http.StatusBadRequest},
		{"payment not captured", domain.WithOp(domain.ErrPaymentNotCaptured, "payment.verify"), http.StatusBadRequest},
		{"upstream", domain.Upstream(errors.New("connection reset"), "payment.intent"), http.StatusBadGateway},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			rec := httptest.NewRecorder()

			ErrorResponse(rec, req, tt.err)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			body := decodeError(t, rec)
			assert.False(t, body.Success)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestErrorResponse_InternalHidesDetails(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	err := domain.Internal(errors.New("dial tcp 192.168.1.100:5432"), "order.create", "failed to connect to database")
	ErrorResponse(rec, req, err)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "An internal error occurred. Please try again later.", body.Message)
	assert.NotContains(t, rec.Body.String(), "192.168")
}

func TestErrorResponse_UpstreamHidesGatewayPayload(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/payment/create-order", nil)
	rec := httptest.NewRecorder()

	ErrorResponse(rec, req, domain.Upstream(errors.New("razorpay: BAD_REQUEST_ERROR key_secret"), "payment.intent"))

	body := decodeError(t, rec)
	assert.Equal(t, "Payment gateway request failed", body.Message)
}

func TestErrorResponse_ValidationFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/cart", nil)
	rec := httptest.NewRecorder()

	err := domain.NewValidationError("cart.add", "userId", "userId is required")
	err = domain.AddFieldError(err, "plantId", "plantId must be a valid UUID")

	ErrorResponse(rec, req, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "Validation failed", body.Message)
	assert.Len(t, body.Errors, 2)
	assert.Equal(t, "userId is required", body.Errors["userId"])
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()

	Success(rec, http.StatusCreated, "Order created", Envelope{"data": map[string]string{"orderId": "x"}})

	assert.Equal(t, http.StatusCreated, rec.Code)
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Order created", body["message"])
	assert.Contains(t, body, "data")
}

func TestConvenienceResponses(t *testing.T) {
	t.Run("NotFoundResponse", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NotFoundResponse(rec, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("InternalErrorResponse", func(t *testing.T) {
		rec := httptest.NewRecorder()
		InternalErrorResponse(rec, httptest.NewRequest(http.MethodGet, "/test", nil), nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
