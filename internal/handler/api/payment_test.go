package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dukerupert/verdant/internal/billing"
	"github.com/dukerupert/verdant/internal/domain"
	"github.com/dukerupert/verdant/internal/repository"
	"github.com/dukerupert/verdant/internal/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentHandler_CreateIntent(t *testing.T) {
	orderID := uuid.New()

	t.Run("amount only", func(t *testing.T) {
		svc := &mockOrderService{
			initiateIntentFunc: func(ctx context.Context, p service.InitiatePaymentParams) (*billing.PaymentIntent, error) {
				assert.True(t, p.Amount.Equal(decimal.RequireFromString("499.99")))
				assert.Nil(t, p.OrderID)
				assert.Nil(t, p.UserID)
				return &billing.PaymentIntent{ID: "order_abc", Provider: "razorpay", AmountMinor: 49999, Currency: "INR"}, nil
			},
		}
		req := httptest.NewRequest(http.MethodPost, "/payment/create-order", strings.NewReader(`{"amount":499.99}`))
		rec := httptest.NewRecorder()
		NewPaymentHandler(svc).CreateIntent(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		intent := decodeBody(t, rec)["order"].(map[string]any)
		assert.Equal(t, "order_abc", intent["id"])
		assert.Equal(t, float64(49999), intent["amount"])
	})

	t.Run("bound to order", func(t *testing.T) {
		svc := &mockOrderService{
			initiateIntentFunc: func(ctx context.Context, p service.InitiatePaymentParams) (*billing.PaymentIntent, error) {
				require.NotNil(t, p.OrderID)
				assert.Equal(t, orderID, *p.OrderID)
				return &billing.PaymentIntent{ID: "pi_1"}, nil
			},
		}
		body := `{"amount":"20.00","orderId":"` + orderID.String() + `"}`
		req := httptest.NewRequest(http.MethodPost, "/payment/create-order", strings.NewReader(body))
		rec := httptest.NewRecorder()
		NewPaymentHandler(svc).CreateIntent(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid amount", func(t *testing.T) {
		svc := &mockOrderService{
			initiateIntentFunc: func(ctx context.Context, p service.InitiatePaymentParams) (*billing.PaymentIntent, error) {
				return nil, domain.WithOp(domain.ErrInvalidAmount, "payment.create_intent")
			},
		}
		req := httptest.NewRequest(http.MethodPost, "/payment/create-order", strings.NewReader(`{"amount":0}`))
		rec := httptest.NewRecorder()
		NewPaymentHandler(svc).CreateIntent(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("gateway down", func(t *testing.T) {
		svc := &mockOrderService{
			initiateIntentFunc: func(ctx context.Context, p service.InitiatePaymentParams) (*billing.PaymentIntent, error) {
				return nil, domain.Upstream(errors.New("503 from gateway"), "payment.create_intent")
			},
		}
		req := httptest.NewRequest(http.MethodPost, "/payment/create-order", strings.NewReader(`{"amount":10}`))
		rec := httptest.NewRecorder()
		NewPaymentHandler(svc).CreateIntent(rec, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.NotContains(t, rec.Body.String(), "503 from gateway")
	})
}

func TestPaymentHandler_Verify(t *testing.T) {
	orderID := uuid.New()
	userID := uuid.New()
	validBody := `{"orderId":"` + orderID.String() + `","userId":"` + userID.String() + `","transactionId":"pay_123"}`

	tests := []struct {
		name           string
		body           string
		err            error
		expectedStatus int
	}{
		{"captured", validBody, nil, http.StatusOK},
		{"not captured", validBody, domain.WithOp(domain.ErrPaymentNotCaptured, "order.verify"), http.StatusBadRequest},
		{"out of stock", validBody, domain.WithOp(domain.ErrInsufficientStock, "order.verify"), http.StatusBadRequest},
		{"not awaiting payment", validBody, domain.WithOp(domain.ErrNotAwaitingPayment, "order.verify"), http.StatusBadRequest},
		{"missing transaction", `{"orderId":"` + orderID.String() + `","userId":"` + userID.String() + `"}`, nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockOrderService{
				verifyFunc: func(ctx context.Context, o, u uuid.UUID, txn string) (*repository.Payment, error) {
					assert.Equal(t, "pay_123", txn)
					if tt.err != nil {
						return nil, tt.err
					}
					return &repository.Payment{OrderID: o, UserID: u, TransactionID: txn, Status: "Success", Method: "UPI"}, nil
				},
			}
			req := httptest.NewRequest(http.MethodPost, "/payment/verify", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			NewPaymentHandler(svc).Verify(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				body := decodeBody(t, rec)
				assert.Equal(t, "Payment successful.", body["message"])
				payment := body["payment"].(map[string]any)
				assert.Equal(t, "Success", payment["status"])
			}
		})
	}
}

func TestPaymentHandler_Failed(t *testing.T) {
	orderID := uuid.New()
	userID := uuid.New()
	svc := &mockOrderService{
		markFailedFunc: func(ctx context.Context, o, u uuid.UUID) (*repository.Order, error) {
			return &repository.Order{ID: o, Status: domain.OrderStatusPaymentFailed.String()}, nil
		},
	}

	body := `{"orderId":"` + orderID.String() + `","userId":"` + userID.String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/payment/failed", strings.NewReader(body))
	rec := httptest.NewRecorder()
	NewPaymentHandler(svc).Failed(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	order := decodeBody(t, rec)["order"].(map[string]any)
	assert.Equal(t, "PaymentFailed", order["status"])
}

func TestPaymentHandler_ListForUser(t *testing.T) {
	userID := uuid.New()
	svc := &mockOrderService{
		listUserPaymentsFunc: func(ctx context.Context, u uuid.UUID) ([]repository.Payment, error) {
			return []repository.Payment{{ID: uuid.New(), UserID: u}, {ID: uuid.New(), UserID: u}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/payment/user/"+userID.String(), nil)
	req.SetPathValue("userId", userID.String())
	rec := httptest.NewRecorder()
	NewPaymentHandler(svc).ListForUser(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(2), body["total"])
}
