package api

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/dukerupert/verdant/internal/billing"
	"github.com/dukerupert/verdant/internal/domain"
	"github.com/dukerupert/verdant/internal/repository"
	"github.com/dukerupert/verdant/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// mockCartService implements service.CartService for testing
type mockCartService struct {
	addItemFunc     func(ctx context.Context, userID, plantID uuid.UUID, quantity int32) (*service.AddItemResult, error)
	updateItemFunc  func(ctx context.Context, id uuid.UUID, quantity int32) (*service.UpdateItemResult, error)
	removeItemFunc  func(ctx context.Context, id uuid.UUID) error
	clearFunc       func(ctx context.Context, userID uuid.UUID) (int64, error)
	listForUserFunc func(ctx context.Context, userID uuid.UUID) (*domain.Cart, error)
}

func (m *mockCartService) AddItem(ctx context.Context, userID, plantID uuid.UUID, quantity int32) (*service.AddItemResult, error) {
	if m.addItemFunc != nil {
		return m.addItemFunc(ctx, userID, plantID, quantity)
	}
	return &service.AddItemResult{}, nil
}

func (m *mockCartService) UpdateItem(ctx context.Context, id uuid.UUID, quantity int32) (*service.UpdateItemResult, error) {
	if m.updateItemFunc != nil {
		return m.updateItemFunc(ctx, id, quantity)
	}
	return &service.UpdateItemResult{}, nil
}

func (m *mockCartService) RemoveItem(ctx context.Context, id uuid.UUID) error {
	if m.removeItemFunc != nil {
		return m.removeItemFunc(ctx, id)
	}
	return nil
}

func (m *mockCartService) Clear(ctx context.Context, userID uuid.UUID) (int64, error) {
	if m.clearFunc != nil {
		return m.clearFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockCartService) ListForUser(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	if m.listForUserFunc != nil {
		return m.listForUserFunc(ctx, userID)
	}
	return domain.NewCart(nil), nil
}

// mockOrderService implements service.OrderService for testing.
// Unset funcs return zero values.
type mockOrderService struct {
	createOrderFunc      func(ctx context.Context, userID uuid.UUID, address string) (*domain.CreatedOrder, error)
	initiateIntentFunc   func(ctx context.Context, params service.InitiatePaymentParams) (*billing.PaymentIntent, error)
	verifyFunc           func(ctx context.Context, orderID, userID uuid.UUID, transactionID string) (*repository.Payment, error)
	markFailedFunc       func(ctx context.Context, orderID, userID uuid.UUID) (*repository.Order, error)
	retryFunc            func(ctx context.Context, orderID, userID uuid.UUID) (*repository.Order, error)
	advanceFunc          func(ctx context.Context, orderID uuid.UUID, target domain.OrderStatus) (*repository.Order, error)
	cancelFunc           func(ctx context.Context, orderID uuid.UUID) (*repository.Order, error)
	getOrderFunc         func(ctx context.Context, orderID uuid.UUID) (*domain.OrderDetail, error)
	listUserOrdersFunc   func(ctx context.Context, userID uuid.UUID) ([]domain.OrderDetail, error)
	listAllOrdersFunc    func(ctx context.Context) ([]domain.OrderDetail, error)
	listUserPaymentsFunc func(ctx context.Context, userID uuid.UUID) ([]repository.Payment, error)
	listPaymentsFunc     func(ctx context.Context) ([]repository.Payment, error)
}

var _ service.OrderService = (*mockOrderService)(nil)

func (m *mockOrderService) CreateOrder(ctx context.Context, userID uuid.UUID, address string) (*domain.CreatedOrder, error) {
	if m.createOrderFunc != nil {
		return m.createOrderFunc(ctx, userID, address)
	}
	return &domain.CreatedOrder{}, nil
}

func (m *mockOrderService) InitiatePaymentIntent(ctx context.Context, params service.InitiatePaymentParams) (*billing.PaymentIntent, error) {
	if m.initiateIntentFunc != nil {
		return m.initiateIntentFunc(ctx, params)
	}
	return &billing.PaymentIntent{}, nil
}

func (m *mockOrderService) VerifyAndComplete(ctx context.Context, orderID, userID uuid.UUID, transactionID string) (*repository.Payment, error) {
	if m.verifyFunc != nil {
		return m.verifyFunc(ctx, orderID, userID, transactionID)
	}
	return &repository.Payment{}, nil
}

func (m *mockOrderService) ReconcileCapture(ctx context.Context, orderID, userID uuid.UUID, transactionID string) (*repository.Payment, error) {
	return m.VerifyAndComplete(ctx, orderID, userID, transactionID)
}

func (m *mockOrderService) MarkPaymentFailed(ctx context.Context, orderID, userID uuid.UUID) (*repository.Order, error) {
	if m.markFailedFunc != nil {
		return m.markFailedFunc(ctx, orderID, userID)
	}
	return &repository.Order{}, nil
}

func (m *mockOrderService) RetryPayment(ctx context.Context, orderID, userID uuid.UUID) (*repository.Order, error) {
	if m.retryFunc != nil {
		return m.retryFunc(ctx, orderID, userID)
	}
	return &repository.Order{}, nil
}

func (m *mockOrderService) AdvanceStatus(ctx context.Context, orderID uuid.UUID, target domain.OrderStatus) (*repository.Order, error) {
	if m.advanceFunc != nil {
		return m.advanceFunc(ctx, orderID, target)
	}
	return &repository.Order{}, nil
}

func (m *mockOrderService) CancelOrder(ctx context.Context, orderID uuid.UUID) (*repository.Order, error) {
	if m.cancelFunc != nil {
		return m.cancelFunc(ctx, orderID)
	}
	return &repository.Order{}, nil
}

func (m *mockOrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*domain.OrderDetail, error) {
	if m.getOrderFunc != nil {
		return m.getOrderFunc(ctx, orderID)
	}
	return &domain.OrderDetail{}, nil
}

func (m *mockOrderService) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]domain.OrderDetail, error) {
	if m.listUserOrdersFunc != nil {
		return m.listUserOrdersFunc(ctx, userID)
	}
	return []domain.OrderDetail{}, nil
}

func (m *mockOrderService) ListAllOrders(ctx context.Context) ([]domain.OrderDetail, error) {
	if m.listAllOrdersFunc != nil {
		return m.listAllOrdersFunc(ctx)
	}
	return []domain.OrderDetail{}, nil
}

func (m *mockOrderService) ListUserPayments(ctx context.Context, userID uuid.UUID) ([]repository.Payment, error) {
	if m.listUserPaymentsFunc != nil {
		return m.listUserPaymentsFunc(ctx, userID)
	}
	return []repository.Payment{}, nil
}

func (m *mockOrderService) ListPayments(ctx context.Context) ([]repository.Payment, error) {
	if m.listPaymentsFunc != nil {
		return m.listPaymentsFunc(ctx)
	}
	return []repository.Payment{}, nil
}

// mockCatalog implements service.CatalogService for testing
type mockCatalog struct {
	getPlantFunc func(ctx context.Context, id uuid.UUID) (*repository.Plant, error)
}

func (m *mockCatalog) GetPlant(ctx context.Context, id uuid.UUID) (*repository.Plant, error) {
	if m.getPlantFunc != nil {
		return m.getPlantFunc(ctx, id)
	}
	return &repository.Plant{ID: id}, nil
}

func (m *mockCatalog) Invalidate(ctx context.Context, ids ...uuid.UUID) {}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}
