package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/dukerupert/verdant/internal/billing"
	"github.com/dukerupert/verdant/internal/repository"
	"github.com/dukerupert/verdant/internal/telemetry"
)

// txStore runs ExecTx callbacks directly against the mock, so expectations
// cover both pooled and transactional queries.
type txStore struct {
	*repository.MockQuerier
}

func (s txStore) ExecTx(ctx context.Context, fn func(q repository.Querier) error) error {
	return fn(s.MockQuerier)
}

// recordingCatalog captures invalidations.
type recordingCatalog struct {
	invalidated []uuid.UUID
}

func (c *recordingCatalog) GetPlant(context.Context, uuid.UUID) (*repository.Plant, error) {
	return nil, nil
}

func (c *recordingCatalog) Invalidate(_ context.Context, ids ...uuid.UUID) {
	c.invalidated = append(c.invalidated, ids...)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type orderFixture struct {
	q       *repository.MockQuerier
	gateway *billing.MockProvider
	catalog *recordingCatalog
	metrics *telemetry.BusinessMetrics
	svc     *orderService
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	q := repository.NewMockQuerier(ctrl)
	gateway := billing.NewMockProvider()
	catalog := &recordingCatalog{}
	metrics := telemetry.NewBusinessMetrics("test", prometheus.NewRegistry())

	store := txStore{q}
	svc := NewOrderService(store, NewUserDirectory(store), gateway, catalog, metrics,
		OrderConfig{Currency: "INR", GatewayTimeout: 50 * time.Millisecond}, testLogger()).(*orderService)
	svc.now = func() time.Time { return time.UnixMilli(1718000000000) }

	return &orderFixture{q: q, gateway: gateway, catalog: catalog, metrics: metrics, svc: svc}
}

func pendingOrder(userID uuid.UUID, total string) repository.Order {
	return repository.Order{
		ID:              uuid.New(),
		UserID:          userID,
		TotalAmount:     decimal.RequireFromString(total),
		ShippingAddress: "12 Fern Lane, Pune",
		Status:          "PaymentPending",
		StatusUpdatedAt: time.UnixMilli(1717000000000),
	}
}
