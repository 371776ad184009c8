//go:build integration

package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/verdant/internal/billing"
	"github.com/dukerupert/verdant/internal/domain"
	"github.com/dukerupert/verdant/internal/repository"
	"github.com/dukerupert/verdant/internal/repository/repotest"
	"github.com/dukerupert/verdant/internal/telemetry"
)

type integrationEnv struct {
	store   *repository.PoolStore
	pool    *pgxpool.Pool
	gateway *billing.MockProvider
	cart    CartService
	orders  OrderService
}

func newIntegrationEnv(t *testing.T) *integrationEnv {
	t.Helper()
	store, pool := repotest.NewStore(t)
	gateway := billing.NewMockProvider()
	metrics := telemetry.NewBusinessMetrics("it", prometheus.NewRegistry())
	catalog := NewCatalogService(store, nil, testLogger())

	return &integrationEnv{
		store:   store,
		pool:    pool,
		gateway: gateway,
		cart:    NewCartService(store, metrics, testLogger()),
		orders: NewOrderService(store, NewUserDirectory(store), gateway, catalog, metrics,
			OrderConfig{Currency: "INR", GatewayTimeout: 2 * time.Second}, testLogger()),
	}
}

func (e *integrationEnv) placeOrder(t *testing.T, user repository.User, plant repository.Plant, qty int32) *domain.CreatedOrder {
	t.Helper()
	ctx := context.Background()
	_, err := e.cart.AddItem(ctx, user.ID, plant.ID, qty)
	require.NoError(t, err)
	order, err := e.orders.CreateOrder(ctx, user.ID, "1 Leaf Street")
	require.NoError(t, err)
	return order
}

func (e *integrationEnv) stock(t *testing.T, plant repository.Plant) int32 {
	t.Helper()
	p, err := e.store.GetPlant(context.Background(), plant.ID)
	require.NoError(t, err)
	return p.StockQty
}

func TestIntegration_ConcurrentVerifyForLastUnit(t *testing.T) {
	env := newIntegrationEnv(t)
	ctx := context.Background()
	seed := repotest.SeedCatalog(t, env.store, 1)
	plant := seed.Plants[0]
	second := repotest.SeedUser(t, env.store, "second@example.com")

	orderA := env.placeOrder(t, seed.User, plant, 1)
	orderB := env.placeOrder(t, second, plant, 1)
	env.gateway.SimulateCapturedPayment("pay_a", 10000, "upi")
	env.gateway.SimulateCapturedPayment("pay_b", 10000, "card")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = env.orders.VerifyAndComplete(ctx, orderA.OrderID, seed.User.ID, "pay_a")
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = env.orders.VerifyAndComplete(ctx, orderB.OrderID, second.ID, "pay_b")
	}()
	wg.Wait()

	var succeeded, stockFailures int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case domain.IsCode(err, domain.ESTOCK):
			stockFailures++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, stockFailures)
	assert.Equal(t, int32(0), env.stock(t, plant))
}

func TestIntegration_StockFailureRollsBackEverything(t *testing.T) {
	env := newIntegrationEnv(t)
	ctx := context.Background()
	seed := repotest.SeedCatalog(t, env.store, 5, 2)
	plentiful, scarce := seed.Plants[0], seed.Plants[1]

	_, err := env.cart.AddItem(ctx, seed.User.ID, plentiful.ID, 3)
	require.NoError(t, err)
	_, err = env.cart.AddItem(ctx, seed.User.ID, scarce.ID, 2)
	require.NoError(t, err)
	order, err := env.orders.CreateOrder(ctx, seed.User.ID, "1 Leaf Street")
	require.NoError(t, err)

	// Someone else buys the scarce plant first.
	n, err := env.store.DecrementPlantStock(ctx, repository.DecrementPlantStockParams{ID: scarce.ID, Quantity: 1})
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	env.gateway.SimulateCapturedPayment("pay_1", domain.ToMinorUnits(order.TotalAmount), "upi")
	_, err = env.orders.VerifyAndComplete(ctx, order.OrderID, seed.User.ID, "pay_1")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int32(5), env.stock(t, plentiful), "first line decrement rolled back")
	assert.Equal(t, int32(1), env.stock(t, scarce))

	detail, err := env.orders.GetOrder(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "PaymentPending", detail.Status)
	assert.Empty(t, detail.Payments)

	cart, err := env.cart.ListForUser(ctx, seed.User.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, cart.Total, "cart survives a failed verification")
}

func TestIntegration_HappyPathAndDuplicateVerify(t *testing.T) {
	env := newIntegrationEnv(t)
	ctx := context.Background()
	seed := repotest.SeedCatalog(t, env.store, 4)
	plant := seed.Plants[0]

	order := env.placeOrder(t, seed.User, plant, 3)
	env.gateway.SimulateCapturedPayment("pay_ok", 30000, "netbanking")

	payment, err := env.orders.VerifyAndComplete(ctx, order.OrderID, seed.User.ID, "pay_ok")
	require.NoError(t, err)
	assert.Equal(t, "NETBANKING", payment.Method)
	assert.Equal(t, int32(1), env.stock(t, plant))

	cart, err := env.cart.ListForUser(ctx, seed.User.ID)
	require.NoError(t, err)
	assert.Zero(t, cart.Total, "cart cleared on confirmation")

	_, err = env.orders.VerifyAndComplete(ctx, order.OrderID, seed.User.ID, "pay_ok")
	require.ErrorIs(t, err, domain.ErrNotAwaitingPayment)
	assert.Equal(t, int32(1), env.stock(t, plant), "second verify decrements nothing")

	payments, err := env.orders.ListUserPayments(ctx, seed.User.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 1)
}

func TestIntegration_OrderPriceIsSnapshotted(t *testing.T) {
	env := newIntegrationEnv(t)
	ctx := context.Background()
	seed := repotest.SeedCatalog(t, env.store, 10)
	plant := seed.Plants[0]

	order := env.placeOrder(t, seed.User, plant, 2)
	assert.Equal(t, "200.00", order.TotalAmount.StringFixed(2))

	// The catalog has no price update query; change it directly.
	_, err := env.pool.Exec(ctx, `UPDATE plants SET price = 999.99 WHERE id = $1`, plant.ID)
	require.NoError(t, err)

	detail, err := env.orders.GetOrder(ctx, order.OrderID)
	require.NoError(t, err)
	assert.True(t, detail.TotalAmount.Equal(decimal.RequireFromString("200.00")))
	require.Len(t, detail.Items, 1)
	assert.True(t, detail.Items[0].UnitPrice.Equal(decimal.RequireFromString("100.00")))
}

func TestIntegration_FailedPaymentKeepsCartAndAllowsRetry(t *testing.T) {
	env := newIntegrationEnv(t)
	ctx := context.Background()
	seed := repotest.SeedCatalog(t, env.store, 3)
	plant := seed.Plants[0]

	order := env.placeOrder(t, seed.User, plant, 1)

	_, err := env.orders.MarkPaymentFailed(ctx, order.OrderID, seed.User.ID)
	require.NoError(t, err)
	_, err = env.orders.MarkPaymentFailed(ctx, order.OrderID, seed.User.ID)
	require.ErrorIs(t, err, domain.ErrNotAwaitingPayment)

	cart, err := env.cart.ListForUser(ctx, seed.User.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Total)

	_, err = env.orders.RetryPayment(ctx, order.OrderID, seed.User.ID)
	require.NoError(t, err)

	env.gateway.SimulateCapturedPayment("pay_retry", 10000, "wallet")
	_, err = env.orders.VerifyAndComplete(ctx, order.OrderID, seed.User.ID, "pay_retry")
	require.NoError(t, err)

	detail, err := env.orders.GetOrder(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "Confirmed", detail.Status)
	assert.Len(t, detail.Payments, 2, "one Failed and one Success row")
	assert.Equal(t, int32(2), env.stock(t, plant))
}

func TestIntegration_TransactionCannotPayTwoOrders(t *testing.T) {
	env := newIntegrationEnv(t)
	ctx := context.Background()
	seed := repotest.SeedCatalog(t, env.store, 5)
	plant := seed.Plants[0]
	second := repotest.SeedUser(t, env.store, "second@example.com")

	orderA := env.placeOrder(t, seed.User, plant, 1)
	orderB := env.placeOrder(t, second, plant, 1)

	t.Run("tagged for another order", func(t *testing.T) {
		env.gateway.SimulateCapturedPaymentForOrder("pay_tagged", 10000, "upi", orderA.OrderID.String())
		_, err := env.orders.VerifyAndComplete(ctx, orderB.OrderID, second.ID, "pay_tagged")
		require.ErrorIs(t, err, domain.ErrPaymentNotCaptured)
		assert.Equal(t, int32(5), env.stock(t, plant))
	})

	t.Run("untagged replay", func(t *testing.T) {
		env.gateway.SimulateCapturedPayment("pay_once", 10000, "card")
		_, err := env.orders.VerifyAndComplete(ctx, orderA.OrderID, seed.User.ID, "pay_once")
		require.NoError(t, err)
		require.Equal(t, int32(4), env.stock(t, plant))

		_, err = env.orders.VerifyAndComplete(ctx, orderB.OrderID, second.ID, "pay_once")
		require.ErrorIs(t, err, domain.ErrTransactionAlreadyUsed)
		assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err))
		assert.Equal(t, int32(4), env.stock(t, plant), "replay decrements nothing")
	})

	detail, err := env.orders.GetOrder(ctx, orderB.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "PaymentPending", detail.Status)
	assert.Empty(t, detail.Payments)
}

func TestIntegration_CaptureAfterFailureConfirms(t *testing.T) {
	env := newIntegrationEnv(t)
	ctx := context.Background()
	seed := repotest.SeedCatalog(t, env.store, 3)
	plant := seed.Plants[0]

	order := env.placeOrder(t, seed.User, plant, 1)
	_, err := env.orders.MarkPaymentFailed(ctx, order.OrderID, seed.User.ID)
	require.NoError(t, err)

	env.gateway.SimulateCapturedPayment("pay_late", 10000, "upi")
	_, err = env.orders.VerifyAndComplete(ctx, order.OrderID, seed.User.ID, "pay_late")
	require.ErrorIs(t, err, domain.ErrNotAwaitingPayment, "client verify stays strict")

	_, err = env.orders.ReconcileCapture(ctx, order.OrderID, seed.User.ID, "pay_late")
	require.NoError(t, err)

	detail, err := env.orders.GetOrder(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "Confirmed", detail.Status)
	assert.Equal(t, int32(2), env.stock(t, plant))

	_, err = env.orders.ReconcileCapture(ctx, order.OrderID, seed.User.ID, "pay_late")
	require.ErrorIs(t, err, domain.ErrNotAwaitingPayment, "redelivery is a no-op")
}

func TestIntegration_ConcurrentAddItemSumsQuantities(t *testing.T) {
	env := newIntegrationEnv(t)
	ctx := context.Background()
	seed := repotest.SeedCatalog(t, env.store, 10, 4)

	cartQuantity := func(t *testing.T, user repository.User) int32 {
		t.Helper()
		cart, err := env.cart.ListForUser(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		return cart.Items[0].Quantity
	}

	t.Run("within stock", func(t *testing.T) {
		plant := seed.Plants[0]

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i, qty := range []int32{2, 3} {
			wg.Add(1)
			go func(i int, qty int32) {
				defer wg.Done()
				_, errs[i] = env.cart.AddItem(ctx, seed.User.ID, plant.ID, qty)
			}(i, qty)
		}
		wg.Wait()

		require.NoError(t, errs[0])
		require.NoError(t, errs[1])
		assert.Equal(t, int32(5), cartQuantity(t, seed.User))
	})

	t.Run("combined exceeds stock", func(t *testing.T) {
		user := repotest.SeedUser(t, env.store, "busy@example.com")
		plant := seed.Plants[1]

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = env.cart.AddItem(ctx, user.ID, plant.ID, 3)
			}(i)
		}
		wg.Wait()

		var failures int
		for _, err := range errs {
			if err != nil {
				assert.Equal(t, domain.ESTOCK, domain.ErrorCode(err))
				failures++
			}
		}
		assert.Equal(t, 1, failures)
		assert.Equal(t, int32(3), cartQuantity(t, user))
	})
}
