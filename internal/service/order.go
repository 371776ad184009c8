package service

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukerupert/verdant/internal/billing"
	"github.com/dukerupert/verdant/internal/domain"
	"github.com/dukerupert/verdant/internal/events"
	"github.com/dukerupert/verdant/internal/repository"
	"github.com/dukerupert/verdant/internal/telemetry"
)

// MaxShippingAddressLength is the longest shipping address accepted, in characters
const MaxShippingAddressLength = 500

// OrderService places orders and drives them through payment and fulfillment
type OrderService interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, shippingAddress string) (*domain.CreatedOrder, error)

	// Payment workflow
	InitiatePaymentIntent(ctx context.Context, params InitiatePaymentParams) (*billing.PaymentIntent, error)
	VerifyAndComplete(ctx context.Context, orderID, userID uuid.UUID, transactionID string) (*repository.Payment, error)
	ReconcileCapture(ctx context.Context, orderID, userID uuid.UUID, transactionID string) (*repository.Payment, error)
	MarkPaymentFailed(ctx context.Context, orderID, userID uuid.UUID) (*repository.Order, error)
	RetryPayment(ctx context.Context, orderID, userID uuid.UUID) (*repository.Order, error)

	// Fulfillment
	AdvanceStatus(ctx context.Context, orderID uuid.UUID, target domain.OrderStatus) (*repository.Order, error)
	CancelOrder(ctx context.Context, orderID uuid.UUID) (*repository.Order, error)

	// History
	GetOrder(ctx context.Context, orderID uuid.UUID) (*domain.OrderDetail, error)
	ListUserOrders(ctx context.Context, userID uuid.UUID) ([]domain.OrderDetail, error)
	ListAllOrders(ctx context.Context) ([]domain.OrderDetail, error)
	ListUserPayments(ctx context.Context, userID uuid.UUID) ([]repository.Payment, error)
	ListPayments(ctx context.Context) ([]repository.Payment, error)
}

// OrderConfig holds payment settings for the order service
type OrderConfig struct {
	// Currency sent to the gateway (ISO 4217)
	Currency string

	// GatewayTimeout bounds every gateway call
	GatewayTimeout time.Duration
}

type orderService struct {
	store   repository.Store
	users   UserDirectory
	gateway billing.Provider
	catalog CatalogService
	metrics *telemetry.BusinessMetrics
	config  OrderConfig
	logger  *slog.Logger
	now     func() time.Time
}

// NewOrderService creates a new OrderService instance
func NewOrderService(
	store repository.Store,
	users UserDirectory,
	gateway billing.Provider,
	catalog CatalogService,
	metrics *telemetry.BusinessMetrics,
	config OrderConfig,
	logger *slog.Logger,
) OrderService {
	if config.Currency == "" {
		config.Currency = "INR"
	}
	if config.GatewayTimeout == 0 {
		config.GatewayTimeout = 10 * time.Second
	}
	return &orderService{
		store:   store,
		users:   users,
		gateway: gateway,
		catalog: catalog,
		metrics: metrics,
		config:  config,
		logger:  logger,
		now:     time.Now,
	}
}

// CreateOrder snapshots the user's cart into a PaymentPending order.
// The cart itself is left intact until the payment is verified.
func (s *orderService) CreateOrder(ctx context.Context, userID uuid.UUID, shippingAddress string) (*domain.CreatedOrder, error) {
	const op = "order.create"

	address := strings.TrimSpace(shippingAddress)
	if address == "" {
		return nil, domain.WithOp(domain.ErrMissingShippingAddress, op)
	}
	if utf8.RuneCountInString(address) > MaxShippingAddressLength {
		return nil, domain.NewValidationError(op, "shippingAddress", "Shipping address must be at most 500 characters")
	}

	if err := s.users.Exists(ctx, userID); err != nil {
		return nil, err
	}

	cart, err := s.store.ListCartLines(ctx, userID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load cart")
	}
	if len(cart) == 0 {
		return nil, domain.WithOp(domain.ErrEmptyCart, op)
	}

	total := decimal.Zero
	lines := make([]events.OrderLine, 0, len(cart))
	for _, item := range cart {
		total = total.Add(item.PlantPrice.Mul(decimal.NewFromInt32(item.Quantity)))
		lines = append(lines, events.OrderLine{
			PlantID:   item.PlantID,
			Name:      item.PlantName,
			Quantity:  item.Quantity,
			UnitPrice: item.PlantPrice,
		})
	}

	var order repository.Order
	err = s.store.ExecTx(ctx, func(q repository.Querier) error {
		var err error
		order, err = q.CreateOrder(ctx, repository.CreateOrderParams{
			UserID:          userID,
			TotalAmount:     total,
			ShippingAddress: address,
			Status:          domain.OrderStatusPaymentPending.String(),
		})
		if err != nil {
			return domain.Internal(err, op, "failed to create order")
		}

		for _, line := range lines {
			if _, err := q.CreateOrderLine(ctx, repository.CreateOrderLineParams{
				OrderID:   order.ID,
				PlantID:   line.PlantID,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
			}); err != nil {
				return domain.Internal(err, op, "failed to create order line")
			}
		}

		return writeEvent(ctx, q, order.ID, events.TypeOrderCreated, events.OrderCreated{
			OrderID:     order.ID,
			UserID:      userID,
			TotalAmount: total,
			Lines:       lines,
		})
	})
	if err != nil {
		return nil, asDomainError(err, op)
	}

	s.metrics.RecordOrderCreated(total)
	s.logger.InfoContext(ctx, "order created",
		"order_id", order.ID,
		"user_id", userID,
		"lines", len(lines),
		"total", total.StringFixed(2),
	)

	return &domain.CreatedOrder{OrderID: order.ID, TotalAmount: order.TotalAmount}, nil
}

// RetryPayment moves a PaymentFailed order back to PaymentPending
func (s *orderService) RetryPayment(ctx context.Context, orderID, userID uuid.UUID) (*repository.Order, error) {
	return s.transition(ctx, "order.retry", orderID, &userID, func(from domain.OrderStatus) (domain.OrderStatus, error) {
		return from.Apply(domain.EventRetry)
	})
}

// AdvanceStatus moves an order along fulfillment: Confirmed to Shipped, Shipped to Delivered
func (s *orderService) AdvanceStatus(ctx context.Context, orderID uuid.UUID, target domain.OrderStatus) (*repository.Order, error) {
	const op = "order.advance"

	if target != domain.OrderStatusShipped && target != domain.OrderStatusDelivered {
		return nil, domain.NewValidationError(op, "status", "Status must be Shipped or Delivered")
	}
	return s.transition(ctx, op, orderID, nil, func(from domain.OrderStatus) (domain.OrderStatus, error) {
		if err := domain.ValidateTransition(from, target); err != nil {
			return from, err
		}
		return target, nil
	})
}

// CancelOrder cancels an order that has not shipped yet
func (s *orderService) CancelOrder(ctx context.Context, orderID uuid.UUID) (*repository.Order, error) {
	return s.transition(ctx, "order.cancel", orderID, nil, func(from domain.OrderStatus) (domain.OrderStatus, error) {
		return from.Apply(domain.EventCancel)
	})
}

// transition locks the order, computes the next status from the persisted one
// and saves it with an order.status_changed event. A non-nil owner must match
// the order's user.
func (s *orderService) transition(
	ctx context.Context,
	op string,
	orderID uuid.UUID,
	owner *uuid.UUID,
	next func(from domain.OrderStatus) (domain.OrderStatus, error),
) (*repository.Order, error) {
	var (
		updated repository.Order
		from    domain.OrderStatus
	)
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		order, status, err := lockOrder(ctx, q, orderID, owner, op)
		if err != nil {
			return err
		}
		from = status

		to, err := next(status)
		if err != nil {
			return err
		}

		updated, err = q.UpdateOrderStatus(ctx, repository.UpdateOrderStatusParams{
			ID:     order.ID,
			Status: to.String(),
		})
		if err != nil {
			return domain.Internal(err, op, "failed to update order status")
		}

		return writeEvent(ctx, q, order.ID, events.TypeOrderStatusChanged, events.OrderStatusChanged{
			OrderID: order.ID,
			From:    from.String(),
			To:      to.String(),
		})
	})
	if err != nil {
		return nil, asDomainError(err, op)
	}

	s.metrics.RecordStatusChange(from.String(), updated.Status)
	s.logger.InfoContext(ctx, "order status changed",
		"order_id", orderID,
		"from", from,
		"to", updated.Status,
	)
	return &updated, nil
}

// lockOrder reads the order FOR UPDATE. An order owned by someone other than
// owner is reported as not found.
func lockOrder(ctx context.Context, q repository.Querier, orderID uuid.UUID, owner *uuid.UUID, op string) (repository.Order, domain.OrderStatus, error) {
	order, err := q.GetOrderForUpdate(ctx, orderID)
	if err != nil {
		return order, "", notFoundOr(err, domain.ErrOrderNotFound, op)
	}
	if owner != nil && order.UserID != *owner {
		return order, "", domain.WithOp(domain.ErrOrderNotFound, op)
	}
	status, err := domain.ParseOrderStatus(order.Status)
	if err != nil {
		return order, "", domain.Internal(err, op, "order has an unknown status")
	}
	return order, status, nil
}

// GetOrder returns an order with its lines and payment attempts
func (s *orderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*domain.OrderDetail, error) {
	const op = "order.get"

	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, notFoundOr(err, domain.ErrOrderNotFound, op)
	}

	lines, err := s.store.ListOrderLineDetails(ctx, []uuid.UUID{orderID})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load order lines")
	}
	payments, err := s.store.ListPaymentsByOrder(ctx, orderID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load payments")
	}

	return &domain.OrderDetail{
		Order:    order,
		Items:    nonNil(lines),
		Payments: nonNil(payments),
	}, nil
}

// ListUserOrders returns the user's orders with lines, newest first
func (s *orderService) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]domain.OrderDetail, error) {
	const op = "order.list_user"

	if err := s.users.Exists(ctx, userID); err != nil {
		return nil, err
	}
	orders, err := s.store.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list orders")
	}
	return s.withLines(ctx, op, orders)
}

// ListAllOrders returns every order with lines, newest first
func (s *orderService) ListAllOrders(ctx context.Context) ([]domain.OrderDetail, error) {
	const op = "order.list"

	orders, err := s.store.ListOrders(ctx)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list orders")
	}
	return s.withLines(ctx, op, orders)
}

func (s *orderService) withLines(ctx context.Context, op string, orders []repository.Order) ([]domain.OrderDetail, error) {
	details := make([]domain.OrderDetail, 0, len(orders))
	if len(orders) == 0 {
		return details, nil
	}

	ids := make([]uuid.UUID, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	lines, err := s.store.ListOrderLineDetails(ctx, ids)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load order lines")
	}

	byOrder := make(map[uuid.UUID][]repository.OrderLineDetail, len(orders))
	for _, l := range lines {
		byOrder[l.OrderID] = append(byOrder[l.OrderID], l)
	}
	for _, o := range orders {
		details = append(details, domain.OrderDetail{
			Order: o,
			Items: nonNil(byOrder[o.ID]),
		})
	}
	return details, nil
}

// ListUserPayments returns the user's payment attempts, newest first
func (s *orderService) ListUserPayments(ctx context.Context, userID uuid.UUID) ([]repository.Payment, error) {
	const op = "payment.list_user"

	if err := s.users.Exists(ctx, userID); err != nil {
		return nil, err
	}
	payments, err := s.store.ListPaymentsByUser(ctx, userID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list payments")
	}
	return nonNil(payments), nil
}

// ListPayments returns every payment attempt, newest first
func (s *orderService) ListPayments(ctx context.Context) ([]repository.Payment, error) {
	payments, err := s.store.ListPayments(ctx)
	if err != nil {
		return nil, domain.Internal(err, "payment.list", "failed to list payments")
	}
	return nonNil(payments), nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
