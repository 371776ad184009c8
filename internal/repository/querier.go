package repository

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=querier.go -destination=mock_querier.go -package=repository

// Querier lists every query the services run. Both *Queries and the
// transaction-scoped *Queries returned by WithTx satisfy it.
type Querier interface {
	// Users
	CreateUser(ctx context.Context, arg CreateUserParams) (User, error)
	GetUser(ctx context.Context, id uuid.UUID) (User, error)
	UserExists(ctx context.Context, id uuid.UUID) (bool, error)

	// Catalog
	CreateCategory(ctx context.Context, name string) (Category, error)
	CreatePlant(ctx context.Context, arg CreatePlantParams) (Plant, error)
	GetPlant(ctx context.Context, id uuid.UUID) (Plant, error)
	DecrementPlantStock(ctx context.Context, arg DecrementPlantStockParams) (int64, error)

	// Cart
	GetCartItem(ctx context.Context, id uuid.UUID) (CartItem, error)
	GetCartItemForUpdate(ctx context.Context, id uuid.UUID) (CartItem, error)
	AddCartItemQuantity(ctx context.Context, arg AddCartItemQuantityParams) (CartItem, error)
	UpdateCartItemQuantity(ctx context.Context, arg UpdateCartItemQuantityParams) (CartItem, error)
	DeleteCartItem(ctx context.Context, id uuid.UUID) (int64, error)
	ClearCart(ctx context.Context, userID uuid.UUID) (int64, error)
	ListCartLines(ctx context.Context, userID uuid.UUID) ([]CartLine, error)

	// Orders
	CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (Order, error)
	GetOrderForUpdate(ctx context.Context, id uuid.UUID) (Order, error)
	UpdateOrderStatus(ctx context.Context, arg UpdateOrderStatusParams) (Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)
	ListOrders(ctx context.Context) ([]Order, error)
	CreateOrderLine(ctx context.Context, arg CreateOrderLineParams) (OrderLine, error)
	ListOrderLines(ctx context.Context, orderID uuid.UUID) ([]OrderLine, error)
	ListOrderLineDetails(ctx context.Context, orderIDs []uuid.UUID) ([]OrderLineDetail, error)

	// Payments
	CreatePayment(ctx context.Context, arg CreatePaymentParams) (Payment, error)
	CreateFailedPaymentIfAbsent(ctx context.Context, arg CreateFailedPaymentParams) (int64, error)
	ListPaymentsByOrder(ctx context.Context, orderID uuid.UUID) ([]Payment, error)
	ListPaymentsByUser(ctx context.Context, userID uuid.UUID) ([]Payment, error)
	ListPayments(ctx context.Context) ([]Payment, error)

	// Outbox
	InsertOutboxEvent(ctx context.Context, arg InsertOutboxEventParams) error
	ClaimOutboxEvents(ctx context.Context, arg ClaimOutboxEventsParams) ([]OutboxEvent, error)
	MarkOutboxEventPublished(ctx context.Context, id int64) error
	MarkOutboxEventFailed(ctx context.Context, arg MarkOutboxEventFailedParams) error
}

var _ Querier = (*Queries)(nil)
