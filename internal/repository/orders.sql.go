package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const orderColumns = `id, user_id, total_amount, shipping_address, status, status_updated_at, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (Order, error) {
	var i Order
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.TotalAmount,
		&i.ShippingAddress,
		&i.Status,
		&i.StatusUpdatedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func (q *Queries) listOrders(ctx context.Context, query string, args ...interface{}) ([]Order, error) {
	rows, err := q.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Order
	for rows.Next() {
		i, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createOrder = `
INSERT INTO orders (user_id, total_amount, shipping_address, status)
VALUES ($1, $2, $3, $4)
RETURNING ` + orderColumns

type CreateOrderParams struct {
	UserID          uuid.UUID
	TotalAmount     decimal.Decimal
	ShippingAddress string
	Status          string
}

func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error) {
	return scanOrder(q.db.QueryRow(ctx, createOrder, arg.UserID, arg.TotalAmount, arg.ShippingAddress, arg.Status))
}

const getOrder = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

func (q *Queries) GetOrder(ctx context.Context, id uuid.UUID) (Order, error) {
	return scanOrder(q.db.QueryRow(ctx, getOrder, id))
}

const getOrderForUpdate = getOrder + ` FOR UPDATE`

// GetOrderForUpdate locks the order row until the surrounding transaction ends.
func (q *Queries) GetOrderForUpdate(ctx context.Context, id uuid.UUID) (Order, error) {
	return scanOrder(q.db.QueryRow(ctx, getOrderForUpdate, id))
}

const updateOrderStatus = `
UPDATE orders
SET status = $2, status_updated_at = now(), updated_at = now()
WHERE id = $1
RETURNING ` + orderColumns

type UpdateOrderStatusParams struct {
	ID     uuid.UUID
	Status string
}

func (q *Queries) UpdateOrderStatus(ctx context.Context, arg UpdateOrderStatusParams) (Order, error) {
	return scanOrder(q.db.QueryRow(ctx, updateOrderStatus, arg.ID, arg.Status))
}

const listOrdersByUser = `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC, id`

func (q *Queries) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]Order, error) {
	return q.listOrders(ctx, listOrdersByUser, userID)
}

const listAllOrders = `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC, id`

func (q *Queries) ListOrders(ctx context.Context) ([]Order, error) {
	return q.listOrders(ctx, listAllOrders)
}

const createOrderLine = `
INSERT INTO order_lines (order_id, plant_id, quantity, unit_price)
VALUES ($1, $2, $3, $4)
RETURNING id, order_id, plant_id, quantity, unit_price`

type CreateOrderLineParams struct {
	OrderID   uuid.UUID
	PlantID   uuid.UUID
	Quantity  int32
	UnitPrice decimal.Decimal
}

func (q *Queries) CreateOrderLine(ctx context.Context, arg CreateOrderLineParams) (OrderLine, error) {
	row := q.db.QueryRow(ctx, createOrderLine, arg.OrderID, arg.PlantID, arg.Quantity, arg.UnitPrice)
	var i OrderLine
	err := row.Scan(&i.ID, &i.OrderID, &i.PlantID, &i.Quantity, &i.UnitPrice)
	return i, err
}

const listOrderLines = `
SELECT id, order_id, plant_id, quantity, unit_price
FROM order_lines
WHERE order_id = $1
ORDER BY plant_id`

// ListOrderLines returns lines ordered by plant id so that concurrent
// checkouts lock plant rows in the same order.
func (q *Queries) ListOrderLines(ctx context.Context, orderID uuid.UUID) ([]OrderLine, error) {
	rows, err := q.db.Query(ctx, listOrderLines, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []OrderLine
	for rows.Next() {
		var i OrderLine
		if err := rows.Scan(&i.ID, &i.OrderID, &i.PlantID, &i.Quantity, &i.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listOrderLineDetails = `
SELECT ol.id, ol.order_id, ol.plant_id, ol.quantity, ol.unit_price, p.name, p.image_url
FROM order_lines ol
JOIN plants p ON p.id = ol.plant_id
WHERE ol.order_id = ANY($1::uuid[])
ORDER BY ol.order_id, p.name`

// ListOrderLineDetails returns the lines of every order in orderIDs.
func (q *Queries) ListOrderLineDetails(ctx context.Context, orderIDs []uuid.UUID) ([]OrderLineDetail, error) {
	rows, err := q.db.Query(ctx, listOrderLineDetails, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []OrderLineDetail
	for rows.Next() {
		var i OrderLineDetail
		if err := rows.Scan(
			&i.ID,
			&i.OrderID,
			&i.PlantID,
			&i.Quantity,
			&i.UnitPrice,
			&i.PlantName,
			&i.PlantImageURL,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
