package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const paymentColumns = `id, order_id, user_id, amount, method, status, transaction_id, created_at`

func scanPayment(row interface{ Scan(...any) error }) (Payment, error) {
	var i Payment
	err := row.Scan(
		&i.ID,
		&i.OrderID,
		&i.UserID,
		&i.Amount,
		&i.Method,
		&i.Status,
		&i.TransactionID,
		&i.CreatedAt,
	)
	return i, err
}

func (q *Queries) listPayments(ctx context.Context, query string, args ...interface{}) ([]Payment, error) {
	rows, err := q.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Payment
	for rows.Next() {
		i, err := scanPayment(rows)
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

const createPayment = `
INSERT INTO payments (order_id, user_id, amount, method, status, transaction_id)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + paymentColumns

type CreatePaymentParams struct {
	OrderID       uuid.UUID
	UserID        uuid.UUID
	Amount        decimal.Decimal
	Method        string
	Status        string
	TransactionID string
}

// CreatePayment fails with a unique violation on uq_payments_order_success
// when the order already has a Success row.
func (q *Queries) CreatePayment(ctx context.Context, arg CreatePaymentParams) (Payment, error) {
	return scanPayment(q.db.QueryRow(ctx, createPayment,
		arg.OrderID,
		arg.UserID,
		arg.Amount,
		arg.Method,
		arg.Status,
		arg.TransactionID,
	))
}

const createFailedPaymentIfAbsent = `
INSERT INTO payments (order_id, user_id, amount, method, status, transaction_id)
VALUES ($1, $2, $3, 'UNKNOWN', 'Failed', $4)
ON CONFLICT (order_id) WHERE status = 'Failed' DO NOTHING`

type CreateFailedPaymentParams struct {
	OrderID       uuid.UUID
	UserID        uuid.UUID
	Amount        decimal.Decimal
	TransactionID string
}

// CreateFailedPaymentIfAbsent returns 0 when a Failed row already exists.
func (q *Queries) CreateFailedPaymentIfAbsent(ctx context.Context, arg CreateFailedPaymentParams) (int64, error) {
	result, err := q.db.Exec(ctx, createFailedPaymentIfAbsent, arg.OrderID, arg.UserID, arg.Amount, arg.TransactionID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const listPaymentsByOrder = `SELECT ` + paymentColumns + ` FROM payments WHERE order_id = $1 ORDER BY created_at DESC, id`

func (q *Queries) ListPaymentsByOrder(ctx context.Context, orderID uuid.UUID) ([]Payment, error) {
	return q.listPayments(ctx, listPaymentsByOrder, orderID)
}

const listPaymentsByUser = `SELECT ` + paymentColumns + ` FROM payments WHERE user_id = $1 ORDER BY created_at DESC, id`

func (q *Queries) ListPaymentsByUser(ctx context.Context, userID uuid.UUID) ([]Payment, error) {
	return q.listPayments(ctx, listPaymentsByUser, userID)
}

const listAllPayments = `SELECT ` + paymentColumns + ` FROM payments ORDER BY created_at DESC, id`

func (q *Queries) ListPayments(ctx context.Context) ([]Payment, error) {
	return q.listPayments(ctx, listAllPayments)
}
