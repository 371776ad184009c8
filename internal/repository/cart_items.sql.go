package repository

import (
	"context"

	"github.com/google/uuid"
)

const cartItemColumns = `id, user_id, plant_id, quantity, created_at, updated_at`

func scanCartItem(row interface{ Scan(...any) error }) (CartItem, error) {
	var i CartItem
	err := row.Scan(&i.ID, &i.UserID, &i.PlantID, &i.Quantity, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const getCartItem = `SELECT ` + cartItemColumns + ` FROM cart_items WHERE id = $1`

func (q *Queries) GetCartItem(ctx context.Context, id uuid.UUID) (CartItem, error) {
	return scanCartItem(q.db.QueryRow(ctx, getCartItem, id))
}

const getCartItemForUpdate = getCartItem + ` FOR UPDATE`

func (q *Queries) GetCartItemForUpdate(ctx context.Context, id uuid.UUID) (CartItem, error) {
	return scanCartItem(q.db.QueryRow(ctx, getCartItemForUpdate, id))
}

const addCartItemQuantity = `
INSERT INTO cart_items (user_id, plant_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (user_id, plant_id)
DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = now()
RETURNING ` + cartItemColumns

type AddCartItemQuantityParams struct {
	UserID   uuid.UUID
	PlantID  uuid.UUID
	Quantity int32
}

// AddCartItemQuantity inserts the (user, plant) line or adds Quantity to the
// existing one. The merge happens under the row lock taken by the conflict,
// so concurrent adds sum instead of overwriting each other.
func (q *Queries) AddCartItemQuantity(ctx context.Context, arg AddCartItemQuantityParams) (CartItem, error) {
	return scanCartItem(q.db.QueryRow(ctx, addCartItemQuantity, arg.UserID, arg.PlantID, arg.Quantity))
}

const updateCartItemQuantity = `
UPDATE cart_items
SET quantity = $2, updated_at = now()
WHERE id = $1
RETURNING ` + cartItemColumns

type UpdateCartItemQuantityParams struct {
	ID       uuid.UUID
	Quantity int32
}

func (q *Queries) UpdateCartItemQuantity(ctx context.Context, arg UpdateCartItemQuantityParams) (CartItem, error) {
	return scanCartItem(q.db.QueryRow(ctx, updateCartItemQuantity, arg.ID, arg.Quantity))
}

const deleteCartItem = `DELETE FROM cart_items WHERE id = $1`

func (q *Queries) DeleteCartItem(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := q.db.Exec(ctx, deleteCartItem, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const clearCart = `DELETE FROM cart_items WHERE user_id = $1`

func (q *Queries) ClearCart(ctx context.Context, userID uuid.UUID) (int64, error) {
	result, err := q.db.Exec(ctx, clearCart, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const listCartLines = `
SELECT ci.id, ci.user_id, ci.plant_id, ci.quantity, ci.created_at,
       p.name, p.price, p.image_url, p.stock_qty
FROM cart_items ci
JOIN plants p ON p.id = ci.plant_id
WHERE ci.user_id = $1
ORDER BY ci.created_at DESC, ci.id`

func (q *Queries) ListCartLines(ctx context.Context, userID uuid.UUID) ([]CartLine, error) {
	rows, err := q.db.Query(ctx, listCartLines, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CartLine
	for rows.Next() {
		var i CartLine
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.PlantID,
			&i.Quantity,
			&i.CreatedAt,
			&i.PlantName,
			&i.PlantPrice,
			&i.PlantImageURL,
			&i.PlantStockQty,
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
