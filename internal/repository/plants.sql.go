package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const plantColumns = `id, category_id, name, price, description, care_instructions, image_url, stock_qty, created_at, updated_at`

func scanPlant(row interface{ Scan(...any) error }) (Plant, error) {
	var i Plant
	err := row.Scan(
		&i.ID,
		&i.CategoryID,
		&i.Name,
		&i.Price,
		&i.Description,
		&i.CareInstructions,
		&i.ImageURL,
		&i.StockQty,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createCategory = `
INSERT INTO categories (name)
VALUES ($1)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id, name, created_at`

func (q *Queries) CreateCategory(ctx context.Context, name string) (Category, error) {
	row := q.db.QueryRow(ctx, createCategory, name)
	var i Category
	err := row.Scan(&i.ID, &i.Name, &i.CreatedAt)
	return i, err
}

const createPlant = `
INSERT INTO plants (category_id, name, price, description, care_instructions, image_url, stock_qty)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + plantColumns

type CreatePlantParams struct {
	CategoryID       uuid.UUID
	Name             string
	Price            decimal.Decimal
	Description      string
	CareInstructions string
	ImageURL         string
	StockQty         int32
}

func (q *Queries) CreatePlant(ctx context.Context, arg CreatePlantParams) (Plant, error) {
	row := q.db.QueryRow(ctx, createPlant,
		arg.CategoryID,
		arg.Name,
		arg.Price,
		arg.Description,
		arg.CareInstructions,
		arg.ImageURL,
		arg.StockQty,
	)
	return scanPlant(row)
}

const getPlant = `SELECT ` + plantColumns + ` FROM plants WHERE id = $1`

func (q *Queries) GetPlant(ctx context.Context, id uuid.UUID) (Plant, error) {
	return scanPlant(q.db.QueryRow(ctx, getPlant, id))
}

// decrementPlantStock is the only statement that lowers stock. The guard and
// the update are one statement, so concurrent checkouts cannot oversell.
const decrementPlantStock = `
UPDATE plants
SET stock_qty = stock_qty - $2, updated_at = now()
WHERE id = $1 AND stock_qty >= $2`

type DecrementPlantStockParams struct {
	ID       uuid.UUID
	Quantity int32
}

// DecrementPlantStock returns the number of rows updated: 1 on success,
// 0 when the plant is gone or holds fewer than Quantity units.
func (q *Queries) DecrementPlantStock(ctx context.Context, arg DecrementPlantStockParams) (int64, error) {
	result, err := q.db.Exec(ctx, decrementPlantStock, arg.ID, arg.Quantity)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
