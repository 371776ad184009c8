package domain

import (
	"fmt"

	"github.com/dukerupert/verdant/internal/repository"
	"github.com/shopspring/decimal"
)

// Catalog and user lookups.
var (
	ErrPlantNotFound    = &Error{Code: ENOTFOUND, Message: "Plant not found"}
	ErrUserNotFound     = &Error{Code: ENOTFOUND, Message: "User not found"}
	ErrCartItemNotFound = &Error{Code: ENOTFOUND, Message: "Cart item not found"}
	ErrInvalidQuantity  = &Error{Code: EINVALID, Message: "Quantity must be greater than 0"}
)

// MaxCartQuantity bounds a single cart line.
const MaxCartQuantity = 10000

// StockExceeded reports that a cart quantity is larger than what the plant
// currently holds. It matches ErrInsufficientStock with errors.Is.
func StockExceeded(op string, available int32) error {
	return &Error{
		Code:    ESTOCK,
		Op:      op,
		Message: fmt.Sprintf("Only %d items available in stock", available),
		Err:     ErrInsufficientStock,
	}
}

// Cart is a user's basket with plant details joined in, newest item first.
type Cart struct {
	Items    []repository.CartLine `json:"data"`
	Total    int                   `json:"total"`
	Subtotal decimal.Decimal       `json:"subtotal"`
}

// NewCart builds a Cart and computes its subtotal from current plant prices.
func NewCart(items []repository.CartLine) *Cart {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.PlantPrice.Mul(decimal.NewFromInt32(item.Quantity)))
	}
	return &Cart{
		Items:    items,
		Total:    len(items),
		Subtotal: subtotal,
	}
}
