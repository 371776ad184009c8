package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dukerupert/verdant/internal/domain"
	"github.com/dukerupert/verdant/internal/repository"
	"github.com/dukerupert/verdant/internal/telemetry"
)

// CartService provides business logic for shopping cart operations.
// Stock checks here are advisory; stock is reserved only when a payment is verified.
type CartService interface {
	AddItem(ctx context.Context, userID, plantID uuid.UUID, quantity int32) (*AddItemResult, error)
	UpdateItem(ctx context.Context, cartItemID uuid.UUID, quantity int32) (*UpdateItemResult, error)
	RemoveItem(ctx context.Context, cartItemID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) (int64, error)
	ListForUser(ctx context.Context, userID uuid.UUID) (*domain.Cart, error)
}

// AddItemResult reports whether AddItem created a row or merged into an existing one
type AddItemResult struct {
	Item    repository.CartItem
	Created bool
}

// UpdateItemResult holds the updated item, or Removed when the quantity dropped to zero
type UpdateItemResult struct {
	Item    *repository.CartItem
	Removed bool
}

type cartService struct {
	store   repository.Store
	metrics *telemetry.BusinessMetrics
	logger  *slog.Logger
}

// NewCartService creates a new CartService instance
func NewCartService(store repository.Store, metrics *telemetry.BusinessMetrics, logger *slog.Logger) CartService {
	return &cartService{
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
}

// AddItem adds a plant to the user's cart, merging with an existing line.
// A zero quantity means one. The merged quantity is checked against stock
// after the write, inside the transaction, so concurrent adds cannot slip
// past the limit together.
func (s *cartService) AddItem(ctx context.Context, userID, plantID uuid.UUID, quantity int32) (*AddItemResult, error) {
	const op = "cart.add_item"

	if quantity == 0 {
		quantity = 1
	}
	if err := checkQuantity(op, quantity); err != nil {
		return nil, err
	}

	var result AddItemResult
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		if err := userExists(ctx, q, userID, op); err != nil {
			return err
		}

		plant, err := q.GetPlant(ctx, plantID)
		if err != nil {
			return notFoundOr(err, domain.ErrPlantNotFound, op)
		}
		if quantity > plant.StockQty {
			return domain.StockExceeded(op, plant.StockQty)
		}

		item, err := q.AddCartItemQuantity(ctx, repository.AddCartItemQuantityParams{
			UserID:   userID,
			PlantID:  plantID,
			Quantity: quantity,
		})
		switch {
		case repository.IsOutOfRange(err):
			return domain.StockExceeded(op, plant.StockQty)
		case err != nil:
			return domain.Internal(err, op, "failed to save cart item")
		case item.Quantity > plant.StockQty:
			return domain.StockExceeded(op, plant.StockQty)
		}

		// Quantities are positive, so only a fresh row holds exactly what was added.
		result.Created = item.Quantity == quantity
		result.Item = item
		return nil
	})
	if err != nil {
		return nil, asDomainError(err, op)
	}

	if result.Created {
		s.metrics.RecordCartOperation("add")
	} else {
		s.metrics.RecordCartOperation("merge")
	}
	return &result, nil
}

func checkQuantity(op string, quantity int32) error {
	switch {
	case quantity < 0:
		return domain.NewValidationError(op, "quantity", domain.ErrInvalidQuantity.Message)
	case quantity > domain.MaxCartQuantity:
		return domain.NewValidationError(op, "quantity", fmt.Sprintf("Quantity must be at most %d", domain.MaxCartQuantity))
	}
	return nil
}

// UpdateItem sets a cart line's quantity. A quantity of zero or less removes the line.
func (s *cartService) UpdateItem(ctx context.Context, cartItemID uuid.UUID, quantity int32) (*UpdateItemResult, error) {
	const op = "cart.update_item"

	if quantity <= 0 {
		if err := s.RemoveItem(ctx, cartItemID); err != nil {
			return nil, err
		}
		return &UpdateItemResult{Removed: true}, nil
	}
	if err := checkQuantity(op, quantity); err != nil {
		return nil, err
	}

	var updated repository.CartItem
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		item, err := q.GetCartItemForUpdate(ctx, cartItemID)
		if err != nil {
			return notFoundOr(err, domain.ErrCartItemNotFound, op)
		}

		plant, err := q.GetPlant(ctx, item.PlantID)
		if err != nil {
			return notFoundOr(err, domain.ErrPlantNotFound, op)
		}
		if quantity > plant.StockQty {
			return domain.StockExceeded(op, plant.StockQty)
		}

		updated, err = q.UpdateCartItemQuantity(ctx, repository.UpdateCartItemQuantityParams{
			ID:       cartItemID,
			Quantity: quantity,
		})
		if err != nil {
			return domain.Internal(err, op, "failed to update cart item")
		}
		return nil
	})
	if err != nil {
		return nil, asDomainError(err, op)
	}

	s.metrics.RecordCartOperation("update")
	return &UpdateItemResult{Item: &updated}, nil
}

// RemoveItem deletes one cart line
func (s *cartService) RemoveItem(ctx context.Context, cartItemID uuid.UUID) error {
	const op = "cart.remove_item"

	n, err := s.store.DeleteCartItem(ctx, cartItemID)
	if err != nil {
		return domain.Internal(err, op, "failed to delete cart item")
	}
	if n == 0 {
		return domain.WithOp(domain.ErrCartItemNotFound, op)
	}

	s.metrics.RecordCartOperation("remove")
	return nil
}

// Clear empties the user's cart and returns how many lines were removed.
// Clearing an empty cart is not an error.
func (s *cartService) Clear(ctx context.Context, userID uuid.UUID) (int64, error) {
	const op = "cart.clear"

	if err := userExists(ctx, s.store, userID, op); err != nil {
		return 0, err
	}

	n, err := s.store.ClearCart(ctx, userID)
	if err != nil {
		return 0, domain.Internal(err, op, "failed to clear cart")
	}

	s.metrics.RecordCartOperation("clear")
	return n, nil
}

// ListForUser returns the cart with current plant prices, newest line first
func (s *cartService) ListForUser(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	const op = "cart.list"

	if err := userExists(ctx, s.store, userID, op); err != nil {
		return nil, err
	}

	lines, err := s.store.ListCartLines(ctx, userID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list cart")
	}
	if lines == nil {
		lines = []repository.CartLine{}
	}
	return domain.NewCart(lines), nil
}
