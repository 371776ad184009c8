package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dukerupert/verdant/internal/domain"
	"github.com/dukerupert/verdant/internal/repository"
	"github.com/dukerupert/verdant/internal/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartHandler_Add(t *testing.T) {
	userID := uuid.New()
	plantID := uuid.New()

	tests := []struct {
		name           string
		body           string
		result         *service.AddItemResult
		err            error
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "new item returns 201",
			body:           `{"userId":"` + userID.String() + `","plantId":"` + plantID.String() + `","quantity":2}`,
			result:         &service.AddItemResult{Item: repository.CartItem{ID: uuid.New(), Quantity: 2}, Created: true},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "Item added to cart successfully",
		},
		{
			name:           "merged item returns 200",
			body:           `{"userId":"` + userID.String() + `","plantId":"` + plantID.String() + `","quantity":1}`,
			result:         &service.AddItemResult{Item: repository.CartItem{ID: uuid.New(), Quantity: 3}},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Cart item updated successfully",
		},
		{
			name:           "stock exceeded",
			body:           `{"userId":"` + userID.String() + `","plantId":"` + plantID.String() + `","quantity":50}`,
			err:            domain.StockExceeded("cart.add_item", 4),
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Only 4 items available in stock",
		},
		{
			name:           "unknown user",
			body:           `{"userId":"` + userID.String() + `","plantId":"` + plantID.String() + `","quantity":1}`,
			err:            domain.WithOp(domain.ErrUserNotFound, "cart.add_item"),
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "User not found",
		},
		{
			name:           "missing ids",
			body:           `{"quantity":1}`,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockCartService{
				addItemFunc: func(ctx context.Context, u, p uuid.UUID, qty int32) (*service.AddItemResult, error) {
					assert.Equal(t, userID, u)
					assert.Equal(t, plantID, p)
					return tt.result, tt.err
				},
			}
			h := NewCartHandler(svc)

			req := httptest.NewRequest(http.MethodPost, "/cart", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Add(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, tt.expectedMsg, body["message"])
		})
	}
}

func TestCartHandler_Add_ValidationFields(t *testing.T) {
	h := NewCartHandler(&mockCartService{})

	req := httptest.NewRequest(http.MethodPost, "/cart", strings.NewReader(`{"userId":"nope","quantity":1}`))
	rec := httptest.NewRecorder()
	h.Add(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	fields, ok := body["errors"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "userId must be a valid UUID", fields["userId"])
	assert.Equal(t, "plantId is required", fields["plantId"])
}

func TestCartHandler_Add_RejectsHugeQuantity(t *testing.T) {
	called := false
	h := NewCartHandler(&mockCartService{
		addItemFunc: func(context.Context, uuid.UUID, uuid.UUID, int32) (*service.AddItemResult, error) {
			called = true
			return nil, nil
		},
	})

	body := `{"userId":"` + uuid.NewString() + `","plantId":"` + uuid.NewString() + `","quantity":2147483647}`
	rec := httptest.NewRecorder()
	h.Add(rec, httptest.NewRequest(http.MethodPost, "/cart", strings.NewReader(body)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	fields, ok := decodeBody(t, rec)["errors"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, fields, "quantity")
	assert.False(t, called)
}

func TestCartHandler_List(t *testing.T) {
	userID := uuid.New()
	svc := &mockCartService{
		listForUserFunc: func(ctx context.Context, id uuid.UUID) (*domain.Cart, error) {
			assert.Equal(t, userID, id)
			return domain.NewCart([]repository.CartLine{
				{ID: uuid.New(), Quantity: 2, PlantPrice: decimal.RequireFromString("10.50")},
				{ID: uuid.New(), Quantity: 1, PlantPrice: decimal.RequireFromString("4.00")},
			}), nil
		},
	}
	h := NewCartHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/cart/"+userID.String(), nil)
	req.SetPathValue("userId", userID.String())
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["total"])
	assert.Equal(t, "25", body["subtotal"])
	assert.Len(t, body["data"], 2)
}

func TestCartHandler_List_BadUserID(t *testing.T) {
	h := NewCartHandler(&mockCartService{})

	req := httptest.NewRequest(http.MethodGet, "/cart/abc", nil)
	req.SetPathValue("userId", "abc")
	rec := httptest.NewRecorder()
	h.List(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartHandler_Update(t *testing.T) {
	itemID := uuid.New()

	t.Run("zero quantity removes", func(t *testing.T) {
		svc := &mockCartService{
			updateItemFunc: func(ctx context.Context, id uuid.UUID, qty int32) (*service.UpdateItemResult, error) {
				assert.Equal(t, int32(0), qty)
				return &service.UpdateItemResult{Removed: true}, nil
			},
		}
		req := httptest.NewRequest(http.MethodPut, "/cart/"+itemID.String(), strings.NewReader(`{"quantity":0}`))
		req.SetPathValue("id", itemID.String())
		rec := httptest.NewRecorder()
		NewCartHandler(svc).Update(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Cart item removed successfully", decodeBody(t, rec)["message"])
	})

	t.Run("missing item", func(t *testing.T) {
		svc := &mockCartService{
			updateItemFunc: func(ctx context.Context, id uuid.UUID, qty int32) (*service.UpdateItemResult, error) {
				return nil, domain.WithOp(domain.ErrCartItemNotFound, "cart.update_item")
			},
		}
		req := httptest.NewRequest(http.MethodPut, "/cart/"+itemID.String(), strings.NewReader(`{"quantity":3}`))
		req.SetPathValue("id", itemID.String())
		rec := httptest.NewRecorder()
		NewCartHandler(svc).Update(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non numeric quantity", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/cart/"+itemID.String(), strings.NewReader(`{"quantity":"lots"}`))
		req.SetPathValue("id", itemID.String())
		rec := httptest.NewRecorder()
		NewCartHandler(&mockCartService{}).Update(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		fields := decodeBody(t, rec)["errors"].(map[string]any)
		assert.Contains(t, fields, "quantity")
	})
}

func TestCartHandler_Clear(t *testing.T) {
	userID := uuid.New()
	svc := &mockCartService{
		clearFunc: func(ctx context.Context, id uuid.UUID) (int64, error) {
			return 3, nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/cart/clear/"+userID.String(), nil)
	req.SetPathValue("userId", userID.String())
	rec := httptest.NewRecorder()
	NewCartHandler(svc).Clear(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Cart cleared successfully", body["message"])
	assert.Equal(t, float64(3), body["removed"])
}
