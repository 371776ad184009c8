package api

import (
	"net/http"

	"github.com/dukerupert/verdant/internal/handler"
	"github.com/dukerupert/verdant/internal/service"
)

// CartHandler serves the /cart routes.
type CartHandler struct {
	cartService service.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

type addCartItemRequest struct {
	UserID   string `json:"userId" validate:"required,uuid"`
	PlantID  string `json:"plantId" validate:"required,uuid"`
	Quantity int32  `json:"quantity" validate:"gte=0,lte=10000"`
}

type updateCartItemRequest struct {
	Quantity int32 `json:"quantity" validate:"lte=10000"`
}

// Add handles POST /cart. Adding a plant already in the cart merges the quantities.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	const op = "api.cart.add"

	var req addCartItemRequest
	if err := decodeJSON(r, &req, op); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	res, err := h.cartService.AddItem(r.Context(), parseUUID(req.UserID), parseUUID(req.PlantID), req.Quantity)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if res.Created {
		handler.Success(w, http.StatusCreated, "Item added to cart successfully", handler.Envelope{"data": res.Item})
		return
	}
	handler.OK(w, "Cart item updated successfully", handler.Envelope{"data": res.Item})
}

// List handles GET /cart/{userId}
func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userId", "api.cart.list")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	cart, err := h.cartService.ListForUser(r.Context(), userID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.OK(w, "", handler.Envelope{
		"total":    cart.Total,
		"subtotal": cart.Subtotal,
		"data":     cart.Items,
	})
}

// Update handles PUT /cart/{id}. A quantity of zero removes the item.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "api.cart.update"

	id, err := pathUUID(r, "id", op)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	var req updateCartItemRequest
	if err := decodeJSON(r, &req, op); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	res, err := h.cartService.UpdateItem(r.Context(), id, req.Quantity)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if res.Removed {
		handler.OK(w, "Cart item removed successfully", nil)
		return
	}
	handler.OK(w, "Cart item updated successfully", handler.Envelope{"data": res.Item})
}

// Remove handles DELETE /cart/{id}
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id", "api.cart.remove")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if err := h.cartService.RemoveItem(r.Context(), id); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.OK(w, "Cart item deleted successfully", nil)
}

// Clear handles DELETE /cart/clear/{userId}
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userId", "api.cart.clear")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	removed, err := h.cartService.Clear(r.Context(), userID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.OK(w, "Cart cleared successfully", handler.Envelope{"removed": removed})
}
