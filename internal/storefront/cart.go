package storefront

import (
	"net/http"

	"github.com/drallgood/bookstore-storefront/internal/api/bookstore"
	"github.com/drallgood/bookstore-storefront/internal/view"
)

const (
	msgItemRemoved    = "Item removed from cart"
	msgLoadCartFailed = "Failed to load cart"
	cartPageTitle     = "Cart"
)

// showCart re-reads the cart and renders it; a 401 goes to the login page
func (h *Handler) showCart(w http.ResponseWriter, r *http.Request, confirmRemove int, toasts *view.ToastStack) {
	ctx := r.Context()

	items, err := h.api.GetCart(ctx)
	if err != nil {
		if bookstore.IsUnauthorized(err) {
			redirectToLogin(w, r)
			return
		}
		h.logFor(ctx).Warn("Failed to load cart", map[string]interface{}{"error": err.Error()})
		h.render(w, r, "cart", cartPageTitle, view.CartView{Error: msgLoadCartFailed}, toasts)
		return
	}

	cart := view.NewCartView(items)
	if _, ok := cart.Line(confirmRemove); ok {
		cart.ConfirmRemove = confirmRemove
	}
	h.render(w, r, "cart", cartPageTitle, cart, toasts)
}

// Cart renders the cart, or the empty state
func (h *Handler) Cart(w http.ResponseWriter, r *http.Request) {
	h.showCart(w, r, 0, nil)
}

// UpdateCart sets a line's quantity. Quantities below 1 never reach the
// backend. The cart is re-read afterwards so the page shows server state.
func (h *Handler) UpdateCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	bookID, okBook := formInt(r, "book_id")
	quantity, okQty := formInt(r, "quantity")
	if !okBook || !okQty || quantity < 1 {
		h.showCart(w, r, 0, nil)
		return
	}

	if err := h.api.UpdateCartItem(ctx, bookID, quantity); err != nil {
		if bookstore.IsUnauthorized(err) {
			redirectToLogin(w, r)
			return
		}
		h.logFor(ctx).Warn("Failed to update quantity", map[string]interface{}{
			"book_id":  bookID,
			"quantity": quantity,
			"error":    err.Error(),
		})
	}

	h.showCart(w, r, 0, nil)
}

// RemoveFromCart asks for confirmation first. Only a request carrying
// confirmed=1 issues the removal.
func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	bookID, ok := formInt(r, "book_id")
	if !ok {
		h.showCart(w, r, 0, nil)
		return
	}

	if r.FormValue("confirmed") != "1" {
		h.showCart(w, r, bookID, nil)
		return
	}

	toasts := h.toasts()
	if err := h.api.RemoveFromCart(ctx, bookID); err != nil {
		if bookstore.IsUnauthorized(err) {
			redirectToLogin(w, r)
			return
		}
		h.logFor(ctx).Warn("Failed to remove item", map[string]interface{}{
			"book_id": bookID,
			"error":   err.Error(),
		})
	} else {
		toasts.Success(msgItemRemoved)
	}

	h.showCart(w, r, 0, toasts)
}
