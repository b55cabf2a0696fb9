package storefront

import (
	"net/http"

	"github.com/drallgood/bookstore-storefront/internal/api/bookstore"
	"github.com/drallgood/bookstore-storefront/internal/models"
	"github.com/drallgood/bookstore-storefront/internal/view"
)

const (
	msgCheckoutFailed = "Checkout failed. Please try again."
	msgGenericError   = "An error occurred. Please try again."
	checkoutPageTitle = "Checkout"
)

// shippingFormFrom copies the posted fields unchanged; the backend validates them
func shippingFormFrom(r *http.Request) models.ShippingForm {
	return models.ShippingForm{
		FullName:     r.FormValue("full_name"),
		Phone:        r.FormValue("phone"),
		AddressLine1: r.FormValue("address_line1"),
		AddressLine2: r.FormValue("address_line2"),
		City:         r.FormValue("city"),
		State:        r.FormValue("state"),
		PostalCode:   r.FormValue("postal_code"),
		Country:      r.FormValue("country"),
	}
}

// CheckoutForm renders the empty shipping form
func (h *Handler) CheckoutForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "checkout", checkoutPageTitle, view.CheckoutData{}, nil)
}

// Checkout submits the order once. On success the form is replaced by the
// order number; on failure it stays filled in with the server's message.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := view.CheckoutData{Form: shippingFormFrom(r)}

	result, err := h.api.Checkout(ctx, data.Form)
	if err != nil {
		h.logFor(ctx).Warn("Checkout failed", map[string]interface{}{
			"status": bookstore.StatusCode(err),
			"error":  err.Error(),
		})
		data.Error = bookstore.ErrorText(err, msgCheckoutFailed, msgGenericError)
		h.render(w, r, "checkout", checkoutPageTitle, data, nil)
		return
	}

	h.logFor(ctx).Info("Order placed", map[string]interface{}{
		"order_id":     result.OrderID,
		"order_number": result.OrderNumber,
	})
	data.OrderNumber = result.OrderNumber
	h.render(w, r, "checkout", checkoutPageTitle, data, nil)
}
