package storefront

import (
	"net/http"

	"github.com/drallgood/bookstore-storefront/internal/api/bookstore"
	"github.com/drallgood/bookstore-storefront/internal/models"
	"github.com/drallgood/bookstore-storefront/internal/view"
)

const (
	msgRegisterFailed     = "Registration failed. Please try again."
	msgLoginFailed        = "Login failed. Please try again."
	msgLoadOrdersFailed   = "Failed to load orders"
	msgLoadOrderFailed    = "Failed to load order details"
	registerPageTitle     = "Register"
	loginPageTitle        = "Login"
	customerOrdersTitle   = "My Orders"
	customerDashboardName = "customer_orders"
)

// forwardCookies copies the backend's Set-Cookie headers to the browser
func forwardCookies(w http.ResponseWriter, cookies []*http.Cookie) {
	for _, cookie := range cookies {
		http.SetCookie(w, cookie)
	}
}

// RegisterForm renders the registration form
func (h *Handler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "register", registerPageTitle, view.AuthData{}, nil)
}

// Register creates the account and starts the session
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req := models.RegisterRequest{
		FullName: r.FormValue("full_name"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}

	cookies, err := h.api.Register(ctx, req)
	if err != nil {
		h.logFor(ctx).Warn("Registration failed", map[string]interface{}{
			"status": bookstore.StatusCode(err),
			"error":  err.Error(),
		})
		data := view.AuthData{
			FullName: req.FullName,
			Email:    req.Email,
			Error:    bookstore.ErrorText(err, msgRegisterFailed, msgGenericError),
		}
		h.render(w, r, "register", registerPageTitle, data, nil)
		return
	}

	forwardCookies(w, cookies)
	redirectHome(w, r)
}

// LoginForm renders the login form
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "login", loginPageTitle, view.AuthData{}, nil)
}

// Login starts a session
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req := models.LoginRequest{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}

	cookies, err := h.api.Login(ctx, req)
	if err != nil {
		h.logFor(ctx).Warn("Login failed", map[string]interface{}{
			"status": bookstore.StatusCode(err),
		})
		data := view.AuthData{
			Email: req.Email,
			Error: bookstore.ErrorText(err, msgLoginFailed, msgGenericError),
		}
		h.render(w, r, "login", loginPageTitle, data, nil)
		return
	}

	forwardCookies(w, cookies)
	redirectHome(w, r)
}

// Logout ends the session and returns home whatever the backend says
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cookies, err := h.api.Logout(ctx)
	if err != nil {
		h.logFor(ctx).Warn("Logout failed", map[string]interface{}{"error": err.Error()})
	}
	forwardCookies(w, cookies)
	redirectHome(w, r)
}

// customerOrders loads the signed-in customer's orders. It returns false
// when the browser was redirected to the login page.
func (h *Handler) customerOrders(w http.ResponseWriter, r *http.Request) (view.CustomerOrdersData, bool) {
	ctx := r.Context()
	orders, err := h.api.ListOrders(ctx)
	if err != nil {
		if bookstore.IsUnauthorized(err) {
			redirectToLogin(w, r)
			return view.CustomerOrdersData{}, false
		}
		h.logFor(ctx).Warn("Failed to load orders", map[string]interface{}{"error": err.Error()})
		return view.CustomerOrdersData{Error: msgLoadOrdersFailed}, true
	}
	return view.CustomerOrdersData{
		Orders: orders,
		Stats:  view.ComputeCustomerStats(orders),
	}, true
}

// CustomerDashboard renders the order stats and history
func (h *Handler) CustomerDashboard(w http.ResponseWriter, r *http.Request) {
	data, ok := h.customerOrders(w, r)
	if !ok {
		return
	}
	data.ShowStats = true
	h.render(w, r, customerDashboardName, customerOrdersTitle, data, nil)
}

// CustomerOrders renders the order history
func (h *Handler) CustomerOrders(w http.ResponseWriter, r *http.Request) {
	data, ok := h.customerOrders(w, r)
	if !ok {
		return
	}
	h.render(w, r, customerDashboardName, customerOrdersTitle, data, nil)
}

// CustomerOrder renders the history with one order's details open
func (h *Handler) CustomerOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data, ok := h.customerOrders(w, r)
	if !ok {
		return
	}

	var toasts *view.ToastStack
	id, _ := pathID(r)
	order, err := h.api.GetOrder(ctx, id)
	if err != nil {
		h.logFor(ctx).Warn("Failed to load order details", map[string]interface{}{
			"order_id": id,
			"error":    err.Error(),
		})
		toasts = h.toasts()
		toasts.Error(msgLoadOrderFailed)
	} else {
		data.Selected = order
	}
	h.render(w, r, customerDashboardName, customerOrdersTitle, data, toasts)
}
