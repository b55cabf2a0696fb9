package storefront

import (
	"context"
	"net/http"
	"strconv"

	"github.com/drallgood/bookstore-storefront/internal/api/bookstore"
	"github.com/drallgood/bookstore-storefront/internal/models"
	"github.com/drallgood/bookstore-storefront/internal/view"
	"golang.org/x/sync/errgroup"
)

const (
	msgBookAdded          = "Book added!"
	msgBookUpdated        = "Book updated!"
	msgSaveBookFailed     = "Failed to save book"
	msgLoadBookFailed     = "Failed to load book details"
	msgBookDeleted        = "Book deleted!"
	msgDeleteBookFailed   = "Failed to delete book"
	msgStatusUpdated      = "Order status updated!"
	msgStatusUpdateFailed = "Failed to update status"
	msgLoadDashboard      = "Failed to load dashboard data"
	adminPageTitle        = "Admin"
	adminBooksTitle       = "Manage Books"
	adminOrdersTitle      = "Manage Orders"
)

// adminDenied handles the redirects for an admin read: 403 goes home,
// 401 goes to the login page. It reports whether a redirect was sent.
func adminDenied(w http.ResponseWriter, r *http.Request, err error) bool {
	switch {
	case bookstore.IsForbidden(err):
		redirectHome(w, r)
		return true
	case bookstore.IsUnauthorized(err):
		redirectToLogin(w, r)
		return true
	}
	return false
}

// AdminDashboard fetches books and orders concurrently and summarizes them
func (h *Handler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		books     []models.Book
		orders    []models.AdminOrder
		booksErr  error
		ordersErr error
	)
	// Neither read cancels the other; a 403 from either one redirects.
	var g errgroup.Group
	g.Go(func() error {
		books, booksErr = h.api.AdminListBooks(ctx)
		return nil
	})
	g.Go(func() error {
		orders, ordersErr = h.api.AdminListOrders(ctx)
		return nil
	})
	_ = g.Wait()

	for _, err := range []error{booksErr, ordersErr} {
		if bookstore.IsForbidden(err) {
			redirectHome(w, r)
			return
		}
	}
	for _, err := range []error{booksErr, ordersErr} {
		if bookstore.IsUnauthorized(err) {
			redirectToLogin(w, r)
			return
		}
	}

	data := view.AdminDashboardData{}
	for _, err := range []error{booksErr, ordersErr} {
		if err != nil {
			h.logFor(ctx).Warn("Failed to load dashboard data", map[string]interface{}{"error": err.Error()})
			data.Error = msgLoadDashboard
		}
	}
	data.Stats = view.ComputeAdminStats(books, orders, h.settings.RecentOrdersLimit)
	h.render(w, r, "admin_dashboard", adminPageTitle, data, nil)
}

// adminBooksData loads the book table and category options
func (h *Handler) adminBooksData(ctx context.Context) (view.AdminBooksData, error) {
	books, err := h.api.AdminListBooks(ctx)
	if err != nil {
		return view.AdminBooksData{}, err
	}
	return view.AdminBooksData{
		Books:      books,
		Categories: h.loadCategories(ctx),
	}, nil
}

// showAdminBooks renders the book table; prepare may open the form or the delete prompt
func (h *Handler) showAdminBooks(w http.ResponseWriter, r *http.Request, toasts *view.ToastStack, prepare func(*view.AdminBooksData)) {
	ctx := r.Context()
	data, err := h.adminBooksData(ctx)
	if err != nil {
		if adminDenied(w, r, err) {
			return
		}
		h.logFor(ctx).Warn("Failed to load books", map[string]interface{}{"error": err.Error()})
	}
	if prepare != nil {
		prepare(&data)
	}
	h.render(w, r, "admin_books", adminBooksTitle, data, toasts)
}

// AdminBooks renders the book table
func (h *Handler) AdminBooks(w http.ResponseWriter, r *http.Request) {
	h.showAdminBooks(w, r, nil, nil)
}

// AdminNewBook opens the shared form with no id
func (h *Handler) AdminNewBook(w http.ResponseWriter, r *http.Request) {
	h.showAdminBooks(w, r, nil, func(d *view.AdminBooksData) {
		d.Form = &view.BookForm{}
	})
}

// AdminEditBook opens the shared form prefilled from the backend
func (h *Handler) AdminEditBook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, _ := pathID(r)

	toasts := h.toasts()
	book, err := h.api.GetBook(ctx, id)
	if err != nil {
		h.logFor(ctx).Warn("Failed to load book details", map[string]interface{}{
			"book_id": id,
			"error":   err.Error(),
		})
		toasts.Error(msgLoadBookFailed)
	}

	h.showAdminBooks(w, r, toasts, func(d *view.AdminBooksData) {
		if book != nil {
			form := view.BookFormFrom(*book)
			d.Form = &form
		}
	})
}

func bookFormFrom(r *http.Request) view.BookForm {
	categoryID, _ := strconv.Atoi(r.FormValue("category_id"))
	return view.BookForm{
		ID:              r.FormValue("id"),
		Title:           r.FormValue("title"),
		Author:          r.FormValue("author"),
		Description:     r.FormValue("description"),
		Price:           r.FormValue("price"),
		StockQuantity:   r.FormValue("stock_quantity"),
		CategoryID:      categoryID,
		ISBN:            r.FormValue("isbn"),
		PublicationYear: r.FormValue("publication_year"),
		CoverImageURL:   r.FormValue("cover_image_url"),
	}
}

// AdminSaveBook creates when the hidden id is empty and updates otherwise.
// On failure the form stays open with what was submitted.
func (h *Handler) AdminSaveBook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	form := bookFormFrom(r)
	toasts := h.toasts()

	keepOpen := func(d *view.AdminBooksData) { d.Form = &form }

	in, err := form.Input()
	if err != nil {
		h.logFor(ctx).Warn("Invalid book form", map[string]interface{}{"error": err.Error()})
		toasts.Error(msgSaveBookFailed)
		h.showAdminBooks(w, r, toasts, keepOpen)
		return
	}

	success := msgBookAdded
	if in.IsUpdate() {
		err = h.api.UpdateBook(ctx, in.ID, in)
		success = msgBookUpdated
	} else {
		err = h.api.CreateBook(ctx, in)
	}
	if err != nil {
		h.logFor(ctx).Warn("Failed to save book", map[string]interface{}{
			"book_id": in.ID,
			"status":  bookstore.StatusCode(err),
			"error":   err.Error(),
		})
		toasts.Error(msgSaveBookFailed)
		h.showAdminBooks(w, r, toasts, keepOpen)
		return
	}

	toasts.Success(success)
	h.showAdminBooks(w, r, toasts, nil)
}

// AdminDeleteBook shows a confirmation prompt unless confirmed=1 is posted
func (h *Handler) AdminDeleteBook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, _ := pathID(r)

	if r.FormValue("confirmed") != "1" {
		h.showAdminBooks(w, r, nil, func(d *view.AdminBooksData) {
			target := &models.Book{ID: id}
			for i := range d.Books {
				if d.Books[i].ID == id {
					target = &d.Books[i]
					break
				}
			}
			d.ConfirmDelete = target
		})
		return
	}

	toasts := h.toasts()
	if err := h.api.DeleteBook(ctx, id); err != nil {
		h.logFor(ctx).Warn("Failed to delete book", map[string]interface{}{
			"book_id": id,
			"error":   err.Error(),
		})
		toasts.Error(msgDeleteBookFailed)
	} else {
		toasts.Success(msgBookDeleted)
	}
	h.showAdminBooks(w, r, toasts, nil)
}

// showAdminOrders re-reads the order table, so status selectors always
// show what the backend holds
func (h *Handler) showAdminOrders(w http.ResponseWriter, r *http.Request, toasts *view.ToastStack, selected *models.Order) {
	ctx := r.Context()
	data := view.AdminOrdersData{
		Statuses: models.OrderStatuses,
		Selected: selected,
	}

	orders, err := h.api.AdminListOrders(ctx)
	if err != nil {
		if adminDenied(w, r, err) {
			return
		}
		h.logFor(ctx).Warn("Failed to load orders", map[string]interface{}{"error": err.Error()})
	}
	data.Orders = orders
	h.render(w, r, "admin_orders", adminOrdersTitle, data, toasts)
}

// AdminOrders renders the order table
func (h *Handler) AdminOrders(w http.ResponseWriter, r *http.Request) {
	h.showAdminOrders(w, r, nil, nil)
}

// AdminOrder renders the table with one order's details open
func (h *Handler) AdminOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, _ := pathID(r)

	var toasts *view.ToastStack
	order, err := h.api.GetOrder(ctx, id)
	if err != nil {
		h.logFor(ctx).Warn("Failed to load order details", map[string]interface{}{
			"order_id": id,
			"error":    err.Error(),
		})
		toasts = h.toasts()
		toasts.Error(msgLoadOrderFailed)
	}
	h.showAdminOrders(w, r, toasts, order)
}

// AdminUpdateOrderStatus posts the new status. Success or failure, the
// table is reloaded, which reverts the selector after a failure.
func (h *Handler) AdminUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, _ := pathID(r)
	toasts := h.toasts()

	status, known := models.ParseOrderStatus(r.FormValue("status"))
	if !known {
		toasts.Error(msgStatusUpdateFailed)
		h.showAdminOrders(w, r, toasts, nil)
		return
	}

	if err := h.api.UpdateOrderStatus(ctx, id, status); err != nil {
		h.logFor(ctx).Warn("Failed to update status", map[string]interface{}{
			"order_id": id,
			"status":   status.String(),
			"error":    err.Error(),
		})
		toasts.Error(msgStatusUpdateFailed)
	} else {
		toasts.Success(msgStatusUpdated)
	}
	h.showAdminOrders(w, r, toasts, nil)
}
