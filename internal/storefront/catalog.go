package storefront

import (
	"net/http"

	"github.com/drallgood/bookstore-storefront/internal/api/bookstore"
	"github.com/drallgood/bookstore-storefront/internal/models"
	"github.com/drallgood/bookstore-storefront/internal/view"
)

const (
	msgLoadBooksFailed  = "Failed to load books"
	msgAddedToCart      = "Added to cart!"
	msgAddToCartFailed  = "Failed to add to cart"
	featuredPageTitle   = "Home"
	catalogPageTitle    = "Books"
	bookDetailPageTitle = "Book"
)

// Home renders the featured books
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := view.HomeData{}

	books, err := h.api.ListBooks(ctx, models.BookQuery{Limit: h.settings.FeaturedLimit})
	if err != nil {
		h.logFor(ctx).Warn("Failed to load featured books", map[string]interface{}{"error": err.Error()})
		data.Error = msgLoadBooksFailed
	} else {
		if len(books) > h.settings.FeaturedLimit {
			books = books[:h.settings.FeaturedLimit]
		}
		data.Featured = books
	}

	h.render(w, r, "home", featuredPageTitle, data, nil)
}

// catalogData loads the list for the filter in the request
func (h *Handler) catalogData(r *http.Request) view.CatalogData {
	ctx := r.Context()
	data := view.CatalogData{
		Filter:      view.ParseFilter(r.URL.Query()),
		SortOptions: view.SortOptions,
	}

	books, err := h.api.ListBooks(ctx, data.Filter.Query())
	if err != nil {
		h.logFor(ctx).Warn("Failed to load books", map[string]interface{}{
			"error":  err.Error(),
			"filter": data.Filter.Encode(),
		})
		data.Error = msgLoadBooksFailed
		return data
	}
	data.Books = books
	return data
}

// Catalog renders the filter bar and the list
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	data := h.catalogData(r)
	data.Categories = h.loadCategories(r.Context())
	h.render(w, r, "books", catalogPageTitle, data, nil)
}

// CatalogResults renders only the list; the search box requests it on every keystroke
func (h *Handler) CatalogResults(w http.ResponseWriter, r *http.Request) {
	h.fragment(w, r, "catalog_results", h.catalogData(r))
}

func (h *Handler) bookDetailData(r *http.Request, id int) view.BookDetailData {
	ctx := r.Context()
	book, err := h.api.GetBook(ctx, id)
	if err != nil {
		h.logFor(ctx).Warn("Failed to load book", map[string]interface{}{
			"book_id": id,
			"error":   err.Error(),
		})
		return view.BookDetailData{}
	}
	return view.BookDetailData{Book: book}
}

// BookDetail renders one book, or "Book not found"
func (h *Handler) BookDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.render(w, r, "book", bookDetailPageTitle, view.BookDetailData{}, nil)
		return
	}
	h.render(w, r, "book", bookDetailPageTitle, h.bookDetailData(r, id), nil)
}

// AddToCart adds one copy and re-renders the detail page with a toast.
// A 401 sends the browser to the login page.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	toasts := h.toasts()
	if err := h.api.AddToCart(ctx, id, 1); err != nil {
		if bookstore.IsUnauthorized(err) {
			redirectToLogin(w, r)
			return
		}
		h.logFor(ctx).Warn("Failed to add to cart", map[string]interface{}{
			"book_id": id,
			"error":   err.Error(),
		})
		toasts.Error(msgAddToCartFailed)
	} else {
		toasts.Success(msgAddedToCart)
	}

	h.render(w, r, "book", bookDetailPageTitle, h.bookDetailData(r, id), toasts)
}
