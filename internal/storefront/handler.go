package storefront

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/drallgood/bookstore-storefront/internal/api/bookstore"
	"github.com/drallgood/bookstore-storefront/internal/cache"
	"github.com/drallgood/bookstore-storefront/internal/logger"
	"github.com/drallgood/bookstore-storefront/internal/models"
	"github.com/drallgood/bookstore-storefront/internal/view"
	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"
)

const categoriesKey = "categories"

// Settings are the page-level knobs
type Settings struct {
	FeaturedLimit     int
	RecentOrdersLimit int
	ToastLifetime     time.Duration
	CategoriesTTL     time.Duration
}

// DefaultSettings returns the settings used when none are given
func DefaultSettings() Settings {
	return Settings{
		FeaturedLimit:     8,
		RecentOrdersLimit: 10,
		ToastLifetime:     view.DefaultToastLifetime,
		CategoriesTTL:     5 * time.Minute,
	}
}

// Handler holds the page controllers. It keeps no per-user state:
// everything shown is read from the backend for the current request.
type Handler struct {
	api        bookstore.API
	renderer   *view.Renderer
	categories cache.Cache[string, []models.Category]
	settings   Settings
	now        func() time.Time
	log        *logger.Logger
}

// Option customizes a Handler
type Option func(*Handler)

// WithSettings overrides the default settings
func WithSettings(s Settings) Option {
	return func(h *Handler) {
		h.settings = s
	}
}

// WithCategoriesCache replaces the in-memory categories cache
func WithCategoriesCache(c cache.Cache[string, []models.Category]) Option {
	return func(h *Handler) {
		if c != nil {
			h.categories = c
		}
	}
}

// WithClock replaces time.Now for toast timestamps
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

// WithLogger sets the base logger
func WithLogger(l *logger.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.log = l.WithComponent("storefront")
		}
	}
}

// New creates the page controllers
func New(api bookstore.API, renderer *view.Renderer, opts ...Option) *Handler {
	h := &Handler{
		api:      api,
		renderer: renderer,
		settings: DefaultSettings(),
		now:      time.Now,
		log:      logger.Get().WithComponent("storefront"),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.categories == nil {
		h.categories = cache.NewMemoryCache[string, []models.Category](h.log)
	}
	return h
}

// Routes registers every page on r
func (h *Handler) Routes(r *mux.Router) {
	r.Use(forwardSession)

	r.HandleFunc("/", h.Home).Methods(http.MethodGet)
	r.HandleFunc("/books", h.Catalog).Methods(http.MethodGet)
	r.HandleFunc("/books/results", h.CatalogResults).Methods(http.MethodGet)
	r.HandleFunc("/book/{id:[0-9]+}", h.BookDetail).Methods(http.MethodGet)
	r.HandleFunc("/book/{id:[0-9]+}/cart", h.AddToCart).Methods(http.MethodPost)

	r.HandleFunc("/cart", h.Cart).Methods(http.MethodGet)
	r.HandleFunc("/cart/update", h.UpdateCart).Methods(http.MethodPost)
	r.HandleFunc("/cart/remove", h.RemoveFromCart).Methods(http.MethodPost)
	r.HandleFunc("/checkout", h.CheckoutForm).Methods(http.MethodGet)
	r.HandleFunc("/checkout", h.Checkout).Methods(http.MethodPost)

	r.HandleFunc("/customer/dashboard", h.CustomerDashboard).Methods(http.MethodGet)
	r.HandleFunc("/customer/orders", h.CustomerOrders).Methods(http.MethodGet)
	r.HandleFunc("/customer/orders/{id:[0-9]+}", h.CustomerOrder).Methods(http.MethodGet)

	r.HandleFunc("/register", h.RegisterForm).Methods(http.MethodGet)
	r.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/login", h.LoginForm).Methods(http.MethodGet)
	r.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/logout", h.Logout).Methods(http.MethodPost)

	r.HandleFunc("/admin", h.AdminDashboard).Methods(http.MethodGet)
	r.HandleFunc("/admin/books", h.AdminBooks).Methods(http.MethodGet)
	r.HandleFunc("/admin/books/new", h.AdminNewBook).Methods(http.MethodGet)
	r.HandleFunc("/admin/books/save", h.AdminSaveBook).Methods(http.MethodPost)
	r.HandleFunc("/admin/books/{id:[0-9]+}/edit", h.AdminEditBook).Methods(http.MethodGet)
	r.HandleFunc("/admin/books/{id:[0-9]+}/delete", h.AdminDeleteBook).Methods(http.MethodPost)
	r.HandleFunc("/admin/orders", h.AdminOrders).Methods(http.MethodGet)
	r.HandleFunc("/admin/orders/{id:[0-9]+}", h.AdminOrder).Methods(http.MethodGet)
	r.HandleFunc("/admin/orders/{id:[0-9]+}/status", h.AdminUpdateOrderStatus).Methods(http.MethodPost)
}

// forwardSession makes the browser's cookies travel with every backend call
func forwardSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := bookstore.WithCookies(r.Context(), r.Cookies())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) logFor(ctx context.Context) *logger.Logger {
	if id := logger.RequestID(ctx); id != "" {
		return h.log.WithFields(map[string]interface{}{"request_id": id})
	}
	return h.log
}

func (h *Handler) toasts() *view.ToastStack {
	return view.NewToastStack(h.settings.ToastLifetime, h.now)
}

// chrome runs the session check and the cart badge refresh concurrently.
// Failures of either just mean guest menu or no badge.
func (h *Handler) chrome(ctx context.Context) view.Chrome {
	var (
		c view.Chrome
		g errgroup.Group
	)
	g.Go(func() error {
		if user, err := h.api.CurrentUser(ctx); err == nil {
			c.User = user
		}
		return nil
	})
	g.Go(func() error {
		if items, err := h.api.GetCart(ctx); err == nil {
			c.CartCount = models.CartQuantity(items)
		}
		return nil
	})
	_ = g.Wait()
	return c
}

// render draws a full page. toasts may be nil.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, name, title string, data interface{}, toasts *view.ToastStack) {
	page := view.Page{
		Title:  title,
		Chrome: h.chrome(r.Context()),
		Data:   data,
	}
	if toasts != nil {
		page.Toasts = toasts.Toasts()
	}
	if err := h.renderer.Page(w, http.StatusOK, name, page); err != nil {
		h.logFor(r.Context()).Error("Failed to render page", map[string]interface{}{
			"page":  name,
			"error": err.Error(),
		})
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *Handler) fragment(w http.ResponseWriter, r *http.Request, name string, data interface{}) {
	if err := h.renderer.Fragment(w, http.StatusOK, name, data); err != nil {
		h.logFor(r.Context()).Error("Failed to render fragment", map[string]interface{}{
			"fragment": name,
			"error":    err.Error(),
		})
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// pathID returns the {id} route variable
func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// formInt parses an integer form value
func formInt(r *http.Request, key string) (int, bool) {
	n, err := strconv.Atoi(r.FormValue(key))
	if err != nil {
		return 0, false
	}
	return n, true
}

// loadCategories serves categories from the cache, filling it on a miss.
// A failed load is logged and yields no options.
func (h *Handler) loadCategories(ctx context.Context) []models.Category {
	if categories, ok := h.categories.Get(categoriesKey); ok {
		return categories
	}
	categories, err := h.api.ListCategories(ctx)
	if err != nil {
		h.logFor(ctx).Warn("Failed to load categories", map[string]interface{}{"error": err.Error()})
		return nil
	}
	h.categories.Set(categoriesKey, categories, h.settings.CategoriesTTL)
	return categories
}
