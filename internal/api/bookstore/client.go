package bookstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/drallgood/bookstore-storefront/internal/logger"
	"github.com/drallgood/bookstore-storefront/internal/models"
	"github.com/drallgood/bookstore-storefront/internal/util"
)

const (
	apiPath = "/api"
)

// Client talks to the bookstore REST backend
type Client struct {
	baseURL string
	client  *http.Client
	limiter *util.RateLimiter
	logger  *logger.Logger
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithTimeout sets a per-request timeout. Zero means none.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithRateLimiter paces outgoing requests. A nil limiter never waits.
func WithRateLimiter(l *util.RateLimiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l.WithComponent("bookstore_client")
		}
	}
}

// NewClient creates a client for the backend at baseURL
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{},
		logger:  logger.Get().WithComponent("bookstore_client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do sends one request and decodes a JSON response into out (when non-nil).
// It returns the cookies the backend set so callers can forward them.
func (c *Client) do(ctx context.Context, method, endpoint string, in, out interface{}) ([]*http.Cookie, error) {
	start := time.Now()
	log := c.logger.WithFields(map[string]interface{}{
		"method":   method,
		"endpoint": endpoint,
	})

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPath+endpoint, body)
	if err != nil {
		log.Error("Failed to create request", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := logger.RequestID(ctx); id != "" {
		req.Header.Set(logger.RequestIDHeader, id)
	}
	for _, cookie := range CookiesFromContext(ctx) {
		req.AddCookie(cookie)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		log.Warn("Request failed", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	log.Debug("Backend responded", map[string]interface{}{
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	})

	if resp.StatusCode == http.StatusTooManyRequests {
		c.limiter.OnRateLimit(parseRetryAfter(resp.Header.Get("Retry-After")))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.Cookies(), &APIError{
			Method:     method,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       string(data),
		}
	}

	c.limiter.OnSuccess()

	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			log.Error("Failed to decode response", map[string]interface{}{"error": err.Error()})
			return resp.Cookies(), fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return resp.Cookies(), nil
}

// parseRetryAfter reads a Retry-After header given in seconds
func parseRetryAfter(value string) time.Duration {
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// ListCategories fetches GET /api/categories
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if _, err := c.do(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ListBooks fetches the filtered catalog
func (c *Client) ListBooks(ctx context.Context, q models.BookQuery) ([]models.Book, error) {
	endpoint := "/books"
	if v := q.Values(); len(v) > 0 {
		endpoint += "?" + v.Encode()
	}
	var books []models.Book
	if _, err := c.do(ctx, http.MethodGet, endpoint, nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// GetBook fetches one book
func (c *Client) GetBook(ctx context.Context, id int) (*models.Book, error) {
	var book models.Book
	if _, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/books/%d", id), nil, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// AdminListBooks fetches GET /api/admin/books
func (c *Client) AdminListBooks(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	if _, err := c.do(ctx, http.MethodGet, "/admin/books", nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// CreateBook inserts a new book
func (c *Client) CreateBook(ctx context.Context, in models.BookInput) error {
	_, err := c.do(ctx, http.MethodPost, "/admin/books", in, nil)
	return err
}

// UpdateBook replaces the book with the given id
func (c *Client) UpdateBook(ctx context.Context, id int, in models.BookInput) error {
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/books/%d", id), in, nil)
	return err
}

// DeleteBook removes a book
func (c *Client) DeleteBook(ctx context.Context, id int) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/books/%d", id), nil, nil)
	return err
}

// AdminListOrders fetches every order with customer details
func (c *Client) AdminListOrders(ctx context.Context) ([]models.AdminOrder, error) {
	var orders []models.AdminOrder
	if _, err := c.do(ctx, http.MethodGet, "/admin/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus sets an order's status
func (c *Client) UpdateOrderStatus(ctx context.Context, id int, status models.OrderStatus) error {
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/orders/%d", id), models.StatusUpdate{Status: status}, nil)
	return err
}

// ListOrders fetches the signed-in customer's orders
func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if _, err := c.do(ctx, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder fetches one order with items and shipping address
func (c *Client) GetOrder(ctx context.Context, id int) (*models.Order, error) {
	var order models.Order
	if _, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetCart fetches the cart
func (c *Client) GetCart(ctx context.Context) ([]models.CartItem, error) {
	var items []models.CartItem
	if _, err := c.do(ctx, http.MethodGet, "/cart", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddToCart adds quantity copies of a book
func (c *Client) AddToCart(ctx context.Context, bookID, quantity int) error {
	_, err := c.do(ctx, http.MethodPost, "/cart/add", models.CartMutation{BookID: bookID, Quantity: quantity}, nil)
	return err
}

// UpdateCartItem sets the quantity of a cart line
func (c *Client) UpdateCartItem(ctx context.Context, bookID, quantity int) error {
	_, err := c.do(ctx, http.MethodPost, "/cart/update", models.CartMutation{BookID: bookID, Quantity: quantity}, nil)
	return err
}

// RemoveFromCart drops a cart line
func (c *Client) RemoveFromCart(ctx context.Context, bookID int) error {
	_, err := c.do(ctx, http.MethodPost, "/cart/remove", models.CartMutation{BookID: bookID}, nil)
	return err
}

// Checkout places an order for the current cart
func (c *Client) Checkout(ctx context.Context, form models.ShippingForm) (*models.CheckoutResult, error) {
	var result models.CheckoutResult
	if _, err := c.do(ctx, http.MethodPost, "/checkout", form, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CurrentUser fetches GET /api/me
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if _, err := c.do(ctx, http.MethodGet, "/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates an account and returns the session cookies
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) ([]*http.Cookie, error) {
	return c.do(ctx, http.MethodPost, "/register", req, nil)
}

// Login starts a session and returns the session cookies
func (c *Client) Login(ctx context.Context, req models.LoginRequest) ([]*http.Cookie, error) {
	return c.do(ctx, http.MethodPost, "/login", req, nil)
}

// Logout ends the session and returns the cookies that clear it
func (c *Client) Logout(ctx context.Context) ([]*http.Cookie, error) {
	return c.do(ctx, http.MethodPost, "/logout", nil, nil)
}
