package bookstore

import (
	"context"
	"net/http"

	"github.com/drallgood/bookstore-storefront/internal/models"
)

// API is the set of backend operations the storefront uses.
// It exists so controllers can be tested against a mock.
type API interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListBooks(ctx context.Context, q models.BookQuery) ([]models.Book, error)
	GetBook(ctx context.Context, id int) (*models.Book, error)

	AdminListBooks(ctx context.Context) ([]models.Book, error)
	CreateBook(ctx context.Context, in models.BookInput) error
	UpdateBook(ctx context.Context, id int, in models.BookInput) error
	DeleteBook(ctx context.Context, id int) error
	AdminListOrders(ctx context.Context) ([]models.AdminOrder, error)
	UpdateOrderStatus(ctx context.Context, id int, status models.OrderStatus) error

	ListOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, id int) (*models.Order, error)

	GetCart(ctx context.Context) ([]models.CartItem, error)
	AddToCart(ctx context.Context, bookID, quantity int) error
	UpdateCartItem(ctx context.Context, bookID, quantity int) error
	RemoveFromCart(ctx context.Context, bookID int) error
	Checkout(ctx context.Context, form models.ShippingForm) (*models.CheckoutResult, error)

	CurrentUser(ctx context.Context) (*models.User, error)
	Register(ctx context.Context, req models.RegisterRequest) ([]*http.Cookie, error)
	Login(ctx context.Context, req models.LoginRequest) ([]*http.Cookie, error)
	Logout(ctx context.Context) ([]*http.Cookie, error)
}

// Ensure that the Client implements API
var _ API = (*Client)(nil)
