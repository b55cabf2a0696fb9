package storefront

import (
	"context"
	"net/http"

	"github.com/drallgood/bookstore-storefront/internal/api/bookstore"
	"github.com/drallgood/bookstore-storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockAPI is a mock implementation of bookstore.API for testing
type MockAPI struct {
	mock.Mock
}

var _ bookstore.API = (*MockAPI)(nil)

func (m *MockAPI) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockAPI) ListBooks(ctx context.Context, q models.BookQuery) ([]models.Book, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockAPI) GetBook(ctx context.Context, id int) (*models.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockAPI) AdminListBooks(ctx context.Context) ([]models.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockAPI) CreateBook(ctx context.Context, in models.BookInput) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}

func (m *MockAPI) UpdateBook(ctx context.Context, id int, in models.BookInput) error {
	args := m.Called(ctx, id, in)
	return args.Error(0)
}

func (m *MockAPI) DeleteBook(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAPI) AdminListOrders(ctx context.Context) ([]models.AdminOrder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AdminOrder), args.Error(1)
}

func (m *MockAPI) UpdateOrderStatus(ctx context.Context, id int, status models.OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockAPI) ListOrders(ctx context.Context) ([]models.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockAPI) GetOrder(ctx context.Context, id int) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockAPI) GetCart(ctx context.Context) ([]models.CartItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CartItem), args.Error(1)
}

func (m *MockAPI) AddToCart(ctx context.Context, bookID, quantity int) error {
	args := m.Called(ctx, bookID, quantity)
	return args.Error(0)
}

func (m *MockAPI) UpdateCartItem(ctx context.Context, bookID, quantity int) error {
	args := m.Called(ctx, bookID, quantity)
	return args.Error(0)
}

func (m *MockAPI) RemoveFromCart(ctx context.Context, bookID int) error {
	args := m.Called(ctx, bookID)
	return args.Error(0)
}

func (m *MockAPI) Checkout(ctx context.Context, form models.ShippingForm) (*models.CheckoutResult, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CheckoutResult), args.Error(1)
}

func (m *MockAPI) CurrentUser(ctx context.Context) (*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAPI) Register(ctx context.Context, req models.RegisterRequest) ([]*http.Cookie, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*http.Cookie), args.Error(1)
}

func (m *MockAPI) Login(ctx context.Context, req models.LoginRequest) ([]*http.Cookie, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*http.Cookie), args.Error(1)
}

func (m *MockAPI) Logout(ctx context.Context) ([]*http.Cookie, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*http.Cookie), args.Error(1)
}
