package storefront

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/drallgood/bookstore-storefront/internal/api/bookstore"
	"github.com/drallgood/bookstore-storefront/internal/config"
	"github.com/drallgood/bookstore-storefront/internal/logger"
	"github.com/drallgood/bookstore-storefront/internal/models"
	"github.com/drallgood/bookstore-storefront/internal/view"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	errUnauthorized = &bookstore.APIError{Method: http.MethodGet, Endpoint: "/me", StatusCode: http.StatusUnauthorized, Body: "Unauthorized\n"}
	errForbidden    = &bookstore.APIError{Method: http.MethodGet, Endpoint: "/admin", StatusCode: http.StatusForbidden, Body: "Forbidden\n"}
	errServer       = &bookstore.APIError{Method: http.MethodPost, Endpoint: "/x", StatusCode: http.StatusInternalServerError, Body: "Server error\n"}
)

var testNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func fixtureCategories() []models.Category {
	return []models.Category{
		{ID: 1, Name: "Fiction"},
		{ID: 2, Name: "Science"},
	}
}

func fixtureBooks() []models.Book {
	return []models.Book{
		{ID: 1, Title: "Dune", Author: "Frank Herbert", Price: price("9.99"), StockQuantity: 5, CategoryID: 1, CategoryName: "Fiction"},
		{ID: 2, Title: "Emma", Author: "Jane Austen", Price: price("4.50"), StockQuantity: 0, CategoryID: 1, CategoryName: "Fiction"},
		{ID: 3, Title: "Cosmos", Author: "Carl Sagan", Price: price("14.00"), StockQuantity: 2, CategoryID: 2, CategoryName: "Science"},
	}
}

type testEnv struct {
	api     *MockAPI
	handler *Handler
	router  *mux.Router
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()
	return newTestEnvWithAPI(t, new(MockAPI), opts...)
}

func newTestEnvWithAPI(t *testing.T, api bookstore.API, opts ...Option) *testEnv {
	t.Helper()
	renderer, err := view.NewRenderer(config.DefaultPlaceholderCover)
	require.NoError(t, err)

	base := []Option{
		WithClock(func() time.Time { return testNow }),
		WithLogger(logger.New(logger.Config{Level: "error", Output: io.Discard})),
	}
	h := New(api, renderer, append(base, opts...)...)

	r := mux.NewRouter()
	h.Routes(r)

	env := &testEnv{handler: h, router: r}
	if m, ok := api.(*MockAPI); ok {
		env.api = m
	}
	return env
}

// expectChrome sets up the session check and the cart badge read made by every page
func (e *testEnv) expectChrome(user *models.User, cart []models.CartItem) {
	if user != nil {
		e.api.On("CurrentUser", mock.Anything).Return(user, nil).Maybe()
	} else {
		e.api.On("CurrentUser", mock.Anything).Return(nil, errUnauthorized).Maybe()
	}
	e.api.On("GetCart", mock.Anything).Return(cart, nil).Maybe()
}

func (e *testEnv) get(target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) post(target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}
