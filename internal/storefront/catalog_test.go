package storefront

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/drallgood/bookstore-storefront/internal/api/bookstore"
	"github.com/drallgood/bookstore-storefront/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeCatalogBackend filters the fixture the way the bookstore API does
func fakeCatalogBackend(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/categories":
			json.NewEncoder(w).Encode(fixtureCategories())
		case "/api/books":
			q := r.URL.Query()
			var out []models.Book
			for _, b := range fixtureBooks() {
				if s := strings.ToLower(q.Get("search")); s != "" &&
					!strings.Contains(strings.ToLower(b.Title), s) &&
					!strings.Contains(strings.ToLower(b.Author), s) {
					continue
				}
				if c := q.Get("category"); c != "" && c != strconv.Itoa(b.CategoryID) {
					continue
				}
				out = append(out, b)
			}
			switch q.Get("sort") {
			case models.SortPriceAsc:
				sort.Slice(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price) })
			case models.SortPriceDesc:
				sort.Slice(out, func(i, j int) bool { return out[i].Price.GreaterThan(out[j].Price) })
			case models.SortTitle:
				sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
			}
			if out == nil {
				w.Write([]byte("null"))
				return
			}
			json.NewEncoder(w).Encode(out)
		default:
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
		}
	}))
}

func TestCatalogFilters(t *testing.T) {
	backend := fakeCatalogBackend(t)
	defer backend.Close()

	env := newTestEnvWithAPI(t, bookstore.NewClient(backend.URL))

	tests := []struct {
		name      string
		query     string
		wantOrder []string
		absent    []string
		empty     bool
	}{
		{
			name:      "no filter returns all",
			query:     "",
			wantOrder: []string{"Dune", "Emma", "Cosmos"},
		},
		{
			name:      "category filter",
			query:     "?category=2",
			wantOrder: []string{"Cosmos"},
			absent:    []string{"Dune", "Emma"},
		},
		{
			name:      "search matches author",
			query:     "?search=austen",
			wantOrder: []string{"Emma"},
			absent:    []string{"Dune", "Cosmos"},
		},
		{
			name:      "price ascending",
			query:     "?sort=price_asc",
			wantOrder: []string{"Emma", "Dune", "Cosmos"},
		},
		{
			name:      "title within category",
			query:     "?category=1&sort=title",
			wantOrder: []string{"Dune", "Emma"},
			absent:    []string{"Cosmos"},
		},
		{
			name:  "no match",
			query: "?search=tolkien",
			empty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.get("/books/results" + tt.query)
			require.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()

			if tt.empty {
				assert.Contains(t, body, "No books found.")
				return
			}
			last := -1
			for _, title := range tt.wantOrder {
				idx := strings.Index(body, ">"+title+"<")
				require.GreaterOrEqual(t, idx, 0, "missing %s", title)
				assert.Greater(t, idx, last, "%s out of order", title)
				last = idx
			}
			for _, title := range tt.absent {
				assert.NotContains(t, body, ">"+title+"<")
			}
		})
	}
}

func TestCatalogPage(t *testing.T) {
	env := newTestEnv(t)
	env.expectChrome(nil, nil)
	env.api.On("ListCategories", mock.Anything).Return(fixtureCategories(), nil)
	env.api.On("ListBooks", mock.Anything, models.BookQuery{Category: "2", Sort: models.SortPriceDesc}).
		Return(fixtureBooks()[2:], nil)

	rec := env.get("/books?category=2&sort=price_desc")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `<option value="2" selected>Science</option>`)
	assert.Contains(t, body, `<option value="price_desc" selected>`)
	assert.Contains(t, body, "Cosmos")
	assert.Contains(t, body, `id="clear-filters" href="/books"`)
	assert.Contains(t, body, "<html")
}

func TestCatalogCategoriesAreCached(t *testing.T) {
	env := newTestEnv(t)
	env.expectChrome(nil, nil)
	env.api.On("ListCategories", mock.Anything).Return(fixtureCategories(), nil).Once()
	env.api.On("ListBooks", mock.Anything, mock.Anything).Return(fixtureBooks(), nil)

	for i := 0; i < 3; i++ {
		rec := env.get("/books")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Fiction")
	}
	env.api.AssertNumberOfCalls(t, "ListCategories", 1)
}

func TestCatalogLoadFailure(t *testing.T) {
	env := newTestEnv(t)
	env.expectChrome(nil, nil)
	env.api.On("ListCategories", mock.Anything).Return(nil, errServer)
	env.api.On("ListBooks", mock.Anything, mock.Anything).Return(nil, errServer)

	rec := env.get("/books")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to load books")

	frag := env.get("/books/results?search=x")
	assert.Contains(t, frag.Body.String(), "Failed to load books")
	assert.NotContains(t, frag.Body.String(), "<html")
}

func TestHomeFeatured(t *testing.T) {
	t.Run("capped at eight cards", func(t *testing.T) {
		env := newTestEnv(t)
		env.expectChrome(nil, nil)

		var many []models.Book
		for i := 1; i <= 10; i++ {
			many = append(many, models.Book{ID: i, Title: "Book " + strconv.Itoa(i), Price: price("1")})
		}
		env.api.On("ListBooks", mock.Anything, models.BookQuery{Limit: 8}).Return(many, nil)

		rec := env.get("/")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 8, strings.Count(rec.Body.String(), `class="book-card`))
	})

	t.Run("empty", func(t *testing.T) {
		env := newTestEnv(t)
		env.expectChrome(nil, nil)
		env.api.On("ListBooks", mock.Anything, mock.Anything).Return([]models.Book{}, nil)

		rec := env.get("/")
		assert.Contains(t, rec.Body.String(), "No books available yet.")
	})

	t.Run("failure", func(t *testing.T) {
		env := newTestEnv(t)
		env.expectChrome(nil, nil)
		env.api.On("ListBooks", mock.Anything, mock.Anything).Return(nil, errServer)

		rec := env.get("/")
		assert.Contains(t, rec.Body.String(), "Failed to load books")
	})
}

func TestBookDetail(t *testing.T) {
	books := fixtureBooks()

	tests := []struct {
		name     string
		path     string
		book     *models.Book
		err      error
		contains []string
	}{
		{
			name:     "in stock",
			path:     "/book/1",
			book:     &books[0],
			contains: []string{"Dune", "5 in stock", `action="/book/1/cart"`, "$9.99"},
		},
		{
			name:     "out of stock",
			path:     "/book/2",
			book:     &books[1],
			contains: []string{"Out of stock", "disabled"},
		},
		{
			name:     "not found",
			path:     "/book/99",
			err:      &bookstore.APIError{StatusCode: http.StatusNotFound, Body: "Book not found\n"},
			contains: []string{"Book not found", `href="/books"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.expectChrome(nil, nil)
			id, _ := strconv.Atoi(strings.TrimPrefix(tt.path, "/book/"))
			if tt.book != nil {
				env.api.On("GetBook", mock.Anything, id).Return(tt.book, nil)
			} else {
				env.api.On("GetBook", mock.Anything, id).Return(nil, tt.err)
			}

			rec := env.get(tt.path)
			require.Equal(t, http.StatusOK, rec.Code)
			for _, s := range tt.contains {
				assert.Contains(t, rec.Body.String(), s)
			}
		})
	}
}

func TestAddToCart(t *testing.T) {
	books := fixtureBooks()

	t.Run("success shows toast and refreshed badge", func(t *testing.T) {
		env := newTestEnv(t)
		env.expectChrome(&models.User{ID: 1}, []models.CartItem{{BookID: 1, Quantity: 2, Book: &books[0]}})
		env.api.On("AddToCart", mock.Anything, 1, 1).Return(nil).Once()
		env.api.On("GetBook", mock.Anything, 1).Return(&books[0], nil)

		rec := env.post("/book/1/cart", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Added to cart!")
		assert.Contains(t, body, `data-kind="success"`)
		assert.Contains(t, body, `id="cart-count"`)
		env.api.AssertExpectations(t)
	})

	t.Run("unauthorized redirects to login", func(t *testing.T) {
		env := newTestEnv(t)
		env.api.On("AddToCart", mock.Anything, 1, 1).Return(errUnauthorized)

		rec := env.post("/book/1/cart", nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
	})

	t.Run("other failure shows error toast", func(t *testing.T) {
		env := newTestEnv(t)
		env.expectChrome(nil, nil)
		env.api.On("AddToCart", mock.Anything, 1, 1).Return(errServer)
		env.api.On("GetBook", mock.Anything, 1).Return(&books[0], nil)

		rec := env.post("/book/1/cart", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Failed to add to cart")
		assert.Contains(t, rec.Body.String(), `data-kind="error"`)
	})
}

func TestToastLifetimeInMarkup(t *testing.T) {
	books := fixtureBooks()

	t.Run("full lifetime", func(t *testing.T) {
		env := newTestEnv(t)
		env.expectChrome(nil, nil)
		env.api.On("AddToCart", mock.Anything, 1, 1).Return(nil)
		env.api.On("GetBook", mock.Anything, 1).Return(&books[0], nil)

		rec := env.post("/book/1/cart", nil)
		assert.Contains(t, rec.Body.String(), `data-lifetime-ms="3000"`)
	})

	t.Run("slow backend does not shorten it", func(t *testing.T) {
		var mu sync.Mutex
		now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
		clock := func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			now = now.Add(4 * time.Second)
			return now
		}
		env := newTestEnv(t, WithClock(clock))
		env.expectChrome(nil, nil)
		env.api.On("AddToCart", mock.Anything, 1, 1).Return(nil)
		env.api.On("GetBook", mock.Anything, 1).Return(&books[0], nil)

		rec := env.post("/book/1/cart", nil)
		body := rec.Body.String()
		assert.Contains(t, body, msgAddedToCart)
		assert.Contains(t, body, `data-lifetime-ms="3000"`)
	})
}

func TestSessionCookiesForwarded(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []string
	)
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("session"); err == nil {
			mu.Lock()
			seen = append(seen, r.URL.Path+"="+c.Value)
			mu.Unlock()
		}
		if r.URL.Path == "/api/me" {
			json.NewEncoder(w).Encode(models.User{ID: 1, FullName: "Ann", IsAdmin: true})
			return
		}
		w.Write([]byte("[]"))
	}))
	defer backend.Close()

	env := newTestEnvWithAPI(t, bookstore.NewClient(backend.URL))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "s3cret"})
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="admin-menu"`)
	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{"/api/books=s3cret", "/api/me=s3cret", "/api/cart=s3cret"}, seen)
}
