package models

import (
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

// Book is a catalog entry as served by the bookstore API
type Book struct {
	ID              int             `json:"id"`
	Title           string          `json:"title"`
	Author          string          `json:"author"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	StockQuantity   int             `json:"stock_quantity"`
	CategoryID      int             `json:"category_id"`
	CategoryName    string          `json:"category_name,omitempty"`
	CoverImageURL   string          `json:"cover_image_url"`
	ISBN            string          `json:"isbn"`
	PublicationYear int             `json:"publication_year"`
}

// InStock reports whether at least one copy is available
func (b Book) InStock() bool {
	return b.StockQuantity > 0
}

// Category groups books in the catalog
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// BookInput is the admin create/update payload.
// Nil pointers are sent as JSON null.
type BookInput struct {
	ID              int             `json:"-"`
	Title           string          `json:"title"`
	Author          string          `json:"author"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	StockQuantity   int             `json:"stock_quantity"`
	CategoryID      *int            `json:"category_id"`
	ISBN            string          `json:"isbn"`
	PublicationYear *int            `json:"publication_year"`
	CoverImageURL   *string         `json:"cover_image_url"`
}

// IsUpdate reports whether the input targets an existing record
func (in BookInput) IsUpdate() bool {
	return in.ID > 0
}

// Sort keys understood by GET /api/books
const (
	SortNewest    = ""
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortTitle     = "title"
)

// BookQuery carries the catalog query parameters
type BookQuery struct {
	Search   string
	Category string
	Sort     string
	Limit    int
}

// Values serializes the non-empty fields only
func (q BookQuery) Values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// MarshalJSON writes the price as a bare JSON number, which is what the
// backend decodes into a float.
func (in BookInput) MarshalJSON() ([]byte, error) {
	type alias BookInput
	return json.Marshal(struct {
		alias
		Price json.Number `json:"price"`
	}{
		alias: alias(in),
		Price: json.Number(in.Price.String()),
	})
}
