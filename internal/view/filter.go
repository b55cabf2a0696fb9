package view

import (
	"net/url"
	"strings"

	"github.com/drallgood/bookstore-storefront/internal/models"
)

// SortOption is one entry of the catalog sort selector
type SortOption struct {
	Value string
	Label string
}

// SortOptions lists the sort keys in selector order
var SortOptions = []SortOption{
	{Value: models.SortNewest, Label: "Newest"},
	{Value: models.SortPriceAsc, Label: "Price: Low to High"},
	{Value: models.SortPriceDesc, Label: "Price: High to Low"},
	{Value: models.SortTitle, Label: "Title A-Z"},
}

// FilterState is the catalog's search, category and sort selection.
// It lives for one request only.
type FilterState struct {
	Search   string
	Category string
	Sort     string
}

// ParseFilter reads the filter from query parameters.
// Unknown sort keys fall back to newest.
func ParseFilter(values url.Values) FilterState {
	f := FilterState{
		Search:   strings.TrimSpace(values.Get("search")),
		Category: strings.TrimSpace(values.Get("category")),
		Sort:     models.SortNewest,
	}
	sort := values.Get("sort")
	for _, opt := range SortOptions {
		if opt.Value == sort {
			f.Sort = sort
			break
		}
	}
	return f
}

// Query converts the filter into backend query parameters
func (f FilterState) Query() models.BookQuery {
	return models.BookQuery{
		Search:   f.Search,
		Category: f.Category,
		Sort:     f.Sort,
	}
}

// Encode returns the filter as a query string, empty fields omitted
func (f FilterState) Encode() string {
	return f.Query().Values().Encode()
}
