package view

import (
	"strconv"
	"strings"

	"github.com/drallgood/bookstore-storefront/internal/models"
	"github.com/shopspring/decimal"
)

// Chrome is the state shared by every page header: the session and the cart badge
type Chrome struct {
	User      *models.User
	CartCount int
}

// LoggedIn reports whether the session check succeeded
func (c Chrome) LoggedIn() bool {
	return c.User != nil
}

// IsAdmin reports whether the admin menu is shown
func (c Chrome) IsAdmin() bool {
	return c.User != nil && c.User.IsAdmin
}

// Page is the data passed to the layout
type Page struct {
	Title  string
	Chrome Chrome
	Toasts []Toast
	Data   interface{}
}

// HomeData is the landing page
type HomeData struct {
	Featured []models.Book
	Error    string
}

// CatalogData is the catalog page and its results fragment
type CatalogData struct {
	Filter      FilterState
	Categories  []models.Category
	Books       []models.Book
	Error       string
	SortOptions []SortOption
}

// BookDetailData is the detail page. A nil Book renders "Book not found".
type BookDetailData struct {
	Book *models.Book
}

// CheckoutData is the checkout form or its confirmation
type CheckoutData struct {
	Form        models.ShippingForm
	Error       string
	OrderNumber string
}

// Complete reports whether the confirmation replaces the form
func (d CheckoutData) Complete() bool {
	return d.OrderNumber != ""
}

// AuthData backs the login and registration forms. Passwords are never echoed.
type AuthData struct {
	FullName string
	Email    string
	Error    string
}

// CustomerOrdersData is the customer dashboard and order history
type CustomerOrdersData struct {
	Orders    []models.Order
	Stats     CustomerStats
	ShowStats bool
	Selected  *models.Order
	Error     string
}

// AdminDashboardData is the admin overview
type AdminDashboardData struct {
	Stats AdminStats
	Error string
}

// AdminBooksData is the admin book table with its shared create/edit form
type AdminBooksData struct {
	Books         []models.Book
	Categories    []models.Category
	Form          *BookForm
	ConfirmDelete *models.Book
}

// AdminOrdersData is the admin order table
type AdminOrdersData struct {
	Orders   []models.AdminOrder
	Statuses []models.OrderStatus
	Selected *models.Order
}

// BookForm is the admin modal. An empty ID means create.
type BookForm struct {
	ID              string
	Title           string
	Author          string
	Description     string
	Price           string
	StockQuantity   string
	CategoryID      int
	ISBN            string
	PublicationYear string
	CoverImageURL   string
}

// IsEdit reports whether the form updates an existing book
func (f BookForm) IsEdit() bool {
	return f.ID != ""
}

// Heading is the modal title
func (f BookForm) Heading() string {
	if f.IsEdit() {
		return "Edit Book"
	}
	return "Add New Book"
}

// BookFormFrom prefills the modal from an existing book
func BookFormFrom(b models.Book) BookForm {
	f := BookForm{
		ID:            strconv.Itoa(b.ID),
		Title:         b.Title,
		Author:        b.Author,
		Description:   b.Description,
		Price:         b.Price.StringFixed(2),
		StockQuantity: strconv.Itoa(b.StockQuantity),
		CategoryID:    b.CategoryID,
		ISBN:          b.ISBN,
		CoverImageURL: b.CoverImageURL,
	}
	if b.PublicationYear > 0 {
		f.PublicationYear = strconv.Itoa(b.PublicationYear)
	}
	return f
}

// Input converts the form into the backend payload.
// Blank category, year and cover become null.
func (f BookForm) Input() (models.BookInput, error) {
	in := models.BookInput{
		Title:       strings.TrimSpace(f.Title),
		Author:      strings.TrimSpace(f.Author),
		Description: f.Description,
		ISBN:        strings.TrimSpace(f.ISBN),
	}

	if f.ID != "" {
		id, err := strconv.Atoi(f.ID)
		if err != nil {
			return in, &FieldError{Field: "id", Err: err}
		}
		in.ID = id
	}

	price, err := decimal.NewFromString(strings.TrimSpace(f.Price))
	if err != nil {
		return in, &FieldError{Field: "price", Err: err}
	}
	in.Price = price

	stock, err := strconv.Atoi(strings.TrimSpace(f.StockQuantity))
	if err != nil {
		return in, &FieldError{Field: "stock_quantity", Err: err}
	}
	in.StockQuantity = stock

	if f.CategoryID > 0 {
		id := f.CategoryID
		in.CategoryID = &id
	}
	if year := strings.TrimSpace(f.PublicationYear); year != "" {
		y, err := strconv.Atoi(year)
		if err != nil {
			return in, &FieldError{Field: "publication_year", Err: err}
		}
		in.PublicationYear = &y
	}
	if cover := strings.TrimSpace(f.CoverImageURL); cover != "" {
		in.CoverImageURL = &cover
	}
	return in, nil
}

// FieldError reports a form field that could not be parsed
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return "invalid " + e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
