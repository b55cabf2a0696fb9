package view

import (
	"github.com/drallgood/bookstore-storefront/internal/models"
	"github.com/shopspring/decimal"
)

// CartLine is one rendered cart row
type CartLine struct {
	models.CartItem
	Subtotal          decimal.Decimal
	DecrementDisabled bool
	IncrementDisabled bool
}

// CartView is the projection of the backend cart
type CartView struct {
	Lines []CartLine
	Total decimal.Decimal
	Count int
	// ConfirmRemove is the book id awaiting removal confirmation, 0 for none
	ConfirmRemove int
	Error         string
}

// Empty reports whether the backend returned an empty cart. A failed load
// is not empty: nothing but the error is shown.
func (v CartView) Empty() bool {
	return len(v.Lines) == 0 && v.Error == ""
}

// NewCartView computes line subtotals, the total and the control states.
// Decrement is disabled at quantity 1, increment at the available stock.
func NewCartView(items []models.CartItem) CartView {
	v := CartView{Total: decimal.Zero}
	for _, item := range items {
		stock := 0
		if item.Book != nil {
			stock = item.Book.StockQuantity
		}
		v.Lines = append(v.Lines, CartLine{
			CartItem:          item,
			Subtotal:          item.Subtotal(),
			DecrementDisabled: item.Quantity <= 1,
			IncrementDisabled: item.Quantity >= stock,
		})
	}
	v.Total = models.CartTotal(items)
	v.Count = models.CartQuantity(items)
	return v
}

// Line returns the row for a book id
func (v CartView) Line(bookID int) (CartLine, bool) {
	for _, line := range v.Lines {
		if line.BookID == bookID {
			return line, true
		}
	}
	return CartLine{}, false
}
