package models

import (
	"github.com/shopspring/decimal"
)

// CartItem is one line of the signed-in user's cart
type CartItem struct {
	ID       int   `json:"id"`
	BookID   int   `json:"book_id"`
	Quantity int   `json:"quantity"`
	Book     *Book `json:"book,omitempty"`
}

// Subtotal is price × quantity, for display only
func (c CartItem) Subtotal() decimal.Decimal {
	if c.Book == nil {
		return decimal.Zero
	}
	return c.Book.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// CartMutation is the body of /api/cart/add, /update and /remove
type CartMutation struct {
	BookID   int `json:"book_id"`
	Quantity int `json:"quantity,omitempty"`
}

// CartTotal sums the line subtotals
func CartTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// CartQuantity sums the quantities, used for the header badge
func CartQuantity(items []CartItem) int {
	n := 0
	for _, item := range items {
		n += item.Quantity
	}
	return n
}
