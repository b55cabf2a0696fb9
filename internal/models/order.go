package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfilment state of an order
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists every status in selector order
var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

// ParseOrderStatus accepts any case and reports whether the value is known
func ParseOrderStatus(s string) (OrderStatus, bool) {
	status := OrderStatus(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range OrderStatuses {
		if status == known {
			return status, true
		}
	}
	return status, false
}

// String returns the raw status value
func (s OrderStatus) String() string {
	return string(s)
}

// Label is the upper-case badge text
func (s OrderStatus) Label() string {
	return strings.ToUpper(string(s))
}

// IsOpen reports whether the order still needs work (pending or processing)
func (s OrderStatus) IsOpen() bool {
	return s == StatusPending || s == StatusProcessing
}

// Address is a shipping address
type Address struct {
	FullName     string `json:"full_name"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
}

// ShippingForm is the body of POST /api/checkout
type ShippingForm = Address

// OrderItem captures the price at purchase time
type OrderItem struct {
	ID              int             `json:"id"`
	BookID          int             `json:"book_id"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"price_at_purchase"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	BookTitle       string          `json:"book_title,omitempty"`
	BookAuthor      string          `json:"book_author,omitempty"`
}

// Order is a placed order
type Order struct {
	ID              int             `json:"id"`
	OrderNumber     string          `json:"order_number"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Status          OrderStatus     `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	Items           []OrderItem     `json:"items,omitempty"`
	ShippingAddress *Address        `json:"shipping_address,omitempty"`
}

// AdminOrder is an order row in the admin listing
type AdminOrder struct {
	Order
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
}

// CheckoutResult is the response of POST /api/checkout
type CheckoutResult struct {
	Success     bool   `json:"success"`
	OrderID     int    `json:"order_id"`
	OrderNumber string `json:"order_number"`
}

// StatusUpdate is the body of PUT /api/admin/orders/{id}
type StatusUpdate struct {
	Status OrderStatus `json:"status"`
}
