package view

import (
	"fmt"
	"time"

	"github.com/drallgood/bookstore-storefront/internal/models"
	"github.com/shopspring/decimal"
)

// Placeholder sizes used by the different book components
const (
	CoverSizeCard   = "300x400"
	CoverSizeDetail = "400x600"
	CoverSizeCart   = "100x150"
	CoverSizeAdmin  = "50x75"
)

// badgeClasses maps an order status to its badge style
var badgeClasses = map[models.OrderStatus]string{
	models.StatusPending:    "bg-yellow-100 text-yellow-800",
	models.StatusProcessing: "bg-blue-100 text-blue-800",
	models.StatusShipped:    "bg-purple-100 text-purple-800",
	models.StatusDelivered:  "bg-green-100 text-green-800",
	models.StatusCancelled:  "bg-red-100 text-red-800",
}

const defaultBadgeClass = "bg-gray-100 text-gray-800"

// FormatPrice renders an amount as "$12.50"
func FormatPrice(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// FormatDate renders a timestamp as "Oct 14, 2026"
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// StatusBadgeClass returns the badge style for a status; unknown statuses get gray
func StatusBadgeClass(status models.OrderStatus) string {
	if class, ok := badgeClasses[status]; ok {
		return class
	}
	return defaultBadgeClass
}

// CoverURL returns the book's cover or the sized placeholder.
// placeholder is a format string with one %s for the size.
func CoverURL(cover, size, placeholder string) string {
	if cover != "" {
		return cover
	}
	return fmt.Sprintf(placeholder, size)
}
