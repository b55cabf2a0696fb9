package view

import (
	"github.com/drallgood/bookstore-storefront/internal/models"
	"github.com/shopspring/decimal"
)

// AdminStats is the admin dashboard summary.
// Totals are computed by scanning every order on each load.
type AdminStats struct {
	TotalBooks    int
	TotalOrders   int
	TotalRevenue  decimal.Decimal
	PendingOrders int
	RecentOrders  []models.AdminOrder
}

// ComputeAdminStats builds the dashboard numbers. recent caps the
// recent-orders table and keeps the backend's order.
func ComputeAdminStats(books []models.Book, orders []models.AdminOrder, recent int) AdminStats {
	stats := AdminStats{
		TotalBooks:   len(books),
		TotalOrders:  len(orders),
		TotalRevenue: decimal.Zero,
	}
	for _, order := range orders {
		stats.TotalRevenue = stats.TotalRevenue.Add(order.TotalAmount)
		if order.Status.IsOpen() {
			stats.PendingOrders++
		}
	}
	if recent > len(orders) {
		recent = len(orders)
	}
	if recent > 0 {
		stats.RecentOrders = orders[:recent]
	}
	return stats
}

// CustomerStats summarizes a customer's orders
type CustomerStats struct {
	Total     int
	Pending   int
	Completed int
}

// ComputeCustomerStats counts open (pending or processing) and delivered orders
func ComputeCustomerStats(orders []models.Order) CustomerStats {
	stats := CustomerStats{Total: len(orders)}
	for _, order := range orders {
		switch {
		case order.Status.IsOpen():
			stats.Pending++
		case order.Status == models.StatusDelivered:
			stats.Completed++
		}
	}
	return stats
}
