package service

import (
	models "inventory-dashboard/model"

	"github.com/shopspring/decimal"
)

const (
	// LowStockThreshold: a product with less stock than this is low.
	LowStockThreshold = 20
	// DashboardListLimit caps the recent-orders and low-stock lists.
	DashboardListLimit = 5
)

// TotalRevenue sums the totals of all orders that are not cancelled.
func TotalRevenue(orders []models.Order) decimal.Decimal {
	sum := decimal.Zero
	for _, o := range orders {
		if o.Status != models.StatusCancelled {
			sum = sum.Add(o.Total)
		}
	}
	return sum
}

// LowStockProducts keeps collection order.
func LowStockProducts(products []models.Product) []models.Product {
	out := []models.Product{}
	for _, p := range products {
		if p.Stock < LowStockThreshold {
			out = append(out, p)
		}
	}
	return out
}

func LowStockCount(products []models.Product) int {
	return len(LowStockProducts(products))
}

// RecentOrders returns the first orders in collection order, which is
// newest first after any insertion.
func RecentOrders(orders []models.Order) []models.Order {
	return head(orders, DashboardListLimit)
}

func head[T any](xs []T, n int) []T {
	if len(xs) > n {
		xs = xs[:n]
	}
	out := make([]T, len(xs))
	copy(out, xs)
	return out
}
