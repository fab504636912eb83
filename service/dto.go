package service

import (
	models "inventory-dashboard/model"

	"github.com/shopspring/decimal"
)

// Dashboard is recomputed from the store on every call.
type Dashboard struct {
	TotalRevenue     decimal.Decimal  `json:"total_revenue"`
	OrderCount       int              `json:"order_count"`
	ProductCount     int              `json:"product_count"`
	LowStockCount    int              `json:"low_stock_count"`
	RecentOrders     []models.Order   `json:"recent_orders"`
	LowStockProducts []models.Product `json:"low_stock_products"`
}

// ItemView is an order line with the product name resolved.
type ItemView struct {
	ProductID      string          `json:"product_id"`
	ProductName    string          `json:"product_name"`
	ProductDeleted bool            `json:"product_deleted"`
	Quantity       int             `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type OrderView struct {
	models.Order
	Lines []ItemView `json:"lines"`
}
