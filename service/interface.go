package service

import (
	"context"

	"inventory-dashboard/journal"
	models "inventory-dashboard/model"
)

// ServiceInterface is what the HTTP layer depends on.
type ServiceInterface interface {
	ListProducts(ctx context.Context) []models.Product
	GetProduct(ctx context.Context, id string) (models.Product, error)
	CreateProduct(ctx context.Context, p models.NewProduct) models.Product
	UpdateProduct(ctx context.Context, p models.Product) error
	DeleteProduct(ctx context.Context, id string) error

	ListOrders(ctx context.Context) []models.Order
	GetOrder(ctx context.Context, id string) (OrderView, error)
	CreateOrder(ctx context.Context, o models.NewOrder) models.Order
	UpdateOrder(ctx context.Context, o models.Order) (models.Order, error)
	DeleteOrder(ctx context.Context, id string) error
	UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (models.Order, error)
	AddOrderItem(ctx context.Context, orderID, productID string, qty int) (OrderView, error)
	RemoveOrderItem(ctx context.Context, orderID, productID string) (OrderView, error)

	Dashboard(ctx context.Context) Dashboard

	User(ctx context.Context) models.User
	UpdateUser(ctx context.Context, p models.UserPatch) models.User
	Settings(ctx context.Context) models.Settings
	UpdateSettings(ctx context.Context, p models.SettingsPatch) models.Settings

	DescribeProduct(ctx context.Context, productName, keywords string) string
	ForecastStock(ctx context.Context) string
	SummarizeOrders(ctx context.Context) string

	Activity(ctx context.Context, limit int) ([]journal.Entry, error)
}

// Assistant is the text generation gateway.
type Assistant interface {
	GenerateDescription(ctx context.Context, productName, keywords string) string
	ForecastStock(ctx context.Context, products []models.Product, orders []models.Order) string
	SummarizeOrders(ctx context.Context, orders []models.Order) string
}
