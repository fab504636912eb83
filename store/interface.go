package store

import models "inventory-dashboard/model"

// Store owns products, orders, the user and the settings.
// Every method is synchronous and visible to the next read.
type Store interface {
	ListProducts() []models.Product
	GetProductByID(id string) (models.Product, bool)
	AddProduct(p models.NewProduct) models.Product
	UpdateProduct(p models.Product) error
	DeleteProduct(id string) error

	ListOrders() []models.Order
	GetOrderByID(id string) (models.Order, bool)
	AddOrder(o models.NewOrder) models.Order
	UpdateOrder(o models.Order) (models.Order, error)
	DeleteOrder(id string) error
	UpdateOrderStatus(id string, status models.OrderStatus) (models.Order, error)
	AddOrderItem(orderID, productID string, qty int) (models.Order, error)
	RemoveOrderItem(orderID, productID string) (models.Order, error)

	User() models.User
	UpdateUser(p models.UserPatch) models.User
	Settings() models.Settings
	UpdateSettings(p models.SettingsPatch) models.Settings
}
