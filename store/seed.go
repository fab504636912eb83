package store

import (
	"time"

	models "inventory-dashboard/model"

	"github.com/shopspring/decimal"
)

// Seed replaces the store contents with the demo catalogue, orders, user
// and settings.
func (s *MemoryStore) Seed() {
	price := decimal.RequireFromString
	products := []models.Product{
		{ID: "p1", Name: "T-Shirt en Coton Bio", SKU: "TS-CB-M-BLK", Category: "Vêtements", Price: price("29.99"), Stock: 150, ImageURL: "https://picsum.photos/seed/p1/400/400"},
		{ID: "p2", Name: "Tasse à Café Isotherme", SKU: "TC-ISO-500-BLU", Category: "Accessoires", Price: price("24.50"), Stock: 80, ImageURL: "https://picsum.photos/seed/p2/400/400"},
		{ID: "p3", Name: "Casque Audio Bluetooth", SKU: "CA-BT-NC-GRY", Category: "Électronique", Price: price("199.00"), Stock: 45, ImageURL: "https://picsum.photos/seed/p3/400/400"},
		{ID: "p4", Name: "Sac à Dos Urbain", SKU: "SD-URB-25L-GRN", Category: "Sacs", Price: price("75.00"), Stock: 15, ImageURL: "https://picsum.photos/seed/p4/400/400"},
		{ID: "p5", Name: "Gourde Inox 1L", SKU: "GD-INOX-1L-SLV", Category: "Accessoires", Price: price("19.90"), Stock: 200, ImageURL: "https://picsum.photos/seed/p5/400/400"},
		{ID: "p6", Name: "Carnet de Notes Premium", SKU: "CN-PREM-A5-BRW", Category: "Papeterie", Price: price("15.00"), Stock: 8, ImageURL: "https://picsum.photos/seed/p6/400/400"},
	}

	item := func(productID string, qty int, p string) models.OrderItem {
		return models.OrderItem{ProductID: productID, Quantity: qty, Price: price(p)}
	}
	orders := []models.Order{
		models.NewOrder{CustomerName: "Alice Martin", Date: seedDate("2024-07-20T10:30:00Z"), Status: models.StatusDelivered,
			Items: []models.OrderItem{item("p1", 2, "29.99"), item("p2", 1, "24.50")}}.Build("o1"),
		models.NewOrder{CustomerName: "Bob Dubois", Date: seedDate("2024-07-21T14:00:00Z"), Status: models.StatusShipped,
			Items: []models.OrderItem{item("p3", 1, "199.00")}}.Build("o2"),
		models.NewOrder{CustomerName: "Claire Petit", Date: seedDate("2024-07-22T09:15:00Z"), Status: models.StatusProcessing,
			Items: []models.OrderItem{item("p4", 1, "75.00"), item("p5", 2, "19.90")}}.Build("o3"),
		models.NewOrder{CustomerName: "David Garcia", Date: seedDate("2024-07-22T11:45:00Z"), Status: models.StatusPending,
			Items: []models.OrderItem{item("p6", 3, "15.00")}}.Build("o4"),
		models.NewOrder{CustomerName: "Eva Lambert", Date: seedDate("2024-07-20T18:00:00Z"), Status: models.StatusCancelled,
			Items: []models.OrderItem{item("p1", 1, "29.99")}}.Build("o5"),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
	s.orders = orders
	s.user = models.User{
		ID:        "u1",
		Name:      "Alexandre Dubois",
		Email:     "alex.dubois@example.com",
		AvatarURL: "https://i.pravatar.cc/150?u=a042581f4e29026704d",
		Role:      "Administrateur",
	}
	s.settings = models.Settings{
		Theme:         models.ThemeLight,
		Notifications: models.Notifications{LowStock: true, WeeklySummary: false},
	}
}

func seedDate(v string) time.Time {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		panic(err)
	}
	return t
}
