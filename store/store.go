package store

import (
	"slices"
	"sync"

	models "inventory-dashboard/model"

	"github.com/google/uuid"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps all state in process memory. It is lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	products []models.Product
	orders   []models.Order
	user     models.User
	settings models.Settings

	newID func(prefix string) string
}

// NewMemoryStore returns an empty store, or one loaded with the demo
// data set when seeded is true.
func NewMemoryStore(seeded bool) *MemoryStore {
	s := &MemoryStore{
		products: []models.Product{},
		orders:   []models.Order{},
		settings: models.Settings{Theme: models.ThemeLight},
		newID:    func(prefix string) string { return prefix + uuid.NewString() },
	}
	if seeded {
		s.Seed()
	}
	return s
}

// --- products ---

func (s *MemoryStore) ListProducts() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.products)
}

func (s *MemoryStore) GetProductByID(id string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.productIndex(id)
	if i < 0 {
		return models.Product{}, false
	}
	return s.products[i], true
}

// AddProduct appends p with a fresh id.
func (s *MemoryStore) AddProduct(p models.NewProduct) models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	product := p.WithID(s.newID("p"))
	s.products = append(s.products, product)
	return product
}

// UpdateProduct replaces the whole product with the same id.
func (s *MemoryStore) UpdateProduct(p models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.productIndex(p.ID)
	if i < 0 {
		return ErrProductNotFound
	}
	s.products[i] = p
	return nil
}

// DeleteProduct removes the product. Orders keep their items, which then
// point at a product that no longer exists.
func (s *MemoryStore) DeleteProduct(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.productIndex(id)
	if i < 0 {
		return ErrProductNotFound
	}
	s.products = slices.Delete(s.products, i, i+1)
	return nil
}

// --- orders ---

func (s *MemoryStore) ListOrders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Order, len(s.orders))
	for i, o := range s.orders {
		out[i] = o.Clone()
	}
	return out
}

func (s *MemoryStore) GetOrderByID(id string) (models.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.orderIndex(id)
	if i < 0 {
		return models.Order{}, false
	}
	return s.orders[i].Clone(), true
}

// AddOrder inserts o with a fresh id and computed total, then sorts all
// orders newest first.
func (s *MemoryStore) AddOrder(o models.NewOrder) models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	order := o.Build(s.newID("o"))
	s.orders = append([]models.Order{order}, s.orders...)
	s.sortOrders()
	return order.Clone()
}

// UpdateOrder replaces the order in place. Duplicate product lines are
// merged and the total is recomputed; the caller's total is ignored.
// Position is kept.
func (s *MemoryStore) UpdateOrder(o models.Order) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.orderIndex(o.ID)
	if i < 0 {
		return models.Order{}, ErrOrderNotFound
	}
	o.Items = models.MergeItems(o.Items)
	o.Total = models.OrderTotal(o.Items)
	s.orders[i] = o
	return o.Clone(), nil
}

func (s *MemoryStore) DeleteOrder(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.orderIndex(id)
	if i < 0 {
		return ErrOrderNotFound
	}
	s.orders = slices.Delete(s.orders, i, i+1)
	return nil
}

// UpdateOrderStatus only touches Status.
func (s *MemoryStore) UpdateOrderStatus(id string, status models.OrderStatus) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.orderIndex(id)
	if i < 0 {
		return models.Order{}, ErrOrderNotFound
	}
	s.orders[i].Status = status
	return s.orders[i].Clone(), nil
}

// AddOrderItem adds qty of a product to an order at the product's current
// price, merging with an existing line for that product.
func (s *MemoryStore) AddOrderItem(orderID, productID string, qty int) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.orderIndex(orderID)
	if i < 0 {
		return models.Order{}, ErrOrderNotFound
	}
	pi := s.productIndex(productID)
	if pi < 0 {
		return models.Order{}, ErrProductNotFound
	}
	items, err := models.AddItem(s.orders[i].Items, s.products[pi], qty)
	if err != nil {
		return models.Order{}, err
	}
	s.orders[i].Items = items
	s.orders[i].Total = models.OrderTotal(items)
	return s.orders[i].Clone(), nil
}

// RemoveOrderItem drops a line from an order. The product does not need
// to exist, so dangling lines can still be removed.
func (s *MemoryStore) RemoveOrderItem(orderID, productID string) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.orderIndex(orderID)
	if i < 0 {
		return models.Order{}, ErrOrderNotFound
	}
	s.orders[i].Items = models.RemoveItem(s.orders[i].Items, productID)
	s.orders[i].Total = models.OrderTotal(s.orders[i].Items)
	return s.orders[i].Clone(), nil
}

// --- user & settings ---

func (s *MemoryStore) User() models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *MemoryStore) UpdateUser(p models.UserPatch) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = s.user.Apply(p)
	return s.user
}

func (s *MemoryStore) Settings() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func (s *MemoryStore) UpdateSettings(p models.SettingsPatch) models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = s.settings.Apply(p)
	return s.settings
}

// --- helpers (caller holds mu) ---

func (s *MemoryStore) productIndex(id string) int {
	return slices.IndexFunc(s.products, func(p models.Product) bool { return p.ID == id })
}

func (s *MemoryStore) orderIndex(id string) int {
	return slices.IndexFunc(s.orders, func(o models.Order) bool { return o.ID == id })
}

func (s *MemoryStore) sortOrders() {
	slices.SortStableFunc(s.orders, func(a, b models.Order) int {
		return b.Date.Compare(a.Date)
	})
}
