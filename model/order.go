package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidQuantity is returned when an item is added with a quantity <= 0.
var ErrInvalidQuantity = errors.New("quantity must be > 0")

type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

var statusLabels = map[OrderStatus]string{
	StatusPending:    "En attente",
	StatusProcessing: "En traitement",
	StatusShipped:    "Expédiée",
	StatusDelivered:  "Livrée",
	StatusCancelled:  "Annulée",
}

// Statuses lists every status in lifecycle order.
func Statuses() []OrderStatus {
	return []OrderStatus{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}
}

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label is the French name the dashboard displays.
func (s OrderStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// ParseOrderStatus accepts either the status value or its label.
func ParseOrderStatus(v string) (OrderStatus, error) {
	for s, label := range statusLabels {
		if v == string(s) || v == label {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown order status %q", v)
}

// OrderItem references a product. Price is frozen when the item is added.
type OrderItem struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Order struct {
	ID           string          `json:"id"`
	CustomerName string          `json:"customer_name"`
	Date         time.Time       `json:"date"`
	Status       OrderStatus     `json:"status"`
	Items        []OrderItem     `json:"items"`
	Total        decimal.Decimal `json:"total"`
}

// NewOrder is an order without id or total; both are assigned by the store.
type NewOrder struct {
	CustomerName string      `json:"customer_name"`
	Date         time.Time   `json:"date"`
	Status       OrderStatus `json:"status"`
	Items        []OrderItem `json:"items"`
}

// Build attaches id and a freshly computed total. Duplicate product
// lines are merged.
func (n NewOrder) Build(id string) Order {
	items := MergeItems(n.Items)
	return Order{
		ID:           id,
		CustomerName: n.CustomerName,
		Date:         n.Date,
		Status:       n.Status,
		Items:        items,
		Total:        OrderTotal(items),
	}
}

// OrderTotal sums price x quantity over items.
func OrderTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// AddItem adds qty of product to items. An existing line for the same
// product has its quantity increased and keeps the price it was added at.
func AddItem(items []OrderItem, product Product, qty int) ([]OrderItem, error) {
	if qty <= 0 {
		return items, ErrInvalidQuantity
	}
	out := CloneItems(items)
	for i := range out {
		if out[i].ProductID == product.ID {
			out[i].Quantity += qty
			return out, nil
		}
	}
	return append(out, OrderItem{ProductID: product.ID, Quantity: qty, Price: product.Price}), nil
}

// MergeItems returns a copy of items with one line per product. Quantities
// of repeated lines are summed into the first line, which keeps its price.
func MergeItems(items []OrderItem) []OrderItem {
	out := make([]OrderItem, 0, len(items))
	seen := make(map[string]int, len(items))
	for _, it := range items {
		if i, ok := seen[it.ProductID]; ok {
			out[i].Quantity += it.Quantity
			continue
		}
		seen[it.ProductID] = len(out)
		out = append(out, it)
	}
	return out
}

// RemoveItem drops the line for productID, if any.
func RemoveItem(items []OrderItem, productID string) []OrderItem {
	out := make([]OrderItem, 0, len(items))
	for _, it := range items {
		if it.ProductID != productID {
			out = append(out, it)
		}
	}
	return out
}

func CloneItems(items []OrderItem) []OrderItem {
	if items == nil {
		return []OrderItem{}
	}
	out := make([]OrderItem, len(items))
	copy(out, items)
	return out
}

// Clone returns a copy that shares no slices with o.
func (o Order) Clone() Order {
	o.Items = CloneItems(o.Items)
	return o
}
