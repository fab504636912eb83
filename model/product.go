package models

import "github.com/shopspring/decimal"

// Product is a catalogue entry. Price and Stock are not range checked.
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	SKU      string          `json:"sku"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	ImageURL string          `json:"image_url"`
}

// NewProduct is a product that has not been assigned an id yet.
type NewProduct struct {
	Name     string          `json:"name"`
	SKU      string          `json:"sku"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	ImageURL string          `json:"image_url"`
}

// WithID returns the product with the given id attached.
func (n NewProduct) WithID(id string) Product {
	return Product{
		ID:       id,
		Name:     n.Name,
		SKU:      n.SKU,
		Category: n.Category,
		Price:    n.Price,
		Stock:    n.Stock,
		ImageURL: n.ImageURL,
	}
}

// DeletedProductName is shown in place of a product that no longer exists.
const DeletedProductName = "Produit Supprimé"
