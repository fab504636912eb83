package handler

import (
	"fmt"
	"time"

	models "inventory-dashboard/model"

	"github.com/shopspring/decimal"
)

// --- request / response shapes ---

type productReq struct {
	Name     string          `json:"name"`
	SKU      string          `json:"sku"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	ImageURL string          `json:"image_url"`
}

func (r productReq) toNew() models.NewProduct {
	return models.NewProduct{
		Name:     r.Name,
		SKU:      r.SKU,
		Category: r.Category,
		Price:    r.Price,
		Stock:    r.Stock,
		ImageURL: r.ImageURL,
	}
}

type orderItemReq struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type orderReq struct {
	CustomerName string         `json:"customer_name"`
	Date         string         `json:"date"`
	Status       string         `json:"status,omitempty"`
	Items        []orderItemReq `json:"items"`
}

func (r orderReq) items() []models.OrderItem {
	out := make([]models.OrderItem, len(r.Items))
	for i, it := range r.Items {
		out[i] = models.OrderItem{ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price}
	}
	return out
}

type statusReq struct {
	Status string `json:"status"`
}

type addItemReq struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type descriptionReq struct {
	ProductName string `json:"product_name"`
	Keywords    string `json:"keywords"`
}

type textResp struct {
	Text string `json:"text"`
}

type errorResp struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// parseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q is not RFC 3339 or YYYY-MM-DD", v)
	}
	return t, nil
}

// parseStatus defaults to Pending when v is empty.
func parseStatus(v string) (models.OrderStatus, error) {
	if v == "" {
		return models.StatusPending, nil
	}
	return models.ParseOrderStatus(v)
}
