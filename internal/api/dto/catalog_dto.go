package dto

import "github.com/spec-kit/catalog-admin/internal/domain"

// ProductRequest payload for creating or updating a catalogue entry.
type ProductRequest struct {
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
	Status      string `json:"status"`
}

// OrderStatusRequest payload for PUT /orders/:id/status.
type OrderStatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

// InventoryAdjustRequest payload for PUT /inventory/:sku.
type InventoryAdjustRequest struct {
	Delta int `json:"delta"`
}
