package domain

import "time"

// InventoryItem tracks stock on hand for a SKU.
type InventoryItem struct {
	SKU       string
	Quantity  int
	UpdatedAt time.Time
}
