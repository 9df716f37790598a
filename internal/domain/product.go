package domain

import "time"

// ProductStatus represents lifecycle states for a catalogue entry.
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusArchived ProductStatus = "ARCHIVED"
)

// Product is a catalogue entry managed through the admin area.
type Product struct {
	ID          string
	SKU         string
	Name        string
	Description string
	PriceCents  int64
	Category    string
	ImageURL    string
	Status      ProductStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
