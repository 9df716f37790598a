package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/catalog-admin/internal/domain"
)

// InventoryRepository defines persistence access for stock levels.
type InventoryRepository interface {
	List(ctx context.Context, limit, offset int) ([]domain.InventoryItem, error)
	GetBySKU(ctx context.Context, sku string) (*domain.InventoryItem, error)
	Adjust(ctx context.Context, sku string, delta int) (*domain.InventoryItem, error)
}

type inventoryRepository struct {
	pool *pgxpool.Pool
}

// NewInventoryRepository returns a Postgres-backed implementation.
func NewInventoryRepository(pool *pgxpool.Pool) InventoryRepository {
	return &inventoryRepository{pool: pool}
}

func (r *inventoryRepository) List(ctx context.Context, limit, offset int) ([]domain.InventoryItem, error) {
	const query = `
        SELECT sku, quantity, updated_at
        FROM inventory ORDER BY sku LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.InventoryItem
	for rows.Next() {
		var item domain.InventoryItem
		if err := rows.Scan(&item.SKU, &item.Quantity, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *inventoryRepository) GetBySKU(ctx context.Context, sku string) (*domain.InventoryItem, error) {
	const query = `SELECT sku, quantity, updated_at FROM inventory WHERE sku=$1`

	var item domain.InventoryItem
	if err := r.pool.QueryRow(ctx, query, sku).Scan(&item.SKU, &item.Quantity, &item.UpdatedAt); err != nil {
		return nil, err
	}
	return &item, nil
}

// Adjust applies a signed delta atomically, clamping at zero.
func (r *inventoryRepository) Adjust(ctx context.Context, sku string, delta int) (*domain.InventoryItem, error) {
	const query = `
        UPDATE inventory
        SET quantity = GREATEST(quantity + $1, 0), updated_at = NOW()
        WHERE sku=$2
        RETURNING sku, quantity, updated_at`

	var item domain.InventoryItem
	if err := r.pool.QueryRow(ctx, query, delta, sku).Scan(&item.SKU, &item.Quantity, &item.UpdatedAt); err != nil {
		return nil, err
	}
	return &item, nil
}
