package repository

import (
	"context"

	"void-shop/internal/model"

	"github.com/jackc/pgx/v5"
)

// InventoryRepository defines the interface for inventory data access
// operations. Read methods return (nil, nil) when the product does not
// exist.
type InventoryRepository interface {
	// GetAll retrieves every product in the catalog.
	GetAll(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product by its ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// Count returns the number of products in the store.
	Count(ctx context.Context) (int, error)

	// InsertProducts inserts the given products. Used only for seeding an
	// empty store.
	InsertProducts(ctx context.Context, products []model.Product) error

	// SetQuantity overwrites a product's quantity and stamps updated_at,
	// returning the updated record.
	SetQuantity(ctx context.Context, id string, quantity int) (*model.Product, error)

	// ResetAll sets every product's quantity to defaultQuantity and stamps
	// updated_at.
	ResetAll(ctx context.Context, defaultQuantity int) error

	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// GetByIDForUpdate retrieves a product within the transaction, holding
	// its row lock until the transaction ends.
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id string) (*model.Product, error)

	// DecrementQuantityTx decrements a product's quantity by one within the
	// transaction and returns the updated record.
	DecrementQuantityTx(ctx context.Context, tx pgx.Tx, id string) (*model.Product, error)
}
