package service

import (
	"context"

	"void-shop/internal/catalog"
	"void-shop/internal/model"
)

// InventoryService defines read-only projections over the inventory store,
// plus boot-time seeding. Reads are advisory for UI state and are not used
// to gate the purchase decision.
type InventoryService interface {
	// ListInventory returns the full inventory keyed by product ID.
	ListInventory(ctx context.Context) (map[string]model.InventoryEntry, error)

	// GetProduct retrieves a single product, or model.ErrProductNotFound.
	GetProduct(ctx context.Context, id string) (*model.Product, error)

	// CheckAvailability reports whether a product can currently be bought.
	// Unknown IDs are reported as permanently sold out, not as an error.
	CheckAvailability(ctx context.Context, id string) (model.Availability, error)

	// SeedIfEmpty populates an empty store from the seed catalog.
	SeedIfEmpty(ctx context.Context, seed []catalog.SeedProduct) error
}

// PurchaseService defines the transactional purchase operation.
type PurchaseService interface {
	// Purchase atomically checks quantity > 0 and decrements it by one.
	// Errors: model.ErrProductNotFound, model.ErrProductSoldOut,
	// model.ErrTransactionFailed.
	Purchase(ctx context.Context, id string) (*model.PurchaseResult, error)
}

// AdminService defines inventory mutations outside the purchase path.
type AdminService interface {
	// ResetAll sets every product's quantity back to the default.
	ResetAll(ctx context.Context) error

	// SetQuantity overwrites a product's quantity. Errors:
	// model.ErrInvalidQuantity, model.ErrProductNotFound.
	SetQuantity(ctx context.Context, id string, quantity int) (*model.Product, error)
}
