package model

import "time"

// Product represents a storefront product and its current stock level.
type Product struct {
	ProductID string    `json:"productId" db:"product_id"`
	Name      string    `json:"name" db:"name"`
	Quantity  int       `json:"quantity" db:"quantity"`
	Price     float64   `json:"price" db:"price"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// SoldOut reports whether the product has no remaining stock.
func (p *Product) SoldOut() bool {
	return p.Quantity == 0
}

// InventoryEntry is the per-product value in a full inventory listing.
type InventoryEntry struct {
	Quantity int     `json:"quantity"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
}

// Availability is the advisory availability projection for a product.
// Unknown product IDs are reported as permanently sold out rather than
// as an error.
type Availability struct {
	Available bool `json:"available"`
	SoldOut   bool `json:"soldOut"`
	Quantity  int  `json:"quantity"`
}

// PurchaseResult is the outcome of a purchase transaction.
type PurchaseResult struct {
	Success     bool   `json:"success"`
	NewQuantity int    `json:"newQuantity"`
	SoldOut     bool   `json:"soldOut"`
	Message     string `json:"message"`
}
