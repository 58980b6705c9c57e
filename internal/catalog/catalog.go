// Package catalog loads the seed product catalog used to initialise the
// inventory store on first boot.
package catalog

import "context"

// SeedProduct is one entry in a seed catalog document.
type SeedProduct struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Loader loads a seed catalog from a named source (file path or object key).
type Loader interface {
	Load(ctx context.Context, path string) ([]SeedProduct, error)
}

// Default returns the built-in catalog used when no external catalog is
// configured.
func Default() []SeedProduct {
	return []SeedProduct{
		{ProductID: "sweater", Name: "SWEATER", Quantity: 1, Price: 65},
		{ProductID: "triptych", Name: "TRIPTYCH", Quantity: 1, Price: 50},
	}
}
