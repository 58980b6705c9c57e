package main

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
)

type seedProduct struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// main writes a sample seed catalog to data/catalog.json, matching the shape
// SEED_CATALOG_FILE expects.
func main() {
	dataDir := "data"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	catalog := []seedProduct{
		{ProductID: "sweater", Name: "SWEATER", Quantity: 1, Price: 65.00},
		{ProductID: "triptych", Name: "TRIPTYCH", Quantity: 1, Price: 50.00},
	}

	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode catalog: %v", err)
	}

	path := filepath.Join(dataDir, "catalog.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", path, err)
	}

	log.Printf("Wrote %d products to %s", len(catalog), path)
}
