package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading JSON catalog files.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based catalog loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "catalog-loader").Logger(),
	}
}

// Load reads a JSON catalog file containing an array of seed products.
func (l *fileLoader) Load(ctx context.Context, filePath string) ([]SeedProduct, error) {
	l.logger.Info().Str("file", filePath).Msg("loading catalog file")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open catalog file")
		return nil, fmt.Errorf("failed to open catalog file %s: %w", filePath, err)
	}
	defer file.Close()

	products, err := decodeCatalog(file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to decode catalog file")
		return nil, fmt.Errorf("failed to decode catalog file %s: %w", filePath, err)
	}

	l.logger.Info().
		Str("file", filePath).
		Int("products_loaded", len(products)).
		Msg("catalog file loaded successfully")

	return products, nil
}

// decodeCatalog decodes a JSON array of seed products and validates each
// entry.
func decodeCatalog(r io.Reader) ([]SeedProduct, error) {
	var products []SeedProduct
	if err := json.NewDecoder(r).Decode(&products); err != nil {
		return nil, err
	}

	for i, p := range products {
		if p.ProductID == "" {
			return nil, fmt.Errorf("catalog entry %d: productId is required", i)
		}
		if p.Name == "" {
			return nil, fmt.Errorf("catalog entry %d: name is required", i)
		}
		if p.Quantity < 0 {
			return nil, fmt.Errorf("catalog entry %d: quantity cannot be negative", i)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("catalog entry %d: price cannot be negative", i)
		}
	}

	return products, nil
}
