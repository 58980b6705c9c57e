package service

import (
	"context"
	"fmt"
	"time"

	"void-shop/internal/catalog"
	"void-shop/internal/model"
	"void-shop/internal/repository"

	"github.com/rs/zerolog"
)

// inventoryService implements InventoryService.
type inventoryService struct {
	repo   repository.InventoryRepository
	logger zerolog.Logger
}

// NewInventoryService creates a new inventory query service.
func NewInventoryService(repo repository.InventoryRepository, logger zerolog.Logger) InventoryService {
	return &inventoryService{
		repo:   repo,
		logger: logger.With().Str("service", "inventory").Logger(),
	}
}

// ListInventory returns the full inventory keyed by product ID.
func (s *inventoryService) ListInventory(ctx context.Context) (map[string]model.InventoryEntry, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list inventory")
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}

	inventory := make(map[string]model.InventoryEntry, len(products))
	for _, p := range products {
		inventory[p.ProductID] = model.InventoryEntry{
			Quantity: p.Quantity,
			Name:     p.Name,
			Price:    p.Price,
		}
	}

	s.logger.Debug().Int("count", len(inventory)).Msg("listed inventory")

	return inventory, nil
}

// GetProduct retrieves a single product by ID.
func (s *inventoryService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		s.logger.Warn().Msg("product ID is empty")
		return nil, model.ErrProductNotFound
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Str("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// CheckAvailability reports whether a product can currently be bought.
// Unknown IDs behave as permanently sold out.
func (s *inventoryService) CheckAvailability(ctx context.Context, id string) (model.Availability, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to check availability")
		return model.Availability{}, fmt.Errorf("failed to check availability: %w", err)
	}

	if product == nil {
		s.logger.Debug().Str("product_id", id).Msg("availability check for unknown product")
		return model.Availability{Available: false, SoldOut: true}, nil
	}

	return model.Availability{
		Available: product.Quantity > 0,
		SoldOut:   product.Quantity == 0,
		Quantity:  product.Quantity,
	}, nil
}

// SeedIfEmpty populates an empty store from the seed catalog.
func (s *inventoryService) SeedIfEmpty(ctx context.Context, seed []catalog.SeedProduct) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to check inventory size: %w", err)
	}

	if count > 0 {
		s.logger.Debug().Int("count", count).Msg("inventory already seeded")
		return nil
	}

	now := time.Now()
	products := make([]model.Product, len(seed))
	for i, sp := range seed {
		products[i] = model.Product{
			ProductID: sp.ProductID,
			Name:      sp.Name,
			Quantity:  sp.Quantity,
			Price:     sp.Price,
			UpdatedAt: now,
		}
	}

	if err := s.repo.InsertProducts(ctx, products); err != nil {
		s.logger.Error().Err(err).Int("count", len(products)).Msg("failed to seed inventory")
		return fmt.Errorf("failed to seed inventory: %w", err)
	}

	s.logger.Info().Int("count", len(products)).Msg("inventory initialised")

	return nil
}
