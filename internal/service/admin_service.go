package service

import (
	"context"
	"fmt"

	"void-shop/internal/model"
	"void-shop/internal/repository"

	"github.com/rs/zerolog"
)

// adminService implements AdminService.
type adminService struct {
	repo            repository.InventoryRepository
	defaultQuantity int
	logger          zerolog.Logger
}

// NewAdminService creates a new admin mutation service.
func NewAdminService(repo repository.InventoryRepository, defaultQuantity int, logger zerolog.Logger) AdminService {
	return &adminService{
		repo:            repo,
		defaultQuantity: defaultQuantity,
		logger:          logger.With().Str("service", "admin").Logger(),
	}
}

// ResetAll sets every product's quantity back to the default.
func (s *adminService) ResetAll(ctx context.Context) error {
	if err := s.repo.ResetAll(ctx, s.defaultQuantity); err != nil {
		s.logger.Error().Err(err).Msg("failed to reset inventory")
		return fmt.Errorf("failed to reset inventory: %w", err)
	}

	s.logger.Info().Int("quantity", s.defaultQuantity).Msg("inventory reset")

	return nil
}

// SetQuantity overwrites a product's quantity.
func (s *adminService) SetQuantity(ctx context.Context, id string, quantity int) (*model.Product, error) {
	if quantity < 0 {
		s.logger.Warn().
			Str("product_id", id).
			Int("quantity", quantity).
			Msg("invalid quantity")
		return nil, model.ErrInvalidQuantity
	}

	product, err := s.repo.SetQuantity(ctx, id, quantity)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to set quantity")
		return nil, fmt.Errorf("failed to set quantity: %w", err)
	}

	if product == nil {
		s.logger.Debug().Str("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	s.logger.Info().
		Str("product_id", id).
		Int("quantity", product.Quantity).
		Msg("quantity updated")

	return product, nil
}
