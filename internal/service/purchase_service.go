package service

import (
	"context"
	"fmt"

	"void-shop/internal/model"
	"void-shop/internal/repository"

	"github.com/rs/zerolog"
)

// purchaseService implements PurchaseService.
type purchaseService struct {
	repo   repository.InventoryRepository
	logger zerolog.Logger
}

// NewPurchaseService creates a new purchase service.
func NewPurchaseService(repo repository.InventoryRepository, logger zerolog.Logger) PurchaseService {
	return &purchaseService{
		repo:   repo,
		logger: logger.With().Str("service", "purchase").Logger(),
	}
}

// Purchase atomically checks quantity > 0 and decrements it by one. The
// row lock taken by GetByIDForUpdate serialises concurrent purchases of
// the same product: a second transaction blocks until the first commits
// and then reads the decremented quantity.
func (s *purchaseService) Purchase(ctx context.Context, id string) (*model.PurchaseResult, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to begin purchase transaction")
		return nil, model.ErrTransactionFailed
	}

	// Ensure the transaction is rolled back on any error path
	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	product, err := s.repo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to read product in transaction")
		return nil, model.ErrTransactionFailed
	}

	if product == nil {
		s.logger.Debug().Str("product_id", id).Msg("purchase attempted for unknown product")
		return nil, model.ErrProductNotFound
	}

	if product.Quantity <= 0 {
		s.logger.Info().Str("product_id", id).Msg("purchase attempted for sold out product")
		return nil, model.ErrProductSoldOut
	}

	updated, err := s.repo.DecrementQuantityTx(ctx, tx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to decrement quantity")
		return nil, model.ErrTransactionFailed
	}

	if err := tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to commit purchase transaction")
		return nil, model.ErrTransactionFailed
	}
	committed = true

	s.logger.Info().
		Str("product_id", id).
		Int("new_quantity", updated.Quantity).
		Bool("sold_out", updated.SoldOut()).
		Msg("purchase completed")

	return &model.PurchaseResult{
		Success:     true,
		NewQuantity: updated.Quantity,
		SoldOut:     updated.SoldOut(),
		Message:     fmt.Sprintf("%s purchased successfully", updated.Name),
	}, nil
}
