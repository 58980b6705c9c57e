package repository

import (
	"context"
	"fmt"

	"void-shop/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// inventoryRepository implements the InventoryRepository interface using
// PostgreSQL.
type inventoryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewInventoryRepository creates a new PostgreSQL-backed inventory repository.
func NewInventoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) InventoryRepository {
	return &inventoryRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "inventory").Logger(),
	}
}

// GetAll retrieves every product in the catalog.
func (r *inventoryRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT product_id, name, quantity, price, updated_at
		FROM products
		ORDER BY product_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		err := rows.Scan(&p.ProductID, &p.Name, &p.Quantity, &p.Price, &p.UpdatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *inventoryRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	query := `
		SELECT product_id, name, quantity, price, updated_at
		FROM products
		WHERE product_id = $1
	`

	var p model.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(&p.ProductID, &p.Name, &p.Quantity, &p.Price, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// Count returns the number of products in the store.
func (r *inventoryRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// InsertProducts inserts the given products.
func (r *inventoryRepository) InsertProducts(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}

	query := `
		INSERT INTO products (product_id, name, quantity, price, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	batch := &pgx.Batch{}
	for _, p := range products {
		batch.Queue(query, p.ProductID, p.Name, p.Quantity, p.Price, p.UpdatedAt)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(products); i++ {
		_, err := results.Exec()
		if err != nil {
			r.logger.Error().
				Err(err).
				Str("product_id", products[i].ProductID).
				Msg("failed to insert product")
			return fmt.Errorf("failed to insert product: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(products)).
		Msg("products inserted successfully")

	return nil
}

// SetQuantity overwrites a product's quantity and stamps updated_at.
func (r *inventoryRepository) SetQuantity(ctx context.Context, id string, quantity int) (*model.Product, error) {
	query := `
		UPDATE products
		SET quantity = $2, updated_at = CURRENT_TIMESTAMP
		WHERE product_id = $1
		RETURNING product_id, name, quantity, price, updated_at
	`

	var p model.Product
	err := r.pool.QueryRow(ctx, query, id, quantity).Scan(&p.ProductID, &p.Name, &p.Quantity, &p.Price, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to update quantity")
		return nil, fmt.Errorf("failed to update quantity: %w", err)
	}

	return &p, nil
}

// ResetAll sets every product's quantity to defaultQuantity.
func (r *inventoryRepository) ResetAll(ctx context.Context, defaultQuantity int) error {
	query := `
		UPDATE products
		SET quantity = $1, updated_at = CURRENT_TIMESTAMP
	`

	tag, err := r.pool.Exec(ctx, query, defaultQuantity)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to reset inventory")
		return fmt.Errorf("failed to reset inventory: %w", err)
	}

	r.logger.Info().
		Int64("rows", tag.RowsAffected()).
		Int("quantity", defaultQuantity).
		Msg("inventory reset")

	return nil
}

// BeginTx starts a new database transaction.
func (r *inventoryRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// GetByIDForUpdate retrieves a product within the transaction, holding its
// row lock until the transaction ends. A concurrent purchase of the same
// product blocks here until the first transaction commits or rolls back, so
// it can never observe the pre-decrement quantity.
func (r *inventoryRepository) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id string) (*model.Product, error) {
	query := `
		SELECT product_id, name, quantity, price, updated_at
		FROM products
		WHERE product_id = $1
		FOR UPDATE
	`

	var p model.Product
	err := tx.QueryRow(ctx, query, id).Scan(&p.ProductID, &p.Name, &p.Quantity, &p.Price, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to lock product row")
		return nil, fmt.Errorf("failed to lock product row: %w", err)
	}

	return &p, nil
}

// DecrementQuantityTx decrements a product's quantity by one within the
// transaction.
func (r *inventoryRepository) DecrementQuantityTx(ctx context.Context, tx pgx.Tx, id string) (*model.Product, error) {
	query := `
		UPDATE products
		SET quantity = quantity - 1, updated_at = CURRENT_TIMESTAMP
		WHERE product_id = $1
		RETURNING product_id, name, quantity, price, updated_at
	`

	var p model.Product
	err := tx.QueryRow(ctx, query, id).Scan(&p.ProductID, &p.Name, &p.Quantity, &p.Price, &p.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to decrement quantity")
		return nil, fmt.Errorf("failed to decrement quantity: %w", err)
	}

	return &p, nil
}
