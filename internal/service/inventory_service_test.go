package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"void-shop/internal/catalog"
	"void-shop/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockInventoryRepository is a mock implementation of InventoryRepository.
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockInventoryRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockInventoryRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockInventoryRepository) InsertProducts(ctx context.Context, products []model.Product) error {
	args := m.Called(ctx, products)
	return args.Error(0)
}

func (m *MockInventoryRepository) SetQuantity(ctx context.Context, id string, quantity int) (*model.Product, error) {
	args := m.Called(ctx, id, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockInventoryRepository) ResetAll(ctx context.Context, defaultQuantity int) error {
	args := m.Called(ctx, defaultQuantity)
	return args.Error(0)
}

func (m *MockInventoryRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInventoryRepository) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id string) (*model.Product, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockInventoryRepository) DecrementQuantityTx(ctx context.Context, tx pgx.Tx, id string) (*model.Product, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func TestInventoryService_ListInventory(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockInventoryRepository)
		mockRepo.On("GetAll", ctx).Return([]model.Product{
			{ProductID: "sweater", Name: "SWEATER", Quantity: 1, Price: 65, UpdatedAt: time.Now()},
			{ProductID: "triptych", Name: "TRIPTYCH", Quantity: 0, Price: 50, UpdatedAt: time.Now()},
		}, nil)

		svc := NewInventoryService(mockRepo, logger)
		inventory, err := svc.ListInventory(ctx)

		require.NoError(t, err)
		require.Len(t, inventory, 2)
		assert.Equal(t, model.InventoryEntry{Quantity: 1, Name: "SWEATER", Price: 65}, inventory["sweater"])
		assert.Equal(t, model.InventoryEntry{Quantity: 0, Name: "TRIPTYCH", Price: 50}, inventory["triptych"])
		mockRepo.AssertExpectations(t)
	})

	t.Run("Empty store yields empty map", func(t *testing.T) {
		mockRepo := new(MockInventoryRepository)
		mockRepo.On("GetAll", ctx).Return([]model.Product{}, nil)

		svc := NewInventoryService(mockRepo, logger)
		inventory, err := svc.ListInventory(ctx)

		require.NoError(t, err)
		assert.NotNil(t, inventory)
		assert.Empty(t, inventory)
	})

	t.Run("Repository error", func(t *testing.T) {
		mockRepo := new(MockInventoryRepository)
		mockRepo.On("GetAll", ctx).Return(nil, errors.New("database error"))

		svc := NewInventoryService(mockRepo, logger)
		_, err := svc.ListInventory(ctx)

		require.Error(t, err)
	})
}

func TestInventoryService_GetProduct(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	testProduct := &model.Product{
		ProductID: "sweater",
		Name:      "SWEATER",
		Quantity:  1,
		Price:     65,
		UpdatedAt: time.Now(),
	}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockInventoryRepository)
		mockRepo.On("GetByID", ctx, "sweater").Return(testProduct, nil)

		svc := NewInventoryService(mockRepo, logger)
		product, err := svc.GetProduct(ctx, "sweater")

		require.NoError(t, err)
		assert.Equal(t, testProduct, product)
	})

	t.Run("Not found", func(t *testing.T) {
		mockRepo := new(MockInventoryRepository)
		mockRepo.On("GetByID", ctx, "unknown").Return(nil, nil)

		svc := NewInventoryService(mockRepo, logger)
		_, err := svc.GetProduct(ctx, "unknown")

		assert.ErrorIs(t, err, model.ErrProductNotFound)
	})

	t.Run("Empty ID", func(t *testing.T) {
		mockRepo := new(MockInventoryRepository)

		svc := NewInventoryService(mockRepo, logger)
		_, err := svc.GetProduct(ctx, "")

		assert.ErrorIs(t, err, model.ErrProductNotFound)
		mockRepo.AssertNotCalled(t, "GetByID")
	})

	t.Run("Repository error", func(t *testing.T) {
		mockRepo := new(MockInventoryRepository)
		mockRepo.On("GetByID", ctx, "sweater").Return(nil, errors.New("database error"))

		svc := NewInventoryService(mockRepo, logger)
		_, err := svc.GetProduct(ctx, "sweater")

		require.Error(t, err)
		assert.NotErrorIs(t, err, model.ErrProductNotFound)
	})
}

func TestInventoryService_CheckAvailability(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	tests := []struct {
		name     string
		product  *model.Product
		expected model.Availability
	}{
		{
			name:     "In stock",
			product:  &model.Product{ProductID: "sweater", Quantity: 3},
			expected: model.Availability{Available: true, SoldOut: false, Quantity: 3},
		},
		{
			name:     "Sold out",
			product:  &model.Product{ProductID: "sweater", Quantity: 0},
			expected: model.Availability{Available: false, SoldOut: true, Quantity: 0},
		},
		{
			name:     "Unknown product behaves as permanently sold out",
			product:  nil,
			expected: model.Availability{Available: false, SoldOut: true, Quantity: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockInventoryRepository)
			if tt.product == nil {
				mockRepo.On("GetByID", ctx, mock.Anything).Return(nil, nil)
			} else {
				mockRepo.On("GetByID", ctx, tt.product.ProductID).Return(tt.product, nil)
			}

			svc := NewInventoryService(mockRepo, logger)
			availability, err := svc.CheckAvailability(ctx, "sweater")

			require.NoError(t, err)
			assert.Equal(t, tt.expected, availability)
		})
	}

	t.Run("Repository error propagates", func(t *testing.T) {
		mockRepo := new(MockInventoryRepository)
		mockRepo.On("GetByID", ctx, "sweater").Return(nil, errors.New("database error"))

		svc := NewInventoryService(mockRepo, logger)
		_, err := svc.CheckAvailability(ctx, "sweater")

		require.Error(t, err)
	})
}

func TestInventoryService_SeedIfEmpty(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	seed := catalog.Default()

	t.Run("Seeds an empty store", func(t *testing.T) {
		mockRepo := new(MockInventoryRepository)
		mockRepo.On("Count", ctx).Return(0, nil)
		mockRepo.On("InsertProducts", ctx, mock.MatchedBy(func(products []model.Product) bool {
			return len(products) == 2 &&
				products[0].ProductID == "sweater" &&
				products[1].ProductID == "triptych"
		})).Return(nil)

		svc := NewInventoryService(mockRepo, logger)
		err := svc.SeedIfEmpty(ctx, seed)

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Skips a populated store", func(t *testing.T) {
		mockRepo := new(MockInventoryRepository)
		mockRepo.On("Count", ctx).Return(2, nil)

		svc := NewInventoryService(mockRepo, logger)
		err := svc.SeedIfEmpty(ctx, seed)

		require.NoError(t, err)
		mockRepo.AssertNotCalled(t, "InsertProducts")
	})

	t.Run("Count error", func(t *testing.T) {
		mockRepo := new(MockInventoryRepository)
		mockRepo.On("Count", ctx).Return(0, errors.New("database error"))

		svc := NewInventoryService(mockRepo, logger)
		err := svc.SeedIfEmpty(ctx, seed)

		require.Error(t, err)
	})
}
