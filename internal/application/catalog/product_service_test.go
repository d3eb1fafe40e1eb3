package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/catalog"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/orderdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByBrand(ctx context.Context, brand string, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, brand, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByStockLevel(ctx context.Context, level catalog.StockLevel) ([]catalog.Product, error) {
	args := m.Called(ctx, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) ListBrands(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func newProductService() (*ProductService, *MockProductRepository) {
	repo := new(MockProductRepository)
	return NewProductService(repo), repo
}

func createCatalogProduct(t *testing.T, name, brand string, rate float64, stock int) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(name, brand, "Cycling", valueobject.NewMoneyUSDFromFloat(rate), stock)
	require.NoError(t, err)
	product.ClearDomainEvents()
	return product
}

func TestProductService_Create_Success(t *testing.T) {
	service, repo := newProductService()

	ctx := context.Background()
	repo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

	result, err := service.Create(ctx, CreateProductRequest{
		Name:  "Road Bike",
		Brand: "Giant",
		Rate:  decimal.NewFromInt(1200),
		Stock: 25,
	})

	require.NoError(t, err)
	assert.Equal(t, "Road Bike", result.Name)
	assert.Equal(t, "Giant", result.Brand)
	assert.Equal(t, 25, result.Stock)
	assert.Equal(t, "in_stock", result.StockLevel)
	assert.True(t, result.Rate.Equal(decimal.NewFromInt(1200)))
	repo.AssertExpectations(t)
}

func TestProductService_Create_InvalidRate(t *testing.T) {
	service, repo := newProductService()

	ctx := context.Background()

	result, err := service.Create(ctx, CreateProductRequest{
		Name:  "Road Bike",
		Brand: "Giant",
		Rate:  decimal.NewFromInt(-5),
	})

	assert.Nil(t, result)
	assert.Error(t, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProductService_List_ByBrand(t *testing.T) {
	service, repo := newProductService()

	ctx := context.Background()
	product := createCatalogProduct(t, "Road Bike", "Giant", 1200, 25)

	repo.On("FindByBrand", ctx, "Giant", mock.AnythingOfType("shared.Filter")).
		Return([]catalog.Product{*product}, nil)
	repo.On("Count", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(1), nil)

	results, total, err := service.List(ctx, ProductListFilter{Brand: "Giant"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, results, 1)
	assert.Equal(t, "Giant", results[0].Brand)
	repo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
}

func TestProductService_Update_RateAndDetails(t *testing.T) {
	service, repo := newProductService()

	ctx := context.Background()
	product := createCatalogProduct(t, "Road Bike", "Giant", 1200, 25)
	name := "Road Bike Pro"
	rate := decimal.NewFromInt(1350)

	repo.On("FindByID", ctx, product.ID).Return(product, nil)
	repo.On("SaveWithLock", ctx, product).Return(nil)

	result, err := service.Update(ctx, product.ID, UpdateProductRequest{Name: &name, Rate: &rate})

	require.NoError(t, err)
	assert.Equal(t, "Road Bike Pro", result.Name)
	assert.True(t, result.Rate.Equal(rate))
	repo.AssertExpectations(t)
}

func TestProductService_UpdateStock(t *testing.T) {
	tests := []struct {
		name      string
		stock     int
		wantStock int
		wantLevel string
	}{
		{name: "restock into in_stock", stock: 40, wantStock: 40, wantLevel: "in_stock"},
		{name: "drop below threshold", stock: 4, wantStock: 4, wantLevel: "low_stock"},
		{name: "exhausted", stock: 0, wantStock: 0, wantLevel: "out_of_stock"},
		{name: "negative settles at zero", stock: -3, wantStock: 0, wantLevel: "out_of_stock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newProductService()

			ctx := context.Background()
			product := createCatalogProduct(t, "Road Bike", "Giant", 1200, 25)

			repo.On("FindByID", ctx, product.ID).Return(product, nil)
			repo.On("SaveWithLock", ctx, product).Return(nil)

			result, err := service.UpdateStock(ctx, product.ID, UpdateStockRequest{Stock: tt.stock})

			require.NoError(t, err)
			assert.Equal(t, tt.wantStock, result.Stock)
			assert.Equal(t, tt.wantLevel, result.StockLevel)
		})
	}
}

func TestProductService_UpdateStock_NotFound(t *testing.T) {
	service, repo := newProductService()

	ctx := context.Background()
	productID := uuid.New()

	repo.On("FindByID", ctx, productID).Return(nil, shared.ErrNotFound)

	result, err := service.UpdateStock(ctx, productID, UpdateStockRequest{Stock: 10})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	repo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

func TestProductService_ListLowStock(t *testing.T) {
	service, repo := newProductService()

	ctx := context.Background()
	product := createCatalogProduct(t, "Trail Helmet", "Giro", 45, 3)

	repo.On("FindByStockLevel", ctx, catalog.StockLevelLow).
		Return([]catalog.Product{*product}, nil)

	alerts, err := service.ListLowStock(ctx)

	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "Trail Helmet", alerts[0].Name)
	assert.Equal(t, "low_stock", alerts[0].StockLevel)
}

func TestProductService_ListOutOfStock(t *testing.T) {
	service, repo := newProductService()

	ctx := context.Background()
	product := createCatalogProduct(t, "Trail Helmet", "Giro", 45, 0)

	repo.On("FindByStockLevel", ctx, catalog.StockLevelOutOfStock).
		Return([]catalog.Product{*product}, nil)

	alerts, err := service.ListOutOfStock(ctx)

	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "out_of_stock", alerts[0].StockLevel)
}

func TestProductService_ListBrands(t *testing.T) {
	service, repo := newProductService()

	ctx := context.Background()
	repo.On("ListBrands", ctx).Return([]string{"Giant", "Giro", "Trek"}, nil)

	brands, err := service.ListBrands(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"Giant", "Giro", "Trek"}, brands)
}

func TestProductService_Delete(t *testing.T) {
	t.Run("deletes an existing product", func(t *testing.T) {
		service, repo := newProductService()

		ctx := context.Background()
		product := createCatalogProduct(t, "Road Bike", "Giant", 1200, 25)

		repo.On("FindByID", ctx, product.ID).Return(product, nil)
		repo.On("Delete", ctx, product.ID).Return(nil)

		err := service.Delete(ctx, product.ID)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("unknown product", func(t *testing.T) {
		service, repo := newProductService()

		ctx := context.Background()
		productID := uuid.New()

		repo.On("FindByID", ctx, productID).Return(nil, shared.ErrNotFound)

		err := service.Delete(ctx, productID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
