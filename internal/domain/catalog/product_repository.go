package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindByBrand finds all products of a specific brand
	FindByBrand(ctx context.Context, brand string, filter shared.Filter) ([]Product, error)

	// FindByStockLevel finds all products whose current stock classifies
	// at the given level
	FindByStockLevel(ctx context.Context, level StockLevel) ([]Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// ListBrands returns the distinct brand names in the catalog
	ListBrands(ctx context.Context) ([]string, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// SaveWithLock updates a product with optimistic locking
	SaveWithLock(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
