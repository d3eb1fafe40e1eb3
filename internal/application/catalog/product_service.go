package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/catalog"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/orderdesk/backend/internal/domain/shared/valueobject"
)

// ProductService handles catalog and stock tracking operations
type ProductService struct {
	productRepo    catalog.ProductRepository
	eventPublisher shared.EventPublisher
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
	}
}

// SetEventPublisher sets the event publisher for stock alerts
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create adds a new product to the catalog
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	rate, err := valueobject.NewMoney(req.Rate, valueobject.DefaultCurrency)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(req.Name, req.Brand, req.Category, rate, req.Stock)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "name"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	var (
		products []catalog.Product
		err      error
	)
	if filter.Brand != "" {
		products, err = s.productRepo.FindByBrand(ctx, filter.Brand, domainFilter)
		domainFilter.Filters["brand"] = filter.Brand
	} else {
		products, err = s.productRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductResponses(products), total, nil
}

// Update changes a product's details and rate
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Brand != nil || req.Category != nil {
		name := product.Name
		if req.Name != nil {
			name = *req.Name
		}
		brand := product.Brand
		if req.Brand != nil {
			brand = *req.Brand
		}
		category := product.Category
		if req.Category != nil {
			category = *req.Category
		}
		if err := product.Update(name, brand, category); err != nil {
			return nil, err
		}
	}

	if req.Rate != nil {
		rate, err := valueobject.NewMoney(*req.Rate, product.Currency)
		if err != nil {
			return nil, err
		}
		if err := product.UpdateRate(rate); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// UpdateStock sets a product's on-hand quantity. Negative input settles
// at zero; a NOT_FOUND error surfaces for unknown products.
func (s *ProductService) UpdateStock(ctx context.Context, productID uuid.UUID, req UpdateStockRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	product.UpdateStock(req.Stock)

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// ListOutOfStock returns products with no stock remaining. The result
// reflects current quantities, never cached classifications.
func (s *ProductService) ListOutOfStock(ctx context.Context) ([]StockAlertResponse, error) {
	products, err := s.productRepo.FindByStockLevel(ctx, catalog.StockLevelOutOfStock)
	if err != nil {
		return nil, err
	}
	return ToStockAlertResponses(products), nil
}

// ListLowStock returns products below the low stock threshold
func (s *ProductService) ListLowStock(ctx context.Context) ([]StockAlertResponse, error) {
	products, err := s.productRepo.FindByStockLevel(ctx, catalog.StockLevelLow)
	if err != nil {
		return nil, err
	}
	return ToStockAlertResponses(products), nil
}

// ListBrands returns the distinct brands in the catalog
func (s *ProductService) ListBrands(ctx context.Context) ([]string, error) {
	return s.productRepo.ListBrands(ctx)
}

// Delete removes a product from the catalog
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, productID)
}

func (s *ProductService) publishEvents(ctx context.Context, product *catalog.Product) {
	if s.eventPublisher == nil {
		return
	}
	events := product.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	product.ClearDomainEvents()
}
