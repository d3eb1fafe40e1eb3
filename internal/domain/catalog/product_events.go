package catalog

import (
	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeProductCreated      = "ProductCreated"
	EventTypeProductUpdated      = "ProductUpdated"
	EventTypeProductStockUpdated = "ProductStockUpdated"
	EventTypeStockBelowThreshold = "StockBelowThreshold"
)

// ProductCreatedEvent is published when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand"`
	Rate      decimal.Decimal `json:"rate"`
	Stock     int             `json:"stock"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Name:            product.Name,
		Brand:           product.Brand,
		Rate:            product.Rate,
		Stock:           product.Stock,
	}
}

// ProductUpdatedEvent is published when a product's details change
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand"`
	Category  string          `json:"category,omitempty"`
	Rate      decimal.Decimal `json:"rate"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(product *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Name:            product.Name,
		Brand:           product.Brand,
		Category:        product.Category,
		Rate:            product.Rate,
	}
}

// ProductStockUpdatedEvent is published when on-hand stock changes
type ProductStockUpdatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	OldStock  int       `json:"old_stock"`
	NewStock  int       `json:"new_stock"`
}

// NewProductStockUpdatedEvent creates a new ProductStockUpdatedEvent
func NewProductStockUpdatedEvent(product *Product, oldStock, newStock int) *ProductStockUpdatedEvent {
	return &ProductStockUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductStockUpdated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Name:            product.Name,
		OldStock:        oldStock,
		NewStock:        newStock,
	}
}

// StockBelowThresholdEvent is published when a stock update drops a
// product out of the in-stock classification
type StockBelowThresholdEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID  `json:"product_id"`
	Name      string     `json:"name"`
	Stock     int        `json:"stock"`
	Level     StockLevel `json:"level"`
}

// NewStockBelowThresholdEvent creates a new StockBelowThresholdEvent
func NewStockBelowThresholdEvent(product *Product, level StockLevel) *StockBelowThresholdEvent {
	return &StockBelowThresholdEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockBelowThreshold, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Name:            product.Name,
		Stock:           product.Stock,
		Level:           level,
	}
}
