package catalog

import (
	"strings"
	"time"

	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/orderdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// StockLevel classifies how much stock a product has on hand
type StockLevel string

const (
	StockLevelOutOfStock StockLevel = "out_of_stock"
	StockLevelLow        StockLevel = "low_stock"
	StockLevelInStock    StockLevel = "in_stock"
)

// LowStockThreshold is the quantity below which stock is considered low.
// Zero stock is always classified as out of stock, not low.
const LowStockThreshold = 10

// ClassifyStock returns the stock level classification for a quantity
func ClassifyStock(quantity int) StockLevel {
	switch {
	case quantity <= 0:
		return StockLevelOutOfStock
	case quantity < LowStockThreshold:
		return StockLevelLow
	default:
		return StockLevelInStock
	}
}

// Product represents a product/SKU in the supplier catalog
// It is the aggregate root for catalog and stock operations
type Product struct {
	shared.BaseAggregateRoot
	Name     string          `gorm:"type:varchar(200);not null"`
	Brand    string          `gorm:"type:varchar(100);not null;index"`
	Category string          `gorm:"type:varchar(100);index"`
	Rate     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Unit selling rate
	Currency valueobject.Currency `gorm:"type:varchar(3);not null;default:'USD'"`
	Stock    int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name, brand, category string, rate valueobject.Money, stock int) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if rate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Product rate cannot be negative")
	}
	if stock < 0 {
		stock = 0
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Brand:             brand,
		Category:          category,
		Rate:              rate.Amount(),
		Currency:          rate.Currency(),
		Stock:             stock,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's descriptive information
func (p *Product) Update(name, brand, category string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Brand = brand
	p.Category = category
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// UpdateRate changes the product's unit rate
func (p *Product) UpdateRate(rate valueobject.Money) error {
	if rate.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Product rate cannot be negative")
	}

	p.Rate = rate.Amount()
	p.Currency = rate.Currency()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// UpdateStock replaces the on-hand quantity. Negative input is coerced
// to zero rather than rejected so that over-draining adjustments settle
// at empty. Emits a low stock event when the new level drops below the
// threshold.
func (p *Product) UpdateStock(quantity int) {
	if quantity < 0 {
		quantity = 0
	}

	oldStock := p.Stock
	p.Stock = quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStockUpdatedEvent(p, oldStock, quantity))

	if level := p.StockLevel(); level != StockLevelInStock && ClassifyStock(oldStock) == StockLevelInStock {
		p.AddDomainEvent(NewStockBelowThresholdEvent(p, level))
	}
}

// StockLevel returns the current stock classification
func (p *Product) StockLevel() StockLevel {
	return ClassifyStock(p.Stock)
}

// IsOutOfStock returns true when no stock remains
func (p *Product) IsOutOfStock() bool {
	return p.StockLevel() == StockLevelOutOfStock
}

// IsLowStock returns true when stock is positive but below the threshold
func (p *Product) IsLowStock() bool {
	return p.StockLevel() == StockLevelLow
}

// RateMoney returns the unit rate as a Money value
func (p *Product) RateMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(p.Rate, p.Currency)
	return m
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name is required")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
