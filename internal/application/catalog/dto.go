package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to add a catalog product
type CreateProductRequest struct {
	Name     string          `json:"name" binding:"required,min=1,max=200"`
	Brand    string          `json:"brand" binding:"required,min=1,max=100"`
	Category string          `json:"category" binding:"omitempty,max=100"`
	Rate     decimal.Decimal `json:"rate" binding:"required"`
	Stock    int             `json:"stock"`
}

// UpdateProductRequest represents a request to update a product's details
type UpdateProductRequest struct {
	Name     *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Brand    *string          `json:"brand" binding:"omitempty,min=1,max=100"`
	Category *string          `json:"category" binding:"omitempty,max=100"`
	Rate     *decimal.Decimal `json:"rate"`
}

// UpdateStockRequest represents a request to set a product's on-hand stock
type UpdateStockRequest struct {
	Stock int `json:"stock"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search   string `form:"search"`
	Brand    string `form:"brand"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Brand      string          `json:"brand"`
	Category   string          `json:"category,omitempty"`
	Rate       decimal.Decimal `json:"rate"`
	Currency   string          `json:"currency"`
	Stock      int             `json:"stock"`
	StockLevel string          `json:"stock_level"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	Version    int             `json:"version"`
}

// StockAlertResponse represents a product flagged by the stock tracker
type StockAlertResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Brand      string    `json:"brand"`
	Stock      int       `json:"stock"`
	StockLevel string    `json:"stock_level"`
}

// ToProductResponse converts a domain product to its response shape
func ToProductResponse(product *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:         product.ID,
		Name:       product.Name,
		Brand:      product.Brand,
		Category:   product.Category,
		Rate:       product.Rate,
		Currency:   string(product.Currency),
		Stock:      product.Stock,
		StockLevel: string(product.StockLevel()),
		CreatedAt:  product.CreatedAt,
		UpdatedAt:  product.UpdatedAt,
		Version:    product.GetVersion(),
	}
}

// ToProductResponses converts domain products to their response shapes
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for idx := range products {
		responses = append(responses, ToProductResponse(&products[idx]))
	}
	return responses
}

// ToStockAlertResponses converts domain products to stock alert shapes
func ToStockAlertResponses(products []catalog.Product) []StockAlertResponse {
	responses := make([]StockAlertResponse, 0, len(products))
	for idx := range products {
		product := &products[idx]
		responses = append(responses, StockAlertResponse{
			ID:         product.ID,
			Name:       product.Name,
			Brand:      product.Brand,
			Stock:      product.Stock,
			StockLevel: string(product.StockLevel()),
		})
	}
	return responses
}
