package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest represents a request to submit a new order
type CreateOrderRequest struct {
	CustomerID uuid.UUID              `json:"customer_id" binding:"required"`
	Salesman   string                 `json:"salesman"`
	Items      []CreateOrderItemInput `json:"items" binding:"required,min=1,dive"`
	Discount   *decimal.Decimal       `json:"discount"`
	Shipping   *decimal.Decimal       `json:"shipping"`
	Remark     string                 `json:"remark"`
}

// CreateOrderItemInput represents a line in the create order request.
// The rate is looked up from the catalog at submission time; quantity
// defaults to one when omitted.
type CreateOrderItemInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity"`
}

// UpdateOrderItemRequest represents a request to change a pending line item
type UpdateOrderItemRequest struct {
	Quantity *int             `json:"quantity"`
	Rate     *decimal.Decimal `json:"rate"`
}

// AddOrderItemRequest represents a request to add a line to a pending order
type AddOrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity"`
}

// UpdateOrderRequest represents a request to adjust a pending order
type UpdateOrderRequest struct {
	Discount *decimal.Decimal `json:"discount"`
	Shipping *decimal.Decimal `json:"shipping"`
	Remark   *string          `json:"remark"`
	Salesman *string          `json:"salesman"`
}

// TransitionOrderRequest represents a request to move an order along its workflow
type TransitionOrderRequest struct {
	Status trade.OrderStatus `json:"status" binding:"required"`
	Reason string            `json:"reason"`
}

// OrderListFilter represents filter options for the order list
type OrderListFilter struct {
	Search     string             `form:"search"`
	CustomerID *uuid.UUID         `form:"customer_id"`
	Status     *trade.OrderStatus `form:"status"`
	StartDate  string             `form:"start_date"`
	EndDate    string             `form:"end_date"`
	Page       int                `form:"page" binding:"omitempty,min=1"`
	PageSize   int                `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string             `form:"order_by"`
	OrderDir   string             `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// OrderItemResponse represents a line item in API responses
type OrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Brand       string          `json:"brand,omitempty"`
	Quantity    int             `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// BreakdownResponse represents the price breakdown in API responses
type BreakdownResponse struct {
	Gross    decimal.Decimal `json:"gross"`
	Tax      decimal.Decimal `json:"tax"`
	Discount decimal.Decimal `json:"discount"`
	Shipping decimal.Decimal `json:"shipping"`
	Net      decimal.Decimal `json:"net"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID           uuid.UUID           `json:"id"`
	OrderNumber  string              `json:"order_number"`
	CustomerID   uuid.UUID           `json:"customer_id"`
	CustomerName string              `json:"customer_name"`
	Salesman     string              `json:"salesman,omitempty"`
	Brand        string              `json:"brand,omitempty"`
	OrderDate    string              `json:"order_date"`
	Items        []OrderItemResponse `json:"items"`
	ItemCount    int                 `json:"item_count"`
	Breakdown    BreakdownResponse   `json:"breakdown"`
	Status       string              `json:"status"`
	Remark       string              `json:"remark,omitempty"`
	RejectReason string              `json:"reject_reason,omitempty"`
	ApprovedAt   *time.Time          `json:"approved_at,omitempty"`
	RejectedAt   *time.Time          `json:"rejected_at,omitempty"`
	ShippedAt    *time.Time          `json:"shipped_at,omitempty"`
	CompletedAt  *time.Time          `json:"completed_at,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	Version      int                 `json:"version"`
}

// OrderListItemResponse is the compact order shape for list views
type OrderListItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	OrderNumber  string          `json:"order_number"`
	CustomerName string          `json:"customer_name"`
	Brand        string          `json:"brand,omitempty"`
	OrderDate    string          `json:"order_date"`
	ItemCount    int             `json:"item_count"`
	NetAmount    decimal.Decimal `json:"net_amount"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

// StatusSummaryResponse is the per-status order tally
type StatusSummaryResponse struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// ToOrderItemResponse converts a domain order item to its response shape
func ToOrderItemResponse(item trade.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:          item.ID,
		ProductID:   item.ProductID,
		ProductName: item.ProductName,
		Brand:       item.Brand,
		Quantity:    item.Quantity,
		Rate:        item.Rate,
		Amount:      item.Amount,
	}
}

// ToOrderResponse converts a domain order to its response shape
func ToOrderResponse(order *trade.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, ToOrderItemResponse(item))
	}

	breakdown := order.Breakdown()

	return OrderResponse{
		ID:           order.ID,
		OrderNumber:  order.OrderNumber,
		CustomerID:   order.CustomerID,
		CustomerName: order.CustomerName,
		Salesman:     order.Salesman,
		Brand:        order.Brand,
		OrderDate:    order.OrderDate,
		Items:        items,
		ItemCount:    order.ItemCount(),
		Breakdown: BreakdownResponse{
			Gross:    breakdown.Gross,
			Tax:      breakdown.Tax,
			Discount: breakdown.Discount,
			Shipping: breakdown.Shipping,
			Net:      breakdown.Net,
		},
		Status:       order.Status.String(),
		Remark:       order.Remark,
		RejectReason: order.RejectReason,
		ApprovedAt:   order.ApprovedAt,
		RejectedAt:   order.RejectedAt,
		ShippedAt:    order.ShippedAt,
		CompletedAt:  order.CompletedAt,
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
		Version:      order.GetVersion(),
	}
}

// ToOrderListItemResponses converts domain orders to their list shapes
func ToOrderListItemResponses(orders []trade.Order) []OrderListItemResponse {
	responses := make([]OrderListItemResponse, 0, len(orders))
	for idx := range orders {
		order := &orders[idx]
		responses = append(responses, OrderListItemResponse{
			ID:           order.ID,
			OrderNumber:  order.OrderNumber,
			CustomerName: order.CustomerName,
			Brand:        order.Brand,
			OrderDate:    order.OrderDate,
			ItemCount:    order.ItemCount(),
			NetAmount:    order.NetAmount,
			Status:       order.Status.String(),
			CreatedAt:    order.CreatedAt,
		})
	}
	return responses
}
