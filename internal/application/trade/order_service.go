package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/catalog"
	"github.com/orderdesk/backend/internal/domain/partner"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/orderdesk/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// OrderService handles order business operations
type OrderService struct {
	orderRepo      trade.OrderRepository
	productRepo    catalog.ProductRepository
	customerRepo   partner.CustomerRepository
	eventPublisher shared.EventPublisher
	taxRate        decimal.Decimal
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo trade.OrderRepository, productRepo catalog.ProductRepository, customerRepo partner.CustomerRepository) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		taxRate:      trade.DefaultTaxRate(),
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetTaxRate overrides the tax rate applied to new orders
func (s *OrderService) SetTaxRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax rate cannot be negative")
	}
	s.taxRate = rate
	return nil
}

// Create builds and submits a new order. Line rates are copied from
// the catalog at submission time; the repository assigns the order
// number.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if !customer.IsActive() {
		return nil, shared.NewDomainError("INVALID_STATE", "Customer account is inactive")
	}

	builder := trade.NewOrderBuilder()
	if err := builder.SetTaxRate(s.taxRate); err != nil {
		return nil, err
	}
	if err := builder.SelectCustomer(customer.ID, customer.Name); err != nil {
		return nil, err
	}
	builder.SetSalesman(req.Salesman)

	for _, input := range req.Items {
		product, err := s.productRepo.FindByID(ctx, input.ProductID)
		if err != nil {
			return nil, err
		}

		item, err := builder.AddItem(product.ID, product.Name, product.Brand, product.RateMoney())
		if err != nil {
			return nil, err
		}
		if input.Quantity > 1 {
			if err := builder.UpdateItemQuantity(item.ID, input.Quantity); err != nil {
				return nil, err
			}
		}
	}

	discount := decimal.Zero
	if req.Discount != nil {
		discount = *req.Discount
	}
	shipping := decimal.Zero
	if req.Shipping != nil {
		shipping = *req.Shipping
	}
	builder.SetAdjustments(discount, shipping)

	orderNumber, err := s.orderRepo.GenerateOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	order, err := builder.Build(orderNumber)
	if err != nil {
		return nil, err
	}

	if req.Remark != "" {
		order.SetRemark(req.Remark)
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// GetByOrderNumber retrieves an order by its order number
func (s *OrderService) GetByOrderNumber(ctx context.Context, orderNumber string) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves orders with filtering and pagination
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderListItemResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	if filter.CustomerID != nil {
		domainFilter.Filters["customer_id"] = *filter.CustomerID
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = string(*filter.Status)
	}
	if filter.StartDate != "" {
		domainFilter.Filters["start_date"] = filter.StartDate
	}
	if filter.EndDate != "" {
		domainFilter.Filters["end_date"] = filter.EndDate
	}

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToOrderListItemResponses(orders), total, nil
}

// Update adjusts a pending order's discount, shipping or remark
func (s *OrderService) Update(ctx context.Context, orderID uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if req.Discount != nil || req.Shipping != nil {
		discount := order.DiscountAmount
		if req.Discount != nil {
			discount = *req.Discount
		}
		shipping := order.ShippingAmount
		if req.Shipping != nil {
			shipping = *req.Shipping
		}
		if err := order.SetAdjustments(discount, shipping); err != nil {
			return nil, err
		}
	}

	if req.Remark != nil {
		order.SetRemark(*req.Remark)
	}
	if req.Salesman != nil {
		order.SetSalesman(*req.Salesman)
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// AddItem adds a line item to a pending order at the product's current rate
func (s *OrderService) AddItem(ctx context.Context, orderID uuid.UUID, req AddOrderItemRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	if _, err := order.AddItem(product.ID, product.Name, product.Brand, quantity, product.RateMoney()); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// UpdateItem changes the quantity or rate of a pending order's line item
func (s *OrderService) UpdateItem(ctx context.Context, orderID, itemID uuid.UUID, req UpdateOrderItemRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if req.Quantity != nil {
		if err := order.UpdateItemQuantity(itemID, *req.Quantity); err != nil {
			return nil, err
		}
	}

	if req.Rate != nil {
		if err := order.UpdateItemRate(itemID, *req.Rate); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// RemoveItem removes a line item from a pending order
func (s *OrderService) RemoveItem(ctx context.Context, orderID, itemID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.RemoveItem(itemID); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// Delete removes an order. Only pending orders can be deleted; orders
// that entered the workflow keep their audit trail.
func (s *OrderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}

	if order.Status != trade.OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending orders can be deleted")
	}

	return s.orderRepo.Delete(ctx, orderID)
}

// Transition moves an order along its status workflow
func (s *OrderService) Transition(ctx context.Context, orderID uuid.UUID, req TransitionOrderRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.TransitionTo(req.Status, req.Reason); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// Approve approves a pending order
func (s *OrderService) Approve(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	return s.Transition(ctx, orderID, TransitionOrderRequest{Status: trade.OrderStatusApproved})
}

// Reject rejects a pending order
func (s *OrderService) Reject(ctx context.Context, orderID uuid.UUID, reason string) (*OrderResponse, error) {
	return s.Transition(ctx, orderID, TransitionOrderRequest{Status: trade.OrderStatusRejected, Reason: reason})
}

// Ship marks an approved order as shipped
func (s *OrderService) Ship(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	return s.Transition(ctx, orderID, TransitionOrderRequest{Status: trade.OrderStatusShipped})
}

// Complete marks a shipped order as completed
func (s *OrderService) Complete(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	return s.Transition(ctx, orderID, TransitionOrderRequest{Status: trade.OrderStatusCompleted})
}

// StatusSummary returns the order count for every workflow status
func (s *OrderService) StatusSummary(ctx context.Context) ([]StatusSummaryResponse, error) {
	statuses := []trade.OrderStatus{
		trade.OrderStatusPending,
		trade.OrderStatusApproved,
		trade.OrderStatusShipped,
		trade.OrderStatusCompleted,
		trade.OrderStatusRejected,
	}

	summary := make([]StatusSummaryResponse, 0, len(statuses))
	for _, status := range statuses {
		count, err := s.orderRepo.CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		summary = append(summary, StatusSummaryResponse{Status: status.String(), Count: count})
	}

	return summary, nil
}

// publishEvents flushes the order's pending domain events to the bus.
// Publish failures do not fail the operation; the bus logs them.
func (s *OrderService) publishEvents(ctx context.Context, order *trade.Order) {
	if s.eventPublisher == nil {
		return
	}
	events := order.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	order.ClearDomainEvents()
}
