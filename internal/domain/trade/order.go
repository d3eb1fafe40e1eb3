package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/orderdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of a customer order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusApproved  OrderStatus = "APPROVED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusRejected  OrderStatus = "REJECTED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusApproved, OrderStatusShipped, OrderStatusCompleted, OrderStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusApproved || target == OrderStatusRejected
	case OrderStatusApproved:
		return target == OrderStatusShipped
	case OrderStatusShipped:
		return target == OrderStatusCompleted
	case OrderStatusCompleted, OrderStatusRejected:
		return false // Terminal states
	}
	return false
}

// OrderItem represents a line item in an order
type OrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Brand       string
	Quantity    int
	Rate        decimal.Decimal // Price per unit, captured at add time
	Amount      decimal.Decimal // Quantity * Rate
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates a new order line item
func NewOrderItem(orderID, productID uuid.UUID, productName, brand string, quantity int, rate valueobject.Money) (*OrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity < 1 {
		quantity = 1
	}
	if rate.IsNegative() {
		rate = valueobject.Zero(rate.Currency())
	}

	now := time.Now()
	return &OrderItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		Brand:       brand,
		Quantity:    quantity,
		Rate:        rate.Amount(),
		Amount:      rate.Amount().Mul(decimal.NewFromInt(int64(quantity))),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// UpdateQuantity updates the item quantity and recalculates the amount.
// Quantities below one are clamped to one.
func (i *OrderItem) UpdateQuantity(quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	i.Quantity = quantity
	i.Amount = i.Rate.Mul(decimal.NewFromInt(int64(quantity)))
	i.UpdatedAt = time.Now()
}

// UpdateRate updates the unit rate and recalculates the amount.
// Negative rates are clamped to zero.
func (i *OrderItem) UpdateRate(rate decimal.Decimal) {
	if rate.IsNegative() {
		rate = decimal.Zero
	}
	i.Rate = rate
	i.Amount = rate.Mul(decimal.NewFromInt(int64(i.Quantity)))
	i.UpdatedAt = time.Now()
}

// Order represents a customer order aggregate root
// It manages the order lifecycle from submission through fulfillment
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber    string
	CustomerID     uuid.UUID
	CustomerName   string
	Salesman       string // Free-text name of the person who took the order
	Brand          string // Primary brand on the order, informational
	OrderDate      string // Business date in YYYY-MM-DD form
	Items          []OrderItem
	GrossAmount    decimal.Decimal // Sum of all line amounts
	TaxRate        decimal.Decimal // Applied tax rate, e.g. 0.10
	TaxAmount      decimal.Decimal // GrossAmount * TaxRate, rounded to cents
	DiscountAmount decimal.Decimal // Order-level discount
	ShippingAmount decimal.Decimal // Shipping charge
	NetAmount      decimal.Decimal // Gross + Tax - Discount + Shipping
	Status         OrderStatus
	Remark         string
	ApprovedAt     *time.Time
	RejectedAt     *time.Time
	ShippedAt      *time.Time
	CompletedAt    *time.Time
	RejectReason   string
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new order in pending status
func NewOrder(orderNumber string, customerID uuid.UUID, customerName, orderDate string) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if orderDate == "" {
		orderDate = time.Now().Format("2006-01-02")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		CustomerID:        customerID,
		CustomerName:      customerName,
		OrderDate:         orderDate,
		Items:             make([]OrderItem, 0),
		GrossAmount:       decimal.Zero,
		TaxRate:           DefaultTaxRate(),
		TaxAmount:         decimal.Zero,
		DiscountAmount:    decimal.Zero,
		ShippingAmount:    decimal.Zero,
		NetAmount:         decimal.Zero,
		Status:            OrderStatusPending,
	}

	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

// AddItem adds a new line item to the order
// Only allowed in PENDING status
func (o *Order) AddItem(productID uuid.UUID, productName, brand string, quantity int, rate valueobject.Money) (*OrderItem, error) {
	if o.Status != OrderStatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-pending order")
	}

	item, err := NewOrderItem(o.ID, productID, productName, brand, quantity, rate)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotals()
	o.UpdatedAt = time.Now()

	return item, nil
}

// UpdateItemQuantity updates the quantity of an existing item
// Only allowed in PENDING status
func (o *Order) UpdateItemQuantity(itemID uuid.UUID, quantity int) error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot update items in a non-pending order")
	}

	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			o.Items[idx].UpdateQuantity(quantity)
			o.recalculateTotals()
			o.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// UpdateItemRate updates the unit rate of an existing item
// Only allowed in PENDING status
func (o *Order) UpdateItemRate(itemID uuid.UUID, rate decimal.Decimal) error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot update items in a non-pending order")
	}

	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			o.Items[idx].UpdateRate(rate)
			o.recalculateTotals()
			o.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// RemoveItem removes a line item from the order
// Only allowed in PENDING status
func (o *Order) RemoveItem(itemID uuid.UUID) error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove items from a non-pending order")
	}

	for idx, item := range o.Items {
		if item.ID == itemID {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			o.recalculateTotals()
			o.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// SetAdjustments sets the order-level discount and shipping charge.
// Negative values are clamped to zero.
// Only allowed in PENDING status
func (o *Order) SetAdjustments(discount, shipping decimal.Decimal) error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot adjust a non-pending order")
	}

	if discount.IsNegative() {
		discount = decimal.Zero
	}
	if shipping.IsNegative() {
		shipping = decimal.Zero
	}

	o.DiscountAmount = discount
	o.ShippingAmount = shipping
	o.recalculateTotals()
	o.UpdatedAt = time.Now()

	return nil
}

// SetTaxRate overrides the applied tax rate
// Only allowed in PENDING status
func (o *Order) SetTaxRate(rate decimal.Decimal) error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot adjust a non-pending order")
	}
	if rate.IsNegative() {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax rate cannot be negative")
	}

	o.TaxRate = rate
	o.recalculateTotals()
	o.UpdatedAt = time.Now()

	return nil
}

// SetRemark sets the order remark
func (o *Order) SetRemark(remark string) {
	o.Remark = remark
	o.UpdatedAt = time.Now()
}

// SetSalesman records who took the order
func (o *Order) SetSalesman(name string) {
	o.Salesman = name
	o.UpdatedAt = time.Now()
}

// Approve transitions the order from PENDING to APPROVED
func (o *Order) Approve() error {
	if !o.Status.CanTransitionTo(OrderStatusApproved) {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Cannot approve order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = OrderStatusApproved
	o.ApprovedAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderApprovedEvent(o))

	return nil
}

// Reject transitions the order from PENDING to the terminal REJECTED status
func (o *Order) Reject(reason string) error {
	if !o.Status.CanTransitionTo(OrderStatusRejected) {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Cannot reject order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = OrderStatusRejected
	o.RejectedAt = &now
	o.RejectReason = reason
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderRejectedEvent(o))

	return nil
}

// Ship transitions the order from APPROVED to SHIPPED
func (o *Order) Ship() error {
	if !o.Status.CanTransitionTo(OrderStatusShipped) {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Cannot ship order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = OrderStatusShipped
	o.ShippedAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderShippedEvent(o))

	return nil
}

// Complete transitions the order from SHIPPED to the terminal COMPLETED status
func (o *Order) Complete() error {
	if !o.Status.CanTransitionTo(OrderStatusCompleted) {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Cannot complete order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = OrderStatusCompleted
	o.CompletedAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderCompletedEvent(o))

	return nil
}

// TransitionTo applies a transition to the target status, dispatching
// to the matching lifecycle method
func (o *Order) TransitionTo(target OrderStatus, reason string) error {
	switch target {
	case OrderStatusApproved:
		return o.Approve()
	case OrderStatusRejected:
		return o.Reject(reason)
	case OrderStatusShipped:
		return o.Ship()
	case OrderStatusCompleted:
		return o.Complete()
	default:
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Unknown target status %s", target))
	}
}

// recalculateTotals recalculates the price breakdown and the primary
// brand from the line items
func (o *Order) recalculateTotals() {
	breakdown := ComputeBreakdown(o.Items, o.DiscountAmount, o.ShippingAmount, o.TaxRate)
	o.GrossAmount = breakdown.Gross
	o.TaxAmount = breakdown.Tax
	o.NetAmount = breakdown.Net

	if len(o.Items) > 0 {
		o.Brand = o.Items[0].Brand
	} else {
		o.Brand = ""
	}
}

// Breakdown returns the order's current price breakdown
func (o *Order) Breakdown() Breakdown {
	return Breakdown{
		Gross:    o.GrossAmount,
		Tax:      o.TaxAmount,
		Discount: o.DiscountAmount,
		Shipping: o.ShippingAmount,
		Net:      o.NetAmount,
	}
}

// GetNetAmountMoney returns the net amount as Money
func (o *Order) GetNetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.NetAmount)
}

// ItemCount returns the number of line items in the order
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// TotalQuantity returns the sum of all item quantities
func (o *Order) TotalQuantity() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// IsPending returns true if the order awaits review
func (o *Order) IsPending() bool {
	return o.Status == OrderStatusPending
}

// IsApproved returns true if the order is approved
func (o *Order) IsApproved() bool {
	return o.Status == OrderStatusApproved
}

// IsShipped returns true if the order is shipped
func (o *Order) IsShipped() bool {
	return o.Status == OrderStatusShipped
}

// IsCompleted returns true if the order is completed
func (o *Order) IsCompleted() bool {
	return o.Status == OrderStatusCompleted
}

// IsRejected returns true if the order is rejected
func (o *Order) IsRejected() bool {
	return o.Status == OrderStatusRejected
}

// IsTerminal returns true if the order is in a terminal state
func (o *Order) IsTerminal() bool {
	return o.IsCompleted() || o.IsRejected()
}

// CanModify returns true if the order's items can still be changed
func (o *Order) CanModify() bool {
	return o.IsPending()
}

// GetItem returns an item by its ID
func (o *Order) GetItem(itemID uuid.UUID) *OrderItem {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			return &o.Items[idx]
		}
	}
	return nil
}

// ParsedOrderDate parses the business date. The boolean reports whether
// the stored date was well formed.
func (o *Order) ParsedOrderDate() (time.Time, bool) {
	t, err := time.Parse("2006-01-02", o.OrderDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
