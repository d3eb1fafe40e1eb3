package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/orderdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// BuilderStage identifies a step in the order entry flow
type BuilderStage int

const (
	StageCustomer BuilderStage = iota // pick the ordering customer
	StageItems                        // assemble line items
	StageReview                       // review breakdown and submit
)

// String returns a human-readable stage name
func (s BuilderStage) String() string {
	switch s {
	case StageCustomer:
		return "customer"
	case StageItems:
		return "items"
	case StageReview:
		return "review"
	}
	return "unknown"
}

// OrderBuilder assembles an order draft through a staged entry flow.
// The draft is not an aggregate: nothing is persisted and no events
// fire until Build produces an Order.
type OrderBuilder struct {
	stage        BuilderStage
	customerID   uuid.UUID
	customerName string
	salesman     string
	items        []OrderItem
	discount     decimal.Decimal
	shipping     decimal.Decimal
	taxRate      decimal.Decimal
}

// NewOrderBuilder creates an empty draft at the customer stage
func NewOrderBuilder() *OrderBuilder {
	return &OrderBuilder{
		stage:    StageCustomer,
		items:    make([]OrderItem, 0),
		discount: decimal.Zero,
		shipping: decimal.Zero,
		taxRate:  DefaultTaxRate(),
	}
}

// Stage returns the current entry stage
func (b *OrderBuilder) Stage() BuilderStage {
	return b.stage
}

// Advance moves to the next stage. Already at the last stage it is a
// no-op rather than an error.
func (b *OrderBuilder) Advance() {
	if b.stage < StageReview {
		b.stage++
	}
}

// Retreat moves to the previous stage, preserving all entered state.
// Already at the first stage it is a no-op.
func (b *OrderBuilder) Retreat() {
	if b.stage > StageCustomer {
		b.stage--
	}
}

// SelectCustomer records the ordering customer
func (b *OrderBuilder) SelectCustomer(customerID uuid.UUID, customerName string) error {
	if customerID == uuid.Nil {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	b.customerID = customerID
	b.customerName = customerName
	return nil
}

// CustomerID returns the selected customer, or uuid.Nil when none is set
func (b *OrderBuilder) CustomerID() uuid.UUID {
	return b.customerID
}

// SetSalesman records the free-text name of the person taking the order
func (b *OrderBuilder) SetSalesman(name string) {
	b.salesman = name
}

// AddItem appends a line item for the product at its current catalog
// rate with quantity one. The rate is copied into the draft, so later
// catalog changes do not affect it.
func (b *OrderBuilder) AddItem(productID uuid.UUID, productName, brand string, rate valueobject.Money) (*OrderItem, error) {
	item, err := NewOrderItem(uuid.Nil, productID, productName, brand, 1, rate)
	if err != nil {
		return nil, err
	}
	b.items = append(b.items, *item)
	return item, nil
}

// RemoveItem deletes a line item from the draft. An absent id is a
// silent no-op so repeated removals stay idempotent.
func (b *OrderBuilder) RemoveItem(itemID uuid.UUID) {
	for idx, item := range b.items {
		if item.ID == itemID {
			b.items = append(b.items[:idx], b.items[idx+1:]...)
			return
		}
	}
}

// UpdateItemQuantity sets a line item's quantity, clamping below one
func (b *OrderBuilder) UpdateItemQuantity(itemID uuid.UUID, quantity int) error {
	for idx := range b.items {
		if b.items[idx].ID == itemID {
			b.items[idx].UpdateQuantity(quantity)
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// UpdateItemRate sets a line item's unit rate, clamping negatives to zero
func (b *OrderBuilder) UpdateItemRate(itemID uuid.UUID, rate decimal.Decimal) error {
	for idx := range b.items {
		if b.items[idx].ID == itemID {
			b.items[idx].UpdateRate(rate)
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// SetAdjustments records the order-level discount and shipping charge.
// Negative values are clamped to zero.
func (b *OrderBuilder) SetAdjustments(discount, shipping decimal.Decimal) {
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	if shipping.IsNegative() {
		shipping = decimal.Zero
	}
	b.discount = discount
	b.shipping = shipping
}

// SetTaxRate overrides the draft's tax rate
func (b *OrderBuilder) SetTaxRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax rate cannot be negative")
	}
	b.taxRate = rate
	return nil
}

// Items returns a copy of the draft's line items
func (b *OrderBuilder) Items() []OrderItem {
	items := make([]OrderItem, len(b.items))
	copy(items, b.items)
	return items
}

// Breakdown computes the live price breakdown for the draft
func (b *OrderBuilder) Breakdown() Breakdown {
	return ComputeBreakdown(b.items, b.discount, b.shipping, b.taxRate)
}

// Build validates the draft and produces a pending Order. The order
// number is assigned by the repository before saving.
func (b *OrderBuilder) Build(orderNumber string) (*Order, error) {
	if b.customerID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "A customer must be selected before submitting")
	}
	if len(b.items) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Cannot submit an order without items")
	}

	order, err := NewOrder(orderNumber, b.customerID, b.customerName, time.Now().Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	order.TaxRate = b.taxRate
	order.Salesman = b.salesman
	for _, item := range b.items {
		item.OrderID = order.ID
		order.Items = append(order.Items, item)
	}
	if err := order.SetAdjustments(b.discount, b.shipping); err != nil {
		return nil, err
	}

	return order, nil
}
