package event

import (
	"context"

	"github.com/orderdesk/backend/internal/domain/catalog"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/orderdesk/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// StockAlertHandler logs a warning whenever a product drops below the
// low stock threshold. Purchasing watches these log lines.
type StockAlertHandler struct {
	logger *zap.Logger
}

// NewStockAlertHandler creates a stock alert handler
func NewStockAlertHandler(logger *zap.Logger) *StockAlertHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockAlertHandler{logger: logger}
}

func (h *StockAlertHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*catalog.StockBelowThresholdEvent)
	if !ok {
		return nil
	}
	h.logger.Warn("product stock below threshold",
		zap.String("product_id", e.ProductID.String()),
		zap.String("product_name", e.Name),
		zap.Int("stock", e.Stock),
		zap.String("level", string(e.Level)),
	)
	return nil
}

func (h *StockAlertHandler) EventTypes() []string {
	return []string{catalog.EventTypeStockBelowThreshold}
}

// OrderAuditHandler writes an audit log line for every order lifecycle
// event.
type OrderAuditHandler struct {
	logger *zap.Logger
}

// NewOrderAuditHandler creates an order audit handler
func NewOrderAuditHandler(logger *zap.Logger) *OrderAuditHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderAuditHandler{logger: logger.Named("order_audit")}
}

func (h *OrderAuditHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_type", event.EventType()),
		zap.String("order_id", event.AggregateID().String()),
	}

	switch e := event.(type) {
	case *trade.OrderCreatedEvent:
		fields = append(fields,
			zap.String("order_number", e.OrderNumber),
			zap.String("customer_id", e.CustomerID.String()),
		)
	case *trade.OrderApprovedEvent:
		fields = append(fields, zap.String("order_number", e.OrderNumber))
	case *trade.OrderRejectedEvent:
		fields = append(fields,
			zap.String("order_number", e.OrderNumber),
			zap.String("reason", e.Reason),
		)
	case *trade.OrderShippedEvent:
		fields = append(fields, zap.String("order_number", e.OrderNumber))
	case *trade.OrderCompletedEvent:
		fields = append(fields, zap.String("order_number", e.OrderNumber))
	}

	h.logger.Info("order event", fields...)
	return nil
}

func (h *OrderAuditHandler) EventTypes() []string {
	return []string{
		trade.EventTypeOrderCreated,
		trade.EventTypeOrderApproved,
		trade.EventTypeOrderRejected,
		trade.EventTypeOrderShipped,
		trade.EventTypeOrderCompleted,
	}
}

var (
	_ shared.EventHandler = (*StockAlertHandler)(nil)
	_ shared.EventHandler = (*OrderAuditHandler)(nil)
)
