package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// SalesSummary is a read model aggregating order activity over a period
type SalesSummary struct {
	PeriodStart     string          `json:"period_start"` // YYYY-MM-DD, empty when unbounded
	PeriodEnd       string          `json:"period_end"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"` // Sum of net amounts
	TotalOrders     int64           `json:"total_orders"`
	AvgOrderValue   decimal.Decimal `json:"avg_order_value"` // TotalRevenue / TotalOrders
	UniqueCustomers int64           `json:"unique_customers"`
}

// SalesReportRow is one order line in a sales report
type SalesReportRow struct {
	OrderNumber  string          `json:"order_number"`
	OrderDate    string          `json:"order_date"`
	CustomerName string          `json:"customer_name"`
	Status       string          `json:"status"`
	ItemCount    int             `json:"item_count"`
	NetAmount    decimal.Decimal `json:"net_amount"`
}

// SalesReport bundles the summary with its constituent rows
type SalesReport struct {
	Summary SalesSummary     `json:"summary"`
	Rows    []SalesReportRow `json:"rows"`
}

// StatusCount is a per-status order tally
type StatusCount struct {
	Status trade.OrderStatus `json:"status"`
	Count  int64             `json:"count"`
}

// FilterByDateRange returns the orders whose business date falls within
// the inclusive [from, to] range. Orders whose stored date cannot be
// parsed are excluded rather than failing the whole report. Zero-value
// bounds leave that side of the range open.
func FilterByDateRange(orders []trade.Order, from, to time.Time) []trade.Order {
	filtered := make([]trade.Order, 0, len(orders))
	for _, order := range orders {
		date, ok := order.ParsedOrderDate()
		if !ok {
			continue
		}
		if !from.IsZero() && date.Before(from) {
			continue
		}
		if !to.IsZero() && date.After(to) {
			continue
		}
		filtered = append(filtered, order)
	}
	return filtered
}

// Summarize computes aggregate statistics over a set of orders.
// An empty input yields a zero summary with a zero average rather than
// a division error.
func Summarize(orders []trade.Order, periodStart, periodEnd string) SalesSummary {
	summary := SalesSummary{
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		TotalRevenue:  decimal.Zero,
		AvgOrderValue: decimal.Zero,
	}

	customers := make(map[uuid.UUID]struct{})
	for _, order := range orders {
		summary.TotalRevenue = summary.TotalRevenue.Add(order.NetAmount)
		summary.TotalOrders++
		customers[order.CustomerID] = struct{}{}
	}
	summary.UniqueCustomers = int64(len(customers))

	if summary.TotalOrders > 0 {
		summary.AvgOrderValue = summary.TotalRevenue.Div(decimal.NewFromInt(summary.TotalOrders)).Round(2)
	}

	return summary
}

// BuildReport produces report rows in stable input order alongside the
// period summary
func BuildReport(orders []trade.Order, periodStart, periodEnd string) SalesReport {
	rows := make([]SalesReportRow, 0, len(orders))
	for _, order := range orders {
		rows = append(rows, SalesReportRow{
			OrderNumber:  order.OrderNumber,
			OrderDate:    order.OrderDate,
			CustomerName: order.CustomerName,
			Status:       order.Status.String(),
			ItemCount:    order.ItemCount(),
			NetAmount:    order.NetAmount,
		})
	}
	return SalesReport{
		Summary: Summarize(orders, periodStart, periodEnd),
		Rows:    rows,
	}
}
