package printing

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/report"
	"github.com/orderdesk/backend/internal/domain/shared/valueobject"
	"github.com/orderdesk/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *TemplateEngine {
	engine, err := NewTemplateEngine()
	require.NoError(t, err)
	return engine
}

func makeReportRow(i int) report.SalesReportRow {
	return report.SalesReportRow{
		OrderNumber:  fmt.Sprintf("ORD-2026-%05d", i),
		OrderDate:    "2026-03-15",
		CustomerName: "Acme Supplies",
		Status:       "COMPLETED",
		ItemCount:    2,
		NetAmount:    decimal.NewFromInt(100),
	}
}

func TestTemplateEngine_RenderSalesReport(t *testing.T) {
	engine := newTestEngine(t)

	t.Run("renders summary and rows", func(t *testing.T) {
		r := report.SalesReport{
			Summary: report.SalesSummary{
				PeriodStart:     "2026-03-01",
				PeriodEnd:       "2026-03-31",
				TotalRevenue:    decimal.NewFromInt(6945),
				TotalOrders:     2,
				AvgOrderValue:   decimal.RequireFromString("3472.50"),
				UniqueCustomers: 1,
			},
			Rows: []report.SalesReportRow{makeReportRow(1), makeReportRow(2)},
		}

		html, err := engine.RenderSalesReport(r)

		require.NoError(t, err)
		assert.Contains(t, html, "2026-03-01")
		assert.Contains(t, html, "$6,945.00")
		assert.Contains(t, html, "$3,472.50")
		assert.Contains(t, html, "ORD-2026-00001")
		assert.Contains(t, html, "Completed")
		assert.NotContains(t, html, "more orders")
	})

	t.Run("caps rows and notes the overflow", func(t *testing.T) {
		rows := make([]report.SalesReportRow, 0, 20)
		for i := 1; i <= 20; i++ {
			rows = append(rows, makeReportRow(i))
		}

		html, err := engine.RenderSalesReport(report.SalesReport{Rows: rows})

		require.NoError(t, err)
		assert.Contains(t, html, "ORD-2026-00015")
		assert.NotContains(t, html, "ORD-2026-00016")
		assert.Contains(t, html, "+5 more orders")
	})

	t.Run("open period renders as Open", func(t *testing.T) {
		html, err := engine.RenderSalesReport(report.SalesReport{})

		require.NoError(t, err)
		assert.Contains(t, html, "Open")
	})
}

func TestTemplateEngine_RenderOrderDocument(t *testing.T) {
	engine := newTestEngine(t)

	t.Run("renders order header, items and totals", func(t *testing.T) {
		order, err := trade.NewOrder("ORD-2026-00007", uuid.New(), "Acme Supplies", "2026-03-15")
		require.NoError(t, err)

		rate := valueobject.NewMoneyUSDFromFloat(1200)
		_, err = order.AddItem(uuid.New(), "Industrial Pump", "FlowMax", 5, rate)
		require.NoError(t, err)

		html, renderErr := engine.RenderOrderDocument(order)

		require.NoError(t, renderErr)
		assert.Contains(t, html, "ORD-2026-00007")
		assert.Contains(t, html, "Acme Supplies")
		assert.Contains(t, html, "Industrial Pump")
		assert.Contains(t, html, "$6,000.00") // 5 x 1200 gross
		assert.Contains(t, html, "$600.00")   // 10% tax
		assert.Contains(t, html, "$6,600.00") // net
		assert.Contains(t, html, "Pending")
	})

	t.Run("rejects nil order", func(t *testing.T) {
		_, err := engine.RenderOrderDocument(nil)
		assert.Error(t, err)
	})
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name  string
		input decimal.Decimal
		want  string
	}{
		{"zero", decimal.Zero, "$0.00"},
		{"small", decimal.RequireFromString("9.5"), "$9.50"},
		{"thousands grouping", decimal.RequireFromString("1234.56"), "$1,234.56"},
		{"millions grouping", decimal.RequireFromString("1234567.89"), "$1,234,567.89"},
		{"negative", decimal.RequireFromString("-250"), "-$250.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatMoney(tt.input))
		})
	}
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Pending", statusLabel("PENDING"))
	assert.Equal(t, "Out Of Stock", statusLabel("out_of_stock"))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "10%", formatPercent(decimal.RequireFromString("0.10")))
	assert.Equal(t, "0%", formatPercent(decimal.Zero))
}
