package printing

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/orderdesk/backend/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSalesReportCSV(t *testing.T) {
	t.Run("writes summary header then order rows", func(t *testing.T) {
		r := report.SalesReport{
			Summary: report.SalesSummary{
				PeriodStart:     "2026-03-01",
				PeriodEnd:       "2026-03-31",
				TotalRevenue:    decimal.NewFromInt(600),
				TotalOrders:     2,
				AvgOrderValue:   decimal.NewFromInt(300),
				UniqueCustomers: 2,
			},
			Rows: []report.SalesReportRow{
				{
					OrderNumber:  "ORD-2026-00001",
					OrderDate:    "2026-03-10",
					CustomerName: "Acme Supplies",
					Status:       "COMPLETED",
					ItemCount:    3,
					NetAmount:    decimal.RequireFromString("250.50"),
				},
				{
					OrderNumber:  "ORD-2026-00002",
					OrderDate:    "2026-03-12",
					CustomerName: "Globex",
					Status:       "APPROVED",
					ItemCount:    1,
					NetAmount:    decimal.RequireFromString("349.50"),
				},
			},
		}

		data, err := WriteSalesReportCSV(r)
		require.NoError(t, err)

		reader := csv.NewReader(bytes.NewReader(data))
		reader.FieldsPerRecord = -1
		records, err := reader.ReadAll()
		require.NoError(t, err)

		assert.Equal(t, []string{"Period Start", "2026-03-01"}, records[0])
		assert.Equal(t, []string{"Total Revenue", "600.00"}, records[2])
		assert.Equal(t, []string{"Total Orders", "2"}, records[3])

		header := records[len(records)-3]
		assert.Equal(t, []string{"Order Number", "Order Date", "Customer", "Status", "Items", "Net Amount"}, header)

		first := records[len(records)-2]
		assert.Equal(t, "ORD-2026-00001", first[0])
		assert.Equal(t, "250.50", first[5])

		second := records[len(records)-1]
		assert.Equal(t, "ORD-2026-00002", second[0])
	})

	t.Run("open bounds render as open", func(t *testing.T) {
		data, err := WriteSalesReportCSV(report.SalesReport{})
		require.NoError(t, err)
		assert.Contains(t, string(data), "Period Start,open")
	})
}
