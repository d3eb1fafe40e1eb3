package printing

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/orderdesk/backend/internal/domain/report"
)

// WriteSalesReportCSV serializes a sales report to CSV bytes. The first
// rows carry the summary, followed by a blank line and the order table.
// Output opens cleanly in Excel and Google Sheets.
func WriteSalesReportCSV(r report.SalesReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	summaryRows := [][]string{
		{"Period Start", orOpen(r.Summary.PeriodStart)},
		{"Period End", orOpen(r.Summary.PeriodEnd)},
		{"Total Revenue", r.Summary.TotalRevenue.StringFixed(2)},
		{"Total Orders", strconv.FormatInt(r.Summary.TotalOrders, 10)},
		{"Avg Order Value", r.Summary.AvgOrderValue.StringFixed(2)},
		{"Unique Customers", strconv.FormatInt(r.Summary.UniqueCustomers, 10)},
		{},
		{"Order Number", "Order Date", "Customer", "Status", "Items", "Net Amount"},
	}

	for _, row := range summaryRows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	for _, row := range r.Rows {
		record := []string{
			row.OrderNumber,
			row.OrderDate,
			row.CustomerName,
			row.Status,
			strconv.Itoa(row.ItemCount),
			row.NetAmount.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

func orOpen(value string) string {
	if value == "" {
		return "open"
	}
	return value
}
