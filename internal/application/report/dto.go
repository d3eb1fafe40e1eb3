package report

import (
	"github.com/orderdesk/backend/internal/domain/report"
	"github.com/shopspring/decimal"
)

// ReportQuery represents the date range for a report request.
// Bounds are YYYY-MM-DD strings; an empty bound leaves that side open.
type ReportQuery struct {
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

// SummaryResponse represents the aggregated sales statistics
type SummaryResponse struct {
	PeriodStart     string          `json:"period_start,omitempty"`
	PeriodEnd       string          `json:"period_end,omitempty"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	TotalOrders     int64           `json:"total_orders"`
	AvgOrderValue   decimal.Decimal `json:"avg_order_value"`
	UniqueCustomers int64           `json:"unique_customers"`
}

// ReportResponse bundles the summary with the report rows
type ReportResponse struct {
	Summary SummaryResponse         `json:"summary"`
	Rows    []report.SalesReportRow `json:"rows"`
}

// ExportResult carries a rendered export document
type ExportResult struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

// ToSummaryResponse converts a domain summary to its response shape
func ToSummaryResponse(summary report.SalesSummary) SummaryResponse {
	return SummaryResponse{
		PeriodStart:     summary.PeriodStart,
		PeriodEnd:       summary.PeriodEnd,
		TotalRevenue:    summary.TotalRevenue,
		TotalOrders:     summary.TotalOrders,
		AvgOrderValue:   summary.AvgOrderValue,
		UniqueCustomers: summary.UniqueCustomers,
	}
}
