package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/report"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/orderdesk/backend/internal/domain/trade"
	infra "github.com/orderdesk/backend/internal/infrastructure/printing"
	"go.uber.org/zap"
)

// ReportService aggregates order data into summaries and export documents
type ReportService struct {
	orderRepo      trade.OrderRepository
	templateEngine *infra.TemplateEngine
	pdfRenderer    infra.PDFRenderer
	logger         *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(
	orderRepo trade.OrderRepository,
	templateEngine *infra.TemplateEngine,
	pdfRenderer infra.PDFRenderer,
	logger *zap.Logger,
) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		orderRepo:      orderRepo,
		templateEngine: templateEngine,
		pdfRenderer:    pdfRenderer,
		logger:         logger,
	}
}

// Summary computes aggregate sales statistics for the period
func (s *ReportService) Summary(ctx context.Context, query ReportQuery) (*SummaryResponse, error) {
	orders, err := s.ordersInRange(ctx, query)
	if err != nil {
		return nil, err
	}

	response := ToSummaryResponse(report.Summarize(orders, query.StartDate, query.EndDate))
	return &response, nil
}

// Report builds the full sales report (summary plus rows) for the period
func (s *ReportService) Report(ctx context.Context, query ReportQuery) (*ReportResponse, error) {
	orders, err := s.ordersInRange(ctx, query)
	if err != nil {
		return nil, err
	}

	result := report.BuildReport(orders, query.StartDate, query.EndDate)
	return &ReportResponse{
		Summary: ToSummaryResponse(result.Summary),
		Rows:    result.Rows,
	}, nil
}

// ExportPDF renders the sales report for the period as a PDF document
func (s *ReportService) ExportPDF(ctx context.Context, query ReportQuery) (*ExportResult, error) {
	if s.templateEngine == nil || s.pdfRenderer == nil {
		return nil, shared.NewDomainError("EXPORT_UNAVAILABLE", "PDF rendering is not configured")
	}

	orders, err := s.ordersInRange(ctx, query)
	if err != nil {
		return nil, err
	}

	result := report.BuildReport(orders, query.StartDate, query.EndDate)

	html, err := s.templateEngine.RenderSalesReport(result)
	if err != nil {
		return nil, fmt.Errorf("failed to render report template: %w", err)
	}

	rendered, err := s.pdfRenderer.Render(ctx, &infra.RenderRequest{
		HTML:        html,
		Title:       "Sales Report",
		PaperSize:   infra.PaperSizeA4,
		Orientation: infra.OrientationPortrait,
		Margins:     infra.DefaultMargins(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render report PDF: %w", err)
	}

	s.logger.Info("sales report exported",
		zap.Int("orders", len(result.Rows)),
		zap.Int("pages", rendered.PageCount),
		zap.Duration("render_duration", rendered.RenderDuration))

	return &ExportResult{
		FileName:    exportFileName("sales-report", query, "pdf"),
		ContentType: "application/pdf",
		Data:        rendered.PDFData,
	}, nil
}

// ExportCSV renders the sales report for the period as a spreadsheet-
// compatible CSV file. Rows keep the same stable order as the PDF export.
func (s *ReportService) ExportCSV(ctx context.Context, query ReportQuery) (*ExportResult, error) {
	orders, err := s.ordersInRange(ctx, query)
	if err != nil {
		return nil, err
	}

	result := report.BuildReport(orders, query.StartDate, query.EndDate)

	data, err := infra.WriteSalesReportCSV(result)
	if err != nil {
		return nil, fmt.Errorf("failed to write report CSV: %w", err)
	}

	return &ExportResult{
		FileName:    exportFileName("sales-report", query, "csv"),
		ContentType: "text/csv",
		Data:        data,
	}, nil
}

// ExportOrderPDF renders a single order as a printable PDF document
func (s *ReportService) ExportOrderPDF(ctx context.Context, orderID uuid.UUID) (*ExportResult, error) {
	if s.templateEngine == nil || s.pdfRenderer == nil {
		return nil, shared.NewDomainError("EXPORT_UNAVAILABLE", "PDF rendering is not configured")
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	html, err := s.templateEngine.RenderOrderDocument(order)
	if err != nil {
		return nil, fmt.Errorf("failed to render order template: %w", err)
	}

	rendered, err := s.pdfRenderer.Render(ctx, &infra.RenderRequest{
		HTML:        html,
		Title:       fmt.Sprintf("Order %s", order.OrderNumber),
		PaperSize:   infra.PaperSizeA4,
		Orientation: infra.OrientationPortrait,
		Margins:     infra.DefaultMargins(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render order PDF: %w", err)
	}

	return &ExportResult{
		FileName:    fmt.Sprintf("order-%s.pdf", order.OrderNumber),
		ContentType: "application/pdf",
		Data:        rendered.PDFData,
	}, nil
}

// ordersInRange loads all orders and applies the inclusive date filter
// in memory, so orders with malformed business dates are skipped
// instead of failing the report.
func (s *ReportService) ordersInRange(ctx context.Context, query ReportQuery) ([]trade.Order, error) {
	from, err := parseBound(query.StartDate)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "start_date must be formatted as YYYY-MM-DD")
	}
	to, err := parseBound(query.EndDate)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "end_date must be formatted as YYYY-MM-DD")
	}

	// PageSize 0 disables pagination so the whole period is covered
	orders, err := s.orderRepo.FindAll(ctx, shared.Filter{
		OrderBy:  "created_at",
		OrderDir: "asc",
		Filters:  make(map[string]interface{}),
	})
	if err != nil {
		return nil, err
	}

	return report.FilterByDateRange(orders, from, to), nil
}

func parseBound(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", value)
}

func exportFileName(prefix string, query ReportQuery, ext string) string {
	if query.StartDate != "" || query.EndDate != "" {
		return fmt.Sprintf("%s-%s-%s.%s", prefix, orDash(query.StartDate), orDash(query.EndDate), ext)
	}
	return fmt.Sprintf("%s.%s", prefix, ext)
}

func orDash(value string) string {
	if value == "" {
		return "open"
	}
	return value
}
