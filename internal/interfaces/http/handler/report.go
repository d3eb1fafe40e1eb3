package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	reportapp "github.com/orderdesk/backend/internal/application/report"
	"github.com/orderdesk/backend/internal/interfaces/http/middleware"
)

// ReportHandler handles sales report API endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Summary returns the aggregated sales statistics for a period
func (h *ReportHandler) Summary(c *gin.Context) {
	var query reportapp.ReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	summary, err := h.reportService.Summary(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// Report returns the full sales report with per-order rows
func (h *ReportHandler) Report(c *gin.Context) {
	var query reportapp.ReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	report, err := h.reportService.Report(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// ExportPDF renders the sales report as a downloadable PDF
func (h *ReportHandler) ExportPDF(c *gin.Context) {
	var query reportapp.ReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.reportService.ExportPDF(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.serveAttachment(c, result)
}

// ExportCSV renders the sales report as a downloadable CSV
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	var query reportapp.ReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.reportService.ExportCSV(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.serveAttachment(c, result)
}

// ExportOrderPDF renders a single order document as a downloadable PDF
func (h *ReportHandler) ExportOrderPDF(c *gin.Context) {
	orderID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.reportService.ExportOrderPDF(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.serveAttachment(c, result)
}

func (h *ReportHandler) serveAttachment(c *gin.Context, result *reportapp.ExportResult) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
