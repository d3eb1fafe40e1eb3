package printing

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/orderdesk/backend/internal/domain/report"
	"github.com/orderdesk/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.html
var templateFS embed.FS

// maxReportRows caps how many order rows a rendered report shows.
// Longer periods get a "more orders" note instead of an unbounded table.
const maxReportRows = 15

// TemplateEngine renders business documents to HTML using Go's
// html/template package with custom formatting functions.
type TemplateEngine struct {
	templates *template.Template
}

// NewTemplateEngine creates a template engine with the embedded document
// templates parsed and ready.
func NewTemplateEngine() (*TemplateEngine, error) {
	funcMap := template.FuncMap{
		"formatMoney":   formatMoney,
		"formatDecimal": formatDecimal,
		"formatDate":    formatDate,
		"formatPercent": formatPercent,
		"title":         titleCase,
		"upper":         strings.ToUpper,
		"lower":         strings.ToLower,
		"statusLabel":   statusLabel,
		"now":           time.Now,
	}

	templates, err := template.New("documents").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse document templates: %w", err)
	}

	return &TemplateEngine{templates: templates}, nil
}

// salesReportView is the data bound to the sales report template
type salesReportView struct {
	Summary     report.SalesSummary
	Rows        []report.SalesReportRow
	MoreOrders  int
	GeneratedAt time.Time
}

// RenderSalesReport renders the sales report document as HTML
func (e *TemplateEngine) RenderSalesReport(r report.SalesReport) (string, error) {
	view := salesReportView{
		Summary:     r.Summary,
		Rows:        r.Rows,
		GeneratedAt: time.Now(),
	}
	if len(r.Rows) > maxReportRows {
		view.Rows = r.Rows[:maxReportRows]
		view.MoreOrders = len(r.Rows) - maxReportRows
	}

	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, "sales_report.html", view); err != nil {
		return "", fmt.Errorf("failed to execute sales report template: %w", err)
	}
	return buf.String(), nil
}

// orderDocumentView is the data bound to the order document template
type orderDocumentView struct {
	Order       *trade.Order
	GeneratedAt time.Time
}

// RenderOrderDocument renders a single order as a printable HTML document
func (e *TemplateEngine) RenderOrderDocument(order *trade.Order) (string, error) {
	if order == nil {
		return "", fmt.Errorf("order is nil")
	}

	view := orderDocumentView{
		Order:       order,
		GeneratedAt: time.Now(),
	}

	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, "order_document.html", view); err != nil {
		return "", fmt.Errorf("failed to execute order document template: %w", err)
	}
	return buf.String(), nil
}

// formatMoney formats a decimal value as dollar currency.
// Example: 1234.5 -> "$1,234.50"
func formatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	parts := strings.Split(d.StringFixed(2), ".")
	intPart := parts[0]
	decPart := "00"
	if len(parts) > 1 {
		decPart = parts[1]
	}

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	return sign + "$" + strings.Join(groups, ",") + "." + decPart
}

// formatDecimal formats with fixed precision
func formatDecimal(d decimal.Decimal, precision int) string {
	return d.StringFixed(int32(precision))
}

// formatPercent formats a ratio as a percentage.
// Example: 0.10 -> "10%"
func formatPercent(d decimal.Decimal) string {
	return d.Mul(decimal.NewFromInt(100)).StringFixed(0) + "%"
}

// formatDate formats a time as YYYY-MM-DD, empty for zero times
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func titleCase(s string) string {
	caser := cases.Title(language.English)
	return caser.String(s)
}

// statusLabel turns an order status constant into display text.
// Example: "PENDING" -> "Pending"
func statusLabel(status string) string {
	return titleCase(strings.ToLower(strings.ReplaceAll(status, "_", " ")))
}
