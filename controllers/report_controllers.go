package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
	"github.com/thanakornw/dineqr/models"
	"github.com/thanakornw/dineqr/utils"
	"github.com/wcharczuk/go-chart/v2"
	"gorm.io/gorm"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

type dailyRevenue struct {
	Day     string  `json:"day"`
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type topMenu struct {
	MenuID   uint    `json:"menu_id"`
	Name     string  `json:"name"`
	NameEn   string  `json:"name_en"`
	Quantity int64   `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

type salesReport struct {
	Start               string         `json:"start"`
	End                 string         `json:"end"`
	TotalOrders         int64          `json:"total_orders"`
	TotalRevenue        float64        `json:"total_revenue"`
	TotalRevenueDisplay string         `json:"total_revenue_display"`
	Daily               []dailyRevenue `json:"daily"`
	TopMenus            []topMenu      `json:"top_menus"`
}

// reportRange parses ?start= and ?end= (YYYY-MM-DD), defaulting to the
// last 7 days.
func reportRange(c *gin.Context) (string, string, error) {
	end := c.DefaultQuery("end", time.Now().Format("2006-01-02"))
	start := c.DefaultQuery("start", time.Now().AddDate(0, 0, -6).Format("2006-01-02"))

	startT, err := time.Parse("2006-01-02", start)
	if err != nil {
		return "", "", fmt.Errorf("invalid start date: %s", start)
	}
	endT, err := time.Parse("2006-01-02", end)
	if err != nil {
		return "", "", fmt.Errorf("invalid end date: %s", end)
	}
	if endT.Before(startT) {
		return "", "", fmt.Errorf("end date before start date")
	}
	return start, end, nil
}

func (rc *ReportController) buildSalesReport(start, end string) (*salesReport, error) {
	report := &salesReport{Start: start, End: end}

	if err := rc.DB.Model(&models.Order{}).
		Where("payment_status = ? AND DATE(created_at) BETWEEN ? AND ?", models.PaymentPaid, start, end).
		Count(&report.TotalOrders).Error; err != nil {
		return nil, err
	}
	if err := rc.DB.Model(&models.Order{}).
		Where("payment_status = ? AND DATE(created_at) BETWEEN ? AND ?", models.PaymentPaid, start, end).
		Select("COALESCE(SUM(total_amount), 0)").Row().Scan(&report.TotalRevenue); err != nil {
		return nil, err
	}

	if err := rc.DB.Model(&models.Order{}).
		Where("payment_status = ? AND DATE(created_at) BETWEEN ? AND ?", models.PaymentPaid, start, end).
		Select("DATE(created_at) AS day, COUNT(*) AS orders, COALESCE(SUM(total_amount), 0) AS revenue").
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&report.Daily).Error; err != nil {
		return nil, err
	}

	if err := rc.DB.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN menus ON menus.id = order_items.menu_id").
		Where("orders.payment_status = ? AND DATE(orders.created_at) BETWEEN ? AND ?", models.PaymentPaid, start, end).
		Select("order_items.menu_id AS menu_id, menus.name AS name, menus.name_en AS name_en, SUM(order_items.quantity) AS quantity, SUM(order_items.quantity * order_items.price) AS revenue").
		Group("order_items.menu_id, menus.name, menus.name_en").
		Order("quantity DESC").
		Limit(10).
		Scan(&report.TopMenus).Error; err != nil {
		return nil, err
	}

	report.TotalRevenueDisplay = utils.FormatCurrencyTHB(report.TotalRevenue)
	return report, nil
}

// GetSalesReport returns aggregated sales for a date range.
func (rc *ReportController) GetSalesReport(c *gin.Context) {
	start, end, err := reportRange(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	report, err := rc.buildSalesReport(start, end)
	if err != nil {
		utils.ErrorLogger.Printf("Failed to build sales report: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Sales report retrieved successfully", report)
}

// ExportSalesReportPDF streams the sales report as a PDF with a
// revenue-by-day chart.
func (rc *ReportController) ExportSalesReportPDF(c *gin.Context) {
	start, end, err := reportRange(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	report, err := rc.buildSalesReport(start, end)
	if err != nil {
		utils.ErrorLogger.Printf("Failed to build sales report: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	chartBuf, err := renderRevenueChart(report.Daily)
	if err != nil {
		utils.ErrorLogger.Printf("Failed to render revenue chart: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Sales Report")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s", report.Start, report.End))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Paid orders: %d", report.TotalOrders))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Total revenue: THB %.2f", report.TotalRevenue))
	pdf.Ln(10)

	if chartBuf != nil {
		opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
		pdf.RegisterImageOptionsReader("revenue-chart", opts, chartBuf)
		pdf.ImageOptions("revenue-chart", 10, pdf.GetY(), 190, 0, false, opts, 0, "")
		pdf.Ln(95)
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Top Selling Menus")
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(90, 7, "Menu", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, "Quantity", "1", 0, "R", false, 0, "")
	pdf.CellFormat(50, 7, "Revenue (THB)", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, m := range report.TopMenus {
		// Core PDF fonts cannot render Thai names, so fall back to
		// the English name when one exists.
		name := m.NameEn
		if name == "" {
			name = fmt.Sprintf("Menu #%d", m.MenuID)
		}
		pdf.CellFormat(90, 7, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%d", m.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(50, 7, fmt.Sprintf("%.2f", m.Revenue), "1", 1, "R", false, 0, "")
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		utils.ErrorLogger.Printf("Failed to generate PDF: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	filename := fmt.Sprintf("sales-report-%s-%s.pdf", report.Start, report.End)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", out.Bytes())
}

func renderRevenueChart(daily []dailyRevenue) (*bytes.Buffer, error) {
	if len(daily) == 0 {
		return nil, nil
	}

	bars := make([]chart.Value, 0, len(daily))
	for _, d := range daily {
		bars = append(bars, chart.Value{Label: d.Day, Value: d.Revenue})
	}

	graph := chart.BarChart{
		Title:    "Revenue by Day",
		Height:   320,
		BarWidth: 40,
		Bars:     bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return &buf, nil
}
