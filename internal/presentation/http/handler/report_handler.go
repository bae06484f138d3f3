package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tomdro61/shop-pilot-sub001/internal/application/service"
	"github.com/tomdro61/shop-pilot-sub001/internal/presentation/http/dto/response"
	"github.com/tomdro61/shop-pilot-sub001/pkg/daterange"
)

// ReportHandler handles reporting HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// reportQuery reads the shared range parameters. Unknown presets and
// half-open custom ranges are resolved downstream, not rejected here.
func reportQuery(c *gin.Context) service.ReportQuery {
	return service.ReportQuery{
		Preset: daterange.Preset(c.DefaultQuery("range", string(daterange.PresetThisMonth))),
		From:   parseDateQuery(c, "from"),
		To:     parseDateQuery(c, "to"),
	}
}

// Summary handles the reports screen's headline numbers
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.reportService.GetSummary(c.Request.Context(), reportQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report summary retrieved successfully", summary)
}

// SalesByCategory handles the category revenue breakdown
func (h *ReportHandler) SalesByCategory(c *gin.Context) {
	r, results, err := h.reportService.GetSalesByCategory(c.Request.Context(), reportQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category sales retrieved successfully", gin.H{
		"range":      r,
		"categories": results,
	})
}

// TopCustomers handles the top customers ranking
func (h *ReportHandler) TopCustomers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	r, results, err := h.reportService.GetTopCustomers(c.Request.Context(), reportQuery(c), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Top customers retrieved successfully", gin.H{
		"range":     r,
		"customers": results,
	})
}

// DailyRevenue handles the per-day revenue series
func (h *ReportHandler) DailyRevenue(c *gin.Context) {
	r, results, err := h.reportService.GetDailyRevenue(c.Request.Context(), reportQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily revenue retrieved successfully", gin.H{
		"range": r,
		"days":  results,
	})
}
