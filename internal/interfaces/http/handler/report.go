package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	reportapp "github.com/pms/backend/internal/application/report"
)

// ReportHandler handles reporting API endpoints. The report read models
// are returned as-is; they carry their own JSON shape.
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/dashboard", h.Dashboard)
		reports.GET("/revenue", h.Revenue)
		reports.GET("/outstanding", h.Outstanding)
		reports.GET("/collections", h.Collections)
		reports.GET("/rent-roll", h.RentRoll)
		reports.GET("/expenses", h.ExpenseAnalysis)
		reports.GET("/profit-loss", h.ProfitLoss)
		reports.GET("/occupancy", h.Occupancy)
	}
}

// parseDateRange reads optional from/to query parameters
func (h *ReportHandler) parseDateRange(c *gin.Context) (from, to *time.Time, ok bool) {
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			h.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
			return nil, nil, false
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			h.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
			return nil, nil, false
		}
		to = &t
	}
	return from, to, true
}

// Dashboard godoc
// @Summary      Dashboard summary
// @Description  Occupancy, pending rent, monthly collection and expiring contract counts for the admin dashboard
// @Tags         reports
// @Produce      json
// @Success      200 {object} dto.Response{data=report.DashboardSummary}
// @Security     BearerAuth
// @Router       /reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	summary, err := h.reportService.GetDashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// Revenue godoc
// @Summary      Revenue by month
// @Description  Billed versus collected per month. Defaults to the trailing twelve months.
// @Tags         reports
// @Produce      json
// @Param        from query string false "Start date (YYYY-MM-DD)"
// @Param        to query string false "End date (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=[]report.RevenueByMonth}
// @Security     BearerAuth
// @Router       /reports/revenue [get]
func (h *ReportHandler) Revenue(c *gin.Context) {
	from, to, ok := h.parseDateRange(c)
	if !ok {
		return
	}

	rows, err := h.reportService.GetRevenueByMonth(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// Outstanding godoc
// @Summary      Outstanding balances
// @Description  Unpaid and partially paid receipts with tenant context
// @Tags         reports
// @Produce      json
// @Success      200 {object} dto.Response{data=[]report.OutstandingBalance}
// @Security     BearerAuth
// @Router       /reports/outstanding [get]
func (h *ReportHandler) Outstanding(c *gin.Context) {
	rows, err := h.reportService.GetOutstandingBalances(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// Collections godoc
// @Summary      Collections report
// @Description  Payments received within a period, broken down by method. Defaults to the current month.
// @Tags         reports
// @Produce      json
// @Param        from query string false "Start date (YYYY-MM-DD)"
// @Param        to query string false "End date (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=report.CollectionsReport}
// @Security     BearerAuth
// @Router       /reports/collections [get]
func (h *ReportHandler) Collections(c *gin.Context) {
	from, to, ok := h.parseDateRange(c)
	if !ok {
		return
	}

	result, err := h.reportService.GetCollections(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RentRoll godoc
// @Summary      Rent roll
// @Description  Every unit with its current tenancy, optionally scoped to one property
// @Tags         reports
// @Produce      json
// @Param        property_id query string false "Property ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]report.RentRollEntry}
// @Security     BearerAuth
// @Router       /reports/rent-roll [get]
func (h *ReportHandler) RentRoll(c *gin.Context) {
	propertyID, ok := parseUUIDQuery(c, "property_id")
	if !ok {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	rows, err := h.reportService.GetRentRoll(c.Request.Context(), propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// ExpenseAnalysis godoc
// @Summary      Expense analysis
// @Description  Spending within a period broken down by category. Defaults to the current month.
// @Tags         reports
// @Produce      json
// @Param        from query string false "Start date (YYYY-MM-DD)"
// @Param        to query string false "End date (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=report.ExpenseAnalysis}
// @Security     BearerAuth
// @Router       /reports/expenses [get]
func (h *ReportHandler) ExpenseAnalysis(c *gin.Context) {
	from, to, ok := h.parseDateRange(c)
	if !ok {
		return
	}

	result, err := h.reportService.GetExpenseAnalysis(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ProfitLoss godoc
// @Summary      Profit and loss
// @Description  Collections minus expenses for a period. Defaults to the current month.
// @Tags         reports
// @Produce      json
// @Param        from query string false "Start date (YYYY-MM-DD)"
// @Param        to query string false "End date (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=report.ProfitLossStatement}
// @Security     BearerAuth
// @Router       /reports/profit-loss [get]
func (h *ReportHandler) ProfitLoss(c *gin.Context) {
	from, to, ok := h.parseDateRange(c)
	if !ok {
		return
	}

	result, err := h.reportService.GetProfitLoss(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Occupancy godoc
// @Summary      Occupancy report
// @Description  Unit status breakdown, optionally scoped to one property
// @Tags         reports
// @Produce      json
// @Param        property_id query string false "Property ID" format(uuid)
// @Success      200 {object} dto.Response{data=report.OccupancyReport}
// @Security     BearerAuth
// @Router       /reports/occupancy [get]
func (h *ReportHandler) Occupancy(c *gin.Context) {
	propertyID, ok := parseUUIDQuery(c, "property_id")
	if !ok {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	result, err := h.reportService.GetOccupancy(c.Request.Context(), propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
