package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	billingapp "github.com/pms/backend/internal/application/billing"
)

// ExpenseHandler handles property expense API endpoints
type ExpenseHandler struct {
	BaseHandler
	expenseService *billingapp.ExpenseService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService *billingapp.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
	}
}

// RegisterRoutes registers expense routes
func (h *ExpenseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.Create)
		expenses.GET("", h.List)
		expenses.GET("/:id", h.GetByID)
		expenses.PUT("/:id", h.Update)
		expenses.DELETE("/:id", h.Delete)
	}
}

// ExpenseResponse is the expense read model returned over HTTP
type ExpenseResponse struct {
	ID          uuid.UUID `json:"id"`
	PropertyID  uuid.UUID `json:"property_id"`
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	ExpenseDate time.Time `json:"expense_date"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}

func toExpenseResponse(e billingapp.ExpenseInfo) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		PropertyID:  e.PropertyID,
		Description: e.Description,
		Amount:      e.Amount,
		ExpenseDate: e.ExpenseDate,
		Category:    e.Category,
		CreatedAt:   e.CreatedAt,
	}
}

// CreateExpenseRequest represents a request to record an expense
type CreateExpenseRequest struct {
	PropertyID  string  `json:"property_id" binding:"required,uuid"`
	Description string  `json:"description" binding:"required,min=1,max=500"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	ExpenseDate string  `json:"expense_date" binding:"required"` // "2006-01-02"
	Category    string  `json:"category" binding:"required,oneof=repairs utilities salaries legal other"`
}

// UpdateExpenseRequest represents a request to amend an expense
type UpdateExpenseRequest struct {
	Description string  `json:"description" binding:"required,min=1,max=500"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	ExpenseDate string  `json:"expense_date" binding:"required"`
	Category    string  `json:"category" binding:"required,oneof=repairs utilities salaries legal other"`
}

// Create godoc
// @Summary      Record an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        request body CreateExpenseRequest true "Expense record request"
// @Success      201 {object} dto.Response{data=ExpenseResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}
	expenseDate, err := time.Parse(dateLayout, req.ExpenseDate)
	if err != nil {
		h.BadRequest(c, "Invalid expense date, expected YYYY-MM-DD")
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), billingapp.CreateExpenseInput{
		PropertyID:  propertyID,
		Description: req.Description,
		Amount:      decimal.NewFromFloat(req.Amount),
		ExpenseDate: expenseDate,
		Category:    req.Category,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toExpenseResponse(*expense))
}

// List godoc
// @Summary      List expenses
// @Tags         expenses
// @Produce      json
// @Param        property_id query string false "Property ID" format(uuid)
// @Param        category query string false "Expense category" Enums(repairs, utilities, salaries, legal, other)
// @Param        from query string false "Start date (YYYY-MM-DD)"
// @Param        to query string false "End date (YYYY-MM-DD)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]ExpenseResponse}
// @Security     BearerAuth
// @Router       /expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	filter, err := buildFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	propertyID, ok := parseUUIDQuery(c, "property_id")
	if !ok {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	input := billingapp.ListExpensesInput{
		Filter:     filter,
		PropertyID: propertyID,
		Category:   c.Query("category"),
	}
	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(dateLayout, raw)
		if err != nil {
			h.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
			return
		}
		input.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(dateLayout, raw)
		if err != nil {
			h.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
			return
		}
		input.To = &to
	}

	result, err := h.expenseService.ListExpenses(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	expenses := make([]ExpenseResponse, 0, len(result.Items))
	for _, e := range result.Items {
		expenses = append(expenses, toExpenseResponse(e))
	}

	h.SuccessWithMeta(c, expenses, result.Total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @Summary      Get expense by ID
// @Tags         expenses
// @Produce      json
// @Param        id path string true "Expense ID" format(uuid)
// @Success      200 {object} dto.Response{data=ExpenseResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /expenses/{id} [get]
func (h *ExpenseHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}

	expense, err := h.expenseService.GetExpense(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toExpenseResponse(*expense))
}

// Update godoc
// @Summary      Amend an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        id path string true "Expense ID" format(uuid)
// @Param        request body UpdateExpenseRequest true "Expense update request"
// @Success      200 {object} dto.Response{data=ExpenseResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	expenseDate, err := time.Parse(dateLayout, req.ExpenseDate)
	if err != nil {
		h.BadRequest(c, "Invalid expense date, expected YYYY-MM-DD")
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), id, billingapp.UpdateExpenseInput{
		Description: req.Description,
		Amount:      decimal.NewFromFloat(req.Amount),
		ExpenseDate: expenseDate,
		Category:    req.Category,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toExpenseResponse(*expense))
}

// Delete godoc
// @Summary      Delete an expense
// @Tags         expenses
// @Produce      json
// @Param        id path string true "Expense ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
