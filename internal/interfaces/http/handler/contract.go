package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	tenancyapp "github.com/pms/backend/internal/application/tenancy"
)

// ContractHandler handles rental contract API endpoints
type ContractHandler struct {
	BaseHandler
	contractService *tenancyapp.ContractService
}

// NewContractHandler creates a new contract handler
func NewContractHandler(contractService *tenancyapp.ContractService) *ContractHandler {
	return &ContractHandler{
		contractService: contractService,
	}
}

// RegisterRoutes registers contract routes
func (h *ContractHandler) RegisterRoutes(rg *gin.RouterGroup) {
	contracts := rg.Group("/contracts")
	{
		contracts.POST("", h.Create)
		contracts.GET("", h.List)
		contracts.GET("/expiring", h.ListExpiring)
		contracts.GET("/:id", h.GetByID)
		contracts.POST("/:id/extend", h.Extend)
		contracts.POST("/:id/cancel", h.Cancel)
		contracts.POST("/:id/terminate", h.Terminate)
		contracts.POST("/:id/expire", h.MarkExpired)
	}
}

// ContractResponse is the contract read model returned over HTTP
type ContractResponse struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customer_id"`
	UnitID     uuid.UUID `json:"unit_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	RentAmount string    `json:"rent_amount"`
	Deposit    string    `json:"deposit"`
	BillingDay int       `json:"billing_day"`
	Status     string    `json:"status"`
	Duration   string    `json:"duration"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toContractResponse(ct tenancyapp.ContractInfo) ContractResponse {
	return ContractResponse{
		ID:         ct.ID,
		CustomerID: ct.CustomerID,
		UnitID:     ct.UnitID,
		StartDate:  ct.StartDate,
		EndDate:    ct.EndDate,
		RentAmount: ct.RentAmount,
		Deposit:    ct.Deposit,
		BillingDay: ct.BillingDay,
		Status:     ct.Status,
		Duration:   ct.Duration,
		Notes:      ct.Notes,
		CreatedAt:  ct.CreatedAt,
		UpdatedAt:  ct.UpdatedAt,
	}
}

// CreateContractRequest represents a request to let a unit to a tenant.
// RentAmount zero means use the unit's asking rent; a missing deposit is
// computed from the property's billing defaults.
type CreateContractRequest struct {
	CustomerID string   `json:"customer_id" binding:"required,uuid"`
	UnitID     string   `json:"unit_id" binding:"required,uuid"`
	StartDate  string   `json:"start_date" binding:"required"` // "2006-01-02"
	EndDate    string   `json:"end_date" binding:"required"`
	RentAmount float64  `json:"rent_amount" binding:"omitempty,gte=0"`
	Deposit    *float64 `json:"deposit" binding:"omitempty,gte=0"`
	BillingDay int      `json:"billing_day" binding:"omitempty,min=1,max=28"`
	Notes      string   `json:"notes" binding:"max=1000"`
}

// ExtendContractRequest moves a contract's end date forward
type ExtendContractRequest struct {
	NewEndDate string `json:"new_end_date" binding:"required"` // "2006-01-02"
}

const dateLayout = "2006-01-02"

// Create godoc
// @Summary      Create a rental contract
// @Description  Let a vacant unit to a tenant
// @Tags         contracts
// @Accept       json
// @Produce      json
// @Param        request body CreateContractRequest true "Contract creation request"
// @Success      201 {object} dto.Response{data=ContractResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /contracts [post]
func (h *ContractHandler) Create(c *gin.Context) {
	var req CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}
	unitID, err := uuid.Parse(req.UnitID)
	if err != nil {
		h.BadRequest(c, "Invalid unit ID format")
		return
	}
	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		h.BadRequest(c, "Invalid start date, expected YYYY-MM-DD")
		return
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		h.BadRequest(c, "Invalid end date, expected YYYY-MM-DD")
		return
	}

	input := tenancyapp.CreateContractInput{
		CustomerID: customerID,
		UnitID:     unitID,
		StartDate:  startDate,
		EndDate:    endDate,
		RentAmount: decimal.NewFromFloat(req.RentAmount),
		BillingDay: req.BillingDay,
		Notes:      req.Notes,
	}
	if req.Deposit != nil {
		d := decimal.NewFromFloat(*req.Deposit)
		input.Deposit = &d
	}

	contract, err := h.contractService.CreateContract(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toContractResponse(*contract))
}

// List godoc
// @Summary      List contracts
// @Tags         contracts
// @Produce      json
// @Param        customer_id query string false "Customer ID" format(uuid)
// @Param        unit_id query string false "Unit ID" format(uuid)
// @Param        status query string false "Contract status" Enums(active, expired, terminated, cancelled)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]ContractResponse}
// @Security     BearerAuth
// @Router       /contracts [get]
func (h *ContractHandler) List(c *gin.Context) {
	filter, err := buildFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customerID, ok := parseUUIDQuery(c, "customer_id")
	if !ok {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}
	unitID, ok := parseUUIDQuery(c, "unit_id")
	if !ok {
		h.BadRequest(c, "Invalid unit ID format")
		return
	}

	result, err := h.contractService.ListContracts(c.Request.Context(), tenancyapp.ListContractsInput{
		Filter:     filter,
		CustomerID: customerID,
		UnitID:     unitID,
		Status:     c.Query("status"),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	contracts := make([]ContractResponse, 0, len(result.Items))
	for _, ct := range result.Items {
		contracts = append(contracts, toContractResponse(ct))
	}

	h.SuccessWithMeta(c, contracts, result.Total, filter.Page, filter.PageSize)
}

// ListExpiring godoc
// @Summary      List expiring contracts
// @Description  List active contracts ending within the given number of days
// @Tags         contracts
// @Produce      json
// @Param        within_days query int false "Expiry window in days" default(30)
// @Success      200 {object} dto.Response{data=[]ContractResponse}
// @Security     BearerAuth
// @Router       /contracts/expiring [get]
func (h *ContractHandler) ListExpiring(c *gin.Context) {
	filter, err := buildFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	withinDays := 0
	if raw := c.Query("within_days"); raw != "" {
		withinDays, err = strconv.Atoi(raw)
		if err != nil || withinDays < 0 {
			h.BadRequest(c, "Invalid within_days value")
			return
		}
	}

	result, err := h.contractService.ListExpiring(c.Request.Context(), withinDays, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	contracts := make([]ContractResponse, 0, len(result))
	for _, ct := range result {
		contracts = append(contracts, toContractResponse(ct))
	}

	h.Success(c, contracts)
}

// GetByID godoc
// @Summary      Get contract by ID
// @Tags         contracts
// @Produce      json
// @Param        id path string true "Contract ID" format(uuid)
// @Success      200 {object} dto.Response{data=ContractResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /contracts/{id} [get]
func (h *ContractHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid contract ID format")
		return
	}

	contract, err := h.contractService.GetContract(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toContractResponse(*contract))
}

// Extend godoc
// @Summary      Extend a contract
// @Description  Move an active contract's end date forward
// @Tags         contracts
// @Accept       json
// @Produce      json
// @Param        id path string true "Contract ID" format(uuid)
// @Param        request body ExtendContractRequest true "New end date"
// @Success      200 {object} dto.Response{data=ContractResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /contracts/{id}/extend [post]
func (h *ContractHandler) Extend(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid contract ID format")
		return
	}

	var req ExtendContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	newEndDate, err := time.Parse(dateLayout, req.NewEndDate)
	if err != nil {
		h.BadRequest(c, "Invalid end date, expected YYYY-MM-DD")
		return
	}

	contract, err := h.contractService.ExtendContract(c.Request.Context(), tenancyapp.ExtendContractInput{
		ContractID: id,
		NewEndDate: newEndDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toContractResponse(*contract))
}

// Cancel godoc
// @Summary      Cancel a contract
// @Description  Cancel a contract before it takes effect. The unit returns to the market.
// @Tags         contracts
// @Produce      json
// @Param        id path string true "Contract ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /contracts/{id}/cancel [post]
func (h *ContractHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid contract ID format")
		return
	}

	if err := h.contractService.CancelContract(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Contract cancelled"})
}

// Terminate godoc
// @Summary      Terminate a contract
// @Description  End an active tenancy early. The unit returns to the market.
// @Tags         contracts
// @Produce      json
// @Param        id path string true "Contract ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /contracts/{id}/terminate [post]
func (h *ContractHandler) Terminate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid contract ID format")
		return
	}

	if err := h.contractService.TerminateContract(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Contract terminated"})
}

// MarkExpired godoc
// @Summary      Mark a contract expired
// @Description  Mark a contract past its end date as expired. The unit returns to the market.
// @Tags         contracts
// @Produce      json
// @Param        id path string true "Contract ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /contracts/{id}/expire [post]
func (h *ContractHandler) MarkExpired(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid contract ID format")
		return
	}

	if err := h.contractService.MarkExpired(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Contract marked expired"})
}
