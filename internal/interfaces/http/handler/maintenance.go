package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	maintenanceapp "github.com/pms/backend/internal/application/maintenance"
)

// MaintenanceHandler handles maintenance request API endpoints
type MaintenanceHandler struct {
	BaseHandler
	requestService *maintenanceapp.RequestService
}

// NewMaintenanceHandler creates a new maintenance handler
func NewMaintenanceHandler(requestService *maintenanceapp.RequestService) *MaintenanceHandler {
	return &MaintenanceHandler{
		requestService: requestService,
	}
}

// RegisterRoutes registers maintenance routes
func (h *MaintenanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	requests := rg.Group("/maintenance-requests")
	{
		requests.POST("", h.Create)
		requests.GET("", h.List)
		requests.GET("/open-count", h.CountOpen)
		requests.GET("/:id", h.GetByID)
		requests.PUT("/:id", h.Update)
		requests.POST("/:id/start", h.Start)
		requests.POST("/:id/complete", h.Complete)
		requests.POST("/:id/cancel", h.Cancel)
	}
}

// MaintenanceRequestResponse is the maintenance request read model
// returned over HTTP
type MaintenanceRequestResponse struct {
	ID           uuid.UUID  `json:"id"`
	UnitID       uuid.UUID  `json:"unit_id"`
	Description  string     `json:"description"`
	Status       string     `json:"status"`
	ReportedDate time.Time  `json:"reported_date"`
	ResolvedDate *time.Time `json:"resolved_date,omitempty"`
	Cost         string     `json:"cost"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func toMaintenanceRequestResponse(r maintenanceapp.RequestInfo) MaintenanceRequestResponse {
	return MaintenanceRequestResponse{
		ID:           r.ID,
		UnitID:       r.UnitID,
		Description:  r.Description,
		Status:       r.Status,
		ReportedDate: r.ReportedDate,
		ResolvedDate: r.ResolvedDate,
		Cost:         r.Cost,
		Notes:        r.Notes,
		CreatedAt:    r.CreatedAt,
	}
}

// CreateMaintenanceRequest represents a request to log a maintenance issue
type CreateMaintenanceRequest struct {
	UnitID       string `json:"unit_id" binding:"required,uuid"`
	Description  string `json:"description" binding:"required,min=1,max=1000"`
	ReportedDate string `json:"reported_date" binding:"required"` // "2006-01-02"
	Notes        string `json:"notes" binding:"max=1000"`
}

// UpdateMaintenanceRequest amends an open maintenance request
type UpdateMaintenanceRequest struct {
	Description *string `json:"description" binding:"omitempty,min=1,max=1000"`
	Notes       *string `json:"notes" binding:"omitempty,max=1000"`
}

// CompleteMaintenanceRequest closes a request with its final cost
type CompleteMaintenanceRequest struct {
	Cost  float64 `json:"cost" binding:"gte=0"`
	Notes string  `json:"notes" binding:"max=1000"`
}

// Create godoc
// @Summary      Log a maintenance request
// @Tags         maintenance
// @Accept       json
// @Produce      json
// @Param        request body CreateMaintenanceRequest true "Maintenance request"
// @Success      201 {object} dto.Response{data=MaintenanceRequestResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /maintenance-requests [post]
func (h *MaintenanceHandler) Create(c *gin.Context) {
	var req CreateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	unitID, err := uuid.Parse(req.UnitID)
	if err != nil {
		h.BadRequest(c, "Invalid unit ID format")
		return
	}
	reportedDate, err := time.Parse(dateLayout, req.ReportedDate)
	if err != nil {
		h.BadRequest(c, "Invalid reported date, expected YYYY-MM-DD")
		return
	}

	request, err := h.requestService.CreateRequest(c.Request.Context(), maintenanceapp.CreateRequestInput{
		UnitID:       unitID,
		Description:  req.Description,
		ReportedDate: reportedDate,
		Notes:        req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toMaintenanceRequestResponse(*request))
}

// List godoc
// @Summary      List maintenance requests
// @Tags         maintenance
// @Produce      json
// @Param        unit_id query string false "Unit ID" format(uuid)
// @Param        status query string false "Request status" Enums(pending, in_progress, completed, cancelled)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]MaintenanceRequestResponse}
// @Security     BearerAuth
// @Router       /maintenance-requests [get]
func (h *MaintenanceHandler) List(c *gin.Context) {
	filter, err := buildFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	unitID, ok := parseUUIDQuery(c, "unit_id")
	if !ok {
		h.BadRequest(c, "Invalid unit ID format")
		return
	}

	result, err := h.requestService.ListRequests(c.Request.Context(), maintenanceapp.ListRequestsInput{
		Filter: filter,
		UnitID: unitID,
		Status: c.Query("status"),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	requests := make([]MaintenanceRequestResponse, 0, len(result.Items))
	for _, r := range result.Items {
		requests = append(requests, toMaintenanceRequestResponse(r))
	}

	h.SuccessWithMeta(c, requests, result.Total, filter.Page, filter.PageSize)
}

// CountOpen godoc
// @Summary      Count open maintenance requests
// @Description  Count requests that are pending or in progress
// @Tags         maintenance
// @Produce      json
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /maintenance-requests/open-count [get]
func (h *MaintenanceHandler) CountOpen(c *gin.Context) {
	count, err := h.requestService.CountOpen(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"open": count})
}

// GetByID godoc
// @Summary      Get maintenance request by ID
// @Tags         maintenance
// @Produce      json
// @Param        id path string true "Request ID" format(uuid)
// @Success      200 {object} dto.Response{data=MaintenanceRequestResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /maintenance-requests/{id} [get]
func (h *MaintenanceHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid request ID format")
		return
	}

	request, err := h.requestService.GetRequest(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toMaintenanceRequestResponse(*request))
}

// Update godoc
// @Summary      Update a maintenance request
// @Tags         maintenance
// @Accept       json
// @Produce      json
// @Param        id path string true "Request ID" format(uuid)
// @Param        request body UpdateMaintenanceRequest true "Update request"
// @Success      200 {object} dto.Response{data=MaintenanceRequestResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /maintenance-requests/{id} [put]
func (h *MaintenanceHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid request ID format")
		return
	}

	var req UpdateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	request, err := h.requestService.UpdateRequest(c.Request.Context(), id, maintenanceapp.UpdateRequestInput{
		Description: req.Description,
		Notes:       req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toMaintenanceRequestResponse(*request))
}

// Start godoc
// @Summary      Start work on a request
// @Tags         maintenance
// @Produce      json
// @Param        id path string true "Request ID" format(uuid)
// @Success      200 {object} dto.Response{data=MaintenanceRequestResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /maintenance-requests/{id}/start [post]
func (h *MaintenanceHandler) Start(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid request ID format")
		return
	}

	request, err := h.requestService.StartRequest(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toMaintenanceRequestResponse(*request))
}

// Complete godoc
// @Summary      Complete a request
// @Description  Close a request and record its final cost
// @Tags         maintenance
// @Accept       json
// @Produce      json
// @Param        id path string true "Request ID" format(uuid)
// @Param        request body CompleteMaintenanceRequest true "Completion details"
// @Success      200 {object} dto.Response{data=MaintenanceRequestResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /maintenance-requests/{id}/complete [post]
func (h *MaintenanceHandler) Complete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid request ID format")
		return
	}

	var req CompleteMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	request, err := h.requestService.CompleteRequest(c.Request.Context(), maintenanceapp.CompleteRequestInput{
		RequestID: id,
		Cost:      decimal.NewFromFloat(req.Cost),
		Notes:     req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toMaintenanceRequestResponse(*request))
}

// Cancel godoc
// @Summary      Cancel a request
// @Tags         maintenance
// @Produce      json
// @Param        id path string true "Request ID" format(uuid)
// @Success      200 {object} dto.Response{data=MaintenanceRequestResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /maintenance-requests/{id}/cancel [post]
func (h *MaintenanceHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid request ID format")
		return
	}

	request, err := h.requestService.CancelRequest(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toMaintenanceRequestResponse(*request))
}
