package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	propertyapp "github.com/pms/backend/internal/application/property"
)

// UnitHandler handles unit-related API endpoints
type UnitHandler struct {
	BaseHandler
	unitService *propertyapp.UnitService
}

// NewUnitHandler creates a new unit handler
func NewUnitHandler(unitService *propertyapp.UnitService) *UnitHandler {
	return &UnitHandler{
		unitService: unitService,
	}
}

// RegisterRoutes registers unit routes
func (h *UnitHandler) RegisterRoutes(rg *gin.RouterGroup) {
	units := rg.Group("/units")
	{
		units.POST("", h.Create)
		units.GET("", h.List)
		units.GET("/:id", h.GetByID)
		units.PUT("/:id", h.Update)
		units.DELETE("/:id", h.Delete)
		units.POST("/:id/maintenance", h.MarkUnderMaintenance)
		units.POST("/:id/return-to-market", h.ReturnToMarket)
	}
}

// UnitResponse is the unit read model returned over HTTP
type UnitResponse struct {
	ID         uuid.UUID `json:"id"`
	PropertyID uuid.UUID `json:"property_id"`
	UnitNumber string    `json:"unit_number"`
	UnitType   string    `json:"unit_type"`
	RentAmount string    `json:"rent_amount"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toUnitResponse(u propertyapp.UnitInfo) UnitResponse {
	return UnitResponse{
		ID:         u.ID,
		PropertyID: u.PropertyID,
		UnitNumber: u.UnitNumber,
		UnitType:   u.UnitType,
		RentAmount: u.RentAmount,
		Status:     u.Status,
		Notes:      u.Notes,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// CreateUnitRequest represents a request to create a unit
type CreateUnitRequest struct {
	PropertyID string  `json:"property_id" binding:"required,uuid"`
	UnitNumber string  `json:"unit_number" binding:"required,min=1,max=50"`
	UnitType   string  `json:"unit_type" binding:"required,oneof=bedsitter one_bedroom two_bedroom shop other"`
	RentAmount float64 `json:"rent_amount" binding:"required,gt=0"`
	Notes      string  `json:"notes" binding:"max=1000"`
}

// UpdateUnitRequest represents a request to update a unit
type UpdateUnitRequest struct {
	UnitNumber *string  `json:"unit_number" binding:"omitempty,min=1,max=50"`
	UnitType   *string  `json:"unit_type" binding:"omitempty,oneof=bedsitter one_bedroom two_bedroom shop other"`
	RentAmount *float64 `json:"rent_amount" binding:"omitempty,gt=0"`
	Notes      *string  `json:"notes" binding:"omitempty,max=1000"`
}

// Create godoc
// @Summary      Create a unit
// @Tags         units
// @Accept       json
// @Produce      json
// @Param        request body CreateUnitRequest true "Unit creation request"
// @Success      201 {object} dto.Response{data=UnitResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /units [post]
func (h *UnitHandler) Create(c *gin.Context) {
	var req CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	unit, err := h.unitService.CreateUnit(c.Request.Context(), propertyapp.CreateUnitInput{
		PropertyID: propertyID,
		UnitNumber: req.UnitNumber,
		UnitType:   req.UnitType,
		RentAmount: decimal.NewFromFloat(req.RentAmount),
		Notes:      req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toUnitResponse(*unit))
}

// List godoc
// @Summary      List units
// @Tags         units
// @Produce      json
// @Param        property_id query string false "Property ID" format(uuid)
// @Param        status query string false "Unit status" Enums(vacant, occupied, maintenance)
// @Param        unit_type query string false "Unit type"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]UnitResponse}
// @Security     BearerAuth
// @Router       /units [get]
func (h *UnitHandler) List(c *gin.Context) {
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

	result, err := h.unitService.ListUnits(c.Request.Context(), propertyapp.ListUnitsInput{
		Filter:     filter,
		PropertyID: propertyID,
		Status:     c.Query("status"),
		UnitType:   c.Query("unit_type"),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	units := make([]UnitResponse, 0, len(result.Items))
	for _, u := range result.Items {
		units = append(units, toUnitResponse(u))
	}

	h.SuccessWithMeta(c, units, result.Total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @Summary      Get unit by ID
// @Tags         units
// @Produce      json
// @Param        id path string true "Unit ID" format(uuid)
// @Success      200 {object} dto.Response{data=UnitResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /units/{id} [get]
func (h *UnitHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid unit ID format")
		return
	}

	unit, err := h.unitService.GetUnit(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toUnitResponse(*unit))
}

// Update godoc
// @Summary      Update a unit
// @Tags         units
// @Accept       json
// @Produce      json
// @Param        id path string true "Unit ID" format(uuid)
// @Param        request body UpdateUnitRequest true "Unit update request"
// @Success      200 {object} dto.Response{data=UnitResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /units/{id} [put]
func (h *UnitHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid unit ID format")
		return
	}

	var req UpdateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := propertyapp.UpdateUnitInput{
		UnitNumber: req.UnitNumber,
		UnitType:   req.UnitType,
		Notes:      req.Notes,
	}
	if req.RentAmount != nil {
		d := decimal.NewFromFloat(*req.RentAmount)
		input.RentAmount = &d
	}

	unit, err := h.unitService.UpdateUnit(c.Request.Context(), id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toUnitResponse(*unit))
}

// Delete godoc
// @Summary      Delete a unit
// @Description  Delete a unit. Fails while the unit is occupied.
// @Tags         units
// @Produce      json
// @Param        id path string true "Unit ID" format(uuid)
// @Success      204
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /units/{id} [delete]
func (h *UnitHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid unit ID format")
		return
	}

	if err := h.unitService.DeleteUnit(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// MarkUnderMaintenance godoc
// @Summary      Take a unit off the market
// @Description  Mark a vacant unit as under maintenance
// @Tags         units
// @Produce      json
// @Param        id path string true "Unit ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /units/{id}/maintenance [post]
func (h *UnitHandler) MarkUnderMaintenance(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid unit ID format")
		return
	}

	if err := h.unitService.MarkUnderMaintenance(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Unit marked under maintenance"})
}

// ReturnToMarket godoc
// @Summary      Return a unit to the market
// @Description  Mark a maintenance unit as vacant again
// @Tags         units
// @Produce      json
// @Param        id path string true "Unit ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /units/{id}/return-to-market [post]
func (h *UnitHandler) ReturnToMarket(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid unit ID format")
		return
	}

	if err := h.unitService.ReturnToMarket(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Unit returned to market"})
}
