package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	propertyapp "github.com/pms/backend/internal/application/property"
	"github.com/pms/backend/internal/domain/property"
)

// PropertyHandler handles property-related API endpoints
type PropertyHandler struct {
	BaseHandler
	propertyService *propertyapp.PropertyService
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(propertyService *propertyapp.PropertyService) *PropertyHandler {
	return &PropertyHandler{
		propertyService: propertyService,
	}
}

// RegisterRoutes registers property routes
func (h *PropertyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	properties := rg.Group("/properties")
	{
		properties.POST("", h.Create)
		properties.GET("", h.List)
		properties.GET("/active", h.ListActive)
		properties.GET("/:id", h.GetByID)
		properties.PUT("/:id", h.Update)
		properties.DELETE("/:id", h.Delete)
		properties.POST("/:id/activate", h.Activate)
		properties.POST("/:id/deactivate", h.Deactivate)
		properties.GET("/:id/parameters", h.GetParameters)
		properties.PUT("/:id/parameters", h.UpdateParameters)
	}
}

// PropertyResponse is the property read model returned over HTTP
type PropertyResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toPropertyResponse(p propertyapp.PropertyInfo) PropertyResponse {
	return PropertyResponse{
		ID:          p.ID,
		Name:        p.Name,
		Address:     p.Address,
		Description: p.Description,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ParametersResponse is the billing defaults read model returned over HTTP
type ParametersResponse struct {
	PropertyID          uuid.UUID                `json:"property_id"`
	RentDepositMonths   string                   `json:"rent_deposit_months"`
	WaterUnitCost       string                   `json:"water_unit_cost"`
	ElectricityUnitCost string                   `json:"electricity_unit_cost"`
	ServiceCharge       string                   `json:"service_charge"`
	SecurityCharge      string                   `json:"security_charge"`
	GarbageCharge       string                   `json:"garbage_charge"`
	PenaltyRate         string                   `json:"penalty_rate"`
	Toggles             property.ChargeToggles   `json:"toggles"`
	Policies            property.BillingPolicies `json:"policies"`
	UpdatedAt           time.Time                `json:"updated_at"`
}

func toParametersResponse(p propertyapp.ParametersInfo) ParametersResponse {
	return ParametersResponse{
		PropertyID:          p.PropertyID,
		RentDepositMonths:   p.RentDepositMonths.String(),
		WaterUnitCost:       p.WaterUnitCost.StringFixed(2),
		ElectricityUnitCost: p.ElectricityUnitCost.StringFixed(2),
		ServiceCharge:       p.ServiceCharge.StringFixed(2),
		SecurityCharge:      p.SecurityCharge.StringFixed(2),
		GarbageCharge:       p.GarbageCharge.StringFixed(2),
		PenaltyRate:         p.PenaltyRate.String(),
		Toggles:             p.Toggles,
		Policies:            p.Policies,
		UpdatedAt:           p.UpdatedAt,
	}
}

// CreatePropertyRequest represents a request to create a property
type CreatePropertyRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Address     string `json:"address" binding:"required,min=1,max=500"`
	Description string `json:"description" binding:"max=1000"`
}

// UpdatePropertyRequest represents a request to update a property
type UpdatePropertyRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Address     *string `json:"address" binding:"omitempty,min=1,max=500"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}

// UpdateParametersRequest represents a request to update a property's
// billing defaults. Amounts are decimal strings.
type UpdateParametersRequest struct {
	RentDepositMonths   string                   `json:"rent_deposit_months" binding:"required"`
	WaterUnitCost       string                   `json:"water_unit_cost" binding:"required"`
	ElectricityUnitCost string                   `json:"electricity_unit_cost" binding:"required"`
	ServiceCharge       string                   `json:"service_charge" binding:"required"`
	SecurityCharge      string                   `json:"security_charge" binding:"required"`
	GarbageCharge       string                   `json:"garbage_charge" binding:"required"`
	PenaltyRate         string                   `json:"penalty_rate" binding:"required"`
	Toggles             property.ChargeToggles   `json:"toggles"`
	Policies            property.BillingPolicies `json:"policies"`
}

// Create godoc
// @Summary      Create a property
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        request body CreatePropertyRequest true "Property creation request"
// @Success      201 {object} dto.Response{data=PropertyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /properties [post]
func (h *PropertyHandler) Create(c *gin.Context) {
	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	prop, err := h.propertyService.CreateProperty(c.Request.Context(), propertyapp.CreatePropertyInput{
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toPropertyResponse(*prop))
}

// List godoc
// @Summary      List properties
// @Tags         properties
// @Produce      json
// @Param        search query string false "Search term (name, address)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]PropertyResponse}
// @Security     BearerAuth
// @Router       /properties [get]
func (h *PropertyHandler) List(c *gin.Context) {
	filter, err := buildFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.propertyService.ListProperties(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	properties := make([]PropertyResponse, 0, len(result.Items))
	for _, p := range result.Items {
		properties = append(properties, toPropertyResponse(p))
	}

	h.SuccessWithMeta(c, properties, result.Total, filter.Page, filter.PageSize)
}

// ListActive godoc
// @Summary      List active properties
// @Description  List active properties without pagination, for selectors
// @Tags         properties
// @Produce      json
// @Success      200 {object} dto.Response{data=[]PropertyResponse}
// @Security     BearerAuth
// @Router       /properties/active [get]
func (h *PropertyHandler) ListActive(c *gin.Context) {
	result, err := h.propertyService.ListActiveProperties(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	properties := make([]PropertyResponse, 0, len(result))
	for _, p := range result {
		properties = append(properties, toPropertyResponse(p))
	}

	h.Success(c, properties)
}

// GetByID godoc
// @Summary      Get property by ID
// @Tags         properties
// @Produce      json
// @Param        id path string true "Property ID" format(uuid)
// @Success      200 {object} dto.Response{data=PropertyResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /properties/{id} [get]
func (h *PropertyHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	prop, err := h.propertyService.GetProperty(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPropertyResponse(*prop))
}

// Update godoc
// @Summary      Update a property
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        id path string true "Property ID" format(uuid)
// @Param        request body UpdatePropertyRequest true "Property update request"
// @Success      200 {object} dto.Response{data=PropertyResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /properties/{id} [put]
func (h *PropertyHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	var req UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	prop, err := h.propertyService.UpdateProperty(c.Request.Context(), id, propertyapp.UpdatePropertyInput{
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPropertyResponse(*prop))
}

// Delete godoc
// @Summary      Delete a property
// @Description  Delete a property. Fails if the property still has units.
// @Tags         properties
// @Produce      json
// @Param        id path string true "Property ID" format(uuid)
// @Success      204
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /properties/{id} [delete]
func (h *PropertyHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	if err := h.propertyService.DeleteProperty(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Activate godoc
// @Summary      Activate a property
// @Tags         properties
// @Produce      json
// @Param        id path string true "Property ID" format(uuid)
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /properties/{id}/activate [post]
func (h *PropertyHandler) Activate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	if err := h.propertyService.ActivateProperty(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Property activated"})
}

// Deactivate godoc
// @Summary      Deactivate a property
// @Description  Deactivate a property. Inactive properties are skipped by monthly billing.
// @Tags         properties
// @Produce      json
// @Param        id path string true "Property ID" format(uuid)
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /properties/{id}/deactivate [post]
func (h *PropertyHandler) Deactivate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	if err := h.propertyService.DeactivateProperty(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Property deactivated"})
}

// GetParameters godoc
// @Summary      Get billing parameters
// @Description  Get a property's billing defaults and charge toggles
// @Tags         properties
// @Produce      json
// @Param        id path string true "Property ID" format(uuid)
// @Success      200 {object} dto.Response{data=ParametersResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /properties/{id}/parameters [get]
func (h *PropertyHandler) GetParameters(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	params, err := h.propertyService.GetParameters(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toParametersResponse(*params))
}

// UpdateParameters godoc
// @Summary      Update billing parameters
// @Description  Update a property's billing defaults and charge toggles
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        id path string true "Property ID" format(uuid)
// @Param        request body UpdateParametersRequest true "Billing parameters"
// @Success      200 {object} dto.Response{data=ParametersResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /properties/{id}/parameters [put]
func (h *PropertyHandler) UpdateParameters(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	var req UpdateParametersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := propertyapp.UpdateParametersInput{Toggles: req.Toggles, Policies: req.Policies}
	fields := []struct {
		raw  string
		dest *decimal.Decimal
	}{
		{req.RentDepositMonths, &input.RentDepositMonths},
		{req.WaterUnitCost, &input.WaterUnitCost},
		{req.ElectricityUnitCost, &input.ElectricityUnitCost},
		{req.ServiceCharge, &input.ServiceCharge},
		{req.SecurityCharge, &input.SecurityCharge},
		{req.GarbageCharge, &input.GarbageCharge},
		{req.PenaltyRate, &input.PenaltyRate},
	}
	for _, f := range fields {
		d, err := decimal.NewFromString(f.raw)
		if err != nil {
			h.BadRequest(c, "Invalid decimal value: "+f.raw)
			return
		}
		*f.dest = d
	}

	params, err := h.propertyService.UpdateParameters(c.Request.Context(), id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toParametersResponse(*params))
}
