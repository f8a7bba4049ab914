package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	tenancyapp "github.com/pms/backend/internal/application/tenancy"
)

// CustomerHandler handles tenant-related API endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *tenancyapp.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *tenancyapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// RegisterRoutes registers customer routes
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.POST("", h.Create)
		customers.GET("", h.List)
		customers.GET("/:id", h.GetByID)
		customers.PUT("/:id", h.Update)
		customers.DELETE("/:id", h.Delete)
		customers.POST("/:id/id-photos/upload-urls", h.RequestIDPhotoUpload)
		customers.GET("/:id/id-photos", h.GetIDPhotoURLs)
	}
}

// CustomerResponse is the customer read model returned over HTTP
type CustomerResponse struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	FullName    string    `json:"full_name"`
	PhoneNumber string    `json:"phone_number"`
	Email       string    `json:"email,omitempty"`
	IDNumber    string    `json:"id_number,omitempty"`
	HasIDPhotos bool      `json:"has_id_photos"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toCustomerResponse(cu tenancyapp.CustomerInfo) CustomerResponse {
	return CustomerResponse{
		ID:          cu.ID,
		FirstName:   cu.FirstName,
		LastName:    cu.LastName,
		FullName:    cu.FullName,
		PhoneNumber: cu.PhoneNumber,
		Email:       cu.Email,
		IDNumber:    cu.IDNumber,
		HasIDPhotos: cu.IDPhotoFront != "" || cu.IDPhotoBack != "",
		Notes:       cu.Notes,
		CreatedAt:   cu.CreatedAt,
		UpdatedAt:   cu.UpdatedAt,
	}
}

// CreateCustomerRequest represents a request to register a tenant
type CreateCustomerRequest struct {
	FirstName   string `json:"first_name" binding:"required,min=1,max=100"`
	LastName    string `json:"last_name" binding:"required,min=1,max=100"`
	PhoneNumber string `json:"phone_number" binding:"required,min=7,max=20"`
	Email       string `json:"email" binding:"omitempty,email"`
	IDNumber    string `json:"id_number" binding:"omitempty,max=50"`
	Notes       string `json:"notes" binding:"max=1000"`
}

// UpdateCustomerRequest represents a request to update a tenant
type UpdateCustomerRequest struct {
	FirstName   *string `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName    *string `json:"last_name" binding:"omitempty,min=1,max=100"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,min=7,max=20"`
	Email       *string `json:"email" binding:"omitempty,email"`
	IDNumber    *string `json:"id_number" binding:"omitempty,max=50"`
	Notes       *string `json:"notes" binding:"omitempty,max=1000"`
}

// IDPhotoUploadRequest requests presigned upload URLs for ID photos
type IDPhotoUploadRequest struct {
	ContentType string `json:"content_type" binding:"required,oneof=image/jpeg image/png image/webp"`
	Front       bool   `json:"front"`
	Back        bool   `json:"back"`
}

// IDPhotoUploadResponse carries presigned upload URLs
type IDPhotoUploadResponse struct {
	FrontUploadURL string    `json:"front_upload_url,omitempty"`
	BackUploadURL  string    `json:"back_upload_url,omitempty"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// IDPhotoViewResponse carries presigned download URLs
type IDPhotoViewResponse struct {
	FrontURL  string    `json:"front_url,omitempty"`
	BackURL   string    `json:"back_url,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Create godoc
// @Summary      Register a tenant
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        request body CreateCustomerRequest true "Tenant registration request"
// @Success      201 {object} dto.Response{data=CustomerResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), tenancyapp.CreateCustomerInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		IDNumber:    req.IDNumber,
		Notes:       req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toCustomerResponse(*customer))
}

// List godoc
// @Summary      List tenants
// @Tags         customers
// @Produce      json
// @Param        search query string false "Search term (name, phone, ID number)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]CustomerResponse}
// @Security     BearerAuth
// @Router       /customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	filter, err := buildFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.customerService.ListCustomers(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	customers := make([]CustomerResponse, 0, len(result.Items))
	for _, cu := range result.Items {
		customers = append(customers, toCustomerResponse(cu))
	}

	h.SuccessWithMeta(c, customers, result.Total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @Summary      Get tenant by ID
// @Tags         customers
// @Produce      json
// @Param        id path string true "Customer ID" format(uuid)
// @Success      200 {object} dto.Response{data=CustomerResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /customers/{id} [get]
func (h *CustomerHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toCustomerResponse(*customer))
}

// Update godoc
// @Summary      Update a tenant
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id path string true "Customer ID" format(uuid)
// @Param        request body UpdateCustomerRequest true "Tenant update request"
// @Success      200 {object} dto.Response{data=CustomerResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), id, tenancyapp.UpdateCustomerInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		IDNumber:    req.IDNumber,
		Notes:       req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toCustomerResponse(*customer))
}

// Delete godoc
// @Summary      Delete a tenant
// @Description  Delete a tenant. Fails while the tenant has an active contract.
// @Tags         customers
// @Produce      json
// @Param        id path string true "Customer ID" format(uuid)
// @Success      204
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RequestIDPhotoUpload godoc
// @Summary      Request ID photo upload URLs
// @Description  Generate presigned URLs to upload the tenant's ID photos directly to object storage
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id path string true "Customer ID" format(uuid)
// @Param        request body IDPhotoUploadRequest true "Upload request"
// @Success      200 {object} dto.Response{data=IDPhotoUploadResponse}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /customers/{id}/id-photos/upload-urls [post]
func (h *CustomerHandler) RequestIDPhotoUpload(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	var req IDPhotoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if !req.Front && !req.Back {
		h.BadRequest(c, "At least one photo side must be requested")
		return
	}

	result, err := h.customerService.RequestIDPhotoUpload(c.Request.Context(), tenancyapp.IDPhotoUploadInput{
		CustomerID:  id,
		ContentType: req.ContentType,
		Front:       req.Front,
		Back:        req.Back,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, IDPhotoUploadResponse{
		FrontUploadURL: result.FrontUploadURL,
		BackUploadURL:  result.BackUploadURL,
		ExpiresAt:      result.ExpiresAt,
	})
}

// GetIDPhotoURLs godoc
// @Summary      Get ID photo view URLs
// @Description  Generate presigned URLs to view the tenant's stored ID photos
// @Tags         customers
// @Produce      json
// @Param        id path string true "Customer ID" format(uuid)
// @Success      200 {object} dto.Response{data=IDPhotoViewResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /customers/{id}/id-photos [get]
func (h *CustomerHandler) GetIDPhotoURLs(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	result, err := h.customerService.GetIDPhotoURLs(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, IDPhotoViewResponse{
		FrontURL:  result.FrontURL,
		BackURL:   result.BackURL,
		ExpiresAt: result.ExpiresAt,
	})
}
