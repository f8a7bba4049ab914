package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	billingapp "github.com/pms/backend/internal/application/billing"
)

// ReceiptHandler handles receipt and billing run API endpoints
type ReceiptHandler struct {
	BaseHandler
	receiptService *billingapp.ReceiptService
	paymentService *billingapp.PaymentService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *billingapp.ReceiptService, paymentService *billingapp.PaymentService) *ReceiptHandler {
	return &ReceiptHandler{
		receiptService: receiptService,
		paymentService: paymentService,
	}
}

// RegisterRoutes registers receipt routes
func (h *ReceiptHandler) RegisterRoutes(rg *gin.RouterGroup) {
	receipts := rg.Group("/receipts")
	{
		receipts.POST("", h.Create)
		receipts.GET("", h.List)
		receipts.GET("/outstanding", h.ListOutstanding)
		receipts.POST("/generate-monthly", h.GenerateMonthly)
		receipts.GET("/:id", h.GetByID)
		receipts.PUT("/:id", h.Update)
		receipts.DELETE("/:id", h.Delete)
		receipts.POST("/:id/water-readings", h.RecordWaterReadings)
		receipts.GET("/:id/payments", h.ListPayments)
	}
}

// ReceiptLineResponse is one printable charge line
type ReceiptLineResponse struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

// ReceiptResponse is the receipt read model returned over HTTP
type ReceiptResponse struct {
	ID                   uuid.UUID             `json:"id"`
	ContractID           uuid.UUID             `json:"contract_id"`
	ReceiptNumber        string                `json:"receipt_number"`
	PeriodYear           int                   `json:"period_year"`
	PeriodMonth          int                   `json:"period_month"`
	Lines                []ReceiptLineResponse `json:"lines"`
	Total                string                `json:"total"`
	AmountPaid           string                `json:"amount_paid"`
	Balance              string                `json:"balance"`
	Status               string                `json:"status"`
	PreviousWaterReading string                `json:"previous_water_reading"`
	CurrentWaterReading  string                `json:"current_water_reading"`
	IssuedAt             time.Time             `json:"issued_at"`
	Notes                string                `json:"notes,omitempty"`
}

func toReceiptResponse(r billingapp.ReceiptInfo) ReceiptResponse {
	lines := make([]ReceiptLineResponse, 0, len(r.Lines))
	for _, line := range r.Lines {
		lines = append(lines, ReceiptLineResponse{Label: line.Label, Amount: line.Amount})
	}
	return ReceiptResponse{
		ID:                   r.ID,
		ContractID:           r.ContractID,
		ReceiptNumber:        r.ReceiptNumber,
		PeriodYear:           r.PeriodYear,
		PeriodMonth:          r.PeriodMonth,
		Lines:                lines,
		Total:                r.Total,
		AmountPaid:           r.AmountPaid,
		Balance:              r.Balance,
		Status:               r.Status,
		PreviousWaterReading: r.PreviousWaterReading,
		CurrentWaterReading:  r.CurrentWaterReading,
		IssuedAt:             r.IssuedAt,
		Notes:                r.Notes,
	}
}

// ReceiptChargesRequest carries editable charge lines as decimal
// strings. Missing fields are left unchanged on update and default to
// zero on create.
type ReceiptChargesRequest struct {
	MonthlyRent        *string `json:"monthly_rent"`
	WaterBill          *string `json:"water_bill"`
	ElectricityBill    *string `json:"electricity_bill"`
	ServiceCharge      *string `json:"service_charge"`
	SecurityCharge     *string `json:"security_charge"`
	OtherCharges       *string `json:"other_charges"`
	RentalDeposit      *string `json:"rental_deposit"`
	WaterDeposit       *string `json:"water_deposit"`
	ElectricityDeposit *string `json:"electricity_deposit"`
	PreviousBalance    *string `json:"previous_balance"`
}

func (r ReceiptChargesRequest) toInput() (billingapp.ChargesInput, error) {
	var input billingapp.ChargesInput
	fields := []struct {
		raw  *string
		dest **decimal.Decimal
	}{
		{r.MonthlyRent, &input.MonthlyRent},
		{r.WaterBill, &input.WaterBill},
		{r.ElectricityBill, &input.ElectricityBill},
		{r.ServiceCharge, &input.ServiceCharge},
		{r.SecurityCharge, &input.SecurityCharge},
		{r.OtherCharges, &input.OtherCharges},
		{r.RentalDeposit, &input.RentalDeposit},
		{r.WaterDeposit, &input.WaterDeposit},
		{r.ElectricityDeposit, &input.ElectricityDeposit},
		{r.PreviousBalance, &input.PreviousBalance},
	}
	for _, f := range fields {
		if f.raw == nil {
			continue
		}
		d, err := decimal.NewFromString(*f.raw)
		if err != nil {
			return input, err
		}
		*f.dest = &d
	}
	return input, nil
}

// CreateReceiptRequest represents a request to issue a single receipt
type CreateReceiptRequest struct {
	ContractID string                `json:"contract_id" binding:"required,uuid"`
	Period     string                `json:"period" binding:"required"` // "YYYY-M"
	Charges    ReceiptChargesRequest `json:"charges"`
	Notes      string                `json:"notes" binding:"max=1000"`
}

// UpdateReceiptRequest amends an unsettled receipt
type UpdateReceiptRequest struct {
	Charges ReceiptChargesRequest `json:"charges"`
	Notes   *string               `json:"notes" binding:"omitempty,max=1000"`
}

// GenerateMonthlyRequest runs the monthly billing cycle
type GenerateMonthlyRequest struct {
	Period     string `json:"period" binding:"required"` // "YYYY-M"
	PropertyID string `json:"property_id" binding:"omitempty,uuid"`
}

// GenerateMonthlyResponse summarizes a billing run
type GenerateMonthlyResponse struct {
	Period    string `json:"period"`
	Generated int    `json:"generated"`
	Skipped   int    `json:"skipped"`
	Failed    int    `json:"failed"`
}

// WaterReadingsRequest captures meter readings as decimal strings
type WaterReadingsRequest struct {
	PreviousReading string `json:"previous_reading" binding:"required"`
	CurrentReading  string `json:"current_reading" binding:"required"`
}

// Create godoc
// @Summary      Issue a receipt
// @Description  Issue a receipt for a contract and billing period
// @Tags         receipts
// @Accept       json
// @Produce      json
// @Param        request body CreateReceiptRequest true "Receipt creation request"
// @Success      201 {object} dto.Response{data=ReceiptResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /receipts [post]
func (h *ReceiptHandler) Create(c *gin.Context) {
	var req CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	contractID, err := uuid.Parse(req.ContractID)
	if err != nil {
		h.BadRequest(c, "Invalid contract ID format")
		return
	}
	charges, err := req.Charges.toInput()
	if err != nil {
		h.BadRequest(c, "Invalid charge amount: "+err.Error())
		return
	}

	receipt, err := h.receiptService.CreateReceipt(c.Request.Context(), billingapp.CreateReceiptInput{
		ContractID: contractID,
		Period:     req.Period,
		Charges:    charges,
		Notes:      req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toReceiptResponse(*receipt))
}

// GenerateMonthly godoc
// @Summary      Run monthly billing
// @Description  Issue receipts for every active contract in the period. Contracts already billed are skipped.
// @Tags         receipts
// @Accept       json
// @Produce      json
// @Param        request body GenerateMonthlyRequest true "Billing run request"
// @Success      200 {object} dto.Response{data=GenerateMonthlyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /receipts/generate-monthly [post]
func (h *ReceiptHandler) GenerateMonthly(c *gin.Context) {
	var req GenerateMonthlyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := billingapp.GenerateMonthlyInput{Period: req.Period}
	if req.PropertyID != "" {
		propertyID, err := uuid.Parse(req.PropertyID)
		if err != nil {
			h.BadRequest(c, "Invalid property ID format")
			return
		}
		input.PropertyID = &propertyID
	}

	result, err := h.receiptService.GenerateMonthly(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, GenerateMonthlyResponse{
		Period:    result.Period,
		Generated: result.Generated,
		Skipped:   result.Skipped,
		Failed:    result.Failed,
	})
}

// List godoc
// @Summary      List receipts
// @Tags         receipts
// @Produce      json
// @Param        contract_id query string false "Contract ID" format(uuid)
// @Param        status query string false "Receipt status" Enums(pending, partial, paid)
// @Param        period query string false "Billing period (YYYY-M)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]ReceiptResponse}
// @Security     BearerAuth
// @Router       /receipts [get]
func (h *ReceiptHandler) List(c *gin.Context) {
	filter, err := buildFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	contractID, ok := parseUUIDQuery(c, "contract_id")
	if !ok {
		h.BadRequest(c, "Invalid contract ID format")
		return
	}

	result, err := h.receiptService.ListReceipts(c.Request.Context(), billingapp.ListReceiptsInput{
		Filter:     filter,
		ContractID: contractID,
		Status:     c.Query("status"),
		Period:     c.Query("period"),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	receipts := make([]ReceiptResponse, 0, len(result.Items))
	for _, r := range result.Items {
		receipts = append(receipts, toReceiptResponse(r))
	}

	h.SuccessWithMeta(c, receipts, result.Total, filter.Page, filter.PageSize)
}

// ListOutstanding godoc
// @Summary      List outstanding receipts
// @Description  List receipts with a balance still owing
// @Tags         receipts
// @Produce      json
// @Success      200 {object} dto.Response{data=[]ReceiptResponse}
// @Security     BearerAuth
// @Router       /receipts/outstanding [get]
func (h *ReceiptHandler) ListOutstanding(c *gin.Context) {
	filter, err := buildFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.receiptService.ListOutstanding(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	receipts := make([]ReceiptResponse, 0, len(result))
	for _, r := range result {
		receipts = append(receipts, toReceiptResponse(r))
	}

	h.Success(c, receipts)
}

// GetByID godoc
// @Summary      Get receipt by ID
// @Tags         receipts
// @Produce      json
// @Param        id path string true "Receipt ID" format(uuid)
// @Success      200 {object} dto.Response{data=ReceiptResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /receipts/{id} [get]
func (h *ReceiptHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid receipt ID format")
		return
	}

	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toReceiptResponse(*receipt))
}

// Update godoc
// @Summary      Amend a receipt
// @Description  Amend the charges or notes of an unsettled receipt
// @Tags         receipts
// @Accept       json
// @Produce      json
// @Param        id path string true "Receipt ID" format(uuid)
// @Param        request body UpdateReceiptRequest true "Receipt update request"
// @Success      200 {object} dto.Response{data=ReceiptResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /receipts/{id} [put]
func (h *ReceiptHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid receipt ID format")
		return
	}

	var req UpdateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	charges, err := req.Charges.toInput()
	if err != nil {
		h.BadRequest(c, "Invalid charge amount: "+err.Error())
		return
	}

	receipt, err := h.receiptService.UpdateReceipt(c.Request.Context(), id, billingapp.UpdateReceiptInput{
		Charges: charges,
		Notes:   req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toReceiptResponse(*receipt))
}

// Delete godoc
// @Summary      Delete a receipt
// @Description  Delete a receipt that has no payments recorded against it
// @Tags         receipts
// @Produce      json
// @Param        id path string true "Receipt ID" format(uuid)
// @Success      204
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /receipts/{id} [delete]
func (h *ReceiptHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid receipt ID format")
		return
	}

	if err := h.receiptService.DeleteReceipt(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RecordWaterReadings godoc
// @Summary      Record water meter readings
// @Description  Record meter readings on a receipt. The water bill is recomputed from consumption and the property's unit cost.
// @Tags         receipts
// @Accept       json
// @Produce      json
// @Param        id path string true "Receipt ID" format(uuid)
// @Param        request body WaterReadingsRequest true "Meter readings"
// @Success      200 {object} dto.Response{data=ReceiptResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /receipts/{id}/water-readings [post]
func (h *ReceiptHandler) RecordWaterReadings(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid receipt ID format")
		return
	}

	var req WaterReadingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	previous, err := decimal.NewFromString(req.PreviousReading)
	if err != nil {
		h.BadRequest(c, "Invalid previous reading")
		return
	}
	current, err := decimal.NewFromString(req.CurrentReading)
	if err != nil {
		h.BadRequest(c, "Invalid current reading")
		return
	}

	receipt, err := h.receiptService.RecordWaterReadings(c.Request.Context(), billingapp.RecordWaterReadingsInput{
		ReceiptID:       id,
		PreviousReading: previous,
		CurrentReading:  current,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toReceiptResponse(*receipt))
}

// ListPayments godoc
// @Summary      List payments on a receipt
// @Tags         receipts
// @Produce      json
// @Param        id path string true "Receipt ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]PaymentResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /receipts/{id}/payments [get]
func (h *ReceiptHandler) ListPayments(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid receipt ID format")
		return
	}

	result, err := h.paymentService.ListByReceipt(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	payments := make([]PaymentResponse, 0, len(result))
	for _, p := range result {
		payments = append(payments, toPaymentResponse(p))
	}

	h.Success(c, payments)
}
