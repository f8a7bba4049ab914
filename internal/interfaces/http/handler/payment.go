package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	billingapp "github.com/pms/backend/internal/application/billing"
)

// PaymentHandler handles payment API endpoints. Payments are append
// only: a recorded amount is never edited, only its notes.
type PaymentHandler struct {
	BaseHandler
	paymentService *billingapp.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *billingapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// RegisterRoutes registers payment routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	{
		payments.POST("", h.Record)
		payments.GET("", h.List)
		payments.GET("/:id", h.GetByID)
		payments.PUT("/:id/notes", h.UpdateNotes)
	}
}

// PaymentResponse is the payment read model returned over HTTP
type PaymentResponse struct {
	ID          uuid.UUID `json:"id"`
	ReceiptID   uuid.UUID `json:"receipt_id"`
	ContractID  uuid.UUID `json:"contract_id"`
	Amount      string    `json:"amount"`
	PaymentDate time.Time `json:"payment_date"`
	Method      string    `json:"method"`
	Reference   string    `json:"reference,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toPaymentResponse(p billingapp.PaymentInfo) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		ReceiptID:   p.ReceiptID,
		ContractID:  p.ContractID,
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate,
		Method:      p.Method,
		Reference:   p.Reference,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
	}
}

// RecordPaymentRequest represents a request to record a payment
type RecordPaymentRequest struct {
	ReceiptID   string  `json:"receipt_id" binding:"required,uuid"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	PaymentDate string  `json:"payment_date" binding:"required"` // "2006-01-02"
	Method      string  `json:"method" binding:"required,oneof=mpesa cash bank_transfer cheque"`
	Reference   string  `json:"reference" binding:"max=100"`
	Notes       string  `json:"notes" binding:"max=1000"`
}

// UpdatePaymentNotesRequest amends a payment's notes
type UpdatePaymentNotesRequest struct {
	Notes string `json:"notes" binding:"max=1000"`
}

// Record godoc
// @Summary      Record a payment
// @Description  Record a payment against a receipt. The receipt's paid amount and status are updated.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body RecordPaymentRequest true "Payment record request"
// @Success      201 {object} dto.Response{data=PaymentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payments [post]
func (h *PaymentHandler) Record(c *gin.Context) {
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	receiptID, err := uuid.Parse(req.ReceiptID)
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID format")
		return
	}
	paymentDate, err := time.Parse(dateLayout, req.PaymentDate)
	if err != nil {
		h.BadRequest(c, "Invalid payment date, expected YYYY-MM-DD")
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), billingapp.RecordPaymentInput{
		ReceiptID:   receiptID,
		Amount:      decimal.NewFromFloat(req.Amount),
		PaymentDate: paymentDate,
		Method:      req.Method,
		Reference:   req.Reference,
		Notes:       req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toPaymentResponse(*payment))
}

// List godoc
// @Summary      List payments
// @Tags         payments
// @Produce      json
// @Param        contract_id query string false "Contract ID" format(uuid)
// @Param        method query string false "Payment method" Enums(mpesa, cash, bank_transfer, cheque)
// @Param        from query string false "Start date (YYYY-MM-DD)"
// @Param        to query string false "End date (YYYY-MM-DD)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]PaymentResponse}
// @Security     BearerAuth
// @Router       /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
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

	input := billingapp.ListPaymentsInput{
		Filter:     filter,
		ContractID: contractID,
		Method:     c.Query("method"),
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

	result, err := h.paymentService.ListPayments(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	payments := make([]PaymentResponse, 0, len(result.Items))
	for _, p := range result.Items {
		payments = append(payments, toPaymentResponse(p))
	}

	h.SuccessWithMeta(c, payments, result.Total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @Summary      Get payment by ID
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment ID" format(uuid)
// @Success      200 {object} dto.Response{data=PaymentResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payments/{id} [get]
func (h *PaymentHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	payment, err := h.paymentService.GetPayment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPaymentResponse(*payment))
}

// UpdateNotes godoc
// @Summary      Update payment notes
// @Description  Amend the notes on a payment. The amount and method are immutable.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id path string true "Payment ID" format(uuid)
// @Param        request body UpdatePaymentNotesRequest true "Notes"
// @Success      200 {object} dto.Response{data=PaymentResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payments/{id}/notes [put]
func (h *PaymentHandler) UpdateNotes(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	var req UpdatePaymentNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payment, err := h.paymentService.UpdateNotes(c.Request.Context(), id, req.Notes)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPaymentResponse(*payment))
}
