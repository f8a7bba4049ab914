package billing

import (
	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/domain/shared/valueobject"
)

// Event types for the billing domain
const (
	EventReceiptIssued         = "billing.receipt.issued"
	EventReceiptPaymentApplied = "billing.receipt.payment_applied"
	EventPaymentRecorded       = "billing.payment.recorded"
)

// ReceiptIssuedEvent is raised when a receipt is issued
type ReceiptIssuedEvent struct {
	shared.BaseDomainEvent
	ReceiptNumber string            `json:"receipt_number"`
	Period        BillingPeriod     `json:"period"`
	Total         valueobject.Money `json:"total"`
}

// NewReceiptIssuedEvent creates a ReceiptIssuedEvent
func NewReceiptIssuedEvent(r *Receipt) *ReceiptIssuedEvent {
	return &ReceiptIssuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventReceiptIssued, "Receipt", r.ID),
		ReceiptNumber:   r.ReceiptNumber,
		Period:          r.Period,
		Total:           r.Total,
	}
}

// ReceiptPaymentAppliedEvent is raised when a payment is credited
type ReceiptPaymentAppliedEvent struct {
	shared.BaseDomainEvent
	ReceiptNumber string            `json:"receipt_number"`
	Amount        valueobject.Money `json:"amount"`
	Status        ReceiptStatus     `json:"status"`
}

// NewReceiptPaymentAppliedEvent creates a ReceiptPaymentAppliedEvent
func NewReceiptPaymentAppliedEvent(r *Receipt, amount valueobject.Money) *ReceiptPaymentAppliedEvent {
	return &ReceiptPaymentAppliedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventReceiptPaymentApplied, "Receipt", r.ID),
		ReceiptNumber:   r.ReceiptNumber,
		Amount:          amount,
		Status:          r.Status,
	}
}

// PaymentRecordedEvent is raised when a payment row is recorded
type PaymentRecordedEvent struct {
	shared.BaseDomainEvent
	Method PaymentMethod     `json:"method"`
	Amount valueobject.Money `json:"amount"`
}

// NewPaymentRecordedEvent creates a PaymentRecordedEvent
func NewPaymentRecordedEvent(p *Payment) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPaymentRecorded, "Payment", p.ID),
		Method:          p.Method,
		Amount:          p.Amount,
	}
}
