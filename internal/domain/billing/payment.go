package billing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/domain/shared/valueobject"
)

// PaymentMethod is how a tenant settled a receipt
type PaymentMethod string

const (
	PaymentMethodMpesa        PaymentMethod = "mpesa"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCheque       PaymentMethod = "cheque"
)

// DefaultPaymentMethod is assumed when none is supplied
const DefaultPaymentMethod = PaymentMethodMpesa

// Payment records money received against a receipt
type Payment struct {
	shared.BaseAggregateRoot
	ReceiptID   uuid.UUID
	ContractID  uuid.UUID
	Amount      valueobject.Money
	PaymentDate time.Time
	Method      PaymentMethod
	Reference   string
	Notes       string
}

// NewPayment records a payment. An empty method falls back to the
// default (mobile money).
func NewPayment(receiptID, contractID uuid.UUID, amount valueobject.Money, paymentDate time.Time, method PaymentMethod, reference string) (*Payment, error) {
	if receiptID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RECEIPT_ID", "Receipt ID cannot be empty")
	}
	if contractID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONTRACT_ID", "Contract ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}
	if method == "" {
		method = DefaultPaymentMethod
	}
	if err := validatePaymentMethod(method); err != nil {
		return nil, err
	}

	p := &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ReceiptID:         receiptID,
		ContractID:        contractID,
		Amount:            amount,
		PaymentDate:       paymentDate,
		Method:            method,
		Reference:         strings.TrimSpace(reference),
	}

	p.AddDomainEvent(NewPaymentRecordedEvent(p))

	return p, nil
}

// SetNotes updates free-form notes
func (p *Payment) SetNotes(notes string) {
	p.Notes = notes
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

func validatePaymentMethod(method PaymentMethod) error {
	switch method {
	case PaymentMethodMpesa, PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodCheque:
		return nil
	default:
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}
}
