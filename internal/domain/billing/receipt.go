package billing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/property"
	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ReceiptStatus tracks how much of a receipt has been settled
type ReceiptStatus string

const (
	ReceiptStatusPending ReceiptStatus = "pending"
	ReceiptStatusPartial ReceiptStatus = "partial"
	ReceiptStatusPaid    ReceiptStatus = "paid"
)

// Receipt is the aggregate root for one billing period of one contract.
// The charge sheet and the toggles in force are snapshotted at issue
// time so later settings changes never rewrite history.
type Receipt struct {
	shared.BaseAggregateRoot
	ContractID    uuid.UUID
	ReceiptNumber string
	Period        BillingPeriod
	Charges       ChargeSheet
	Toggles       property.ChargeToggles
	Total         valueobject.Money
	AmountPaid    valueobject.Money
	Status        ReceiptStatus
	IssuedAt      time.Time
	Notes         string
}

// NewReceipt issues a receipt for a contract and period. The total is
// computed from the charge sheet under the given toggles.
func NewReceipt(contractID uuid.UUID, receiptNumber string, period BillingPeriod, charges ChargeSheet, toggles property.ChargeToggles) (*Receipt, error) {
	if contractID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONTRACT_ID", "Contract ID cannot be empty")
	}
	if strings.TrimSpace(receiptNumber) == "" {
		return nil, shared.NewDomainError("INVALID_RECEIPT_NUMBER", "Receipt number cannot be empty")
	}
	if period.IsZero() {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Billing period is required")
	}

	r := &Receipt{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ContractID:        contractID,
		ReceiptNumber:     strings.TrimSpace(receiptNumber),
		Period:            period,
		Charges:           charges,
		Toggles:           toggles,
		Total:             ComputeReceiptTotal(charges, toggles),
		AmountPaid:        valueobject.Zero(charges.MonthlyRent.Currency()),
		Status:            ReceiptStatusPending,
		IssuedAt:          time.Now(),
	}

	r.AddDomainEvent(NewReceiptIssuedEvent(r))

	return r, nil
}

// Balance returns how much of the receipt remains unpaid
func (r *Receipt) Balance() valueobject.Money {
	return r.Total.MustSubtract(r.AmountPaid)
}

// Lines returns the printable charge lines for this receipt
func (r *Receipt) Lines() []ReceiptLine {
	return ItemizedLines(r.Charges, r.Toggles)
}

// AmendCharges replaces the charge sheet and recomputes the total.
// Settled receipts cannot be amended.
func (r *Receipt) AmendCharges(charges ChargeSheet) error {
	if r.Status == ReceiptStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Paid receipts cannot be amended")
	}

	r.Charges = charges
	r.Total = ComputeReceiptTotal(charges, r.Toggles)
	r.reconcileStatus()
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// RecordWaterReadings captures the meter readings backing the water bill
func (r *Receipt) RecordWaterReadings(previous, current decimal.Decimal) error {
	if current.LessThan(previous) {
		return shared.NewDomainError("INVALID_READING", "Current reading cannot be below the previous reading")
	}
	r.Charges.PreviousWaterReading = previous
	r.Charges.CurrentWaterReading = current
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// ApplyPayment credits a payment against the receipt and moves the
// status through pending → partial → paid.
func (r *Receipt) ApplyPayment(amount valueobject.Money) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	paid, err := r.AmountPaid.Add(amount)
	if err != nil {
		return shared.NewDomainError("CURRENCY_MISMATCH", "Payment currency does not match the receipt")
	}

	r.AmountPaid = paid
	r.reconcileStatus()
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewReceiptPaymentAppliedEvent(r, amount))

	return nil
}

// SetNotes updates free-form notes
func (r *Receipt) SetNotes(notes string) {
	r.Notes = notes
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

func (r *Receipt) reconcileStatus() {
	settled, _ := r.AmountPaid.GreaterThanOrEqual(r.Total)
	switch {
	case settled && r.Total.IsPositive():
		r.Status = ReceiptStatusPaid
	case r.AmountPaid.IsPositive():
		r.Status = ReceiptStatusPartial
	default:
		r.Status = ReceiptStatusPending
	}
}
