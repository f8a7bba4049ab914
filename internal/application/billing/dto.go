package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pms/backend/internal/domain/billing"
	"github.com/pms/backend/internal/domain/shared"
)

// ChargesInput carries the editable charge lines of a receipt. Nil
// fields are left unchanged on update; on create they default to zero.
type ChargesInput struct {
	MonthlyRent        *decimal.Decimal
	WaterBill          *decimal.Decimal
	ElectricityBill    *decimal.Decimal
	ServiceCharge      *decimal.Decimal
	SecurityCharge     *decimal.Decimal
	OtherCharges       *decimal.Decimal
	RentalDeposit      *decimal.Decimal
	WaterDeposit       *decimal.Decimal
	ElectricityDeposit *decimal.Decimal
	PreviousBalance    *decimal.Decimal
}

// CreateReceiptInput contains the input for issuing a single receipt
type CreateReceiptInput struct {
	ContractID uuid.UUID
	Period     string // "YYYY-M" form
	Charges    ChargesInput
	Notes      string
}

// UpdateReceiptInput amends an unsettled receipt
type UpdateReceiptInput struct {
	Charges ChargesInput
	Notes   *string
}

// GenerateMonthlyInput runs the monthly billing cycle
type GenerateMonthlyInput struct {
	Period     string     // "YYYY-M" form
	PropertyID *uuid.UUID // nil bills every active property
}

// GenerateMonthlyResult summarizes a billing run
type GenerateMonthlyResult struct {
	Period    string
	Generated int
	Skipped   int // contracts that already had a receipt for the period
	Failed    int
}

// RecordWaterReadingsInput captures meter readings for a receipt. The
// water bill is recomputed from the consumption and the property's
// water unit cost.
type RecordWaterReadingsInput struct {
	ReceiptID       uuid.UUID
	PreviousReading decimal.Decimal
	CurrentReading  decimal.Decimal
}

// ReceiptLineInfo is one printable charge line
type ReceiptLineInfo struct {
	Label  string
	Amount string
}

// ReceiptInfo is the receipt read model returned to the console
type ReceiptInfo struct {
	ID                   uuid.UUID
	ContractID           uuid.UUID
	ReceiptNumber        string
	PeriodYear           int
	PeriodMonth          int
	Lines                []ReceiptLineInfo
	Total                string
	AmountPaid           string
	Balance              string
	Status               string
	PreviousWaterReading string
	CurrentWaterReading  string
	IssuedAt             time.Time
	Notes                string
}

// ListReceiptsInput contains filters for listing receipts
type ListReceiptsInput struct {
	Filter     shared.Filter
	ContractID *uuid.UUID
	Status     string
	Period     string // "YYYY-M" form, empty for all periods
}

// RecordPaymentInput contains the input for recording a payment
type RecordPaymentInput struct {
	ReceiptID   uuid.UUID
	Amount      decimal.Decimal
	PaymentDate time.Time
	Method      string
	Reference   string
	Notes       string
}

// PaymentInfo is the payment read model returned to the console
type PaymentInfo struct {
	ID          uuid.UUID
	ReceiptID   uuid.UUID
	ContractID  uuid.UUID
	Amount      string
	PaymentDate time.Time
	Method      string
	Reference   string
	Notes       string
	CreatedAt   time.Time
}

// ListPaymentsInput contains filters for listing payments
type ListPaymentsInput struct {
	Filter     shared.Filter
	ContractID *uuid.UUID
	From       *time.Time
	To         *time.Time
	Method     string
}

// CreateExpenseInput contains the input for recording an expense
type CreateExpenseInput struct {
	PropertyID  uuid.UUID
	Description string
	Amount      decimal.Decimal
	ExpenseDate time.Time
	Category    string
}

// UpdateExpenseInput amends an expense record
type UpdateExpenseInput struct {
	Description string
	Amount      decimal.Decimal
	ExpenseDate time.Time
	Category    string
}

// ExpenseInfo is the expense read model returned to the console
type ExpenseInfo struct {
	ID          uuid.UUID
	PropertyID  uuid.UUID
	Description string
	Amount      string
	ExpenseDate time.Time
	Category    string
	CreatedAt   time.Time
}

// ListExpensesInput contains filters for listing expenses
type ListExpensesInput struct {
	Filter     shared.Filter
	PropertyID *uuid.UUID
	From       *time.Time
	To         *time.Time
	Category   string
}

func toReceiptInfo(r *billing.Receipt) ReceiptInfo {
	lines := r.Lines()
	lineInfos := make([]ReceiptLineInfo, 0, len(lines))
	for _, line := range lines {
		lineInfos = append(lineInfos, ReceiptLineInfo{
			Label:  line.Label,
			Amount: line.Amount.StringFixed(2),
		})
	}

	return ReceiptInfo{
		ID:                   r.ID,
		ContractID:           r.ContractID,
		ReceiptNumber:        r.ReceiptNumber,
		PeriodYear:           r.Period.Year,
		PeriodMonth:          r.Period.Month,
		Lines:                lineInfos,
		Total:                r.Total.StringFixed(2),
		AmountPaid:           r.AmountPaid.StringFixed(2),
		Balance:              r.Balance().StringFixed(2),
		Status:               string(r.Status),
		PreviousWaterReading: r.Charges.PreviousWaterReading.String(),
		CurrentWaterReading:  r.Charges.CurrentWaterReading.String(),
		IssuedAt:             r.IssuedAt,
		Notes:                r.Notes,
	}
}

func toPaymentInfo(p *billing.Payment) PaymentInfo {
	return PaymentInfo{
		ID:          p.ID,
		ReceiptID:   p.ReceiptID,
		ContractID:  p.ContractID,
		Amount:      p.Amount.StringFixed(2),
		PaymentDate: p.PaymentDate,
		Method:      string(p.Method),
		Reference:   p.Reference,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
	}
}

func toExpenseInfo(e *billing.Expense) ExpenseInfo {
	return ExpenseInfo{
		ID:          e.ID,
		PropertyID:  e.PropertyID,
		Description: e.Description,
		Amount:      e.Amount.StringFixed(2),
		ExpenseDate: e.ExpenseDate,
		Category:    string(e.Category),
		CreatedAt:   e.CreatedAt,
	}
}
