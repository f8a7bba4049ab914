package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pms/backend/internal/domain/billing"
	"github.com/pms/backend/internal/domain/property"
	"github.com/pms/backend/internal/domain/shared/valueobject"
)

// ReceiptModel is the persistence model for the Receipt aggregate.
// The billing period is stored structured as year and month columns;
// charge lines and toggles are denormalized so a receipt is a complete
// snapshot of what was billed.
type ReceiptModel struct {
	AggregateModel
	ContractID           uuid.UUID             `gorm:"type:uuid;not null;index;uniqueIndex:idx_receipt_contract_period,priority:1"`
	ReceiptNumber        string                `gorm:"type:varchar(50);not null;uniqueIndex"`
	PeriodYear           int                   `gorm:"not null;uniqueIndex:idx_receipt_contract_period,priority:2"`
	PeriodMonth          int                   `gorm:"not null;uniqueIndex:idx_receipt_contract_period,priority:3"`
	MonthlyRent          valueobject.Money     `gorm:"type:decimal(18,2);not null;default:0"`
	WaterBill            valueobject.Money     `gorm:"type:decimal(18,2);not null;default:0"`
	ElectricityBill      valueobject.Money     `gorm:"type:decimal(18,2);not null;default:0"`
	ServiceCharge        valueobject.Money     `gorm:"type:decimal(18,2);not null;default:0"`
	SecurityCharge       valueobject.Money     `gorm:"type:decimal(18,2);not null;default:0"`
	OtherCharges         valueobject.Money     `gorm:"type:decimal(18,2);not null;default:0"`
	RentalDeposit        valueobject.Money     `gorm:"type:decimal(18,2);not null;default:0"`
	WaterDeposit         valueobject.Money     `gorm:"type:decimal(18,2);not null;default:0"`
	ElectricityDeposit   valueobject.Money     `gorm:"type:decimal(18,2);not null;default:0"`
	PreviousBalance      valueobject.Money     `gorm:"type:decimal(18,2);not null;default:0"`
	PreviousWaterReading decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	CurrentWaterReading  decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	HasWaterBill         bool                  `gorm:"not null;default:true"`
	HasElectricityBill   bool                  `gorm:"not null;default:true"`
	HasServiceCharge     bool                  `gorm:"not null;default:true"`
	HasSecurityCharge    bool                  `gorm:"not null;default:true"`
	HasOtherCharges      bool                  `gorm:"not null;default:true"`
	Total                valueobject.Money     `gorm:"type:decimal(18,2);not null;default:0"`
	AmountPaid           valueobject.Money     `gorm:"type:decimal(18,2);not null;default:0"`
	Status               billing.ReceiptStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	IssuedAt             time.Time             `gorm:"not null;index"`
	Notes                string                `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ReceiptModel) TableName() string {
	return "receipts"
}

// ToDomain converts the persistence model to a domain Receipt aggregate.
func (m *ReceiptModel) ToDomain() *billing.Receipt {
	r := &billing.Receipt{
		ContractID:    m.ContractID,
		ReceiptNumber: m.ReceiptNumber,
		Period:        billing.BillingPeriod{Year: m.PeriodYear, Month: m.PeriodMonth},
		Charges: billing.ChargeSheet{
			MonthlyRent:          m.MonthlyRent,
			WaterBill:            m.WaterBill,
			ElectricityBill:      m.ElectricityBill,
			ServiceCharge:        m.ServiceCharge,
			SecurityCharge:       m.SecurityCharge,
			OtherCharges:         m.OtherCharges,
			RentalDeposit:        m.RentalDeposit,
			WaterDeposit:         m.WaterDeposit,
			ElectricityDeposit:   m.ElectricityDeposit,
			PreviousBalance:      m.PreviousBalance,
			PreviousWaterReading: m.PreviousWaterReading,
			CurrentWaterReading:  m.CurrentWaterReading,
		},
		Toggles: property.ChargeToggles{
			HasWaterBill:       m.HasWaterBill,
			HasElectricityBill: m.HasElectricityBill,
			HasServiceCharge:   m.HasServiceCharge,
			HasSecurityCharge:  m.HasSecurityCharge,
			HasOtherCharges:    m.HasOtherCharges,
		},
		Total:      m.Total,
		AmountPaid: m.AmountPaid,
		Status:     m.Status,
		IssuedAt:   m.IssuedAt,
		Notes:      m.Notes,
	}
	m.PopulateAggregateRoot(&r.BaseAggregateRoot)
	return r
}

// FromDomain populates the persistence model from a domain Receipt aggregate.
func (m *ReceiptModel) FromDomain(r *billing.Receipt) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.ContractID = r.ContractID
	m.ReceiptNumber = r.ReceiptNumber
	m.PeriodYear = r.Period.Year
	m.PeriodMonth = r.Period.Month
	m.MonthlyRent = r.Charges.MonthlyRent
	m.WaterBill = r.Charges.WaterBill
	m.ElectricityBill = r.Charges.ElectricityBill
	m.ServiceCharge = r.Charges.ServiceCharge
	m.SecurityCharge = r.Charges.SecurityCharge
	m.OtherCharges = r.Charges.OtherCharges
	m.RentalDeposit = r.Charges.RentalDeposit
	m.WaterDeposit = r.Charges.WaterDeposit
	m.ElectricityDeposit = r.Charges.ElectricityDeposit
	m.PreviousBalance = r.Charges.PreviousBalance
	m.PreviousWaterReading = r.Charges.PreviousWaterReading
	m.CurrentWaterReading = r.Charges.CurrentWaterReading
	m.HasWaterBill = r.Toggles.HasWaterBill
	m.HasElectricityBill = r.Toggles.HasElectricityBill
	m.HasServiceCharge = r.Toggles.HasServiceCharge
	m.HasSecurityCharge = r.Toggles.HasSecurityCharge
	m.HasOtherCharges = r.Toggles.HasOtherCharges
	m.Total = r.Total
	m.AmountPaid = r.AmountPaid
	m.Status = r.Status
	m.IssuedAt = r.IssuedAt
	m.Notes = r.Notes
}

// ReceiptModelFromDomain creates a new persistence model from a domain Receipt aggregate.
func ReceiptModelFromDomain(r *billing.Receipt) *ReceiptModel {
	m := &ReceiptModel{}
	m.FromDomain(r)
	return m
}

// PaymentModel is the persistence model for the Payment aggregate.
type PaymentModel struct {
	AggregateModel
	ReceiptID   uuid.UUID             `gorm:"type:uuid;not null;index"`
	ContractID  uuid.UUID             `gorm:"type:uuid;not null;index"`
	Amount      valueobject.Money     `gorm:"type:decimal(18,2);not null"`
	PaymentDate time.Time             `gorm:"not null;index"`
	Method      billing.PaymentMethod `gorm:"type:varchar(20);not null;default:'mpesa'"`
	Reference   string                `gorm:"type:varchar(100)"`
	Notes       string                `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment aggregate.
func (m *PaymentModel) ToDomain() *billing.Payment {
	p := &billing.Payment{
		ReceiptID:   m.ReceiptID,
		ContractID:  m.ContractID,
		Amount:      m.Amount,
		PaymentDate: m.PaymentDate,
		Method:      m.Method,
		Reference:   m.Reference,
		Notes:       m.Notes,
	}
	m.PopulateAggregateRoot(&p.BaseAggregateRoot)
	return p
}

// FromDomain populates the persistence model from a domain Payment aggregate.
func (m *PaymentModel) FromDomain(p *billing.Payment) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.ReceiptID = p.ReceiptID
	m.ContractID = p.ContractID
	m.Amount = p.Amount
	m.PaymentDate = p.PaymentDate
	m.Method = p.Method
	m.Reference = p.Reference
	m.Notes = p.Notes
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment aggregate.
func PaymentModelFromDomain(p *billing.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}

// ExpenseModel is the persistence model for the Expense aggregate.
type ExpenseModel struct {
	AggregateModel
	PropertyID  uuid.UUID               `gorm:"type:uuid;not null;index"`
	Description string                  `gorm:"type:text;not null"`
	Amount      valueobject.Money       `gorm:"type:decimal(18,2);not null"`
	ExpenseDate time.Time               `gorm:"not null;index"`
	Category    billing.ExpenseCategory `gorm:"type:varchar(20);not null;default:'other';index"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense aggregate.
func (m *ExpenseModel) ToDomain() *billing.Expense {
	e := &billing.Expense{
		PropertyID:  m.PropertyID,
		Description: m.Description,
		Amount:      m.Amount,
		ExpenseDate: m.ExpenseDate,
		Category:    m.Category,
	}
	m.PopulateAggregateRoot(&e.BaseAggregateRoot)
	return e
}

// FromDomain populates the persistence model from a domain Expense aggregate.
func (m *ExpenseModel) FromDomain(e *billing.Expense) {
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	m.PropertyID = e.PropertyID
	m.Description = e.Description
	m.Amount = e.Amount
	m.ExpenseDate = e.ExpenseDate
	m.Category = e.Category
}

// ExpenseModelFromDomain creates a new persistence model from a domain Expense aggregate.
func ExpenseModelFromDomain(e *billing.Expense) *ExpenseModel {
	m := &ExpenseModel{}
	m.FromDomain(e)
	return m
}
