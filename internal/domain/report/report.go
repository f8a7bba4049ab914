package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardSummary is the read model behind the admin dashboard tiles.
type DashboardSummary struct {
	TotalTenants        int64           `json:"total_tenants"`
	TotalUnits          int64           `json:"total_units"`
	OccupiedUnits       int64           `json:"occupied_units"`
	VacantUnits         int64           `json:"vacant_units"`
	PendingRent         decimal.Decimal `json:"pending_rent"`
	ContractsExpiring   int64           `json:"contracts_expiring"`
	MonthlyCollection   decimal.Decimal `json:"monthly_collection"`
	OccupancyRate       decimal.Decimal `json:"occupancy_rate"`
	OpenMaintenanceReqs int64           `json:"open_maintenance_requests"`
}

// RevenueByMonth is a monthly billed-versus-collected breakdown.
type RevenueByMonth struct {
	Year      int             `json:"year"`
	Month     int             `json:"month"`
	Billed    decimal.Decimal `json:"billed"`
	Collected decimal.Decimal `json:"collected"`
}

// OutstandingBalance is an unpaid or partially paid receipt with tenant context.
type OutstandingBalance struct {
	ReceiptID     uuid.UUID       `json:"receipt_id"`
	ReceiptNumber string          `json:"receipt_number"`
	ContractID    uuid.UUID       `json:"contract_id"`
	CustomerName  string          `json:"customer_name"`
	UnitNumber    string          `json:"unit_number"`
	PropertyName  string          `json:"property_name"`
	Total         decimal.Decimal `json:"total"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Balance       decimal.Decimal `json:"balance"`
	IssuedAt      time.Time       `json:"issued_at"`
}

// CollectionByMethod sums payments received per payment method.
type CollectionByMethod struct {
	Method string          `json:"method"`
	Count  int64           `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// CollectionsReport summarizes payments received within a period.
type CollectionsReport struct {
	PeriodStart time.Time            `json:"period_start"`
	PeriodEnd   time.Time            `json:"period_end"`
	Total       decimal.Decimal      `json:"total"`
	ByMethod    []CollectionByMethod `json:"by_method"`
}

// RentRollEntry is one row of the rent roll: a unit with its current tenancy.
type RentRollEntry struct {
	UnitID       uuid.UUID       `json:"unit_id"`
	UnitNumber   string          `json:"unit_number"`
	PropertyName string          `json:"property_name"`
	UnitStatus   string          `json:"unit_status"`
	CustomerName string          `json:"customer_name,omitempty"`
	ContractID   *uuid.UUID      `json:"contract_id,omitempty"`
	RentAmount   decimal.Decimal `json:"rent_amount"`
	ContractEnd  *time.Time      `json:"contract_end,omitempty"`
}

// ExpenseByCategory sums expenses per category within a period.
type ExpenseByCategory struct {
	Category string          `json:"category"`
	Count    int64           `json:"count"`
	Amount   decimal.Decimal `json:"amount"`
}

// ExpenseAnalysis summarizes spending within a period.
type ExpenseAnalysis struct {
	PeriodStart time.Time           `json:"period_start"`
	PeriodEnd   time.Time           `json:"period_end"`
	Total       decimal.Decimal     `json:"total"`
	ByCategory  []ExpenseByCategory `json:"by_category"`
}

// ProfitLossStatement is collections minus expenses for a period.
type ProfitLossStatement struct {
	PeriodStart time.Time       `json:"period_start"`
	PeriodEnd   time.Time       `json:"period_end"`
	Collections decimal.Decimal `json:"collections"`
	Expenses    decimal.Decimal `json:"expenses"`
	NetIncome   decimal.Decimal `json:"net_income"`
	NetMargin   decimal.Decimal `json:"net_margin"` // NetIncome / Collections * 100
}

// OccupancyReport is the unit status breakdown, optionally per property.
type OccupancyReport struct {
	PropertyID       *uuid.UUID      `json:"property_id,omitempty"`
	TotalUnits       int64           `json:"total_units"`
	OccupiedUnits    int64           `json:"occupied_units"`
	VacantUnits      int64           `json:"vacant_units"`
	MaintenanceUnits int64           `json:"maintenance_units"`
	OccupancyRate    decimal.Decimal `json:"occupancy_rate"`
}

// Repository defines the read-side queries backing the report endpoints.
type Repository interface {
	GetDashboardSummary(ctx context.Context, expiringWithin time.Duration) (*DashboardSummary, error)
	GetRevenueByMonth(ctx context.Context, from, to time.Time) ([]RevenueByMonth, error)
	GetOutstandingBalances(ctx context.Context) ([]OutstandingBalance, error)
	GetCollections(ctx context.Context, from, to time.Time) (*CollectionsReport, error)
	GetRentRoll(ctx context.Context, propertyID *uuid.UUID) ([]RentRollEntry, error)
	GetExpenseAnalysis(ctx context.Context, from, to time.Time) (*ExpenseAnalysis, error)
	GetProfitLoss(ctx context.Context, from, to time.Time) (*ProfitLossStatement, error)
	GetOccupancy(ctx context.Context, propertyID *uuid.UUID) (*OccupancyReport, error)
}
