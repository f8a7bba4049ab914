package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pms/backend/internal/domain/report"
)

// GormReportRepository implements the report read-side queries using GORM
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// GetDashboardSummary returns the aggregate figures behind the dashboard tiles
func (r *GormReportRepository) GetDashboardSummary(ctx context.Context, expiringWithin time.Duration) (*report.DashboardSummary, error) {
	db := r.db.WithContext(ctx)
	summary := &report.DashboardSummary{}

	if err := db.Table("rental_contracts").
		Where("status = 'active'").
		Count(&summary.TotalTenants).Error; err != nil {
		return nil, err
	}

	type unitCounts struct {
		Total       int64
		Occupied    int64
		Vacant      int64
		Maintenance int64
	}
	var uc unitCounts
	if err := db.Table("units").
		Select(`COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'occupied') AS occupied,
			COUNT(*) FILTER (WHERE status = 'vacant') AS vacant,
			COUNT(*) FILTER (WHERE status = 'maintenance') AS maintenance`).
		Scan(&uc).Error; err != nil {
		return nil, err
	}
	summary.TotalUnits = uc.Total
	summary.OccupiedUnits = uc.Occupied
	summary.VacantUnits = uc.Vacant

	if err := db.Table("receipts").
		Select("COALESCE(SUM(total - amount_paid), 0)").
		Where("status IN ('pending', 'partial')").
		Scan(&summary.PendingRent).Error; err != nil {
		return nil, err
	}

	cutoff := time.Now().Add(expiringWithin)
	if err := db.Table("rental_contracts").
		Where("status = 'active' AND end_date <= ?", cutoff).
		Count(&summary.ContractsExpiring).Error; err != nil {
		return nil, err
	}

	monthStart := time.Date(time.Now().Year(), time.Now().Month(), 1, 0, 0, 0, 0, time.UTC)
	if err := db.Table("payments").
		Select("COALESCE(SUM(amount), 0)").
		Where("payment_date >= ?", monthStart).
		Scan(&summary.MonthlyCollection).Error; err != nil {
		return nil, err
	}

	if err := db.Table("maintenance_requests").
		Where("status IN ('pending', 'in_progress')").
		Count(&summary.OpenMaintenanceReqs).Error; err != nil {
		return nil, err
	}

	summary.OccupancyRate = occupancyRate(uc.Occupied, uc.Total)
	return summary, nil
}

// GetRevenueByMonth returns billed and collected totals per billing period
func (r *GormReportRepository) GetRevenueByMonth(ctx context.Context, from, to time.Time) ([]report.RevenueByMonth, error) {
	db := r.db.WithContext(ctx)

	var billed []report.RevenueByMonth
	if err := db.Table("receipts").
		Select("period_year AS year, period_month AS month, COALESCE(SUM(total), 0) AS billed").
		Where("issued_at BETWEEN ? AND ?", from, to).
		Group("period_year, period_month").
		Order("period_year, period_month").
		Scan(&billed).Error; err != nil {
		return nil, err
	}

	type collectedRow struct {
		Year      int
		Month     int
		Collected decimal.Decimal
	}
	var collected []collectedRow
	if err := db.Table("payments p").
		Select("r.period_year AS year, r.period_month AS month, COALESCE(SUM(p.amount), 0) AS collected").
		Joins("JOIN receipts r ON r.id = p.receipt_id").
		Where("p.payment_date BETWEEN ? AND ?", from, to).
		Group("r.period_year, r.period_month").
		Scan(&collected).Error; err != nil {
		return nil, err
	}

	byPeriod := make(map[[2]int]decimal.Decimal, len(collected))
	for _, c := range collected {
		byPeriod[[2]int{c.Year, c.Month}] = c.Collected
	}
	for i := range billed {
		billed[i].Collected = byPeriod[[2]int{billed[i].Year, billed[i].Month}]
	}
	return billed, nil
}

// GetOutstandingBalances returns unpaid and partially paid receipts with tenant context
func (r *GormReportRepository) GetOutstandingBalances(ctx context.Context) ([]report.OutstandingBalance, error) {
	var balances []report.OutstandingBalance
	err := r.db.WithContext(ctx).Table("receipts r").
		Select(`r.id AS receipt_id, r.receipt_number, r.contract_id,
			c.first_name || ' ' || c.last_name AS customer_name,
			u.unit_number, p.name AS property_name,
			r.total, r.amount_paid, r.total - r.amount_paid AS balance, r.issued_at`).
		Joins("JOIN rental_contracts rc ON rc.id = r.contract_id").
		Joins("JOIN customers c ON c.id = rc.customer_id").
		Joins("JOIN units u ON u.id = rc.unit_id").
		Joins("JOIN properties p ON p.id = u.property_id").
		Where("r.status IN ('pending', 'partial')").
		Order("r.issued_at ASC").
		Scan(&balances).Error
	if err != nil {
		return nil, err
	}
	return balances, nil
}

// GetCollections summarizes payments received within a period
func (r *GormReportRepository) GetCollections(ctx context.Context, from, to time.Time) (*report.CollectionsReport, error) {
	db := r.db.WithContext(ctx)
	result := &report.CollectionsReport{PeriodStart: from, PeriodEnd: to}

	if err := db.Table("payments").
		Select("COALESCE(SUM(amount), 0)").
		Where("payment_date BETWEEN ? AND ?", from, to).
		Scan(&result.Total).Error; err != nil {
		return nil, err
	}

	if err := db.Table("payments").
		Select("method, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS amount").
		Where("payment_date BETWEEN ? AND ?", from, to).
		Group("method").
		Order("amount DESC").
		Scan(&result.ByMethod).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// GetRentRoll returns every unit with its current tenancy, optionally per property
func (r *GormReportRepository) GetRentRoll(ctx context.Context, propertyID *uuid.UUID) ([]report.RentRollEntry, error) {
	query := r.db.WithContext(ctx).Table("units u").
		Select(`u.id AS unit_id, u.unit_number, p.name AS property_name,
			u.status AS unit_status,
			c.first_name || ' ' || c.last_name AS customer_name,
			rc.id AS contract_id,
			COALESCE(rc.rent_amount, u.rent_amount) AS rent_amount,
			rc.end_date AS contract_end`).
		Joins("JOIN properties p ON p.id = u.property_id").
		Joins("LEFT JOIN rental_contracts rc ON rc.unit_id = u.id AND rc.status = 'active'").
		Joins("LEFT JOIN customers c ON c.id = rc.customer_id").
		Order("p.name, u.unit_number")

	if propertyID != nil {
		query = query.Where("u.property_id = ?", *propertyID)
	}

	var entries []report.RentRollEntry
	if err := query.Scan(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// GetExpenseAnalysis summarizes spending per category within a period
func (r *GormReportRepository) GetExpenseAnalysis(ctx context.Context, from, to time.Time) (*report.ExpenseAnalysis, error) {
	db := r.db.WithContext(ctx)
	result := &report.ExpenseAnalysis{PeriodStart: from, PeriodEnd: to}

	if err := db.Table("expenses").
		Select("COALESCE(SUM(amount), 0)").
		Where("expense_date BETWEEN ? AND ?", from, to).
		Scan(&result.Total).Error; err != nil {
		return nil, err
	}

	if err := db.Table("expenses").
		Select("category, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS amount").
		Where("expense_date BETWEEN ? AND ?", from, to).
		Group("category").
		Order("amount DESC").
		Scan(&result.ByCategory).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// GetProfitLoss computes collections minus expenses for a period
func (r *GormReportRepository) GetProfitLoss(ctx context.Context, from, to time.Time) (*report.ProfitLossStatement, error) {
	db := r.db.WithContext(ctx)
	stmt := &report.ProfitLossStatement{PeriodStart: from, PeriodEnd: to}

	if err := db.Table("payments").
		Select("COALESCE(SUM(amount), 0)").
		Where("payment_date BETWEEN ? AND ?", from, to).
		Scan(&stmt.Collections).Error; err != nil {
		return nil, err
	}

	if err := db.Table("expenses").
		Select("COALESCE(SUM(amount), 0)").
		Where("expense_date BETWEEN ? AND ?", from, to).
		Scan(&stmt.Expenses).Error; err != nil {
		return nil, err
	}

	stmt.NetIncome = stmt.Collections.Sub(stmt.Expenses)
	if stmt.Collections.IsPositive() {
		stmt.NetMargin = stmt.NetIncome.Div(stmt.Collections).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return stmt, nil
}

// GetOccupancy returns the unit status breakdown, optionally per property
func (r *GormReportRepository) GetOccupancy(ctx context.Context, propertyID *uuid.UUID) (*report.OccupancyReport, error) {
	query := r.db.WithContext(ctx).Table("units").
		Select(`COUNT(*) AS total_units,
			COUNT(*) FILTER (WHERE status = 'occupied') AS occupied_units,
			COUNT(*) FILTER (WHERE status = 'vacant') AS vacant_units,
			COUNT(*) FILTER (WHERE status = 'maintenance') AS maintenance_units`)
	if propertyID != nil {
		query = query.Where("property_id = ?", *propertyID)
	}

	result := &report.OccupancyReport{PropertyID: propertyID}
	if err := query.Scan(result).Error; err != nil {
		return nil, err
	}
	result.OccupancyRate = occupancyRate(result.OccupiedUnits, result.TotalUnits)
	return result, nil
}

// occupancyRate returns occupied/total as a percentage rounded to 2dp.
// Zero units yields a zero rate rather than a division error.
func occupancyRate(occupied, total int64) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(occupied).
		Div(decimal.NewFromInt(total)).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}

// Ensure GormReportRepository implements report.Repository
var _ report.Repository = (*GormReportRepository)(nil)
