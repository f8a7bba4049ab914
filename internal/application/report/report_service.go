package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pms/backend/internal/domain/report"
	"github.com/pms/backend/internal/domain/shared"
)

// ReportService serves the read-side queries behind the admin dashboard
// and the reporting endpoints. All heavy lifting happens in SQL; this
// layer resolves date windows and applies defaults.
type ReportService struct {
	reportRepo        report.Repository
	expiryWarningDays int
	logger            *zap.Logger
}

// NewReportService creates a new report service. expiryWarningDays
// controls how far ahead the dashboard looks for ending contracts.
func NewReportService(reportRepo report.Repository, expiryWarningDays int, logger *zap.Logger) *ReportService {
	if expiryWarningDays <= 0 {
		expiryWarningDays = 60
	}
	return &ReportService{
		reportRepo:        reportRepo,
		expiryWarningDays: expiryWarningDays,
		logger:            logger,
	}
}

// GetDashboard returns the summary tiles for the admin landing page
func (s *ReportService) GetDashboard(ctx context.Context) (*report.DashboardSummary, error) {
	window := time.Duration(s.expiryWarningDays) * 24 * time.Hour

	summary, err := s.reportRepo.GetDashboardSummary(ctx, window)
	if err != nil {
		s.logger.Error("Failed to build dashboard summary", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build dashboard summary")
	}
	return summary, nil
}

// GetRevenueByMonth returns the billed-versus-collected breakdown for a
// date window. An empty window defaults to the trailing twelve months.
func (s *ReportService) GetRevenueByMonth(ctx context.Context, from, to *time.Time) ([]report.RevenueByMonth, error) {
	start, end := resolveWindow(from, to, -12)

	rows, err := s.reportRepo.GetRevenueByMonth(ctx, start, end)
	if err != nil {
		s.logger.Error("Failed to build revenue report", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build revenue report")
	}
	return rows, nil
}

// GetOutstandingBalances returns every receipt with money still owing,
// with tenant and unit context for follow-up
func (s *ReportService) GetOutstandingBalances(ctx context.Context) ([]report.OutstandingBalance, error) {
	rows, err := s.reportRepo.GetOutstandingBalances(ctx)
	if err != nil {
		s.logger.Error("Failed to list outstanding balances", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list outstanding balances")
	}
	return rows, nil
}

// GetCollections summarizes payments received within a date window,
// broken down by payment method. Defaults to the current month.
func (s *ReportService) GetCollections(ctx context.Context, from, to *time.Time) (*report.CollectionsReport, error) {
	start, end := resolveMonthWindow(from, to)

	result, err := s.reportRepo.GetCollections(ctx, start, end)
	if err != nil {
		s.logger.Error("Failed to build collections report", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build collections report")
	}
	return result, nil
}

// GetRentRoll returns every unit with its current tenancy, optionally
// limited to one property
func (s *ReportService) GetRentRoll(ctx context.Context, propertyID *uuid.UUID) ([]report.RentRollEntry, error) {
	rows, err := s.reportRepo.GetRentRoll(ctx, propertyID)
	if err != nil {
		s.logger.Error("Failed to build rent roll", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build rent roll")
	}
	return rows, nil
}

// GetExpenseAnalysis summarizes spending by category within a date
// window. Defaults to the current month.
func (s *ReportService) GetExpenseAnalysis(ctx context.Context, from, to *time.Time) (*report.ExpenseAnalysis, error) {
	start, end := resolveMonthWindow(from, to)

	result, err := s.reportRepo.GetExpenseAnalysis(ctx, start, end)
	if err != nil {
		s.logger.Error("Failed to build expense analysis", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build expense analysis")
	}
	return result, nil
}

// GetProfitLoss returns collections minus expenses for a date window.
// Defaults to the current month.
func (s *ReportService) GetProfitLoss(ctx context.Context, from, to *time.Time) (*report.ProfitLossStatement, error) {
	start, end := resolveMonthWindow(from, to)

	result, err := s.reportRepo.GetProfitLoss(ctx, start, end)
	if err != nil {
		s.logger.Error("Failed to build profit and loss statement", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build profit and loss statement")
	}
	return result, nil
}

// GetOccupancy returns the unit status breakdown, optionally per property
func (s *ReportService) GetOccupancy(ctx context.Context, propertyID *uuid.UUID) (*report.OccupancyReport, error) {
	result, err := s.reportRepo.GetOccupancy(ctx, propertyID)
	if err != nil {
		s.logger.Error("Failed to build occupancy report", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build occupancy report")
	}
	return result, nil
}

// resolveWindow fills a missing window edge. The start defaults to
// monthsBack whole months before the end.
func resolveWindow(from, to *time.Time, monthsBack int) (time.Time, time.Time) {
	var end time.Time
	if to != nil {
		end = *to
	} else {
		end = time.Now()
	}

	var start time.Time
	if from != nil {
		start = *from
	} else {
		start = end.AddDate(0, monthsBack, 0)
	}
	return start, end
}

// resolveMonthWindow defaults a missing window to the current calendar month
func resolveMonthWindow(from, to *time.Time) (time.Time, time.Time) {
	if from == nil && to == nil {
		now := time.Now()
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, 0)
	}
	return resolveWindow(from, to, -1)
}
