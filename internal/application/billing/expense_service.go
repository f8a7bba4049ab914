package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pms/backend/internal/domain/billing"
	"github.com/pms/backend/internal/domain/property"
	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/domain/shared/valueobject"
)

// ExpenseService records property running costs
type ExpenseService struct {
	expenseRepo  billing.ExpenseRepository
	propertyRepo property.PropertyRepository
	logger       *zap.Logger
}

// NewExpenseService creates a new expense service
func NewExpenseService(
	expenseRepo billing.ExpenseRepository,
	propertyRepo property.PropertyRepository,
	logger *zap.Logger,
) *ExpenseService {
	return &ExpenseService{
		expenseRepo:  expenseRepo,
		propertyRepo: propertyRepo,
		logger:       logger,
	}
}

// CreateExpense records an expense against a property
func (s *ExpenseService) CreateExpense(ctx context.Context, input CreateExpenseInput) (*ExpenseInfo, error) {
	if _, err := s.propertyRepo.FindByID(ctx, input.PropertyID); err != nil {
		return nil, err
	}

	expense, err := billing.NewExpense(
		input.PropertyID,
		input.Description,
		valueobject.NewMoneyKES(input.Amount),
		input.ExpenseDate,
		billing.ExpenseCategory(input.Category),
	)
	if err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		s.logger.Error("Failed to save expense", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to record expense")
	}

	s.logger.Info("Expense recorded",
		zap.String("expense_id", expense.ID.String()),
		zap.String("property_id", input.PropertyID.String()),
		zap.String("amount", expense.Amount.StringFixed(2)))

	info := toExpenseInfo(expense)
	return &info, nil
}

// GetExpense retrieves an expense by ID
func (s *ExpenseService) GetExpense(ctx context.Context, id uuid.UUID) (*ExpenseInfo, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	info := toExpenseInfo(expense)
	return &info, nil
}

// ListExpenses returns a paginated list of expenses
func (s *ExpenseService) ListExpenses(ctx context.Context, input ListExpensesInput) (*shared.Paginated[ExpenseInfo], error) {
	filter := input.Filter
	if filter.Filters == nil {
		filter.Filters = make(map[string]interface{})
	}
	if input.Category != "" {
		filter.Filters["category"] = input.Category
	}

	var (
		expenses []billing.Expense
		err      error
	)
	switch {
	case input.PropertyID != nil:
		expenses, err = s.expenseRepo.FindByProperty(ctx, *input.PropertyID, filter)
	case input.From != nil || input.To != nil:
		from, to := expenseRange(input.From, input.To)
		expenses, err = s.expenseRepo.FindByDateRange(ctx, from, to, filter)
	default:
		expenses, err = s.expenseRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.expenseRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	infos := make([]ExpenseInfo, 0, len(expenses))
	for i := range expenses {
		infos = append(infos, toExpenseInfo(&expenses[i]))
	}

	result := shared.NewPaginated(infos, total, filter.Page, filter.PageSize)
	return &result, nil
}

// UpdateExpense amends an expense record
func (s *ExpenseService) UpdateExpense(ctx context.Context, id uuid.UUID, input UpdateExpenseInput) (*ExpenseInfo, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := expense.Update(
		input.Description,
		valueobject.NewMoneyKES(input.Amount),
		input.ExpenseDate,
		billing.ExpenseCategory(input.Category),
	); err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		s.logger.Error("Failed to update expense", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update expense")
	}

	info := toExpenseInfo(expense)
	return &info, nil
}

// DeleteExpense removes an expense record
func (s *ExpenseService) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	if err := s.expenseRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Expense deleted", zap.String("expense_id", id.String()))
	return nil
}

func expenseRange(from, to *time.Time) (time.Time, time.Time) {
	var f, t time.Time
	if from != nil {
		f = *from
	} else {
		f = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	if to != nil {
		t = *to
	} else {
		t = time.Now()
	}
	return f, t
}
