package billing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/domain/shared/valueobject"
)

// ExpenseCategory buckets property running costs for reporting
type ExpenseCategory string

const (
	ExpenseCategoryRepairs   ExpenseCategory = "repairs"
	ExpenseCategoryUtilities ExpenseCategory = "utilities"
	ExpenseCategorySalaries  ExpenseCategory = "salaries"
	ExpenseCategoryLegal     ExpenseCategory = "legal"
	ExpenseCategoryOther     ExpenseCategory = "other"
)

// Expense records money spent running a property
type Expense struct {
	shared.BaseAggregateRoot
	PropertyID  uuid.UUID
	Description string
	Amount      valueobject.Money
	ExpenseDate time.Time
	Category    ExpenseCategory
}

// NewExpense records an expense against a property
func NewExpense(propertyID uuid.UUID, description string, amount valueobject.Money, expenseDate time.Time, category ExpenseCategory) (*Expense, error) {
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY_ID", "Property ID cannot be empty")
	}
	if strings.TrimSpace(description) == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	if expenseDate.IsZero() {
		expenseDate = time.Now()
	}
	if category == "" {
		category = ExpenseCategoryOther
	}

	return &Expense{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PropertyID:        propertyID,
		Description:       strings.TrimSpace(description),
		Amount:            amount,
		ExpenseDate:       expenseDate,
		Category:          category,
	}, nil
}

// Update amends the expense record
func (e *Expense) Update(description string, amount valueobject.Money, expenseDate time.Time, category ExpenseCategory) error {
	if strings.TrimSpace(description) == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}

	e.Description = strings.TrimSpace(description)
	e.Amount = amount
	if !expenseDate.IsZero() {
		e.ExpenseDate = expenseDate
	}
	if category != "" {
		e.Category = category
	}
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}
