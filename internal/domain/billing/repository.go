package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/shared"
)

// ReceiptRepository defines persistence operations for receipts
type ReceiptRepository interface {
	shared.Repository[Receipt]
	FindByContract(ctx context.Context, contractID uuid.UUID, filter shared.Filter) ([]Receipt, error)
	FindByReceiptNumber(ctx context.Context, receiptNumber string) (*Receipt, error)
	FindByContractAndPeriod(ctx context.Context, contractID uuid.UUID, period BillingPeriod) (*Receipt, error)
	FindOutstanding(ctx context.Context, filter shared.Filter) ([]Receipt, error)
	NextSequence(ctx context.Context) (int64, error)
}

// PaymentRepository defines persistence operations for payments
type PaymentRepository interface {
	shared.Repository[Payment]
	FindByReceipt(ctx context.Context, receiptID uuid.UUID) ([]Payment, error)
	FindByContract(ctx context.Context, contractID uuid.UUID, filter shared.Filter) ([]Payment, error)
	FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]Payment, error)
}

// ExpenseRepository defines persistence operations for expenses
type ExpenseRepository interface {
	shared.Repository[Expense]
	FindByProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]Expense, error)
	FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]Expense, error)
}
