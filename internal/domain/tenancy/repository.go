package tenancy

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/shared"
)

// CustomerRepository defines persistence operations for customers
type CustomerRepository interface {
	shared.Repository[Customer]
	FindByPhoneNumber(ctx context.Context, phoneNumber string) (*Customer, error)
	FindByIDNumber(ctx context.Context, idNumber string) (*Customer, error)
	ExistsByPhoneNumber(ctx context.Context, phoneNumber string) (bool, error)
}

// ContractRepository defines persistence operations for contracts
type ContractRepository interface {
	shared.Repository[Contract]
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Contract, error)
	FindByUnit(ctx context.Context, unitID uuid.UUID, filter shared.Filter) ([]Contract, error)
	FindActiveByUnit(ctx context.Context, unitID uuid.UUID) (*Contract, error)
	FindActiveByProperty(ctx context.Context, propertyID uuid.UUID) ([]Contract, error)
	FindExpiringBefore(ctx context.Context, cutoff time.Time, filter shared.Filter) ([]Contract, error)
	CountActive(ctx context.Context) (int64, error)
}
