package property

import (
	"context"

	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/shared"
)

// PropertyRepository defines persistence operations for properties
type PropertyRepository interface {
	shared.Repository[Property]
	FindByName(ctx context.Context, name string) (*Property, error)
	FindActive(ctx context.Context) ([]Property, error)
}

// UnitRepository defines persistence operations for units
type UnitRepository interface {
	shared.Repository[Unit]
	FindByProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]Unit, error)
	FindByUnitNumber(ctx context.Context, propertyID uuid.UUID, unitNumber string) (*Unit, error)
	FindByStatus(ctx context.Context, status UnitStatus, filter shared.Filter) ([]Unit, error)
	CountByStatus(ctx context.Context, status UnitStatus) (int64, error)
}

// SystemParametersRepository defines persistence operations for billing defaults
type SystemParametersRepository interface {
	FindByProperty(ctx context.Context, propertyID uuid.UUID) (*SystemParameters, error)
	Save(ctx context.Context, params *SystemParameters) error
}
