package maintenance

import (
	"context"

	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/shared"
)

// RequestRepository defines persistence operations for maintenance requests
type RequestRepository interface {
	shared.Repository[Request]
	FindByUnit(ctx context.Context, unitID uuid.UUID, filter shared.Filter) ([]Request, error)
	FindByStatus(ctx context.Context, status RequestStatus, filter shared.Filter) ([]Request, error)
	CountOpen(ctx context.Context) (int64, error)
}
