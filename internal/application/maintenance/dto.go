package maintenance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pms/backend/internal/domain/maintenance"
	"github.com/pms/backend/internal/domain/shared"
)

// CreateRequestInput contains the input for reporting a maintenance issue
type CreateRequestInput struct {
	UnitID       uuid.UUID
	Description  string
	ReportedDate time.Time
	Notes        string
}

// UpdateRequestInput amends an open request
type UpdateRequestInput struct {
	Description *string
	Notes       *string
}

// CompleteRequestInput closes a request with the final cost
type CompleteRequestInput struct {
	RequestID uuid.UUID
	Cost      decimal.Decimal
	Notes     string
}

// RequestInfo is the maintenance request read model returned to the console
type RequestInfo struct {
	ID           uuid.UUID
	UnitID       uuid.UUID
	Description  string
	Status       string
	ReportedDate time.Time
	ResolvedDate *time.Time
	Cost         string
	Notes        string
	CreatedAt    time.Time
}

// ListRequestsInput contains filters for listing requests
type ListRequestsInput struct {
	Filter shared.Filter
	UnitID *uuid.UUID
	Status string
}

func toRequestInfo(r *maintenance.Request) RequestInfo {
	return RequestInfo{
		ID:           r.ID,
		UnitID:       r.UnitID,
		Description:  r.Description,
		Status:       string(r.Status),
		ReportedDate: r.ReportedDate,
		ResolvedDate: r.ResolvedDate,
		Cost:         r.Cost.StringFixed(2),
		Notes:        r.Notes,
		CreatedAt:    r.CreatedAt,
	}
}
