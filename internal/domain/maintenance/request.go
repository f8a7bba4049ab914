package maintenance

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/domain/shared/valueobject"
)

// RequestStatus tracks the lifecycle of a maintenance request
type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "pending"
	RequestStatusInProgress RequestStatus = "in_progress"
	RequestStatusCompleted  RequestStatus = "completed"
	RequestStatusCancelled  RequestStatus = "cancelled"
)

// Request is the aggregate root for a reported maintenance issue on a unit
type Request struct {
	shared.BaseAggregateRoot
	UnitID       uuid.UUID
	Description  string
	Status       RequestStatus
	ReportedDate time.Time
	ResolvedDate *time.Time
	Cost         valueobject.Money
	Notes        string
}

// NewRequest reports a maintenance issue
func NewRequest(unitID uuid.UUID, description string, reportedDate time.Time) (*Request, error) {
	if unitID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_UNIT_ID", "Unit ID cannot be empty")
	}
	if strings.TrimSpace(description) == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if reportedDate.IsZero() {
		reportedDate = time.Now()
	}

	return &Request{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UnitID:            unitID,
		Description:       strings.TrimSpace(description),
		Status:            RequestStatusPending,
		ReportedDate:      reportedDate,
		Cost:              valueobject.ZeroKES(),
	}, nil
}

// Start moves the request to in progress
func (r *Request) Start() error {
	if r.Status != RequestStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending requests can be started")
	}

	r.Status = RequestStatusInProgress
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// Complete closes the request with the final cost
func (r *Request) Complete(cost valueobject.Money) error {
	if r.Status == RequestStatusCompleted || r.Status == RequestStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Request is already closed")
	}
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Cost cannot be negative")
	}

	now := time.Now()
	r.Status = RequestStatusCompleted
	r.ResolvedDate = &now
	r.Cost = cost
	r.UpdatedAt = now
	r.IncrementVersion()

	return nil
}

// Cancel withdraws the request
func (r *Request) Cancel() error {
	if r.Status == RequestStatusCompleted || r.Status == RequestStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Request is already closed")
	}

	r.Status = RequestStatusCancelled
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// SetDescription amends the reported issue
func (r *Request) SetDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}

	r.Description = strings.TrimSpace(description)
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// SetNotes updates free-form notes
func (r *Request) SetNotes(notes string) {
	r.Notes = notes
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// IsOpen returns true while work is outstanding
func (r *Request) IsOpen() bool {
	return r.Status == RequestStatusPending || r.Status == RequestStatusInProgress
}
