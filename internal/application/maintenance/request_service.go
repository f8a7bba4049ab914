package maintenance

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pms/backend/internal/domain/maintenance"
	"github.com/pms/backend/internal/domain/property"
	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/domain/shared/valueobject"
)

// RequestService tracks maintenance issues reported against units
type RequestService struct {
	requestRepo maintenance.RequestRepository
	unitRepo    property.UnitRepository
	logger      *zap.Logger
}

// NewRequestService creates a new maintenance request service
func NewRequestService(
	requestRepo maintenance.RequestRepository,
	unitRepo property.UnitRepository,
	logger *zap.Logger,
) *RequestService {
	return &RequestService{
		requestRepo: requestRepo,
		unitRepo:    unitRepo,
		logger:      logger,
	}
}

// CreateRequest reports a maintenance issue on a unit
func (s *RequestService) CreateRequest(ctx context.Context, input CreateRequestInput) (*RequestInfo, error) {
	if _, err := s.unitRepo.FindByID(ctx, input.UnitID); err != nil {
		return nil, err
	}

	request, err := maintenance.NewRequest(input.UnitID, input.Description, input.ReportedDate)
	if err != nil {
		return nil, err
	}
	if input.Notes != "" {
		request.SetNotes(input.Notes)
	}

	if err := s.requestRepo.Save(ctx, request); err != nil {
		s.logger.Error("Failed to save maintenance request", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create maintenance request")
	}

	s.logger.Info("Maintenance request created",
		zap.String("request_id", request.ID.String()),
		zap.String("unit_id", input.UnitID.String()))

	info := toRequestInfo(request)
	return &info, nil
}

// GetRequest retrieves a request by ID
func (s *RequestService) GetRequest(ctx context.Context, id uuid.UUID) (*RequestInfo, error) {
	request, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	info := toRequestInfo(request)
	return &info, nil
}

// ListRequests returns a paginated list of requests
func (s *RequestService) ListRequests(ctx context.Context, input ListRequestsInput) (*shared.Paginated[RequestInfo], error) {
	filter := input.Filter
	if filter.Filters == nil {
		filter.Filters = make(map[string]interface{})
	}
	if input.Status != "" {
		filter.Filters["status"] = input.Status
	}

	var (
		requests []maintenance.Request
		err      error
	)
	switch {
	case input.UnitID != nil:
		requests, err = s.requestRepo.FindByUnit(ctx, *input.UnitID, filter)
	case input.Status != "":
		requests, err = s.requestRepo.FindByStatus(ctx, maintenance.RequestStatus(input.Status), filter)
	default:
		requests, err = s.requestRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.requestRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	infos := make([]RequestInfo, 0, len(requests))
	for i := range requests {
		infos = append(infos, toRequestInfo(&requests[i]))
	}

	result := shared.NewPaginated(infos, total, filter.Page, filter.PageSize)
	return &result, nil
}

// UpdateRequest amends the description or notes of a request
func (s *RequestService) UpdateRequest(ctx context.Context, id uuid.UUID, input UpdateRequestInput) (*RequestInfo, error) {
	request, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Description != nil {
		if err := request.SetDescription(*input.Description); err != nil {
			return nil, err
		}
	}
	if input.Notes != nil {
		request.SetNotes(*input.Notes)
	}

	if err := s.requestRepo.Save(ctx, request); err != nil {
		s.logger.Error("Failed to update maintenance request", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update maintenance request")
	}

	info := toRequestInfo(request)
	return &info, nil
}

// StartRequest moves a pending request to in progress
func (s *RequestService) StartRequest(ctx context.Context, id uuid.UUID) (*RequestInfo, error) {
	return s.transition(ctx, id, func(r *maintenance.Request) error {
		return r.Start()
	})
}

// CompleteRequest closes a request with the final cost
func (s *RequestService) CompleteRequest(ctx context.Context, input CompleteRequestInput) (*RequestInfo, error) {
	return s.transition(ctx, input.RequestID, func(r *maintenance.Request) error {
		if err := r.Complete(valueobject.NewMoneyKES(input.Cost)); err != nil {
			return err
		}
		if input.Notes != "" {
			r.SetNotes(input.Notes)
		}
		return nil
	})
}

// CancelRequest withdraws a request
func (s *RequestService) CancelRequest(ctx context.Context, id uuid.UUID) (*RequestInfo, error) {
	return s.transition(ctx, id, func(r *maintenance.Request) error {
		return r.Cancel()
	})
}

// CountOpen returns how many requests are still pending or in progress
func (s *RequestService) CountOpen(ctx context.Context) (int64, error) {
	return s.requestRepo.CountOpen(ctx)
}

func (s *RequestService) transition(ctx context.Context, id uuid.UUID, fn func(*maintenance.Request) error) (*RequestInfo, error) {
	request, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(request); err != nil {
		return nil, err
	}

	if err := s.requestRepo.Save(ctx, request); err != nil {
		s.logger.Error("Failed to save maintenance request",
			zap.String("request_id", id.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update maintenance request")
	}

	s.logger.Info("Maintenance request updated",
		zap.String("request_id", request.ID.String()),
		zap.String("status", string(request.Status)))

	info := toRequestInfo(request)
	return &info, nil
}
