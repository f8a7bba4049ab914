package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pms/backend/internal/domain/maintenance"
	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/infrastructure/persistence/models"
)

// GormMaintenanceRequestRepository implements RequestRepository using GORM
type GormMaintenanceRequestRepository struct {
	db *gorm.DB
}

// NewGormMaintenanceRequestRepository creates a new GormMaintenanceRequestRepository
func NewGormMaintenanceRequestRepository(db *gorm.DB) *GormMaintenanceRequestRepository {
	return &GormMaintenanceRequestRepository{db: db}
}

// FindByID finds a maintenance request by ID
func (r *GormMaintenanceRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*maintenance.Request, error) {
	var model models.MaintenanceRequestModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all maintenance requests matching the filter
func (r *GormMaintenanceRequestRepository) FindAll(ctx context.Context, filter shared.Filter) ([]maintenance.Request, error) {
	query := r.db.WithContext(ctx).Model(&models.MaintenanceRequestModel{})
	query = r.applyRequestFilters(query, filter)
	query = applyPagination(query, filter, "reported_date DESC")
	return r.findRequests(query)
}

// FindByUnit finds maintenance requests for a unit
func (r *GormMaintenanceRequestRepository) FindByUnit(ctx context.Context, unitID uuid.UUID, filter shared.Filter) ([]maintenance.Request, error) {
	query := r.db.WithContext(ctx).Model(&models.MaintenanceRequestModel{}).
		Where("unit_id = ?", unitID)
	query = r.applyRequestFilters(query, filter)
	query = applyPagination(query, filter, "reported_date DESC")
	return r.findRequests(query)
}

// FindByStatus finds maintenance requests in a given status
func (r *GormMaintenanceRequestRepository) FindByStatus(ctx context.Context, status maintenance.RequestStatus, filter shared.Filter) ([]maintenance.Request, error) {
	query := r.db.WithContext(ctx).Model(&models.MaintenanceRequestModel{}).
		Where("status = ?", status)
	query = applySearch(query, filter, "description")
	query = applyPagination(query, filter, "reported_date DESC")
	return r.findRequests(query)
}

func (r *GormMaintenanceRequestRepository) applyRequestFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter, "description")
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	return query
}

func (r *GormMaintenanceRequestRepository) findRequests(query *gorm.DB) ([]maintenance.Request, error) {
	var requestModels []models.MaintenanceRequestModel
	if err := query.Find(&requestModels).Error; err != nil {
		return nil, err
	}
	requests := make([]maintenance.Request, len(requestModels))
	for i, model := range requestModels {
		requests[i] = *model.ToDomain()
	}
	return requests, nil
}

// Save creates or updates a maintenance request
func (r *GormMaintenanceRequestRepository) Save(ctx context.Context, req *maintenance.Request) error {
	model := models.MaintenanceRequestModelFromDomain(req)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a maintenance request
func (r *GormMaintenanceRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.MaintenanceRequestModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts maintenance requests matching the filter
func (r *GormMaintenanceRequestRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.MaintenanceRequestModel{})
	query = r.applyRequestFilters(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountOpen counts pending and in-progress maintenance requests
func (r *GormMaintenanceRequestRepository) CountOpen(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.MaintenanceRequestModel{}).
		Where("status IN ?", []maintenance.RequestStatus{
			maintenance.RequestStatusPending,
			maintenance.RequestStatusInProgress,
		}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormMaintenanceRequestRepository implements RequestRepository
var _ maintenance.RequestRepository = (*GormMaintenanceRequestRepository)(nil)
