package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/domain/tenancy"
	"github.com/pms/backend/internal/infrastructure/persistence/models"
)

// GormContractRepository implements ContractRepository using GORM
type GormContractRepository struct {
	db *gorm.DB
}

// NewGormContractRepository creates a new GormContractRepository
func NewGormContractRepository(db *gorm.DB) *GormContractRepository {
	return &GormContractRepository{db: db}
}

// FindByID finds a contract by ID
func (r *GormContractRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenancy.Contract, error) {
	var model models.ContractModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all contracts matching the filter
func (r *GormContractRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tenancy.Contract, error) {
	query := r.db.WithContext(ctx).Model(&models.ContractModel{})
	query = r.applyContractFilters(query, filter)
	query = applyPagination(query, filter, "start_date DESC")
	return r.findContracts(query)
}

// FindByCustomer finds contracts for a customer
func (r *GormContractRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]tenancy.Contract, error) {
	query := r.db.WithContext(ctx).Model(&models.ContractModel{}).
		Where("customer_id = ?", customerID)
	query = r.applyContractFilters(query, filter)
	query = applyPagination(query, filter, "start_date DESC")
	return r.findContracts(query)
}

// FindByUnit finds contracts for a unit
func (r *GormContractRepository) FindByUnit(ctx context.Context, unitID uuid.UUID, filter shared.Filter) ([]tenancy.Contract, error) {
	query := r.db.WithContext(ctx).Model(&models.ContractModel{}).
		Where("unit_id = ?", unitID)
	query = r.applyContractFilters(query, filter)
	query = applyPagination(query, filter, "start_date DESC")
	return r.findContracts(query)
}

// FindActiveByUnit finds the active contract for a unit, if any
func (r *GormContractRepository) FindActiveByUnit(ctx context.Context, unitID uuid.UUID) (*tenancy.Contract, error) {
	var model models.ContractModel
	if err := r.db.WithContext(ctx).
		Where("unit_id = ? AND status = ?", unitID, tenancy.ContractStatusActive).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveByProperty finds active contracts for units of a property
func (r *GormContractRepository) FindActiveByProperty(ctx context.Context, propertyID uuid.UUID) ([]tenancy.Contract, error) {
	query := r.db.WithContext(ctx).Model(&models.ContractModel{}).
		Joins("JOIN units ON units.id = rental_contracts.unit_id").
		Where("units.property_id = ? AND rental_contracts.status = ?", propertyID, tenancy.ContractStatusActive).
		Order("rental_contracts.start_date DESC")
	return r.findContracts(query)
}

// FindExpiringBefore finds active contracts ending on or before the cutoff
func (r *GormContractRepository) FindExpiringBefore(ctx context.Context, cutoff time.Time, filter shared.Filter) ([]tenancy.Contract, error) {
	query := r.db.WithContext(ctx).Model(&models.ContractModel{}).
		Where("status = ? AND end_date <= ?", tenancy.ContractStatusActive, cutoff)
	query = applyPagination(query, filter, "end_date ASC")
	return r.findContracts(query)
}

func (r *GormContractRepository) applyContractFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	return query
}

func (r *GormContractRepository) findContracts(query *gorm.DB) ([]tenancy.Contract, error) {
	var contractModels []models.ContractModel
	if err := query.Find(&contractModels).Error; err != nil {
		return nil, err
	}
	contracts := make([]tenancy.Contract, len(contractModels))
	for i, model := range contractModels {
		contracts[i] = *model.ToDomain()
	}
	return contracts, nil
}

// Save creates or updates a contract
func (r *GormContractRepository) Save(ctx context.Context, c *tenancy.Contract) error {
	model := models.ContractModelFromDomain(c)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a contract
func (r *GormContractRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ContractModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts contracts matching the filter
func (r *GormContractRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ContractModel{})
	query = r.applyContractFilters(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountActive counts active contracts
func (r *GormContractRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ContractModel{}).
		Where("status = ?", tenancy.ContractStatusActive).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormContractRepository implements ContractRepository
var _ tenancy.ContractRepository = (*GormContractRepository)(nil)
