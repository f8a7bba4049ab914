package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pms/backend/internal/domain/property"
	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/infrastructure/persistence/models"
)

// GormUnitRepository implements UnitRepository using GORM
type GormUnitRepository struct {
	db *gorm.DB
}

// NewGormUnitRepository creates a new GormUnitRepository
func NewGormUnitRepository(db *gorm.DB) *GormUnitRepository {
	return &GormUnitRepository{db: db}
}

// FindByID finds a unit by ID
func (r *GormUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Unit, error) {
	var model models.UnitModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUnitNumber finds a unit by its number within a property
func (r *GormUnitRepository) FindByUnitNumber(ctx context.Context, propertyID uuid.UUID, unitNumber string) (*property.Unit, error) {
	var model models.UnitModel
	if err := r.db.WithContext(ctx).
		Where("property_id = ? AND unit_number = ?", propertyID, unitNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all units matching the filter
func (r *GormUnitRepository) FindAll(ctx context.Context, filter shared.Filter) ([]property.Unit, error) {
	query := r.db.WithContext(ctx).Model(&models.UnitModel{})
	query = r.applyUnitFilters(query, filter)
	query = applyPagination(query, filter, "unit_number ASC")
	return r.findUnits(query)
}

// FindByProperty finds units belonging to a property
func (r *GormUnitRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]property.Unit, error) {
	query := r.db.WithContext(ctx).Model(&models.UnitModel{}).
		Where("property_id = ?", propertyID)
	query = r.applyUnitFilters(query, filter)
	query = applyPagination(query, filter, "unit_number ASC")
	return r.findUnits(query)
}

// FindByStatus finds units in a given status
func (r *GormUnitRepository) FindByStatus(ctx context.Context, status property.UnitStatus, filter shared.Filter) ([]property.Unit, error) {
	query := r.db.WithContext(ctx).Model(&models.UnitModel{}).
		Where("status = ?", status)
	query = applySearch(query, filter, "unit_number")
	query = applyPagination(query, filter, "unit_number ASC")
	return r.findUnits(query)
}

func (r *GormUnitRepository) applyUnitFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter, "unit_number")
	if propertyID, ok := filter.Filters["property_id"]; ok {
		query = query.Where("property_id = ?", propertyID)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if unitType, ok := filter.Filters["unit_type"]; ok {
		query = query.Where("unit_type = ?", unitType)
	}
	return query
}

func (r *GormUnitRepository) findUnits(query *gorm.DB) ([]property.Unit, error) {
	var unitModels []models.UnitModel
	if err := query.Find(&unitModels).Error; err != nil {
		return nil, err
	}
	units := make([]property.Unit, len(unitModels))
	for i, model := range unitModels {
		units[i] = *model.ToDomain()
	}
	return units, nil
}

// Save creates or updates a unit
func (r *GormUnitRepository) Save(ctx context.Context, u *property.Unit) error {
	model := models.UnitModelFromDomain(u)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a unit
func (r *GormUnitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.UnitModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts units matching the filter
func (r *GormUnitRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.UnitModel{})
	query = r.applyUnitFilters(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts units in a given status
func (r *GormUnitRepository) CountByStatus(ctx context.Context, status property.UnitStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UnitModel{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormUnitRepository implements UnitRepository
var _ property.UnitRepository = (*GormUnitRepository)(nil)
