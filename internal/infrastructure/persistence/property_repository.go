package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pms/backend/internal/domain/property"
	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/infrastructure/persistence/models"
)

// GormPropertyRepository implements PropertyRepository using GORM
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewGormPropertyRepository creates a new GormPropertyRepository
func NewGormPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: db}
}

// FindByID finds a property by ID
func (r *GormPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	var model models.PropertyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByName finds a property by its exact name
func (r *GormPropertyRepository) FindByName(ctx context.Context, name string) (*property.Property, error) {
	var model models.PropertyModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all properties matching the filter
func (r *GormPropertyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]property.Property, error) {
	var propertyModels []models.PropertyModel
	query := r.db.WithContext(ctx).Model(&models.PropertyModel{})
	query = applySearch(query, filter, "name", "address")
	if active, ok := filter.Filters["is_active"]; ok {
		query = query.Where("is_active = ?", active)
	}
	query = applyPagination(query, filter, "name ASC")

	if err := query.Find(&propertyModels).Error; err != nil {
		return nil, err
	}

	properties := make([]property.Property, len(propertyModels))
	for i, model := range propertyModels {
		properties[i] = *model.ToDomain()
	}
	return properties, nil
}

// FindActive finds all active properties
func (r *GormPropertyRepository) FindActive(ctx context.Context) ([]property.Property, error) {
	var propertyModels []models.PropertyModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&propertyModels).Error; err != nil {
		return nil, err
	}

	properties := make([]property.Property, len(propertyModels))
	for i, model := range propertyModels {
		properties[i] = *model.ToDomain()
	}
	return properties, nil
}

// Save creates or updates a property
func (r *GormPropertyRepository) Save(ctx context.Context, p *property.Property) error {
	model := models.PropertyModelFromDomain(p)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a property
func (r *GormPropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PropertyModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts properties matching the filter
func (r *GormPropertyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.PropertyModel{})
	query = applySearch(query, filter, "name", "address")
	if active, ok := filter.Filters["is_active"]; ok {
		query = query.Where("is_active = ?", active)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormPropertyRepository implements PropertyRepository
var _ property.PropertyRepository = (*GormPropertyRepository)(nil)

// GormSystemParametersRepository implements SystemParametersRepository using GORM
type GormSystemParametersRepository struct {
	db *gorm.DB
}

// NewGormSystemParametersRepository creates a new GormSystemParametersRepository
func NewGormSystemParametersRepository(db *gorm.DB) *GormSystemParametersRepository {
	return &GormSystemParametersRepository{db: db}
}

// FindByProperty finds the billing parameters for a property
func (r *GormSystemParametersRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) (*property.SystemParameters, error) {
	var model models.SystemParametersModel
	if err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save upserts the single parameter row for a property
func (r *GormSystemParametersRepository) Save(ctx context.Context, params *property.SystemParameters) error {
	model := models.SystemParametersModelFromDomain(params)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "property_id"}},
			UpdateAll: true,
		}).
		Create(model).Error
}

// Ensure GormSystemParametersRepository implements SystemParametersRepository
var _ property.SystemParametersRepository = (*GormSystemParametersRepository)(nil)
