package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pms/backend/internal/domain/billing"
	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/infrastructure/persistence/models"
)

// GormExpenseRepository implements ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense by ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Expense, error) {
	var model models.ExpenseModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all expenses matching the filter
func (r *GormExpenseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Expense, error) {
	query := r.db.WithContext(ctx).Model(&models.ExpenseModel{})
	query = r.applyExpenseFilters(query, filter)
	query = applyPagination(query, filter, "expense_date DESC")
	return r.findExpenses(query)
}

// FindByProperty finds expenses for a property
func (r *GormExpenseRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]billing.Expense, error) {
	query := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).
		Where("property_id = ?", propertyID)
	query = r.applyExpenseFilters(query, filter)
	query = applyPagination(query, filter, "expense_date DESC")
	return r.findExpenses(query)
}

// FindByDateRange finds expenses within a date range
func (r *GormExpenseRepository) FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]billing.Expense, error) {
	query := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).
		Where("expense_date BETWEEN ? AND ?", from, to)
	query = r.applyExpenseFilters(query, filter)
	query = applyPagination(query, filter, "expense_date DESC")
	return r.findExpenses(query)
}

func (r *GormExpenseRepository) applyExpenseFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter, "description")
	if category, ok := filter.Filters["category"]; ok {
		query = query.Where("category = ?", category)
	}
	return query
}

func (r *GormExpenseRepository) findExpenses(query *gorm.DB) ([]billing.Expense, error) {
	var expenseModels []models.ExpenseModel
	if err := query.Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	expenses := make([]billing.Expense, len(expenseModels))
	for i, model := range expenseModels {
		expenses[i] = *model.ToDomain()
	}
	return expenses, nil
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, e *billing.Expense) error {
	model := models.ExpenseModelFromDomain(e)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes an expense
func (r *GormExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ExpenseModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts expenses matching the filter
func (r *GormExpenseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ExpenseModel{})
	query = r.applyExpenseFilters(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormExpenseRepository implements ExpenseRepository
var _ billing.ExpenseRepository = (*GormExpenseRepository)(nil)
