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

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all payments matching the filter
func (r *GormPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Payment, error) {
	query := r.db.WithContext(ctx).Model(&models.PaymentModel{})
	query = r.applyPaymentFilters(query, filter)
	query = applyPagination(query, filter, "payment_date DESC")
	return r.findPayments(query)
}

// FindByReceipt finds payments recorded against a receipt
func (r *GormPaymentRepository) FindByReceipt(ctx context.Context, receiptID uuid.UUID) ([]billing.Payment, error) {
	query := r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Where("receipt_id = ?", receiptID).
		Order("payment_date ASC")
	return r.findPayments(query)
}

// FindByContract finds payments for a contract
func (r *GormPaymentRepository) FindByContract(ctx context.Context, contractID uuid.UUID, filter shared.Filter) ([]billing.Payment, error) {
	query := r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Where("contract_id = ?", contractID)
	query = applyPagination(query, filter, "payment_date DESC")
	return r.findPayments(query)
}

// FindByDateRange finds payments within a date range
func (r *GormPaymentRepository) FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]billing.Payment, error) {
	query := r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Where("payment_date BETWEEN ? AND ?", from, to)
	query = r.applyPaymentFilters(query, filter)
	query = applyPagination(query, filter, "payment_date DESC")
	return r.findPayments(query)
}

func (r *GormPaymentRepository) applyPaymentFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter, "reference")
	if method, ok := filter.Filters["method"]; ok {
		query = query.Where("method = ?", method)
	}
	return query
}

func (r *GormPaymentRepository) findPayments(query *gorm.DB) ([]billing.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := query.Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	payments := make([]billing.Payment, len(paymentModels))
	for i, model := range paymentModels {
		payments[i] = *model.ToDomain()
	}
	return payments, nil
}

// Save creates or updates a payment
func (r *GormPaymentRepository) Save(ctx context.Context, p *billing.Payment) error {
	model := models.PaymentModelFromDomain(p)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a payment
func (r *GormPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PaymentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts payments matching the filter
func (r *GormPaymentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.PaymentModel{})
	query = r.applyPaymentFilters(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormPaymentRepository implements PaymentRepository
var _ billing.PaymentRepository = (*GormPaymentRepository)(nil)
