package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pms/backend/internal/domain/billing"
	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/infrastructure/persistence/models"
)

// GormReceiptRepository implements ReceiptRepository using GORM
type GormReceiptRepository struct {
	db *gorm.DB
}

// NewGormReceiptRepository creates a new GormReceiptRepository
func NewGormReceiptRepository(db *gorm.DB) *GormReceiptRepository {
	return &GormReceiptRepository{db: db}
}

// FindByID finds a receipt by ID
func (r *GormReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Receipt, error) {
	var model models.ReceiptModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByReceiptNumber finds a receipt by its unique number
func (r *GormReceiptRepository) FindByReceiptNumber(ctx context.Context, receiptNumber string) (*billing.Receipt, error) {
	var model models.ReceiptModel
	if err := r.db.WithContext(ctx).
		Where("receipt_number = ?", receiptNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByContractAndPeriod finds the receipt for a contract and billing period
func (r *GormReceiptRepository) FindByContractAndPeriod(ctx context.Context, contractID uuid.UUID, period billing.BillingPeriod) (*billing.Receipt, error) {
	var model models.ReceiptModel
	if err := r.db.WithContext(ctx).
		Where("contract_id = ? AND period_year = ? AND period_month = ?", contractID, period.Year, period.Month).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all receipts matching the filter
func (r *GormReceiptRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Receipt, error) {
	query := r.db.WithContext(ctx).Model(&models.ReceiptModel{})
	query = r.applyReceiptFilters(query, filter)
	query = applyPagination(query, filter, "issued_at DESC")
	return r.findReceipts(query)
}

// FindByContract finds receipts for a contract
func (r *GormReceiptRepository) FindByContract(ctx context.Context, contractID uuid.UUID, filter shared.Filter) ([]billing.Receipt, error) {
	query := r.db.WithContext(ctx).Model(&models.ReceiptModel{}).
		Where("contract_id = ?", contractID)
	query = r.applyReceiptFilters(query, filter)
	query = applyPagination(query, filter, "period_year DESC, period_month DESC")
	return r.findReceipts(query)
}

// FindOutstanding finds receipts that are not fully paid
func (r *GormReceiptRepository) FindOutstanding(ctx context.Context, filter shared.Filter) ([]billing.Receipt, error) {
	query := r.db.WithContext(ctx).Model(&models.ReceiptModel{}).
		Where("status IN ?", []billing.ReceiptStatus{billing.ReceiptStatusPending, billing.ReceiptStatusPartial})
	query = applyPagination(query, filter, "issued_at ASC")
	return r.findReceipts(query)
}

func (r *GormReceiptRepository) applyReceiptFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter, "receipt_number")
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if year, ok := filter.Filters["period_year"]; ok {
		query = query.Where("period_year = ?", year)
	}
	if month, ok := filter.Filters["period_month"]; ok {
		query = query.Where("period_month = ?", month)
	}
	return query
}

func (r *GormReceiptRepository) findReceipts(query *gorm.DB) ([]billing.Receipt, error) {
	var receiptModels []models.ReceiptModel
	if err := query.Find(&receiptModels).Error; err != nil {
		return nil, err
	}
	receipts := make([]billing.Receipt, len(receiptModels))
	for i, model := range receiptModels {
		receipts[i] = *model.ToDomain()
	}
	return receipts, nil
}

// Save creates or updates a receipt
func (r *GormReceiptRepository) Save(ctx context.Context, receipt *billing.Receipt) error {
	model := models.ReceiptModelFromDomain(receipt)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a receipt
func (r *GormReceiptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ReceiptModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts receipts matching the filter
func (r *GormReceiptRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ReceiptModel{})
	query = r.applyReceiptFilters(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// NextSequence returns the next value of the receipt numbering sequence
func (r *GormReceiptRepository) NextSequence(ctx context.Context) (int64, error) {
	var seq int64
	if err := r.db.WithContext(ctx).
		Raw("SELECT nextval('receipt_number_seq')").
		Scan(&seq).Error; err != nil {
		return 0, err
	}
	return seq, nil
}

// Ensure GormReceiptRepository implements ReceiptRepository
var _ billing.ReceiptRepository = (*GormReceiptRepository)(nil)
