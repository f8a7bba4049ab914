package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pms/backend/internal/domain/billing"
	"github.com/pms/backend/internal/domain/property"
	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/domain/shared/valueobject"
	"github.com/pms/backend/internal/domain/tenancy"
)

// PaymentService records payments against receipts. Payments are
// append-only; corrections are made by issuing an adjusting receipt.
type PaymentService struct {
	paymentRepo  billing.PaymentRepository
	receiptRepo  billing.ReceiptRepository
	contractRepo tenancy.ContractRepository
	unitRepo     property.UnitRepository
	paramsRepo   property.SystemParametersRepository
	logger       *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo billing.PaymentRepository,
	receiptRepo billing.ReceiptRepository,
	contractRepo tenancy.ContractRepository,
	unitRepo property.UnitRepository,
	paramsRepo property.SystemParametersRepository,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo:  paymentRepo,
		receiptRepo:  receiptRepo,
		contractRepo: contractRepo,
		unitRepo:     unitRepo,
		paramsRepo:   paramsRepo,
		logger:       logger,
	}
}

// RecordPayment credits a payment against a receipt and moves the
// receipt status through pending, partial and paid
func (s *PaymentService) RecordPayment(ctx context.Context, input RecordPaymentInput) (*PaymentInfo, error) {
	receipt, err := s.receiptRepo.FindByID(ctx, input.ReceiptID)
	if err != nil {
		return nil, err
	}

	amount := valueobject.NewMoneyKES(input.Amount)

	payment, err := billing.NewPayment(
		receipt.ID,
		receipt.ContractID,
		amount,
		input.PaymentDate,
		billing.PaymentMethod(input.Method),
		input.Reference,
	)
	if err != nil {
		return nil, err
	}
	if input.Notes != "" {
		payment.SetNotes(input.Notes)
	}

	if partial, err := amount.LessThan(receipt.Balance()); err == nil && partial {
		if !s.policiesForReceipt(ctx, receipt).AllowPartialPayments {
			return nil, shared.NewDomainError("PARTIAL_PAYMENT_NOT_ALLOWED",
				"This property requires receipts to be settled in full")
		}
	}

	if err := receipt.ApplyPayment(amount); err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		s.logger.Error("Failed to save payment", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to record payment")
	}
	if err := s.receiptRepo.Save(ctx, receipt); err != nil {
		s.logger.Error("Failed to update receipt after payment",
			zap.String("receipt_id", receipt.ID.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update receipt")
	}

	s.logger.Info("Payment recorded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("receipt_number", receipt.ReceiptNumber),
		zap.String("amount", amount.StringFixed(2)),
		zap.String("receipt_status", string(receipt.Status)))

	info := toPaymentInfo(payment)
	return &info, nil
}

// GetPayment retrieves a payment by ID
func (s *PaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*PaymentInfo, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	info := toPaymentInfo(payment)
	return &info, nil
}

// ListByReceipt returns every payment against a receipt, oldest first
func (s *PaymentService) ListByReceipt(ctx context.Context, receiptID uuid.UUID) ([]PaymentInfo, error) {
	payments, err := s.paymentRepo.FindByReceipt(ctx, receiptID)
	if err != nil {
		return nil, err
	}

	infos := make([]PaymentInfo, 0, len(payments))
	for i := range payments {
		infos = append(infos, toPaymentInfo(&payments[i]))
	}
	return infos, nil
}

// ListPayments returns a paginated list of payments
func (s *PaymentService) ListPayments(ctx context.Context, input ListPaymentsInput) (*shared.Paginated[PaymentInfo], error) {
	filter := input.Filter
	if filter.Filters == nil {
		filter.Filters = make(map[string]interface{})
	}
	if input.Method != "" {
		filter.Filters["method"] = input.Method
	}

	var (
		payments []billing.Payment
		err      error
	)
	switch {
	case input.ContractID != nil:
		payments, err = s.paymentRepo.FindByContract(ctx, *input.ContractID, filter)
	case input.From != nil || input.To != nil:
		from, to := paymentRange(input.From, input.To)
		payments, err = s.paymentRepo.FindByDateRange(ctx, from, to, filter)
	default:
		payments, err = s.paymentRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.paymentRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	infos := make([]PaymentInfo, 0, len(payments))
	for i := range payments {
		infos = append(infos, toPaymentInfo(&payments[i]))
	}

	result := shared.NewPaginated(infos, total, filter.Page, filter.PageSize)
	return &result, nil
}

// UpdateNotes amends the free-form notes on a payment. The amount and
// date are immutable once recorded.
func (s *PaymentService) UpdateNotes(ctx context.Context, id uuid.UUID, notes string) (*PaymentInfo, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	payment.SetNotes(notes)
	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update payment")
	}

	info := toPaymentInfo(payment)
	return &info, nil
}

// policiesForReceipt resolves the billing policies of the property the
// receipt belongs to, falling back to the defaults when the chain from
// receipt to property cannot be walked
func (s *PaymentService) policiesForReceipt(ctx context.Context, receipt *billing.Receipt) property.BillingPolicies {
	contract, err := s.contractRepo.FindByID(ctx, receipt.ContractID)
	if err != nil {
		s.logger.Warn("Failed to load contract for payment policy",
			zap.String("contract_id", receipt.ContractID.String()), zap.Error(err))
		return property.DefaultBillingPolicies()
	}
	unit, err := s.unitRepo.FindByID(ctx, contract.UnitID)
	if err != nil {
		s.logger.Warn("Failed to load unit for payment policy",
			zap.String("unit_id", contract.UnitID.String()), zap.Error(err))
		return property.DefaultBillingPolicies()
	}
	params, err := s.paramsRepo.FindByProperty(ctx, unit.PropertyID)
	if err != nil {
		return property.DefaultBillingPolicies()
	}
	return params.Policies
}

func paymentRange(from, to *time.Time) (time.Time, time.Time) {
	var f, t time.Time
	if from != nil {
		f = *from
	} else {
		f = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	if to != nil {
		t = *to
	} else {
		t = time.Now()
	}
	return f, t
}
