package billing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/pms/backend/internal/domain/billing"
	"github.com/pms/backend/internal/domain/property"
	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/domain/shared/valueobject"
	"github.com/pms/backend/internal/domain/tenancy"
)

// ReceiptService issues and manages rent receipts
type ReceiptService struct {
	receiptRepo  billing.ReceiptRepository
	contractRepo tenancy.ContractRepository
	unitRepo     property.UnitRepository
	propertyRepo property.PropertyRepository
	paramsRepo   property.SystemParametersRepository
	logger       *zap.Logger
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	receiptRepo billing.ReceiptRepository,
	contractRepo tenancy.ContractRepository,
	unitRepo property.UnitRepository,
	propertyRepo property.PropertyRepository,
	paramsRepo property.SystemParametersRepository,
	logger *zap.Logger,
) *ReceiptService {
	return &ReceiptService{
		receiptRepo:  receiptRepo,
		contractRepo: contractRepo,
		unitRepo:     unitRepo,
		propertyRepo: propertyRepo,
		paramsRepo:   paramsRepo,
		logger:       logger,
	}
}

// CreateReceipt issues a single receipt for a contract and period. At
// most one receipt exists per contract per period.
func (s *ReceiptService) CreateReceipt(ctx context.Context, input CreateReceiptInput) (*ReceiptInfo, error) {
	period, err := billing.ParseBillingPeriod(input.Period)
	if err != nil {
		return nil, err
	}

	contract, err := s.contractRepo.FindByID(ctx, input.ContractID)
	if err != nil {
		return nil, err
	}

	if existing, err := s.receiptRepo.FindByContractAndPeriod(ctx, contract.ID, period); err == nil && existing != nil {
		return nil, shared.NewDomainError("RECEIPT_EXISTS", "A receipt already exists for this contract and period")
	} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("Failed to check existing receipt", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create receipt")
	}

	params := s.parametersForContract(ctx, contract)

	sheet := billing.ZeroChargeSheet()
	sheet.MonthlyRent = contract.RentAmount
	applyChargesInput(&sheet, input.Charges)

	if s.isFirstReceipt(ctx, contract.ID) {
		if params.Policies.RequireWaterDeposit && !sheet.WaterDeposit.IsPositive() {
			return nil, shared.NewDomainError("WATER_DEPOSIT_REQUIRED",
				"This property requires a water deposit on the tenant's first receipt")
		}
		if params.Policies.RequireElectricityDeposit && !sheet.ElectricityDeposit.IsPositive() {
			return nil, shared.NewDomainError("ELECTRICITY_DEPOSIT_REQUIRED",
				"This property requires an electricity deposit on the tenant's first receipt")
		}
	}

	receipt, err := s.issueReceipt(ctx, contract.ID, period, sheet, params.Toggles)
	if err != nil {
		return nil, err
	}
	if input.Notes != "" {
		receipt.SetNotes(input.Notes)
		if err := s.receiptRepo.Save(ctx, receipt); err != nil {
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save receipt")
		}
	}

	info := toReceiptInfo(receipt)
	return &info, nil
}

// GenerateMonthly issues receipts for every active contract in the
// billing scope. Contracts that already have a receipt for the period
// are skipped, so the run is safe to repeat.
func (s *ReceiptService) GenerateMonthly(ctx context.Context, input GenerateMonthlyInput) (*GenerateMonthlyResult, error) {
	period, err := billing.ParseBillingPeriod(input.Period)
	if err != nil {
		return nil, err
	}

	properties, err := s.billableProperties(ctx, input.PropertyID)
	if err != nil {
		return nil, err
	}

	result := &GenerateMonthlyResult{Period: period.String()}

	for i := range properties {
		prop := &properties[i]
		params := s.parametersFor(ctx, prop.ID)

		// Unscoped runs only bill properties opted into automatic
		// generation; naming a property bills it regardless
		if input.PropertyID == nil && !params.Policies.AutoGenerateReceipts {
			continue
		}

		contracts, err := s.contractRepo.FindActiveByProperty(ctx, prop.ID)
		if err != nil {
			s.logger.Error("Failed to load contracts for billing run",
				zap.String("property_id", prop.ID.String()), zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load contracts")
		}

		for j := range contracts {
			contract := &contracts[j]

			existing, err := s.receiptRepo.FindByContractAndPeriod(ctx, contract.ID, period)
			if err != nil && !errors.Is(err, shared.ErrNotFound) {
				s.logger.Error("Failed to check existing receipt",
					zap.String("contract_id", contract.ID.String()), zap.Error(err))
				result.Failed++
				continue
			}
			if existing != nil {
				result.Skipped++
				continue
			}

			sheet := s.buildMonthlySheet(ctx, contract, period, params)

			if _, err := s.issueReceipt(ctx, contract.ID, period, sheet, params.Toggles); err != nil {
				s.logger.Error("Failed to issue receipt",
					zap.String("contract_id", contract.ID.String()),
					zap.String("period", period.String()),
					zap.Error(err))
				result.Failed++
				continue
			}
			result.Generated++
		}
	}

	s.logger.Info("Monthly billing run completed",
		zap.String("period", period.String()),
		zap.Int("generated", result.Generated),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed))

	return result, nil
}

// GetReceipt retrieves a receipt by ID
func (s *ReceiptService) GetReceipt(ctx context.Context, id uuid.UUID) (*ReceiptInfo, error) {
	receipt, err := s.receiptRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	info := toReceiptInfo(receipt)
	return &info, nil
}

// ListReceipts returns a paginated list of receipts
func (s *ReceiptService) ListReceipts(ctx context.Context, input ListReceiptsInput) (*shared.Paginated[ReceiptInfo], error) {
	filter := input.Filter
	if filter.Filters == nil {
		filter.Filters = make(map[string]interface{})
	}
	if input.Status != "" {
		filter.Filters["status"] = input.Status
	}
	if input.Period != "" {
		period, err := billing.ParseBillingPeriod(input.Period)
		if err != nil {
			return nil, err
		}
		filter.Filters["period_year"] = period.Year
		filter.Filters["period_month"] = period.Month
	}

	var (
		receipts []billing.Receipt
		err      error
	)
	if input.ContractID != nil {
		receipts, err = s.receiptRepo.FindByContract(ctx, *input.ContractID, filter)
	} else {
		receipts, err = s.receiptRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.receiptRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	infos := make([]ReceiptInfo, 0, len(receipts))
	for i := range receipts {
		infos = append(infos, toReceiptInfo(&receipts[i]))
	}

	result := shared.NewPaginated(infos, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListOutstanding returns receipts with money still owing, oldest first
func (s *ReceiptService) ListOutstanding(ctx context.Context, filter shared.Filter) ([]ReceiptInfo, error) {
	receipts, err := s.receiptRepo.FindOutstanding(ctx, filter)
	if err != nil {
		return nil, err
	}

	infos := make([]ReceiptInfo, 0, len(receipts))
	for i := range receipts {
		infos = append(infos, toReceiptInfo(&receipts[i]))
	}
	return infos, nil
}

// UpdateReceipt amends an unsettled receipt's charges and notes
func (s *ReceiptService) UpdateReceipt(ctx context.Context, id uuid.UUID, input UpdateReceiptInput) (*ReceiptInfo, error) {
	receipt, err := s.receiptRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sheet := receipt.Charges
	applyChargesInput(&sheet, input.Charges)
	if err := receipt.AmendCharges(sheet); err != nil {
		return nil, err
	}
	if input.Notes != nil {
		receipt.SetNotes(*input.Notes)
	}

	if err := s.receiptRepo.Save(ctx, receipt); err != nil {
		s.logger.Error("Failed to update receipt", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update receipt")
	}

	info := toReceiptInfo(receipt)
	return &info, nil
}

// RecordWaterReadings captures meter readings and recomputes the water
// bill from the consumption and the property's water unit cost
func (s *ReceiptService) RecordWaterReadings(ctx context.Context, input RecordWaterReadingsInput) (*ReceiptInfo, error) {
	receipt, err := s.receiptRepo.FindByID(ctx, input.ReceiptID)
	if err != nil {
		return nil, err
	}

	contract, err := s.contractRepo.FindByID(ctx, receipt.ContractID)
	if err != nil {
		return nil, err
	}
	params := s.parametersForContract(ctx, contract)

	if err := receipt.RecordWaterReadings(input.PreviousReading, input.CurrentReading); err != nil {
		return nil, err
	}

	consumption := input.CurrentReading.Sub(input.PreviousReading)
	sheet := receipt.Charges
	sheet.WaterBill = valueobject.NewMoneyKES(consumption.Mul(params.WaterUnitCost)).Round(2)
	if err := receipt.AmendCharges(sheet); err != nil {
		return nil, err
	}

	if err := s.receiptRepo.Save(ctx, receipt); err != nil {
		s.logger.Error("Failed to save water readings", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save water readings")
	}

	info := toReceiptInfo(receipt)
	return &info, nil
}

// DeleteReceipt removes a receipt that has no payments against it
func (s *ReceiptService) DeleteReceipt(ctx context.Context, id uuid.UUID) error {
	receipt, err := s.receiptRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if receipt.AmountPaid.IsPositive() {
		return shared.NewDomainError("RECEIPT_HAS_PAYMENTS", "Receipts with recorded payments cannot be deleted")
	}

	if err := s.receiptRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Receipt deleted",
		zap.String("receipt_id", id.String()),
		zap.String("receipt_number", receipt.ReceiptNumber))
	return nil
}

// issueReceipt numbers and persists a new receipt
func (s *ReceiptService) issueReceipt(
	ctx context.Context,
	contractID uuid.UUID,
	period billing.BillingPeriod,
	sheet billing.ChargeSheet,
	toggles property.ChargeToggles,
) (*billing.Receipt, error) {
	seq, err := s.receiptRepo.NextSequence(ctx)
	if err != nil {
		s.logger.Error("Failed to allocate receipt sequence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to allocate receipt number")
	}
	number := billing.ReceiptNumber(seq, period, 1)

	receipt, err := billing.NewReceipt(contractID, number, period, sheet, toggles)
	if err != nil {
		return nil, err
	}

	if err := s.receiptRepo.Save(ctx, receipt); err != nil {
		s.logger.Error("Failed to save receipt", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save receipt")
	}

	s.logger.Info("Receipt issued",
		zap.String("receipt_id", receipt.ID.String()),
		zap.String("receipt_number", receipt.ReceiptNumber),
		zap.String("total", receipt.Total.StringFixed(2)))

	return receipt, nil
}

// buildMonthlySheet assembles the charge sheet for a billing run.
// Flat charges come from the property defaults; metered lines start at
// zero until readings are captured. A tenant's first receipt carries
// the rental deposit; later receipts carry any unpaid balance forward.
func (s *ReceiptService) buildMonthlySheet(
	ctx context.Context,
	contract *tenancy.Contract,
	period billing.BillingPeriod,
	params *property.SystemParameters,
) billing.ChargeSheet {
	sheet := billing.ZeroChargeSheet()
	sheet.MonthlyRent = contract.RentAmount
	sheet.ServiceCharge = valueobject.NewMoneyKES(params.ServiceCharge)
	sheet.SecurityCharge = valueobject.NewMoneyKES(params.SecurityCharge)
	sheet.OtherCharges = valueobject.NewMoneyKES(params.GarbageCharge)

	previous, err := s.receiptRepo.FindByContractAndPeriod(ctx, contract.ID, previousPeriod(period))
	if err == nil && previous != nil {
		balance := previous.Balance()
		if balance.IsPositive() {
			sheet.PreviousBalance = balance
		}
	}

	if s.isFirstReceipt(ctx, contract.ID) {
		sheet.RentalDeposit = contract.Deposit
	}

	return sheet
}

// isFirstReceipt reports whether no receipt has been issued for the
// contract yet
func (s *ReceiptService) isFirstReceipt(ctx context.Context, contractID uuid.UUID) bool {
	existing, err := s.receiptRepo.FindByContract(ctx, contractID, shared.Filter{Page: 1, PageSize: 1})
	return err == nil && len(existing) == 0
}

// billableProperties resolves the billing scope for a run
func (s *ReceiptService) billableProperties(ctx context.Context, propertyID *uuid.UUID) ([]property.Property, error) {
	if propertyID != nil {
		prop, err := s.propertyRepo.FindByID(ctx, *propertyID)
		if err != nil {
			return nil, err
		}
		if !prop.IsActive {
			return nil, shared.NewDomainError("PROPERTY_INACTIVE", "Inactive properties are excluded from billing")
		}
		return []property.Property{*prop}, nil
	}
	return s.propertyRepo.FindActive(ctx)
}

func (s *ReceiptService) parametersForContract(ctx context.Context, contract *tenancy.Contract) *property.SystemParameters {
	unit, err := s.unitRepo.FindByID(ctx, contract.UnitID)
	if err != nil {
		s.logger.Warn("Failed to load unit for billing defaults",
			zap.String("unit_id", contract.UnitID.String()), zap.Error(err))
		return defaultParameters()
	}
	return s.parametersFor(ctx, unit.PropertyID)
}

func (s *ReceiptService) parametersFor(ctx context.Context, propertyID uuid.UUID) *property.SystemParameters {
	params, err := s.paramsRepo.FindByProperty(ctx, propertyID)
	if err != nil {
		return defaultParameters()
	}
	return params
}

func defaultParameters() *property.SystemParameters {
	return &property.SystemParameters{
		RentDepositMonths: decimal.NewFromInt(1),
		Toggles:           property.DefaultChargeToggles(),
		Policies:          property.DefaultBillingPolicies(),
	}
}

func previousPeriod(p billing.BillingPeriod) billing.BillingPeriod {
	if p.Month == 1 {
		return billing.BillingPeriod{Year: p.Year - 1, Month: 12}
	}
	return billing.BillingPeriod{Year: p.Year, Month: p.Month - 1}
}

func applyChargesInput(sheet *billing.ChargeSheet, input ChargesInput) {
	set := func(target *valueobject.Money, value *decimal.Decimal) {
		if value != nil {
			*target = valueobject.NewMoneyKES(*value)
		}
	}
	set(&sheet.MonthlyRent, input.MonthlyRent)
	set(&sheet.WaterBill, input.WaterBill)
	set(&sheet.ElectricityBill, input.ElectricityBill)
	set(&sheet.ServiceCharge, input.ServiceCharge)
	set(&sheet.SecurityCharge, input.SecurityCharge)
	set(&sheet.OtherCharges, input.OtherCharges)
	set(&sheet.RentalDeposit, input.RentalDeposit)
	set(&sheet.WaterDeposit, input.WaterDeposit)
	set(&sheet.ElectricityDeposit, input.ElectricityDeposit)
	set(&sheet.PreviousBalance, input.PreviousBalance)
}
