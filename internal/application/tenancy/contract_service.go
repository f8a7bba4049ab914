package tenancy

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/pms/backend/internal/domain/billing"
	"github.com/pms/backend/internal/domain/property"
	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/domain/shared/valueobject"
	"github.com/pms/backend/internal/domain/tenancy"
)

// ContractService handles the rental contract lifecycle
type ContractService struct {
	contractRepo tenancy.ContractRepository
	customerRepo tenancy.CustomerRepository
	unitRepo     property.UnitRepository
	paramsRepo   property.SystemParametersRepository
	logger       *zap.Logger
}

// NewContractService creates a new contract service
func NewContractService(
	contractRepo tenancy.ContractRepository,
	customerRepo tenancy.CustomerRepository,
	unitRepo property.UnitRepository,
	paramsRepo property.SystemParametersRepository,
	logger *zap.Logger,
) *ContractService {
	return &ContractService{
		contractRepo: contractRepo,
		customerRepo: customerRepo,
		unitRepo:     unitRepo,
		paramsRepo:   paramsRepo,
		logger:       logger,
	}
}

// CreateContract lets a unit to a customer. The unit must be vacant.
// When no rent is supplied the unit's asking rent applies; when no
// deposit is supplied it is computed from the property's configured
// deposit months.
func (s *ContractService) CreateContract(ctx context.Context, input CreateContractInput) (*ContractInfo, error) {
	if _, err := s.customerRepo.FindByID(ctx, input.CustomerID); err != nil {
		return nil, err
	}

	unit, err := s.unitRepo.FindByID(ctx, input.UnitID)
	if err != nil {
		return nil, err
	}
	if !unit.IsVacant() {
		return nil, shared.NewDomainError("UNIT_NOT_VACANT", "Unit is not available for letting")
	}

	if existing, err := s.contractRepo.FindActiveByUnit(ctx, input.UnitID); err == nil && existing != nil {
		return nil, shared.NewDomainError("UNIT_NOT_VACANT", "Unit already has an active contract")
	} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("Failed to check unit contracts", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create contract")
	}

	rent := unit.RentAmount
	if input.RentAmount.IsPositive() {
		rent = valueobject.NewMoneyKES(input.RentAmount)
	}

	var deposit valueobject.Money
	if input.Deposit != nil {
		deposit = valueobject.NewMoneyKES(*input.Deposit)
	} else {
		deposit = billing.ComputeDeposit(rent, s.depositMonths(ctx, unit.PropertyID))
	}

	contract, err := tenancy.NewContract(input.CustomerID, input.UnitID, input.StartDate, input.EndDate, rent, deposit)
	if err != nil {
		return nil, err
	}
	if input.BillingDay > 0 {
		if err := contract.SetBillingDay(input.BillingDay); err != nil {
			return nil, err
		}
	}
	contract.Notes = input.Notes

	if err := unit.Occupy(); err != nil {
		return nil, err
	}

	if err := s.contractRepo.Save(ctx, contract); err != nil {
		s.logger.Error("Failed to save contract", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create contract")
	}
	if err := s.unitRepo.Save(ctx, unit); err != nil {
		s.logger.Error("Failed to mark unit occupied",
			zap.String("unit_id", unit.ID.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update unit status")
	}

	s.logger.Info("Contract created",
		zap.String("contract_id", contract.ID.String()),
		zap.String("customer_id", input.CustomerID.String()),
		zap.String("unit_id", input.UnitID.String()),
		zap.String("rent", rent.StringFixed(2)),
		zap.String("deposit", deposit.StringFixed(2)))

	info := toContractInfo(contract)
	return &info, nil
}

// GetContract retrieves a contract by ID
func (s *ContractService) GetContract(ctx context.Context, id uuid.UUID) (*ContractInfo, error) {
	contract, err := s.contractRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	info := toContractInfo(contract)
	return &info, nil
}

// ListContracts returns a paginated list of contracts
func (s *ContractService) ListContracts(ctx context.Context, input ListContractsInput) (*shared.Paginated[ContractInfo], error) {
	filter := input.Filter
	if filter.Filters == nil {
		filter.Filters = make(map[string]interface{})
	}
	if input.Status != "" {
		filter.Filters["status"] = input.Status
	}

	var (
		contracts []tenancy.Contract
		err       error
	)
	switch {
	case input.CustomerID != nil:
		contracts, err = s.contractRepo.FindByCustomer(ctx, *input.CustomerID, filter)
	case input.UnitID != nil:
		contracts, err = s.contractRepo.FindByUnit(ctx, *input.UnitID, filter)
	default:
		contracts, err = s.contractRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.contractRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	infos := make([]ContractInfo, 0, len(contracts))
	for i := range contracts {
		infos = append(infos, toContractInfo(&contracts[i]))
	}

	result := shared.NewPaginated(infos, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListExpiring returns active contracts ending within the given number
// of days, soonest first
func (s *ContractService) ListExpiring(ctx context.Context, withinDays int, filter shared.Filter) ([]ContractInfo, error) {
	if withinDays <= 0 {
		withinDays = 30
	}
	cutoff := time.Now().AddDate(0, 0, withinDays)

	contracts, err := s.contractRepo.FindExpiringBefore(ctx, cutoff, filter)
	if err != nil {
		return nil, err
	}

	infos := make([]ContractInfo, 0, len(contracts))
	for i := range contracts {
		infos = append(infos, toContractInfo(&contracts[i]))
	}
	return infos, nil
}

// ExtendContract moves the contract end date forward
func (s *ContractService) ExtendContract(ctx context.Context, input ExtendContractInput) (*ContractInfo, error) {
	contract, err := s.contractRepo.FindByID(ctx, input.ContractID)
	if err != nil {
		return nil, err
	}

	if err := contract.Extend(input.NewEndDate); err != nil {
		return nil, err
	}

	if err := s.contractRepo.Save(ctx, contract); err != nil {
		s.logger.Error("Failed to extend contract", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to extend contract")
	}

	s.logger.Info("Contract extended",
		zap.String("contract_id", contract.ID.String()),
		zap.Time("new_end_date", input.NewEndDate))

	info := toContractInfo(contract)
	return &info, nil
}

// CancelContract cancels an active contract and frees the unit
func (s *ContractService) CancelContract(ctx context.Context, id uuid.UUID) error {
	return s.closeContract(ctx, id, func(c *tenancy.Contract) error { return c.Cancel() }, "cancelled")
}

// TerminateContract ends a contract early for cause and frees the unit
func (s *ContractService) TerminateContract(ctx context.Context, id uuid.UUID) error {
	return s.closeContract(ctx, id, func(c *tenancy.Contract) error { return c.Terminate() }, "terminated")
}

// MarkExpired transitions a contract whose end date has passed and
// frees the unit
func (s *ContractService) MarkExpired(ctx context.Context, id uuid.UUID) error {
	return s.closeContract(ctx, id, func(c *tenancy.Contract) error { return c.MarkExpired() }, "expired")
}

func (s *ContractService) closeContract(ctx context.Context, id uuid.UUID, transition func(*tenancy.Contract) error, action string) error {
	contract, err := s.contractRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := transition(contract); err != nil {
		return err
	}

	if err := s.contractRepo.Save(ctx, contract); err != nil {
		s.logger.Error("Failed to close contract", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update contract")
	}

	unit, err := s.unitRepo.FindByID(ctx, contract.UnitID)
	if err != nil {
		s.logger.Error("Failed to load unit for vacated contract",
			zap.String("unit_id", contract.UnitID.String()), zap.Error(err))
		return nil
	}
	if vacErr := unit.Vacate(); vacErr == nil {
		if err := s.unitRepo.Save(ctx, unit); err != nil {
			s.logger.Error("Failed to mark unit vacant",
				zap.String("unit_id", unit.ID.String()), zap.Error(err))
		}
	}

	s.logger.Info("Contract closed",
		zap.String("contract_id", id.String()),
		zap.String("action", action))

	return nil
}

// depositMonths resolves the configured deposit months for a property,
// defaulting to one month when no parameters exist
func (s *ContractService) depositMonths(ctx context.Context, propertyID uuid.UUID) decimal.Decimal {
	params, err := s.paramsRepo.FindByProperty(ctx, propertyID)
	if err != nil {
		return decimal.NewFromInt(1)
	}
	return params.RentDepositMonths
}

func toContractInfo(c *tenancy.Contract) ContractInfo {
	return ContractInfo{
		ID:         c.ID,
		CustomerID: c.CustomerID,
		UnitID:     c.UnitID,
		StartDate:  c.StartDate,
		EndDate:    c.EndDate,
		RentAmount: c.RentAmount.StringFixed(2),
		Deposit:    c.Deposit.StringFixed(2),
		BillingDay: c.BillingDay,
		Status:     string(c.Status),
		Duration:   billing.ContractDuration(c.StartDate, c.EndDate).Format(),
		Notes:      c.Notes,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
