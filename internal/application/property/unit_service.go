package property

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pms/backend/internal/domain/property"
	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/domain/shared/valueobject"
)

// UnitService handles unit management operations
type UnitService struct {
	unitRepo     property.UnitRepository
	propertyRepo property.PropertyRepository
	logger       *zap.Logger
}

// NewUnitService creates a new unit service
func NewUnitService(
	unitRepo property.UnitRepository,
	propertyRepo property.PropertyRepository,
	logger *zap.Logger,
) *UnitService {
	return &UnitService{
		unitRepo:     unitRepo,
		propertyRepo: propertyRepo,
		logger:       logger,
	}
}

// CreateUnit adds a unit to a property. Unit numbers are unique within
// a property.
func (s *UnitService) CreateUnit(ctx context.Context, input CreateUnitInput) (*UnitInfo, error) {
	if _, err := s.propertyRepo.FindByID(ctx, input.PropertyID); err != nil {
		return nil, err
	}

	existing, err := s.unitRepo.FindByUnitNumber(ctx, input.PropertyID, input.UnitNumber)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("Failed to check unit number", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create unit")
	}
	if existing != nil {
		return nil, shared.NewDomainError("UNIT_NUMBER_TAKEN", "A unit with this number already exists in the property")
	}

	rent := valueobject.NewMoneyKES(input.RentAmount)
	unit, err := property.NewUnit(input.PropertyID, input.UnitNumber, property.UnitType(input.UnitType), rent)
	if err != nil {
		return nil, err
	}
	unit.Notes = input.Notes

	if err := s.unitRepo.Save(ctx, unit); err != nil {
		s.logger.Error("Failed to save unit", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create unit")
	}

	s.logger.Info("Unit created",
		zap.String("unit_id", unit.ID.String()),
		zap.String("property_id", input.PropertyID.String()),
		zap.String("unit_number", unit.UnitNumber))

	info := toUnitInfo(unit)
	return &info, nil
}

// GetUnit retrieves a unit by ID
func (s *UnitService) GetUnit(ctx context.Context, id uuid.UUID) (*UnitInfo, error) {
	unit, err := s.unitRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	info := toUnitInfo(unit)
	return &info, nil
}

// ListUnits returns a paginated list of units
func (s *UnitService) ListUnits(ctx context.Context, input ListUnitsInput) (*shared.Paginated[UnitInfo], error) {
	filter := input.Filter
	if filter.Filters == nil {
		filter.Filters = make(map[string]interface{})
	}
	if input.Status != "" {
		filter.Filters["status"] = input.Status
	}
	if input.UnitType != "" {
		filter.Filters["unit_type"] = input.UnitType
	}

	var (
		units []property.Unit
		err   error
	)
	if input.PropertyID != nil {
		filter.Filters["property_id"] = *input.PropertyID
		units, err = s.unitRepo.FindByProperty(ctx, *input.PropertyID, filter)
	} else {
		units, err = s.unitRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.unitRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	infos := make([]UnitInfo, 0, len(units))
	for i := range units {
		infos = append(infos, toUnitInfo(&units[i]))
	}

	result := shared.NewPaginated(infos, total, filter.Page, filter.PageSize)
	return &result, nil
}

// UpdateUnit amends a unit's details
func (s *UnitService) UpdateUnit(ctx context.Context, id uuid.UUID, input UpdateUnitInput) (*UnitInfo, error) {
	unit, err := s.unitRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.UnitNumber != nil && *input.UnitNumber != unit.UnitNumber {
		existing, err := s.unitRepo.FindByUnitNumber(ctx, unit.PropertyID, *input.UnitNumber)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update unit")
		}
		if existing != nil && existing.ID != unit.ID {
			return nil, shared.NewDomainError("UNIT_NUMBER_TAKEN", "A unit with this number already exists in the property")
		}
		if err := unit.SetUnitNumber(*input.UnitNumber); err != nil {
			return nil, err
		}
	}
	if input.UnitType != nil {
		if err := unit.SetUnitType(property.UnitType(*input.UnitType)); err != nil {
			return nil, err
		}
	}
	if input.RentAmount != nil {
		if err := unit.SetRent(valueobject.NewMoneyKES(*input.RentAmount)); err != nil {
			return nil, err
		}
	}
	if input.Notes != nil {
		unit.Notes = *input.Notes
	}

	if err := s.unitRepo.Save(ctx, unit); err != nil {
		s.logger.Error("Failed to update unit", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update unit")
	}

	info := toUnitInfo(unit)
	return &info, nil
}

// MarkUnderMaintenance takes a vacant unit off the market
func (s *UnitService) MarkUnderMaintenance(ctx context.Context, id uuid.UUID) error {
	unit, err := s.unitRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := unit.MarkUnderMaintenance(); err != nil {
		return err
	}

	if err := s.unitRepo.Save(ctx, unit); err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update unit status")
	}
	return nil
}

// ReturnToMarket puts a maintenance unit back on the market
func (s *UnitService) ReturnToMarket(ctx context.Context, id uuid.UUID) error {
	unit, err := s.unitRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := unit.Vacate(); err != nil {
		return err
	}

	if err := s.unitRepo.Save(ctx, unit); err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update unit status")
	}
	return nil
}

// DeleteUnit removes a unit. Occupied units cannot be removed.
func (s *UnitService) DeleteUnit(ctx context.Context, id uuid.UUID) error {
	unit, err := s.unitRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if unit.Status == property.UnitStatusOccupied {
		return shared.NewDomainError("UNIT_OCCUPIED", "Occupied units cannot be deleted")
	}

	if err := s.unitRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Unit deleted", zap.String("unit_id", id.String()))
	return nil
}
