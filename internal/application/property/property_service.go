package property

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pms/backend/internal/domain/property"
	"github.com/pms/backend/internal/domain/shared"
)

// PropertyService handles property management operations
type PropertyService struct {
	propertyRepo property.PropertyRepository
	paramsRepo   property.SystemParametersRepository
	logger       *zap.Logger
}

// NewPropertyService creates a new property service
func NewPropertyService(
	propertyRepo property.PropertyRepository,
	paramsRepo property.SystemParametersRepository,
	logger *zap.Logger,
) *PropertyService {
	return &PropertyService{
		propertyRepo: propertyRepo,
		paramsRepo:   paramsRepo,
		logger:       logger,
	}
}

// CreateProperty creates a property along with its default billing
// parameters
func (s *PropertyService) CreateProperty(ctx context.Context, input CreatePropertyInput) (*PropertyInfo, error) {
	existing, err := s.propertyRepo.FindByName(ctx, input.Name)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("Failed to check property name", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create property")
	}
	if existing != nil {
		return nil, shared.NewDomainError("NAME_TAKEN", "A property with this name already exists")
	}

	p, err := property.NewProperty(input.Name, input.Address)
	if err != nil {
		return nil, err
	}
	p.SetDescription(input.Description)

	if err := s.propertyRepo.Save(ctx, p); err != nil {
		s.logger.Error("Failed to save property", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create property")
	}

	params, err := property.NewSystemParameters(p.ID)
	if err != nil {
		return nil, err
	}
	if err := s.paramsRepo.Save(ctx, params); err != nil {
		// property exists without defaults; parameters can be saved later
		s.logger.Error("Failed to save default billing parameters",
			zap.String("property_id", p.ID.String()), zap.Error(err))
	}

	s.logger.Info("Property created",
		zap.String("property_id", p.ID.String()),
		zap.String("name", p.Name))

	info := toPropertyInfo(p)
	return &info, nil
}

// GetProperty retrieves a property by ID
func (s *PropertyService) GetProperty(ctx context.Context, id uuid.UUID) (*PropertyInfo, error) {
	p, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	info := toPropertyInfo(p)
	return &info, nil
}

// ListProperties returns a paginated list of properties
func (s *PropertyService) ListProperties(ctx context.Context, filter shared.Filter) (*shared.Paginated[PropertyInfo], error) {
	properties, err := s.propertyRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.propertyRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	infos := make([]PropertyInfo, 0, len(properties))
	for i := range properties {
		infos = append(infos, toPropertyInfo(&properties[i]))
	}

	result := shared.NewPaginated(infos, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListActiveProperties returns all active properties without pagination.
// Used to populate console dropdowns.
func (s *PropertyService) ListActiveProperties(ctx context.Context) ([]PropertyInfo, error) {
	properties, err := s.propertyRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]PropertyInfo, 0, len(properties))
	for i := range properties {
		infos = append(infos, toPropertyInfo(&properties[i]))
	}
	return infos, nil
}

// UpdateProperty amends a property's details
func (s *PropertyService) UpdateProperty(ctx context.Context, id uuid.UUID, input UpdatePropertyInput) (*PropertyInfo, error) {
	p, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != p.Name {
		existing, err := s.propertyRepo.FindByName(ctx, *input.Name)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update property")
		}
		if existing != nil && existing.ID != p.ID {
			return nil, shared.NewDomainError("NAME_TAKEN", "A property with this name already exists")
		}
		if err := p.Rename(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.Address != nil {
		if err := p.SetAddress(*input.Address); err != nil {
			return nil, err
		}
	}
	if input.Description != nil {
		p.SetDescription(*input.Description)
	}

	if err := s.propertyRepo.Save(ctx, p); err != nil {
		s.logger.Error("Failed to update property", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update property")
	}

	info := toPropertyInfo(p)
	return &info, nil
}

// ActivateProperty puts the property back into billing runs
func (s *PropertyService) ActivateProperty(ctx context.Context, id uuid.UUID) error {
	p, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	p.Activate()
	if err := s.propertyRepo.Save(ctx, p); err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to activate property")
	}
	return nil
}

// DeactivateProperty excludes the property from billing runs
func (s *PropertyService) DeactivateProperty(ctx context.Context, id uuid.UUID) error {
	p, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	p.Deactivate()
	if err := s.propertyRepo.Save(ctx, p); err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to deactivate property")
	}

	s.logger.Info("Property deactivated", zap.String("property_id", id.String()))
	return nil
}

// DeleteProperty removes a property
func (s *PropertyService) DeleteProperty(ctx context.Context, id uuid.UUID) error {
	if err := s.propertyRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Property deleted", zap.String("property_id", id.String()))
	return nil
}

// GetParameters returns the billing defaults for a property, creating
// them on first access
func (s *PropertyService) GetParameters(ctx context.Context, propertyID uuid.UUID) (*ParametersInfo, error) {
	params, err := s.paramsRepo.FindByProperty(ctx, propertyID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if _, err := s.propertyRepo.FindByID(ctx, propertyID); err != nil {
			return nil, err
		}
		params, err = property.NewSystemParameters(propertyID)
		if err != nil {
			return nil, err
		}
		if err := s.paramsRepo.Save(ctx, params); err != nil {
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to initialize billing parameters")
		}
	}

	info := toParametersInfo(params)
	return &info, nil
}

// UpdateParameters replaces the billing defaults for a property
func (s *PropertyService) UpdateParameters(ctx context.Context, propertyID uuid.UUID, input UpdateParametersInput) (*ParametersInfo, error) {
	params, err := s.paramsRepo.FindByProperty(ctx, propertyID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if _, err := s.propertyRepo.FindByID(ctx, propertyID); err != nil {
			return nil, err
		}
		params, err = property.NewSystemParameters(propertyID)
		if err != nil {
			return nil, err
		}
	}

	if err := params.UpdateRates(
		input.RentDepositMonths,
		input.WaterUnitCost,
		input.ElectricityUnitCost,
		input.ServiceCharge,
		input.SecurityCharge,
		input.GarbageCharge,
		input.PenaltyRate,
	); err != nil {
		return nil, err
	}
	params.UpdateToggles(input.Toggles)
	if err := params.UpdatePolicies(input.Policies); err != nil {
		return nil, err
	}

	if err := s.paramsRepo.Save(ctx, params); err != nil {
		s.logger.Error("Failed to save billing parameters", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update billing parameters")
	}

	s.logger.Info("Billing parameters updated", zap.String("property_id", propertyID.String()))

	info := toParametersInfo(params)
	return &info, nil
}
