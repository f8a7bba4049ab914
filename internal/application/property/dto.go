package property

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pms/backend/internal/domain/property"
	"github.com/pms/backend/internal/domain/shared"
)

// CreatePropertyInput contains the input for creating a property
type CreatePropertyInput struct {
	Name        string
	Address     string
	Description string
}

// UpdatePropertyInput contains the input for updating a property.
// Nil fields are left unchanged.
type UpdatePropertyInput struct {
	Name        *string
	Address     *string
	Description *string
}

// PropertyInfo is the property read model returned to the console
type PropertyInfo struct {
	ID          uuid.UUID
	Name        string
	Address     string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateUnitInput contains the input for creating a unit
type CreateUnitInput struct {
	PropertyID uuid.UUID
	UnitNumber string
	UnitType   string
	RentAmount decimal.Decimal
	Notes      string
}

// UpdateUnitInput contains the input for updating a unit.
// Nil fields are left unchanged.
type UpdateUnitInput struct {
	UnitNumber *string
	UnitType   *string
	RentAmount *decimal.Decimal
	Notes      *string
}

// UnitInfo is the unit read model returned to the console
type UnitInfo struct {
	ID         uuid.UUID
	PropertyID uuid.UUID
	UnitNumber string
	UnitType   string
	RentAmount string
	Status     string
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ListUnitsInput contains filters for listing units
type ListUnitsInput struct {
	Filter     shared.Filter
	PropertyID *uuid.UUID
	Status     string
	UnitType   string
}

// UpdateParametersInput contains the billing defaults for a property
type UpdateParametersInput struct {
	RentDepositMonths   decimal.Decimal
	WaterUnitCost       decimal.Decimal
	ElectricityUnitCost decimal.Decimal
	ServiceCharge       decimal.Decimal
	SecurityCharge      decimal.Decimal
	GarbageCharge       decimal.Decimal
	PenaltyRate         decimal.Decimal
	Toggles             property.ChargeToggles
	Policies            property.BillingPolicies
}

// ParametersInfo is the billing defaults read model
type ParametersInfo struct {
	PropertyID          uuid.UUID
	RentDepositMonths   decimal.Decimal
	WaterUnitCost       decimal.Decimal
	ElectricityUnitCost decimal.Decimal
	ServiceCharge       decimal.Decimal
	SecurityCharge      decimal.Decimal
	GarbageCharge       decimal.Decimal
	PenaltyRate         decimal.Decimal
	Toggles             property.ChargeToggles
	Policies            property.BillingPolicies
	UpdatedAt           time.Time
}

func toPropertyInfo(p *property.Property) PropertyInfo {
	return PropertyInfo{
		ID:          p.ID,
		Name:        p.Name,
		Address:     p.Address,
		Description: p.Description,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toUnitInfo(u *property.Unit) UnitInfo {
	return UnitInfo{
		ID:         u.ID,
		PropertyID: u.PropertyID,
		UnitNumber: u.UnitNumber,
		UnitType:   string(u.UnitType),
		RentAmount: u.RentAmount.StringFixed(2),
		Status:     string(u.Status),
		Notes:      u.Notes,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func toParametersInfo(sp *property.SystemParameters) ParametersInfo {
	return ParametersInfo{
		PropertyID:          sp.PropertyID,
		RentDepositMonths:   sp.RentDepositMonths,
		WaterUnitCost:       sp.WaterUnitCost,
		ElectricityUnitCost: sp.ElectricityUnitCost,
		ServiceCharge:       sp.ServiceCharge,
		SecurityCharge:      sp.SecurityCharge,
		GarbageCharge:       sp.GarbageCharge,
		PenaltyRate:         sp.PenaltyRate,
		Toggles:             sp.Toggles,
		Policies:            sp.Policies,
		UpdatedAt:           sp.UpdatedAt,
	}
}
