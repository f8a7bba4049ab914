package property

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/domain/shared/valueobject"
)

// UnitType categorizes a rentable unit
type UnitType string

const (
	UnitTypeBedsitter  UnitType = "bedsitter"
	UnitTypeOneBedroom UnitType = "one_bedroom"
	UnitTypeTwoBedroom UnitType = "two_bedroom"
	UnitTypeShop       UnitType = "shop"
	UnitTypeOther      UnitType = "other"
)

// UnitStatus represents the occupancy state of a unit
type UnitStatus string

const (
	UnitStatusVacant      UnitStatus = "vacant"
	UnitStatusOccupied    UnitStatus = "occupied"
	UnitStatusMaintenance UnitStatus = "maintenance"
)

// Unit is the aggregate root for a rentable unit within a property
type Unit struct {
	shared.BaseAggregateRoot
	PropertyID uuid.UUID
	UnitNumber string
	UnitType   UnitType
	RentAmount valueobject.Money
	Status     UnitStatus
	Notes      string
}

// NewUnit creates a new vacant unit
func NewUnit(propertyID uuid.UUID, unitNumber string, unitType UnitType, rent valueobject.Money) (*Unit, error) {
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY_ID", "Property ID cannot be empty")
	}
	if err := validateUnitNumber(unitNumber); err != nil {
		return nil, err
	}
	if err := validateUnitType(unitType); err != nil {
		return nil, err
	}
	if rent.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RENT", "Rent amount cannot be negative")
	}

	u := &Unit{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PropertyID:        propertyID,
		UnitNumber:        strings.TrimSpace(unitNumber),
		UnitType:          unitType,
		RentAmount:        rent,
		Status:            UnitStatusVacant,
	}

	u.AddDomainEvent(NewUnitCreatedEvent(u))

	return u, nil
}

// SetRent updates the asking rent for the unit
func (u *Unit) SetRent(rent valueobject.Money) error {
	if rent.IsNegative() {
		return shared.NewDomainError("INVALID_RENT", "Rent amount cannot be negative")
	}

	u.RentAmount = rent
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// SetUnitNumber renames the unit
func (u *Unit) SetUnitNumber(unitNumber string) error {
	if err := validateUnitNumber(unitNumber); err != nil {
		return err
	}

	u.UnitNumber = strings.TrimSpace(unitNumber)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// SetUnitType changes the unit category
func (u *Unit) SetUnitType(unitType UnitType) error {
	if err := validateUnitType(unitType); err != nil {
		return err
	}

	u.UnitType = unitType
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// Occupy marks the unit as occupied.
// Occupying an already occupied unit is a conflict.
func (u *Unit) Occupy() error {
	if u.Status == UnitStatusOccupied {
		return shared.NewDomainError("UNIT_OCCUPIED", "Unit is already occupied")
	}

	u.Status = UnitStatusOccupied
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	u.AddDomainEvent(NewUnitStatusChangedEvent(u, UnitStatusOccupied))

	return nil
}

// Vacate marks the unit as vacant
func (u *Unit) Vacate() error {
	if u.Status == UnitStatusVacant {
		return shared.NewDomainError("UNIT_VACANT", "Unit is already vacant")
	}

	u.Status = UnitStatusVacant
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	u.AddDomainEvent(NewUnitStatusChangedEvent(u, UnitStatusVacant))

	return nil
}

// MarkUnderMaintenance takes the unit off the market for repairs
func (u *Unit) MarkUnderMaintenance() error {
	if u.Status == UnitStatusOccupied {
		return shared.NewDomainError("UNIT_OCCUPIED", "Cannot take an occupied unit into maintenance")
	}

	u.Status = UnitStatusMaintenance
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	u.AddDomainEvent(NewUnitStatusChangedEvent(u, UnitStatusMaintenance))

	return nil
}

// IsVacant returns true if the unit can be let
func (u *Unit) IsVacant() bool {
	return u.Status == UnitStatusVacant
}

func validateUnitNumber(unitNumber string) error {
	unitNumber = strings.TrimSpace(unitNumber)
	if unitNumber == "" {
		return shared.NewDomainError("INVALID_UNIT_NUMBER", "Unit number cannot be empty")
	}
	if len(unitNumber) > 50 {
		return shared.NewDomainError("INVALID_UNIT_NUMBER", "Unit number cannot exceed 50 characters")
	}
	return nil
}

func validateUnitType(unitType UnitType) error {
	switch unitType {
	case UnitTypeBedsitter, UnitTypeOneBedroom, UnitTypeTwoBedroom, UnitTypeShop, UnitTypeOther:
		return nil
	default:
		return shared.NewDomainError("INVALID_UNIT_TYPE", "Unknown unit type")
	}
}
