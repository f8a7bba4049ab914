package property

import (
	"github.com/pms/backend/internal/domain/shared"
)

// Event types for the property domain
const (
	EventPropertyCreated   = "property.created"
	EventUnitCreated       = "property.unit.created"
	EventUnitStatusChanged = "property.unit.status_changed"
)

// PropertyCreatedEvent is raised when a property is registered
type PropertyCreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewPropertyCreatedEvent creates a PropertyCreatedEvent
func NewPropertyCreatedEvent(p *Property) *PropertyCreatedEvent {
	return &PropertyCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPropertyCreated, "Property", p.ID),
		Name:            p.Name,
	}
}

// UnitCreatedEvent is raised when a unit is registered
type UnitCreatedEvent struct {
	shared.BaseDomainEvent
	UnitNumber string `json:"unit_number"`
}

// NewUnitCreatedEvent creates a UnitCreatedEvent
func NewUnitCreatedEvent(u *Unit) *UnitCreatedEvent {
	return &UnitCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventUnitCreated, "Unit", u.ID),
		UnitNumber:      u.UnitNumber,
	}
}

// UnitStatusChangedEvent is raised when a unit's occupancy changes
type UnitStatusChangedEvent struct {
	shared.BaseDomainEvent
	UnitNumber string     `json:"unit_number"`
	Status     UnitStatus `json:"status"`
}

// NewUnitStatusChangedEvent creates a UnitStatusChangedEvent
func NewUnitStatusChangedEvent(u *Unit, status UnitStatus) *UnitStatusChangedEvent {
	return &UnitStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventUnitStatusChanged, "Unit", u.ID),
		UnitNumber:      u.UnitNumber,
		Status:          status,
	}
}
