package property

import (
	"strings"
	"time"

	"github.com/pms/backend/internal/domain/shared"
)

// Property is the aggregate root for a managed building or estate
type Property struct {
	shared.BaseAggregateRoot
	Name        string
	Address     string
	Description string
	IsActive    bool
}

// NewProperty creates a new active property
func NewProperty(name, address string) (*Property, error) {
	if err := validatePropertyName(name); err != nil {
		return nil, err
	}
	if strings.TrimSpace(address) == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Address cannot be empty")
	}

	p := &Property{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Address:           strings.TrimSpace(address),
		IsActive:          true,
	}

	p.AddDomainEvent(NewPropertyCreatedEvent(p))

	return p, nil
}

// Rename changes the property name
func (p *Property) Rename(name string) error {
	if err := validatePropertyName(name); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(name)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetAddress updates the property address
func (p *Property) SetAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot be empty")
	}

	p.Address = strings.TrimSpace(address)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetDescription updates the free-form description
func (p *Property) SetDescription(description string) {
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Activate marks the property as active
func (p *Property) Activate() {
	p.IsActive = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Deactivate marks the property as inactive.
// Inactive properties are excluded from monthly billing runs.
func (p *Property) Deactivate() {
	p.IsActive = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

func validatePropertyName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Property name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Property name cannot exceed 200 characters")
	}
	return nil
}
