package tenancy

import (
	"github.com/pms/backend/internal/domain/shared"
)

// Event types for the tenancy domain
const (
	EventCustomerCreated = "tenancy.customer.created"
	EventContractCreated = "tenancy.contract.created"
	EventContractClosed  = "tenancy.contract.closed"
)

// CustomerCreatedEvent is raised when a customer record is created
type CustomerCreatedEvent struct {
	shared.BaseDomainEvent
	FullName string `json:"full_name"`
}

// NewCustomerCreatedEvent creates a CustomerCreatedEvent
func NewCustomerCreatedEvent(c *Customer) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventCustomerCreated, "Customer", c.ID),
		FullName:        c.FullName(),
	}
}

// ContractCreatedEvent is raised when a contract is signed
type ContractCreatedEvent struct {
	shared.BaseDomainEvent
	CustomerID string `json:"customer_id"`
	UnitID     string `json:"unit_id"`
}

// NewContractCreatedEvent creates a ContractCreatedEvent
func NewContractCreatedEvent(c *Contract) *ContractCreatedEvent {
	return &ContractCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventContractCreated, "Contract", c.ID),
		CustomerID:      c.CustomerID.String(),
		UnitID:          c.UnitID.String(),
	}
}

// ContractClosedEvent is raised when a contract leaves the active state
type ContractClosedEvent struct {
	shared.BaseDomainEvent
	Status ContractStatus `json:"status"`
}

// NewContractClosedEvent creates a ContractClosedEvent
func NewContractClosedEvent(c *Contract) *ContractClosedEvent {
	return &ContractClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventContractClosed, "Contract", c.ID),
		Status:          c.Status,
	}
}
