package tenancy

import (
	"time"

	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/domain/shared/valueobject"
)

// ContractStatus represents the lifecycle state of a rental contract
type ContractStatus string

const (
	ContractStatusActive     ContractStatus = "active"
	ContractStatusExpired    ContractStatus = "expired"
	ContractStatusCancelled  ContractStatus = "cancelled"
	ContractStatusTerminated ContractStatus = "terminated"
)

// Contract is the aggregate root for a rental agreement binding a
// customer to a unit for a period at an agreed rent and deposit.
type Contract struct {
	shared.BaseAggregateRoot
	CustomerID uuid.UUID
	UnitID     uuid.UUID
	StartDate  time.Time
	EndDate    time.Time
	RentAmount valueobject.Money
	Deposit    valueobject.Money
	BillingDay int // day of month rent falls due
	Status     ContractStatus
	Notes      string
}

// NewContract creates a new active contract
func NewContract(customerID, unitID uuid.UUID, start, end time.Time, rent, deposit valueobject.Money) (*Contract, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_ID", "Customer ID cannot be empty")
	}
	if unitID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_UNIT_ID", "Unit ID cannot be empty")
	}
	if start.IsZero() || end.IsZero() {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Start and end dates are required")
	}
	if !end.After(start) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "End date must be after start date")
	}
	if rent.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RENT", "Rent amount cannot be negative")
	}
	if deposit.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DEPOSIT", "Deposit cannot be negative")
	}

	c := &Contract{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		UnitID:            unitID,
		StartDate:         start,
		EndDate:           end,
		RentAmount:        rent,
		Deposit:           deposit,
		BillingDay:        1,
		Status:            ContractStatusActive,
	}

	c.AddDomainEvent(NewContractCreatedEvent(c))

	return c, nil
}

// SetBillingDay sets the day of month rent falls due
func (c *Contract) SetBillingDay(day int) error {
	if day < 1 || day > 28 {
		return shared.NewDomainError("INVALID_BILLING_DAY", "Billing day must be between 1 and 28")
	}

	c.BillingDay = day
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetRent updates the agreed rent
func (c *Contract) SetRent(rent valueobject.Money) error {
	if rent.IsNegative() {
		return shared.NewDomainError("INVALID_RENT", "Rent amount cannot be negative")
	}
	if c.Status != ContractStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active contracts can be amended")
	}

	c.RentAmount = rent
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Extend moves the end date forward
func (c *Contract) Extend(newEnd time.Time) error {
	if c.Status != ContractStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active contracts can be extended")
	}
	if !newEnd.After(c.EndDate) {
		return shared.NewDomainError("INVALID_PERIOD", "New end date must be after the current end date")
	}

	c.EndDate = newEnd
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Cancel cancels the contract before it took effect or by mutual agreement
func (c *Contract) Cancel() error {
	if c.Status != ContractStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active contracts can be cancelled")
	}

	c.Status = ContractStatusCancelled
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewContractClosedEvent(c))

	return nil
}

// Terminate ends the contract early for cause
func (c *Contract) Terminate() error {
	if c.Status != ContractStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active contracts can be terminated")
	}

	c.Status = ContractStatusTerminated
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewContractClosedEvent(c))

	return nil
}

// MarkExpired transitions a contract whose end date has passed
func (c *Contract) MarkExpired() error {
	if c.Status != ContractStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active contracts can expire")
	}

	c.Status = ContractStatusExpired
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewContractClosedEvent(c))

	return nil
}

// IsActive returns true while the contract is in force
func (c *Contract) IsActive() bool {
	return c.Status == ContractStatusActive
}

// ExpiresWithin returns true if an active contract ends within d from now
func (c *Contract) ExpiresWithin(d time.Duration) bool {
	if c.Status != ContractStatusActive {
		return false
	}
	return c.EndDate.Before(time.Now().Add(d))
}
