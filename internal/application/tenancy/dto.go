package tenancy

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/domain/tenancy"
)

// CreateCustomerInput contains the input for creating a customer
type CreateCustomerInput struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	Email       string
	IDNumber    string
	Notes       string
}

// UpdateCustomerInput contains the input for updating a customer.
// Nil fields are left unchanged.
type UpdateCustomerInput struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	Email       *string
	IDNumber    *string
	Notes       *string
}

// CustomerInfo is the customer read model returned to the console
type CustomerInfo struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	FullName     string
	PhoneNumber  string
	Email        string
	IDNumber     string
	IDPhotoFront string
	IDPhotoBack  string
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IDPhotoUploadInput requests presigned upload URLs for a customer's
// ID photos
type IDPhotoUploadInput struct {
	CustomerID  uuid.UUID
	ContentType string
	Front       bool
	Back        bool
}

// IDPhotoUploadResult carries presigned upload URLs. Only the sides
// requested are populated.
type IDPhotoUploadResult struct {
	FrontUploadURL string
	FrontKey       string
	BackUploadURL  string
	BackKey        string
	ExpiresAt      time.Time
}

// IDPhotoViewResult carries presigned download URLs for stored photos
type IDPhotoViewResult struct {
	FrontURL  string
	BackURL   string
	ExpiresAt time.Time
}

// CreateContractInput contains the input for letting a unit
type CreateContractInput struct {
	CustomerID uuid.UUID
	UnitID     uuid.UUID
	StartDate  time.Time
	EndDate    time.Time
	RentAmount decimal.Decimal  // zero means use the unit's asking rent
	Deposit    *decimal.Decimal // nil means compute from property defaults
	BillingDay int
	Notes      string
}

// ContractInfo is the contract read model returned to the console
type ContractInfo struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	UnitID     uuid.UUID
	StartDate  time.Time
	EndDate    time.Time
	RentAmount string
	Deposit    string
	BillingDay int
	Status     string
	Duration   string
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ListContractsInput contains filters for listing contracts
type ListContractsInput struct {
	Filter     shared.Filter
	CustomerID *uuid.UUID
	UnitID     *uuid.UUID
	Status     string
}

// ExtendContractInput moves a contract's end date forward
type ExtendContractInput struct {
	ContractID uuid.UUID
	NewEndDate time.Time
}

func toCustomerInfo(c *tenancy.Customer) CustomerInfo {
	return CustomerInfo{
		ID:           c.ID,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		FullName:     c.FullName(),
		PhoneNumber:  c.PhoneNumber,
		Email:        c.Email,
		IDNumber:     c.IDNumber,
		IDPhotoFront: c.IDPhotoFront,
		IDPhotoBack:  c.IDPhotoBack,
		Notes:        c.Notes,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
