package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/pms/backend/internal/domain/shared/valueobject"
	"github.com/pms/backend/internal/domain/tenancy"
)

// CustomerModel is the persistence model for the Customer aggregate.
type CustomerModel struct {
	AggregateModel
	FirstName    string `gorm:"type:varchar(100);not null"`
	LastName     string `gorm:"type:varchar(100);not null"`
	PhoneNumber  string `gorm:"type:varchar(50);not null;index"`
	Email        string `gorm:"type:varchar(200)"`
	IDNumber     string `gorm:"type:varchar(50);index"`
	IDPhotoFront string `gorm:"type:varchar(500)"`
	IDPhotoBack  string `gorm:"type:varchar(500)"`
	Notes        string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer aggregate.
func (m *CustomerModel) ToDomain() *tenancy.Customer {
	c := &tenancy.Customer{
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		PhoneNumber:  m.PhoneNumber,
		Email:        m.Email,
		IDNumber:     m.IDNumber,
		IDPhotoFront: m.IDPhotoFront,
		IDPhotoBack:  m.IDPhotoBack,
		Notes:        m.Notes,
	}
	m.PopulateAggregateRoot(&c.BaseAggregateRoot)
	return c
}

// FromDomain populates the persistence model from a domain Customer aggregate.
func (m *CustomerModel) FromDomain(c *tenancy.Customer) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.FirstName = c.FirstName
	m.LastName = c.LastName
	m.PhoneNumber = c.PhoneNumber
	m.Email = c.Email
	m.IDNumber = c.IDNumber
	m.IDPhotoFront = c.IDPhotoFront
	m.IDPhotoBack = c.IDPhotoBack
	m.Notes = c.Notes
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer aggregate.
func CustomerModelFromDomain(c *tenancy.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

// ContractModel is the persistence model for the Contract aggregate.
type ContractModel struct {
	AggregateModel
	CustomerID uuid.UUID              `gorm:"type:uuid;not null;index"`
	UnitID     uuid.UUID              `gorm:"type:uuid;not null;index"`
	StartDate  time.Time              `gorm:"not null"`
	EndDate    time.Time              `gorm:"not null;index"`
	RentAmount valueobject.Money      `gorm:"type:decimal(18,2);not null;default:0"`
	Deposit    valueobject.Money      `gorm:"type:decimal(18,2);not null;default:0"`
	BillingDay int                    `gorm:"not null;default:1"`
	Status     tenancy.ContractStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	Notes      string                 `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ContractModel) TableName() string {
	return "rental_contracts"
}

// ToDomain converts the persistence model to a domain Contract aggregate.
func (m *ContractModel) ToDomain() *tenancy.Contract {
	c := &tenancy.Contract{
		CustomerID: m.CustomerID,
		UnitID:     m.UnitID,
		StartDate:  m.StartDate,
		EndDate:    m.EndDate,
		RentAmount: m.RentAmount,
		Deposit:    m.Deposit,
		BillingDay: m.BillingDay,
		Status:     m.Status,
		Notes:      m.Notes,
	}
	m.PopulateAggregateRoot(&c.BaseAggregateRoot)
	return c
}

// FromDomain populates the persistence model from a domain Contract aggregate.
func (m *ContractModel) FromDomain(c *tenancy.Contract) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.CustomerID = c.CustomerID
	m.UnitID = c.UnitID
	m.StartDate = c.StartDate
	m.EndDate = c.EndDate
	m.RentAmount = c.RentAmount
	m.Deposit = c.Deposit
	m.BillingDay = c.BillingDay
	m.Status = c.Status
	m.Notes = c.Notes
}

// ContractModelFromDomain creates a new persistence model from a domain Contract aggregate.
func ContractModelFromDomain(c *tenancy.Contract) *ContractModel {
	m := &ContractModel{}
	m.FromDomain(c)
	return m
}
