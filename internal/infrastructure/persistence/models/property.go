package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pms/backend/internal/domain/property"
	"github.com/pms/backend/internal/domain/shared/valueobject"
)

// PropertyModel is the persistence model for the Property aggregate.
type PropertyModel struct {
	AggregateModel
	Name        string `gorm:"type:varchar(200);not null;uniqueIndex"`
	Address     string `gorm:"type:text"`
	Description string `gorm:"type:text"`
	IsActive    bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (PropertyModel) TableName() string {
	return "properties"
}

// ToDomain converts the persistence model to a domain Property aggregate.
func (m *PropertyModel) ToDomain() *property.Property {
	p := &property.Property{
		Name:        m.Name,
		Address:     m.Address,
		Description: m.Description,
		IsActive:    m.IsActive,
	}
	m.PopulateAggregateRoot(&p.BaseAggregateRoot)
	return p
}

// FromDomain populates the persistence model from a domain Property aggregate.
func (m *PropertyModel) FromDomain(p *property.Property) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.Address = p.Address
	m.Description = p.Description
	m.IsActive = p.IsActive
}

// PropertyModelFromDomain creates a new persistence model from a domain Property aggregate.
func PropertyModelFromDomain(p *property.Property) *PropertyModel {
	m := &PropertyModel{}
	m.FromDomain(p)
	return m
}

// UnitModel is the persistence model for the Unit aggregate.
type UnitModel struct {
	AggregateModel
	PropertyID uuid.UUID           `gorm:"type:uuid;not null;index;uniqueIndex:idx_unit_property_number,priority:1"`
	UnitNumber string              `gorm:"type:varchar(50);not null;uniqueIndex:idx_unit_property_number,priority:2"`
	UnitType   property.UnitType   `gorm:"type:varchar(20);not null"`
	RentAmount valueobject.Money   `gorm:"type:decimal(18,2);not null;default:0"`
	Status     property.UnitStatus `gorm:"type:varchar(20);not null;default:'vacant';index"`
	Notes      string              `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (UnitModel) TableName() string {
	return "units"
}

// ToDomain converts the persistence model to a domain Unit aggregate.
func (m *UnitModel) ToDomain() *property.Unit {
	u := &property.Unit{
		PropertyID: m.PropertyID,
		UnitNumber: m.UnitNumber,
		UnitType:   m.UnitType,
		RentAmount: m.RentAmount,
		Status:     m.Status,
		Notes:      m.Notes,
	}
	m.PopulateAggregateRoot(&u.BaseAggregateRoot)
	return u
}

// FromDomain populates the persistence model from a domain Unit aggregate.
func (m *UnitModel) FromDomain(u *property.Unit) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.PropertyID = u.PropertyID
	m.UnitNumber = u.UnitNumber
	m.UnitType = u.UnitType
	m.RentAmount = u.RentAmount
	m.Status = u.Status
	m.Notes = u.Notes
}

// UnitModelFromDomain creates a new persistence model from a domain Unit aggregate.
func UnitModelFromDomain(u *property.Unit) *UnitModel {
	m := &UnitModel{}
	m.FromDomain(u)
	return m
}

// SystemParametersModel is the persistence model for per-property billing parameters.
// One row per property, upserted on update.
type SystemParametersModel struct {
	AggregateModel
	PropertyID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	RentDepositMonths   decimal.Decimal `gorm:"type:decimal(6,2);not null;default:1"`
	WaterUnitCost       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ElectricityUnitCost decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ServiceCharge       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	SecurityCharge      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	GarbageCharge       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	PenaltyRate         decimal.Decimal `gorm:"type:decimal(6,2);not null;default:0"`
	HasWaterBill        bool            `gorm:"not null;default:true"`
	HasElectricityBill  bool            `gorm:"not null;default:true"`
	HasServiceCharge    bool            `gorm:"not null;default:true"`
	HasSecurityCharge   bool            `gorm:"not null;default:true"`
	HasOtherCharges     bool            `gorm:"not null;default:true"`

	RequireWaterDeposit       bool `gorm:"not null;default:false"`
	RequireElectricityDeposit bool `gorm:"not null;default:false"`
	AllowPartialPayments      bool `gorm:"not null;default:true"`
	AutoGenerateReceipts      bool `gorm:"not null;default:false"`
	GracePeriodDays           int  `gorm:"not null;default:5"`
}

// TableName returns the table name for GORM
func (SystemParametersModel) TableName() string {
	return "system_parameters"
}

// ToDomain converts the persistence model to domain SystemParameters.
func (m *SystemParametersModel) ToDomain() *property.SystemParameters {
	sp := &property.SystemParameters{
		PropertyID:          m.PropertyID,
		RentDepositMonths:   m.RentDepositMonths,
		WaterUnitCost:       m.WaterUnitCost,
		ElectricityUnitCost: m.ElectricityUnitCost,
		ServiceCharge:       m.ServiceCharge,
		SecurityCharge:      m.SecurityCharge,
		GarbageCharge:       m.GarbageCharge,
		PenaltyRate:         m.PenaltyRate,
		Toggles: property.ChargeToggles{
			HasWaterBill:       m.HasWaterBill,
			HasElectricityBill: m.HasElectricityBill,
			HasServiceCharge:   m.HasServiceCharge,
			HasSecurityCharge:  m.HasSecurityCharge,
			HasOtherCharges:    m.HasOtherCharges,
		},
		Policies: property.BillingPolicies{
			RequireWaterDeposit:       m.RequireWaterDeposit,
			RequireElectricityDeposit: m.RequireElectricityDeposit,
			AllowPartialPayments:      m.AllowPartialPayments,
			AutoGenerateReceipts:      m.AutoGenerateReceipts,
			GracePeriodDays:           m.GracePeriodDays,
		},
	}
	m.PopulateAggregateRoot(&sp.BaseAggregateRoot)
	return sp
}

// FromDomain populates the persistence model from domain SystemParameters.
func (m *SystemParametersModel) FromDomain(sp *property.SystemParameters) {
	m.FromDomainAggregateRoot(sp.BaseAggregateRoot)
	m.PropertyID = sp.PropertyID
	m.RentDepositMonths = sp.RentDepositMonths
	m.WaterUnitCost = sp.WaterUnitCost
	m.ElectricityUnitCost = sp.ElectricityUnitCost
	m.ServiceCharge = sp.ServiceCharge
	m.SecurityCharge = sp.SecurityCharge
	m.GarbageCharge = sp.GarbageCharge
	m.PenaltyRate = sp.PenaltyRate
	m.HasWaterBill = sp.Toggles.HasWaterBill
	m.HasElectricityBill = sp.Toggles.HasElectricityBill
	m.HasServiceCharge = sp.Toggles.HasServiceCharge
	m.HasSecurityCharge = sp.Toggles.HasSecurityCharge
	m.HasOtherCharges = sp.Toggles.HasOtherCharges
	m.RequireWaterDeposit = sp.Policies.RequireWaterDeposit
	m.RequireElectricityDeposit = sp.Policies.RequireElectricityDeposit
	m.AllowPartialPayments = sp.Policies.AllowPartialPayments
	m.AutoGenerateReceipts = sp.Policies.AutoGenerateReceipts
	m.GracePeriodDays = sp.Policies.GracePeriodDays
}

// SystemParametersModelFromDomain creates a new persistence model from domain SystemParameters.
func SystemParametersModelFromDomain(sp *property.SystemParameters) *SystemParametersModel {
	m := &SystemParametersModel{}
	m.FromDomain(sp)
	return m
}
