package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/pms/backend/internal/domain/maintenance"
	"github.com/pms/backend/internal/domain/shared/valueobject"
)

// MaintenanceRequestModel is the persistence model for the maintenance Request aggregate.
type MaintenanceRequestModel struct {
	AggregateModel
	UnitID       uuid.UUID                 `gorm:"type:uuid;not null;index"`
	Description  string                    `gorm:"type:text;not null"`
	Status       maintenance.RequestStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	ReportedDate time.Time                 `gorm:"not null"`
	ResolvedDate *time.Time
	Cost         valueobject.Money `gorm:"type:decimal(18,2);not null;default:0"`
	Notes        string            `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (MaintenanceRequestModel) TableName() string {
	return "maintenance_requests"
}

// ToDomain converts the persistence model to a domain Request aggregate.
func (m *MaintenanceRequestModel) ToDomain() *maintenance.Request {
	r := &maintenance.Request{
		UnitID:       m.UnitID,
		Description:  m.Description,
		Status:       m.Status,
		ReportedDate: m.ReportedDate,
		ResolvedDate: m.ResolvedDate,
		Cost:         m.Cost,
		Notes:        m.Notes,
	}
	m.PopulateAggregateRoot(&r.BaseAggregateRoot)
	return r
}

// FromDomain populates the persistence model from a domain Request aggregate.
func (m *MaintenanceRequestModel) FromDomain(r *maintenance.Request) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.UnitID = r.UnitID
	m.Description = r.Description
	m.Status = r.Status
	m.ReportedDate = r.ReportedDate
	m.ResolvedDate = r.ResolvedDate
	m.Cost = r.Cost
	m.Notes = r.Notes
}

// MaintenanceRequestModelFromDomain creates a new persistence model from a domain Request aggregate.
func MaintenanceRequestModelFromDomain(r *maintenance.Request) *MaintenanceRequestModel {
	m := &MaintenanceRequestModel{}
	m.FromDomain(r)
	return m
}
