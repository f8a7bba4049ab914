package property

import (
	"time"

	"github.com/google/uuid"
	"github.com/pms/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ChargeToggles controls which charge lines participate in receipt totals
// for a property. A disabled line is excluded from the total even when a
// positive amount has been captured for it.
type ChargeToggles struct {
	HasWaterBill       bool
	HasElectricityBill bool
	HasServiceCharge   bool
	HasSecurityCharge  bool
	HasOtherCharges    bool
}

// DefaultChargeToggles enables every charge line
func DefaultChargeToggles() ChargeToggles {
	return ChargeToggles{
		HasWaterBill:       true,
		HasElectricityBill: true,
		HasServiceCharge:   true,
		HasSecurityCharge:  true,
		HasOtherCharges:    true,
	}
}

// BillingPolicies controls how billing behaves for a property beyond
// the plain charge amounts.
type BillingPolicies struct {
	// RequireWaterDeposit demands a water deposit on a tenant's first receipt
	RequireWaterDeposit bool
	// RequireElectricityDeposit demands an electricity deposit on a tenant's first receipt
	RequireElectricityDeposit bool
	// AllowPartialPayments permits payments below the outstanding balance
	AllowPartialPayments bool
	// AutoGenerateReceipts includes the property in unscoped monthly billing runs
	AutoGenerateReceipts bool
	// GracePeriodDays is how long after the billing day a balance may
	// stay unpaid before it counts as late
	GracePeriodDays int
}

// DefaultBillingPolicies allows partial payments with a short grace
// period and leaves the stricter policies off
func DefaultBillingPolicies() BillingPolicies {
	return BillingPolicies{
		AllowPartialPayments: true,
		GracePeriodDays:      5,
	}
}

// SystemParameters holds per-property billing defaults. There is exactly
// one row per property; saving again upserts.
type SystemParameters struct {
	shared.BaseAggregateRoot
	PropertyID          uuid.UUID
	RentDepositMonths   decimal.Decimal
	WaterUnitCost       decimal.Decimal
	ElectricityUnitCost decimal.Decimal
	ServiceCharge       decimal.Decimal
	SecurityCharge      decimal.Decimal
	GarbageCharge       decimal.Decimal
	PenaltyRate         decimal.Decimal // percent applied to overdue balances
	Toggles             ChargeToggles
	Policies            BillingPolicies
}

// NewSystemParameters creates parameters with sensible defaults for a property
func NewSystemParameters(propertyID uuid.UUID) (*SystemParameters, error) {
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY_ID", "Property ID cannot be empty")
	}

	return &SystemParameters{
		BaseAggregateRoot:   shared.NewBaseAggregateRoot(),
		PropertyID:          propertyID,
		RentDepositMonths:   decimal.NewFromInt(1),
		WaterUnitCost:       decimal.Zero,
		ElectricityUnitCost: decimal.Zero,
		ServiceCharge:       decimal.Zero,
		SecurityCharge:      decimal.Zero,
		GarbageCharge:       decimal.Zero,
		PenaltyRate:         decimal.Zero,
		Toggles:             DefaultChargeToggles(),
		Policies:            DefaultBillingPolicies(),
	}, nil
}

// UpdateRates replaces the numeric defaults
func (sp *SystemParameters) UpdateRates(depositMonths, waterUnit, electricityUnit, service, security, garbage, penalty decimal.Decimal) error {
	for _, d := range []decimal.Decimal{depositMonths, waterUnit, electricityUnit, service, security, garbage, penalty} {
		if d.IsNegative() {
			return shared.NewDomainError("INVALID_RATE", "Billing rates cannot be negative")
		}
	}

	sp.RentDepositMonths = depositMonths
	sp.WaterUnitCost = waterUnit
	sp.ElectricityUnitCost = electricityUnit
	sp.ServiceCharge = service
	sp.SecurityCharge = security
	sp.GarbageCharge = garbage
	sp.PenaltyRate = penalty
	sp.UpdatedAt = time.Now()
	sp.IncrementVersion()

	return nil
}

// UpdateToggles replaces the charge line switches
func (sp *SystemParameters) UpdateToggles(toggles ChargeToggles) {
	sp.Toggles = toggles
	sp.UpdatedAt = time.Now()
	sp.IncrementVersion()
}

// UpdatePolicies replaces the billing behavior switches
func (sp *SystemParameters) UpdatePolicies(policies BillingPolicies) error {
	if policies.GracePeriodDays < 0 {
		return shared.NewDomainError("INVALID_GRACE_PERIOD", "Grace period cannot be negative")
	}

	sp.Policies = policies
	sp.UpdatedAt = time.Now()
	sp.IncrementVersion()

	return nil
}
